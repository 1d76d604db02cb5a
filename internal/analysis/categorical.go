package analysis

import "github.com/KaramelBytes/dataloom-cli/internal/dataset"

// CategoryCount is the frequency of one category value.
type CategoryCount struct {
	Value      string
	Count      int
	Percentage float64 // share of all dataset rows, full precision
}

// CategoricalSummary lists category counts in first-seen order.
type CategoricalSummary struct {
	Column string
	Counts []CategoryCount
}

// Unique returns the number of distinct present values.
func (c CategoricalSummary) Unique() int { return len(c.Counts) }

// CountCategories counts present values of col. Percentages use total as the
// denominator.
func CountCategories(rows []dataset.Row, col string, total int) []CategoryCount {
	idx := map[string]int{}
	var out []CategoryCount
	for _, r := range rows {
		v := r.Value(col)
		if !dataset.IsPresent(v) {
			continue
		}
		k := v.Key()
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, CategoryCount{Value: k})
		}
		out[i].Count++
	}
	for i := range out {
		out[i].Percentage = percent(out[i].Count, total)
	}
	return out
}

// CategoricalSummaries counts each declared categorical column. The
// percentage denominator is the full dataset length, not the number of
// present values in the column.
func CategoricalSummaries(ds *dataset.Dataset, columns []string) []CategoricalSummary {
	out := make([]CategoricalSummary, 0, len(columns))
	for _, col := range columns {
		out = append(out, CategoricalSummary{Column: col, Counts: CountCategories(ds.Rows, col, ds.Len())})
	}
	return out
}
