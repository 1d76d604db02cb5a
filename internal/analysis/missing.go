package analysis

import "github.com/KaramelBytes/dataloom-cli/internal/dataset"

// ColumnMissing counts rows lacking a present value for one column.
type ColumnMissing struct {
	Column     string
	Count      int
	Percentage float64 // rounded to StatPlaces
}

// Missingness reports, for each column, how many rows lack a present value.
// Rows that do not carry the key at all count as missing.
func Missingness(ds *dataset.Dataset, columns []string) []ColumnMissing {
	out := make([]ColumnMissing, 0, len(columns))
	total := ds.Len()
	for _, col := range columns {
		miss := 0
		for _, r := range ds.Rows {
			if !dataset.IsPresent(r.Value(col)) {
				miss++
			}
		}
		out = append(out, ColumnMissing{Column: col, Count: miss, Percentage: Round(percent(miss, total), StatPlaces)})
	}
	return out
}
