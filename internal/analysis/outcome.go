package analysis

import "github.com/KaramelBytes/dataloom-cli/internal/dataset"

// OutcomeBreakdown counts positive and negative outcomes within one group.
// Rate is 100*Positive/Total rounded to RatePlaces.
type OutcomeBreakdown struct {
	GroupKey string
	Total    int
	Positive int
	Negative int
	Rate     float64
}

// GroupedOutcome is the breakdown of the outcome by one grouping column.
type GroupedOutcome struct {
	Column string
	Groups []OutcomeBreakdown
}

// OutcomeReport summarises the outcome over its source only.
type OutcomeReport struct {
	Column       string
	Source       string
	Overall      OutcomeBreakdown
	NegativeRate float64
	ByColumn     []GroupedOutcome
}

// Outcome computes the outcome breakdown over the rows tagged opt.Source.
// It returns false when no row of that source carries a present outcome.
func Outcome(ds *dataset.Dataset, opt OutcomeOptions) (*OutcomeReport, bool) {
	if opt.Column == "" {
		return nil, false
	}
	rows := ds.SourceRows(opt.Source)
	found := false
	for _, r := range rows {
		if dataset.IsPresent(r.Value(opt.Column)) {
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}
	rep := &OutcomeReport{Column: opt.Column, Source: opt.Source}
	rep.Overall = breakdown("all", rows, opt)
	rep.NegativeRate = Round(percent(rep.Overall.Negative, rep.Overall.Total), RatePlaces)
	for _, col := range opt.GroupBy {
		rep.ByColumn = append(rep.ByColumn, GroupedOutcome{Column: col, Groups: OutcomeBy(rows, col, opt)})
	}
	return rep, true
}

// OutcomeBy partitions rows by the present values of col in first-seen order
// and breaks the outcome down per partition. Rows without a present value
// for col are skipped.
func OutcomeBy(rows []dataset.Row, col string, opt OutcomeOptions) []OutcomeBreakdown {
	idx := map[string]int{}
	var keys []string
	var parts [][]dataset.Row
	for _, r := range rows {
		v := r.Value(col)
		if !dataset.IsPresent(v) {
			continue
		}
		k := v.Key()
		i, ok := idx[k]
		if !ok {
			i = len(keys)
			idx[k] = i
			keys = append(keys, k)
			parts = append(parts, nil)
		}
		parts[i] = append(parts[i], r)
	}
	out := make([]OutcomeBreakdown, len(keys))
	for i, k := range keys {
		out[i] = breakdown(k, parts[i], opt)
	}
	return out
}

func breakdown(key string, rows []dataset.Row, opt OutcomeOptions) OutcomeBreakdown {
	b := OutcomeBreakdown{GroupKey: key, Total: len(rows)}
	for _, r := range rows {
		v := r.Value(opt.Column)
		if !dataset.IsPresent(v) {
			continue
		}
		x, ok := v.Float()
		if !ok {
			continue
		}
		switch x {
		case opt.Positive:
			b.Positive++
		case opt.Negative:
			b.Negative++
		}
	}
	b.Rate = Round(percent(b.Positive, b.Total), RatePlaces)
	return b
}
