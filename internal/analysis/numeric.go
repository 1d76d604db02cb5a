package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// NumericSummary holds full-precision statistics for one column. Use
// Display for the rounded form.
type NumericSummary struct {
	Column  string
	Mean    float64
	Median  float64
	StdDev  float64
	Min     float64
	Max     float64
	Count   int
	Missing int
	// NonNumeric counts present values that are not numbers. They are
	// neither missing nor part of the statistics.
	NonNumeric int
}

// Display returns a copy with every statistic rounded to StatPlaces.
func (s NumericSummary) Display() NumericSummary {
	s.Mean = Round(s.Mean, StatPlaces)
	s.Median = Round(s.Median, StatPlaces)
	s.StdDev = Round(s.StdDev, StatPlaces)
	s.Min = Round(s.Min, StatPlaces)
	s.Max = Round(s.Max, StatPlaces)
	return s
}

// NumericValues returns the present numeric values of col in row order.
// Present non-numeric values (stray text in a numeric column) are skipped.
func NumericValues(rows []dataset.Row, col string) []float64 {
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		v := r.Value(col)
		if !dataset.IsPresent(v) {
			continue
		}
		if x, ok := v.Float(); ok {
			vals = append(vals, x)
		}
	}
	return vals
}

// Describe computes mean, lower-middle median, population standard
// deviation, min and max. It returns an error for empty input.
func Describe(values []float64) (NumericSummary, error) {
	var s NumericSummary
	if len(values) == 0 {
		return s, fmt.Errorf("describe: %w", stats.ErrEmptyInput)
	}
	var err error
	if s.Mean, err = stats.Mean(values); err != nil {
		return s, fmt.Errorf("mean: %w", err)
	}
	if s.StdDev, err = stats.StandardDeviationPopulation(values); err != nil {
		return s, fmt.Errorf("std dev: %w", err)
	}
	if s.Min, err = stats.Min(values); err != nil {
		return s, fmt.Errorf("min: %w", err)
	}
	if s.Max, err = stats.Max(values); err != nil {
		return s, fmt.Errorf("max: %w", err)
	}
	s.Median = lowerMedian(values)
	s.Count = len(values)
	return s, nil
}

// lowerMedian takes sorted[n/2]; for even n that is the upper of the two
// middle values, not their average.
func lowerMedian(values []float64) float64 {
	cp := make([]float64, len(values))
	copy(cp, values)
	sort.Float64s(cp)
	return cp[len(cp)/2]
}

// NumericSummaries describes each declared numeric column over the whole
// dataset. Columns without any present numeric value are omitted.
func NumericSummaries(ds *dataset.Dataset, columns []string) []NumericSummary {
	out := make([]NumericSummary, 0, len(columns))
	for _, col := range columns {
		vals := NumericValues(ds.Rows, col)
		s, err := Describe(vals)
		if err != nil {
			continue
		}
		s.Column = col
		for _, r := range ds.Rows {
			if !dataset.IsPresent(r.Value(col)) {
				s.Missing++
			}
		}
		s.NonNumeric = ds.Len() - s.Count - s.Missing
		out = append(out, s)
	}
	return out
}
