package analysis

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"gonum.org/v1/gonum/floats"
)

// degenerateWidth is the bin width used when every value is identical.
const degenerateWidth = 1e-9

// Bin is one equal-width histogram interval. Bins are half-open [Lower,Upper)
// except the last, which also includes its upper bound.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Label renders the bin range with one decimal, e.g. "0.4-4.4".
func (b Bin) Label() string {
	return fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper)
}

// ColumnHistogram is the histogram of one numeric column.
type ColumnHistogram struct {
	Column     string
	Policy     HistogramPolicy
	Values     int
	Bins       []Bin
	Degenerate bool
}

// BinCount resolves the number of bins for n values. The fixed policy
// returns requested as is; the adaptive one caps it at ceil(n/10).
// The result is at least 1.
func BinCount(policy HistogramPolicy, requested, n int) int {
	if requested <= 0 {
		requested = DefaultBins
	}
	bins := requested
	if policy == AdaptiveBins {
		bins = min(requested, int(math.Ceil(float64(n)/10)))
	}
	return max(bins, 1)
}

// Histogram counts finite values into binCount equal-width bins between the
// minimum and maximum. Empty input yields no bins; callers must not draw a
// chart for it. When all values are equal the width falls back to a small
// epsilon so every value lands in the first bin.
func Histogram(values []float64, binCount int) []Bin {
	if len(values) == 0 {
		return nil
	}
	if binCount <= 0 {
		binCount = DefaultBins
	}
	lo, hi := floats.Min(values), floats.Max(values)
	edges := make([]float64, binCount+1)
	width := (hi - lo) / float64(binCount)
	if width > 0 {
		floats.Span(edges, lo, hi)
	} else {
		width = degenerateWidth
		for i := range edges {
			edges[i] = lo + float64(i)*width
		}
	}
	bins := make([]Bin, binCount)
	for i := range bins {
		bins[i] = Bin{Lower: edges[i], Upper: edges[i+1]}
	}
	for _, v := range values {
		bins[binIndex(v, lo, width, binCount)].Count++
	}
	return bins
}

// binIndex places v into [0, binCount-1]; the maximum value clamps into the
// last bin instead of overflowing.
func binIndex(v, lo, width float64, binCount int) int {
	i := int(math.Floor((v - lo) / width))
	if i >= binCount {
		i = binCount - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// HistogramFor bins the present, finite values of col.
func HistogramFor(ds *dataset.Dataset, col string, opt HistogramOptions) ColumnHistogram {
	vals := NumericValues(ds.Rows, col)
	finite := vals[:0:0]
	for _, v := range vals {
		if !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	policy := opt.Policy
	if policy == "" {
		policy = FixedBins
	}
	h := ColumnHistogram{Column: col, Policy: policy, Values: len(finite)}
	if len(finite) == 0 {
		return h
	}
	h.Bins = Histogram(finite, BinCount(policy, opt.Bins, len(finite)))
	h.Degenerate = floats.Min(finite) == floats.Max(finite)
	return h
}
