package analysis

// HistogramPolicy selects how many bins a histogram uses.
type HistogramPolicy string

const (
	// FixedBins always uses the requested bin count.
	FixedBins HistogramPolicy = "fixed"
	// AdaptiveBins uses min(requested, ceil(n/10)) bins.
	AdaptiveBins HistogramPolicy = "adaptive"
)

// DefaultBins is the bin count of the fixed policy.
const DefaultBins = 20

// Rounding places for display values. Outcome rates use one decimal while
// every other percentage and statistic uses two; the asymmetry is kept for
// compatibility with previously exported summaries.
const (
	StatPlaces = 2
	RatePlaces = 1
)

// OutcomeOptions describes the binary target column.
type OutcomeOptions struct {
	Column   string
	Positive float64
	Negative float64
	// Source is the provenance tag of the only source that carries Column.
	Source string
	// GroupBy lists the columns used to break the outcome down.
	GroupBy []string
}

// HistogramOptions selects columns and the binning policy.
type HistogramOptions struct {
	Columns []string
	Policy  HistogramPolicy
	Bins    int
}

// Options controls analysis of a merged dataset. Column sets are declared,
// never inferred from the data.
type Options struct {
	NumericColumns     []string
	CategoricalColumns []string
	IDColumn           string
	Outcome            OutcomeOptions
	Histogram          HistogramOptions
	// PreviewRows determines how many rows the overview shows.
	PreviewRows int
	// SampleValues caps distinct example values per column in the schema section.
	SampleValues int
}

// DefaultOptions returns the passenger dataset schema.
func DefaultOptions() Options {
	return Options{
		NumericColumns:     []string{"Age", "SibSp", "Parch", "Fare"},
		CategoricalColumns: []string{"Pclass", "Sex", "Embarked"},
		IDColumn:           "PassengerId",
		Outcome: OutcomeOptions{
			Column:   "Survived",
			Positive: 1,
			Negative: 0,
			Source:   "train",
			GroupBy:  []string{"Sex", "Pclass"},
		},
		Histogram: HistogramOptions{
			Columns: []string{"Age", "Fare"},
			Policy:  FixedBins,
			Bins:    DefaultBins,
		},
		PreviewRows:  5,
		SampleValues: 3,
	}
}
