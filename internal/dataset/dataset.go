// Package dataset holds the in-memory tabular model: typed values, ordered
// rows and the merged train/test dataset.
package dataset

// MergeOptions names the provenance column and the tags written into it.
type MergeOptions struct {
	SourceColumn string
	TrainTag     string
	TestTag      string
}

// DefaultMergeOptions returns the tags used by the passenger dataset.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{SourceColumn: "source", TrainTag: "train", TestTag: "test"}
}

// Dataset is the merged, read-only view over both sources. Train and Test
// alias the leading and trailing parts of Rows, so
// len(Rows) == len(Train) + len(Test) always holds.
type Dataset struct {
	Rows  []Row
	Train []Row
	Test  []Row

	SourceColumn string
	TrainTag     string
	TestTag      string
}

// Merge tags every train row and every test row with its source and
// concatenates them, train first. Input rows are not modified and no
// deduplication takes place.
func Merge(train, test []Row, opt MergeOptions) *Dataset {
	if opt.SourceColumn == "" {
		opt = DefaultMergeOptions()
	}
	rows := make([]Row, 0, len(train)+len(test))
	for _, r := range train {
		rows = append(rows, r.With(opt.SourceColumn, StringValue(opt.TrainTag)))
	}
	for _, r := range test {
		rows = append(rows, r.With(opt.SourceColumn, StringValue(opt.TestTag)))
	}
	n := len(train)
	return &Dataset{
		Rows:         rows,
		Train:        rows[:n:n],
		Test:         rows[n:],
		SourceColumn: opt.SourceColumn,
		TrainTag:     opt.TrainTag,
		TestTag:      opt.TestTag,
	}
}

// Len returns the number of merged rows; nil datasets have length 0.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Empty reports whether d is nil or has no rows.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// SourceRows returns the rows tagged with tag, in merged order.
func (d *Dataset) SourceRows(tag string) []Row {
	if d == nil {
		return nil
	}
	switch tag {
	case d.TrainTag:
		return d.Train
	case d.TestTag:
		return d.Test
	}
	var out []Row
	for _, r := range d.Rows {
		if r.Value(d.SourceColumn).Key() == tag {
			out = append(out, r)
		}
	}
	return out
}
