package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// Column roles used in the schema section.
const (
	RoleNumeric     = "numeric"
	RoleCategorical = "categorical"
	RoleOutcome     = "outcome"
	RoleID          = "identifier"
	RoleSource      = "source"
	RoleOther       = "other"
)

// ColumnInfo describes one column of the merged dataset.
type ColumnInfo struct {
	Name    string
	Role    string
	Present int
	Samples []string
}

// Report is the full exploratory analysis of a merged dataset. It holds data
// only; Markdown and the export package turn it into documents.
type Report struct {
	Name        string
	Rows        int
	TrainRows   int
	TestRows    int
	Columns     []ColumnInfo
	Preview     []dataset.Row
	Missing     []ColumnMissing
	Numeric     []NumericSummary
	Categorical []CategoricalSummary
	Outcome     *OutcomeReport
	Histograms  []ColumnHistogram
	Warnings    []string
}

// ColumnNames returns the schema column names in order.
func (r *Report) ColumnNames() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Name
	}
	return out
}

// Analyze runs every analysis stage over ds.
func Analyze(ds *dataset.Dataset, opt Options) (*Report, error) {
	if ds.Empty() {
		return nil, dataset.ErrEmptyDataset
	}
	cols := dataset.Columns(ds)
	rep := &Report{
		Rows:      ds.Len(),
		TrainRows: len(ds.Train),
		TestRows:  len(ds.Test),
		Preview:   dataset.Preview(ds, opt.PreviewRows),
	}
	roles := columnRoles(ds, opt)
	for _, c := range cols {
		info := ColumnInfo{Name: c, Role: roles[c]}
		if info.Role == "" {
			info.Role = RoleOther
		}
		for _, r := range ds.Rows {
			if dataset.IsPresent(r.Value(c)) {
				info.Present++
			}
		}
		for _, v := range dataset.SampleValues(ds, c, 0, opt.SampleValues) {
			info.Samples = append(info.Samples, v.String())
		}
		rep.Columns = append(rep.Columns, info)
	}
	rep.Missing = Missingness(ds, cols)

	analyzable := withoutColumn(opt.NumericColumns, opt.IDColumn)
	rep.Numeric = NumericSummaries(ds, analyzable)
	if len(rep.Numeric) < len(analyzable) {
		have := map[string]bool{}
		for _, s := range rep.Numeric {
			have[s.Column] = true
		}
		for _, c := range analyzable {
			if !have[c] {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("numeric column %s has no present values; omitted", c))
			}
		}
	}
	for _, s := range rep.Numeric {
		if s.NonNumeric > 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("numeric column %s has %d non-numeric values; excluded from statistics", s.Column, s.NonNumeric))
		}
	}
	rep.Categorical = CategoricalSummaries(ds, withoutColumn(opt.CategoricalColumns, opt.IDColumn))

	if out, ok := Outcome(ds, opt.Outcome); ok {
		rep.Outcome = out
	} else if opt.Outcome.Column != "" {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("outcome column %s not present in %s rows; survival analysis skipped", opt.Outcome.Column, opt.Outcome.Source))
	}

	for _, c := range withoutColumn(opt.Histogram.Columns, opt.IDColumn) {
		h := HistogramFor(ds, c, opt.Histogram)
		if len(h.Bins) == 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("histogram for %s skipped: no present values", c))
			continue
		}
		if h.Degenerate {
			rep.Warnings = append(rep.Warnings, (&dataset.DegenerateColumnError{Column: c, Value: h.Bins[0].Lower}).Error())
		}
		rep.Histograms = append(rep.Histograms, h)
	}
	return rep, nil
}

func columnRoles(ds *dataset.Dataset, opt Options) map[string]string {
	roles := map[string]string{}
	for _, c := range opt.NumericColumns {
		roles[c] = RoleNumeric
	}
	for _, c := range opt.CategoricalColumns {
		roles[c] = RoleCategorical
	}
	if opt.Outcome.Column != "" {
		roles[opt.Outcome.Column] = RoleOutcome
	}
	if opt.IDColumn != "" {
		roles[opt.IDColumn] = RoleID
	}
	roles[ds.SourceColumn] = RoleSource
	return roles
}

func withoutColumn(cols []string, drop string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c != drop {
			out = append(out, c)
		}
	}
	return out
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("Name: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Shape: %d rows x %d columns\n", r.Rows, len(r.Columns)))
	b.WriteString(fmt.Sprintf("Sources: train %d, test %d\n\n", r.TrainRows, r.TestRows))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s (present %d)", safeName(c.Name), c.Role, c.Present))
		if len(c.Samples) > 0 {
			b.WriteString(" — e.g., ")
			for i, s := range c.Samples {
				if i > 0 {
					b.WriteString(" | ")
				}
				b.WriteString(safeVal(s))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[MISSING VALUES]\n")
	for _, m := range r.Missing {
		b.WriteString(fmt.Sprintf("- %s: %d (%.2f%%)\n", safeName(m.Column), m.Count, m.Percentage))
	}

	if len(r.Numeric) > 0 {
		b.WriteString("\n[NUMERIC SUMMARY]\n")
		b.WriteString("| Column | Mean | Median | Std Dev | Min | Max | Count | Missing |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
		for _, s := range r.Numeric {
			d := s.Display()
			b.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f | %.2f | %.2f | %d | %d |\n",
				safeVal(d.Column), d.Mean, d.Median, d.StdDev, d.Min, d.Max, d.Count, d.Missing))
		}
	}

	if len(r.Categorical) > 0 {
		b.WriteString("\n[CATEGORICAL COUNTS]\n")
		for _, c := range r.Categorical {
			b.WriteString(fmt.Sprintf("- %s (unique=%d): ", safeName(c.Column), c.Unique()))
			for i, kv := range c.Counts {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d, %.2f%%)", safeVal(kv.Value), kv.Count, Round(kv.Percentage, StatPlaces)))
			}
			b.WriteString("\n")
		}
	}

	if o := r.Outcome; o != nil {
		b.WriteString(fmt.Sprintf("\n[OUTCOME: %s (%s rows)]\n", o.Column, o.Source))
		b.WriteString(fmt.Sprintf("- positive: %d (%.1f%%)\n", o.Overall.Positive, o.Overall.Rate))
		b.WriteString(fmt.Sprintf("- negative: %d (%.1f%%)\n", o.Overall.Negative, o.NegativeRate))
		for _, g := range o.ByColumn {
			b.WriteString(fmt.Sprintf("- by %s:\n", g.Column))
			for _, gb := range g.Groups {
				b.WriteString(fmt.Sprintf("  • %s: total %d, positive %d, negative %d, rate %.1f%%\n",
					safeVal(gb.GroupKey), gb.Total, gb.Positive, gb.Negative, gb.Rate))
			}
		}
	}

	if len(r.Histograms) > 0 {
		b.WriteString("\n[HISTOGRAMS]\n")
		for _, h := range r.Histograms {
			b.WriteString(fmt.Sprintf("- %s (%d values, %d bins, %s):\n", h.Column, h.Values, len(h.Bins), h.Policy))
			for _, bin := range h.Bins {
				b.WriteString(fmt.Sprintf("  • %s: %d\n", bin.Label(), bin.Count))
			}
		}
	}

	if len(r.Preview) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Preview {
			b.WriteString("| ")
			for i, c := range r.Columns {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := row.Value(c.Name).String()
				if rs := []rune(val); len(rs) > 80 {
					val = string(rs[:77]) + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
