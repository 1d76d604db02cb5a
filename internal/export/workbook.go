package export

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/dataloom-cli/internal/analysis"
	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSummary     = "Summary"
	SheetMissing     = "Missing"
	SheetNumeric     = "Numeric"
	SheetCategorical = "Categorical"
	SheetOutcome     = "Outcome"
	SheetMerged      = "Merged"
)

// WriteWorkbook writes the report tables and the merged rows as an XLSX
// workbook. Numbers stay numeric cells.
func WriteWorkbook(w io.Writer, ds *dataset.Dataset, rep *analysis.Report) error {
	if ds.Empty() || rep == nil {
		return dataset.ErrEmptyDataset
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	summary := [][]any{
		{"Metric", "Value"},
		{"Total rows", rep.Rows},
		{"Total columns", len(rep.Columns)},
		{"Train rows", rep.TrainRows},
		{"Test rows", rep.TestRows},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	missing := [][]any{{"Column", "Missing Count", "Missing %"}}
	for _, m := range rep.Missing {
		missing = append(missing, []any{m.Column, m.Count, m.Percentage})
	}
	if err := addSheet(f, SheetMissing, missing); err != nil {
		return err
	}

	numeric := [][]any{{"Column", "Mean", "Median", "Std Dev", "Min", "Max", "Count", "Missing"}}
	for _, s := range rep.Numeric {
		d := s.Display()
		numeric = append(numeric, []any{d.Column, d.Mean, d.Median, d.StdDev, d.Min, d.Max, d.Count, d.Missing})
	}
	if err := addSheet(f, SheetNumeric, numeric); err != nil {
		return err
	}

	cats := [][]any{{"Column", "Value", "Count", "Percentage"}}
	for _, c := range rep.Categorical {
		for _, kv := range c.Counts {
			cats = append(cats, []any{c.Column, kv.Value, kv.Count, analysis.Round(kv.Percentage, analysis.StatPlaces)})
		}
	}
	if err := addSheet(f, SheetCategorical, cats); err != nil {
		return err
	}

	if o := rep.Outcome; o != nil {
		out := [][]any{
			{"Column", "Group", "Total", "Positive", "Negative", "Rate %"},
			{"(all)", o.Overall.GroupKey, o.Overall.Total, o.Overall.Positive, o.Overall.Negative, o.Overall.Rate},
		}
		for _, g := range o.ByColumn {
			for _, b := range g.Groups {
				out = append(out, []any{g.Column, b.GroupKey, b.Total, b.Positive, b.Negative, b.Rate})
			}
		}
		if err := addSheet(f, SheetOutcome, out); err != nil {
			return err
		}
	}

	cols := dataset.Columns(ds)
	merged := make([][]any, 0, ds.Len()+1)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	merged = append(merged, header)
	for _, r := range ds.Rows {
		line := make([]any, len(cols))
		for i, c := range cols {
			line[i] = cellValue(r.Value(c))
		}
		merged = append(merged, line)
	}
	if err := addSheet(f, SheetMerged, merged); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cellValue(v dataset.Value) any {
	if !dataset.IsPresent(v) {
		return nil
	}
	switch v.Kind {
	case dataset.Number:
		return v.Num
	case dataset.Bool:
		return v.Num != 0
	default:
		return v.Str
	}
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
