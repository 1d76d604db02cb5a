package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/xuri/excelize/v2"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Parse reads the selected sheet. Short rows are padded (excelize trims
// trailing empty cells); rows wider than the header are parse errors.
func (xlsxParser) Parse(name string, in io.Reader, opt Options) (*Result, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, &dataset.ParseError{Source: name, Err: fmt.Errorf("open xlsx: %w", err)}
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return &Result{Errors: []*dataset.ParseError{{Source: name, Err: ErrEmptyInput}}}, nil
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &dataset.ParseError{Source: name, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	res := &Result{}
	if len(rows) == 0 || len(rows[0]) == 0 {
		res.Errors = append(res.Errors, &dataset.ParseError{Source: name, Err: ErrEmptyInput})
		return res, nil
	}
	res.Header = cleanHeader(rows[0])
	b := newRowBuilder(res.Header, opt)
	for i, rec := range rows[1:] {
		if blankRecord(rec) {
			continue
		}
		if len(rec) > len(res.Header) {
			res.Errors = append(res.Errors, &dataset.ParseError{
				Source: name,
				Row:    i + 1,
				Err:    fmt.Errorf("wrong number of fields: got %d, want %d", len(rec), len(res.Header)),
			})
			continue
		}
		res.Rows = append(res.Rows, b.build(rec))
	}
	return res, nil
}

// blankRecord matches encoding/csv, which skips empty lines.
func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
