package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

// Parse reads delimited text with a header row. Ragged rows are recorded and
// skipped; quoting errors stop the read because the reader cannot resync.
func (csvParser) Parse(name string, in io.Reader, opt Options) (*Result, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(name)
	}
	r := csv.NewReader(in)
	r.Comma = delim
	r.FieldsPerRecord = 0

	res := &Result{}
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			res.Errors = append(res.Errors, &dataset.ParseError{Source: name, Err: ErrEmptyInput})
			return res, nil
		}
		res.Errors = append(res.Errors, &dataset.ParseError{Source: name, Err: fmt.Errorf("read header: %w", err)})
		return res, nil
	}
	res.Header = cleanHeader(header)
	b := newRowBuilder(res.Header, opt)

	for n := 1; ; n++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			res.Errors = append(res.Errors, &dataset.ParseError{Source: name, Row: n, Err: err})
			if errors.Is(err, csv.ErrFieldCount) {
				continue
			}
			break
		}
		res.Rows = append(res.Rows, b.build(rec))
	}
	return res, nil
}

func sniffDelimiter(name string) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	return ','
}
