// Package export renders the merged dataset and its analysis into files:
// delimited text, a JSON summary document and an XLSX workbook.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// WriteDelimited writes a header of dataset.Columns followed by one line per
// row. Missing values are written as empty fields; quoting follows RFC 4180.
func WriteDelimited(w io.Writer, ds *dataset.Dataset, delim rune) error {
	if ds.Empty() {
		return dataset.ErrEmptyDataset
	}
	if delim == 0 {
		delim = ','
	}
	cw := csv.NewWriter(w)
	cw.Comma = delim
	cols := dataset.Columns(ds)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(cols))
	for i, r := range ds.Rows {
		for j, c := range cols {
			v := r.Value(c)
			if dataset.IsPresent(v) {
				rec[j] = v.String()
			} else {
				rec[j] = ""
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DelimitedText renders ds as comma-delimited text.
func DelimitedText(ds *dataset.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := WriteDelimited(&buf, ds, ','); err != nil {
		return "", err
	}
	return buf.String(), nil
}
