package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDataset is returned when analysis or export runs before any data
// has been loaded, or the loaded data has no rows.
var ErrEmptyDataset = errors.New("no dataset loaded")

// ParseError reports malformed input text. Row is 1-based and counts data
// rows after the header; 0 means the error is not tied to a row.
type ParseError struct {
	Source string
	Row    int
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "parse error"
	}
	if e.Row > 0 {
		return fmt.Sprintf("error parsing %s: row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("error parsing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingInputError reports sources that were not supplied or do not exist.
type MissingInputError struct {
	Missing []string
}

func (e *MissingInputError) Error() string {
	if e == nil || len(e.Missing) == 0 {
		return "missing input"
	}
	return fmt.Sprintf("missing input: please provide both sources (missing %s)", strings.Join(e.Missing, ", "))
}

// DegenerateColumnError describes a numeric column whose present values are
// all identical. Binning handles it with an epsilon width; the error value is
// only used to describe the condition in report notes.
type DegenerateColumnError struct {
	Column string
	Value  float64
}

func (e *DegenerateColumnError) Error() string {
	return fmt.Sprintf("column %s has a single distinct value (%g); histogram uses one effective bin", e.Column, e.Value)
}
