// Package parser adapts delimited-text and spreadsheet readers into typed
// dataset rows.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// Options controls parsing of a single source.
type Options struct {
	// Delimiter for delimited text. If 0, chosen from the file name (',' or tab).
	Delimiter rune
	// InferTypes converts numeric and boolean fields and maps blanks to absent.
	InferTypes bool
	// RawColumns keep their text even when InferTypes is set (identifiers
	// with leading zeros, for example).
	RawColumns []string
	// Sheet selects the XLSX worksheet; empty means the first sheet.
	Sheet string
}

// DefaultOptions enables type inference.
func DefaultOptions() Options {
	return Options{InferTypes: true}
}

// Result is the parsed content of one source.
type Result struct {
	Header []string
	Rows   []dataset.Row
	// Errors lists every problem found, in input order. Callers abort on the
	// first one; see Result.Err.
	Errors []*dataset.ParseError
}

// Err returns the first parse error, or nil.
func (r *Result) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// Parser reads one source format.
type Parser interface {
	CanParse(filename string) bool
	Parse(name string, r io.Reader, opt Options) (*Result, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ErrEmptyInput indicates a source without a header row.
var ErrEmptyInput = errors.New("empty input")

// Parse selects a parser by name and reads r. The returned error is the first
// parse error, if any; the partial Result is still returned for inspection.
func Parse(name string, r io.Reader, opt Options) (*Result, error) {
	var p Parser = csvParser{}
	for _, cand := range registry {
		if cand.CanParse(name) {
			p = cand
			break
		}
	}
	res, err := p.Parse(name, r, opt)
	if err != nil {
		return res, err
	}
	return res, res.Err()
}

// ParseFile opens path and parses it with the matching parser.
func ParseFile(path string, opt Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return Parse(filepath.Base(path), f, opt)
}

func init() {
	Register(csvParser{})
	Register(xlsxParser{})
}
