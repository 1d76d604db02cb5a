package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// numericPattern accepts plain decimal and scientific forms only; values such
// as "1,5", "0x1F" or "Inf" stay strings.
var numericPattern = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// inferValue converts one raw field.
func inferValue(raw string, infer bool) dataset.Value {
	if !infer {
		return dataset.StringValue(raw)
	}
	if raw == "" {
		return dataset.Value{}
	}
	switch raw {
	case "true", "TRUE", "True":
		return dataset.BoolValue(true)
	case "false", "FALSE", "False":
		return dataset.BoolValue(false)
	}
	if numericPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return dataset.NumberValue(f)
		}
	}
	return dataset.StringValue(raw)
}

// rowBuilder converts raw records into rows using a fixed header.
type rowBuilder struct {
	header []string
	raw    []bool
	infer  bool
}

func newRowBuilder(header []string, opt Options) *rowBuilder {
	rawSet := make(map[string]struct{}, len(opt.RawColumns))
	for _, c := range opt.RawColumns {
		rawSet[c] = struct{}{}
	}
	b := &rowBuilder{header: header, raw: make([]bool, len(header)), infer: opt.InferTypes}
	for i, h := range header {
		_, b.raw[i] = rawSet[h]
	}
	return b
}

func (b *rowBuilder) build(rec []string) dataset.Row {
	vals := make([]dataset.Value, len(b.header))
	for i := range b.header {
		if i >= len(rec) {
			continue
		}
		if b.raw[i] {
			if rec[i] != "" || !b.infer {
				vals[i] = dataset.StringValue(rec[i])
			}
			continue
		}
		vals[i] = inferValue(rec[i], b.infer)
	}
	return dataset.NewRow(b.header, vals)
}

func cleanHeader(h []string) []string {
	out := make([]string, len(h))
	for i, s := range h {
		s = strings.TrimSpace(s)
		if i == 0 {
			s = strings.TrimPrefix(s, "\ufeff")
		}
		out[i] = s
	}
	return out
}
