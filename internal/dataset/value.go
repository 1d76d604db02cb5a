package dataset

import (
	"math"
	"strconv"
)

// Kind identifies the dynamic type held by a Value.
type Kind uint8

const (
	Absent Kind = iota
	Number
	String
	Bool
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return "absent"
	}
}

// Value is a single cell. The zero Value is absent.
// Booleans are stored as 0/1 in Num so they take part in numeric comparisons.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

func NumberValue(f float64) Value { return Value{Kind: Number, Num: f} }
func StringValue(s string) Value  { return Value{Kind: String, Str: s} }

func BoolValue(b bool) Value {
	if b {
		return Value{Kind: Bool, Num: 1}
	}
	return Value{Kind: Bool, Num: 0}
}

// IsPresent reports whether v carries a usable value: not absent, not an
// empty string and not a numeric NaN. A numeric zero is present.
//
// Every analysis stage uses this predicate; do not reimplement it.
func IsPresent(v Value) bool {
	switch v.Kind {
	case Number:
		return !math.IsNaN(v.Num)
	case String:
		return v.Str != ""
	case Bool:
		return true
	default:
		return false
	}
}

// Float returns the numeric form of v for numbers and booleans.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case Number, Bool:
		return v.Num, true
	default:
		return 0, false
	}
}

// String renders v in its natural textual form. Absent renders as "".
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case String:
		return v.Str
	case Bool:
		if v.Num != 0 {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Key is the grouping key used for category counts and outcome partitions.
func (v Value) Key() string { return v.String() }
