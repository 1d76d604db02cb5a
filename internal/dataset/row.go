package dataset

// Row maps column names to values and remembers key insertion order.
// Rows are treated as immutable once they belong to a Dataset; use With to
// derive a modified copy.
type Row struct {
	keys []string
	vals map[string]Value
}

// NewRow builds a row from parallel header/value slices.
func NewRow(header []string, values []Value) Row {
	r := Row{keys: make([]string, 0, len(header)), vals: make(map[string]Value, len(header))}
	for i, h := range header {
		var v Value
		if i < len(values) {
			v = values[i]
		}
		r.set(h, v)
	}
	return r
}

func (r *Row) set(col string, v Value) {
	if r.vals == nil {
		r.vals = make(map[string]Value)
	}
	if _, ok := r.vals[col]; !ok {
		r.keys = append(r.keys, col)
	}
	r.vals[col] = v
}

// Get returns the value for col and whether the row carries that key at all.
func (r Row) Get(col string) (Value, bool) {
	v, ok := r.vals[col]
	return v, ok
}

// Value returns the value for col; missing keys yield the absent Value.
func (r Row) Value(col string) Value { return r.vals[col] }

// Has reports whether the row carries col as a key.
func (r Row) Has(col string) bool {
	_, ok := r.vals[col]
	return ok
}

// Keys returns the column names in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Len() int { return len(r.keys) }

// With returns a copy of r with col set to v. The receiver is not modified.
func (r Row) With(col string, v Value) Row {
	cp := Row{keys: make([]string, len(r.keys), len(r.keys)+1), vals: make(map[string]Value, len(r.vals)+1)}
	copy(cp.keys, r.keys)
	for k, val := range r.vals {
		cp.vals[k] = val
	}
	cp.set(col, v)
	return cp
}
