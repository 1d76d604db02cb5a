package dataset

// Columns returns the union of row keys in first-seen order. Reading only the
// first row would drop columns that exist on one source alone (the outcome
// column when test rows come first).
func Columns(d *Dataset) []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range d.Rows {
		for _, k := range r.keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}

// SampleValues returns up to k distinct present values of column drawn from
// the first n rows, in first-seen order. It is meant for previews only.
func SampleValues(d *Dataset, column string, n, k int) []Value {
	if d == nil || k <= 0 {
		return nil
	}
	if n <= 0 || n > len(d.Rows) {
		n = len(d.Rows)
	}
	seen := make(map[string]struct{})
	var out []Value
	for _, r := range d.Rows[:n] {
		v := r.Value(column)
		if !IsPresent(v) {
			continue
		}
		key := v.Kind.String() + ":" + v.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
		if len(out) >= k {
			break
		}
	}
	return out
}

// Preview returns the first n rows.
func Preview(d *Dataset, n int) []Row {
	if d == nil || n <= 0 {
		return nil
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}
