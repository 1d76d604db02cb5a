package dataset

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(kv ...any) Row {
	var header []string
	var vals []Value
	for i := 0; i+1 < len(kv); i += 2 {
		header = append(header, kv[i].(string))
		switch x := kv[i+1].(type) {
		case nil:
			vals = append(vals, Value{})
		case int:
			vals = append(vals, NumberValue(float64(x)))
		case float64:
			vals = append(vals, NumberValue(x))
		case string:
			vals = append(vals, StringValue(x))
		case bool:
			vals = append(vals, BoolValue(x))
		}
	}
	return NewRow(header, vals)
}

func TestIsPresent(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"absent", Value{}, false},
		{"empty string", StringValue(""), false},
		{"nan", NumberValue(math.NaN()), false},
		{"zero", NumberValue(0), true},
		{"false", BoolValue(false), true},
		{"text", StringValue("male"), true},
	}
	for _, c := range cases {
		if got := IsPresent(c.v); got != c.want {
			t.Errorf("%s: IsPresent = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "22", NumberValue(22).String())
	assert.Equal(t, "7.25", NumberValue(7.25).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "", Value{}.String())
}

func TestMergeTagsAndOrder(t *testing.T) {
	train := []Row{row("id", 1, "Survived", 1), row("id", 2, "Survived", 0)}
	test := []Row{row("id", 3), row("id", 4), row("id", 5)}

	ds := Merge(train, test, DefaultMergeOptions())
	require.Equal(t, len(train)+len(test), ds.Len())
	require.Len(t, ds.Train, 2)
	require.Len(t, ds.Test, 3)

	var gotIDs []string
	for i, r := range ds.Rows {
		gotIDs = append(gotIDs, r.Value("id").String())
		want := "train"
		if i >= len(train) {
			want = "test"
		}
		assert.Equal(t, want, r.Value("source").String(), "row %d", i)
	}
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5"}, gotIDs); diff != "" {
		t.Fatalf("merged order mismatch (-want +got):\n%s", diff)
	}
	// inputs untouched
	assert.False(t, train[0].Has("source"))
	assert.False(t, test[0].Has("source"))
}

func TestMergeKeepsDuplicates(t *testing.T) {
	r := row("id", 1)
	ds := Merge([]Row{r}, []Row{r}, DefaultMergeOptions())
	assert.Equal(t, 2, ds.Len())
}

func TestColumnsUnionAcrossRows(t *testing.T) {
	// test rows first: the outcome column must still be found
	ds := Merge(nil, []Row{row("id", 1, "Sex", "male")}, DefaultMergeOptions())
	ds.Rows = append(ds.Rows, row("id", 2, "Sex", "female", "Survived", 1).With("source", StringValue("train")))
	want := []string{"id", "Sex", "source", "Survived"}
	if diff := cmp.Diff(want, Columns(ds)); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleValuesSkipsMissing(t *testing.T) {
	ds := Merge([]Row{
		row("Embarked", "S"),
		row("Embarked", ""),
		row("Embarked", nil),
		row("Embarked", "C"),
		row("Embarked", "S"),
		row("Embarked", "Q"),
	}, nil, DefaultMergeOptions())

	got := SampleValues(ds, "Embarked", 5, 3)
	var keys []string
	for _, v := range got {
		keys = append(keys, v.String())
	}
	assert.Equal(t, []string{"S", "C"}, keys)
	assert.Len(t, SampleValues(ds, "Embarked", 0, 3), 3)
}

func TestSourceRows(t *testing.T) {
	ds := Merge([]Row{row("a", 1)}, []Row{row("a", 2), row("a", 3)}, DefaultMergeOptions())
	assert.Len(t, ds.SourceRows("train"), 1)
	assert.Len(t, ds.SourceRows("test"), 2)
	assert.Empty(t, ds.SourceRows("holdout"))
}

func TestErrorsUnwrap(t *testing.T) {
	base := fmt.Errorf("bare quote")
	var err error = &ParseError{Source: "train.csv", Row: 3, Err: base}
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "row 3")

	mi := &MissingInputError{Missing: []string{"test"}}
	assert.Contains(t, mi.Error(), "test")
}
