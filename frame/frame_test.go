// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var nan = math.NaN()

func TestCompare(t *testing.T) {
	for _, test := range []struct {
		a, b interface{}
		want int
	}{
		{1, 2, -1},
		{2.5, 2, 1},
		{1, 1.0, 0},
		{int64(3), uint8(3), 0},
		{"a", "b", -1},
		{"b", "a", 1},
		{false, true, -1},
		{true, true, 0},

		// Missing values sort last and equal each other.
		{nil, 1, 1},
		{1, nil, -1},
		{nan, -1e300, 1},
		{"", "a", 1},
		{nan, nil, 0},
		{"", nan, 0},
	} {
		if got := Compare(test.a, test.b); got != test.want {
			t.Errorf("Compare(%#v, %#v) = %d, want %d", test.a, test.b, got, test.want)
		}
	}

	if got := CompareTuples([]interface{}{1, "b"}, []interface{}{1, "a"}); got != 1 {
		t.Errorf("CompareTuples = %d, want 1", got)
	}
}

func TestIsNA(t *testing.T) {
	for _, v := range []interface{}{nil, nan, float32(nan), ""} {
		if !IsNA(v) {
			t.Errorf("IsNA(%#v) = false", v)
		}
	}
	for _, v := range []interface{}{0, 0.0, "NA", false} {
		if IsNA(v) {
			t.Errorf("IsNA(%#v) = true", v)
		}
	}
}

// splitSummary returns the keys and rows of parts.
func splitSummary(parts []Part) ([][]interface{}, [][]int) {
	var keys [][]interface{}
	var rows [][]int
	for _, p := range parts {
		keys = append(keys, p.Key)
		rows = append(rows, p.Rows)
	}
	return keys, rows
}

func TestSplit(t *testing.T) {
	negZero := math.Copysign(0, -1)
	for _, test := range []struct {
		name  string
		f     Frame
		cols  []string
		keys  [][]interface{}
		rows  [][]int
		nrows []int
	}{
		{
			name: "strings with NA last",
			f:    Make("g", []string{"b", "a", "", "b"}),
			cols: []string{"g"},
			keys: [][]interface{}{{"a"}, {"b"}, {""}},
			rows: [][]int{{1}, {0, 3}, {2}},
		},
		{
			name: "numbers with NaN last",
			f:    Make("g", []float64{nan, 2, 1, 2}),
			cols: []string{"g"},
			keys: [][]interface{}{{1.0}, {2.0}, {nan}},
			rows: [][]int{{2}, {1, 3}, {0}},
		},
		{
			name: "two columns",
			f:    Make("p", []int{2, 1, 2, 1}, "g", []string{"x", "y", "x", "x"}),
			cols: []string{"p", "g"},
			keys: [][]interface{}{{1, "x"}, {1, "y"}, {2, "x"}},
			rows: [][]int{{3}, {1}, {0, 2}},
		},
		{
			name: "missing column",
			f:    Make("g", []int{1, 1}),
			cols: []string{"g", "nope"},
			keys: [][]interface{}{{1, nil}},
			rows: [][]int{{0, 1}},
		},
		{
			name: "signed zeros",
			f:    Make("g", []float64{0, 1, negZero, 0}),
			cols: []string{"g"},
			keys: [][]interface{}{{0.0}, {1.0}},
			rows: [][]int{{0, 2, 3}, {1}},
		},
		{
			name: "mixed numeric types",
			f:    Make("g", []interface{}{1, 2.0, 1.0, nil, math.NaN()}),
			cols: []string{"g"},
			keys: [][]interface{}{{1}, {2.0}, {nil}},
			rows: [][]int{{0, 2}, {1}, {3, 4}},
		},
	} {
		parts := test.f.Split(test.cols...)
		keys, rows := splitSummary(parts)
		if diff := cmp.Diff(test.keys, keys, cmpopts.EquateNaNs()); diff != "" {
			t.Errorf("%s: keys (-want +got):\n%s", test.name, diff)
		}
		if diff := cmp.Diff(test.rows, rows); diff != "" {
			t.Errorf("%s: rows (-want +got):\n%s", test.name, diff)
		}
		for _, p := range parts {
			if p.Frame.Len() != len(p.Rows) {
				t.Errorf("%s: part %v has %d rows, want %d", test.name, p.Key, p.Frame.Len(), len(p.Rows))
			}
		}
	}

	if parts := (Frame{}).Split("g"); parts != nil {
		t.Errorf("Split of an empty frame = %v, want nil", parts)
	}
}

func TestConcat(t *testing.T) {
	for _, test := range []struct {
		name   string
		frames []Frame
		want   map[string]interface{}
		cols   []string
	}{
		{
			name:   "same types",
			frames: []Frame{Make("a", []int{1}), Make("a", []int{2, 3})},
			cols:   []string{"a"},
			want:   map[string]interface{}{"a": []int{1, 2, 3}},
		},
		{
			name:   "numeric widening",
			frames: []Frame{Make("a", []int{1}), Make("a", []float64{2.5})},
			cols:   []string{"a"},
			want:   map[string]interface{}{"a": []float64{1, 2.5}},
		},
		{
			name:   "string fallback",
			frames: []Frame{Make("a", []int{1}), Make("a", []string{"x"})},
			cols:   []string{"a"},
			want:   map[string]interface{}{"a": []string{"1", "x"}},
		},
		{
			name:   "missing float and string columns",
			frames: []Frame{Make("f", []float64{1}), Make("s", []string{"x"})},
			cols:   []string{"f", "s"},
			want: map[string]interface{}{
				"f": []float64{1, nan},
				"s": []string{"", "x"},
			},
		},
		{
			name:   "missing int column becomes NaN",
			frames: []Frame{Make("x", []int{1, 2}, "n", []int{5, 5}), Make("x", []int{3})},
			cols:   []string{"x", "n"},
			want: map[string]interface{}{
				"x": []int{1, 2, 3},
				"n": []float64{5, 5, nan},
			},
		},
		{
			name:   "missing bool column becomes strings",
			frames: []Frame{Make("x", []int{3}), Make("x", []int{1}, "b", []bool{true})},
			cols:   []string{"x", "b"},
			want: map[string]interface{}{
				"x": []int{3, 1},
				"b": []string{"", "true"},
			},
		},
		{
			name:   "empty frames do not count as missing",
			frames: []Frame{Make("n", []int{1}), Make("m", []int{})},
			cols:   []string{"n", "m"},
			want: map[string]interface{}{
				"n": []int{1},
				"m": []float64{nan},
			},
		},
		{
			name:   "all empty",
			frames: []Frame{Make("n", []int{}), Make("s", []string{})},
			cols:   []string{"n", "s"},
			want: map[string]interface{}{
				"n": []int{},
				"s": []string{},
			},
		},
	} {
		got := Concat(test.frames...)
		if diff := cmp.Diff(test.cols, got.Columns()); diff != "" {
			t.Errorf("%s: columns (-want +got):\n%s", test.name, diff)
			continue
		}
		for col, want := range test.want {
			if diff := cmp.Diff(want, got.Column(col), cmpopts.EquateNaNs()); diff != "" {
				t.Errorf("%s: column %s (-want +got):\n%s", test.name, col, diff)
			}
		}
	}
}

func TestMerge(t *testing.T) {
	f := Make("a", []int{1, 2}, "b", []int{3, 4})
	g := Make("b", []string{"x", "y"}, "c", []float64{5, 6})
	got := f.Merge(g)
	if diff := cmp.Diff([]string{"a", "b", "c"}, got.Columns()); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, got.Column("b")); diff != "" {
		t.Errorf("merged b (-want +got):\n%s", diff)
	}

	if got := f.Merge(Frame{}); !cmp.Equal(got.Columns(), f.Columns()) {
		t.Errorf("merging an empty frame changed columns to %v", got.Columns())
	}
	if got := (Frame{}).Merge(g); !cmp.Equal(got.Columns(), g.Columns()) {
		t.Errorf("merging into an empty frame gave columns %v", got.Columns())
	}
}

func TestTransforms(t *testing.T) {
	f := Make("x", []float64{1, 2, 3}, "g", []string{"a", "b", "c"})

	if got := f.Select([]int{2, 0}); !cmp.Equal(got.Column("g"), []string{"c", "a"}) {
		t.Errorf("Select = %v", got)
	}
	if got := f.Without("x", "nope"); !cmp.Equal(got.Columns(), []string{"g"}) {
		t.Errorf("Without columns = %v", got.Columns())
	}
	if got := f.WithConst("k", 7); !cmp.Equal(got.Column("k"), []int{7, 7, 7}) {
		t.Errorf("WithConst k = %v", got.Column("k"))
	}

	r := f.Rename("x", "y")
	if diff := cmp.Diff([]string{"y", "g"}, r.Columns()); diff != "" {
		t.Errorf("Rename columns (-want +got):\n%s", diff)
	}
	// Renaming over an existing column replaces it.
	r = f.Rename("x", "g")
	if diff := cmp.Diff([]string{"g"}, r.Columns()); diff != "" {
		t.Errorf("Rename over g: columns (-want +got):\n%s", diff)
	}
	if !cmp.Equal(r.Column("g"), []float64{1, 2, 3}) {
		t.Errorf("Rename over g: g = %v", r.Column("g"))
	}
	if got := f.Rename("nope", "z"); !cmp.Equal(got.Columns(), f.Columns()) {
		t.Errorf("Rename of a missing column changed columns to %v", got.Columns())
	}

	if got := f.Ints("x"); !cmp.Equal(got, []int{1, 2, 3}) {
		t.Errorf("Ints = %v", got)
	}
	if f.Float64s("nope") != nil {
		t.Errorf("Float64s of a missing column is not nil")
	}
}

func TestOf(t *testing.T) {
	for _, test := range []struct {
		val  interface{}
		want interface{}
	}{
		{1.5, []float64{1.5}},
		{2, []int{2}},
		{"a", []string{"a"}},
		{true, []bool{true}},
		{nil, []interface{}{nil}},
		{int64(3), []int64{3}},
	} {
		got := Of(test.val)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Of(%#v) (-want +got):\n%s", test.val, diff)
		}
		if Len(got) != 1 {
			t.Errorf("Len(Of(%#v)) = %d", test.val, Len(got))
		}
	}
	if got := Repeat([]string{"a"}, 3); !cmp.Equal(got, []string{"a", "a", "a"}) {
		t.Errorf("Repeat = %v", got)
	}
	if !IsNumeric([]int{}) || IsNumeric([]string{}) {
		t.Errorf("IsNumeric misclassifies []int or []string")
	}
}
