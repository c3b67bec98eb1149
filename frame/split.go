// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// A Part is one partition of a Frame produced by Split.
type Part struct {
	// Key is the tuple of values of the split columns shared by
	// every row in this part.
	Key []interface{}

	// Rows are the indexes of this part's rows in the split Frame,
	// in their original order.
	Rows []int

	// Frame holds the rows of this part.
	Frame Frame
}

// Split partitions f by the distinct values of the named columns.
// Parts are ordered by key using CompareTuples, so the result does
// not depend on the order of rows in f. Rows keep their relative
// order within each part. Columns that f lacks are treated as NA in
// every row.
func (f Frame) Split(cols ...string) []Part {
	n := f.Len()
	if n == 0 {
		return nil
	}
	colVals := make([]reflect.Value, len(cols))
	for i, col := range cols {
		if c := f.Column(col); c != nil {
			colVals[i] = reflect.ValueOf(c)
		}
	}
	key := func(row int) []interface{} {
		k := make([]interface{}, len(cols))
		for i, cv := range colVals {
			if cv.IsValid() {
				k[i] = cv.Index(row).Interface()
			}
		}
		return k
	}

	// Bucket rows by formatted key, then order the buckets.
	var parts []*Part
	index := make(map[string]*Part)
	for row := 0; row < n; row++ {
		k := key(row)
		ks := fmt.Sprintf("%#v", k)
		p := index[ks]
		if p == nil {
			p = &Part{Key: k}
			index[ks] = p
			parts = append(parts, p)
		}
		p.Rows = append(p.Rows, row)
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return CompareTuples(parts[i].Key, parts[j].Key) < 0
	})

	// Keys that format differently but compare equal, such as 0
	// and -0, or NaN and nil, name the same part.
	merged := parts[:1]
	for _, p := range parts[1:] {
		last := merged[len(merged)-1]
		if CompareTuples(last.Key, p.Key) == 0 {
			last.Rows = append(last.Rows, p.Rows...)
			sort.Ints(last.Rows)
			continue
		}
		merged = append(merged, p)
	}

	out := make([]Part, len(merged))
	for i, p := range merged {
		p.Frame = f.Select(p.Rows)
		out[i] = *p
	}
	return out
}

// Concat returns the rows of all frames, in order. The result has the
// union of the frames' columns in order of first appearance. Where a
// frame lacks a column, its rows get NA, and a column whose type has
// no NA value is widened to hold one: integer columns become
// []float64 and other columns become []string. Columns of differing
// numeric types are widened to []float64; other type conflicts are
// resolved by formatting values as strings.
func Concat(frames ...Frame) Frame {
	var cols []string
	types := make(map[string]reflect.Type)
	total := 0
	for _, f := range frames {
		total += f.Len()
		for _, col := range f.Columns() {
			et := reflect.TypeOf(f.Column(col))
			if old, ok := types[col]; !ok {
				cols = append(cols, col)
				types[col] = et
			} else if old != et {
				types[col] = unify(old, et)
			}
		}
	}
	for _, f := range frames {
		if f.Len() == 0 {
			continue
		}
		for _, col := range cols {
			if !f.Has(col) {
				types[col] = nullable(types[col])
			}
		}
	}
	if total == 0 {
		// Keep the column structure of an all-empty result.
		b := new(table.Builder)
		for _, col := range cols {
			b.Add(col, reflect.MakeSlice(types[col], 0, 0).Interface())
		}
		return Frame{b.Done()}
	}

	b := new(table.Builder)
	for _, col := range cols {
		st := types[col]
		var pieces []slice.T
		for _, f := range frames {
			if f.Len() == 0 {
				continue
			}
			c := f.Column(col)
			if c == nil {
				c = naSlice(st, f.Len())
			} else {
				c = convertTo(c, st)
			}
			pieces = append(pieces, c)
		}
		b.Add(col, slice.Concat(pieces...))
	}
	return Frame{b.Done()}
}

var (
	float64sType = reflect.TypeOf([]float64(nil))
	stringsType  = reflect.TypeOf([]string(nil))
)

func unify(a, b reflect.Type) reflect.Type {
	if cardinalKinds[a.Elem().Kind()] && cardinalKinds[b.Elem().Kind()] {
		return float64sType
	}
	return stringsType
}

func convertTo(s table.Slice, st reflect.Type) table.Slice {
	if reflect.TypeOf(s) == st {
		return s
	}
	switch st {
	case float64sType:
		var xs []float64
		slice.Convert(&xs, s)
		return xs
	case stringsType:
		sv := reflect.ValueOf(s)
		out := make([]string, sv.Len())
		for i := range out {
			v := sv.Index(i).Interface()
			if !IsNA(v) {
				out[i] = fmt.Sprint(v)
			}
		}
		return out
	}
	panic(fmt.Sprintf("frame: cannot convert %T to %s", s, st))
}

// nullable returns a column type that can hold NA and every value of
// a column of type st.
func nullable(st reflect.Type) reflect.Type {
	switch k := st.Elem().Kind(); {
	case k == reflect.Float64, k == reflect.Float32, st == stringsType:
		return st
	case cardinalKinds[k]:
		return float64sType
	}
	return stringsType
}

// naSlice returns a slice of type st and length n filled with NA.
func naSlice(st reflect.Type, n int) table.Slice {
	sv := reflect.MakeSlice(st, n, n)
	switch st.Elem().Kind() {
	case reflect.Float64, reflect.Float32:
		nan := reflect.ValueOf(math.NaN()).Convert(st.Elem())
		for i := 0; i < n; i++ {
			sv.Index(i).Set(nan)
		}
	}
	return sv.Interface()
}
