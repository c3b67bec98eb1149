// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame implements the row-set that flows between the stages
// of a layer build.
//
// A Frame is an ordered set of named, equal-length columns backed by
// a go-gg table.Table. Columns are typed slices ([]float64, []int,
// []string, []color.Color, and so on). Frames are immutable: every
// operation returns a new Frame and never modifies the receiver's
// columns.
//
// Two column names are reserved. Panel holds the 1-based panel
// identifier of each row and Group holds its group identifier, with
// NoGroup marking rows that belong to the single implicit group of
// their panel.
//
// Missing values (NA) are NaN in floating-point columns and the empty
// string in string columns.
package frame

import (
	"bytes"
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

const (
	// Panel is the column holding each row's panel identifier.
	Panel = "PANEL"

	// Group is the column holding each row's group identifier.
	Group = "GROUP"

	// NoGroup is the Group value of ungrouped rows.
	NoGroup = -1
)

// Frame is an immutable row-set. The zero Frame has no rows and no
// columns.
type Frame struct {
	t *table.Table
}

// New returns a Frame backed by t. The caller must not modify the
// columns of t after this point.
func New(t *table.Table) Frame {
	return Frame{t}
}

// Make returns a Frame from alternating column names and column
// slices. It panics if the arguments are malformed or the columns
// have different lengths.
func Make(namesAndCols ...interface{}) Frame {
	if len(namesAndCols)%2 != 0 {
		panic("frame.Make: odd number of arguments")
	}
	b := new(table.Builder)
	for i := 0; i < len(namesAndCols); i += 2 {
		name, ok := namesAndCols[i].(string)
		if !ok {
			panic(fmt.Sprintf("frame.Make: argument %d is %T, not a column name", i, namesAndCols[i]))
		}
		b.Add(name, namesAndCols[i+1])
	}
	return Frame{b.Done()}
}

// Table returns the table.Table backing f. It is never nil.
func (f Frame) Table() *table.Table {
	if f.t == nil {
		return new(table.Table)
	}
	return f.t
}

// Len returns the number of rows in f.
func (f Frame) Len() int {
	if f.t == nil {
		return 0
	}
	return f.t.Len()
}

// Empty reports whether f has no rows.
func (f Frame) Empty() bool {
	return f.Len() == 0
}

// Columns returns the names of f's columns in order.
func (f Frame) Columns() []string {
	if f.t == nil {
		return nil
	}
	return f.t.Columns()
}

// Has reports whether f has a column named col.
func (f Frame) Has(col string) bool {
	return f.Column(col) != nil
}

// Column returns the column named col, or nil if there is no such
// column.
func (f Frame) Column(col string) table.Slice {
	if f.t == nil {
		return nil
	}
	return f.t.Column(col)
}

// Float64s returns column col converted to []float64. It returns nil
// if there is no such column and panics if the column is not
// numeric.
func (f Frame) Float64s(col string) []float64 {
	c := f.Column(col)
	if c == nil {
		return nil
	}
	if xs, ok := c.([]float64); ok {
		return xs
	}
	var xs []float64
	slice.Convert(&xs, c)
	return xs
}

// Ints returns column col converted to []int. It returns nil if there
// is no such column.
func (f Frame) Ints(col string) []int {
	c := f.Column(col)
	if c == nil {
		return nil
	}
	if xs, ok := c.([]int); ok {
		return xs
	}
	var xs []int
	slice.Convert(&xs, c)
	return xs
}

// Value returns the value of column col in row i.
func (f Frame) Value(col string, i int) interface{} {
	return reflect.ValueOf(f.Column(col)).Index(i).Interface()
}

// With returns a copy of f with column col set to s, replacing any
// existing column of that name in place. s must have f.Len() rows
// unless f has no columns.
func (f Frame) With(col string, s table.Slice) Frame {
	return Frame{table.NewBuilder(f.t).Add(col, s).Done()}
}

// WithConst returns a copy of f with column col set to val in every
// row.
func (f Frame) WithConst(col string, val interface{}) Frame {
	return f.With(col, Repeat(Of(val), f.Len()))
}

// Without returns a copy of f without the named columns. Names that
// are not columns of f are ignored.
func (f Frame) Without(cols ...string) Frame {
	if f.t == nil {
		return f
	}
	b := table.NewBuilder(f.t)
	for _, col := range cols {
		if f.Has(col) {
			b.Add(col, nil)
		}
	}
	return Frame{b.Done()}
}

// Select returns the rows of f at the given indexes, in that order.
func (f Frame) Select(rows []int) Frame {
	b := new(table.Builder)
	for _, col := range f.Columns() {
		b.Add(col, slice.Select(f.Column(col), rows))
	}
	return Frame{b.Done()}
}

// Merge returns the union of the columns of f and g. Where both have
// a column of the same name, g's column wins. g must have the same
// number of rows as f unless one of them has no columns.
func (f Frame) Merge(g Frame) Frame {
	if len(g.Columns()) == 0 {
		return f
	}
	b := table.NewBuilder(f.t)
	for _, col := range g.Columns() {
		b.Add(col, g.Column(col))
	}
	return Frame{b.Done()}
}

// Rename returns a copy of f with column from renamed to to. It is a
// no-op if f has no column from.
func (f Frame) Rename(from, to string) Frame {
	if !f.Has(from) || from == to {
		return f
	}
	b := new(table.Builder)
	for _, col := range f.Columns() {
		name := col
		if col == from {
			name = to
		} else if col == to {
			continue
		}
		b.Add(name, f.Column(col))
	}
	return Frame{b.Done()}
}

// String formats f using table.Fprint.
func (f Frame) String() string {
	var buf bytes.Buffer
	table.Fprint(&buf, f.Table())
	return buf.String()
}

// Of returns a one-element slice holding val. The slice's element
// type is val's dynamic type, or interface{} if val is nil.
func Of(val interface{}) table.Slice {
	if val == nil {
		return []interface{}{nil}
	}
	switch v := val.(type) {
	case float64:
		return []float64{v}
	case int:
		return []int{v}
	case string:
		return []string{v}
	case bool:
		return []bool{v}
	}
	rv := reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(val)), 1, 1)
	rv.Index(0).Set(reflect.ValueOf(val))
	return rv.Interface()
}

// Repeat returns a slice of length n whose elements are all s[0]. s
// must have at least one element unless n is 0.
func Repeat(s table.Slice, n int) table.Slice {
	return slice.Select(s, make([]int, n))
}

// Len returns the length of s.
func Len(s table.Slice) int {
	if s == nil {
		return 0
	}
	return reflect.ValueOf(s).Len()
}

var cardinalKinds = map[reflect.Kind]bool{
	reflect.Float32: true,
	reflect.Float64: true,
	reflect.Int:     true,
	reflect.Int8:    true,
	reflect.Int16:   true,
	reflect.Int32:   true,
	reflect.Int64:   true,
	reflect.Uint:    true,
	reflect.Uint8:   true,
	reflect.Uint16:  true,
	reflect.Uint32:  true,
	reflect.Uint64:  true,
}

// IsNumeric reports whether s is a slice of a numeric kind. Numeric
// columns train continuous scales; all others are discrete.
func IsNumeric(s table.Slice) bool {
	if s == nil {
		return false
	}
	return cardinalKinds[reflect.TypeOf(s).Elem().Kind()]
}

// IsNA reports whether v is a missing value.
func IsNA(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case string:
		return v == ""
	}
	return false
}

// Compare orders two column values. Missing values sort after all
// other values, numbers compare numerically, strings compare
// lexically, and anything else compares by its formatted value.
func Compare(a, b interface{}) int {
	aNA, bNA := IsNA(a), IsNA(b)
	switch {
	case aNA && bNA:
		return 0
	case aNA:
		return 1
	case bNA:
		return -1
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if cardinalKinds[av.Kind()] && cardinalKinds[bv.Kind()] {
		x := av.Convert(float64Type).Float()
		y := bv.Convert(float64Type).Float()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	if av.Kind() == reflect.Bool && bv.Kind() == reflect.Bool {
		x, y := av.Bool(), bv.Bool()
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}

	var x, y string
	if av.Kind() == reflect.String && bv.Kind() == reflect.String {
		x, y = av.String(), bv.String()
	} else {
		x, y = fmt.Sprint(a), fmt.Sprint(b)
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// CompareTuples orders two equal-length tuples lexicographically
// using Compare.
func CompareTuples(a, b []interface{}) int {
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

var float64Type = reflect.TypeOf(float64(0))
