// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the built-in geoms.
//
// Geoms receive data whose position aesthetics have already been
// transformed into panel coordinates by the plot's coordinate system,
// and whose other aesthetics have been mapped by their scales, and
// turn it into marks. Rows with a missing position are not drawn.
package geom

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/mark"
)

// Register registers all built-in geoms with reg.
func Register(reg *layer.Registry) error {
	for _, g := range []layer.Geom{
		Point{},
		Path{},
		Line{},
		Step{},
		Area{},
		Rect{},
		Tile{},
		Bar{},
		Col{},
		Text{},
		Segment{},
		Blank{},
	} {
		if err := reg.RegisterGeom(g); err != nil {
			return err
		}
	}
	return nil
}

// floats returns numeric column col of data, or nil if there is no
// such column or it is not numeric.
func floats(data frame.Frame, col string) []float64 {
	c := data.Column(col)
	if c == nil || !frame.IsNumeric(c) {
		return nil
	}
	return data.Float64s(col)
}

// strs returns column col of data formatted as strings, or nil if
// there is no such column.
func strs(data frame.Frame, col string) []string {
	c := data.Column(col)
	if c == nil {
		return nil
	}
	if ss, ok := c.([]string); ok {
		return ss
	}
	out := make([]string, data.Len())
	for i := range out {
		out[i] = fmt.Sprint(data.Value(col, i))
	}
	return out
}

// colours returns column col of data as colours, or nil if there is no
// such column. If withAlpha is set, the alpha column is applied.
func colours(data frame.Frame, col string, withAlpha bool) []color.Color {
	c := data.Column(col)
	if c == nil {
		return nil
	}
	var alpha []float64
	if withAlpha {
		alpha = floats(data, "alpha")
	}
	return mark.Colors(c, alpha)
}

// first returns xs[0], or def if xs is empty.
func first(xs []float64, def float64) float64 {
	if len(xs) == 0 {
		return def
	}
	return xs[0]
}

// complete returns the rows of data in which every named column is
// present and finite. Columns data lacks are ignored.
func complete(data frame.Frame, cols ...string) frame.Frame {
	var vals [][]float64
	for _, col := range cols {
		if xs := floats(data, col); xs != nil {
			vals = append(vals, xs)
		}
	}
	var keep []int
rows:
	for i := 0; i < data.Len(); i++ {
		for _, xs := range vals {
			if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	if len(keep) == data.Len() {
		return data
	}
	return data.Select(keep)
}

// sortRows returns data stably sorted by the named columns. Columns
// data lacks are ignored.
func sortRows(data frame.Frame, cols ...string) frame.Frame {
	var have []string
	for _, col := range cols {
		if data.Has(col) {
			have = append(have, col)
		}
	}
	key := func(row int) []interface{} {
		k := make([]interface{}, len(have))
		for i, col := range have {
			k[i] = data.Value(col, row)
		}
		return k
	}
	rows := make([]int, data.Len())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return frame.CompareTuples(key(rows[i]), key(rows[j])) < 0
	})
	return data.Select(rows)
}

// resolution returns the smallest gap between distinct values of xs,
// or 1 if xs has fewer than two distinct values.
func resolution(xs []float64) float64 {
	vals := append([]float64(nil), xs...)
	sort.Float64s(vals)
	res := math.Inf(1)
	for i := 1; i < len(vals); i++ {
		if d := vals[i] - vals[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}

// widthOf returns the per-row widths of data: the width column if
// there is one, else the given parameter, else frac times the
// resolution of column col.
func widthOf(data frame.Frame, params layer.Params, param, col string, frac float64) []float64 {
	if ws := floats(data, param); ws != nil {
		return ws
	}
	w := params.Float(param, math.NaN())
	if math.IsNaN(w) {
		w = frac * resolution(floats(data, col))
	}
	ws := make([]float64, data.Len())
	for i := range ws {
		ws[i] = w
	}
	return ws
}
