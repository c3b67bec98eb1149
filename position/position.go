// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package position implements the built-in position adjustments.
//
// Adjustments are configured by their field values, so the zero value
// of each type is its default. Each adjustment only rewrites position
// columns the data already has; it never adds or removes columns.
package position

import (
	"math"
	"sort"

	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// Register registers the default configuration of each built-in
// position adjustment with reg.
func Register(reg *layer.Registry) {
	for _, p := range []layer.Position{
		Identity{},
		Stack{},
		Fill{},
		Dodge{},
		Jitter{},
		Nudge{},
	} {
		reg.RegisterPosition(p)
	}
}

var (
	xColumns = []string{"x", "xmin", "xmax", "xend"}
	yColumns = []string{"y", "ymin", "ymax", "yend"}
)

// Identity leaves positions unchanged.
type Identity struct{}

func (Identity) Name() string { return "identity" }

func (Identity) ComputePanel(data frame.Frame, params layer.Params, r panel.Ranges) (frame.Frame, error) {
	return data, nil
}

// Nudge shifts every position by a fixed offset.
type Nudge struct {
	X, Y float64
}

func (Nudge) Name() string { return "nudge" }

func (n Nudge) ComputePanel(data frame.Frame, params layer.Params, r panel.Ranges) (frame.Frame, error) {
	data = shift(data, xColumns, func(int) float64 { return n.X })
	return shift(data, yColumns, func(int) float64 { return n.Y }), nil
}

// shift adds by(i) to row i of each of the named columns data has.
func shift(data frame.Frame, cols []string, by func(i int) float64) frame.Frame {
	for _, col := range cols {
		c := data.Column(col)
		if c == nil || !frame.IsNumeric(c) {
			continue
		}
		xs := data.Float64s(col)
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = x + by(i)
		}
		data = data.With(col, out)
	}
	return data
}

// groups returns the group of each row of data.
func groups(data frame.Frame) []int {
	if gs := data.Ints(frame.Group); gs != nil {
		return gs
	}
	return make([]int, data.Len())
}

// byX partitions the rows of data by their x value, in increasing
// order of x. Rows with a missing x are omitted.
func byX(data frame.Frame) [][]int {
	xs := data.Float64s("x")
	if xs == nil {
		xs = data.Float64s("xmin")
	}
	idx := make(map[float64][]int)
	var keys []float64
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if _, ok := idx[x]; !ok {
			keys = append(keys, x)
		}
		idx[x] = append(idx[x], i)
	}
	sort.Float64s(keys)
	out := make([][]int, len(keys))
	for i, k := range keys {
		out[i] = idx[k]
	}
	return out
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
