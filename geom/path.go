// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/mark"
)

var lineDefaults = []layer.Default{
	{Aes: "colour", Value: "black"},
	{Aes: "linewidth", Value: 0.5},
	{Aes: "linetype", Value: "solid"},
	{Aes: "alpha", Value: math.NaN()},
}

// Path connects the observations of each group in data order.
type Path struct{}

func (Path) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "path",
		Required: []string{"x", "y"},
		Defaults: lineDefaults,
	}
}

func (Path) DrawGroup(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	return drawPath(data), nil
}

func (Path) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	return lineKey(key)
}

// drawPath draws one group as a polyline. Missing positions are
// skipped. If the colour varies along the group, it is drawn as
// segments instead, each taking the colour of its start.
func drawPath(data frame.Frame) mark.Mark {
	data = complete(data, "x", "y")
	if data.Len() < 2 {
		return nil
	}
	xs, ys := data.Float64s("x"), data.Float64s("y")
	cs := colours(data, "colour", true)
	width := first(floats(data, "linewidth"), 0.5)
	lt := "solid"
	if s := strs(data, "linetype"); s != nil {
		lt = s[0]
	}

	if constantColour(cs) {
		p := &mark.Path{X: xs, Y: ys, Width: width, Linetype: lt}
		if cs != nil {
			p.Colour = cs[0]
		}
		return p
	}
	n := len(xs) - 1
	s := &mark.Segments{
		X0: xs[:n], Y0: ys[:n], X1: xs[1:], Y1: ys[1:],
		Colour:   cs[:n],
		Width:    make([]float64, n),
		Linetype: make([]string, n),
	}
	for i := 0; i < n; i++ {
		s.Width[i], s.Linetype[i] = width, lt
	}
	return s
}

func constantColour(cs []color.Color) bool {
	for _, c := range cs {
		r0, g0, b0, a0 := cs[0].RGBA()
		r, g, b, a := c.RGBA()
		if r != r0 || g != g0 || b != b0 || a != a0 {
			return false
		}
	}
	return true
}

// lineKey draws a horizontal line across the middle of the key.
func lineKey(key frame.Frame) mark.Mark {
	key = key.With("x", []float64{0.1}).With("y", []float64{0.5})
	two := frame.Concat(key, key.With("x", []float64{0.9}))
	if m := drawPath(two); m != nil {
		return m
	}
	return mark.Null{}
}

// Line is a Path whose observations are ordered by x.
type Line struct{}

func (Line) Info() layer.GeomInfo {
	info := Path{}.Info()
	info.Name = "line"
	return info
}

func (Line) SetupData(data frame.Frame, params layer.Params) (frame.Frame, error) {
	return sortRows(data, frame.Panel, frame.Group, "x"), nil
}

func (Line) DrawGroup(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	return drawPath(data), nil
}

func (Line) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	return lineKey(key)
}

// Step connects observations ordered by x with stairs. The "direction"
// parameter is "hv" (the default) to go horizontally then vertically,
// "vh" for the reverse, or "mid" to step halfway between
// observations.
type Step struct{}

func (Step) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "step",
		Required: []string{"x", "y"},
		Defaults: lineDefaults,
		Params:   []string{"direction"},
	}
}

func (Step) SetupData(data frame.Frame, params layer.Params) (frame.Frame, error) {
	switch d := params.Str("direction", "hv"); d {
	case "hv", "vh", "mid":
	default:
		return frame.Frame{}, fmt.Errorf("unknown direction %q", d)
	}
	return sortRows(data, frame.Panel, frame.Group, "x"), nil
}

func (Step) DrawGroup(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	data = complete(data, "x", "y")
	if data.Len() < 2 {
		return nil, nil
	}
	xs, ys := stairs(data.Float64s("x"), data.Float64s("y"), dc.Params.Str("direction", "hv"))
	return drawPath(data.Select(make([]int, len(xs))).With("x", xs).With("y", ys)), nil
}

func (Step) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	return lineKey(key)
}

// stairs returns the vertices of a staircase through (xs, ys).
func stairs(xs, ys []float64, direction string) (sx, sy []float64) {
	n := len(xs)
	switch direction {
	case "vh":
		for i := 0; i < n; i++ {
			if i > 0 {
				sx, sy = append(sx, xs[i-1]), append(sy, ys[i])
			}
			sx, sy = append(sx, xs[i]), append(sy, ys[i])
		}
	case "mid":
		for i := 0; i < n; i++ {
			if i > 0 {
				mid := (xs[i-1] + xs[i]) / 2
				sx, sy = append(sx, mid, mid), append(sy, ys[i-1], ys[i])
			}
			sx, sy = append(sx, xs[i]), append(sy, ys[i])
		}
	default:
		for i := 0; i < n; i++ {
			if i > 0 {
				sx, sy = append(sx, xs[i]), append(sy, ys[i-1])
			}
			sx, sy = append(sx, xs[i]), append(sy, ys[i])
		}
	}
	return
}

// Segment draws a line segment from (x, y) to (xend, yend) for each
// row.
type Segment struct{}

func (Segment) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "segment",
		Required: []string{"x", "y", "xend", "yend"},
		Defaults: lineDefaults,
	}
}

func (Segment) DrawPanel(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	data = complete(data, "x", "y", "xend", "yend")
	if data.Empty() {
		return nil, nil
	}
	return &mark.Segments{
		X0:       data.Float64s("x"),
		Y0:       data.Float64s("y"),
		X1:       data.Float64s("xend"),
		Y1:       data.Float64s("yend"),
		Colour:   colours(data, "colour", true),
		Width:    floats(data, "linewidth"),
		Linetype: strs(data, "linetype"),
	}, nil
}

func (Segment) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	return lineKey(key)
}

// Area fills the region between y and zero along x, or between ymin
// and ymax if position adjustments have set them.
type Area struct{}

func (Area) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "area",
		Required: []string{"x", "y"},
		Defaults: []layer.Default{
			{Aes: "fill", Value: "grey20"},
			{Aes: "linewidth", Value: 0.5},
			{Aes: "linetype", Value: "solid"},
			{Aes: "alpha", Value: math.NaN()},
		},
		Optional: []string{"colour"},
	}
}

func (Area) SetupData(data frame.Frame, params layer.Params) (frame.Frame, error) {
	data = sortRows(data, frame.Panel, frame.Group, "x")
	if !data.Has("ymin") {
		data = data.WithConst("ymin", 0.0)
	}
	if !data.Has("ymax") {
		data = data.With("ymax", data.Float64s("y"))
	}
	return data, nil
}

func (Area) DrawGroup(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	flipped := dc.Coord != nil && dc.Coord.Flipped()
	if flipped {
		data = coord.FlipColumns(data)
	}
	data = complete(data, "x", "ymin", "ymax")
	if data.Len() < 2 {
		return nil, nil
	}
	xs, lo, hi := data.Float64s("x"), data.Float64s("ymin"), data.Float64s("ymax")
	n := len(xs)
	p := &mark.Path{
		X:     make([]float64, 0, 2*n),
		Y:     make([]float64, 0, 2*n),
		Width: first(floats(data, "linewidth"), 0.5),
	}
	for i := 0; i < n; i++ {
		p.X, p.Y = append(p.X, xs[i]), append(p.Y, hi[i])
	}
	for i := n - 1; i >= 0; i-- {
		p.X, p.Y = append(p.X, xs[i]), append(p.Y, lo[i])
	}
	if fs := colours(data, "fill", true); fs != nil {
		p.Fill = fs[0]
	}
	if cs := colours(data, "colour", false); cs != nil {
		p.Colour = cs[0]
	}
	if lt := strs(data, "linetype"); lt != nil {
		p.Linetype = lt[0]
	}
	if flipped {
		p.X, p.Y = p.Y, p.X
	}
	return p, nil
}

func (Area) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	return rectKey(key)
}
