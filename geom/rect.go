// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/mark"
)

var rectDefaults = []layer.Default{
	{Aes: "fill", Value: "grey35"},
	{Aes: "linewidth", Value: 0.5},
	{Aes: "alpha", Value: math.NaN()},
}

// Rect draws the rectangle [xmin, xmax] x [ymin, ymax] for each row.
type Rect struct{}

func (Rect) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "rect",
		Required: []string{"xmin", "xmax", "ymin", "ymax"},
		Defaults: rectDefaults,
		Optional: []string{"colour"},
	}
}

func (Rect) DrawPanel(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	return drawRects(data), nil
}

func (Rect) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	return rectKey(key)
}

func drawRects(data frame.Frame) mark.Mark {
	data = complete(data, "xmin", "xmax", "ymin", "ymax")
	if data.Empty() {
		return nil
	}
	return &mark.Rects{
		XMin:   data.Float64s("xmin"),
		XMax:   data.Float64s("xmax"),
		YMin:   data.Float64s("ymin"),
		YMax:   data.Float64s("ymax"),
		Colour: colours(data, "colour", false),
		Fill:   colours(data, "fill", true),
		Width:  floats(data, "linewidth"),
	}
}

// rectKey fills the key area.
func rectKey(key frame.Frame) mark.Mark {
	key = key.With("xmin", []float64{0}).With("xmax", []float64{1}).
		With("ymin", []float64{0}).With("ymax", []float64{1})
	if m := drawRects(key); m != nil {
		return m
	}
	return mark.Null{}
}

// Tile draws a rectangle centered on each (x, y). Its size is given by
// the width and height aesthetics or parameters, defaulting to the
// resolution of the data.
type Tile struct{}

func (Tile) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "tile",
		Required: []string{"x", "y"},
		Defaults: rectDefaults,
		Optional: []string{"colour", "width", "height"},
	}
}

func (Tile) SetupData(data frame.Frame, params layer.Params) (frame.Frame, error) {
	ws := widthOf(data, params, "width", "x", 1)
	hs := widthOf(data, params, "height", "y", 1)
	xs, ys := data.Float64s("x"), data.Float64s("y")
	xmin, xmax := make([]float64, len(xs)), make([]float64, len(xs))
	ymin, ymax := make([]float64, len(xs)), make([]float64, len(xs))
	for i := range xs {
		xmin[i], xmax[i] = xs[i]-ws[i]/2, xs[i]+ws[i]/2
		ymin[i], ymax[i] = ys[i]-hs[i]/2, ys[i]+hs[i]/2
	}
	return data.With("xmin", xmin).With("xmax", xmax).With("ymin", ymin).With("ymax", ymax), nil
}

func (Tile) DrawPanel(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	return drawRects(data), nil
}

func (Tile) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	return rectKey(key)
}

// Bar draws a bar from zero to y at each x. Bars are 90% of the
// resolution of x wide unless the width aesthetic or parameter says
// otherwise. Bar is usually combined with the count stat.
type Bar struct{}

func (Bar) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "bar",
		Required: []string{"x", "y"},
		Defaults: rectDefaults,
		Optional: []string{"colour", "width"},
	}
}

func (Bar) SetupData(data frame.Frame, params layer.Params) (frame.Frame, error) {
	ws := widthOf(data, params, "width", "x", 0.9)
	xs, ys := data.Float64s("x"), data.Float64s("y")
	xmin, xmax := make([]float64, len(xs)), make([]float64, len(xs))
	ymin, ymax := make([]float64, len(xs)), make([]float64, len(xs))
	for i := range xs {
		xmin[i], xmax[i] = xs[i]-ws[i]/2, xs[i]+ws[i]/2
		ymin[i], ymax[i] = math.Min(ys[i], 0), math.Max(ys[i], 0)
	}
	return data.With("width", ws).
		With("xmin", xmin).With("xmax", xmax).
		With("ymin", ymin).With("ymax", ymax), nil
}

func (Bar) DrawPanel(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	return drawRects(data), nil
}

func (Bar) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	return rectKey(key)
}

// Col is a Bar meant for data that already has y values.
type Col struct{ Bar }

func (Col) Info() layer.GeomInfo {
	info := Bar{}.Info()
	info.Name = "col"
	return info
}
