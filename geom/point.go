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

// Point draws a symbol at each (x, y).
type Point struct{}

func (Point) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "point",
		Required: []string{"x", "y"},
		Defaults: []layer.Default{
			{Aes: "shape", Value: "circle"},
			{Aes: "colour", Value: "black"},
			{Aes: "size", Value: 1.5},
			{Aes: "alpha", Value: math.NaN()},
			{Aes: "stroke", Value: 0.5},
		},
		Optional: []string{"fill"},
	}
}

func (Point) DrawPanel(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	data = complete(data, "x", "y", "size")
	if data.Empty() {
		return nil, nil
	}
	return &mark.Points{
		X:      data.Float64s("x"),
		Y:      data.Float64s("y"),
		Colour: colours(data, "colour", true),
		Fill:   colours(data, "fill", true),
		Size:   floats(data, "size"),
		Shape:  strs(data, "shape"),
		Stroke: floats(data, "stroke"),
	}, nil
}

func (Point) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	m, _ := Point{}.DrawPanel(key.With("x", []float64{0.5}).With("y", []float64{0.5}), layer.DrawContext{Params: params})
	if m == nil {
		return mark.Null{}
	}
	return m
}
