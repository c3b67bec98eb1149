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

// Text draws label at each (x, y).
type Text struct{}

func (Text) Info() layer.GeomInfo {
	return layer.GeomInfo{
		Name:     "text",
		Required: []string{"x", "y", "label"},
		Defaults: []layer.Default{
			{Aes: "colour", Value: "black"},
			{Aes: "size", Value: 3.88},
			{Aes: "angle", Value: 0.0},
			{Aes: "hjust", Value: 0.5},
			{Aes: "vjust", Value: 0.5},
			{Aes: "alpha", Value: math.NaN()},
		},
	}
}

func (Text) DrawPanel(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	data = complete(data, "x", "y")
	if data.Empty() {
		return nil, nil
	}
	return &mark.Texts{
		X:      data.Float64s("x"),
		Y:      data.Float64s("y"),
		Label:  strs(data, "label"),
		Colour: colours(data, "colour", true),
		Size:   floats(data, "size"),
		Angle:  floats(data, "angle"),
		HJust:  floats(data, "hjust"),
		VJust:  floats(data, "vjust"),
	}, nil
}

func (Text) DrawKey(key frame.Frame, params layer.Params) mark.Mark {
	key = key.With("x", []float64{0.5}).With("y", []float64{0.5}).With("label", []string{"a"})
	m, _ := Text{}.DrawPanel(key, layer.DrawContext{Params: params})
	if m == nil {
		return mark.Null{}
	}
	return m
}

// Blank draws nothing. Its layer still trains the scales.
type Blank struct{}

func (Blank) Info() layer.GeomInfo {
	return layer.GeomInfo{Name: "blank"}
}

func (Blank) DrawPanel(data frame.Frame, dc layer.DrawContext) (mark.Mark, error) {
	return mark.Null{}, nil
}
