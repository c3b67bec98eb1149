// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mark defines the drawable primitives produced by geoms.
//
// Marks are plain data in panel coordinates, where (0, 0) is the
// bottom left of a panel and (1, 1) its top right. A sink, such as
// the render package, turns them into pixels.
package mark

import "image/color"

// A Mark is a drawable primitive.
type Mark interface {
	// Kind returns a short name for the kind of mark, for
	// debugging and tests.
	Kind() string
}

// Null draws nothing. It fills the slot of a panel that has no data.
type Null struct{}

func (Null) Kind() string { return "null" }

// Points is a set of point symbols.
type Points struct {
	X, Y   []float64
	Colour []color.Color
	Fill   []color.Color
	Size   []float64
	Shape  []string
	Stroke []float64
}

func (*Points) Kind() string { return "points" }

// Path is a single polyline, or a polygon if Fill is not nil.
type Path struct {
	X, Y     []float64
	Colour   color.Color
	Fill     color.Color
	Width    float64
	Linetype string
}

func (*Path) Kind() string { return "path" }

// Segments is a set of independent line segments.
type Segments struct {
	X0, Y0, X1, Y1 []float64
	Colour         []color.Color
	Width          []float64
	Linetype       []string
}

func (*Segments) Kind() string { return "segments" }

// Rects is a set of axis-aligned rectangles.
type Rects struct {
	XMin, XMax, YMin, YMax []float64
	Colour                 []color.Color
	Fill                   []color.Color
	Width                  []float64
}

func (*Rects) Kind() string { return "rects" }

// Texts is a set of text labels.
type Texts struct {
	X, Y   []float64
	Label  []string
	Colour []color.Color
	Size   []float64
	Angle  []float64
	HJust  []float64
	VJust  []float64
}

func (*Texts) Kind() string { return "texts" }

// Group is a composite of marks, drawn in order.
type Group struct {
	Name     string
	Children []Mark
}

func (*Group) Kind() string { return "group" }

// Walk calls fn for m and, recursively, for every child of m.
func Walk(m Mark, fn func(Mark)) {
	fn(m)
	if g, ok := m.(*Group); ok {
		for _, c := range g.Children {
			Walk(c, fn)
		}
	}
}

// IsNull reports whether m draws nothing.
func IsNull(m Mark) bool {
	null := true
	Walk(m, func(m Mark) {
		switch m.(type) {
		case Null, *Group:
		default:
			null = false
		}
	})
	return null
}
