// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coord implements coordinate systems, which map trained
// position data into the unit square of a panel.
package coord

import (
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/panel"
)

// A Coord maps the position columns of a frame into panel
// coordinates, where (0, 0) is the bottom left of the panel and (1, 1)
// is the top right.
type Coord interface {
	// Name returns the coordinate system's name.
	Name() string

	// Transform maps every numeric x and y position column of f
	// through r and returns the result. Other columns are
	// unchanged.
	Transform(f frame.Frame, r panel.Ranges) frame.Frame

	// Flipped reports whether the coordinate system swaps the x
	// and y axes.
	Flipped() bool
}

// Cartesian is the default Cartesian coordinate system.
type Cartesian struct {
	// XLim and YLim, if non-nil, override the trained range of
	// each axis. Data outside the limits maps outside [0, 1].
	XLim, YLim *[2]float64
}

func (Cartesian) Name() string { return "cartesian" }

func (Cartesian) Flipped() bool { return false }

func (c Cartesian) Transform(f frame.Frame, r panel.Ranges) frame.Frame {
	xs, ys := r.X, r.Y
	if c.XLim != nil {
		xs = scale.Linear{Min: c.XLim[0], Max: c.XLim[1]}
	}
	if c.YLim != nil {
		ys = scale.Linear{Min: c.YLim[0], Max: c.YLim[1]}
	}
	return transform(f, xs, ys)
}

// Flip is a Cartesian coordinate system with the x and y axes
// swapped: x data is drawn vertically and y data horizontally.
type Flip struct {
	Cartesian
}

func (Flip) Name() string { return "flip" }

func (Flip) Flipped() bool { return true }

func (c Flip) Transform(f frame.Frame, r panel.Ranges) frame.Frame {
	f = FlipColumns(f)
	r.X, r.Y = r.Y, r.X
	r.XLevels, r.YLevels = r.YLevels, r.XLevels
	c.XLim, c.YLim = c.YLim, c.XLim
	return c.Cartesian.Transform(f, r)
}

// FlipColumns swaps the names of the x and y position columns of f,
// so "xmin" becomes "ymin" and "y" becomes "x".
func FlipColumns(f frame.Frame) frame.Frame {
	var args []interface{}
	for _, col := range f.Columns() {
		name := col
		if to, ok := flipped[col]; ok {
			name = to
		}
		args = append(args, name, f.Column(col))
	}
	if len(args) == 0 {
		return f
	}
	return frame.Make(args...)
}

var flipped = map[string]string{}

func init() {
	pairs := [][2]string{
		{"x", "y"},
		{"xmin", "ymin"},
		{"xmax", "ymax"},
		{"xend", "yend"},
		{"xintercept", "yintercept"},
		{"xmin_final", "ymin_final"},
		{"xmax_final", "ymax_final"},
		{"x0", "y0"},
	}
	for _, p := range pairs {
		flipped[p[0]], flipped[p[1]] = p[1], p[0]
	}
}

func transform(f frame.Frame, xs, ys scale.Linear) frame.Frame {
	out := f
	for _, col := range f.Columns() {
		var s scale.Linear
		switch panel.Axis(col) {
		case "x":
			s = xs
		case "y":
			s = ys
		default:
			continue
		}
		if !frame.IsNumeric(f.Column(col)) {
			continue
		}
		vals := f.Float64s(col)
		mapped := make([]float64, len(vals))
		for i, v := range vals {
			mapped[i] = s.Map(v)
		}
		out = out.With(col, mapped)
	}
	return out
}
