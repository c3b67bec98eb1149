// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/ggbuild/frame"
)

// axis is the trained state of one position axis.
type axis struct {
	free bool
	kind Kind

	// levels are the distinct discrete values seen on this axis,
	// sorted. Levels are never reset.
	levels []interface{}
	seen   map[interface{}]bool

	// bounds maps a panel ID to the continuous data range trained
	// on that panel. If the axis is not free, all panels train
	// bounds[0].
	bounds map[int][2]float64
}

func newAxis(free bool) *axis {
	return &axis{
		free:   free,
		seen:   make(map[interface{}]bool),
		bounds: make(map[int][2]float64),
	}
}

func (c *Context) axisOf(name string) *axis {
	if Axis(name) == "y" {
		return c.y
	}
	return c.x
}

func (a *axis) key(panel int) int {
	if a.free {
		return panel
	}
	return 0
}

func (a *axis) include(panel int, lo, hi float64) {
	k := a.key(panel)
	b, ok := a.bounds[k]
	if !ok {
		a.bounds[k] = [2]float64{lo, hi}
		return
	}
	a.bounds[k] = [2]float64{math.Min(b[0], lo), math.Max(b[1], hi)}
}

func (a *axis) addLevels(vals []interface{}) {
	added := false
	for _, v := range vals {
		if frame.IsNA(v) || a.seen[v] {
			continue
		}
		a.seen[v] = true
		a.levels = append(a.levels, v)
		added = true
	}
	if added {
		sort.SliceStable(a.levels, func(i, j int) bool {
			return frame.Compare(a.levels[i], a.levels[j]) < 0
		})
	}
}

func (a *axis) level(v interface{}) float64 {
	if frame.IsNA(v) {
		return math.NaN()
	}
	i := sort.Search(len(a.levels), func(i int) bool {
		return frame.Compare(a.levels[i], v) >= 0
	})
	if i < len(a.levels) && frame.Compare(a.levels[i], v) == 0 {
		return float64(i + 1)
	}
	return math.NaN()
}

// TrainPosition expands the position ranges to cover the position
// columns of frames. Discrete columns add levels to their axis.
// Numeric columns expand the continuous range of their axis in the
// panel of each row.
func (c *Context) TrainPosition(frames []frame.Frame) {
	for _, f := range frames {
		if f.Len() == 0 {
			continue
		}
		panels := f.Ints(frame.Panel)
		for _, col := range f.Columns() {
			name := Axis(col)
			if name == "" {
				continue
			}
			a := c.axisOf(name)
			vals := f.Column(col)
			if !frame.IsNumeric(vals) {
				a.addLevels(values(vals))
				continue
			}
			xs := f.Float64s(col)
			if panels == nil || !a.free {
				if lo, hi, ok := bounds(xs); ok {
					a.include(1, lo, hi)
				}
				continue
			}
			byPanel := make(map[int][]float64)
			for i, x := range xs {
				byPanel[panels[i]] = append(byPanel[panels[i]], x)
			}
			for p, xs := range byPanel {
				if lo, hi, ok := bounds(xs); ok {
					a.include(p, lo, hi)
				}
			}
		}
	}
}

// ResetPosition clears the continuous ranges of both position axes.
// Discrete levels are kept.
func (c *Context) ResetPosition() {
	c.x.bounds = make(map[int][2]float64)
	c.y.bounds = make(map[int][2]float64)
}

// MapPosition replaces discrete position columns of f with the
// 1-based index of each value among its axis's levels. Numeric
// position columns are unchanged.
func (c *Context) MapPosition(f frame.Frame) frame.Frame {
	out := f
	for _, col := range f.Columns() {
		name := Axis(col)
		if name == "" {
			continue
		}
		vals := f.Column(col)
		if frame.IsNumeric(vals) {
			continue
		}
		a := c.axisOf(name)
		vs := values(vals)
		xs := make([]float64, len(vs))
		for i, v := range vs {
			xs[i] = a.level(v)
		}
		out = out.With(col, xs)
	}
	return out
}

// Ranges is the trained position range of one panel, after
// expansion.
type Ranges struct {
	X, Y scale.Linear

	// XLevels and YLevels are the discrete levels of each axis, or
	// nil if the axis is continuous. Level i is drawn at i+1.
	XLevels, YLevels []interface{}
}

// Ranges returns the position ranges of panel. Continuous ranges are
// widened by 5% on each side. Discrete ranges span all levels and are
// widened by 0.6 on each side.
func (c *Context) Ranges(panel int) Ranges {
	var r Ranges
	r.X, r.XLevels = c.x.rangeOf(panel)
	r.Y, r.YLevels = c.y.rangeOf(panel)
	return r
}

func (a *axis) rangeOf(panel int) (scale.Linear, []interface{}) {
	b, ok := a.bounds[a.key(panel)]
	discrete := a.kind == Discrete || (len(a.levels) > 0 && !ok)
	if discrete {
		lo, hi := 1.0, float64(len(a.levels))
		if len(a.levels) == 0 {
			lo, hi = b[0], b[1]
		} else if ok {
			lo, hi = math.Min(lo, b[0]), math.Max(hi, b[1])
		}
		return scale.Linear{Min: lo - 0.6, Max: hi + 0.6}, append([]interface{}(nil), a.levels...)
	}
	if !ok {
		return scale.Linear{Min: -1, Max: 1}, nil
	}
	lo, hi := b[0], b[1]
	if lo == hi {
		return scale.Linear{Min: lo - 0.5, Max: hi + 0.5}, nil
	}
	pad := 0.05 * (hi - lo)
	return scale.Linear{Min: lo - pad, Max: hi + pad}, nil
}

// bounds returns the range of the finite values in xs.
func bounds(xs []float64) (lo, hi float64, ok bool) {
	fin := finite(xs)
	if len(fin) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Bounds(fin)
	return lo, hi, true
}

func values(s interface{}) []interface{} {
	sv := reflect.ValueOf(s)
	out := make([]interface{}, sv.Len())
	for i := range out {
		out[i] = sv.Index(i).Interface()
	}
	return out
}
