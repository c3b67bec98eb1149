// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package position

import (
	"math/rand"
	"sort"

	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// Dodge places the groups that share an x position side by side.
//
// The dodging width is Width if it is non-zero, else the width of the
// widest xmin-xmax extent, else 0.9 times the resolution of x. It is
// divided evenly among the largest number of groups found at any x in
// the panel.
type Dodge struct {
	Width float64
}

func (Dodge) Name() string { return "dodge" }

func (d Dodge) SetupParams(data frame.Frame) (layer.Params, error) {
	w := d.Width
	if w == 0 {
		lo, hi := data.Float64s("xmin"), data.Float64s("xmax")
		for i := range lo {
			if ext := hi[i] - lo[i]; ext > w {
				w = ext
			}
		}
	}
	if w == 0 {
		w = 0.9 * resolution(data.Float64s("x"))
	}
	return layer.Params{"width": w}, nil
}

func (d Dodge) ComputePanel(data frame.Frame, params layer.Params, r panel.Ranges) (frame.Frame, error) {
	width := params.Float("width", 0.9)
	gs := groups(data)
	buckets := byX(data)

	n := 1
	for _, rows := range buckets {
		if k := len(distinctGroups(gs, rows)); k > n {
			n = k
		}
	}
	if n == 1 {
		return data, nil
	}

	offset := make([]float64, data.Len())
	for _, rows := range buckets {
		order := distinctGroups(gs, rows)
		for _, row := range rows {
			idx := sort.SearchInts(order, gs[row])
			offset[row] = width * ((float64(idx)+0.5)/float64(n) - 0.5)
		}
	}
	data = shift(data, []string{"x", "xend"}, func(i int) float64 { return offset[i] })

	// Shrink each row's extent to its share of the width.
	if data.Has("xmin") && data.Has("xmax") && data.Has("x") {
		xs := data.Float64s("x")
		half := width / float64(n) / 2
		lo, hi := make([]float64, len(xs)), make([]float64, len(xs))
		for i, x := range xs {
			lo[i], hi[i] = x-half, x+half
		}
		data = data.With("xmin", lo).With("xmax", hi)
	}
	return data, nil
}

// distinctGroups returns the sorted distinct groups of rows.
func distinctGroups(gs []int, rows []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, row := range rows {
		if !seen[gs[row]] {
			seen[gs[row]] = true
			out = append(out, gs[row])
		}
	}
	sort.Ints(out)
	return out
}

// Jitter adds uniform random noise to positions to reduce
// overplotting. Width and Height bound the noise in each direction;
// zero means 40% of the resolution of the data. Set
// NoHeight to leave y alone. The noise comes from a generator seeded
// with Seed, so a given configuration always jitters the same data
// the same way.
type Jitter struct {
	Width, Height float64
	NoHeight      bool
	Seed          int64
}

func (Jitter) Name() string { return "jitter" }

func (j Jitter) SetupParams(data frame.Frame) (layer.Params, error) {
	w, h := j.Width, j.Height
	if w == 0 {
		w = 0.4 * resolution(data.Float64s("x"))
	}
	if h == 0 && !j.NoHeight {
		h = 0.4 * resolution(data.Float64s("y"))
	}
	if j.NoHeight {
		h = 0
	}
	return layer.Params{"width": w, "height": h}, nil
}

func (j Jitter) ComputePanel(data frame.Frame, params layer.Params, r panel.Ranges) (frame.Frame, error) {
	w, h := params.Float("width", 0), params.Float("height", 0)
	rng := rand.New(rand.NewSource(j.Seed))
	dx, dy := make([]float64, data.Len()), make([]float64, data.Len())
	for i := range dx {
		dx[i] = (2*rng.Float64() - 1) * w
		dy[i] = (2*rng.Float64() - 1) * h
	}
	if w != 0 {
		data = shift(data, xColumns, func(i int) float64 { return dx[i] })
	}
	if h != 0 {
		data = shift(data, yColumns, func(i int) float64 { return dy[i] })
	}
	return data, nil
}
