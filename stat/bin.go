// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// Bin divides continuous x into equal-width bins and counts the rows
// in each bin.
//
// The bins are computed once for the whole layer so every group
// shares the same breaks. They are controlled by the parameters
// "binwidth", or "bins" (default 30) if binwidth is not set, plus
// "center" or "boundary" to align them. Bins are closed on the right
// unless "closed" is "left".
//
// The output has one row per bin with columns x (the bin center),
// xmin, xmax, width, count, density, ncount, and ndensity.
type Bin struct{}

const defaultBins = 30

func (Bin) Info() layer.StatInfo {
	return layer.StatInfo{
		Name:     "bin",
		Required: []string{"x"},
		Defaults: aes.New("y", aes.Calc(aes.Col("count"))),
		Params:   []string{"bins", "binwidth", "center", "boundary", "closed", "breaks"},
	}
}

func (Bin) SetupParams(data frame.Frame, params layer.Params) (layer.Params, error) {
	if _, ok := params["breaks"].([]float64); ok {
		return params, nil
	}
	if !frame.IsNumeric(data.Column("x")) {
		return nil, fmt.Errorf("requires a continuous x aesthetic")
	}
	if params.Has("center") && params.Has("boundary") {
		return nil, fmt.Errorf("only one of boundary and center may be specified")
	}
	if c := params.Str("closed", "right"); c != "right" && c != "left" {
		return nil, fmt.Errorf("closed must be right or left, not %q", c)
	}
	lo, hi := stats.Bounds(finite(data.Float64s("x")))
	if math.IsNaN(lo) {
		lo, hi = 0, 0
	}

	var width, boundary float64
	if params.Has("binwidth") {
		width = params.Float("binwidth", 0)
		if width <= 0 {
			return nil, fmt.Errorf("binwidth must be positive, not %v", width)
		}
		boundary = width / 2
	} else {
		bins := params.Int("bins", defaultBins)
		if bins < 1 {
			return nil, fmt.Errorf("bins must be at least 1, not %d", bins)
		}
		switch {
		case hi == lo:
			width, boundary = 0.1, lo-0.05
			if lo != 0 {
				width = math.Abs(lo) * 0.1
				boundary = lo - width/2
			}
			if bins > 1 {
				width /= float64(bins)
			}
		case bins == 1:
			width, boundary = hi-lo, lo
		default:
			width = (hi - lo) / float64(bins-1)
			boundary = width / 2
		}
	}
	if params.Has("center") {
		boundary = params.Float("center", 0) - width/2
	} else if params.Has("boundary") {
		boundary = params.Float("boundary", 0)
	}

	breaks, err := breaksByWidth(lo, hi, width, boundary)
	if err != nil {
		return nil, err
	}
	out := params.Merge(nil)
	out["breaks"] = breaks
	return out, nil
}

// breaksByWidth returns bin edges of the given width covering
// [lo, hi], aligned so that boundary falls on an edge.
func breaksByWidth(lo, hi, width, boundary float64) ([]float64, error) {
	shift := math.Floor((lo - boundary) / width)
	origin := boundary + shift*width
	max := hi + (1-1e-8)*width
	n := int(math.Floor((max-origin)/width)) + 1
	if n > 1e6 {
		return nil, fmt.Errorf("binwidth %v would create too many bins", width)
	}
	if n < 2 {
		n = 2
	}
	return vec.Linspace(origin, origin+float64(n-1)*width, n), nil
}

func (Bin) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	breaks, _ := params["breaks"].([]float64)
	if len(breaks) < 2 {
		return frame.Frame{}, fmt.Errorf("no bin breaks")
	}
	right := params.Str("closed", "right") == "right"

	// Nudge the breaks so values that fall on an edge land in a
	// consistent bin despite rounding.
	nb := len(breaks) - 1
	fuzz := 1e-8 * (breaks[1] - breaks[0])
	edges := make([]float64, len(breaks))
	for i, b := range breaks {
		switch {
		case right && i > 0:
			edges[i] = b + fuzz
		case right:
			edges[i] = b - fuzz
		case i < nb:
			edges[i] = b - fuzz
		default:
			edges[i] = b + fuzz
		}
	}

	xs := data.Float64s("x")
	var ws []float64
	if w := weights(data); w != "" {
		ws = data.Float64s(w)
	}
	counts := make([]float64, nb)
	for i, x := range xs {
		bin := findBin(edges, x, right)
		if bin < 0 {
			continue
		}
		if ws == nil {
			counts[bin]++
		} else if isFinite(ws[i]) {
			counts[bin] += ws[i]
		}
	}

	total := vec.Sum(counts)
	mids := make([]float64, nb)
	widths := make([]float64, nb)
	density := make([]float64, nb)
	for i := range counts {
		mids[i] = (breaks[i] + breaks[i+1]) / 2
		widths[i] = breaks[i+1] - breaks[i]
		if total > 0 {
			density[i] = counts[i] / widths[i] / total
		}
	}
	return frame.Make(
		"x", mids,
		"xmin", breaks[:nb],
		"xmax", breaks[1:],
		"width", widths,
		"count", counts,
		"density", density,
		"ncount", scaleMax(counts),
		"ndensity", scaleMax(density),
	), nil
}

// findBin returns the index of the bin of edges containing x, or -1
// if x falls outside every bin.
func findBin(edges []float64, x float64, right bool) int {
	if !isFinite(x) || x < edges[0] || x > edges[len(edges)-1] {
		return -1
	}
	lo, hi := 0, len(edges)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x > edges[mid] || (!right && x == edges[mid]) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// scaleMax returns xs divided by its maximum.
func scaleMax(xs []float64) []float64 {
	_, max := stats.Bounds(xs)
	out := make([]float64, len(xs))
	for i, x := range xs {
		if max > 0 {
			out[i] = x / max
		}
	}
	return out
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if isFinite(x) {
			out = append(out, x)
		}
	}
	return out
}
