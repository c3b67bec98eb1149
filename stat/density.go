// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// Density computes a Gaussian kernel density estimate of x.
//
// The bandwidth is the "bw" parameter, or Scott's rule if it is not
// set, multiplied by "adjust". The estimate is sampled at "n" points
// (default 512) spanning the data widened by three bandwidths. If
// "bounds" is a two-element []float64, the support is bounded and
// reflected at those limits.
//
// The output columns are x, density, cdf, scaled (density divided by
// its maximum), count (density times the number of observations), and
// n.
type Density struct{}

func (Density) Info() layer.StatInfo {
	return layer.StatInfo{
		Name:     "density",
		Required: []string{"x"},
		Defaults: aes.New("y", aes.Calc(aes.Col("density"))),
		Params:   []string{"bw", "adjust", "n", "bounds"},
	}
}

func (Density) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	w := weights(data)
	cols := []string{"x"}
	if w != "" {
		cols = append(cols, w)
	}
	data = finiteRows(data, cols...)
	if data.Len() < 2 {
		return frame.Frame{}, nil
	}

	sample := stats.Sample{Xs: data.Float64s("x")}
	if w != "" {
		sample.Weights = data.Float64s(w)
	}
	bw := params.Float("bw", 0)
	if bw == 0 {
		bw = stats.BandwidthScott(sample)
	}
	bw *= params.Float("adjust", 1)
	if !(bw > 0) {
		return frame.Frame{}, fmt.Errorf("bandwidth must be positive, not %v", bw)
	}

	lo, hi := stats.Bounds(sample.Xs)
	dom := ggstat.DomainFixed{Min: lo - 3*bw, Max: hi + 3*bw}
	d := ggstat.Density{
		X:         "x",
		W:         w,
		N:         params.Int("n", 512),
		Bandwidth: bw,
	}
	if b, ok := params["bounds"].([]float64); ok {
		if len(b) != 2 || !(b[0] < b[1]) {
			return frame.Frame{}, fmt.Errorf("bounds must be an increasing pair, not %v", b)
		}
		d.BoundaryMin, d.BoundaryMax = b[0], b[1]
		dom.Min, dom.Max = math.Max(dom.Min, b[0]), math.Min(dom.Max, b[1])
	}
	d.Domain = dom
	in := frame.Make("x", sample.Xs)
	if w != "" {
		in = in.With(w, sample.Weights)
	}
	out := apply(in, d.F)
	if d.BoundaryMin != 0 || d.BoundaryMax != 0 {
		out = frame.New(table.Flatten(table.Filter(out.Table(), func(x float64) bool {
			return x >= d.BoundaryMin && x <= d.BoundaryMax
		}, "x")))
	}

	dens := out.Float64s("probability density")
	count := vec.Map(func(y float64) float64 { return y * float64(data.Len()) }, dens)
	out = out.Rename("probability density", "density").
		Rename("cumulative density", "cdf").
		With("scaled", scaleMax(dens)).
		With("count", count).
		WithConst("n", data.Len())
	if math.IsNaN(vec.Sum(dens)) {
		return frame.Frame{}, fmt.Errorf("density estimate is not finite")
	}
	return out.Without(w), nil
}
