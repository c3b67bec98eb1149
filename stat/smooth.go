// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"fmt"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// Smooth fits a smooth curve to y as a function of x and samples it
// at "n" (default 80) evenly spaced points over the range of x.
//
// The "method" parameter selects the fit: "lm" is a least-squares
// polynomial fit of the given "degree" (default 1) and "loess" is a
// local regression with the given "span" (default 0.75) and "degree"
// (default 2). The default, "auto", uses loess for groups of fewer
// than 1000 rows and lm otherwise.
type Smooth struct{}

const loessLimit = 1000

func (Smooth) Info() layer.StatInfo {
	return layer.StatInfo{
		Name:     "smooth",
		Required: []string{"x", "y"},
		Params:   []string{"method", "n", "span", "degree"},
	}
}

func (Smooth) SetupParams(data frame.Frame, params layer.Params) (layer.Params, error) {
	method := params.Str("method", "auto")
	switch method {
	case "lm", "loess":
		return params, nil
	case "auto":
	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}

	max := 0
	for _, p := range data.Split(frame.Panel, frame.Group) {
		if len(p.Rows) > max {
			max = len(p.Rows)
		}
	}
	out := params.Merge(nil)
	out["method"] = "loess"
	if max >= loessLimit {
		out["method"] = "lm"
	}
	return out, nil
}

func (Smooth) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	in := finiteRows(numeric(data, "x", "y"), "x", "y")
	n := params.Int("n", 80)

	var fit func(table.Grouping) table.Grouping
	var degree int
	switch params.Str("method", "loess") {
	case "lm":
		s := ggstat.LeastSquares{X: "x", Y: "y", N: n, Domain: dataRange, Degree: params.Int("degree", 1)}
		fit, degree = s.F, s.Degree
	case "loess":
		s := ggstat.LOESS{X: "x", Y: "y", N: n, Domain: dataRange, Degree: params.Int("degree", 2), Span: params.Float("span", 0.75)}
		fit, degree = s.F, s.Degree
	default:
		return frame.Frame{}, fmt.Errorf("unknown method %q", params.Str("method", ""))
	}
	if distinct(in.Float64s("x")) <= degree {
		// Too few points to fit.
		return frame.Frame{}, nil
	}
	return apply(in, fit), nil
}

// dataRange samples a fit over exactly the range of its group's x.
var dataRange = ggstat.DomainData{Widen: 1, SplitGroups: true}

// distinct returns the number of distinct values in xs.
func distinct(xs []float64) int {
	seen := make(map[float64]bool)
	for _, x := range xs {
		seen[x] = true
	}
	return len(seen)
}
