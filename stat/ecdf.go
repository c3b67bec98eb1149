// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// ECDF computes the empirical cumulative distribution function of x.
//
// The output has one row per distinct x, in increasing order, with
// columns x, ecdf, and count (the cumulative count or weight). If
// "pad" is true (the default), an extra row is added 5% of the data's
// span beyond each end at levels 0 and 1.
type ECDF struct{}

func (ECDF) Info() layer.StatInfo {
	return layer.StatInfo{
		Name:     "ecdf",
		Required: []string{"x"},
		Defaults: aes.New("y", aes.Calc(aes.Col("ecdf"))),
		Params:   []string{"pad"},
	}
}

func (ECDF) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	w := weights(data)
	cols := []string{"x"}
	if w != "" {
		cols = append(cols, w)
	}
	in := finiteRows(numeric(data, cols...), cols...)
	if in.Len() == 0 {
		return frame.Frame{}, nil
	}

	dom := ggstat.DomainData{SplitGroups: true}
	if !params.Bool("pad", true) {
		dom.Widen = 1
	}
	e := ggstat.ECDF{X: "x", W: w, Domain: dom}
	out := apply(in, e.F)
	cname := "cumulative count"
	if w != "" {
		cname = "cumulative weight"
	}
	return out.Rename("cumulative density", "ecdf").Rename(cname, "count"), nil
}
