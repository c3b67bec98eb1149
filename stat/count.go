// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// Count counts the rows at each distinct x. If the data has a
// "weight" column, rows are weighted by it.
//
// Its output has one row per distinct x, in increasing order, with
// columns x, count, and prop (the fraction of the group's total
// count). If the "width" parameter is set, it is added as a width
// column.
type Count struct{}

func (Count) Info() layer.StatInfo {
	return layer.StatInfo{
		Name:     "count",
		Required: []string{"x"},
		Defaults: aes.New("y", aes.Calc(aes.Col("count"))),
		Params:   []string{"width"},
	}
}

func (Count) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	var ws []float64
	if w := weights(data); w != "" {
		ws = data.Float64s(w)
	}

	parts := data.Split("x")
	xs := make([]int, len(parts))
	counts := make([]float64, len(parts))
	for i, p := range parts {
		xs[i] = p.Rows[0]
		if ws == nil {
			counts[i] = float64(len(p.Rows))
		} else {
			counts[i] = vec.Sum(slice.Select(ws, p.Rows).([]float64))
		}
	}
	total := vec.Sum(counts)
	prop := make([]float64, len(counts))
	for i, c := range counts {
		prop[i] = c / total
	}

	out := frame.Make(
		"x", slice.Select(data.Column("x"), xs),
		"count", counts,
		"prop", prop,
	)
	if params.Has("width") {
		out = out.WithConst("width", params.Float("width", 0.9))
	}
	return out, nil
}
