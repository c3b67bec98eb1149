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

// Summary summarizes y at each distinct x.
//
// The output has one row per distinct x, in increasing order, with
// columns x, y (the mean of y, or its geometric mean if "fun" is
// "geomean"), ymin, and ymax.
type Summary struct{}

func (Summary) Info() layer.StatInfo {
	return layer.StatInfo{
		Name:     "summary",
		Required: []string{"x", "y"},
		Params:   []string{"fun"},
	}
}

func (Summary) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	in := finiteRows(data.Merge(numeric(data, "y")), "y")
	in = frame.Make("x", in.Column("x"), "y", in.Column("y"))
	if in.Len() == 0 {
		return frame.Frame{}, nil
	}

	agg, t := ggstat.Agg("x"), in.Table()
	var g table.Grouping
	switch fun := params.Str("fun", "mean"); fun {
	case "mean":
		g = agg(ggstat.AggMean("y"), ggstat.AggMin("y"), ggstat.AggMax("y")).F(t)
	case "geomean":
		g = agg(ggstat.AggGeoMean("y"), ggstat.AggMin("y"), ggstat.AggMax("y")).F(t)
	default:
		return frame.Frame{}, fmt.Errorf("unknown summary function %q", fun)
	}
	out := frame.New(table.Flatten(g))

	// The center column is whichever one is not x, min, or max.
	for _, col := range out.Columns() {
		switch col {
		case "x", "min y", "max y":
			continue
		}
		out = out.Rename(col, "y")
	}
	out = out.Rename("min y", "ymin").Rename("max y", "ymax")

	return out.Select(sortedRows(out, "x")), nil
}
