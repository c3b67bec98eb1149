// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package position

import (
	"math"
	"sort"

	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// Stack stacks the rows that share an x position on top of each other.
// Positive and negative values are stacked separately, away from
// zero. By default the first group ends up on top; Reverse puts it at
// the bottom.
//
// The height of each row is its y, or ymax if it has no y. Stacking
// sets ymin and ymax to the row's extent in the stack, and y to the
// end of that extent away from zero.
type Stack struct {
	Reverse bool
}

func (Stack) Name() string { return "stack" }

func (s Stack) ComputePanel(data frame.Frame, params layer.Params, r panel.Ranges) (frame.Frame, error) {
	return stack(data, s.Reverse, false), nil
}

// Fill is Stack with each stack normalized to a height of 1.
type Fill struct {
	Reverse bool
}

func (Fill) Name() string { return "fill" }

func (f Fill) ComputePanel(data frame.Frame, params layer.Params, r panel.Ranges) (frame.Frame, error) {
	return stack(data, f.Reverse, true), nil
}

func stack(data frame.Frame, reverse, fill bool) frame.Frame {
	hcol := "y"
	if !data.Has(hcol) {
		hcol = "ymax"
	}
	if !data.Has(hcol) || !frame.IsNumeric(data.Column(hcol)) {
		return data
	}
	heights := data.Float64s(hcol)
	gs := groups(data)

	n := data.Len()
	lo, hi := make([]float64, n), make([]float64, n)
	for i := range lo {
		lo[i], hi[i] = math.NaN(), math.NaN()
	}
	for _, rows := range byX(data) {
		rows = append([]int(nil), rows...)
		sort.SliceStable(rows, func(i, j int) bool {
			if reverse {
				return gs[rows[i]] < gs[rows[j]]
			}
			return gs[rows[i]] > gs[rows[j]]
		})
		var pos, neg float64
		for _, row := range rows {
			h := heights[row]
			switch {
			case math.IsNaN(h):
				continue
			case h >= 0:
				lo[row], hi[row] = pos, pos+h
				pos += h
			default:
				lo[row], hi[row] = neg+h, neg
				neg += h
			}
		}
		if !fill {
			continue
		}
		for _, row := range rows {
			total := pos
			if heights[row] < 0 {
				total = -neg
			}
			if total > 0 {
				lo[row] /= total
				hi[row] /= total
			}
		}
	}

	if data.Has("y") {
		top := make([]float64, n)
		for i := range top {
			top[i] = hi[i]
			if heights[i] < 0 {
				top[i] = lo[i]
			}
		}
		data = data.With("y", top)
	}
	if data.Has("ymin") {
		data = data.With("ymin", lo)
	}
	if data.Has("ymax") {
		data = data.With("ymax", hi)
	}
	return data
}
