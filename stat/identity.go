// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"
	"sort"

	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// Identity leaves the data unchanged, including the order of its
// rows across panels and groups.
type Identity struct{}

func (Identity) Info() layer.StatInfo {
	return layer.StatInfo{Name: "identity"}
}

func (Identity) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	return data, nil
}

func (Identity) ComputeLayer(data frame.Frame, params layer.Params, ctx *panel.Context) (frame.Frame, error) {
	return data, nil
}

// Unique removes duplicate rows.
type Unique struct{}

func (Unique) Info() layer.StatInfo {
	return layer.StatInfo{Name: "unique"}
}

func (Unique) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	parts := data.Split(data.Columns()...)
	if len(parts) == data.Len() {
		return data, nil
	}
	rows := make([]int, len(parts))
	for i, p := range parts {
		rows[i] = p.Rows[0]
	}
	sort.Ints(rows)
	return data.Select(rows), nil
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}
