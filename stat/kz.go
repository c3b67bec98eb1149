// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/panel"
)

// KZ smooths y with a Kolmogorov-Zurbenko filter: "k" (default 3)
// iterations of a centered moving average of window "m" (default 15)
// over the rows ordered by x. Near the ends, and around missing
// values, each average is taken over the points that are present.
//
// The output has the input's rows sorted by x, with y replaced by the
// filtered values.
type KZ struct{}

func (KZ) Info() layer.StatInfo {
	return layer.StatInfo{
		Name:     "kz",
		Required: []string{"x", "y"},
		Params:   []string{"m", "k"},
	}
}

func (KZ) ComputeGroup(data frame.Frame, r panel.Ranges, params layer.Params) (frame.Frame, error) {
	m, k := params.Int("m", 15), params.Int("k", 3)
	if m < 1 || k < 1 {
		return frame.Frame{}, fmt.Errorf("m and k must be positive, got m=%d k=%d", m, k)
	}
	t := table.SortBy(data.Merge(numeric(data, "y")).Table(), "x")
	return frame.New(table.Flatten(table.MapTables(t, func(_ table.GroupID, t *table.Table) *table.Table {
		ys := t.MustColumn("y").([]float64)
		return table.NewBuilder(t).Add("y", kolmogorovZurbenko(ys, m, k)).Done()
	}))), nil
}

// kolmogorovZurbenko applies k iterations of a moving average of
// width m to xs. NaN values are ignored.
func kolmogorovZurbenko(xs []float64, m, k int) []float64 {
	cur, next := append([]float64(nil), xs...), make([]float64, len(xs))
	half := m / 2
	for iter := 0; iter < k; iter++ {
		for i := range cur {
			var sum float64
			var n int
			for j := i - half; j <= i+half; j++ {
				if j < 0 || j >= len(cur) || math.IsNaN(cur[j]) {
					continue
				}
				sum += cur[j]
				n++
			}
			if n == 0 {
				next[i] = math.NaN()
			} else {
				next[i] = sum / float64(n)
			}
		}
		cur, next = next, cur
	}
	return cur
}
