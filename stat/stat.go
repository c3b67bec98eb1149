// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stat implements the built-in statistical transformations.
//
// Most stats are thin adapters over go-gg's ggstat package: they hand
// one group's frame to a ggstat transform as a table.Grouping and
// rename the resulting columns to the names their default mappings
// expect.
package stat

import (
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
)

// Register registers all built-in stats with reg.
func Register(reg *layer.Registry) {
	for _, s := range []layer.Stat{
		Identity{},
		Count{},
		Bin{},
		Density{},
		ECDF{},
		Smooth{},
		Summary{},
		Unique{},
		KZ{},
	} {
		reg.RegisterStat(s)
	}
}

// apply runs a ggstat transform over data and returns the result as
// a frame.
func apply(data frame.Frame, f func(table.Grouping) table.Grouping) frame.Frame {
	return frame.New(table.Flatten(f(data.Table())))
}

// weights returns the "weight" column of data if there is one, and
// "" otherwise.
func weights(data frame.Frame) string {
	if data.Has("weight") && frame.IsNumeric(data.Column("weight")) {
		return "weight"
	}
	return ""
}

// finiteRows returns data without the rows where any of cols is NaN
// or infinite.
func finiteRows(data frame.Frame, cols ...string) frame.Frame {
	var keep []int
	vals := make([][]float64, len(cols))
	for i, col := range cols {
		vals[i] = data.Float64s(col)
	}
rows:
	for i := 0; i < data.Len(); i++ {
		for _, v := range vals {
			if v == nil || !isFinite(v[i]) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	if len(keep) == data.Len() {
		return data
	}
	return data.Select(keep)
}

// numeric returns a frame holding only the named columns of data,
// converted to []float64.
func numeric(data frame.Frame, cols ...string) frame.Frame {
	b := new(table.Builder)
	for _, col := range cols {
		b.Add(col, data.Float64s(col))
	}
	return frame.New(b.Done())
}

// sortedRows returns the row indexes of data ordered by column col.
func sortedRows(data frame.Frame, col string) []int {
	rows := make([]int, data.Len())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return frame.Compare(data.Value(col, rows[i]), data.Value(col, rows[j])) < 0
	})
	return rows
}
