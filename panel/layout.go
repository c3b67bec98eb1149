// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
)

// Facet describes how a plot is split into panels.
type Facet struct {
	// Wrap names the column to facet by. Each distinct value of
	// this column becomes a panel, in value order. If Wrap is "",
	// the plot has a single panel.
	Wrap string

	// FreeX and FreeY give each panel its own X or Y position
	// range. By default, all panels share one range per axis.
	FreeX, FreeY bool

	// Rows and Cols fix the shape of the panel grid. If both are
	// zero, the grid is as square as possible. Otherwise, one of
	// them should be zero and is computed from the other.
	Rows, Cols int
}

// Panel is one cell of the facet layout.
type Panel struct {
	// ID is the panel's 1-based identifier, as stored in the
	// frame.Panel column.
	ID int

	// Value is the facet column value of this panel, or nil if
	// the plot is not faceted.
	Value interface{}

	// Row and Col are the panel's 0-based position in the grid.
	Row, Col int
}

// Label returns the panel's strip label.
func (p Panel) Label() string {
	if p.Value == nil {
		return ""
	}
	return fmt.Sprint(p.Value)
}

// NumPanels returns the number of panels in the layout.
func (c *Context) NumPanels() int {
	return len(c.panels)
}

// Panels returns the panel layout.
func (c *Context) Panels() []Panel {
	return append([]Panel(nil), c.panels...)
}

// Grid returns the number of rows and columns of the panel grid.
func (c *Context) Grid() (rows, cols int) {
	for _, p := range c.panels {
		if p.Row+1 > rows {
			rows = p.Row + 1
		}
		if p.Col+1 > cols {
			cols = p.Col + 1
		}
	}
	return
}

// Setup computes the panel layout from the data of every layer and
// returns each layer's data with a frame.Panel column added.
//
// If the plot is faceted, panels are the distinct values of the facet
// column across all layers that have it. Rows of a layer with the
// facet column go to the panel of their value; a layer without it is
// repeated in every panel. If the plot is not faceted, every row goes
// to panel 1.
func (c *Context) Setup(data []frame.Frame) []frame.Frame {
	c.panels = c.layout(data)
	out := make([]frame.Frame, len(data))
	for i, d := range data {
		out[i] = c.mapPanels(d)
	}
	return out
}

func (c *Context) layout(data []frame.Frame) []Panel {
	if c.facet.Wrap == "" {
		return []Panel{{ID: 1}}
	}

	var vals []interface{}
	seen := make(map[interface{}]bool)
	for _, d := range data {
		col := d.Column(c.facet.Wrap)
		if col == nil {
			continue
		}
		for i, n := 0, d.Len(); i < n; i++ {
			v := d.Value(c.facet.Wrap, i)
			if !seen[v] {
				seen[v] = true
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return []Panel{{ID: 1}}
	}
	sort.SliceStable(vals, func(i, j int) bool {
		return frame.Compare(vals[i], vals[j]) < 0
	})

	rows, cols := c.facet.Rows, c.facet.Cols
	cells := float64(len(vals))
	if cols == 0 {
		if rows == 0 {
			rows = int(math.Ceil(math.Sqrt(cells)))
		}
		cols = int(math.Ceil(cells / float64(rows)))
	}

	panels := make([]Panel, len(vals))
	for i, v := range vals {
		panels[i] = Panel{ID: i + 1, Value: v, Row: i / cols, Col: i % cols}
	}
	return panels
}

func (c *Context) mapPanels(d frame.Frame) frame.Frame {
	n := d.Len()
	if n == 0 {
		if len(d.Columns()) == 0 {
			return d
		}
		return d.With(frame.Panel, []int{})
	}

	col := d.Column(c.facet.Wrap)
	if c.facet.Wrap == "" || col == nil {
		if c.facet.Wrap == "" || len(c.panels) == 1 {
			return d.With(frame.Panel, frame.Repeat([]int{c.panels[0].ID}, n))
		}
		// Repeat the layer in every panel.
		rows := make([]int, 0, n*len(c.panels))
		ids := make([]int, 0, n*len(c.panels))
		for _, p := range c.panels {
			for i := 0; i < n; i++ {
				rows = append(rows, i)
				ids = append(ids, p.ID)
			}
		}
		return d.Select(rows).With(frame.Panel, ids)
	}

	ids := make([]int, n)
	for i := range ids {
		v := d.Value(c.facet.Wrap, i)
		for _, p := range c.panels {
			if frame.Compare(p.Value, v) == 0 {
				ids[i] = p.ID
				break
			}
		}
	}
	return d.With(frame.Panel, ids)
}

// PanelTable returns the layout as a table with one row per panel.
func (c *Context) PanelTable() *table.Table {
	ids := make([]int, len(c.panels))
	rows := make([]int, len(c.panels))
	cols := make([]int, len(c.panels))
	labels := make([]string, len(c.panels))
	for i, p := range c.panels {
		ids[i], rows[i], cols[i], labels[i] = p.ID, p.Row+1, p.Col+1, p.Label()
	}
	return new(table.Builder).
		Add(frame.Panel, ids).
		Add("ROW", rows).
		Add("COL", cols).
		Add("label", labels).
		Done()
}
