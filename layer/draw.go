// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"fmt"

	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/panel"
)

// DrawGeom draws the layer's data, returning one mark per panel of
// ctx, in panel order. Panels with no rows get a mark.Null.
//
// If the geom is a GroupDrawer, each group of each panel is drawn
// separately and the panel's mark is a *mark.Group of the results.
// Otherwise each panel is drawn at once. Either way, the data passed
// to the geom has been transformed by c.
func (l *Layer) DrawGeom(data frame.Frame, ctx *panel.Context, c coord.Coord) ([]mark.Mark, error) {
	out := make([]mark.Mark, ctx.NumPanels())
	for i := range out {
		out[i] = mark.Null{}
	}
	if data.Empty() {
		return out, nil
	}

	info := l.Geom.Info()
	params := l.GeomParams.Merge(l.AesParams)
	for _, part := range data.Split(frame.Panel) {
		id := toInt(part.Key[0])
		if id < 1 || id > len(out) {
			return nil, fmt.Errorf("geom %s: data refers to panel %d of %d", info.Name, id, len(out))
		}
		dc := DrawContext{
			Panel:  id,
			Ranges: ctx.Ranges(id),
			Coord:  c,
			Params: params,
		}

		var m mark.Mark
		var err error
		switch g := l.Geom.(type) {
		case GroupDrawer:
			m, err = drawGroups(g, part.Frame, dc, info.Name)
		case PanelDrawer:
			m, err = g.DrawPanel(c.Transform(part.Frame, dc.Ranges), dc)
		default:
			err = &GeomDrawerError{Name: info.Name}
		}
		if err != nil {
			return nil, fmt.Errorf("geom %s: %w", info.Name, err)
		}
		if m == nil {
			m = mark.Null{}
		}
		out[id-1] = m
	}
	return out, nil
}

func drawGroups(g GroupDrawer, data frame.Frame, dc DrawContext, name string) (mark.Mark, error) {
	grp := &mark.Group{Name: name}
	for _, part := range data.Split(frame.Group) {
		m, err := g.DrawGroup(dc.Coord.Transform(part.Frame, dc.Ranges), dc)
		if err != nil {
			return nil, err
		}
		if m != nil {
			grp.Children = append(grp.Children, m)
		}
	}
	return grp, nil
}

// DrawKey draws the legend key of the layer for one legend entry.
// key holds one row of mapped aesthetic values. Aesthetics the key
// lacks are filled in from the layer's parameters and the geom's
// defaults. DrawKey returns false if the layer is hidden from legends,
// or if ShowLegend is LegendAuto and the layer maps none of the key's
// aesthetics.
func (l *Layer) DrawKey(key frame.Frame, plotMapping aes.Mapping) (mark.Mark, bool) {
	if l.ShowLegend == LegendHide {
		return nil, false
	}
	if l.ShowLegend == LegendAuto && !l.mapsAny(key.Columns(), plotMapping) {
		return nil, false
	}
	key = l.ComputeGeom2(key)
	params := l.GeomParams.Merge(l.AesParams)
	if kd, ok := l.Geom.(KeyDrawer); ok {
		return kd.DrawKey(key, params), true
	}
	return defaultKey(key), true
}

// mapsAny reports whether the layer maps any of the given aesthetics.
func (l *Layer) mapsAny(names []string, plotMapping aes.Mapping) bool {
	m := l.mapping(plotMapping)
	for _, n := range names {
		if m.Has(n) {
			return true
		}
	}
	return false
}

// defaultKey draws a point in the middle of the key.
func defaultKey(key frame.Frame) mark.Mark {
	p := &mark.Points{X: []float64{0.5}, Y: []float64{0.5}}
	if key.Has("colour") {
		p.Colour = mark.Colors(key.Column("colour"), nil)
	}
	if key.Has("size") && frame.IsNumeric(key.Column("size")) {
		p.Size = key.Float64s("size")
	}
	return p
}
