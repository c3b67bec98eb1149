// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws built plots.
//
// Rendering lays out the panels of a plot on a grid, draws each
// panel's background, grid lines, and strip according to a theme, and
// then draws the marks of every layer clipped to their panel. Axes and
// legends are not drawn.
//
// SVG writes the result as SVG and Raster rasterizes it to an image.
package render

import (
	"image/color"
	"math"

	"github.com/aclements/go-gg/gg/layout"
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/panel"
	"github.com/aclements/ggbuild/plot"
	"github.com/aclements/ggbuild/theme"
)

// Options control the size and appearance of a rendered plot.
type Options struct {
	// Width and Height are the size of the plot in pixels. Zero
	// means 640 by 480.
	Width, Height int

	// Theme is the plot's theme. nil means theme.Grey().
	Theme theme.Theme

	// Title, if non-empty, is drawn above the panels.
	Title string

	// Scale, if positive, resizes raster images by this factor
	// after drawing. SVG output ignores it.
	Scale float64
}

func (o Options) size() (w, h int) {
	w, h = o.Width, o.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	return
}

const (
	// ptPerMM converts sizes, which are in millimetres, to
	// points. Points are drawn as pixels.
	ptPerMM = 72.27 / 25.4

	// margin is the space around the whole plot, in pixels.
	margin = 10

	// gap is the space between panels, in pixels.
	gap = 6

	// maxTicks is the most major grid lines on each axis.
	maxTicks = 7
)

// style is the paint of a shape. A nil colour is not painted.
type style struct {
	fill, stroke color.Color
	width        float64
	dash         []float64
}

type textStyle struct {
	colour       color.Color
	size, angle  float64
	hjust, vjust float64
	family       string
}

// A canvas is a drawing surface in pixels, with y increasing down.
type canvas interface {
	rect(x, y, w, h float64, s style)
	path(xs, ys []float64, closed bool, s style)
	circle(x, y, r float64, s style)
	text(x, y float64, label string, s textStyle)

	// clip restricts drawing to a rectangle until the matching
	// unclip.
	clip(x, y, w, h float64)
	unclip()
}

// box is a layout element of a fixed size, flexible in the given
// directions.
type box struct {
	layout.Leaf
	w, h         float64
	flexw, flexh bool
}

func (b *box) SizeHint() (w, h float64, flexw, flexh bool) {
	return b.w, b.h, b.flexw, b.flexh
}

// cell is a laid out panel.
type cell struct {
	panel.Panel
	strip, area *box
}

// draw renders marks, the result of plot.Draw(b, nil), to c.
func draw(c canvas, b *plot.Built, marks [][]mark.Mark, o Options) {
	th := o.Theme
	if th == nil {
		th = theme.Grey()
	}
	width, height := o.size()
	w, h := float64(width), float64(height)
	drawRect(c, 0, 0, w, h, th.Get("plot.background"))

	cells, title := arrange(b.Context, th, o.Title, w, h)
	if title != nil {
		x, y, _, bh := title.Layout()
		t := th.Get("plot.title")
		drawText(c, margin+x, margin+y+bh/2, o.Title, textStyle{size: t.Size, hjust: 0, vjust: 0.5}, t)
	}

	co := b.Plot.Coordinates()
	for _, cl := range cells {
		x, y, pw, ph := cl.area.Layout()
		x, y, pw, ph = margin+x+gap/2, margin+y+gap/2, pw-gap, ph-gap
		if pw <= 0 || ph <= 0 {
			continue
		}

		drawRect(c, x, y, pw, ph, th.Get("panel.background"))
		drawGrid(c, co, b.Context.Ranges(cl.ID), th, x, y, pw, ph)

		c.clip(x, y, pw, ph)
		for _, ms := range marks {
			if cl.ID-1 < len(ms) {
				drawMark(c, ms[cl.ID-1], x, y, pw, ph)
			}
		}
		c.unclip()
		drawRect(c, x, y, pw, ph, th.Get("panel.border"))

		if cl.strip != nil {
			sx, sy, sw, sh := cl.strip.Layout()
			sx, sy, sw = margin+sx+gap/2, margin+sy+gap/2, sw-gap
			drawRect(c, sx, sy, sw, sh-gap/2, th.Get("strip.background"))
			t := th.Get("strip.text")
			drawText(c, sx+sw/2, sy+(sh-gap/2)/2, cl.Label(), textStyle{size: t.Size, hjust: 0.5, vjust: 0.5}, t)
		}
	}
}

// arrange lays out the title, strips, and panels of a plot in a w by
// h area. It returns the panel cells and the title box, which is nil
// if there is no title. Box layouts are relative to the plot margin.
func arrange(ctx *panel.Context, th theme.Theme, title string, w, h float64) ([]cell, *box) {
	var g layout.Grid
	row := 0
	var tbox *box
	if title != "" {
		tbox = &box{h: th.Get("plot.title").Size * 1.6, flexw: true}
		_, cols := ctx.Grid()
		g.Add(tbox, 0, 0, cols, 1)
		row = 1
	}

	faceted := false
	for _, p := range ctx.Panels() {
		if p.Label() != "" {
			faceted = true
		}
	}
	stripHeight := th.Get("strip.text").Size*1.6 + gap/2

	var cells []cell
	for _, p := range ctx.Panels() {
		cl := cell{Panel: p, area: &box{w: 50, h: 50, flexw: true, flexh: true}}
		if faceted {
			cl.strip = &box{h: stripHeight, flexw: true}
			g.Add(cl.strip, p.Col, row+2*p.Row, 1, 1)
			g.Add(cl.area, p.Col, row+2*p.Row+1, 1, 1)
		} else {
			g.Add(cl.area, p.Col, row+p.Row, 1, 1)
		}
		cells = append(cells, cl)
	}
	g.SetLayout(0, 0, w-2*margin, h-2*margin)
	return cells, tbox
}

// drawGrid draws the major and minor grid lines of a panel.
func drawGrid(c canvas, co coord.Coord, r panel.Ranges, th theme.Theme, x, y, w, h float64) {
	major, minor := th.Get("panel.grid.major"), th.Get("panel.grid.minor")
	for _, axis := range []string{"x", "y"} {
		rng, levels := r.X, r.XLevels
		if axis == "y" {
			rng, levels = r.Y, r.YLevels
		}
		var majTicks, minTicks []float64
		if levels != nil {
			for i := range levels {
				majTicks = append(majTicks, float64(i+1))
			}
		} else {
			majTicks, minTicks = rng.Ticks(scale.TickOptions{Max: maxTicks})
		}
		gridLines(c, co, r, axis, minTicks, minor, x, y, w, h)
		gridLines(c, co, r, axis, majTicks, major, x, y, w, h)
	}
}

// gridLines draws a line across the panel at each of the data values
// ticks on axis.
func gridLines(c canvas, co coord.Coord, r panel.Ranges, axis string, ticks []float64, e theme.Element, x, y, w, h float64) {
	if e.Blank || e.Colour == nil || len(ticks) == 0 {
		return
	}
	f := co.Transform(frame.Make(axis, ticks), r)
	s := lineStyle(e)
	if f.Has("x") {
		for _, t := range f.Float64s("x") {
			if t >= 0 && t <= 1 {
				px := x + t*w
				c.path([]float64{px, px}, []float64{y, y + h}, false, s)
			}
		}
	} else {
		for _, t := range f.Float64s("y") {
			if t >= 0 && t <= 1 {
				py := y + (1-t)*h
				c.path([]float64{x, x + w}, []float64{py, py}, false, s)
			}
		}
	}
}

func lineStyle(e theme.Element) style {
	return style{stroke: e.Colour, width: e.Size * ptPerMM, dash: dashes(e.Linetype, e.Size*ptPerMM)}
}

func drawRect(c canvas, x, y, w, h float64, e theme.Element) {
	if e.Blank || (e.Fill == nil && e.Colour == nil) {
		return
	}
	s := lineStyle(e)
	s.fill = e.Fill
	c.rect(x, y, w, h, s)
}

func drawText(c canvas, x, y float64, label string, s textStyle, e theme.Element) {
	if e.Blank || label == "" {
		return
	}
	s.colour, s.family = e.Colour, e.Family
	c.text(x, y, label, s)
}

// linetypes are dash patterns, in multiples of the line width.
var linetypes = map[string][]float64{
	"dashed":   {4, 4},
	"dotted":   {1, 3},
	"dotdash":  {1, 3, 4, 3},
	"longdash": {8, 4},
	"twodash":  {2, 2, 6, 2},
}

// dashes returns the dash pattern of a linetype for a line of the
// given width, or nil for a solid line.
func dashes(linetype string, width float64) []float64 {
	pat, ok := linetypes[linetype]
	if !ok {
		return nil
	}
	if width < 1 {
		width = 1
	}
	out := make([]float64, len(pat))
	for i, d := range pat {
		out[i] = d * width
	}
	return out
}

// drawMark draws m in the panel at (x, y) of size w by h.
func drawMark(c canvas, m mark.Mark, x, y, w, h float64) {
	px := func(u float64) float64 { return x + u*w }
	py := func(v float64) float64 { return y + (1-v)*h }

	switch m := m.(type) {
	case *mark.Group:
		for _, child := range m.Children {
			drawMark(c, child, x, y, w, h)
		}

	case *mark.Points:
		for i := range m.X {
			if !finite(m.X[i], m.Y[i]) {
				continue
			}
			size := floatAt(m.Size, i, 1.5)
			r := size * ptPerMM / 2
			s := style{fill: colourAt(m.Colour, i), width: floatAt(m.Stroke, i, 0.5) * ptPerMM}
			if m.Fill != nil {
				s.fill, s.stroke = colourAt(m.Fill, i), colourAt(m.Colour, i)
			}
			shape := "circle"
			if i < len(m.Shape) {
				shape = m.Shape[i]
			} else if len(m.Shape) > 0 {
				shape = m.Shape[0]
			}
			drawShape(c, shape, px(m.X[i]), py(m.Y[i]), r, s)
		}

	case *mark.Path:
		s := style{fill: m.Fill, stroke: m.Colour, width: m.Width * ptPerMM}
		s.dash = dashes(m.Linetype, s.width)
		// Non-finite points break the path.
		var xs, ys []float64
		flush := func() {
			if len(xs) > 1 {
				c.path(xs, ys, m.Fill != nil, s)
			}
			xs, ys = nil, nil
		}
		for i := range m.X {
			if !finite(m.X[i], m.Y[i]) {
				flush()
				continue
			}
			xs, ys = append(xs, px(m.X[i])), append(ys, py(m.Y[i]))
		}
		flush()

	case *mark.Segments:
		for i := range m.X0 {
			if !finite(m.X0[i], m.Y0[i]) || !finite(m.X1[i], m.Y1[i]) {
				continue
			}
			s := style{stroke: colourAt(m.Colour, i), width: floatAt(m.Width, i, 0.5) * ptPerMM}
			if i < len(m.Linetype) {
				s.dash = dashes(m.Linetype[i], s.width)
			}
			c.path([]float64{px(m.X0[i]), px(m.X1[i])}, []float64{py(m.Y0[i]), py(m.Y1[i])}, false, s)
		}

	case *mark.Rects:
		for i := range m.XMin {
			x0, x1 := px(m.XMin[i]), px(m.XMax[i])
			y0, y1 := py(m.YMax[i]), py(m.YMin[i])
			if !finite(x0, x1) || !finite(y0, y1) {
				continue
			}
			s := style{fill: colourAt(m.Fill, i), stroke: colourAt(m.Colour, i), width: floatAt(m.Width, i, 0.5) * ptPerMM}
			c.rect(math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0), s)
		}

	case *mark.Texts:
		for i := range m.X {
			if !finite(m.X[i], m.Y[i]) || i >= len(m.Label) {
				continue
			}
			c.text(px(m.X[i]), py(m.Y[i]), m.Label[i], textStyle{
				colour: colourAt(m.Colour, i),
				size:   floatAt(m.Size, i, 3.88) * ptPerMM,
				angle:  floatAt(m.Angle, i, 0),
				hjust:  floatAt(m.HJust, i, 0.5),
				vjust:  floatAt(m.VJust, i, 0.5),
			})
		}
	}
}

// drawShape draws a point symbol of radius r centred on (x, y).
func drawShape(c canvas, shape string, x, y, r float64, s style) {
	switch shape {
	case "square":
		c.rect(x-r, y-r, 2*r, 2*r, s)
	case "triangle":
		c.path([]float64{x, x + r, x - r}, []float64{y - r, y + r, y + r}, true, s)
	case "diamond":
		c.path([]float64{x, x + r, x, x - r}, []float64{y - r, y, y + r, y}, true, s)
	case "plus", "cross":
		ls := style{stroke: s.fill, width: math.Max(s.width, 1)}
		if s.stroke != nil {
			ls.stroke = s.stroke
		}
		d := r
		if shape == "cross" {
			d = r / math.Sqrt2
			c.path([]float64{x - d, x + d}, []float64{y - d, y + d}, false, ls)
			c.path([]float64{x - d, x + d}, []float64{y + d, y - d}, false, ls)
			return
		}
		c.path([]float64{x - d, x + d}, []float64{y, y}, false, ls)
		c.path([]float64{x, x}, []float64{y - d, y + d}, false, ls)
	default:
		c.circle(x, y, r, s)
	}
}

func finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}

// colourAt returns cs[i], or cs[0] if cs has a single element.
func colourAt(cs []color.Color, i int) color.Color {
	switch {
	case i < len(cs):
		return cs[i]
	case len(cs) > 0:
		return cs[0]
	}
	return nil
}

// floatAt returns xs[i], xs[0] if xs has a single element, or def if
// neither is a number.
func floatAt(xs []float64, i int, def float64) float64 {
	v := def
	switch {
	case i < len(xs):
		v = xs[i]
	case len(xs) > 0:
		v = xs[0]
	}
	if math.IsNaN(v) {
		return def
	}
	return v
}
