// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/plot"
	"github.com/ajstarks/svgo"
)

// SVG writes marks, as returned by plot.Draw(b, nil), to w as an SVG
// document.
func SVG(w io.Writer, b *plot.Built, marks [][]mark.Mark, o Options) error {
	ew := &errWriter{w: w}
	width, height := o.size()
	c := &svgCanvas{svg: svg.New(ew)}
	c.svg.Start(width, height)
	draw(c, b, marks, o)
	c.svg.End()
	return ew.err
}

// errWriter records the first error from w and discards later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

type svgCanvas struct {
	svg   *svg.SVG
	clips int
}

func (c *svgCanvas) rect(x, y, w, h float64, s style) {
	var d []byte
	d = append(d, 'M')
	d = appendFloats(d, x, y)
	d = append(d, 'h')
	d = appendFloats(d, w)
	d = append(d, 'v')
	d = appendFloats(d, h)
	d = append(d, 'h')
	d = appendFloats(d, -w)
	d = append(d, 'Z')
	c.svg.Path(string(d), s.css())
}

func (c *svgCanvas) path(xs, ys []float64, closed bool, s style) {
	var d []byte
	for i := range xs {
		if i == 0 {
			d = append(d, 'M')
		} else {
			d = append(d, 'L')
		}
		d = appendFloats(d, xs[i], ys[i])
	}
	if closed {
		d = append(d, 'Z')
	} else {
		s.fill = nil
	}
	c.svg.Path(string(d), s.css())
}

func (c *svgCanvas) circle(x, y, r float64, s style) {
	c.svg.Circle(int(math.Round(x)), int(math.Round(y)), int(math.Max(1, math.Round(r))), s.css())
}

func (c *svgCanvas) text(x, y float64, label string, s textStyle) {
	anchor := "middle"
	switch {
	case s.hjust <= 0.25:
		anchor = "start"
	case s.hjust >= 0.75:
		anchor = "end"
	}
	xi, yi := int(math.Round(x)), int(math.Round(y))
	attrs := []string{
		fmt.Sprintf(`text-anchor="%s"`, anchor),
		fmt.Sprintf(`dy="%.3gem"`, 0.7*s.vjust),
		fmt.Sprintf(`font-size="%.3gpx"`, s.size),
		`style="` + paint("fill", s.colour) + `"`,
	}
	if s.family != "" {
		attrs = append(attrs, fmt.Sprintf(`font-family="%s"`, s.family))
	}
	if s.angle != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="rotate(%.6g %d %d)"`, -s.angle, xi, yi))
	}
	c.svg.Text(xi, yi, label, strings.Join(attrs, " "))
}

func (c *svgCanvas) clip(x, y, w, h float64) {
	c.clips++
	id := fmt.Sprintf("clip%d", c.clips)
	c.svg.ClipPath(`id="` + id + `"`)
	c.svg.Rect(int(x), int(y), int(math.Ceil(w)), int(math.Ceil(h)))
	c.svg.ClipEnd()
	c.svg.Group(`clip-path="url(#` + id + `)"`)
}

func (c *svgCanvas) unclip() {
	c.svg.Gend()
}

func appendFloats(d []byte, xs ...float64) []byte {
	for i, x := range xs {
		if i > 0 {
			d = append(d, ' ')
		}
		d = strconv.AppendFloat(d, x, 'g', 6, 64)
	}
	return d
}

// css returns the CSS style of s.
func (s style) css() string {
	css := paint("fill", s.fill) + ";" + paint("stroke", s.stroke)
	if s.stroke == nil {
		return css
	}
	css += fmt.Sprintf(";stroke-width:%.3g", s.width)
	if s.dash != nil {
		ds := make([]string, len(s.dash))
		for i, d := range s.dash {
			ds[i] = strconv.FormatFloat(d, 'g', 3, 64)
		}
		css += ";stroke-dasharray:" + strings.Join(ds, ",")
	}
	return css
}

// paint returns the CSS paint of c for property prop.
func paint(prop string, c color.Color) string {
	if c == nil {
		return prop + ":none"
	}
	hex, opacity := mark.Hex(c)
	if opacity == 0 {
		return prop + ":none"
	}
	css := prop + ":" + hex
	if opacity < 1 {
		css += fmt.Sprintf(";%s-opacity:%.3g", prop, opacity)
	}
	return css
}
