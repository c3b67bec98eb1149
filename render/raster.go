// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/plot"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"
)

// Raster draws marks, as returned by plot.Draw(b, nil), to a new
// image.
//
// Text is drawn in a fixed-size bitmap font and is never rotated.
func Raster(b *plot.Built, marks [][]mark.Mark, o Options) *image.RGBA {
	w, h := o.size()
	c := &rasterCanvas{
		dst: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(w, h),
	}
	draw(c, b, marks, o)
	if o.Scale > 0 && o.Scale != 1 {
		return resize(c.dst, o.Scale)
	}
	return c.dst
}

// resize returns img scaled by factor s.
func resize(img *image.RGBA, s float64) *image.RGBA {
	sb := img.Bounds()
	w := int(math.Max(1, math.Round(float64(sb.Dx())*s)))
	h := int(math.Max(1, math.Round(float64(sb.Dy())*s)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, sb, xdraw.Src, nil)
	return dst
}

// Formats are the image formats supported by Encode.
var Formats = []string{"png", "tiff", "bmp"}

// Encode writes img to w in the named image format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unknown image format %q", format)
}

type rasterCanvas struct {
	dst   *image.RGBA
	z     *vector.Rasterizer
	clips []image.Rectangle
}

// pen adds path segments to a rasterizer whose origin is at (dx, dy)
// in canvas coordinates.
type pen struct {
	z      *vector.Rasterizer
	dx, dy float64
}

func (p *pen) moveTo(x, y float64) { p.z.MoveTo(float32(x-p.dx), float32(y-p.dy)) }
func (p *pen) lineTo(x, y float64) { p.z.LineTo(float32(x-p.dx), float32(y-p.dy)) }

func (p *pen) cubeTo(x1, y1, x2, y2, x3, y3 float64) {
	p.z.CubeTo(float32(x1-p.dx), float32(y1-p.dy), float32(x2-p.dx), float32(y2-p.dy), float32(x3-p.dx), float32(y3-p.dy))
}

// kappa places the control points of a cubic Bézier quarter circle.
const kappa = 0.5522847498

// circle adds a counterclockwise circle.
func (p *pen) circle(cx, cy, r float64) {
	k := kappa * r
	p.moveTo(cx+r, cy)
	p.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	p.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	p.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	p.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	p.z.ClosePath()
}

// segment adds a counterclockwise rectangle of width w around the
// line from (x0, y0) to (x1, y1).
func (p *pen) segment(x0, y0, x1, y1, w float64) {
	l := math.Hypot(x1-x0, y1-y0)
	if l == 0 {
		return
	}
	nx, ny := (y1-y0)/l*w/2, -(x1-x0)/l*w/2
	p.moveTo(x0+nx, y0+ny)
	p.lineTo(x1+nx, y1+ny)
	p.lineTo(x1-nx, y1-ny)
	p.lineTo(x0-nx, y0-ny)
	p.z.ClosePath()
}

func (c *rasterCanvas) bounds() image.Rectangle {
	if n := len(c.clips); n > 0 {
		return c.clips[n-1]
	}
	return c.dst.Bounds()
}

// paint fills the paths added by add with col.
func (c *rasterCanvas) paint(col color.Color, add func(p *pen)) {
	if col == nil {
		return
	}
	if _, _, _, a := col.RGBA(); a == 0 {
		return
	}
	r := c.bounds()
	if r.Empty() {
		return
	}
	c.z.Reset(r.Dx(), r.Dy())
	add(&pen{z: c.z, dx: float64(r.Min.X), dy: float64(r.Min.Y)})
	c.z.Draw(c.dst, r, image.NewUniform(col), image.Point{})
}

// stroke paints the polyline through xs, ys in the style of s.
func (c *rasterCanvas) stroke(xs, ys []float64, closed bool, s style) {
	if s.stroke == nil || len(xs) < 2 {
		return
	}
	if closed {
		xs, ys = append(xs[:len(xs):len(xs)], xs[0]), append(ys[:len(ys):len(ys)], ys[0])
	}
	w := math.Max(s.width, 1)
	c.paint(s.stroke, func(p *pen) {
		if s.dash != nil {
			for _, seg := range dashSegments(xs, ys, s.dash) {
				p.segment(seg[0], seg[1], seg[2], seg[3], w)
			}
			return
		}
		for i := 1; i < len(xs); i++ {
			p.segment(xs[i-1], ys[i-1], xs[i], ys[i], w)
			if i < len(xs)-1 || closed {
				p.circle(xs[i], ys[i], w/2)
			}
		}
	})
}

// dashSegments splits the polyline through xs, ys into the segments
// drawn by the dash pattern pat, which alternates drawn and skipped
// lengths.
func dashSegments(xs, ys []float64, pat []float64) [][4]float64 {
	var out [][4]float64
	idx, left, on := 0, pat[0], true
	for i := 1; i < len(xs); i++ {
		x0, y0, x1, y1 := xs[i-1], ys[i-1], xs[i], ys[i]
		l := math.Hypot(x1-x0, y1-y0)
		for pos := 0.0; pos < l; {
			step := math.Min(left, l-pos)
			if on {
				a, b := pos/l, (pos+step)/l
				out = append(out, [4]float64{x0 + a*(x1-x0), y0 + a*(y1-y0), x0 + b*(x1-x0), y0 + b*(y1-y0)})
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(pat)
				left, on = pat[idx], !on
			}
		}
	}
	return out
}

func (c *rasterCanvas) rect(x, y, w, h float64, s style) {
	xs := []float64{x, x + w, x + w, x}
	ys := []float64{y, y, y + h, y + h}
	c.path(xs, ys, true, s)
}

func (c *rasterCanvas) path(xs, ys []float64, closed bool, s style) {
	if closed && len(xs) > 2 {
		c.paint(s.fill, func(p *pen) {
			p.moveTo(xs[0], ys[0])
			for i := 1; i < len(xs); i++ {
				p.lineTo(xs[i], ys[i])
			}
			p.z.ClosePath()
		})
	}
	c.stroke(xs, ys, closed, s)
}

func (c *rasterCanvas) circle(x, y, r float64, s style) {
	c.paint(s.fill, func(p *pen) { p.circle(x, y, r) })
	if s.stroke != nil {
		c.paint(s.stroke, func(p *pen) {
			p.circle(x, y, r+s.width/2)
			// The inner circle runs clockwise, leaving a ring.
			k, ri := kappa*(r-s.width/2), r-s.width/2
			if ri <= 0 {
				return
			}
			p.moveTo(x+ri, y)
			p.cubeTo(x+ri, y-k, x+k, y-ri, x, y-ri)
			p.cubeTo(x-k, y-ri, x-ri, y-k, x-ri, y)
			p.cubeTo(x-ri, y+k, x-k, y+ri, x, y+ri)
			p.cubeTo(x+k, y+ri, x+ri, y+k, x+ri, y)
			p.z.ClosePath()
		})
	}
}

func (c *rasterCanvas) text(x, y float64, label string, s textStyle) {
	if s.colour == nil {
		return
	}
	face := basicfont.Face7x13
	dst, ok := c.dst.SubImage(c.bounds()).(*image.RGBA)
	if !ok {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(s.colour), Face: face}
	width := float64(d.MeasureString(label).Round())
	ascent := float64(face.Metrics().Ascent.Round())
	d.Dot = fixed.P(int(math.Round(x-s.hjust*width)), int(math.Round(y+s.vjust*ascent)))
	d.DrawString(label)
}

func (c *rasterCanvas) clip(x, y, w, h float64) {
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	c.clips = append(c.clips, r.Intersect(c.bounds()))
}

func (c *rasterCanvas) unclip() {
	c.clips = c.clips[:len(c.clips)-1]
}
