// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mark

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// NA is the colour of missing values.
var NA color.Color = color.Gray{0x7f}

var named = map[string]color.Color{
	"black":       color.Black,
	"white":       color.White,
	"transparent": color.Transparent,
	"red":         color.RGBA{0xff, 0x00, 0x00, 0xff},
	"green":       color.RGBA{0x00, 0xff, 0x00, 0xff},
	"blue":        color.RGBA{0x00, 0x00, 0xff, 0xff},
	"cyan":        color.RGBA{0x00, 0xff, 0xff, 0xff},
	"magenta":     color.RGBA{0xff, 0x00, 0xff, 0xff},
	"yellow":      color.RGBA{0xff, 0xff, 0x00, 0xff},
	"orange":      color.RGBA{0xff, 0xa5, 0x00, 0xff},
	"purple":      color.RGBA{0xa0, 0x20, 0xf0, 0xff},
	"brown":       color.RGBA{0xa5, 0x2a, 0x2a, 0xff},
	"pink":        color.RGBA{0xff, 0xc0, 0xcb, 0xff},
	"navy":        color.RGBA{0x00, 0x00, 0x80, 0xff},
	"darkgreen":   color.RGBA{0x00, 0x64, 0x00, 0xff},
	"steelblue":   color.RGBA{0x46, 0x82, 0xb4, 0xff},
	"firebrick":   color.RGBA{0xb2, 0x22, 0x22, 0xff},
	"grey":        color.Gray{0xbe},
	"gray":        color.Gray{0xbe},
}

// ParseColor parses a colour name ("red", "grey50") or hex triplet
// ("#rrggbb" or "#rrggbbaa").
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		h := s[1:]
		if len(h) != 6 && len(h) != 8 {
			return nil, fmt.Errorf("bad colour %q", s)
		}
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad colour %q", s)
		}
		if len(h) == 6 {
			v = v<<8 | 0xff
		}
		return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	}
	for _, prefix := range []string{"grey", "gray"} {
		if strings.HasPrefix(s, prefix) {
			n, err := strconv.Atoi(s[len(prefix):])
			if err != nil || n < 0 || n > 100 {
				break
			}
			return color.Gray{uint8(math.Round(float64(n) * 255 / 100))}, nil
		}
	}
	return nil, fmt.Errorf("unknown colour %q", s)
}

// Colors converts a column of colours into a []color.Color. Elements
// may be color.Color values or strings accepted by ParseColor.
// Missing and unparseable values become NA. If alpha is non-nil, it
// holds per-element opacities in [0, 1] that are applied to the
// result.
func Colors(col interface{}, alpha []float64) []color.Color {
	if col == nil {
		return nil
	}
	sv := reflect.ValueOf(col)
	out := make([]color.Color, sv.Len())
	for i := range out {
		var c color.Color = NA
		switch v := sv.Index(i).Interface().(type) {
		case color.Color:
			c = v
		case string:
			if p, err := ParseColor(v); err == nil {
				c = p
			}
		}
		if alpha != nil && i < len(alpha) && !math.IsNaN(alpha[i]) {
			c = WithAlpha(c, alpha[i])
		}
		out[i] = c
	}
	return out
}

// WithAlpha returns c with its opacity multiplied by a.
func WithAlpha(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	a = math.Max(0, math.Min(1, a))
	n.A = uint8(math.Round(float64(n.A) * a))
	return n
}

// Hex formats c as "#rrggbb", ignoring opacity, and returns its
// opacity separately.
func Hex(c color.Color) (hex string, opacity float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}
