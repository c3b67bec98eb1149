// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package theme controls the non-data appearance of a plot.
//
// A Theme maps element names, such as "panel.background", to
// Elements. An Element is either complete, meaning it fully describes
// its part of the plot, or incomplete, meaning it only overrides some
// properties and inherits the rest from its parent element. Elements
// and themes combine with Merge and Theme.Add.
package theme

import "image/color"

// An Element is the appearance of one part of a plot. A nil colour,
// a zero number, or an empty string is unset.
type Element struct {
	// Complete marks an element that does not inherit from its
	// parent.
	Complete bool

	// Blank elements are not drawn.
	Blank bool

	Fill   color.Color
	Colour color.Color

	// Size is the font size in points for text elements and the
	// line width in millimetres for line and rect elements.
	Size float64

	Linetype string
	Family   string
}

// overlay returns e with every property set in o replaced by o's.
func (e Element) overlay(o Element) Element {
	if o.Blank {
		e.Blank = true
	}
	if o.Fill != nil {
		e.Fill = o.Fill
	}
	if o.Colour != nil {
		e.Colour = o.Colour
	}
	if o.Size != 0 {
		e.Size = o.Size
	}
	if o.Linetype != "" {
		e.Linetype = o.Linetype
	}
	if o.Family != "" {
		e.Family = o.Family
	}
	return e
}

// Merge combines a and b, with b taking precedence.
//
// Two incomplete elements combine into an incomplete element with the
// properties of both, preferring b's. If exactly one of them is
// complete, the result is that element with the properties set in the
// other overlaid. If both are complete, b replaces a.
func Merge(a, b Element) Element {
	switch {
	case a.Complete && b.Complete:
		return b
	case b.Complete:
		out := b.overlay(a)
		out.Complete = true
		return out
	}
	out := a.overlay(b)
	out.Complete = a.Complete
	return out
}

// A Theme is a set of named elements.
type Theme map[string]Element

// Add returns the theme with the elements of t merged with those of u,
// with u taking precedence. Neither t nor u is modified.
func (t Theme) Add(u Theme) Theme {
	out := make(Theme, len(t)+len(u))
	for k, e := range t {
		out[k] = e
	}
	for k, e := range u {
		if old, ok := out[k]; ok {
			out[k] = Merge(old, e)
		} else {
			out[k] = e
		}
	}
	return out
}

// parents gives the element each element inherits from.
var parents = map[string]string{
	"title":            "text",
	"plot.title":       "title",
	"plot.background":  "rect",
	"panel.background": "rect",
	"panel.border":     "rect",
	"panel.grid":       "line",
	"panel.grid.major": "panel.grid",
	"panel.grid.minor": "panel.grid",
	"strip.background": "rect",
	"strip.text":       "text",
	"legend.title":     "title",
	"legend.text":      "text",
	"legend.key":       "panel.background",
}

// Parent returns the name of the element name inherits from, or "" if
// it is a root element.
func Parent(name string) string {
	return parents[name]
}

// Get returns the element name with inheritance resolved. An
// incomplete element inherits every property it does not set from its
// parent, recursively, until a complete element or a root is reached.
func (t Theme) Get(name string) Element {
	e := t[name]
	if e.Complete {
		return e
	}
	if p := Parent(name); p != "" {
		return Merge(t.Get(p), e)
	}
	return e
}

func grey(v uint8) color.Color { return color.Gray{v} }

// Grey returns the default theme: a grey panel background with white
// grid lines.
func Grey() Theme {
	return Theme{
		"line": {Complete: true, Colour: grey(0), Size: 0.5, Linetype: "solid"},
		"rect": {Complete: true, Fill: grey(255), Colour: grey(0), Size: 0.5, Linetype: "solid"},
		"text": {Complete: true, Colour: grey(0), Size: 11, Family: "sans-serif"},

		"plot.background":  {Colour: grey(255)},
		"panel.background": {Fill: grey(235), Colour: grey(235)},
		"panel.border":     {Complete: true, Blank: true},
		"panel.grid":       {Colour: grey(255)},
		"panel.grid.minor": {Size: 0.25},
		"strip.background": {Fill: grey(217), Colour: grey(217)},
		"strip.text":       {Colour: grey(26), Size: 8.8},
		"plot.title":       {Size: 13.2},
	}
}

// BW returns a theme with a white panel background, grey grid lines,
// and a panel border.
func BW() Theme {
	return Grey().Add(Theme{
		"panel.background": {Fill: grey(255), Colour: grey(255)},
		"panel.border":     {Complete: true, Colour: grey(51), Size: 0.5, Linetype: "solid"},
		"panel.grid":       {Colour: grey(235)},
		"strip.background": {Colour: grey(51)},
	})
}

// Minimal returns a theme with no backgrounds or borders.
func Minimal() Theme {
	return BW().Add(Theme{
		"panel.background": {Complete: true, Blank: true},
		"panel.border":     {Complete: true, Blank: true},
		"strip.background": {Complete: true, Blank: true},
	})
}

// Named returns the built-in theme called name.
func Named(name string) (Theme, bool) {
	switch name {
	case "", "grey", "gray":
		return Grey(), true
	case "bw":
		return BW(), true
	case "minimal":
		return Minimal(), true
	}
	return nil, false
}
