// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/panel"
)

// maxBreaks is the most breaks a continuous legend shows.
const maxBreaks = 5

// A Legend explains one non-position scale.
type Legend struct {
	// Aes is the aesthetic of the scale.
	Aes string

	// Title is the expression mapped to Aes.
	Title string

	// Labels are the labels of the breaks of the scale.
	Labels []string

	// Keys[i] holds the key marks of break i, one for each layer
	// that shows in the legend.
	Keys [][]mark.Mark
}

// Legends returns a legend for every trained non-position scale of b
// that some layer shows in its legend, in aesthetic order.
func (b *Built) Legends() []Legend {
	var out []Legend
	for _, name := range b.Context.ScaleNames() {
		if panel.Axis(name) != "" {
			continue
		}
		_, labels, mapped := b.Context.Scale(name).Breaks(maxBreaks)
		if mapped == nil {
			continue
		}
		keys := frame.New(new(table.Builder).Add(name, mapped).Done())
		lg := Legend{Aes: name, Title: b.title(name), Labels: labels}
		shown := false
		for i := range labels {
			key := keys.Select([]int{i})
			var ms []mark.Mark
			for _, l := range b.Plot.Layers {
				if m, ok := l.DrawKey(key, b.Plot.Mapping); ok {
					ms = append(ms, m)
				}
			}
			shown = shown || len(ms) > 0
			lg.Keys = append(lg.Keys, ms)
		}
		if shown {
			out = append(out, lg)
		}
	}
	return out
}

// title returns the expression aes is mapped to by the plot, or else
// by the first layer that maps it.
func (b *Built) title(aes string) string {
	if e, ok := b.Plot.Mapping.Get(aes); ok {
		return e.String()
	}
	for _, l := range b.Plot.Layers {
		if e, ok := l.Mapping.Get(aes); ok {
			return e.String()
		}
	}
	return aes
}
