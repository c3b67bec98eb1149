// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aes

import (
	"fmt"
	"strings"
)

// A Binding binds one aesthetic to an expression.
type Binding struct {
	Aes  string
	Expr Expr
}

// A Mapping is an ordered set of bindings with distinct aesthetic
// names. Mappings are values: methods return new Mappings rather than
// modifying the receiver.
type Mapping []Binding

// New returns a Mapping from alternating aesthetic names and
// expressions. A string expression is shorthand for Col. Aesthetic
// names are standardized, so "color" binds "colour".
func New(pairs ...interface{}) Mapping {
	if len(pairs)%2 != 0 {
		panic("aes.New: odd number of arguments")
	}
	var m Mapping
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("aes.New: argument %d is %T, not an aesthetic name", i, pairs[i]))
		}
		var e Expr
		switch v := pairs[i+1].(type) {
		case Expr:
			e = v
		case string:
			e = Col(v)
		default:
			panic(fmt.Sprintf("aes.New: argument %d is %T, not an expression", i+1, pairs[i+1]))
		}
		m = m.Set(name, e)
	}
	return m
}

// Get returns the expression bound to aesthetic name.
func (m Mapping) Get(name string) (Expr, bool) {
	for _, b := range m {
		if b.Aes == name {
			return b.Expr, true
		}
	}
	return nil, false
}

// Has reports whether m binds aesthetic name.
func (m Mapping) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Names returns the aesthetic names bound by m, in order.
func (m Mapping) Names() []string {
	names := make([]string, len(m))
	for i, b := range m {
		names[i] = b.Aes
	}
	return names
}

// Set returns a copy of m with name bound to e. An existing binding
// keeps its position.
func (m Mapping) Set(name string, e Expr) Mapping {
	name = Standardize(name)
	out := make(Mapping, len(m), len(m)+1)
	copy(out, m)
	for i := range out {
		if out[i].Aes == name {
			out[i].Expr = e
			return out
		}
	}
	return append(out, Binding{name, e})
}

// Over returns m merged over base: the bindings of m, followed by the
// bindings of base whose aesthetics m does not bind.
func (m Mapping) Over(base Mapping) Mapping {
	out := make(Mapping, len(m), len(m)+len(base))
	copy(out, m)
	for _, b := range base {
		if !m.Has(b.Aes) {
			out = append(out, b)
		}
	}
	return out
}

// Without returns a copy of m without the named aesthetics.
func (m Mapping) Without(names ...string) Mapping {
	return m.Filter(func(b Binding) bool {
		for _, name := range names {
			if b.Aes == name {
				return false
			}
		}
		return true
	})
}

// Filter returns the bindings of m for which keep returns true.
func (m Mapping) Filter(keep func(Binding) bool) Mapping {
	var out Mapping
	for _, b := range m {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (m Mapping) String() string {
	parts := make([]string, len(m))
	for i, b := range m {
		parts[i] = b.Aes + " = " + b.Expr.String()
	}
	return "aes(" + strings.Join(parts, ", ") + ")"
}

var aliases = map[string]string{
	"color": "colour",
	"col":   "colour",
	"pch":   "shape",
	"cex":   "size",
	"lty":   "linetype",
	"lwd":   "linewidth",
	"srt":   "angle",
	"adj":   "hjust",
	"bg":    "fill",
	"fg":    "colour",
	"min":   "ymin",
	"max":   "ymax",
}

// Standardize returns the canonical spelling of an aesthetic name.
// It accepts American spellings and a few legacy abbreviations.
func Standardize(name string) string {
	if a, ok := aliases[name]; ok {
		return a
	}
	if strings.HasSuffix(name, "_color") {
		return strings.TrimSuffix(name, "_color") + "_colour"
	}
	return name
}

// StandardizeAll applies Standardize to each name.
func StandardizeAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Standardize(n)
	}
	return out
}
