// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot composes layers into a plot and builds it.
//
// A Plot is data, a default aesthetic mapping, and a list of layers.
// Build runs every layer through the layer pipeline, sharing a single
// panel.Context between them, and Draw turns the built layers into
// marks, one per layer per panel.
package plot

import (
	"fmt"
	"sort"

	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/geom"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/panel"
	"github.com/aclements/ggbuild/position"
	"github.com/aclements/ggbuild/stat"
)

// Plot is a plot description.
type Plot struct {
	// Data is the default data of every layer.
	Data frame.Frame

	// Mapping is the default aesthetic mapping of every layer.
	Mapping aes.Mapping

	// Layers are drawn in order, so later layers are on top.
	Layers []*layer.Layer

	// Facet splits the plot into panels.
	Facet panel.Facet

	// Scales are user-specified scales, by aesthetic.
	Scales map[string]panel.ScaleSpec

	// Env is the fallback scope for evaluating aesthetic
	// expressions. It may be nil.
	Env aes.Env

	// Coord is the coordinate system. nil means
	// coord.Cartesian{}.
	Coord coord.Coord
}

// New returns a plot of data with the default mapping m.
func New(data frame.Frame, m aes.Mapping) *Plot {
	return &Plot{Data: data, Mapping: m}
}

// Add constructs a layer from s and appends it to p. Named
// components are looked up in reg, or in DefaultRegistry if reg is
// nil.
func (p *Plot) Add(reg *layer.Registry, s layer.Spec) error {
	if reg == nil {
		reg = DefaultRegistry()
	}
	l, err := layer.New(reg, s)
	if err != nil {
		return err
	}
	p.Layers = append(p.Layers, l)
	return nil
}

// Coordinates returns the plot's coordinate system.
func (p *Plot) Coordinates() coord.Coord {
	if p.Coord == nil {
		return coord.Cartesian{}
	}
	return p.Coord
}

// DefaultRegistry returns a registry holding all of the built-in
// stats, geoms, and positions.
func DefaultRegistry() *layer.Registry {
	reg := layer.NewRegistry()
	stat.Register(reg)
	if err := geom.Register(reg); err != nil {
		panic("registering built-in geoms: " + err.Error())
	}
	position.Register(reg)
	return reg
}

// Built is the result of building a plot.
type Built struct {
	Plot *Plot

	// Data is the final data of each layer, in layer order.
	Data []frame.Frame

	// Context is the trained panel and scale context.
	Context *panel.Context

	// Warnings are the non-fatal problems found while
	// constructing and building the layers.
	Warnings []string
}

// Build runs every layer of p through the layer pipeline.
//
// Stages that register or train scales run across all layers, in
// layer order, before the next stage starts. Any error aborts the
// build; it is wrapped with the index of the failing layer.
func Build(p *Plot) (*Built, error) {
	return build(p, sequential)
}

func build(p *Plot, run runner) (*Built, error) {
	ctx := panel.New(p.Facet, p.Env)
	names := make([]string, 0, len(p.Scales))
	for name := range p.Scales {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := ctx.SetScale(name, p.Scales[name]); err != nil {
			return nil, fmt.Errorf("scale %s: %w", name, err)
		}
	}

	n := len(p.Layers)
	data := make([]frame.Frame, n)
	for i, l := range p.Layers {
		if l.Data != nil {
			data[i] = *l.Data
		} else {
			data[i] = p.Data
		}
	}
	data = ctx.Setup(data)

	// each applies stage to every layer's data.
	each := func(run runner, stage func(l *layer.Layer, d frame.Frame) (frame.Frame, error)) error {
		return run(n, func(i int) error {
			d, err := stage(p.Layers[i], data[i])
			if err != nil {
				return fmt.Errorf("layer %d: %w", i+1, err)
			}
			data[i] = d
			return nil
		})
	}

	err := each(sequential, func(l *layer.Layer, d frame.Frame) (frame.Frame, error) {
		d, err := l.ComputeAesthetics(d, p.Mapping, ctx)
		if err != nil {
			return d, err
		}
		return ctx.Transform(d), nil
	})
	if err != nil {
		return nil, err
	}
	mapPosition(ctx, data, false)

	if err := each(run, func(l *layer.Layer, d frame.Frame) (frame.Frame, error) {
		return l.ComputeStatistic(d, ctx)
	}); err != nil {
		return nil, err
	}
	if err := each(sequential, func(l *layer.Layer, d frame.Frame) (frame.Frame, error) {
		return l.MapStatistic(d, p.Mapping, ctx)
	}); err != nil {
		return nil, err
	}
	if err := each(run, func(l *layer.Layer, d frame.Frame) (frame.Frame, error) {
		d, err := l.ComputeGeom1(d)
		if err != nil {
			return d, err
		}
		return l.ComputePosition(d, ctx)
	}); err != nil {
		return nil, err
	}
	mapPosition(ctx, data, true)

	ctx.TrainNonPosition(data)
	for i, l := range p.Layers {
		data[i] = l.ComputeGeom2(ctx.MapNonPosition(data[i]))
	}

	b := &Built{Plot: p, Data: data, Context: ctx}
	for _, l := range p.Layers {
		b.Warnings = append(b.Warnings, l.Warnings()...)
	}
	b.Warnings = append(b.Warnings, ctx.Warnings()...)
	return b, nil
}

// mapPosition trains the position scales on data and maps discrete
// positions to numbers. If reset is set, the continuous ranges are
// retrained from scratch.
func mapPosition(ctx *panel.Context, data []frame.Frame, reset bool) {
	if reset {
		ctx.ResetPosition()
	}
	ctx.TrainPosition(data)
	for i := range data {
		data[i] = ctx.MapPosition(data[i])
	}
}

// Draw draws every layer of b under coordinate system c, or under the
// plot's coordinate system if c is nil. The result has one entry per
// layer, each holding one mark per panel.
func Draw(b *Built, c coord.Coord) ([][]mark.Mark, error) {
	return draw(b, c, sequential)
}

func draw(b *Built, c coord.Coord, run runner) ([][]mark.Mark, error) {
	if c == nil {
		c = b.Plot.Coordinates()
	}
	out := make([][]mark.Mark, len(b.Data))
	err := run(len(b.Data), func(i int) error {
		ms, err := b.Plot.Layers[i].DrawGeom(b.Data[i], b.Context, c)
		if err != nil {
			return fmt.Errorf("layer %d: %w", i+1, err)
		}
		out[i] = ms
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// A runner calls f(i) for each i in [0, n), stopping at the first
// error.
type runner func(n int, f func(i int) error) error

func sequential(n int, f func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := f(i); err != nil {
			return err
		}
	}
	return nil
}
