// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layer implements plot layers and the pipeline that turns a
// layer's data into drawable marks.
//
// A Layer combines a Stat, which computes a statistical summary of
// the data, a Position, which adjusts positions to avoid overlap, and
// a Geom, which draws the result. Building a layer runs these stages,
// in order:
//
//	ComputeAesthetics  evaluate the aesthetic mapping and assign groups
//	ComputeStatistic   compute the stat for each group of each panel
//	MapStatistic       evaluate mappings of computed columns
//	ComputeGeom1       set up geom data and check required aesthetics
//	ComputePosition    adjust positions panel by panel
//	ComputeGeom2       fill in default aesthetics
//	DrawGeom           draw each panel
//
// Every stage takes a frame.Frame and returns a new one. The only
// shared mutable state is the *panel.Context, which collects scales
// and position ranges across all layers of a plot. The plot package
// sequences the stages across layers.
package layer

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/frame"
)

// Warning is a logger for non-fatal problems found while constructing
// layers.
var Warning = log.New(os.Stderr, "[ggbuild] ", log.Lshortfile)

// Legend controls whether a layer appears in legends.
type Legend int

const (
	// LegendAuto includes the layer in the legends of the
	// aesthetics it maps.
	LegendAuto Legend = iota
	// LegendShow always includes the layer.
	LegendShow
	// LegendHide never includes the layer.
	LegendHide
)

func (l Legend) String() string {
	switch l {
	case LegendAuto:
		return "auto"
	case LegendShow:
		return "show"
	case LegendHide:
		return "hide"
	}
	return fmt.Sprintf("Legend(%d)", int(l))
}

// Spec describes a layer to construct.
type Spec struct {
	// Geom, Stat, and Position are each either a name to look up
	// in the registry or a Geom, Stat, or Position value.
	Geom, Stat, Position interface{}

	// Mapping is the layer's aesthetic mapping.
	Mapping aes.Mapping

	// Data is the layer's data. If nil, the layer uses the plot's
	// data.
	Data *frame.Frame

	// Params are fixed parameters. Each key must name an
	// aesthetic of the geom, a parameter of the geom, or a
	// parameter of the stat.
	Params Params

	// NoInheritAes, if true, stops the layer from combining its
	// mapping with the plot's mapping.
	NoInheritAes bool

	// ShowLegend is nil or "auto" for LegendAuto, true or "show"
	// for LegendShow, false or "hide" for LegendHide, or a Legend.
	// Other values are treated as LegendHide with a warning.
	ShowLegend interface{}

	// Subset, if non-nil, is a predicate selecting the rows of the
	// data to plot. It must evaluate to a []bool.
	Subset aes.Expr
}

// A Layer is one geom, stat, and position applied to a data set.
// Layers are immutable once constructed.
type Layer struct {
	Data     *frame.Frame
	Mapping  aes.Mapping
	Stat     Stat
	Geom     Geom
	Position Position

	// AesParams fix aesthetics to constant values. GeomParams and
	// StatParams are the non-aesthetic parameters of the geom and
	// stat. A parameter accepted by both the geom and the stat
	// appears in both.
	AesParams, GeomParams, StatParams Params

	InheritAes bool
	ShowLegend Legend
	Subset     aes.Expr

	warnings []string
}

// New constructs a layer from s, looking up named components in reg.
// reg may be nil if s names no components.
func New(reg *Registry, s Spec) (*Layer, error) {
	l := &Layer{
		Data:       s.Data,
		Mapping:    s.Mapping,
		InheritAes: !s.NoInheritAes,
		Subset:     s.Subset,
	}

	var err error
	if l.Geom, err = resolveGeom(reg, s.Geom); err != nil {
		return nil, err
	}
	if l.Stat, err = resolveStat(reg, s.Stat); err != nil {
		return nil, err
	}
	if l.Position, err = resolvePosition(reg, s.Position); err != nil {
		return nil, err
	}

	l.AesParams, l.GeomParams, l.StatParams, err = splitParams(s.Params, l.Geom.Info(), l.Stat.Info())
	if err != nil {
		return nil, err
	}

	l.ShowLegend = l.coerceLegend(s.ShowLegend)
	return l, nil
}

func resolveGeom(reg *Registry, v interface{}) (Geom, error) {
	switch v := v.(type) {
	case nil:
		return nil, &MissingComponentError{"geom"}
	case string:
		if reg == nil {
			return nil, &UnknownExtensionError{"geom", v}
		}
		return reg.Geom(v)
	case Geom:
		if err := checkDrawers(v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("geom must be a name or a Geom, not %T", v)
}

func resolveStat(reg *Registry, v interface{}) (Stat, error) {
	switch v := v.(type) {
	case nil:
		return nil, &MissingComponentError{"stat"}
	case string:
		if reg == nil {
			return nil, &UnknownExtensionError{"stat", v}
		}
		return reg.Stat(v)
	case Stat:
		return v, nil
	}
	return nil, fmt.Errorf("stat must be a name or a Stat, not %T", v)
}

func resolvePosition(reg *Registry, v interface{}) (Position, error) {
	switch v := v.(type) {
	case nil:
		return nil, &MissingComponentError{"position"}
	case string:
		if reg == nil {
			return nil, &UnknownExtensionError{"position", v}
		}
		return reg.Position(v)
	case Position:
		return v, nil
	}
	return nil, fmt.Errorf("position must be a name or a Position, not %T", v)
}

// splitParams divides params into aesthetic, geom, and stat
// parameters. Aesthetic names are standardized.
func splitParams(params Params, gi GeomInfo, si StatInfo) (aesParams, geomParams, statParams Params, err error) {
	isAes := stringSet(gi.Aesthetics())
	isGeom := stringSet(gi.Params)
	isStat := stringSet(si.Params)

	aesParams, geomParams, statParams = Params{}, Params{}, Params{}
	var unknown []string
	for _, k := range params.Keys() {
		v := params[k]
		if a := aes.Standardize(k); isAes[a] {
			aesParams[a] = v
			continue
		}
		known := false
		if isGeom[k] {
			geomParams[k] = v
			known = true
		}
		if isStat[k] {
			statParams[k] = v
			known = true
		}
		if !known {
			unknown = append(unknown, k)
		}
	}
	if unknown != nil {
		return nil, nil, nil, &UnknownParameterError{unknown}
	}
	return
}

func (l *Layer) coerceLegend(v interface{}) Legend {
	switch v := v.(type) {
	case nil:
		return LegendAuto
	case Legend:
		if v >= LegendAuto && v <= LegendHide {
			return v
		}
	case bool:
		if v {
			return LegendShow
		}
		return LegendHide
	case string:
		switch strings.ToLower(v) {
		case "auto", "na":
			return LegendAuto
		case "show", "true":
			return LegendShow
		case "hide", "false":
			return LegendHide
		}
	}
	msg := fmt.Sprintf("show_legend must be a bool or \"auto\", not %#v; hiding legend", v)
	l.warnings = append(l.warnings, msg)
	Warning.Output(2, msg)
	return LegendHide
}

// Warnings returns the warnings raised while constructing l.
func (l *Layer) Warnings() []string {
	return append([]string(nil), l.warnings...)
}

func (l *Layer) String() string {
	return fmt.Sprintf("geom_%s(stat=%s, position=%s, %v)", l.Geom.Info().Name, l.Stat.Info().Name, l.Position.Name(), l.Mapping)
}

func stringSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// alternatives splits a required aesthetic of the form "x|y".
func alternatives(req string) []string {
	return strings.Split(req, "|")
}

// missingAes returns the entries of required that are satisfied
// neither by a column of data nor by a key of params.
func missingAes(required []string, data frame.Frame, params Params) []string {
	var missing []string
	for _, req := range required {
		ok := false
		for _, a := range alternatives(req) {
			if data.Has(a) || params.Has(a) {
				ok = true
				break
			}
		}
		if !ok {
			missing = append(missing, req)
		}
	}
	return missing
}
