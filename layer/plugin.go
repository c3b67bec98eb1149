// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"reflect"
	"sort"

	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/panel"
)

// Params is a set of named, fixed layer parameters.
type Params map[string]interface{}

// Float returns the float64 value of parameter key, or def if it is
// not set or not numeric.
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	}
	return def
}

// Int returns the int value of parameter key, or def if it is not set
// or not numeric.
func (p Params) Int(key string, def int) int {
	if _, ok := p[key]; !ok {
		return def
	}
	return int(p.Float(key, float64(def)))
}

// Str returns the string value of parameter key, or def.
func (p Params) Str(key, def string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return def
}

// Bool returns the bool value of parameter key, or def.
func (p Params) Bool(key string, def bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return def
}

// Has reports whether parameter key is set.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Merge returns the union of p and q. q's values win.
func (p Params) Merge(q Params) Params {
	out := make(Params, len(p)+len(q))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range q {
		out[k] = v
	}
	return out
}

// Keys returns the keys of p, sorted.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StatInfo describes a statistic.
type StatInfo struct {
	// Name is the registry name of the statistic.
	Name string

	// Required lists the aesthetics the statistic requires. An
	// entry of the form "x|y" is satisfied by any one of its
	// alternatives.
	Required []string

	// Defaults are the default mappings of the statistic's output
	// columns to aesthetics. Each expression must be calculated
	// (see aes.Calc).
	Defaults aes.Mapping

	// Params lists the parameters the statistic accepts.
	Params []string

	// Retransform indicates that aesthetics computed by the
	// statistic should have the scale transformations applied.
	Retransform bool
}

// A Stat is a statistical transformation.
type Stat interface {
	Info() StatInfo

	// ComputeGroup computes the statistic for the rows of one
	// group of one panel. r is the trained position range of the
	// group's panel. The result may have any number of rows and
	// any columns.
	ComputeGroup(data frame.Frame, r panel.Ranges, params Params) (frame.Frame, error)
}

// A StatParamSetter derives statistic parameters from the layer's
// data. It must return the same result for the same inputs.
type StatParamSetter interface {
	SetupParams(data frame.Frame, params Params) (Params, error)
}

// A StatDataSetter preprocesses a layer's data before computing a
// statistic. It must not change the number of rows.
type StatDataSetter interface {
	SetupData(data frame.Frame, params Params) (frame.Frame, error)
}

// A StatLayerComputer computes a statistic over the whole layer at
// once instead of group by group.
type StatLayerComputer interface {
	ComputeLayer(data frame.Frame, params Params, ctx *panel.Context) (frame.Frame, error)
}

// Default is the default value of one aesthetic.
type Default struct {
	Aes   string
	Value interface{}
}

// GeomInfo describes a geom.
type GeomInfo struct {
	// Name is the registry name of the geom.
	Name string

	// Required lists the aesthetics the geom requires, in the
	// same form as StatInfo.Required.
	Required []string

	// Defaults are the default constant values of the geom's
	// other aesthetics.
	Defaults []Default

	// Optional lists further aesthetics the geom understands but
	// has no default for.
	Optional []string

	// Params lists the non-aesthetic parameters of the geom.
	Params []string
}

// Aesthetics returns every aesthetic the geom understands, including
// "group".
func (i GeomInfo) Aesthetics() []string {
	var out []string
	for _, r := range i.Required {
		out = append(out, alternatives(r)...)
	}
	for _, d := range i.Defaults {
		out = append(out, d.Aes)
	}
	out = append(out, i.Optional...)
	return append(out, "group")
}

// Geom is a geometric representation of a layer's data. Every Geom
// must also implement exactly one of PanelDrawer or GroupDrawer.
type Geom interface {
	Info() GeomInfo
}

// A GeomDataSetter normalizes a layer's data before positions are
// computed. It may add columns but must not drop required ones.
type GeomDataSetter interface {
	SetupData(data frame.Frame, params Params) (frame.Frame, error)
}

// DrawContext is the context passed to a geom's draw method.
type DrawContext struct {
	// Panel is the ID of the panel being drawn.
	Panel int

	// Ranges is the position range of the panel.
	Ranges panel.Ranges

	// Coord is the coordinate system. The data passed to the
	// geom has already been transformed by it.
	Coord coord.Coord

	// Params are the geom and aesthetic parameters of the layer.
	Params Params
}

// A PanelDrawer draws all rows of one panel at once.
type PanelDrawer interface {
	DrawPanel(data frame.Frame, dc DrawContext) (mark.Mark, error)
}

// A GroupDrawer draws one group of one panel at a time.
type GroupDrawer interface {
	DrawGroup(data frame.Frame, dc DrawContext) (mark.Mark, error)
}

// A KeyDrawer draws a geom's legend key from a one-row frame of
// aesthetic values.
type KeyDrawer interface {
	DrawKey(key frame.Frame, params Params) mark.Mark
}

// A Position adjusts the positions of a layer's geometry, panel by
// panel, for example to avoid overlap.
type Position interface {
	Name() string

	// ComputePanel adjusts the rows of one panel. The result must
	// have the same rows and columns as data; only position
	// aesthetics may change.
	ComputePanel(data frame.Frame, params Params, r panel.Ranges) (frame.Frame, error)
}

// A PositionParamSetter derives position parameters from the layer's
// data.
type PositionParamSetter interface {
	SetupParams(data frame.Frame) (Params, error)
}

// A PositionDataSetter preprocesses a layer's data before positions
// are computed.
type PositionDataSetter interface {
	SetupData(data frame.Frame, params Params) (frame.Frame, error)
}

// checkDrawers returns an error unless g implements exactly one of
// PanelDrawer and GroupDrawer.
func checkDrawers(g Geom) error {
	_, p := g.(PanelDrawer)
	_, gr := g.(GroupDrawer)
	if p == gr {
		return &GeomDrawerError{Name: g.Info().Name, Both: p}
	}
	return nil
}
