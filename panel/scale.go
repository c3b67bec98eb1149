// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
)

// Kind is the kind of data a scale maps.
type Kind int

const (
	// Continuous scales map numeric data.
	Continuous Kind = iota

	// Discrete scales map categorical data.
	Discrete

	// Identity scales pass data through unchanged.
	Identity
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	case Identity:
		return "identity"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ScaleSpec is a user-specified scale for one aesthetic.
type ScaleSpec struct {
	// Kind is the kind of the scale.
	Kind Kind

	// Trans names a transformation applied to continuous data
	// before statistics are computed: "identity", "log10",
	// "sqrt", or "reverse". "" means "identity".
	Trans string

	// Palette, if non-nil, overrides the default discrete palette
	// of colour and fill scales.
	Palette []color.Color

	// Range, if non-zero, overrides the default output range of
	// size, alpha, and linewidth scales.
	Range [2]float64
}

// Scale is a registered scale.
type Scale struct {
	// Aes is the aesthetic the scale is registered for. Position
	// aesthetics share the scale of their axis ("x" or "y").
	Aes string

	// Kind is the kind of the scale.
	Kind Kind

	// Trans is the scale's transformation.
	Trans Trans

	// Default reports whether the scale was guessed from data
	// rather than specified by the user.
	Default bool

	spec   ScaleSpec
	scaler gg.Scaler
}

// visual is the set of non-position aesthetics that have scales.
// Other aesthetics, such as group, label, and weight, are never
// scaled.
var visual = map[string]bool{
	"colour":    true,
	"fill":      true,
	"size":      true,
	"alpha":     true,
	"linewidth": true,
	"stroke":    true,
	"shape":     true,
	"linetype":  true,
}

var xAesthetics = map[string]bool{
	"x": true, "xmin": true, "xmax": true, "xend": true,
	"xintercept": true, "xmin_final": true, "xmax_final": true,
	"xlower": true, "xmiddle": true, "xupper": true, "x0": true,
}

var yAesthetics = map[string]bool{
	"y": true, "ymin": true, "ymax": true, "yend": true,
	"yintercept": true, "ymin_final": true, "ymax_final": true,
	"lower": true, "middle": true, "upper": true, "y0": true,
}

// Axis returns "x" or "y" if aes is a position aesthetic of that axis,
// and "" otherwise.
func Axis(aes string) string {
	switch {
	case xAesthetics[aes]:
		return "x"
	case yAesthetics[aes]:
		return "y"
	}
	return ""
}

// scaleName returns the name of the scale that maps aes.
func scaleName(aes string) string {
	if a := Axis(aes); a != "" {
		return a
	}
	return aes
}

// SetScale registers a user-specified scale for aes. It must be called
// before the build starts and replaces any earlier registration.
func (c *Context) SetScale(aes string, spec ScaleSpec) error {
	trans, err := LookupTrans(spec.Trans)
	if err != nil {
		return err
	}
	name := scaleName(aes)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specs[name] = spec
	c.scales[name] = c.newScale(name, spec.Kind, trans, false, spec)
	return nil
}

// HasScale reports whether aes already has a scale.
func (c *Context) HasScale(aes string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.scales[scaleName(aes)]
	return ok
}

// Scale returns the scale registered for aes, or nil.
func (c *Context) Scale(aes string) *Scale {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scales[scaleName(aes)]
}

// AddDefaultScale registers a default scale for aes if it does not
// have one yet. The scale is continuous if vals is numeric and
// discrete otherwise. If aes already has a scale of a different kind,
// the first registration wins and a warning is recorded.
func (c *Context) AddDefaultScale(aes string, vals table.Slice) {
	if vals == nil || (Axis(aes) == "" && !visual[aes]) {
		return
	}
	kind := Discrete
	if frame.IsNumeric(vals) {
		kind = Continuous
	} else if isColors(vals) {
		kind = Identity
	}
	name := scaleName(aes)

	c.mu.Lock()
	s, ok := c.scales[name]
	if !ok {
		c.scales[name] = c.newScale(name, kind, identityTrans{}, true, ScaleSpec{Kind: kind})
	}
	c.mu.Unlock()

	if ok && s.Kind != kind && s.Kind != Identity && kind != Identity {
		c.Warnf("%s data for aesthetic %q does not match its %s scale; keeping the %s scale", kind, aes, s.Kind, s.Kind)
	}
}

func isColors(vals table.Slice) bool {
	return reflect.TypeOf(vals).Elem().Implements(colorType)
}

var colorType = reflect.TypeOf((*color.Color)(nil)).Elem()

func (c *Context) newScale(name string, kind Kind, trans Trans, def bool, spec ScaleSpec) *Scale {
	s := &Scale{Aes: name, Kind: kind, Trans: trans, Default: def, spec: spec}
	if Axis(name) != "" {
		c.axisOf(name).kind = kind
		return s
	}
	switch kind {
	case Continuous:
		s.scaler = gg.NewLinearScaler()
	case Discrete:
		s.scaler = gg.NewOrdinalScale()
	case Identity:
		s.scaler = gg.NewIdentityScale()
	}
	if r := defaultRanger(name, kind, spec); r != nil {
		s.scaler.Ranger(r)
	}
	return s
}

// Transform applies the transformation of each continuous scale to
// the columns it maps. It records a warning if a transformation
// introduces non-finite values.
func (c *Context) Transform(f frame.Frame) frame.Frame {
	out := f
	for _, col := range f.Columns() {
		s := c.Scale(col)
		if s == nil || s.Kind != Continuous || s.Trans.Name() == "identity" {
			continue
		}
		vals := f.Column(col)
		if !frame.IsNumeric(vals) {
			continue
		}
		xs := f.Float64s(col)
		ys := make([]float64, len(xs))
		bad := 0
		for i, x := range xs {
			ys[i] = s.Trans.Transform(x)
			if !math.IsNaN(x) && !isFinite(ys[i]) {
				bad++
			}
		}
		if bad > 0 {
			c.Warnf("%s transformation introduced %d non-finite values in %q", s.Trans.Name(), bad, col)
		}
		out = out.With(col, ys)
	}
	return out
}

// TrainNonPosition expands the domains of all non-position scales to
// cover the data in frames.
func (c *Context) TrainNonPosition(frames []frame.Frame) {
	for _, f := range frames {
		for _, col := range f.Columns() {
			s := c.Scale(col)
			if s == nil || s.scaler == nil || f.Len() == 0 {
				continue
			}
			vals := f.Column(col)
			if s.Kind == Continuous && !frame.IsNumeric(vals) {
				continue
			}
			if s.Kind == Continuous {
				vals = finite(f.Float64s(col))
			} else {
				vals = present(vals)
			}
			if frame.Len(vals) > 0 {
				s.scaler.ExpandDomain(vals)
			}
		}
	}
}

// MapNonPosition maps every column with a non-position scale through
// that scale, replacing data values with visual values such as colors
// and sizes. Missing values map to the scale's NA value.
func (c *Context) MapNonPosition(f frame.Frame) frame.Frame {
	out := f
	for _, col := range f.Columns() {
		s := c.Scale(col)
		if s == nil || s.scaler == nil || s.Kind == Identity || f.Len() == 0 {
			continue
		}
		vals := f.Column(col)
		if s.Kind == Continuous && !frame.IsNumeric(vals) {
			continue
		}
		out = out.With(col, s.mapMany(vals))
	}
	return out
}

func (s *Scale) mapMany(vals table.Slice) table.Slice {
	rt := s.scaler.RangeType()
	sv := reflect.ValueOf(vals)
	res := reflect.MakeSlice(reflect.SliceOf(rt), sv.Len(), sv.Len())
	na := naValue(s.Aes, rt)
	for i := 0; i < sv.Len(); i++ {
		v := sv.Index(i).Interface()
		var out interface{}
		if frame.IsNA(v) {
			out = na
		} else {
			out = s.scaler.Map(v)
		}
		if out == nil {
			continue
		}
		res.Index(i).Set(reflect.ValueOf(out))
	}
	return res.Interface()
}

func naValue(aes string, rt reflect.Type) interface{} {
	if rt == colorType {
		return color.Gray{0x7f}
	}
	if rt.Kind() == reflect.Float64 {
		return math.NaN()
	}
	return nil
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if isFinite(x) {
			out = append(out, x)
		}
	}
	return out
}

// present returns the non-missing elements of vals.
func present(vals table.Slice) table.Slice {
	sv := reflect.ValueOf(vals)
	var keep []int
	for i := 0; i < sv.Len(); i++ {
		if !frame.IsNA(sv.Index(i).Interface()) {
			keep = append(keep, i)
		}
	}
	if len(keep) == sv.Len() {
		return vals
	}
	return frame.New(new(table.Builder).Add("v", vals).Done()).Select(keep).Column("v")
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

// ScaleNames returns the names of all registered scales, sorted.
func (c *Context) ScaleNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.scales))
	for name := range c.scales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// autoPalette is the default discrete colour palette.
var autoPalette = []color.Color{
	color.RGBA{0x4c, 0x72, 0xb0, 0xff},
	color.RGBA{0x55, 0xa8, 0x68, 0xff},
	color.RGBA{0xc4, 0x4e, 0x52, 0xff},
	color.RGBA{0x81, 0x72, 0xb2, 0xff},
	color.RGBA{0xcc, 0xb9, 0x74, 0xff},
	color.RGBA{0x64, 0xb5, 0xcd, 0xff},
}

var shapes = []interface{}{"circle", "triangle", "square", "plus", "cross", "diamond"}

var linetypes = []interface{}{"solid", "dashed", "dotted", "dotdash", "longdash", "twodash"}

// defaultRanger returns the Ranger used by a new scale for aes, or
// nil if aes has no visual range (in which case its scale is never
// used for mapping).
func defaultRanger(aes string, kind Kind, spec ScaleSpec) gg.Ranger {
	if kind == Identity {
		return nil
	}
	frange := func(lo, hi float64) gg.Ranger {
		if spec.Range != [2]float64{} {
			lo, hi = spec.Range[0], spec.Range[1]
		}
		return gg.NewFloatRanger(lo, hi)
	}
	switch aes {
	case "colour", "fill":
		if kind == Continuous {
			return continuousColorRanger{palette.Viridis}
		}
		if spec.Palette != nil {
			return gg.NewColorRanger(spec.Palette)
		}
		return gg.NewColorRanger(autoPalette)
	case "size":
		return frange(1, 6)
	case "alpha":
		return frange(0.1, 1)
	case "linewidth", "stroke":
		return frange(0.5, 3)
	case "shape":
		return levelRanger(shapes)
	case "linetype":
		return levelRanger(linetypes)
	}
	return nil
}

// continuousColorRanger is a gg.ContinuousRanger over a continuous
// palette.
type continuousColorRanger struct {
	p palette.Continuous
}

func (r continuousColorRanger) RangeType() reflect.Type {
	return colorType
}

func (r continuousColorRanger) Map(x float64) interface{} {
	return r.p.Map(x)
}

func (r continuousColorRanger) Unmap(y interface{}) (float64, bool) {
	return 0, false
}

// levelRanger is a gg.DiscreteRanger that cycles through a fixed set
// of levels.
type levelRanger []interface{}

func (r levelRanger) RangeType() reflect.Type {
	return reflect.TypeOf(r[0])
}

func (r levelRanger) Levels() (min, max int) {
	return len(r), len(r)
}

func (r levelRanger) MapLevel(i, j int) interface{} {
	return r[i%len(r)]
}

// Breaks returns the legend breaks of a non-position scale: at most
// max data values for a continuous scale, or every level of a discrete
// scale, along with their labels and the visual values they map to.
// It returns nils for position and identity scales and for scales
// that have not been trained.
func (s *Scale) Breaks(max int) (vals table.Slice, labels []string, mapped table.Slice) {
	if s == nil || s.scaler == nil || s.Kind == Identity {
		return nil, nil, nil
	}
	major, _, labels := s.scaler.Ticks(max, nil)
	if major == nil || frame.Len(major) == 0 {
		return nil, nil, nil
	}
	return major, labels, s.mapMany(major)
}
