// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/panel"
	"github.com/aclements/ggbuild/plot"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// Config is a plot description, as read from a YAML file.
type Config struct {
	// Data lists the data files. Their rows are concatenated.
	Data []string `yaml:"data"`

	// Format is the data file format: "csv", "bench", or "" to
	// pick by file extension.
	Format string `yaml:"format"`

	Title  string `yaml:"title"`
	Theme  string `yaml:"theme"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// Coord is "cartesian" or "flip".
	Coord string `yaml:"coord"`

	// Mapping is the plot's default aesthetic mapping. Each value
	// names a column, or is "calc(name)" for a column computed by
	// the layer's stat.
	Mapping map[string]string `yaml:"mapping"`

	Facet  FacetConfig            `yaml:"facet"`
	Scales map[string]ScaleConfig `yaml:"scales"`
	Layers []LayerConfig          `yaml:"layers"`
}

type FacetConfig struct {
	Wrap  string `yaml:"wrap"`
	FreeX bool   `yaml:"free_x"`
	FreeY bool   `yaml:"free_y"`
	Rows  int    `yaml:"rows"`
	Cols  int    `yaml:"cols"`
}

type ScaleConfig struct {
	// Kind is "continuous", "discrete", or "identity". "" means
	// discrete if Palette is set and continuous otherwise.
	Kind    string     `yaml:"kind"`
	Trans   string     `yaml:"trans"`
	Palette []string   `yaml:"palette"`
	Range   [2]float64 `yaml:"range"`
}

// LayerConfig describes one layer.
type LayerConfig struct {
	Geom     string `yaml:"geom"`
	Stat     string `yaml:"stat"`
	Position string `yaml:"position"`

	Mapping map[string]string      `yaml:"mapping"`
	Params  map[string]interface{} `yaml:"params"`

	NoInheritAes bool   `yaml:"no_inherit_aes"`
	ShowLegend   string `yaml:"show_legend"`
}

// ReadConfig decodes a YAML plot description from r.
func ReadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return &c, nil
		}
		return nil, err
	}
	return &c, nil
}

// ParseLayer parses a layer flag. The flag is a shell-quoted word
// list: the geom name, then "aes=column" mappings and "key:=value"
// parameters, with "stat=name" and "position=name" selecting the
// layer's stat and position. For example,
//
//	point x=x y=calc(count) colour=g size:=2 label:='a b'
func ParseLayer(s string) (LayerConfig, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return LayerConfig{}, fmt.Errorf("layer %q: %w", s, err)
	}
	if len(words) == 0 {
		return LayerConfig{}, fmt.Errorf("layer %q: missing geom", s)
	}
	l := LayerConfig{Geom: words[0]}
	for _, w := range words[1:] {
		if i := strings.Index(w, ":="); i > 0 {
			if l.Params == nil {
				l.Params = make(map[string]interface{})
			}
			l.Params[w[:i]] = parseValue(w[i+2:])
			continue
		}
		i := strings.Index(w, "=")
		if i <= 0 {
			return LayerConfig{}, fmt.Errorf("layer %q: %q is neither aes=column nor key:=value", s, w)
		}
		k, v := w[:i], w[i+1:]
		switch k {
		case "stat":
			l.Stat = v
		case "position":
			l.Position = v
		case "show_legend":
			l.ShowLegend = v
		default:
			if l.Mapping == nil {
				l.Mapping = make(map[string]string)
			}
			l.Mapping[k] = v
		}
	}
	return l, nil
}

// parseValue parses a layer flag parameter value as an integer, a
// float, "true" or "false", or else a string.
func parseValue(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Plot returns the plot c describes over data.
func (c *Config) Plot(data frame.Frame) (*plot.Plot, error) {
	m, err := parseMapping(c.Mapping)
	if err != nil {
		return nil, err
	}
	p := plot.New(data, m)
	p.Facet = panel.Facet{
		Wrap:  c.Facet.Wrap,
		FreeX: c.Facet.FreeX,
		FreeY: c.Facet.FreeY,
		Rows:  c.Facet.Rows,
		Cols:  c.Facet.Cols,
	}

	switch c.Coord {
	case "", "cartesian":
	case "flip":
		p.Coord = coord.Flip{}
	default:
		return nil, fmt.Errorf("unknown coordinate system %q", c.Coord)
	}

	for name, sc := range c.Scales {
		spec, err := sc.spec()
		if err != nil {
			return nil, fmt.Errorf("scale %s: %w", name, err)
		}
		if p.Scales == nil {
			p.Scales = make(map[string]panel.ScaleSpec)
		}
		p.Scales[name] = spec
	}

	reg := plot.DefaultRegistry()
	for i, lc := range c.Layers {
		spec, err := lc.spec()
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
		if err := p.Add(reg, spec); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
	}
	return p, nil
}

func (sc ScaleConfig) spec() (panel.ScaleSpec, error) {
	var s panel.ScaleSpec
	switch sc.Kind {
	case "", "continuous":
		s.Kind = panel.Continuous
	case "discrete":
		s.Kind = panel.Discrete
	case "identity":
		s.Kind = panel.Identity
	default:
		return s, fmt.Errorf("unknown scale kind %q", sc.Kind)
	}
	if _, err := panel.LookupTrans(sc.Trans); err != nil {
		return s, err
	}
	s.Trans = sc.Trans
	for _, name := range sc.Palette {
		c, err := mark.ParseColor(name)
		if err != nil {
			return s, err
		}
		s.Palette = append(s.Palette, c)
	}
	if len(sc.Palette) > 0 && sc.Kind == "" {
		s.Kind = panel.Discrete
	}
	s.Range = sc.Range
	return s, nil
}

// defaultStat and defaultPosition give the stat and position of each
// geom when a layer does not name them.
var (
	defaultStat = map[string]string{
		"bar": "count",
	}
	defaultPosition = map[string]string{
		"bar": "stack",
		"col": "stack",
	}
)

func (lc LayerConfig) spec() (layer.Spec, error) {
	m, err := parseMapping(lc.Mapping)
	if err != nil {
		return layer.Spec{}, err
	}
	s := layer.Spec{
		Geom:         lc.Geom,
		Stat:         lc.Stat,
		Position:     lc.Position,
		Mapping:      m,
		NoInheritAes: lc.NoInheritAes,
	}
	if lc.Geom == "" {
		return s, fmt.Errorf("missing geom")
	}
	if lc.Stat == "" {
		s.Stat = "identity"
		if st, ok := defaultStat[lc.Geom]; ok {
			s.Stat = st
		}
	}
	if lc.Position == "" {
		s.Position = "identity"
		if pos, ok := defaultPosition[lc.Geom]; ok {
			s.Position = pos
		}
	}
	if lc.ShowLegend != "" {
		s.ShowLegend = lc.ShowLegend
	}
	if len(lc.Params) > 0 {
		s.Params = layer.Params(lc.Params)
	}
	return s, nil
}

// parseMapping converts a configuration mapping into an aes.Mapping,
// in aesthetic name order.
func parseMapping(m map[string]string) (aes.Mapping, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	var out aes.Mapping
	for _, name := range names {
		v := strings.TrimSpace(m[name])
		if v == "" {
			return nil, fmt.Errorf("aesthetic %s: empty expression", name)
		}
		var e aes.Expr = aes.Col(v)
		if strings.HasPrefix(v, "calc(") && strings.HasSuffix(v, ")") {
			e = aes.Calc(aes.Col(strings.TrimSpace(v[len("calc(") : len(v)-1])))
		}
		out = out.Set(name, e)
	}
	return out, nil
}
