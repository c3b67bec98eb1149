// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"errors"
	"io/ioutil"
	"math"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/mark"
	"github.com/aclements/ggbuild/panel"
	"github.com/google/go-cmp/cmp"
)

func init() {
	Warning.SetOutput(ioutil.Discard)
	panel.Warning.SetOutput(ioutil.Discard)
}

type testStat struct {
	info StatInfo
	fn   func(frame.Frame) frame.Frame
}

func (s testStat) Info() StatInfo { return s.info }

func (s testStat) ComputeGroup(data frame.Frame, r panel.Ranges, params Params) (frame.Frame, error) {
	if s.fn != nil {
		return s.fn(data), nil
	}
	return data, nil
}

var identityStat = testStat{info: StatInfo{Name: "identity"}}

type pointGeom struct{}

func (pointGeom) Info() GeomInfo {
	return GeomInfo{
		Name:     "point",
		Required: []string{"x", "y"},
		Defaults: []Default{{"colour", "black"}, {"size", 1.5}},
	}
}

func (pointGeom) DrawPanel(data frame.Frame, dc DrawContext) (mark.Mark, error) {
	return &mark.Points{X: data.Float64s("x"), Y: data.Float64s("y")}, nil
}

type pathGeom struct{}

func (pathGeom) Info() GeomInfo {
	return GeomInfo{Name: "path", Required: []string{"x", "y"}}
}

func (pathGeom) DrawGroup(data frame.Frame, dc DrawContext) (mark.Mark, error) {
	return &mark.Path{X: data.Float64s("x"), Y: data.Float64s("y")}, nil
}

type bothGeom struct{ pointGeom }

func (bothGeom) DrawGroup(data frame.Frame, dc DrawContext) (mark.Mark, error) { return nil, nil }

type neitherGeom struct{}

func (neitherGeom) Info() GeomInfo { return GeomInfo{Name: "neither"} }

type identityPos struct{}

func (identityPos) Name() string { return "identity" }

func (identityPos) ComputePanel(data frame.Frame, params Params, r panel.Ranges) (frame.Frame, error) {
	return data, nil
}

func newLayer(t *testing.T, s Spec) *Layer {
	t.Helper()
	if s.Geom == nil {
		s.Geom = pointGeom{}
	}
	if s.Stat == nil {
		s.Stat = identityStat
	}
	if s.Position == nil {
		s.Position = identityPos{}
	}
	l, err := New(nil, s)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

// build runs the layer pipeline on data in a single-panel context
// through ComputeGeom2.
func build(t *testing.T, l *Layer, data frame.Frame, plotMapping aes.Mapping) (frame.Frame, *panel.Context) {
	t.Helper()
	ctx := panel.New(panel.Facet{}, nil)
	data = ctx.Setup([]frame.Frame{data})[0]
	stages := []func(frame.Frame) (frame.Frame, error){
		func(f frame.Frame) (frame.Frame, error) { return l.ComputeAesthetics(f, plotMapping, ctx) },
		func(f frame.Frame) (frame.Frame, error) {
			ctx.TrainPosition([]frame.Frame{f})
			return ctx.MapPosition(f), nil
		},
		func(f frame.Frame) (frame.Frame, error) { return l.ComputeStatistic(f, ctx) },
		func(f frame.Frame) (frame.Frame, error) { return l.MapStatistic(f, plotMapping, ctx) },
		l.ComputeGeom1,
		func(f frame.Frame) (frame.Frame, error) { return l.ComputePosition(f, ctx) },
		func(f frame.Frame) (frame.Frame, error) { return l.ComputeGeom2(f), nil },
	}
	for _, stage := range stages {
		var err error
		if data, err = stage(data); err != nil {
			t.Fatal(err)
		}
	}
	return data, ctx
}

func TestEndToEndUngrouped(t *testing.T) {
	l := newLayer(t, Spec{Mapping: aes.New("x", "x", "y", "y")})
	data := frame.Make("x", []float64{1, 2}, "y", []float64{2, 4})
	got, _ := build(t, l, data, nil)

	if got.Len() != 2 {
		t.Fatalf("want 2 rows, got %d", got.Len())
	}
	for _, col := range []string{"x", "y", frame.Panel, frame.Group} {
		if !got.Has(col) {
			t.Errorf("missing column %s in %v", col, got.Columns())
		}
	}
	if diff := cmp.Diff([]int{frame.NoGroup, frame.NoGroup}, got.Ints(frame.Group)); diff != "" {
		t.Errorf("GROUP (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1}, got.Ints(frame.Panel)); diff != "" {
		t.Errorf("PANEL (-want +got):\n%s", diff)
	}
	// ComputeGeom2 fills the geom's defaults.
	if diff := cmp.Diff([]string{"black", "black"}, got.Column("colour")); diff != "" {
		t.Errorf("colour (-want +got):\n%s", diff)
	}
}

func TestEndToEndGrouped(t *testing.T) {
	l := newLayer(t, Spec{Mapping: aes.New("x", "x", "y", "y", "colour", "category")})
	data := frame.Make("x", []float64{1, 2}, "y", []float64{2, 4}, "category", []string{"a", "b"})
	ctx := panel.New(panel.Facet{}, nil)
	data = ctx.Setup([]frame.Frame{data})[0]
	got, err := l.ComputeAesthetics(data, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	g := got.Ints(frame.Group)
	if g[0] == g[1] || g[0] < 1 || g[1] < 1 {
		t.Errorf("want distinct positive groups per category, got %v", g)
	}
}

func TestEmptyData(t *testing.T) {
	l := newLayer(t, Spec{Mapping: aes.New("x", "x", "y", "y")})
	ctx := panel.New(panel.Facet{Wrap: "f"}, nil)
	ctx.Setup([]frame.Frame{frame.Make("f", []string{"a", "b"})})
	data := frame.Make("x", []float64{}, "y", []float64{})

	f, err := l.ComputeAesthetics(data, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	check := func(stage string, f frame.Frame, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", stage, err)
		}
		if !f.Empty() {
			t.Errorf("%s: want empty frame, got %d rows", stage, f.Len())
		}
	}
	check("ComputeAesthetics", f, nil)
	f, err = l.ComputeStatistic(f, ctx)
	check("ComputeStatistic", f, err)
	f, err = l.MapStatistic(f, nil, ctx)
	check("MapStatistic", f, err)
	f, err = l.ComputeGeom1(f)
	check("ComputeGeom1", f, err)
	f, err = l.ComputePosition(f, ctx)
	check("ComputePosition", f, err)
	f = l.ComputeGeom2(f)
	check("ComputeGeom2", f, nil)

	marks, err := l.DrawGeom(f, ctx, coord.Cartesian{})
	if err != nil {
		t.Fatal(err)
	}
	if len(marks) != 2 {
		t.Fatalf("want one mark per panel, got %d", len(marks))
	}
	for i, m := range marks {
		if _, ok := m.(mark.Null); !ok {
			t.Errorf("mark %d is %T, want mark.Null", i, m)
		}
	}
}

func TestComputedLayerLength(t *testing.T) {
	// With no data rows, the row count comes from the aesthetics.
	l := newLayer(t, Spec{Mapping: aes.New("x", aes.Func("1:3", func(frame.Frame, aes.Env) (table.Slice, error) {
		return []float64{1, 2, 3}, nil
	}), "y", aes.Const(1.0))})
	ctx := panel.New(panel.Facet{}, nil)
	got, err := l.ComputeAesthetics(frame.Frame{}, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, 1, 1}, got.Float64s("y")); diff != "" {
		t.Errorf("broadcast y (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1, 1}, got.Ints(frame.Panel)); diff != "" {
		t.Errorf("PANEL (-want +got):\n%s", diff)
	}
}

func TestAestheticLength(t *testing.T) {
	l := newLayer(t, Spec{Mapping: aes.New("x", "x", "y", aes.Func("bad", func(frame.Frame, aes.Env) (table.Slice, error) {
		return []float64{1, 2}, nil
	}))})
	ctx := panel.New(panel.Facet{}, nil)
	_, err := l.ComputeAesthetics(frame.Make("x", []float64{1, 2, 3}), nil, ctx)
	var lerr *AestheticLengthError
	if !errors.As(err, &lerr) {
		t.Fatalf("want AestheticLengthError, got %v", err)
	}
	if lerr.Aes != "y" || lerr.Len != 2 || lerr.Want != 3 {
		t.Errorf("got %+v", lerr)
	}
}

func TestInheritAes(t *testing.T) {
	data := frame.Make("a", []float64{1}, "b", []float64{2}, "c", []float64{3})
	plotMapping := aes.New("x", "a", "y", "b")
	ctx := panel.New(panel.Facet{}, nil)

	l := newLayer(t, Spec{Mapping: aes.New("y", "c")})
	got, err := l.ComputeAesthetics(data, plotMapping, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Float64s("x")[0] != 1 || got.Float64s("y")[0] != 3 {
		t.Errorf("layer mapping should override plot mapping: %v", got)
	}

	l = newLayer(t, Spec{Mapping: aes.New("y", "c"), NoInheritAes: true})
	got, err = l.ComputeAesthetics(data, plotMapping, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Has("x") {
		t.Errorf("non-inheriting layer has x: %v", got.Columns())
	}
}

func TestAesParamsAndCalculated(t *testing.T) {
	data := frame.Make("a", []float64{1, 2}, "g", []string{"p", "q"})
	l := newLayer(t, Spec{
		Mapping: aes.New("x", "a", "y", "a", "colour", "g", "size", aes.Calc(aes.Col("count"))),
		Params:  Params{"color": "red", "group": 7},
	})
	if diff := cmp.Diff(Params{"colour": "red", "group": 7}, l.AesParams); diff != "" {
		t.Errorf("AesParams (-want +got):\n%s", diff)
	}
	ctx := panel.New(panel.Facet{}, nil)
	got, err := l.ComputeAesthetics(data, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Has("colour") || got.Has("size") {
		t.Errorf("fixed or calculated aesthetics were evaluated: %v", got.Columns())
	}
	// The group parameter forces a single group.
	if diff := cmp.Diff([]int{7, 7}, got.Ints("group")); diff != "" {
		t.Errorf("group (-want +got):\n%s", diff)
	}
	if g := got.Ints(frame.Group); g[0] != g[1] {
		t.Errorf("want one group, got %v", g)
	}
}

func TestSubset(t *testing.T) {
	data := frame.Make("a", []float64{1, 2, 3})
	l := newLayer(t, Spec{
		Mapping: aes.New("x", "a", "y", "a"),
		Subset: aes.Func("a > 1", func(d frame.Frame, env aes.Env) (table.Slice, error) {
			var keep []bool
			for _, v := range d.Float64s("a") {
				keep = append(keep, v > 1)
			}
			return keep, nil
		}),
	})
	ctx := panel.New(panel.Facet{}, nil)
	got, err := l.ComputeAesthetics(ctx.Setup([]frame.Frame{data})[0], nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{2, 3}, got.Float64s("x")); diff != "" {
		t.Errorf("x (-want +got):\n%s", diff)
	}
}

func TestAddGroup(t *testing.T) {
	f := frame.Make(
		frame.Panel, []int{1, 1, 2, 1},
		"colour", []string{"b", "a", "a", ""},
		"x", []float64{1, 2, 3, 4},
	)
	g1 := AddGroup(f)
	if diff := cmp.Diff([]int{2, 1, 4, 3}, g1.Ints(frame.Group)); diff != "" {
		t.Errorf("GROUP (-want +got):\n%s", diff)
	}
	g2 := AddGroup(g1)
	if diff := cmp.Diff(g1.Ints(frame.Group), g2.Ints(frame.Group)); diff != "" {
		t.Errorf("AddGroup not stable (-first +second):\n%s", diff)
	}

	// Row order does not affect group identity.
	rev := AddGroup(f.Select([]int{3, 2, 1, 0}))
	if diff := cmp.Diff([]int{3, 4, 1, 2}, rev.Ints(frame.Group)); diff != "" {
		t.Errorf("reversed GROUP (-want +got):\n%s", diff)
	}

	// Numeric aesthetics and labels do not group.
	f = frame.Make(
		frame.Panel, []int{1, 1},
		"x", []float64{1, 2},
		"label", []string{"a", "b"},
	)
	if diff := cmp.Diff([]int{-1, -1}, AddGroup(f).Ints(frame.Group)); diff != "" {
		t.Errorf("ungrouped GROUP (-want +got):\n%s", diff)
	}

	// An explicit numeric group does.
	f = f.With("group", []int{5, 3})
	if diff := cmp.Diff([]int{2, 1}, AddGroup(f).Ints(frame.Group)); diff != "" {
		t.Errorf("explicit GROUP (-want +got):\n%s", diff)
	}
}

func TestStatRoundTrip(t *testing.T) {
	l := newLayer(t, Spec{Mapping: aes.New("x", "x", "y", "y", "colour", "c")})
	ctx := panel.New(panel.Facet{}, nil)
	data := ctx.Setup([]frame.Frame{frame.Make(
		"x", []float64{1, 2, 3},
		"y", []float64{3, 2, 1},
		"c", []string{"a", "b", "a"},
	)})[0]
	in, err := l.ComputeAesthetics(data, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	out, err := l.ComputeStatistic(in, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if in.Len() != out.Len() {
		t.Errorf("identity stat changed %d rows to %d", in.Len(), out.Len())
	}
	if !sameColumns(in, out) {
		t.Errorf("identity stat changed columns %v to %v", in.Columns(), out.Columns())
	}
}

func TestStatEmptyGroupWarns(t *testing.T) {
	dropB := testStat{
		info: StatInfo{Name: "dropb", Required: []string{"x"}},
		fn: func(d frame.Frame) frame.Frame {
			if d.Value("colour", 0) == "b" {
				return frame.Frame{}
			}
			return frame.Make("x", []float64{0})
		},
	}
	l := newLayer(t, Spec{Stat: dropB, Mapping: aes.New("x", "x", "y", "x", "colour", "c")})
	ctx := panel.New(panel.Facet{}, nil)
	data := ctx.Setup([]frame.Frame{frame.Make("x", []float64{1, 2, 3}, "c", []string{"a", "b", "a"})})[0]
	in, err := l.ComputeAesthetics(data, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	out, err := l.ComputeStatistic(in, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 1 {
		t.Fatalf("want 1 row, got %v", out)
	}
	// Constant input columns are carried over; PANEL and GROUP are
	// re-stamped.
	if out.Value("colour", 0) != "a" || out.Value(frame.Panel, 0) != 1 || out.Value(frame.Group, 0) != 1 {
		t.Errorf("result lacks carried columns: %v", out)
	}
	if n := len(ctx.Warnings()); n != 1 {
		t.Errorf("want 1 warning, got %v", ctx.Warnings())
	}
}

func TestStatVaryingColumnIsNA(t *testing.T) {
	xy := testStat{
		info: StatInfo{Name: "xy", Required: []string{"x", "y"}},
		fn: func(d frame.Frame) frame.Frame {
			return frame.Make("x", d.Column("x"), "y", d.Column("y"))
		},
	}
	l := newLayer(t, Spec{Stat: xy, Mapping: aes.New("x", "x", "y", "x", "size", "s", "colour", "c")})
	ctx := panel.New(panel.Facet{}, nil)
	data := ctx.Setup([]frame.Frame{frame.Make(
		"x", []float64{1, 2, 3, 4},
		"s", []int{5, 7, 9, 9},
		"c", []string{"a", "a", "b", "b"},
	)})[0]
	in, err := l.ComputeAesthetics(data, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	out, err := l.ComputeStatistic(in, ctx)
	if err != nil {
		t.Fatal(err)
	}
	// size varies within group a, so it is not carried there and
	// must come out missing rather than zero.
	size := out.Float64s("size")
	if len(size) != 4 || !math.IsNaN(size[0]) || !math.IsNaN(size[1]) || size[2] != 9 || size[3] != 9 {
		t.Errorf("size = %v (%T), want [NaN NaN 9 9]", size, out.Column("size"))
	}
}

func TestStatMissingAes(t *testing.T) {
	st := testStat{info: StatInfo{Name: "needy", Required: []string{"x", "weight|y"}}}
	l := newLayer(t, Spec{Stat: st, Mapping: aes.New("y", "y")})
	ctx := panel.New(panel.Facet{}, nil)
	in, err := l.ComputeAesthetics(ctx.Setup([]frame.Frame{frame.Make("y", []float64{1})})[0], nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	_, err = l.ComputeStatistic(in, ctx)
	var merr *MissingAesError
	if !errors.As(err, &merr) {
		t.Fatalf("want MissingAesError, got %v", err)
	}
	if merr.Kind != "stat" || merr.Name != "needy" || !cmp.Equal(merr.Missing, []string{"x"}) {
		t.Errorf("got %+v", merr)
	}
}

func TestGeomMissingAes(t *testing.T) {
	// Construction succeeds; the build fails.
	l, err := New(nil, Spec{Geom: pointGeom{}, Stat: identityStat, Position: identityPos{}, Mapping: aes.New("x", "x")})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	ctx := panel.New(panel.Facet{}, nil)
	in, err := l.ComputeAesthetics(ctx.Setup([]frame.Frame{frame.Make("x", []float64{1})})[0], nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	_, err = l.ComputeGeom1(in)
	var merr *MissingAesError
	if !errors.As(err, &merr) {
		t.Fatalf("want MissingAesError, got %v", err)
	}
	if merr.Kind != "geom" || merr.Name != "point" || !cmp.Equal(merr.Missing, []string{"y"}) {
		t.Errorf("got %+v", merr)
	}

	// A fixed parameter satisfies the requirement.
	l = newLayer(t, Spec{Mapping: aes.New("x", "x"), Params: Params{"y": 1.0}})
	if _, err := l.ComputeGeom1(in); err != nil {
		t.Errorf("y fixed by parameter: %v", err)
	}
}

func TestMapStatistic(t *testing.T) {
	st := testStat{info: StatInfo{
		Name:     "count",
		Defaults: aes.New("y", aes.Calc(aes.Col("count")), "weight", aes.Calc(aes.Col("count"))),
	}}
	l := newLayer(t, Spec{Stat: st, Mapping: aes.New("x", "x", "colour", aes.Calc(aes.Col("prop")))})
	ctx := panel.New(panel.Facet{}, nil)
	data := frame.Make("x", []float64{1, 2}, "count", []int{3, 4}, "prop", []float64{0.25, 0.75}, frame.Panel, []int{1, 1})

	got, err := l.MapStatistic(data, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{3, 4}, got.Column("y")); diff != "" {
		t.Errorf("y (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.25, 0.75}, got.Column("colour")); diff != "" {
		t.Errorf("colour (-want +got):\n%s", diff)
	}
	if !ctx.HasScale("colour") || !ctx.HasScale("y") {
		t.Errorf("calculated aesthetics have no scales: %v", ctx.ScaleNames())
	}

	// Calculated expressions don't see the plot environment.
	l = newLayer(t, Spec{Stat: identityStat, Mapping: aes.New("y", aes.Calc(aes.Col("nope")))})
	ctx = panel.New(panel.Facet{}, aes.MapEnv{"nope": 1.0})
	if _, err := l.MapStatistic(data, nil, ctx); err == nil {
		t.Error("calculated aesthetic resolved against the environment")
	}
}

func TestPositionIdempotent(t *testing.T) {
	l := newLayer(t, Spec{Mapping: aes.New("x", "x", "y", "y")})
	ctx := panel.New(panel.Facet{Wrap: "f"}, nil)
	data := ctx.Setup([]frame.Frame{frame.Make(
		"x", []float64{1, 2, 3},
		"y", []float64{3, 2, 1},
		"f", []string{"b", "a", "b"},
	)})[0]
	in, err := l.ComputeAesthetics(data, nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	once, err := l.ComputePosition(in, ctx)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := l.ComputePosition(once, ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, col := range once.Columns() {
		if diff := cmp.Diff(once.Column(col), twice.Column(col)); diff != "" {
			t.Errorf("column %s (-once +twice):\n%s", col, diff)
		}
	}
	// Rows keep their order across panels.
	if diff := cmp.Diff(in.Column("x"), once.Column("x")); diff != "" {
		t.Errorf("x (-in +out):\n%s", diff)
	}
}

type dropColumnPos struct{}

func (dropColumnPos) Name() string { return "drop" }

func (dropColumnPos) ComputePanel(data frame.Frame, params Params, r panel.Ranges) (frame.Frame, error) {
	return data.Without("y"), nil
}

func TestPositionPreservesColumns(t *testing.T) {
	l := newLayer(t, Spec{Position: dropColumnPos{}, Mapping: aes.New("x", "x", "y", "x")})
	ctx := panel.New(panel.Facet{}, nil)
	in, err := l.ComputeAesthetics(ctx.Setup([]frame.Frame{frame.Make("x", []float64{1})})[0], nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.ComputePosition(in, ctx); err == nil {
		t.Error("position that drops a column succeeded")
	}
}

func TestDrawGeom(t *testing.T) {
	data := frame.Make("x", []float64{0, 10, 0, 10}, "y", []float64{0, 10, 10, 0}, "g", []string{"a", "a", "b", "b"})

	l := newLayer(t, Spec{Geom: pathGeom{}, Mapping: aes.New("x", "x", "y", "y", "group", "g")})
	got, ctx := build(t, l, data, nil)
	marks, err := l.DrawGeom(got, ctx, coord.Cartesian{})
	if err != nil {
		t.Fatal(err)
	}
	if len(marks) != 1 {
		t.Fatalf("want 1 panel mark, got %d", len(marks))
	}
	grp, ok := marks[0].(*mark.Group)
	if !ok || len(grp.Children) != 2 {
		t.Fatalf("want a group of 2 paths, got %#v", marks[0])
	}
	for _, c := range grp.Children {
		p := c.(*mark.Path)
		for _, x := range append(p.X, p.Y...) {
			if x < 0 || x > 1 {
				t.Errorf("untransformed coordinate %v", x)
			}
		}
	}

	l = newLayer(t, Spec{Mapping: aes.New("x", "x", "y", "y")})
	got, ctx = build(t, l, data, nil)
	marks, err = l.DrawGeom(got, ctx, coord.Cartesian{})
	if err != nil {
		t.Fatal(err)
	}
	if pts, ok := marks[0].(*mark.Points); !ok || len(pts.X) != 4 {
		t.Errorf("want 4 points in one mark, got %#v", marks[0])
	}
}

type paramGeom struct{ pointGeom }

func (paramGeom) Info() GeomInfo {
	return GeomInfo{
		Name:     "param",
		Required: []string{"x", "y"},
		Optional: []string{"colour"},
		Params:   []string{"size"},
	}
}

func TestParamBucketing(t *testing.T) {
	st := testStat{info: StatInfo{Name: "n", Params: []string{"n"}}}
	spec := Spec{Geom: paramGeom{}, Stat: st, Position: identityPos{},
		Params: Params{"size": 2, "n": 10, "colour": "red", "bogus": 1}}
	_, err := New(nil, spec)
	var perr *UnknownParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("want UnknownParameterError, got %v", err)
	}
	if diff := cmp.Diff([]string{"bogus"}, perr.Keys); diff != "" {
		t.Errorf("unknown keys (-want +got):\n%s", diff)
	}

	delete(spec.Params, "bogus")
	l, err := New(nil, spec)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name      string
		got, want Params
	}{
		{"aes", l.AesParams, Params{"colour": "red"}},
		{"geom", l.GeomParams, Params{"size": 2}},
		{"stat", l.StatParams, Params{"n": 10}},
	} {
		if diff := cmp.Diff(test.want, test.got); diff != "" {
			t.Errorf("%s params (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestConstructionErrors(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterStat(identityStat)
	reg.RegisterPosition(identityPos{})
	if err := reg.RegisterGeom(pointGeom{}); err != nil {
		t.Fatal(err)
	}

	var mc *MissingComponentError
	if _, err := New(reg, Spec{Geom: "point", Stat: "identity"}); !errors.As(err, &mc) || mc.Component != "position" {
		t.Errorf("missing position: got %v", err)
	}
	var ue *UnknownExtensionError
	if _, err := New(reg, Spec{Geom: "point", Stat: "nope", Position: "identity"}); !errors.As(err, &ue) || ue.Kind != "stat" || ue.Name != "nope" {
		t.Errorf("unknown stat: got %v", err)
	}
	var de *GeomDrawerError
	if _, err := New(reg, Spec{Geom: bothGeom{}, Stat: "identity", Position: "identity"}); !errors.As(err, &de) || !de.Both {
		t.Errorf("geom with both drawers: got %v", err)
	}
	if err := reg.RegisterGeom(neitherGeom{}); !errors.As(err, &de) || de.Both {
		t.Errorf("geom with no drawer: got %v", err)
	}
	if _, err := New(reg, Spec{Geom: "point", Stat: "identity", Position: "identity"}); err != nil {
		t.Errorf("by name: %v", err)
	}
	if diff := cmp.Diff([]string{"point"}, reg.Names("geom")); diff != "" {
		t.Errorf("geoms (-want +got):\n%s", diff)
	}
}

func TestShowLegend(t *testing.T) {
	for _, test := range []struct {
		in    interface{}
		want  Legend
		warns bool
	}{
		{nil, LegendAuto, false},
		{true, LegendShow, false},
		{false, LegendHide, false},
		{"auto", LegendAuto, false},
		{LegendShow, LegendShow, false},
		{"sometimes", LegendHide, true},
		{42, LegendHide, true},
	} {
		l := newLayer(t, Spec{ShowLegend: test.in})
		if l.ShowLegend != test.want {
			t.Errorf("ShowLegend %#v: got %v, want %v", test.in, l.ShowLegend, test.want)
		}
		if got := len(l.Warnings()) > 0; got != test.warns {
			t.Errorf("ShowLegend %#v: warned = %v, want %v", test.in, got, test.warns)
		}
	}
}

func TestDrawKey(t *testing.T) {
	key := frame.Make("colour", []string{"red"})
	l := newLayer(t, Spec{Mapping: aes.New("colour", "c")})
	if _, ok := l.DrawKey(key, nil); !ok {
		t.Error("layer mapping colour has no colour key")
	}
	l = newLayer(t, Spec{Mapping: aes.New("x", "x")})
	if _, ok := l.DrawKey(key, nil); ok {
		t.Error("layer not mapping colour has a colour key")
	}
	if _, ok := l.DrawKey(key, aes.New("colour", "c")); !ok {
		t.Error("layer inheriting colour has no colour key")
	}
	l = newLayer(t, Spec{Mapping: aes.New("colour", "c"), ShowLegend: false})
	if _, ok := l.DrawKey(key, nil); ok {
		t.Error("hidden layer has a key")
	}
}
