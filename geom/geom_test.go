// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/mark"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestRegister(t *testing.T) {
	reg := layer.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatal(err)
	}
	want := []string{"area", "bar", "blank", "col", "line", "path", "point", "rect", "segment", "step", "text", "tile"}
	if diff := cmp.Diff(want, reg.Names("geom")); diff != "" {
		t.Errorf("registered geoms (-want +got):\n%s", diff)
	}
}

func TestPoint(t *testing.T) {
	data := frame.Make(
		"x", []float64{0.1, math.NaN(), 0.3},
		"y", []float64{0.2, 0.5, 0.4},
		"colour", []string{"red", "green", "#0000ff"},
		"size", []float64{1, 2, 3},
	)
	m, err := Point{}.DrawPanel(data, layer.DrawContext{})
	if err != nil {
		t.Fatal(err)
	}
	p, ok := m.(*mark.Points)
	if !ok {
		t.Fatalf("got %T, want *mark.Points", m)
	}
	if diff := cmp.Diff([]float64{0.1, 0.3}, p.X); diff != "" {
		t.Errorf("X (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 3}, p.Size); diff != "" {
		t.Errorf("Size (-want +got):\n%s", diff)
	}
	if len(p.Colour) != 2 {
		t.Fatalf("got %d colours, want 2", len(p.Colour))
	}
	if hex, _ := mark.Hex(p.Colour[1]); hex != "#0000ff" {
		t.Errorf("second colour = %s, want #0000ff", hex)
	}
	if p.Fill != nil {
		t.Errorf("Fill = %v, want nil", p.Fill)
	}
}

func TestPointEmpty(t *testing.T) {
	data := frame.Make("x", []float64{math.NaN()}, "y", []float64{1})
	m, err := Point{}.DrawPanel(data, layer.DrawContext{})
	if err != nil || m != nil {
		t.Errorf("got %v, %v; want nil, nil", m, err)
	}
}

func TestPathColour(t *testing.T) {
	data := frame.Make(
		"x", []float64{0, 0.5, 1},
		"y", []float64{0, 1, 0},
		"colour", []string{"red", "red", "red"},
		"linewidth", []float64{2, 2, 2},
	)
	m, _ := Path{}.DrawGroup(data, layer.DrawContext{})
	p, ok := m.(*mark.Path)
	if !ok {
		t.Fatalf("constant colour: got %T, want *mark.Path", m)
	}
	if p.Width != 2 || len(p.X) != 3 {
		t.Errorf("got width %v and %d points, want 2 and 3", p.Width, len(p.X))
	}

	data = data.With("colour", []string{"red", "blue", "green"})
	m, _ = Path{}.DrawGroup(data, layer.DrawContext{})
	s, ok := m.(*mark.Segments)
	if !ok {
		t.Fatalf("varying colour: got %T, want *mark.Segments", m)
	}
	if diff := cmp.Diff([]float64{0.5, 1}, s.X1); diff != "" {
		t.Errorf("X1 (-want +got):\n%s", diff)
	}
	if len(s.Colour) != 2 {
		t.Errorf("got %d colours, want 2", len(s.Colour))
	}

	m, _ = Path{}.DrawGroup(data.Select([]int{0}), layer.DrawContext{})
	if m != nil {
		t.Errorf("single point: got %v, want nil", m)
	}
}

func TestLineSorts(t *testing.T) {
	data := frame.Make(
		frame.Panel, []int{1, 1, 1, 1},
		frame.Group, []int{2, 1, 2, 1},
		"x", []float64{3, 2, 1, 1},
		"y", []float64{10, 20, 30, 40},
	)
	got, err := Line{}.SetupData(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{40, 20, 30, 10}, got.Float64s("y")); diff != "" {
		t.Errorf("y (-want +got):\n%s", diff)
	}
}

func TestStairs(t *testing.T) {
	xs, ys := []float64{0, 1, 2}, []float64{0, 1, 0}
	for _, test := range []struct {
		dir    string
		wx, wy []float64
	}{
		{"hv", []float64{0, 1, 1, 2, 2}, []float64{0, 0, 1, 1, 0}},
		{"vh", []float64{0, 0, 1, 1, 2}, []float64{0, 1, 1, 0, 0}},
		{"mid", []float64{0, 0.5, 0.5, 1, 1.5, 1.5, 2}, []float64{0, 0, 1, 1, 1, 0, 0}},
	} {
		sx, sy := stairs(xs, ys, test.dir)
		if diff := cmp.Diff(test.wx, sx); diff != "" {
			t.Errorf("%s: x (-want +got):\n%s", test.dir, diff)
		}
		if diff := cmp.Diff(test.wy, sy); diff != "" {
			t.Errorf("%s: y (-want +got):\n%s", test.dir, diff)
		}
	}
	if _, err := (Step{}).SetupData(frame.Make("x", []float64{1}), layer.Params{"direction": "up"}); err == nil {
		t.Errorf("unknown direction: want error")
	}
}

func TestBarSetup(t *testing.T) {
	data := frame.Make("x", []float64{1, 2, 3}, "y", []float64{2, -1, 0})
	got, err := Bar{}.SetupData(data, layer.Params{})
	if err != nil {
		t.Fatal(err)
	}
	for col, want := range map[string][]float64{
		"width": {0.9, 0.9, 0.9},
		"xmin":  {0.55, 1.55, 2.55},
		"xmax":  {1.45, 2.45, 3.45},
		"ymin":  {0, -1, 0},
		"ymax":  {2, 0, 0},
	} {
		if diff := cmp.Diff(want, got.Float64s(col), approx); diff != "" {
			t.Errorf("%s (-want +got):\n%s", col, diff)
		}
	}

	got, _ = Col{}.SetupData(data, layer.Params{"width": 0.5})
	if diff := cmp.Diff([]float64{0.75, 1.75, 2.75}, got.Float64s("xmin"), approx); diff != "" {
		t.Errorf("width param: xmin (-want +got):\n%s", diff)
	}
}

func TestTile(t *testing.T) {
	data := frame.Make("x", []float64{0, 2}, "y", []float64{1, 1})
	got, err := Tile{}.SetupData(data, layer.Params{"height": 4})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{-1, 1}, got.Float64s("xmin"), approx); diff != "" {
		t.Errorf("xmin (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{3, 3}, got.Float64s("ymax"), approx); diff != "" {
		t.Errorf("ymax (-want +got):\n%s", diff)
	}
	m, _ := Tile{}.DrawPanel(got.WithConst("fill", "grey35"), layer.DrawContext{})
	if r, ok := m.(*mark.Rects); !ok || len(r.XMin) != 2 {
		t.Errorf("got %#v, want two rects", m)
	}
}

func TestArea(t *testing.T) {
	data := frame.Make("x", []float64{1, 0}, "y", []float64{2, 1})
	data, err := Area{}.SetupData(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Area{}.DrawGroup(data.WithConst("fill", "red"), layer.DrawContext{Coord: coord.Cartesian{}})
	if err != nil {
		t.Fatal(err)
	}
	p := m.(*mark.Path)
	if diff := cmp.Diff([]float64{0, 1, 1, 0}, p.X); diff != "" {
		t.Errorf("X (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 0, 0}, p.Y); diff != "" {
		t.Errorf("Y (-want +got):\n%s", diff)
	}
	if p.Fill == nil {
		t.Errorf("area has no fill")
	}

	// Under a flipped coordinate system the area runs along y.
	flipped := coord.FlipColumns(data.WithConst("fill", "red"))
	m, _ = Area{}.DrawGroup(flipped, layer.DrawContext{Coord: coord.Flip{}})
	if diff := cmp.Diff([]float64{0, 1, 1, 0}, m.(*mark.Path).Y); diff != "" {
		t.Errorf("flipped Y (-want +got):\n%s", diff)
	}
}

func TestResolution(t *testing.T) {
	for _, test := range []struct {
		xs   []float64
		want float64
	}{
		{nil, 1},
		{[]float64{5}, 1},
		{[]float64{5, 5}, 1},
		{[]float64{0.5, 0.1, 0.3}, 0.2},
	} {
		if got := resolution(test.xs); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("resolution(%v) = %v, want %v", test.xs, got, test.want)
		}
	}
}

func TestDrawKeys(t *testing.T) {
	reg := layer.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatal(err)
	}
	for _, name := range reg.Names("geom") {
		g, _ := reg.Geom(name)
		kd, ok := g.(layer.KeyDrawer)
		if !ok {
			continue
		}
		key := frame.Make("colour", []string{"red"})
		for _, d := range g.Info().Defaults {
			if !key.Has(d.Aes) {
				key = key.WithConst(d.Aes, d.Value)
			}
		}
		if m := kd.DrawKey(key, nil); mark.IsNull(m) {
			t.Errorf("%s: key is empty", name)
		}
	}
}
