// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"image/color"
	"io/ioutil"
	"math"
	"testing"

	"github.com/aclements/ggbuild/frame"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func init() {
	Warning.SetOutput(ioutil.Discard)
}

func TestSetupUnfaceted(t *testing.T) {
	c := New(Facet{}, nil)
	out := c.Setup([]frame.Frame{
		frame.Make("x", []float64{1, 2, 3}),
		{},
	})
	if got := c.NumPanels(); got != 1 {
		t.Fatalf("want 1 panel, got %d", got)
	}
	if diff := cmp.Diff([]int{1, 1, 1}, out[0].Ints(frame.Panel)); diff != "" {
		t.Errorf("PANEL column (-want +got):\n%s", diff)
	}
	if len(out[1].Columns()) != 0 {
		t.Errorf("empty frame gained columns %v", out[1].Columns())
	}
}

func TestSetupWrap(t *testing.T) {
	c := New(Facet{Wrap: "g"}, nil)
	out := c.Setup([]frame.Frame{
		frame.Make("x", []float64{1, 2, 3, 4}, "g", []string{"b", "a", "c", "a"}),
		frame.Make("x", []float64{10, 20}),
	})
	if got := c.NumPanels(); got != 3 {
		t.Fatalf("want 3 panels, got %d", got)
	}
	if rows, cols := c.Grid(); rows != 2 || cols != 2 {
		t.Errorf("want 2x2 grid, got %dx%d", rows, cols)
	}
	var labels []string
	for _, p := range c.Panels() {
		labels = append(labels, p.Label())
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, labels); diff != "" {
		t.Errorf("panel labels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 1, 3, 1}, out[0].Ints(frame.Panel)); diff != "" {
		t.Errorf("layer 0 PANEL (-want +got):\n%s", diff)
	}
	// The layer without the facet column repeats in every panel.
	if diff := cmp.Diff([]int{1, 1, 2, 2, 3, 3}, out[1].Ints(frame.Panel)); diff != "" {
		t.Errorf("layer 1 PANEL (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10, 20, 10, 20, 10, 20}, out[1].Float64s("x")); diff != "" {
		t.Errorf("layer 1 x (-want +got):\n%s", diff)
	}
	if n := c.PanelTable().Len(); n != 3 {
		t.Errorf("panel table has %d rows, want 3", n)
	}
}

func TestAddDefaultScale(t *testing.T) {
	c := New(Facet{}, nil)
	c.AddDefaultScale("x", []float64{1})
	c.AddDefaultScale("xmin", []string{"a"})
	c.AddDefaultScale("colour", []string{"a"})
	c.AddDefaultScale("group", []int{1})
	c.AddDefaultScale("label", []string{"a"})

	if diff := cmp.Diff([]string{"colour", "x"}, c.ScaleNames()); diff != "" {
		t.Errorf("scales (-want +got):\n%s", diff)
	}
	if k := c.Scale("xend").Kind; k != Continuous {
		t.Errorf("xend scale is %v, want continuous", k)
	}
	if got := len(c.Warnings()); got != 1 {
		t.Errorf("want 1 conflict warning, got %v", c.Warnings())
	}
}

func TestSetScaleTrans(t *testing.T) {
	c := New(Facet{}, nil)
	if err := c.SetScale("y", ScaleSpec{Trans: "bogus"}); err == nil {
		t.Fatal("want error for unknown transformation")
	}
	if err := c.SetScale("y", ScaleSpec{Trans: "log10"}); err != nil {
		t.Fatal(err)
	}
	f := c.Transform(frame.Make("y", []float64{1, 100, 0}, "ymax", []int{10, 10, 10}, "x", []float64{5, 5, 5}))
	if diff := cmp.Diff([]float64{0, 2, math.Inf(-1)}, f.Float64s("y"), approx); diff != "" {
		t.Errorf("y (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 1, 1}, f.Float64s("ymax"), approx); diff != "" {
		t.Errorf("ymax (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{5, 5, 5}, f.Float64s("x")); diff != "" {
		t.Errorf("x changed (-want +got):\n%s", diff)
	}
	if got := len(c.Warnings()); got != 1 {
		t.Errorf("want 1 non-finite warning, got %v", c.Warnings())
	}
}

func TestTrainPosition(t *testing.T) {
	c := New(Facet{}, nil)
	c.AddDefaultScale("x", []string{})
	c.AddDefaultScale("y", []float64{})
	f := frame.Make(
		frame.Panel, []int{1, 1, 1},
		"x", []string{"b", "a", "b"},
		"y", []float64{0, 10, math.NaN()},
	)
	c.TrainPosition([]frame.Frame{f})
	m := c.MapPosition(f)
	if diff := cmp.Diff([]float64{2, 1, 2}, m.Float64s("x")); diff != "" {
		t.Errorf("mapped x (-want +got):\n%s", diff)
	}

	r := c.Ranges(1)
	if !cmp.Equal([]float64{0.4, 2.6}, []float64{r.X.Min, r.X.Max}, approx) {
		t.Errorf("x range = [%v, %v], want [0.4, 2.6]", r.X.Min, r.X.Max)
	}
	if r.Y.Min != -0.5 || r.Y.Max != 10.5 {
		t.Errorf("y range = [%v, %v], want [-0.5, 10.5]", r.Y.Min, r.Y.Max)
	}
	if diff := cmp.Diff([]interface{}{"a", "b"}, r.XLevels); diff != "" {
		t.Errorf("x levels (-want +got):\n%s", diff)
	}

	c.ResetPosition()
	c.TrainPosition([]frame.Frame{frame.Make(frame.Panel, []int{1}, "y", []float64{3})})
	if r := c.Ranges(1); r.Y.Min != 2.5 || r.Y.Max != 3.5 {
		t.Errorf("retrained y range = [%v, %v], want [2.5, 3.5]", r.Y.Min, r.Y.Max)
	}
}

func TestFreeScales(t *testing.T) {
	c := New(Facet{Wrap: "g", FreeY: true}, nil)
	data := c.Setup([]frame.Frame{
		frame.Make("x", []float64{0, 1, 0, 1}, "y", []float64{0, 10, 100, 200}, "g", []string{"a", "a", "b", "b"}),
	})
	c.TrainPosition(data)
	r1, r2 := c.Ranges(1), c.Ranges(2)
	if r1.Y.Max >= r2.Y.Min {
		t.Errorf("free y ranges overlap: %v and %v", r1.Y, r2.Y)
	}
	if r1.X != r2.X {
		t.Errorf("shared x ranges differ: %v and %v", r1.X, r2.X)
	}
}

func TestMapNonPosition(t *testing.T) {
	c := New(Facet{}, nil)
	c.AddDefaultScale("colour", []string{})
	c.AddDefaultScale("size", []float64{})
	f := frame.Make(
		"colour", []string{"b", "a", ""},
		"size", []float64{0, 10, 5},
	)
	c.TrainNonPosition([]frame.Frame{f})
	m := c.MapNonPosition(f)

	cols := m.Column("colour").([]color.Color)
	if cols[0] != autoPalette[1] || cols[1] != autoPalette[0] {
		t.Errorf("colours = %v, want palette entries 1 and 0", cols[:2])
	}
	if cols[2] != (color.Gray{0x7f}) {
		t.Errorf("NA colour = %v, want grey", cols[2])
	}
	if diff := cmp.Diff([]float64{1, 6, 3.5}, m.Float64s("size"), approx); diff != "" {
		t.Errorf("size (-want +got):\n%s", diff)
	}
}

func TestBreaks(t *testing.T) {
	c := New(Facet{}, nil)
	c.AddDefaultScale("colour", []string{})
	c.AddDefaultScale("x", []float64{})
	c.TrainNonPosition([]frame.Frame{frame.Make("colour", []string{"b", "a", "b"})})

	vals, labels, mapped := c.Scale("colour").Breaks(5)
	if diff := cmp.Diff([]string{"a", "b"}, vals); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if cols := mapped.([]color.Color); cols[0] != autoPalette[0] || cols[1] != autoPalette[1] {
		t.Errorf("mapped = %v, want the first two palette entries", cols)
	}

	if vals, _, _ := c.Scale("x").Breaks(5); vals != nil {
		t.Errorf("position scale has breaks %v", vals)
	}
}
