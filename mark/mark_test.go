// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mark

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"red", color.RGBA{0xff, 0, 0, 0xff}},
		{" Black ", color.Black},
		{"#336699", color.NRGBA{0x33, 0x66, 0x99, 0xff}},
		{"#33669980", color.NRGBA{0x33, 0x66, 0x99, 0x80}},
		{"grey0", color.Gray{0}},
		{"gray100", color.Gray{0xff}},
	}
	for _, test := range tests {
		got, err := ParseColor(test.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseColor(%q) = %v, want %v", test.in, got, test.want)
		}
	}
	for _, bad := range []string{"", "#12", "#gggggg", "grey101", "nosuchcolour"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded, want error", bad)
		}
	}
}

func TestColors(t *testing.T) {
	got := Colors([]string{"red", "", "bogus"}, nil)
	if len(got) != 3 || got[1] != NA || got[2] != NA {
		t.Errorf("Colors = %v, want NA for missing and bad values", got)
	}

	got = Colors([]color.Color{color.Black}, []float64{0.5})
	if _, a := Hex(got[0]); a < 0.49 || a > 0.51 {
		t.Errorf("alpha = %v, want 0.5", a)
	}
}

func TestHex(t *testing.T) {
	hex, a := Hex(color.RGBA{0x4c, 0x72, 0xb0, 0xff})
	if hex != "#4c72b0" || a != 1 {
		t.Errorf("Hex = %s, %v; want #4c72b0, 1", hex, a)
	}
}

func TestIsNull(t *testing.T) {
	if !IsNull(&Group{Children: []Mark{Null{}, &Group{}}}) {
		t.Error("group of nulls is not null")
	}
	if IsNull(&Group{Children: []Mark{Null{}, &Points{}}}) {
		t.Error("group with points is null")
	}
}
