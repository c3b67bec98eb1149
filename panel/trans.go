// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"math"
)

// Trans is a continuous scale transformation. Data is transformed
// before statistics are computed and positions are trained, so
// statistics see transformed values.
type Trans interface {
	Name() string
	Transform(x float64) float64
	Inverse(y float64) float64
}

// LookupTrans returns the transformation called name. "" is
// equivalent to "identity".
func LookupTrans(name string) (Trans, error) {
	switch name {
	case "", "identity":
		return identityTrans{}, nil
	case "log10":
		return log10Trans{}, nil
	case "sqrt":
		return sqrtTrans{}, nil
	case "reverse":
		return reverseTrans{}, nil
	}
	return nil, fmt.Errorf("unknown scale transformation %q", name)
}

type identityTrans struct{}

func (identityTrans) Name() string                { return "identity" }
func (identityTrans) Transform(x float64) float64 { return x }
func (identityTrans) Inverse(y float64) float64   { return y }

type log10Trans struct{}

func (log10Trans) Name() string                { return "log10" }
func (log10Trans) Transform(x float64) float64 { return math.Log10(x) }
func (log10Trans) Inverse(y float64) float64   { return math.Pow(10, y) }

type sqrtTrans struct{}

func (sqrtTrans) Name() string                { return "sqrt" }
func (sqrtTrans) Transform(x float64) float64 { return math.Sqrt(x) }
func (sqrtTrans) Inverse(y float64) float64   { return y * y }

type reverseTrans struct{}

func (reverseTrans) Name() string                { return "reverse" }
func (reverseTrans) Transform(x float64) float64 { return -x }
func (reverseTrans) Inverse(y float64) float64   { return -y }
