// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package panel implements the panel and scale context shared by all
// layers of one plot build.
//
// A Context owns the facet layout (which rows of which layer belong to
// which panel), the scale registry (which aesthetics have scales, and
// of which kind), the trained position ranges of every panel, and the
// warnings raised during the build. It is the only mutable state in a
// build. Its mutation points are:
//
//   - Setup, which fixes the panel layout;
//   - AddDefaultScale, called while layers map their aesthetics;
//   - TrainPosition and ResetPosition, which accumulate position
//     ranges across layers in layer order;
//   - TrainNonPosition, which trains colour, size, and other scales;
//   - Warnf.
//
// Everything else only reads the Context. Training must happen in a
// fixed layer order since ranges depend on the union of all layers'
// data; once training is done, the read-only methods may be called
// concurrently.
package panel

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/aclements/ggbuild/aes"
)

// Warning is a logger for reporting conditions that don't prevent a
// plot from being built, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[ggbuild] ", log.Lshortfile)

// Context is the panel and scale state of one plot build.
type Context struct {
	facet  Facet
	env    aes.Env
	panels []Panel

	scales map[string]*Scale
	specs  map[string]ScaleSpec

	x, y *axis

	mu       sync.Mutex
	warnings []string
}

// New returns a Context for a plot faceted by facet. env is the
// plot-level environment used as a fallback scope when evaluating
// aesthetic expressions; it may be nil.
func New(facet Facet, env aes.Env) *Context {
	return &Context{
		facet:  facet,
		env:    env,
		panels: []Panel{{ID: 1}},
		scales: make(map[string]*Scale),
		specs:  make(map[string]ScaleSpec),
		x:      newAxis(facet.FreeX),
		y:      newAxis(facet.FreeY),
	}
}

// Env returns the plot-level evaluation environment.
func (c *Context) Env() aes.Env {
	return c.env
}

// Warnf records a warning and logs it to Warning.
func (c *Context) Warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.mu.Lock()
	c.warnings = append(c.warnings, msg)
	c.mu.Unlock()
	Warning.Output(2, msg)
}

// Warnings returns the warnings recorded so far, in order.
func (c *Context) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.warnings...)
}
