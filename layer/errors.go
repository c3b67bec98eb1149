// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"fmt"
	"strings"
)

// MissingComponentError is returned by New when a layer has no geom,
// stat, or position.
type MissingComponentError struct {
	// Component is "geom", "stat", or "position".
	Component string
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("layer has no %s", e.Component)
}

// UnknownParameterError is returned by New when a layer is given
// parameters that neither its geom nor its stat accepts.
type UnknownParameterError struct {
	// Keys are the unknown parameter names, sorted.
	Keys []string
}

func (e *UnknownParameterError) Error() string {
	return "unknown parameters: " + strings.Join(e.Keys, ", ")
}

// UnknownExtensionError is returned when a geom, stat, or position
// name is not registered.
type UnknownExtensionError struct {
	// Kind is "geom", "stat", or "position".
	Kind string
	Name string
}

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// AestheticLengthError is returned when an aesthetic evaluates to a
// column whose length is neither 1 nor the number of rows.
type AestheticLengthError struct {
	Aes       string
	Len, Want int
}

func (e *AestheticLengthError) Error() string {
	return fmt.Sprintf("aesthetic %s has length %d, want 1 or %d", e.Aes, e.Len, e.Want)
}

// MissingAesError is returned when a stat or geom is missing
// aesthetics it requires.
type MissingAesError struct {
	// Kind is "stat" or "geom", and Name is the name of the stat
	// or geom.
	Kind, Name string

	// Missing lists the missing aesthetics.
	Missing []string
}

func (e *MissingAesError) Error() string {
	return fmt.Sprintf("%s_%s requires the following missing aesthetics: %s", e.Kind, e.Name, strings.Join(e.Missing, ", "))
}

// GeomDrawerError is returned when a geom does not implement exactly
// one of PanelDrawer and GroupDrawer.
type GeomDrawerError struct {
	Name string

	// Both is true if the geom implements both drawers and false
	// if it implements neither.
	Both bool
}

func (e *GeomDrawerError) Error() string {
	if e.Both {
		return fmt.Sprintf("geom %s implements both DrawPanel and DrawGroup", e.Name)
	}
	return fmt.Sprintf("geom %s implements neither DrawPanel nor DrawGroup", e.Name)
}
