// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset loads plot data into Frames.
//
// Two formats are supported: CSV files with a header row, and Go
// benchmark results files [1]. CSV columns whose values all parse as
// integers or floats become numeric columns; all others are strings.
// Benchmark results become one row per benchmark line, with a "name"
// column, one column per configuration key, and one column per
// result unit.
//
// [1] https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/ggbuild/frame"
)

// Format is a data file format.
type Format string

const (
	// Auto picks CSV for files ending in ".csv" and Bench for
	// everything else.
	Auto  Format = ""
	CSV   Format = "csv"
	Bench Format = "bench"
)

// Read reads a Frame in format f from r. Auto reads benchmark
// results.
func Read(r io.Reader, f Format) (frame.Frame, error) {
	switch f {
	case CSV:
		return ReadCSV(r)
	case Auto, Bench:
		return ReadBench(r)
	}
	return frame.Frame{}, fmt.Errorf("unknown data format %q", f)
}

// Load reads the Frame in path. A path of "-" reads standard input.
func Load(path string, f Format) (frame.Frame, error) {
	if f == Auto && strings.EqualFold(filepath.Ext(path), ".csv") {
		f = CSV
	}
	if path == "-" {
		return Read(os.Stdin, f)
	}
	file, err := os.Open(path)
	if err != nil {
		return frame.Frame{}, err
	}
	defer file.Close()
	fr, err := Read(file, f)
	if err != nil {
		return fr, fmt.Errorf("%s: %w", path, err)
	}
	return fr, nil
}

// LoadAll loads and concatenates the Frames in paths. Columns missing
// from some files are filled with missing values.
func LoadAll(paths []string, f Format) (frame.Frame, error) {
	frames := make([]frame.Frame, 0, len(paths))
	for _, path := range paths {
		fr, err := Load(path, f)
		if err != nil {
			return frame.Frame{}, err
		}
		frames = append(frames, fr)
	}
	return frame.Concat(frames...), nil
}
