// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
)

// ReadCSV reads a CSV file with a header row from r.
func ReadCSV(r io.Reader) (frame.Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return frame.Frame{}, err
	}
	if len(rows) == 0 {
		return frame.Frame{}, errors.New("CSV data has no header row")
	}
	seen := make(map[string]bool)
	for _, name := range rows[0] {
		if seen[name] {
			return frame.Frame{}, fmt.Errorf("duplicate CSV column %q", name)
		}
		seen[name] = true
	}
	return frame.New(table.TableFromStrings(rows[0], rows[1:], true)), nil
}
