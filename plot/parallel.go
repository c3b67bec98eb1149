// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"sort"

	"github.com/aclements/ggbuild/coord"
	"github.com/aclements/ggbuild/mark"
	"golang.org/x/sync/errgroup"
)

// BuildParallel is like Build, but computes the stats, the geom setup,
// and the position adjustments of different layers concurrently.
//
// Scale registration and training still happen one layer at a time,
// in layer order, so the built data is the same as Build's. If several
// layers fail, the error names the first of them, as Build's does.
// Warnings may be raised in any order, so they are sorted.
func BuildParallel(p *Plot) (*Built, error) {
	b, err := build(p, parallel)
	if err != nil {
		return nil, err
	}
	sort.Strings(b.Warnings)
	return b, nil
}

// DrawParallel is like Draw, but draws the layers concurrently.
func DrawParallel(b *Built, c coord.Coord) ([][]mark.Mark, error) {
	return draw(b, c, parallel)
}

// parallel runs every f(i) concurrently. If any fail, it returns the
// error of the lowest i, as sequential would.
func parallel(n int, f func(i int) error) error {
	errs := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			errs[i] = f(i)
			return errs[i]
		})
	}
	if g.Wait() == nil {
		return nil
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
