// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"sort"
	"sync"
)

// A Registry maps names to stats, geoms, and positions. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	stats     map[string]Stat
	geoms     map[string]Geom
	positions map[string]Position
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		stats:     make(map[string]Stat),
		geoms:     make(map[string]Geom),
		positions: make(map[string]Position),
	}
}

// RegisterStat registers s under s.Info().Name, replacing any stat of
// the same name.
func (r *Registry) RegisterStat(s Stat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats[s.Info().Name] = s
}

// RegisterGeom registers g under g.Info().Name, replacing any geom of
// the same name. It returns a *GeomDrawerError if g does not
// implement exactly one of PanelDrawer and GroupDrawer.
func (r *Registry) RegisterGeom(g Geom) error {
	if err := checkDrawers(g); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.geoms[g.Info().Name] = g
	return nil
}

// RegisterPosition registers p under p.Name(), replacing any position
// of the same name.
func (r *Registry) RegisterPosition(p Position) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions[p.Name()] = p
}

// Stat returns the stat registered as name.
func (r *Registry) Stat(name string) (Stat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.stats[name]; ok {
		return s, nil
	}
	return nil, &UnknownExtensionError{"stat", name}
}

// Geom returns the geom registered as name.
func (r *Registry) Geom(name string) (Geom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.geoms[name]; ok {
		return g, nil
	}
	return nil, &UnknownExtensionError{"geom", name}
}

// Position returns the position registered as name.
func (r *Registry) Position(name string) (Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.positions[name]; ok {
		return p, nil
	}
	return nil, &UnknownExtensionError{"position", name}
}

// Names returns the sorted names registered for kind, which is
// "stat", "geom", or "position".
func (r *Registry) Names(kind string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	switch kind {
	case "stat":
		for n := range r.stats {
			names = append(names, n)
		}
	case "geom":
		for n := range r.geoms {
			names = append(names, n)
		}
	case "position":
		for n := range r.positions {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
