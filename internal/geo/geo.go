// Package geo provides the static India state-boundary reference used
// to join aggregated statistics to the map.
package geo

import (
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb/geojson"
)

// NamePropertyKey is the GeoJSON feature property holding the canonical
// state name. It is the join key between datasets and boundaries.
const NamePropertyKey = "NAME_1"

// Reference is the parsed boundary document. It is loaded once at
// startup and never mutated.
type Reference struct {
	raw    []byte
	fc     *geojson.FeatureCollection
	states []string
	lookup map[string]struct{}
}

// Load reads and parses the boundary GeoJSON. A missing or malformed
// file is a startup error.
func Load(path string) (*Reference, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundary file: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Reference from raw GeoJSON bytes.
func Parse(raw []byte) (*Reference, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse boundary geojson: %w", err)
	}

	lookup := make(map[string]struct{})
	for _, f := range fc.Features {
		name := f.Properties.MustString(NamePropertyKey, "")
		if name == "" {
			continue
		}
		lookup[name] = struct{}{}
	}
	if len(lookup) == 0 {
		return nil, fmt.Errorf("boundary geojson has no features with a %q property", NamePropertyKey)
	}

	states := make([]string, 0, len(lookup))
	for name := range lookup {
		states = append(states, name)
	}
	sort.Strings(states)

	return &Reference{raw: raw, fc: fc, states: states, lookup: lookup}, nil
}

// StateNames returns the canonical state names, sorted. The returned
// slice is a copy.
func (r *Reference) StateNames() []string {
	names := make([]string, len(r.states))
	copy(names, r.states)
	return names
}

// Contains reports whether name is a canonical state name.
func (r *Reference) Contains(name string) bool {
	_, ok := r.lookup[name]
	return ok
}

// Raw returns the original document bytes, served to the browser for
// the client-side map join.
func (r *Reference) Raw() []byte {
	return r.raw
}
