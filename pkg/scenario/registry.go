package scenario

import (
	"fmt"
	"sort"
)

// Registry defines read-only access to the loaded scenario
// catalog.
type Registry interface {
	// Lookup retrieves a scenario by key. Returns an error
	// wrapping ErrNotFound if the key is absent.
	Lookup(key Key) (*Scenario, error)

	// List returns all scenarios sorted by key.
	List() []*Scenario

	// ListByCategory returns scenarios in the given category
	// sorted by key.
	ListByCategory(category string) []*Scenario

	// Keys returns all scenario keys sorted lexically.
	Keys() []Key

	// Count returns the number of loaded scenarios.
	Count() int
}

// DefaultRegistry is the standard Registry implementation.
// The backing map is populated once by NewRegistry and never
// written again, so reads need no synchronization.
type DefaultRegistry struct {
	scenarios map[Key]*Scenario
}

// NewRegistry builds a registry from the given definitions.
// It fails if any definition is invalid or a key appears more
// than once; a partial registry is never returned.
func NewRegistry(defs []Scenario) (*DefaultRegistry, error) {
	if errs := Validate(defs); len(errs) > 0 {
		return nil, fmt.Errorf(
			"invalid scenario catalog: %w", errs,
		)
	}

	scenarios := make(map[Key]*Scenario, len(defs))
	for i := range defs {
		def := defs[i]
		scenarios[def.Key] = &def
	}

	return &DefaultRegistry{scenarios: scenarios}, nil
}

// Lookup retrieves a scenario by key.
func (r *DefaultRegistry) Lookup(key Key) (*Scenario, error) {
	sc, exists := r.scenarios[key]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return sc, nil
}

// List returns all scenarios sorted by key.
func (r *DefaultRegistry) List() []*Scenario {
	out := make([]*Scenario, 0, len(r.scenarios))
	for _, sc := range r.scenarios {
		out = append(out, sc)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

// ListByCategory returns scenarios in the given category
// sorted by key.
func (r *DefaultRegistry) ListByCategory(
	category string,
) []*Scenario {
	var out []*Scenario
	for _, sc := range r.scenarios {
		if sc.Category == category {
			out = append(out, sc)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

// Keys returns all scenario keys sorted lexically.
func (r *DefaultRegistry) Keys() []Key {
	out := make([]Key, 0, len(r.scenarios))
	for k := range r.scenarios {
		out = append(out, k)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})
	return out
}

// Count returns the number of loaded scenarios.
func (r *DefaultRegistry) Count() int {
	return len(r.scenarios)
}
