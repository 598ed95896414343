// Package scenario provides the immutable catalog of trainable
// security scenarios: loading, validation, and lookup of the
// static metadata that drives the verification engine.
package scenario

import "errors"

// Key uniquely identifies a scenario.
type Key string

// Difficulty bounds for scenario definitions.
const (
	MinDifficulty = 1
	MaxDifficulty = 6
)

// ErrNotFound is returned when a scenario key is not present
// in the registry.
var ErrNotFound = errors.New("scenario not found")

// Scenario describes a single trainable security exercise
// declaratively. Instances are created once at load time and
// never mutated afterwards; solve progress lives elsewhere.
type Scenario struct {
	// Key is the unique identifier for this scenario.
	Key Key `json:"key" yaml:"key"`

	// Name is the human-readable display name.
	Name string `json:"name" yaml:"name"`

	// Category groups related scenarios (e.g., "injection",
	// "broken-access-control", "xss").
	Category string `json:"category" yaml:"category"`

	// Difficulty is an ordinal rating from 1 (trivial) to
	// 6 (expert).
	Difficulty int `json:"difficulty" yaml:"difficulty"`

	// Description explains what the learner must achieve.
	Description string `json:"description" yaml:"description"`

	// Hints holds the ordered hint texts revealed by the
	// hint progression tracker.
	Hints []string `json:"hints,omitempty" yaml:"hints,omitempty"`

	// DisabledIn lists the enablement profile names under
	// which this scenario is inactive.
	DisabledIn []string `json:"disabled_in,omitempty" yaml:"disabled_in,omitempty"`
}

// DisabledInProfile reports whether this scenario is disabled
// under the named profile.
func (s *Scenario) DisabledInProfile(name string) bool {
	for _, p := range s.DisabledIn {
		if p == name {
			return true
		}
	}
	return false
}
