// Package profile provides enablement profiles: named
// configuration bundles that decide which scenarios are active
// in a given deployment, independent of solve state.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.trainer/pkg/scenario"
)

// Profile names a deployment flavour and optionally disables
// additional scenario keys or whole categories on top of each
// scenario's own DisabledIn rules.
type Profile struct {
	// Name is the profile identifier matched against each
	// scenario's DisabledIn list (e.g., "classroom", "ctf",
	// "demo").
	Name string `json:"name" yaml:"name"`

	// DisabledKeys disables specific scenarios regardless of
	// their own rules.
	DisabledKeys []scenario.Key `json:"disabled_keys,omitempty" yaml:"disabled_keys,omitempty"`

	// DisabledCategories disables every scenario in the named
	// categories.
	DisabledCategories []string `json:"disabled_categories,omitempty" yaml:"disabled_categories,omitempty"`
}

// Validate checks that the profile is well formed.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	return nil
}

// LoadFile reads a profile definition from a JSON or YAML file.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read profile file %s: %w", path, err,
		)
	}

	var p Profile
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &p)
	} else {
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse profile %s: %w", path, err,
		)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf(
			"invalid profile %s: %w", path, err,
		)
	}
	return &p, nil
}
