package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk structure for a scenario catalog
// (JSON or YAML).
type catalogFile struct {
	Version   string     `json:"version" yaml:"version"`
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

// LoadCatalogFile reads a JSON or YAML file containing scenario
// definitions. The format is chosen by file extension; .yaml
// and .yml are parsed with yaml.v3, everything else as JSON.
func LoadCatalogFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read catalog file %s: %w", path, err,
		)
	}

	var catalog catalogFile
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &catalog)
	} else {
		err = json.Unmarshal(data, &catalog)
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse catalog %s: %w", path, err,
		)
	}

	return catalog.Scenarios, nil
}

// LoadCatalogDir loads all .json and .yaml/.yml catalog files
// from a directory and concatenates their scenarios. It does
// not recurse into subdirectories.
func LoadCatalogDir(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read catalog directory %s: %w",
			dir, err,
		)
	}

	var all []Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		p := filepath.Join(dir, entry.Name())
		defs, err := LoadCatalogFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, defs...)
	}

	return all, nil
}

// LoadRegistry loads a catalog from a file or directory path
// and builds a validated registry from it. Any validation
// failure aborts with no partial registry.
func LoadRegistry(path string) (*DefaultRegistry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to stat catalog path %s: %w", path, err,
		)
	}

	var defs []Scenario
	if info.IsDir() {
		defs, err = LoadCatalogDir(path)
	} else {
		defs, err = LoadCatalogFile(path)
	}
	if err != nil {
		return nil, err
	}

	return NewRegistry(defs)
}
