package scenario

import (
	"fmt"
	"strings"
)

// ValidationError represents a single problem found in a
// scenario catalog.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not tied to a specific entry
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf(
			"scenarios[%d].%s: %s", e.Index, e.Field, e.Message,
		)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates all problems found in a catalog
// so operators can fix them in one pass instead of one restart
// per error.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a set of scenario definitions and returns
// every problem found, or nil if the catalog is well formed.
func Validate(defs []Scenario) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[Key]bool, len(defs))
	for i, def := range defs {
		if def.Key == "" {
			errs = append(errs, ValidationError{
				Field:   "key",
				Message: "scenario key is required",
				Index:   i,
			})
		} else if seen[def.Key] {
			errs = append(errs, ValidationError{
				Field: "key",
				Message: fmt.Sprintf(
					"duplicate key: %s", def.Key,
				),
				Index: i,
			})
		} else {
			seen[def.Key] = true
		}

		if def.Name == "" {
			errs = append(errs, ValidationError{
				Field:   "name",
				Message: "scenario name is required",
				Index:   i,
			})
		}

		if def.Difficulty < MinDifficulty ||
			def.Difficulty > MaxDifficulty {
			errs = append(errs, ValidationError{
				Field: "difficulty",
				Message: fmt.Sprintf(
					"must be between %d and %d, got %d",
					MinDifficulty, MaxDifficulty,
					def.Difficulty,
				),
				Index: i,
			})
		}
	}

	return errs
}
