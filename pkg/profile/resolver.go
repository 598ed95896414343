package profile

import (
	"fmt"

	"digital.vasic.trainer/pkg/scenario"
)

// IsActive reports whether the scenario is active under the
// given profile. It is a pure function with no caching: the
// profile can be swapped between calls (test harnesses rely on
// this), so the answer is recomputed every time.
func IsActive(sc *scenario.Scenario, p *Profile) (bool, error) {
	if sc == nil {
		return false, fmt.Errorf("scenario is nil")
	}
	if err := p.Validate(); err != nil {
		return false, err
	}

	if sc.DisabledInProfile(p.Name) {
		return false, nil
	}

	for _, key := range p.DisabledKeys {
		if key == sc.Key {
			return false, nil
		}
	}

	for _, cat := range p.DisabledCategories {
		if cat == sc.Category {
			return false, nil
		}
	}

	return true, nil
}
