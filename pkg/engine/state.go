package engine

import (
	"time"

	"digital.vasic.trainer/pkg/profile"
	"digital.vasic.trainer/pkg/scenario"
)

// ScenarioState joins a scenario's static metadata with its
// live solve and hint progression state. It is the read-only
// view served to the admin API, dashboard, and reports.
type ScenarioState struct {
	Key            scenario.Key `json:"key"`
	Name           string       `json:"name"`
	Category       string       `json:"category"`
	Difficulty     int          `json:"difficulty"`
	Active         bool         `json:"active"`
	Solved         bool         `json:"solved"`
	SolvedAt       *time.Time   `json:"solved_at,omitempty"`
	Classification string       `json:"classification"`
	Attempts       int64        `json:"attempts"`
	HintsUnlocked  int          `json:"hints_unlocked"`
	HintsTotal     int          `json:"hints_total"`
}

// State returns the joined state for one scenario.
func (e *Engine) State(
	key scenario.Key,
) (ScenarioState, error) {
	sc, err := e.registry.Lookup(key)
	if err != nil {
		return ScenarioState{}, err
	}
	return e.stateOf(sc), nil
}

// States returns the joined state for every scenario, sorted
// by key.
func (e *Engine) States() []ScenarioState {
	scenarios := e.registry.List()
	out := make([]ScenarioState, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, e.stateOf(sc))
	}
	return out
}

func (e *Engine) stateOf(sc *scenario.Scenario) ScenarioState {
	st := ScenarioState{
		Key:        sc.Key,
		Name:       sc.Name,
		Category:   sc.Category,
		Difficulty: sc.Difficulty,
		HintsTotal: len(sc.Hints),
	}

	if active, err := profile.IsActive(
		sc, e.profiles.Current(),
	); err == nil {
		st.Active = active
	}

	if snap, err := e.store.Get(sc.Key); err == nil {
		st.Solved = snap.Solved
		st.SolvedAt = snap.SolvedAt
		st.Classification = string(snap.Classification)
		st.Attempts = snap.Attempts
	}

	if hs, err := e.hints.Get(sc.Key); err == nil {
		st.HintsUnlocked = hs.Unlocked
	}

	return st
}
