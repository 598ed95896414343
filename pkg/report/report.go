// Package report generates instructor-facing run reports.
// Classification data surfaces here and nowhere on the
// learner-facing path: a solved scenario is always reported as
// solved, with the anti-cheat tag alongside for review.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"digital.vasic.trainer/pkg/anticheat"
	"digital.vasic.trainer/pkg/engine"
	"digital.vasic.trainer/pkg/scenario"
)

// Source supplies the state a report is built from. Satisfied
// by *engine.Engine.
type Source interface {
	States() []engine.ScenarioState
	Interactions(key scenario.Key) []anticheat.Interaction
}

// ScenarioReport is one scenario's entry in the run report.
type ScenarioReport struct {
	engine.ScenarioState

	// Interactions is the retained telemetry window behind
	// the classification, oldest first.
	Interactions []anticheat.Interaction `json:"interactions,omitempty"`
}

// RunSummary aggregates the run for quick review.
type RunSummary struct {
	Total         int     `json:"total"`
	Solved        int     `json:"solved"`
	Legitimate    int     `json:"legitimate"`
	Suspect       int     `json:"suspect"`
	TotalAttempts int64   `json:"total_attempts"`
	SolveRate     float64 `json:"solve_rate"`
}

// RunReport is the complete instructor-facing report for one
// training run.
type RunReport struct {
	ID          string           `json:"id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Profile     string           `json:"profile"`
	Scenarios   []ScenarioReport `json:"scenarios"`
	Summary     RunSummary       `json:"summary"`
}

// Build assembles a report from the current engine state.
func Build(src Source, profileName string) *RunReport {
	states := src.States()

	r := &RunReport{
		ID: fmt.Sprintf(
			"run_%s", time.Now().Format("20060102_150405"),
		),
		GeneratedAt: time.Now(),
		Profile:     profileName,
		Scenarios:   make([]ScenarioReport, 0, len(states)),
	}

	for _, st := range states {
		r.Scenarios = append(r.Scenarios, ScenarioReport{
			ScenarioState: st,
			Interactions:  src.Interactions(st.Key),
		})

		r.Summary.Total++
		r.Summary.TotalAttempts += st.Attempts
		if st.Solved {
			r.Summary.Solved++
			switch st.Classification {
			case "legitimate":
				r.Summary.Legitimate++
			case "suspect":
				r.Summary.Suspect++
			}
		}
	}

	if r.Summary.Total > 0 {
		r.Summary.SolveRate = float64(r.Summary.Solved) /
			float64(r.Summary.Total) * 100
	}

	return r
}

// WriteJSON writes the report as indented JSON.
func (r *RunReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// SaveJSON writes the report to a file, creating parent
// directories as needed.
func (r *RunReport) SaveJSON(path string) error {
	if err := os.MkdirAll(
		filepath.Dir(path), 0755,
	); err != nil {
		return fmt.Errorf(
			"failed to create report directory: %w", err,
		)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf(
			"failed to create report file: %w", err,
		)
	}
	defer f.Close()

	return r.WriteJSON(f)
}
