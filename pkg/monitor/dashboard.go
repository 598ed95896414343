package monitor

import (
	"time"

	"github.com/google/uuid"

	"digital.vasic.trainer/pkg/engine"
)

// StateSource supplies the per-scenario states the dashboard
// renders. Satisfied by *engine.Engine.
type StateSource interface {
	States() []engine.ScenarioState
}

// DashboardSummary holds aggregate stats for the training run.
type DashboardSummary struct {
	Total     int     `json:"total"`
	Active    int     `json:"active"`
	Solved    int     `json:"solved"`
	Suspect   int     `json:"suspect"`
	Attempts  int64   `json:"attempts"`
	SolveRate float64 `json:"solve_rate"`
	Elapsed   string  `json:"elapsed"`
}

// DashboardSnapshot is one point-in-time view of the run.
type DashboardSnapshot struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Scenarios   []engine.ScenarioState `json:"scenarios"`
	Summary     DashboardSummary       `json:"summary"`
}

// Dashboard builds live snapshots of the training run for the
// admin surface.
type Dashboard struct {
	runID     string
	startTime time.Time
	source    StateSource
}

// NewDashboard creates a dashboard over the given state
// source. Each process run gets a fresh run ID so observers
// can detect restarts.
func NewDashboard(source StateSource) *Dashboard {
	return &Dashboard{
		runID:     uuid.NewString(),
		startTime: time.Now(),
		source:    source,
	}
}

// RunID returns this run's identifier.
func (d *Dashboard) RunID() string {
	return d.runID
}

// Snapshot builds a current view of every scenario plus
// aggregate stats.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	states := d.source.States()

	summary := DashboardSummary{
		Total:   len(states),
		Elapsed: time.Since(d.startTime).Round(time.Second).String(),
	}
	for _, st := range states {
		if st.Active {
			summary.Active++
		}
		if st.Solved {
			summary.Solved++
		}
		if st.Classification == "suspect" {
			summary.Suspect++
		}
		summary.Attempts += st.Attempts
	}
	if summary.Total > 0 {
		summary.SolveRate = float64(summary.Solved) /
			float64(summary.Total) * 100
	}

	return DashboardSnapshot{
		RunID:       d.runID,
		GeneratedAt: time.Now(),
		Scenarios:   states,
		Summary:     summary,
	}
}
