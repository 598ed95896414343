package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.trainer/pkg/engine"
)

type stubStateSource struct {
	states []engine.ScenarioState
}

func (s *stubStateSource) States() []engine.ScenarioState {
	return s.states
}

func TestDashboard_Snapshot(t *testing.T) {
	src := &stubStateSource{
		states: []engine.ScenarioState{
			{
				Key:            "idor",
				Active:         true,
				Solved:         true,
				Classification: "legitimate",
				Attempts:       10,
			},
			{
				Key:            "sql-injection",
				Active:         true,
				Solved:         true,
				Classification: "suspect",
				Attempts:       3,
			},
			{
				Key:            "xss",
				Active:         false,
				Classification: "unclassified",
				Attempts:       1,
			},
			{
				Key:            "ssrf",
				Active:         true,
				Classification: "unclassified",
			},
		},
	}
	d := NewDashboard(src)

	snap := d.Snapshot()
	assert.Equal(t, d.RunID(), snap.RunID)
	assert.False(t, snap.GeneratedAt.IsZero())
	require.Len(t, snap.Scenarios, 4)

	assert.Equal(t, 4, snap.Summary.Total)
	assert.Equal(t, 3, snap.Summary.Active)
	assert.Equal(t, 2, snap.Summary.Solved)
	assert.Equal(t, 1, snap.Summary.Suspect)
	assert.Equal(t, int64(14), snap.Summary.Attempts)
	assert.InDelta(t, 50.0, snap.Summary.SolveRate, 0.01)
	assert.NotEmpty(t, snap.Summary.Elapsed)
}

func TestDashboard_Snapshot_Empty(t *testing.T) {
	d := NewDashboard(&stubStateSource{})

	snap := d.Snapshot()
	assert.Equal(t, 0, snap.Summary.Total)
	assert.Zero(t, snap.Summary.SolveRate)
}

func TestDashboard_RunIDStablePerRun(t *testing.T) {
	d := NewDashboard(&stubStateSource{})

	assert.NotEmpty(t, d.RunID())
	assert.Equal(t, d.Snapshot().RunID, d.Snapshot().RunID)

	other := NewDashboard(&stubStateSource{})
	assert.NotEqual(t, d.RunID(), other.RunID())
}
