package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.trainer/pkg/anticheat"
	"digital.vasic.trainer/pkg/engine"
	"digital.vasic.trainer/pkg/scenario"
)

type stubSource struct {
	states       []engine.ScenarioState
	interactions map[scenario.Key][]anticheat.Interaction
}

func (s *stubSource) States() []engine.ScenarioState {
	return s.states
}

func (s *stubSource) Interactions(
	key scenario.Key,
) []anticheat.Interaction {
	return s.interactions[key]
}

func newStubSource() *stubSource {
	solvedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &stubSource{
		states: []engine.ScenarioState{
			{
				Key:            "idor",
				Name:           "IDOR",
				Active:         true,
				Solved:         true,
				SolvedAt:       &solvedAt,
				Classification: "legitimate",
				Attempts:       12,
			},
			{
				Key:            "sql-injection",
				Name:           "SQL Injection",
				Active:         true,
				Solved:         true,
				Classification: "suspect",
				Attempts:       2,
			},
			{
				Key:            "xss",
				Name:           "XSS",
				Active:         false,
				Classification: "unclassified",
				Attempts:       5,
			},
			{
				Key:            "ssrf",
				Name:           "SSRF",
				Active:         true,
				Classification: "unclassified",
			},
		},
		interactions: map[scenario.Key][]anticheat.Interaction{
			"idor": {
				{Key: "idor", ViaIntendedPath: true},
			},
		},
	}
}

func TestBuild_Summary(t *testing.T) {
	r := Build(newStubSource(), "classroom")

	assert.Equal(t, "classroom", r.Profile)
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.GeneratedAt.IsZero())

	assert.Equal(t, 4, r.Summary.Total)
	assert.Equal(t, 2, r.Summary.Solved)
	assert.Equal(t, 1, r.Summary.Legitimate)
	assert.Equal(t, 1, r.Summary.Suspect)
	assert.Equal(t, int64(19), r.Summary.TotalAttempts)
	assert.InDelta(t, 50.0, r.Summary.SolveRate, 0.01)
}

func TestBuild_SolvedAlwaysReportedAsSolved(t *testing.T) {
	r := Build(newStubSource(), "classroom")

	for _, sr := range r.Scenarios {
		if sr.Key == "sql-injection" {
			assert.True(t, sr.Solved)
			assert.Equal(t, "suspect", sr.Classification)
		}
	}
}

func TestBuild_IncludesInteractionWindows(t *testing.T) {
	r := Build(newStubSource(), "classroom")

	require.Len(t, r.Scenarios, 4)
	for _, sr := range r.Scenarios {
		if sr.Key == "idor" {
			require.Len(t, sr.Interactions, 1)
			assert.True(t, sr.Interactions[0].ViaIntendedPath)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	r := Build(&stubSource{}, "demo")

	assert.Equal(t, 0, r.Summary.Total)
	assert.Zero(t, r.Summary.SolveRate)
	assert.Empty(t, r.Scenarios)
}

func TestRunReport_WriteJSON(t *testing.T) {
	r := Build(newStubSource(), "classroom")

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded RunReport
	require.NoError(
		t, json.Unmarshal(buf.Bytes(), &decoded),
	)
	assert.Equal(t, r.ID, decoded.ID)
	assert.Equal(t, r.Summary, decoded.Summary)
}

func TestRunReport_SaveJSON(t *testing.T) {
	r := Build(newStubSource(), "classroom")

	path := filepath.Join(
		t.TempDir(), "reports", "run.json",
	)
	require.NoError(t, r.SaveJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded RunReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "classroom", decoded.Profile)
	assert.Len(t, decoded.Scenarios, 4)
}
