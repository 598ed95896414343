// Package metrics defines the engine's metrics surface with a
// no-op default and a Prometheus-backed implementation.
package metrics

import "time"

// EngineMetrics defines the interface for recording engine
// activity.
type EngineMetrics interface {
	// RecordAttempt records one verification attempt and its
	// outcome.
	RecordAttempt(scenarioKey, outcome string, duration time.Duration)

	// RecordSolve records a completed first solve with its
	// anti-cheat classification.
	RecordSolve(scenarioKey, classification string)

	// RecordHintUnlock records one unlocked hint.
	RecordHintUnlock(scenarioKey string)

	// SetActiveScenarios sets the gauge of scenarios active
	// under the current profile.
	SetActiveScenarios(count int)
}

// NoopMetrics is a no-op implementation of EngineMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordAttempt(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordSolve(_, _ string)                    {}
func (NoopMetrics) RecordHintUnlock(_ string)                  {}
func (NoopMetrics) SetActiveScenarios(_ int)                   {}
