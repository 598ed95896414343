// Package broadcast provides fan-out notification of engine
// events to subscribed observers with bounded per-subscriber
// buffering and drop-on-overflow semantics.
package broadcast

import (
	"time"

	"digital.vasic.trainer/pkg/scenario"
)

// EventType represents the type of engine event.
type EventType string

const (
	// EventEngineStarted is published once when the engine
	// comes up, so late dashboards can detect restarts.
	EventEngineStarted EventType = "engine_started"

	// EventScenarioSolved is published exactly once per
	// scenario, by the attempt that won the solve transition.
	EventScenarioSolved EventType = "scenario_solved"

	// EventHintUnlocked is published for each hint as the
	// progression schedule releases it.
	EventHintUnlocked EventType = "hint_unlocked"
)

// Event is a single notification delivered to subscribers.
type Event struct {
	Type        EventType    `json:"type"`
	ScenarioKey scenario.Key `json:"scenario_key,omitempty"`
	Name        string       `json:"name,omitempty"`

	// Classification is the anti-cheat tag on solved events.
	// It is intended for instructor-facing consumers only.
	Classification string `json:"classification,omitempty"`

	// Attempts is the attempt count at the time of a solve.
	Attempts int64 `json:"attempts,omitempty"`

	// HintIndex and Hint identify an unlocked hint (1-based).
	HintIndex int    `json:"hint_index,omitempty"`
	Hint      string `json:"hint,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
