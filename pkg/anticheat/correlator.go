// Package anticheat correlates interaction telemetry with
// completed solves to flag completions that bypassed a
// scenario's intended attack surface.
package anticheat

import (
	"time"

	"digital.vasic.trainer/pkg/logging"
	"digital.vasic.trainer/pkg/scenario"
	"digital.vasic.trainer/pkg/solve"
)

// DefaultWindowSize is the number of recent interactions
// retained per scenario when no explicit size is configured.
// The exact size is policy, not contract; tune it per
// deployment.
const DefaultWindowSize = 32

// Interaction is an ephemeral record of one inbound request
// relevant to a scenario.
type Interaction struct {
	Key             scenario.Key `json:"key"`
	ViaIntendedPath bool         `json:"via_intended_path"`
	Timestamp       time.Time    `json:"timestamp"`
}

// Correlator keeps a bounded recent-history window of
// interactions per scenario and classifies solves against it.
// Recording is best-effort telemetry: unknown scenario keys
// are dropped, never surfaced as errors to the request path.
type Correlator struct {
	windows map[scenario.Key]*window
	size    int
	logger  logging.Logger
	clock   func() time.Time
}

// NewCorrelator creates a correlator with one window per
// registry scenario. A non-positive windowSize falls back to
// DefaultWindowSize.
func NewCorrelator(
	reg scenario.Registry,
	windowSize int,
	logger logging.Logger,
) *Correlator {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	keys := reg.Keys()
	windows := make(map[scenario.Key]*window, len(keys))
	for _, key := range keys {
		windows[key] = newWindow(windowSize)
	}

	return &Correlator{
		windows: windows,
		size:    windowSize,
		logger:  logger,
		clock:   time.Now,
	}
}

// WithClock overrides the correlator's time source. Intended
// for tests.
func (c *Correlator) WithClock(
	clock func() time.Time,
) *Correlator {
	c.clock = clock
	return c
}

// RecordInteraction appends an interaction to the scenario's
// window, evicting the oldest entry once the window is full.
// Unknown keys are silently dropped apart from a debug log.
func (c *Correlator) RecordInteraction(
	key scenario.Key, viaIntendedPath bool,
) {
	w, exists := c.windows[key]
	if !exists {
		c.logger.Debug("dropping interaction for unknown scenario",
			logging.StringField("key", string(key)),
		)
		return
	}

	w.append(Interaction{
		Key:             key,
		ViaIntendedPath: viaIntendedPath,
		Timestamp:       c.clock(),
	})
}

// Classify inspects the scenario's retained window and tags
// the solve: legitimate if at least one interaction traversed
// the intended path, suspect otherwise. A solve with zero
// recorded interactions is suspect: it indicates a scripted
// replay against an internal check rather than an exercised
// exploit. Missing history (unknown key) also defaults to
// suspect; classification must never block a solve.
func (c *Correlator) Classify(
	key scenario.Key,
) solve.Classification {
	w, exists := c.windows[key]
	if !exists {
		return solve.ClassificationSuspect
	}

	for _, in := range w.snapshot() {
		if in.ViaIntendedPath {
			return solve.ClassificationLegitimate
		}
	}
	return solve.ClassificationSuspect
}

// Window returns a copy of the scenario's retained
// interactions, oldest first. Used by instructor-facing
// reports; returns nil for unknown keys.
func (c *Correlator) Window(key scenario.Key) []Interaction {
	w, exists := c.windows[key]
	if !exists {
		return nil
	}
	return w.snapshot()
}
