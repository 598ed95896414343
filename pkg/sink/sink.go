// Package sink provides best-effort durable recording of
// finalized first solves. Sinks are reporting aids, never a
// correctness dependency: the engine logs sink failures and
// moves on.
package sink

import (
	"context"
	"time"

	"digital.vasic.trainer/pkg/scenario"
	"digital.vasic.trainer/pkg/solve"
)

// SolveRecord is the durable form of a finalized first solve.
type SolveRecord struct {
	Key            scenario.Key         `json:"key"`
	Name           string               `json:"name"`
	Category       string               `json:"category"`
	Difficulty     int                  `json:"difficulty"`
	SolvedAt       time.Time            `json:"solved_at"`
	Classification solve.Classification `json:"classification"`
	Attempts       int64                `json:"attempts"`
}

// Sink records finalized solves somewhere durable.
type Sink interface {
	// RecordSolve persists one solve record.
	RecordSolve(ctx context.Context, rec SolveRecord) error

	// Close releases the sink's resources.
	Close() error
}

// NoopSink discards all records.
type NoopSink struct{}

// RecordSolve discards the record.
func (NoopSink) RecordSolve(context.Context, SolveRecord) error {
	return nil
}

// Close is a no-op.
func (NoopSink) Close() error {
	return nil
}

// MultiSink fans records out to several sinks, returning the
// last error so a failing sink does not starve the others.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that writes to every given sink.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordSolve writes the record to all sinks.
func (m *MultiSink) RecordSolve(
	ctx context.Context, rec SolveRecord,
) error {
	var lastErr error
	for _, s := range m.sinks {
		if err := s.RecordSolve(ctx, rec); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Close closes all sinks, returning the last error.
func (m *MultiSink) Close() error {
	var lastErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
