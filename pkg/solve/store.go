package solve

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"digital.vasic.trainer/pkg/scenario"
)

// record holds the mutable solve state for one scenario. The
// solved flag and attempt counter are lock-free; the mutex
// guards only the rarely-written annotation fields.
type record struct {
	solved   atomic.Bool
	attempts atomic.Int64

	mu             sync.Mutex
	solvedAt       time.Time
	classification Classification
}

// Snapshot is a read-only copy of one scenario's solve state.
type Snapshot struct {
	Key            scenario.Key   `json:"key"`
	Solved         bool           `json:"solved"`
	SolvedAt       *time.Time     `json:"solved_at,omitempty"`
	Classification Classification `json:"classification"`
	Attempts       int64          `json:"attempts"`
}

// Store holds solve state for every scenario in the registry.
// The record map is built once at construction and never
// written again; all mutation happens inside the per-scenario
// records, so solves on independent scenarios never contend.
type Store struct {
	records map[scenario.Key]*record
}

// NewStore creates a store with an unsolved record for every
// key in the registry.
func NewStore(reg scenario.Registry) *Store {
	keys := reg.Keys()
	records := make(map[scenario.Key]*record, len(keys))
	for _, key := range keys {
		records[key] = &record{
			classification: ClassificationUnclassified,
		}
	}
	return &Store{records: records}
}

func (s *Store) record(key scenario.Key) (*record, error) {
	rec, exists := s.records[key]
	if !exists {
		return nil, fmt.Errorf(
			"%w: %s", scenario.ErrNotFound, key,
		)
	}
	return rec, nil
}

// IncrementAttempts atomically counts one verification attempt
// and returns the new total.
func (s *Store) IncrementAttempts(
	key scenario.Key,
) (int64, error) {
	rec, err := s.record(key)
	if err != nil {
		return 0, err
	}
	return rec.attempts.Add(1), nil
}

// TrySolve attempts the one-time unsolved->solved transition.
// It returns true for exactly one caller per scenario per
// process lifetime; that caller's timestamp is recorded as
// solvedAt and never changes afterwards.
func (s *Store) TrySolve(
	key scenario.Key, now time.Time,
) (bool, error) {
	rec, err := s.record(key)
	if err != nil {
		return false, err
	}

	if !rec.solved.CompareAndSwap(false, true) {
		return false, nil
	}

	rec.mu.Lock()
	rec.solvedAt = now
	rec.mu.Unlock()
	return true, nil
}

// SetClassification annotates a solve with its anti-cheat
// classification. Annotation never reverts the solved flag.
func (s *Store) SetClassification(
	key scenario.Key, c Classification,
) error {
	rec, err := s.record(key)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	rec.classification = c
	rec.mu.Unlock()
	return nil
}

// Solved reports whether the scenario has been solved.
func (s *Store) Solved(key scenario.Key) bool {
	rec, err := s.record(key)
	if err != nil {
		return false
	}
	return rec.solved.Load()
}

// Attempts returns the current attempt count for the scenario.
func (s *Store) Attempts(key scenario.Key) int64 {
	rec, err := s.record(key)
	if err != nil {
		return 0
	}
	return rec.attempts.Load()
}

// Get returns a snapshot of one scenario's solve state.
func (s *Store) Get(key scenario.Key) (Snapshot, error) {
	rec, err := s.record(key)
	if err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(key, rec), nil
}

// All returns snapshots for every scenario, in map order.
func (s *Store) All() []Snapshot {
	out := make([]Snapshot, 0, len(s.records))
	for key, rec := range s.records {
		out = append(out, s.snapshot(key, rec))
	}
	return out
}

func (s *Store) snapshot(
	key scenario.Key, rec *record,
) Snapshot {
	snap := Snapshot{
		Key:      key,
		Solved:   rec.solved.Load(),
		Attempts: rec.attempts.Load(),
	}

	rec.mu.Lock()
	snap.Classification = rec.classification
	if snap.Solved && !rec.solvedAt.IsZero() {
		t := rec.solvedAt
		snap.SolvedAt = &t
	}
	rec.mu.Unlock()

	return snap
}
