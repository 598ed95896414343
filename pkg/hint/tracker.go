// Package hint tracks per-scenario hint progression: hints
// unlock on a schedule driven by attempt counts and elapsed
// time, and a solved scenario reveals its full list.
package hint

import (
	"fmt"
	"sync"
	"time"

	"digital.vasic.trainer/pkg/scenario"
	"digital.vasic.trainer/pkg/solve"
)

// Unlock identifies a single newly unlocked hint. Index is
// 1-based, matching how hints are presented to learners.
type Unlock struct {
	Index int
	Text  string
}

// Snapshot is a read-only view of one scenario's hint state.
type Snapshot struct {
	Key        scenario.Key `json:"key"`
	Unlocked   int          `json:"unlocked"`
	Total      int          `json:"total"`
	LastUnlock *time.Time   `json:"last_unlock,omitempty"`
}

// state holds the per-scenario progression counters. The
// unlocked count is a high-water mark so progression stays
// monotonic even if the clock misbehaves.
type state struct {
	mu          sync.Mutex
	attempts    int64
	activatedAt time.Time
	unlocked    int
	lastUnlock  time.Time
}

// Tracker computes unlocked hints for every scenario in the
// registry. Mid-run reset is not supported; a process restart
// resets all progression, matching the engine's
// single-training-run deployment model.
type Tracker struct {
	registry scenario.Registry
	store    *solve.Store
	schedule Schedule
	states   map[scenario.Key]*state
	clock    func() time.Time
}

// NewTracker creates a tracker. Every scenario is considered
// active from construction time for the elapsed-time part of
// the unlock schedule.
func NewTracker(
	reg scenario.Registry,
	store *solve.Store,
	schedule Schedule,
) *Tracker {
	now := time.Now()
	keys := reg.Keys()
	states := make(map[scenario.Key]*state, len(keys))
	for _, key := range keys {
		states[key] = &state{activatedAt: now}
	}

	return &Tracker{
		registry: reg,
		store:    store,
		schedule: schedule,
		states:   states,
		clock:    time.Now,
	}
}

// WithClock overrides the tracker's time source and rebases
// each scenario's activation instant. Intended for tests.
func (t *Tracker) WithClock(clock func() time.Time) *Tracker {
	t.clock = clock
	now := clock()
	for _, st := range t.states {
		st.mu.Lock()
		st.activatedAt = now
		st.mu.Unlock()
	}
	return t
}

// RecordAttempt counts one attempt toward the scenario's
// unlock schedule and returns the hints newly unlocked by it,
// in order. Returns an error wrapping scenario.ErrNotFound for
// unknown keys.
func (t *Tracker) RecordAttempt(
	key scenario.Key,
) ([]Unlock, error) {
	sc, err := t.registry.Lookup(key)
	if err != nil {
		return nil, err
	}

	st := t.states[key]
	st.mu.Lock()
	defer st.mu.Unlock()

	st.attempts++
	return t.advanceLocked(sc, st), nil
}

// Unlocked returns the hint texts currently available for the
// scenario. The count grows monotonically with attempts and
// elapsed time; once the scenario is solved the full list is
// returned unconditionally.
func (t *Tracker) Unlocked(
	key scenario.Key,
) ([]string, error) {
	sc, err := t.registry.Lookup(key)
	if err != nil {
		return nil, err
	}

	if t.store.Solved(key) {
		return append([]string(nil), sc.Hints...), nil
	}

	st := t.states[key]
	st.mu.Lock()
	t.advanceLocked(sc, st)
	n := st.unlocked
	st.mu.Unlock()

	return append([]string(nil), sc.Hints[:n]...), nil
}

// Get returns a snapshot of the scenario's hint state.
func (t *Tracker) Get(key scenario.Key) (Snapshot, error) {
	sc, err := t.registry.Lookup(key)
	if err != nil {
		return Snapshot{}, err
	}

	if t.store.Solved(key) {
		return Snapshot{
			Key:      key,
			Unlocked: len(sc.Hints),
			Total:    len(sc.Hints),
		}, nil
	}

	st := t.states[key]
	st.mu.Lock()
	t.advanceLocked(sc, st)
	snap := Snapshot{
		Key:      key,
		Unlocked: st.unlocked,
		Total:    len(sc.Hints),
	}
	if !st.lastUnlock.IsZero() {
		lu := st.lastUnlock
		snap.LastUnlock = &lu
	}
	st.mu.Unlock()

	return snap, nil
}

// advanceLocked raises the unlocked high-water mark to match
// the schedule and returns any newly unlocked hints. Caller
// must hold st.mu.
func (t *Tracker) advanceLocked(
	sc *scenario.Scenario, st *state,
) []Unlock {
	now := t.clock()
	target := t.schedule.UnlockedCount(
		st.attempts, now.Sub(st.activatedAt), len(sc.Hints),
	)
	if target <= st.unlocked {
		return nil
	}

	fresh := make([]Unlock, 0, target-st.unlocked)
	for i := st.unlocked; i < target; i++ {
		fresh = append(fresh, Unlock{
			Index: i + 1,
			Text:  sc.Hints[i],
		})
	}
	st.unlocked = target
	st.lastUnlock = now
	return fresh
}

// String implements fmt.Stringer for debugging output.
func (s Snapshot) String() string {
	return fmt.Sprintf(
		"%s: %d/%d hints", s.Key, s.Unlocked, s.Total,
	)
}
