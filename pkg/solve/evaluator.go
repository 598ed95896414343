package solve

import (
	"time"

	"digital.vasic.trainer/pkg/profile"
	"digital.vasic.trainer/pkg/scenario"
)

// ProfileSource supplies the currently active enablement
// profile. It is consulted on every attempt, never cached, so
// test harnesses can swap profiles between calls.
type ProfileSource interface {
	Current() *profile.Profile
}

// StaticProfile is a ProfileSource that always returns the
// same profile.
type StaticProfile struct {
	Profile *profile.Profile
}

// Current returns the wrapped profile.
func (s StaticProfile) Current() *profile.Profile {
	return s.Profile
}

// Result carries the outcome of a verification attempt along
// with the data downstream consumers (anti-cheat annotation,
// event broadcast, solve sinks) need.
type Result struct {
	// Outcome is the attempt's outcome variant.
	Outcome Outcome

	// Scenario is the resolved scenario definition.
	Scenario *scenario.Scenario

	// Attempts is the attempt count after this call, when the
	// call reached predicate evaluation; zero otherwise.
	Attempts int64

	// SolvedAt is the recorded solve timestamp. Set only for
	// OutcomeFirstSolve.
	SolvedAt time.Time
}

// Evaluator performs the atomic solved-transition for
// verification attempts. It owns the transition, not the
// detection logic: the exploit check arrives as an opaque
// caller-supplied predicate.
type Evaluator struct {
	registry scenario.Registry
	profiles ProfileSource
	store    *Store
	clock    func() time.Time
}

// NewEvaluator creates an evaluator over the given registry,
// profile source, and store.
func NewEvaluator(
	reg scenario.Registry,
	profiles ProfileSource,
	store *Store,
) *Evaluator {
	return &Evaluator{
		registry: reg,
		profiles: profiles,
		store:    store,
		clock:    time.Now,
	}
}

// WithClock overrides the evaluator's time source. Intended
// for tests.
func (e *Evaluator) WithClock(
	clock func() time.Time,
) *Evaluator {
	e.clock = clock
	return e
}

// Attempt runs one verification attempt:
//
//  1. resolve the scenario (unknown keys are an error);
//  2. consult the enablement profile; inactive scenarios
//     return OutcomeInactive with zero mutation;
//  3. count the attempt, then evaluate the predicate; a false
//     predicate returns OutcomeNotSolved;
//  4. compare-and-set the solved flag. Exactly one caller ever
//     wins, no matter how many race; everyone else gets
//     OutcomeAlreadySolved.
//
// The call never blocks on I/O and completes in effectively
// constant time.
func (e *Evaluator) Attempt(
	key scenario.Key, pred Predicate,
) (Result, error) {
	sc, err := e.registry.Lookup(key)
	if err != nil {
		return Result{}, err
	}

	active, err := profile.IsActive(sc, e.profiles.Current())
	if err != nil {
		return Result{}, err
	}
	if !active {
		return Result{
			Outcome:  OutcomeInactive,
			Scenario: sc,
		}, nil
	}

	attempts, err := e.store.IncrementAttempts(key)
	if err != nil {
		return Result{}, err
	}

	if !pred() {
		return Result{
			Outcome:  OutcomeNotSolved,
			Scenario: sc,
			Attempts: attempts,
		}, nil
	}

	now := e.clock()
	won, err := e.store.TrySolve(key, now)
	if err != nil {
		return Result{}, err
	}
	if !won {
		return Result{
			Outcome:  OutcomeAlreadySolved,
			Scenario: sc,
			Attempts: attempts,
		}, nil
	}

	return Result{
		Outcome:  OutcomeFirstSolve,
		Scenario: sc,
		Attempts: attempts,
		SolvedAt: now,
	}, nil
}
