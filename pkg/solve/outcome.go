// Package solve provides the mutable core of the verification
// engine: per-scenario solve state with single-winner
// compare-and-set transitions, and the evaluator that performs
// them on behalf of request handlers.
package solve

// Outcome classifies the result of a verification attempt.
// Outcomes are not errors; callers are expected to handle each
// variant explicitly.
type Outcome string

const (
	// OutcomeInactive means the scenario is disabled under
	// the current profile. No state was mutated.
	OutcomeInactive Outcome = "inactive"

	// OutcomeNotSolved means the caller's predicate returned
	// false. The attempt was counted but nothing else changed.
	OutcomeNotSolved Outcome = "not_solved"

	// OutcomeFirstSolve means this caller won the solve
	// transition. Exactly one attempt per scenario per process
	// lifetime observes this outcome.
	OutcomeFirstSolve Outcome = "first_solve"

	// OutcomeAlreadySolved means the scenario was solved by an
	// earlier or concurrent attempt. Idempotent; nothing
	// changed.
	OutcomeAlreadySolved Outcome = "already_solved"
)

// Classification tags how a completed solve was achieved.
type Classification string

const (
	// ClassificationUnclassified is the initial state before
	// the anti-cheat correlator has annotated a solve.
	ClassificationUnclassified Classification = "unclassified"

	// ClassificationLegitimate means the solve was preceded by
	// at least one interaction through the scenario's intended
	// attack surface.
	ClassificationLegitimate Classification = "legitimate"

	// ClassificationSuspect means the solve fired without any
	// intended-path interaction on record, e.g., via a direct
	// administrative path or a scripted replay.
	ClassificationSuspect Classification = "suspect"
)

// Predicate is a side-effect-free exploit check supplied by the
// caller. The caller owns the detection logic; the evaluator
// owns only the transition.
type Predicate func() bool
