package solve

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.trainer/pkg/profile"
	"digital.vasic.trainer/pkg/scenario"
)

func alwaysTrue() bool  { return true }
func alwaysFalse() bool { return false }

// swappableProfile lets tests change the active profile
// between attempts.
type swappableProfile struct {
	mu sync.Mutex
	p  *profile.Profile
}

func (s *swappableProfile) Current() *profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p
}

func (s *swappableProfile) set(p *profile.Profile) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func newTestEvaluator(
	t *testing.T, profileName string,
) (*Evaluator, *Store) {
	t.Helper()

	r, err := scenario.NewRegistry([]scenario.Scenario{
		{Key: "sql-injection", Name: "SQL Injection", Difficulty: 2},
		{
			Key:        "xss",
			Name:       "XSS",
			Difficulty: 1,
			DisabledIn: []string{"demo"},
		},
		{Key: "idor", Name: "IDOR", Difficulty: 3},
	})
	require.NoError(t, err)

	store := NewStore(r)
	ev := NewEvaluator(
		r,
		StaticProfile{Profile: &profile.Profile{
			Name: profileName,
		}},
		store,
	)
	return ev, store
}

func TestEvaluator_Attempt_UnknownScenario(t *testing.T) {
	ev, _ := newTestEvaluator(t, "classroom")

	_, err := ev.Attempt("missing", alwaysTrue)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scenario.ErrNotFound))
}

func TestEvaluator_Attempt_Inactive_NoMutation(t *testing.T) {
	ev, store := newTestEvaluator(t, "demo")

	res, err := ev.Attempt("xss", alwaysTrue)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInactive, res.Outcome)

	// Inactive attempts must not touch the solve state, even
	// with a true predicate.
	assert.False(t, store.Solved("xss"))
	assert.Zero(t, store.Attempts("xss"))
}

func TestEvaluator_Attempt_NotSolved(t *testing.T) {
	ev, store := newTestEvaluator(t, "classroom")

	res, err := ev.Attempt("xss", alwaysFalse)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotSolved, res.Outcome)

	assert.False(t, store.Solved("xss"))
	assert.Equal(t, int64(1), store.Attempts("xss"))
}

func TestEvaluator_Attempt_FirstThenAlready(t *testing.T) {
	ev, _ := newTestEvaluator(t, "classroom")

	res, err := ev.Attempt("sql-injection", alwaysTrue)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFirstSolve, res.Outcome)
	assert.False(t, res.SolvedAt.IsZero())

	res, err = ev.Attempt("sql-injection", alwaysTrue)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadySolved, res.Outcome)
}

func TestEvaluator_Attempt_SolvedAtNeverChanges(t *testing.T) {
	ev, store := newTestEvaluator(t, "classroom")

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	current := base
	ev.WithClock(func() time.Time { return current })

	_, err := ev.Attempt("idor", alwaysTrue)
	require.NoError(t, err)

	current = base.Add(time.Hour)
	_, err = ev.Attempt("idor", alwaysTrue)
	require.NoError(t, err)

	snap, err := store.Get("idor")
	require.NoError(t, err)
	require.NotNil(t, snap.SolvedAt)
	assert.True(t, snap.SolvedAt.Equal(base))
}

func TestEvaluator_Attempt_ProfileSwapBetweenCalls(t *testing.T) {
	r, err := scenario.NewRegistry([]scenario.Scenario{
		{
			Key:        "xss",
			Name:       "XSS",
			Difficulty: 1,
			DisabledIn: []string{"demo"},
		},
	})
	require.NoError(t, err)

	src := &swappableProfile{
		p: &profile.Profile{Name: "demo"},
	}
	ev := NewEvaluator(r, src, NewStore(r))

	res, err := ev.Attempt("xss", alwaysTrue)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInactive, res.Outcome)

	src.set(&profile.Profile{Name: "classroom"})

	res, err = ev.Attempt("xss", alwaysTrue)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFirstSolve, res.Outcome)
}

func TestEvaluator_Attempt_ConcurrentSingleWinner(t *testing.T) {
	ev, store := newTestEvaluator(t, "classroom")

	const callers = 50
	outcomes := make(chan Outcome, callers)

	var start, done sync.WaitGroup
	start.Add(1)
	for i := 0; i < callers; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			res, err := ev.Attempt("idor", alwaysTrue)
			assert.NoError(t, err)
			outcomes <- res.Outcome
		}()
	}
	start.Done()
	done.Wait()
	close(outcomes)

	var first, already int
	for o := range outcomes {
		switch o {
		case OutcomeFirstSolve:
			first++
		case OutcomeAlreadySolved:
			already++
		default:
			t.Fatalf("unexpected outcome: %s", o)
		}
	}

	assert.Equal(t, 1, first)
	assert.Equal(t, callers-1, already)
	assert.Equal(t, int64(callers), store.Attempts("idor"))
}

func TestEvaluator_Attempt_MalformedProfile(t *testing.T) {
	r, err := scenario.NewRegistry([]scenario.Scenario{
		{Key: "idor", Name: "IDOR", Difficulty: 3},
	})
	require.NoError(t, err)

	ev := NewEvaluator(
		r,
		StaticProfile{Profile: &profile.Profile{}},
		NewStore(r),
	)

	_, err = ev.Attempt("idor", alwaysTrue)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
