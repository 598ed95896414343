package solve

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.trainer/pkg/scenario"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	r, err := scenario.NewRegistry([]scenario.Scenario{
		{Key: "idor", Name: "IDOR", Difficulty: 3},
		{Key: "xss", Name: "XSS", Difficulty: 1},
	})
	require.NoError(t, err)
	return NewStore(r)
}

func TestStore_TrySolve_Once(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	won, err := s.TrySolve("idor", now)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = s.TrySolve("idor", now.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, won)

	snap, err := s.Get("idor")
	require.NoError(t, err)
	require.NotNil(t, snap.SolvedAt)
	assert.True(t, snap.SolvedAt.Equal(now))
}

func TestStore_TrySolve_SingleWinnerUnderContention(t *testing.T) {
	s := newTestStore(t)

	const callers = 64
	var wg sync.WaitGroup
	wins := make(chan bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := s.TrySolve("idor", time.Now())
			assert.NoError(t, err)
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestStore_IncrementAttempts_Concurrent(t *testing.T) {
	s := newTestStore(t)

	const callers = 100
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.IncrementAttempts("idor")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(callers), s.Attempts("idor"))
}

func TestStore_UnknownKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.IncrementAttempts("missing")
	assert.True(t, errors.Is(err, scenario.ErrNotFound))

	_, err = s.TrySolve("missing", time.Now())
	assert.True(t, errors.Is(err, scenario.ErrNotFound))

	_, err = s.Get("missing")
	assert.True(t, errors.Is(err, scenario.ErrNotFound))

	assert.False(t, s.Solved("missing"))
	assert.Zero(t, s.Attempts("missing"))
}

func TestStore_SetClassification(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.Get("idor")
	require.NoError(t, err)
	assert.Equal(
		t, ClassificationUnclassified, snap.Classification,
	)

	require.NoError(
		t, s.SetClassification("idor", ClassificationSuspect),
	)

	snap, err = s.Get("idor")
	require.NoError(t, err)
	assert.Equal(
		t, ClassificationSuspect, snap.Classification,
	)
}

func TestStore_All(t *testing.T) {
	s := newTestStore(t)

	_, err := s.TrySolve("idor", time.Now())
	require.NoError(t, err)

	snaps := s.All()
	require.Len(t, snaps, 2)

	solved := 0
	for _, snap := range snaps {
		if snap.Solved {
			solved++
		}
	}
	assert.Equal(t, 1, solved)
}
