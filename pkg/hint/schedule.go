package hint

import "time"

// Default unlock thresholds. Hint n unlocks after n*k attempts
// or n*t elapsed, whichever comes first.
const (
	DefaultAttemptsPerHint = 5
	DefaultUnlockInterval  = 10 * time.Minute
)

// Schedule defines when hints unlock. Hint n (1-based) becomes
// available once attempts >= n*AttemptsPerHint or elapsed >=
// n*UnlockInterval. The two tracks run independently; whichever
// has progressed further wins.
type Schedule struct {
	// AttemptsPerHint is the attempt cost of each hint. Zero
	// or negative disables attempt-driven unlocking.
	AttemptsPerHint int64

	// UnlockInterval is the wall-clock cost of each hint.
	// Zero or negative disables time-driven unlocking.
	UnlockInterval time.Duration
}

// DefaultSchedule returns the stock unlock schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		AttemptsPerHint: DefaultAttemptsPerHint,
		UnlockInterval:  DefaultUnlockInterval,
	}
}

// UnlockedCount returns how many hints are available given the
// attempt count and elapsed active time, capped at total.
func (s Schedule) UnlockedCount(
	attempts int64, elapsed time.Duration, total int,
) int {
	if total <= 0 {
		return 0
	}

	var byAttempts, byTime int
	if s.AttemptsPerHint > 0 {
		byAttempts = int(attempts / s.AttemptsPerHint)
	}
	if s.UnlockInterval > 0 {
		byTime = int(elapsed / s.UnlockInterval)
	}

	n := byAttempts
	if byTime > n {
		n = byTime
	}
	if n > total {
		n = total
	}
	return n
}
