// Package idle provides the idle-time scheduling primitive the engine runs
// on: a callback registered with RequestIdleCallback runs once, receiving a
// Deadline that reports how much of the current slice is left.
//
// Loop is the production scheduler: one goroutine that owns everything
// scheduled on it. Manual is a deterministic scheduler for tests.
package idle

import (
	"math"
	"time"
)

// Deadline reports the time remaining in the current idle slice.
type Deadline interface {
	TimeRemaining() time.Duration
}

// Callback is invoked once per registration.
type Callback func(Deadline)

// Scheduler registers idle callbacks.
type Scheduler interface {
	RequestIdleCallback(cb Callback)
}

// Unbounded never runs out of time.
type Unbounded struct{}

// TimeRemaining implements Deadline.
func (Unbounded) TimeRemaining() time.Duration { return math.MaxInt64 }

// ClockDeadline expires at a wall-clock instant.
type ClockDeadline struct {
	End time.Time
	Now func() time.Time
}

// TimeRemaining implements Deadline.
func (d ClockDeadline) TimeRemaining() time.Duration {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	if r := d.End.Sub(now()); r > 0 {
		return r
	}
	return 0
}

// Budget grants a fixed number of checks. The first n calls to
// TimeRemaining report a full slice, every later call reports zero. It
// makes yield points deterministic in tests: a Budget of n lets the engine
// perform exactly n+1 units before yielding.
type Budget struct {
	left  int
	slice time.Duration
}

// NewBudget returns a deadline allowing n checks before expiring.
func NewBudget(n int) *Budget {
	return &Budget{left: n, slice: 50 * time.Millisecond}
}

// TimeRemaining implements Deadline.
func (b *Budget) TimeRemaining() time.Duration {
	if b.left <= 0 {
		return 0
	}
	b.left--
	return b.slice
}
