package session

import "sync/atomic"

// Clock is a monotonic logical clock for stamping decisions.
//
// Every decision appended to a run's log carries a strictly increasing seq
// from this clock. Wall-clock timestamps are never used for ordering; the
// seq column is what makes replay deterministic.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the Session's single-writer design means only one goroutine
// typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
// Used on resume so new decisions extend the log past the last logged seq.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
