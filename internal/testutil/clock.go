package testutil

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock reads so ledger timestamps can be pinned in
// tests.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a configurable instant, advancing by a fixed step on
// every read so successive records remain ordered.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewFixedClock creates a FixedClock starting at start, advancing by step
// per Now call. A zero step pins the clock entirely.
func NewFixedClock(start time.Time, step time.Duration) *FixedClock {
	return &FixedClock{now: start.UTC(), step: step}
}

// Now implements Clock. Returns the current instant, then advances.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Set resets the clock to the given instant.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}
