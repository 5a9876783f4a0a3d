package testutil

import (
	"context"
	"sync"
	"time"
)

// Epoch is the instant a FakeClock starts at.
var Epoch = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

// FakeClock is a manual wall clock that doubles as a sleeper.
//
// Sleep never blocks: it advances the clock by the requested duration and
// records it. Elapsed times computed against a FakeClock therefore equal the
// sum of the pauses the code under test asked for.
//
// CancelAfter makes the n-th Sleep call (1-based) fail with context.Canceled,
// simulating an interrupt in the middle of a run.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FakeClock struct {
	mu          sync.Mutex
	now         time.Time
	sleeps      []time.Duration
	cancelAfter int
}

// NewFakeClock creates a clock at Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: Epoch}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleep advances the clock by d and records it.
// It returns ctx.Err() without advancing if ctx is already done.
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	if c.cancelAfter > 0 && len(c.sleeps) == c.cancelAfter {
		return context.Canceled
	}
	c.now = c.now.Add(d)
	return nil
}

// CancelAfter arranges for the n-th Sleep call to return context.Canceled.
// Zero disables it.
func (c *FakeClock) CancelAfter(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelAfter = n
}

// Sleeps returns a copy of every duration passed to Sleep.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Slept returns the total of all recorded sleeps.
func (c *FakeClock) Slept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.sleeps {
		total += d
	}
	return total
}

// Reset returns the clock to Epoch and forgets recorded sleeps.
func (c *FakeClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = Epoch
	c.sleeps = nil
	c.cancelAfter = 0
}
