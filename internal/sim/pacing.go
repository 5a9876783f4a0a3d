package sim

import (
	"context"
	"time"

	"github.com/roach88/protosim/internal/random"
)

// Clock supplies wall-clock time for session timing and device hashes.
type Clock interface {
	Now() time.Time
}

// Sleeper blocks for d or until ctx is done, whichever comes first.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// TimerSleeper sleeps on a real timer.
type TimerSleeper struct{}

// Sleep blocks for d. It returns ctx.Err() if ctx ends first.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Window is a closed interval a pause is drawn from.
type Window struct {
	Min time.Duration
	Max time.Duration
}

// Fixed returns a window that always yields d.
func Fixed(d time.Duration) Window {
	return Window{Min: d, Max: d}
}

// Pacing holds every delay the simulator uses.
type Pacing struct {
	Stage    Window // after each progress render
	Recovery Window // between "attempting recovery" and its failure
	Account  Window // after each account progress line
	Validate Window // inside the credential check
	Settle   Window // after the authentication report
	Startup  Window // after loading accounts
	Notice   Window // after "proceeding in read-only mode"
}

// DefaultPacing approximates human-perceptible pacing.
func DefaultPacing() Pacing {
	return Pacing{
		Stage:    Window{Min: 500 * time.Millisecond, Max: 1200 * time.Millisecond},
		Recovery: Window{Min: 700 * time.Millisecond, Max: 1400 * time.Millisecond},
		Account:  Window{Min: 500 * time.Millisecond, Max: 1000 * time.Millisecond},
		Validate: Window{Min: 1000 * time.Millisecond, Max: 1800 * time.Millisecond},
		Settle:   Fixed(2 * time.Second),
		Startup:  Fixed(time.Second),
		Notice:   Fixed(time.Second),
	}
}

// Pacer turns windows into blocking pauses.
type Pacer struct {
	rng     *random.Provider
	sleeper Sleeper
}

// NewPacer returns a pacer drawing from rng and sleeping on sleeper.
func NewPacer(rng *random.Provider, sleeper Sleeper) *Pacer {
	return &Pacer{rng: rng, sleeper: sleeper}
}

// Pause sleeps for a duration drawn uniformly from w.
func (p *Pacer) Pause(ctx context.Context, w Window) error {
	return p.sleeper.Sleep(ctx, p.rng.Duration(w.Min, w.Max))
}
