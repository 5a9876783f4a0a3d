package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/roach88/protosim/internal/bootstrap"
)

// Session is the state of one simulated run. It is never persisted.
type Session struct {
	// ID correlates log lines for the run (UUIDv7, time ordered).
	ID    string
	Start time.Time
	// Init guards the one-time bootstrap hook for this session.
	Init *bootstrap.Token

	clock Clock
}

// NewSession starts a session at clock.Now().
func NewSession(clock Clock) *Session {
	return &Session{
		ID:    uuid.Must(uuid.NewV7()).String(),
		Start: clock.Now(),
		Init:  bootstrap.New(),
		clock: clock,
	}
}

// Begin restarts the session clock. The closing summary measures from the
// banner, not from process start.
func (s *Session) Begin() {
	s.Start = s.clock.Now()
}

// Elapsed returns wall-clock time since Start.
func (s *Session) Elapsed() time.Duration {
	return s.clock.Now().Sub(s.Start)
}
