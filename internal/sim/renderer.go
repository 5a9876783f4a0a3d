package sim

import (
	"time"

	"github.com/roach88/protosim/internal/validator"
)

// Header is the session information shown under the banner.
type Header struct {
	Authenticated    bool
	DeviceHash       string
	ProtectionScore  float64
	Latency          float64
	ActiveValidators int
}

// Renderer draws the session to the user. Implementations must not block.
type Renderer interface {
	StartHeader()
	AccountsLoaded(count int, source string)

	LoginHeader()
	Authenticating(count int, source string)
	AccountProgress(index, total int, label string)
	AccountOutcome(outcome validator.Outcome)
	AuthenticationFailed(source string)
	NoAccounts(source string)
	ProceedingReadOnly()

	Banner()
	SessionHeader(h Header)
	Progress(stage string, index, total int)
	StageError(message string)
	RecoveryFailed()
	Summary(elapsed time.Duration, status string)
}
