package sim

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/roach88/protosim/internal/account"
	"github.com/roach88/protosim/internal/bootstrap"
	"github.com/roach88/protosim/internal/random"
)

// Mode is the user's startup choice.
type Mode int

const (
	// ModeLogin authenticates the loaded accounts before the progress walk.
	ModeLogin Mode = iota + 1
	// ModeReadOnly skips authentication.
	ModeReadOnly
)

func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeReadOnly:
		return "readonly"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeSelector asks the user how to proceed.
type ModeSelector interface {
	SelectMode(ctx context.Context) (Mode, error)
}

// FixedMode is a ModeSelector that never prompts.
type FixedMode Mode

// SelectMode returns m.
func (m FixedMode) SelectMode(context.Context) (Mode, error) {
	return Mode(m), nil
}

// Orchestrator runs a complete session: bootstrap, account loading, mode
// selection, optional login, and one progress walk.
type Orchestrator struct {
	Renderer     Renderer
	Modes        ModeSelector
	Validator    Validator
	Random       *random.Provider
	Clock        Clock
	Sleeper      Sleeper
	Pacing       Pacing
	Bounds       Bounds
	AccountsFile string
	// Hook runs at most once for the lifetime of the Orchestrator, however
	// many times Run is called. Nil means no bootstrap work.
	Hook bootstrap.Hook
	// Init guards Hook. Nil allocates a token on the first Run; share one
	// token across orchestrators to extend the guarantee.
	Init *bootstrap.Token
}

// Run executes the session. The error is non-nil when ctx is cancelled,
// when the mode prompt fails, or when the configuration is invalid.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	// Bootstrap once, then reuse the same token for every session.
	if o.Init == nil {
		o.Init = bootstrap.New()
	}
	session := NewSession(o.Clock)
	session.Init = o.Init
	if err := session.Init.Fire(o.Hook); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	slog.Debug("session started", "session", session.ID)

	// Bounds are checked before anything is rendered.
	reporter, err := NewReporter(ReporterConfig{
		Renderer: o.Renderer,
		Random:   o.Random,
		Clock:    o.Clock,
		Sleeper:  o.Sleeper,
		Pacing:   o.Pacing,
		Bounds:   o.Bounds,
	})
	if err != nil {
		return nil, err
	}
	pacer := NewPacer(o.Random, o.Sleeper)
	source := filepath.Base(o.AccountsFile)

	// Load accounts; a missing or malformed file yields none.
	o.Renderer.StartHeader()
	accounts := account.Load(o.AccountsFile)
	o.Renderer.AccountsLoaded(len(accounts), source)
	if err := pacer.Pause(ctx, o.Pacing.Startup); err != nil {
		return nil, err
	}

	mode, err := o.Modes.SelectMode(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("mode selected", "session", session.ID, "mode", mode.String())

	// Login never succeeds; it always ends in read-only mode.
	authenticated := false
	if mode == ModeLogin {
		auth := NewAuthenticator(o.Renderer, o.Validator, pacer, o.Pacing, source)
		authenticated, err = auth.Authenticate(ctx, accounts)
		if err != nil {
			return nil, err
		}
		if !authenticated {
			o.Renderer.ProceedingReadOnly()
			if err := pacer.Pause(ctx, o.Pacing.Notice); err != nil {
				return nil, err
			}
		}
	}

	// Progress walk, from banner to summary.
	return reporter.Run(ctx, session, authenticated)
}
