package sim

import (
	"context"

	"github.com/roach88/protosim/internal/account"
	"github.com/roach88/protosim/internal/validator"
)

// labelWidth is how many address characters the progress line shows.
const labelWidth = 20

// Validator checks one account's credentials.
type Validator interface {
	Validate(address, deviceHash string) validator.Outcome
}

// Authenticator runs the login step over the loaded accounts.
type Authenticator struct {
	renderer  Renderer
	validator Validator
	pacer     *Pacer
	pacing    Pacing
	source    string
}

// NewAuthenticator returns an authenticator. source names the account file
// in user-facing text.
func NewAuthenticator(renderer Renderer, v Validator, pacer *Pacer, pacing Pacing, source string) *Authenticator {
	return &Authenticator{
		renderer:  renderer,
		validator: v,
		pacer:     pacer,
		pacing:    pacing,
		source:    source,
	}
}

// Authenticate validates every account in order and reports the result.
//
// The returned bool is always false: the login step has no success path and
// the caller falls back to read-only mode. An empty account list skips
// validation entirely. The error is non-nil only when ctx is cancelled.
func (a *Authenticator) Authenticate(ctx context.Context, accounts []account.Record) (bool, error) {
	a.renderer.LoginHeader()

	if len(accounts) == 0 {
		a.renderer.NoAccounts(a.source)
		return false, a.pacer.Pause(ctx, a.pacing.Settle)
	}

	a.renderer.Authenticating(len(accounts), a.source)
	for i, acct := range accounts {
		a.renderer.AccountProgress(i+1, len(accounts), acct.Label(labelWidth))
		if err := a.pacer.Pause(ctx, a.pacing.Account); err != nil {
			return false, err
		}
		if err := a.pacer.Pause(ctx, a.pacing.Validate); err != nil {
			return false, err
		}

		outcome := a.validator.Validate(acct.Address, acct.DeviceHash)
		a.renderer.AccountOutcome(outcome)
	}

	a.renderer.AuthenticationFailed(a.source)
	if err := a.pacer.Pause(ctx, a.pacing.Settle); err != nil {
		return false, err
	}
	return false, nil
}
