package sim

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/protosim/internal/bootstrap"
	"github.com/roach88/protosim/internal/random"
	"github.com/roach88/protosim/internal/testutil"
)

func newTestOrchestrator(t *testing.T, rec *recorder, mode ModeSelector, accountsJSON string) (*Orchestrator, *spyValidator) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.json")
	if accountsJSON != "" {
		require.NoError(t, os.WriteFile(path, []byte(accountsJSON), 0644))
	}
	clock := testutil.NewFakeClock()
	spy := &spyValidator{}
	return &Orchestrator{
		Renderer:     rec,
		Modes:        mode,
		Validator:    spy,
		Random:       random.NewSeeded(11),
		Clock:        clock,
		Sleeper:      clock,
		Pacing:       DefaultPacing(),
		Bounds:       DefaultBounds,
		AccountsFile: path,
	}, spy
}

func TestOrchestrator_ReadOnlySkipsLogin(t *testing.T) {
	rec := &recorder{}
	o, spy := newTestOrchestrator(t, rec, FixedMode(ModeReadOnly), `[{"Address":"0xaaa","deviceHash":"d"}]`)

	report, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, spy.calls)
	assert.Equal(t, []string{"start", "loaded 1 accounts.json", "banner", "header false"}, rec.events[:4])
	assert.Zero(t, rec.count("login"))
	assert.Equal(t, StatusIncomplete, report.Status)
	assert.Len(t, report.Stages, 13)
}

func TestOrchestrator_LoginFallsBackToReadOnly(t *testing.T) {
	rec := &recorder{}
	o, spy := newTestOrchestrator(t, rec, FixedMode(ModeLogin),
		`[{"Address":"0xaaa","deviceHash":"d1"},{"Address":"0xbbb","deviceHash":"d2"}]`)

	report, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, spy.calls, 2)
	assert.Equal(t, 1, rec.count("auth failed"))
	assert.Equal(t, 1, rec.count("readonly"))
	require.NotNil(t, rec.header)
	assert.False(t, rec.header.Authenticated)
	assert.Equal(t, StatusIncomplete, report.Status)
}

func TestOrchestrator_MissingAccountsFile(t *testing.T) {
	rec := &recorder{}
	o, spy := newTestOrchestrator(t, rec, FixedMode(ModeLogin), "")

	_, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, spy.calls)
	assert.Contains(t, rec.events, "loaded 0 accounts.json")
	assert.Contains(t, rec.events, "no accounts accounts.json")
}

func TestOrchestrator_HookFiresOnce(t *testing.T) {
	calls := 0
	o, _ := newTestOrchestrator(t, &recorder{}, FixedMode(ModeReadOnly), "")
	o.Hook = func() error {
		calls++
		return nil
	}

	_, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestOrchestrator_HookFiresOnceAcrossRuns(t *testing.T) {
	calls := 0
	o, _ := newTestOrchestrator(t, &recorder{}, FixedMode(ModeReadOnly), "")
	o.Hook = func() error {
		calls++
		return nil
	}

	for i := 0; i < 3; i++ {
		_, err := o.Run(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
	require.NotNil(t, o.Init)
	assert.True(t, o.Init.Fired())
}

func TestOrchestrator_SharedTokenAcrossOrchestrators(t *testing.T) {
	calls := 0
	hook := func() error {
		calls++
		return nil
	}
	token := bootstrap.New()

	for i := 0; i < 2; i++ {
		o, _ := newTestOrchestrator(t, &recorder{}, FixedMode(ModeReadOnly), "")
		o.Hook = hook
		o.Init = token
		_, err := o.Run(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestOrchestrator_ElapsedExcludesStartupAndLogin(t *testing.T) {
	rec := &recorder{}
	o, _ := newTestOrchestrator(t, rec, FixedMode(ModeLogin), `[{"Address":"0xaaa","deviceHash":"d1"}]`)
	clock := o.Clock.(*testutil.FakeClock)

	report, err := o.Run(context.Background())
	require.NoError(t, err)

	// Before the banner: startup, account, validate, settle and notice pauses.
	const preBanner = 5
	sleeps := clock.Sleeps()
	require.Len(t, sleeps, preBanner+13+len(report.Injected))

	var walk time.Duration
	for _, d := range sleeps[preBanner:] {
		walk += d
	}
	assert.Equal(t, walk, report.Elapsed)
	assert.Less(t, report.Elapsed, clock.Slept())
}

func TestOrchestrator_HookFailureAborts(t *testing.T) {
	rec := &recorder{}
	o, _ := newTestOrchestrator(t, rec, FixedMode(ModeReadOnly), "")
	o.Hook = func() error { return errors.New("boom") }

	_, err := o.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap")
	assert.Empty(t, rec.events)
}

type failingModes struct{ err error }

func (f failingModes) SelectMode(context.Context) (Mode, error) { return 0, f.err }

func TestOrchestrator_ModeSelectionError(t *testing.T) {
	boom := errors.New("stdin closed")
	o, _ := newTestOrchestrator(t, &recorder{}, failingModes{err: boom}, "")

	_, err := o.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestOrchestrator_InvalidBounds(t *testing.T) {
	o, _ := newTestOrchestrator(t, &recorder{}, FixedMode(ModeReadOnly), "")
	o.Bounds = Bounds{Min: 0, Max: 2}

	_, err := o.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidBounds)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "login", ModeLogin.String())
	assert.Equal(t, "readonly", ModeReadOnly.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
