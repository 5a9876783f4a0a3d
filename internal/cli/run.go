package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/protosim/internal/config"
	"github.com/roach88/protosim/internal/console"
	"github.com/roach88/protosim/internal/sim"
	"github.com/roach88/protosim/internal/validator"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Mode     string // "" prompts; "login" or "readonly" skip the menu
	Accounts string
	Fast     bool
	Seed     uint64

	// Clock and Sleeper allow overriding wall time (for testing).
	// If nil, the system clock and real timers are used.
	Clock   sim.Clock
	Sleeper sim.Sleeper
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulated session",
		Long: `Run one simulated session.

Loads accounts, asks whether to log in, optionally runs the (always
rejecting) credential check, then renders staged progress over the fixed
operation list with randomly injected synthetic errors. The session always
ends INCOMPLETE.

Example:
  protosim run
  protosim run --mode readonly --fast
  protosim run --mode login --accounts ./wallets.json --seed 7`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd)
		},
	}

	bindRunFlags(cmd, opts)
	return cmd
}

func bindRunFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "skip the menu: login|readonly")
	cmd.Flags().StringVar(&opts.Accounts, "accounts", "", "accounts file (default accounts.json)")
	cmd.Flags().BoolVar(&opts.Fast, "fast", false, "disable all pacing delays")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for a reproducible run (0 = unseeded)")
}

// applyRunFlags overlays explicitly set flags onto cfg.
func applyRunFlags(cmd *cobra.Command, opts *RunOptions, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("accounts") {
		cfg.AccountsFile = opts.Accounts
	}
	if flags.Changed("fast") {
		cfg.Fast = opts.Fast
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.Seed
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitFailure, "invalid flags", err)
	}
	return nil
}

func modeSelector(opts *RunOptions, cmd *cobra.Command, out *console.Console) (sim.ModeSelector, error) {
	switch opts.Mode {
	case "":
		return console.NewPrompter(out, cmd.InOrStdin()), nil
	case sim.ModeLogin.String():
		return sim.FixedMode(sim.ModeLogin), nil
	case sim.ModeReadOnly.String():
		return sim.FixedMode(sim.ModeReadOnly), nil
	default:
		return nil, NewExitError(ExitFailure, fmt.Sprintf("invalid mode %q: must be login or readonly", opts.Mode))
	}
}

func runSession(opts *RunOptions, cmd *cobra.Command) error {
	// Resolve configuration: defaults, file, environment, then flags
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, opts, cfg); err != nil {
		return err
	}

	// Console output and the startup menu share stdout
	out := console.New(cmd.OutOrStdout(), cfg.Width, cfg.BarWidth)
	modes, err := modeSelector(opts, cmd, out)
	if err != nil {
		return err
	}

	// Use injected clock/sleeper if provided (for testing), else real time
	clock := opts.Clock
	if clock == nil {
		clock = sim.SystemClock{}
	}
	sleeper := opts.Sleeper
	if sleeper == nil {
		sleeper = sim.TimerSleeper{}
	}

	// Assemble the session
	orch := &sim.Orchestrator{
		Renderer:     out,
		Modes:        modes,
		Validator:    validator.Deterministic{},
		Random:       newRandom(cfg.Seed),
		Clock:        clock,
		Sleeper:      sleeper,
		Pacing:       cfg.SimPacing(),
		Bounds:       cfg.Bounds(),
		AccountsFile: cfg.AccountsFile,
	}

	// Use command's context if available, otherwise a background one
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	slog.Debug("session configured", "accounts", cfg.AccountsFile, "fast", cfg.Fast, "seed", cfg.Seed)
	// Run it; cancellation passes through so Execute can report the interrupt
	report, err := orch.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return WrapExitError(ExitFailure, "session failed", err)
	}

	slog.Debug("session finished",
		"session", report.SessionID,
		"stages", len(report.Stages),
		"errors", len(report.Errors),
		"elapsed", report.Elapsed,
		"status", report.Status)
	return nil
}
