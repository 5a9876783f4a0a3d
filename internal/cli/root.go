package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/protosim/internal/config"
	"github.com/roach88/protosim/internal/random"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional YAML or CUE config file
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Running it without a subcommand
// runs a session, like "protosim run".
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	runOpts := &RunOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "protosim",
		Short: "protosim - protection network client simulator",
		Long: `A console simulation of a protection network client.

Every device identifier, score, latency and node configuration shown is
synthesized locally. No network, credential or whitelist operation is ever
performed; the login step always rejects.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitFailure, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			configureLogging(cmd, opts.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(runOpts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (.yaml, .yml, .json or .cue)")
	bindRunFlags(cmd, runOpts)

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewStagesCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

// configureLogging sends structured logs to stderr; --verbose enables debug.
func configureLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves the config file and environment for a command.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to load configuration", err)
	}
	return cfg, nil
}

// newRandom returns a seeded provider when seed is non-zero.
func newRandom(seed uint64) *random.Provider {
	if seed != 0 {
		return random.NewSeeded(seed)
	}
	return random.New()
}
