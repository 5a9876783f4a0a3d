package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/protosim/internal/account"
	"github.com/roach88/protosim/internal/validator"
)

// AccountResult is the credential check outcome for one account.
type AccountResult struct {
	Index     int    `json:"index"`
	Address   string `json:"address"`
	Succeeded bool   `json:"succeeded"`
	Template  int    `json:"template"`
	Message   string `json:"message"`
}

// ValidationReport holds the results for an account file.
type ValidationReport struct {
	Source   string          `json:"source"`
	Accounts []AccountResult `json:"accounts"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var accounts string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the credential check over an account file",
		Long: `Run the deterministic credential check over every account and print
each outcome without pacing or progress rendering.

The check never succeeds. The rejection shown for an account is a pure
function of its address and device hash, so repeated runs print the same
messages.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, accounts, cmd)
		},
	}

	cmd.Flags().StringVar(&accounts, "accounts", "", "accounts file (default accounts.json)")
	return cmd
}

func runValidate(opts *RootOptions, accountsFlag string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	path := cfg.AccountsFile
	if cmd.Flags().Changed("accounts") {
		path = accountsFlag
	}

	report := ValidationReport{Source: path, Accounts: []AccountResult{}}
	v := validator.Deterministic{}
	for i, rec := range account.Load(path) {
		outcome := v.Validate(rec.Address, rec.DeviceHash)
		report.Accounts = append(report.Accounts, AccountResult{
			Index:     i + 1,
			Address:   rec.Address,
			Succeeded: outcome.Succeeded,
			Template:  validator.Index(rec.Address, rec.DeviceHash),
			Message:   outcome.Message,
		})
	}

	if len(report.Accounts) == 0 {
		return outputValidateError(formatter, ErrCodeAccounts, "no accounts found in "+path)
	}
	return formatter.Success(report, func(w io.Writer) {
		n := len(report.Accounts)
		for _, r := range report.Accounts {
			fmt.Fprintf(w, "[%d/%d] %s\n", r.Index, n, r.Address)
			fmt.Fprintf(w, "    ❌ Failed: %s\n", r.Message)
		}
		fmt.Fprintf(w, "\n%d of %d account(s) rejected\n", n, n)
	})
}

// outputValidateError writes the error envelope and fails the command.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message)
	return &ExitError{
		Code:     ExitFailure,
		Message:  fmt.Sprintf("%s: %s", code, message),
		Reported: true,
	}
}
