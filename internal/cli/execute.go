package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Execute runs the CLI with args and returns the process exit code.
//
// Cancellation of ctx (the caller wires it to SIGINT/SIGTERM) is reported as
// a user interruption and exits ExitInterrupted. Errors a command already
// reported only set the exit code. Any other error prints a one-line critical
// error and exits with the error's code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr) && exitErr.Reported:
		return exitErr.Code
	case errors.Is(err, context.Canceled):
		fmt.Fprint(stdout, "\n\n⚠️  Bot terminated by user.\n")
		return ExitInterrupted
	default:
		fmt.Fprintf(stdout, "\n\n❌ Critical error: %v\n", err)
		return GetExitCode(err)
	}
}
