package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExitError carries a specific process exit code through cobra's error
// return without printing anything further; the command has already
// written its diagnostics.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit returns an ExitError with the given code.
func Exit(code int) error {
	return &ExitError{Code: code}
}

// usageError prints the command's usage text to stdout and returns exit
// code 1. Malformed invocations are reported, never a crash.
func usageError(cmd *cobra.Command) error {
	fmt.Print(cmd.UsageString())
	return Exit(1)
}
