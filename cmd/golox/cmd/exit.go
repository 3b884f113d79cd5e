package cmd

import (
	"fmt"

	"github.com/cwbudde/golox/pkg/golox"
)

// ExitError carries the process exit code a command should terminate
// with, so main can translate a failed run into the exact code spec'd
// for the CLI (0 success, 1 usage error, 2 scan/parse/static error, 3
// runtime error) instead of collapsing every failure to 1.
type ExitError struct {
	Code golox.ExitCode
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
