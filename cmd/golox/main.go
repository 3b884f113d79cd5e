// Command golox is a tree-walking interpreter for the Lox language.
package main

import (
	"errors"
	"os"

	"github.com/cwbudde/golox/cmd/golox/cmd"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		os.Exit(0)
	}

	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(int(exitErr.Code))
	}

	// A cobra usage error (bad flags, unknown command) carries no
	// ExitError, so it falls back to the generic usage-error code.
	os.Exit(1)
}
