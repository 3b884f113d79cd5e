package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/pkg/golox"
	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "golox",
	Short: "A tree-walking interpreter for Lox",
	Long: `golox is a Go implementation of the Lox scripting language
described in Crafting Interpreters: dynamically typed, lexically
scoped, with closures and single-inheritance classes.

Run a script file, evaluate inline source, or start an interactive
prompt with no arguments.`,
	Version: Version,
	Run: func(_ *cobra.Command, _ []string) {
		golox.RunPrompt(os.Stdin, os.Stdout)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
