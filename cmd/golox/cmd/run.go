package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/interp"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/cwbudde/golox/pkg/golox"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox file or expression",
	Long: `Execute a Lox program from a file or inline expression. With no
file and no -e flag, golox starts an interactive prompt on stdin.

Examples:
  # Run a script file
  golox run script.lox

  # Evaluate an inline expression
  golox run -e "print 1 + 2;"

  # Run with AST dump (for debugging)
  golox run --dump-ast script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,

	// runScript reports its own diagnostics to stderr before returning
	// an ExitError; cobra's default "Error: ..." + usage dump would
	// just repeat that.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var (
		source   string
		filename string
	)

	switch {
	case evalExpr != "":
		source = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read file %s: %v\n", filename, err)
			return &ExitError{Code: golox.ExitUsage}
		}
		source = string(content)
	default:
		golox.RunPrompt(os.Stdin, os.Stdout)
		return nil
	}

	l := lexer.New(source)
	tokens := l.ScanTokens()
	if len(l.Errors()) > 0 {
		diags := make([]*errors.Diagnostic, len(l.Errors()))
		for i, e := range l.Errors() {
			diags[i] = errors.NewDiagnostic(e.Pos, e.Message, source, filename)
		}
		fmt.Fprintln(os.Stderr, errors.FormatDiagnostics(diags, true))
		return &ExitError{Code: golox.ExitStatic}
	}

	p := parser.NewFromTokens(tokens)
	program := p.ParseProgram()
	if p.HadError() {
		diags := make([]*errors.Diagnostic, len(p.Errors()))
		for i, e := range p.Errors() {
			diags[i] = errors.NewDiagnostic(e.Token.Pos, e.Error(), source, filename)
		}
		fmt.Fprintln(os.Stderr, errors.FormatDiagnostics(diags, true))
		return &ExitError{Code: golox.ExitStatic}
	}

	res := resolver.New()
	table := res.Resolve(program)
	if res.HadError() {
		diags := make([]*errors.Diagnostic, len(res.Errors()))
		for i, e := range res.Errors() {
			diags[i] = errors.NewDiagnostic(e.Token.Pos, e.Message, source, filename)
		}
		fmt.Fprintln(os.Stderr, errors.FormatDiagnostics(diags, true))
		return &ExitError{Code: golox.ExitStatic}
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[Trace mode enabled - executing %s]\n", filename)
	}

	interpreter := interp.New(os.Stdout)
	if runtimeErr := interpreter.Interpret(program, table); runtimeErr != nil {
		fmt.Fprintln(os.Stderr, runtimeErr.Error())
		return &ExitError{Code: golox.ExitRuntime}
	}

	return nil
}
