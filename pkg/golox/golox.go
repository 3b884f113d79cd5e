// Package golox is the public facade for embedding the interpreter as a
// library: Run evaluates a single source string, RunFile reads and runs
// a script, and RunPrompt drives a line-at-a-time REPL. Callers that
// only need to execute Lox source don't need to reach into internal/.
package golox

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/interp"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
)

// ExitCode mirrors the process exit codes described for the CLI:
// 0 success, 1 usage error, 2 scan/parse/static error, 3 runtime error.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	ExitUsage   ExitCode = 1
	ExitStatic  ExitCode = 2
	ExitRuntime ExitCode = 3
)

// Runner holds the interpreter and its mutable global environment
// across multiple Run calls, so a REPL session's variable bindings
// persist from one line to the next the way Lox.cpp's runPrompt does.
type Runner struct {
	interp *interp.Interpreter
	stdout io.Writer
}

// NewRunner creates a Runner writing Print output to stdout.
func NewRunner(stdout io.Writer) *Runner {
	return &Runner{interp: interp.New(stdout), stdout: stdout}
}

// Run scans, parses, resolves, and evaluates source, reporting to stderr
// the diagnostics of the first stage that fails and returning the
// matching exit code.
// A scan or parse or resolve error skips evaluation entirely.
func (r *Runner) Run(source string) ExitCode {
	l := lexer.New(source)
	tokens := l.ScanTokens()
	if len(l.Errors()) > 0 {
		diags := make([]*errors.Diagnostic, len(l.Errors()))
		for i, e := range l.Errors() {
			diags[i] = errors.NewDiagnostic(e.Pos, e.Message, source, "")
		}
		fmt.Fprintln(os.Stderr, errors.FormatDiagnostics(diags, false))
		return ExitStatic
	}

	p := parser.NewFromTokens(tokens)
	prog := p.ParseProgram()
	if p.HadError() {
		diags := make([]*errors.Diagnostic, len(p.Errors()))
		for i, e := range p.Errors() {
			diags[i] = errors.NewDiagnostic(e.Token.Pos, e.Error(), source, "")
		}
		fmt.Fprintln(os.Stderr, errors.FormatDiagnostics(diags, false))
		return ExitStatic
	}

	res := resolver.New()
	table := res.Resolve(prog)
	if res.HadError() {
		diags := make([]*errors.Diagnostic, len(res.Errors()))
		for i, e := range res.Errors() {
			diags[i] = errors.NewDiagnostic(e.Token.Pos, e.Message, source, "")
		}
		fmt.Fprintln(os.Stderr, errors.FormatDiagnostics(diags, false))
		return ExitStatic
	}

	if runtimeErr := r.interp.Interpret(prog, table); runtimeErr != nil {
		reportRuntimeError(runtimeErr)
		return ExitRuntime
	}

	return ExitSuccess
}

func reportRuntimeError(err *errors.RuntimeError) {
	fmt.Fprintln(os.Stderr, err.Error())
}

// Run is a one-shot convenience wrapper: evaluate source against a
// fresh Runner writing to stdout.
func Run(source string, stdout io.Writer) ExitCode {
	return NewRunner(stdout).Run(source)
}

// RunFile reads path and runs it as a single program.
func RunFile(path string, stdout io.Writer) ExitCode {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		return ExitUsage
	}
	return Run(string(content), stdout)
}

// RunPrompt drives an interactive REPL, reading lines from in and
// writing both prompts and Print output to stdout. A line that fails to
// scan/parse/resolve/evaluate reports its diagnostic but does not exit
// the session, matching jlox's runPrompt behavior of clearing the error
// flag between lines.
func RunPrompt(in io.Reader, stdout io.Writer) {
	runner := NewRunner(stdout)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			return
		}
		runner.Run(scanner.Text())
	}
}
