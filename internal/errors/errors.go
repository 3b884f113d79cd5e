// Package errors provides shared diagnostic formatting for golox's three
// error categories (scan, parse/static, runtime), with source context,
// line/column information, and an optional caret pointing at the offending
// token.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/golox/internal/lexer"
)

// Diagnostic represents a single reported error with position and
// optional source context. It is the common shape used to render scan,
// parse, and resolver errors; RuntimeError has its own rendering.
type Diagnostic struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewDiagnostic creates a new diagnostic anchored at pos.
func NewDiagnostic(pos lexer.Position, message, source, file string) *Diagnostic {
	return &Diagnostic{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *Diagnostic) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic with one line of source context. If
// color is true, ANSI escapes highlight the message and caret.
func (e *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *Diagnostic) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatDiagnostics renders a batch of diagnostics, numbering them when
// there is more than one. Used for the parser's and resolver's
// accumulated errors, which are reported together rather than one at a
// time.
func FormatDiagnostics(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s):\n\n", len(diags)))
	for i, d := range diags {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(diags)))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// RuntimeError is a failure raised while evaluating a resolved program:
// an undefined variable/property, a type mismatch, an arity mismatch, a
// non-callable callee, or a non-class superclass. It always carries the
// token at the point of failure so its line can be reported.
type RuntimeError struct {
	Message string
	Token   lexer.Token
}

// NewRuntimeError creates a RuntimeError anchored at tok.
func NewRuntimeError(tok lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Token: tok}
}

// Error implements the error interface. The run-time diagnostic format
// is deliberately terser than Diagnostic's: the message, then "[line N]"
// on a second line, with no source line or caret.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Pos.Line)
}
