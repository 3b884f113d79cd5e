package parser

import (
	"fmt"

	"github.com/cwbudde/golox/internal/lexer"
)

// Error code constants for programmatic handling of parse diagnostics.
const (
	ErrUnexpectedToken   = "E_UNEXPECTED_TOKEN"
	ErrExpectedExpr      = "E_EXPECTED_EXPR"
	ErrInvalidAssignment = "E_INVALID_ASSIGNMENT"
	ErrTooManyArgs       = "E_TOO_MANY_ARGS"
	ErrTooManyParams     = "E_TOO_MANY_PARAMS"
)

// ParserError is a structured syntax diagnostic carrying the offending
// token's position and lexeme.
type ParserError struct {
	Message string
	Code    string
	Token   lexer.Token
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, formatWhere(e.Token))
}

// formatWhere renders the location that Error appends after " at ":
// "end" for the EOF token, otherwise the token's lexeme in single quotes.
func formatWhere(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end"
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

// newParserError builds a ParserError anchored at tok.
func newParserError(tok lexer.Token, code, message string) *ParserError {
	return &ParserError{Message: message, Code: code, Token: tok}
}
