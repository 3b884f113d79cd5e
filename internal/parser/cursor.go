package parser

import "github.com/cwbudde/golox/internal/lexer"

// match advances past the current token and returns true if it is one of
// types, otherwise leaves the cursor untouched.
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// check reports whether the current token has type t without consuming it.
func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

// advance consumes and returns the current token.
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// isAtEnd reports whether the cursor has reached the EOF token.
func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

// peek returns the current token without consuming it.
func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

// consume advances past the current token if it has type t, otherwise
// panics with a parseError carrying code and message.
func (p *Parser) consume(t lexer.TokenType, code, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.fail(p.peek(), code, message))
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so parsing can resume after a syntax error without cascading
// spurious diagnostics. It stops just after a ';', or just before a token
// that starts a new declaration/statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR, lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}

		p.advance()
	}
}
