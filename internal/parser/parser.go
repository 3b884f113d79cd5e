// Package parser implements a recursive-descent parser for Lox, producing
// an internal/ast tree from a token sequence. Each method corresponds
// directly to a grammar rule, from lowest to highest precedence:
// expression -> assignment -> or -> and -> equality -> comparison -> term
// -> factor -> unary -> call -> primary.
package parser

import (
	"fmt"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/lexer"
)

// maxArgs is the parameter/argument limit described for call expressions
// and function declarations. Parsing recovers after reporting it.
const maxArgs = 255

// Parser turns a token sequence into a sequence of top-level statements.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []*ParserError
}

// New creates a Parser over the tokens produced by l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{tokens: l.ScanTokens()}
}

// NewFromTokens creates a Parser directly from an already-scanned token
// sequence, useful for tests and REPL lookahead.
func NewFromTokens(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns all accumulated parse errors from the last ParseProgram
// call.
func (p *Parser) Errors() []*ParserError {
	return p.errors
}

// HadError reports whether any parse error was recorded.
func (p *Parser) HadError() bool {
	return len(p.errors) > 0
}

// parseError is the internal "throw" used for panic-mode recovery: it
// unwinds to the nearest enclosing declaration() call, which then
// synchronizes and resumes scanning for more declarations.
type parseError struct{ err *ParserError }

func (p *Parser) fail(tok lexer.Token, code, message string) parseError {
	pe := newParserError(tok, code, message)
	p.errors = append(p.errors, pe)
	return parseError{pe}
}

// ParseProgram parses the entire token stream into a *ast.Program. Parse
// errors are accumulated (see Errors); the caller should not evaluate the
// result if any were reported.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

// declaration parses a class/function/variable declaration, or falls
// through to statement. On a parse error it synchronizes to the next
// likely declaration/statement boundary and returns nil for this one.
func (p *Parser) declaration() (result ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				result = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(lexer.CLASS):
		return p.classDeclaration()
	case p.match(lexer.FUN):
		return p.function("function")
	case p.match(lexer.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// classDeclaration parses `class NAME ( "<" NAME )? "{" function* "}"`.
func (p *Parser) classDeclaration() ast.Stmt {
	tok := p.previous()
	name := p.consume(lexer.IDENT, ErrUnexpectedToken, "expect class name")

	var superclass *ast.VariableExpr
	if p.match(lexer.LESS) {
		p.consume(lexer.IDENT, ErrUnexpectedToken, "expect superclass name")
		superclass = &ast.VariableExpr{Name: p.previous()}
	}

	p.consume(lexer.LBRACE, ErrUnexpectedToken, "expect '{' before class body")

	var methods []*ast.FunctionStmt
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(lexer.RBRACE, ErrUnexpectedToken, "expect '}' after class body")

	return &ast.ClassStmt{Token: tok, Name: name, Superclass: superclass, Methods: methods}
}

// function parses `IDENT "(" parameters? ")" block`. kind is "function" or
// "method", used only for error messages.
func (p *Parser) function(kind string) *ast.FunctionStmt {
	tok := p.peek()
	name := p.consume(lexer.IDENT, ErrUnexpectedToken, fmt.Sprintf("expect %s name", kind))

	p.consume(lexer.LPAREN, ErrUnexpectedToken, fmt.Sprintf("expect '(' after %s name", kind))
	var params []lexer.Token
	if !p.check(lexer.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.fail(p.peek(), ErrTooManyParams, fmt.Sprintf("can't have more than %d parameters", maxArgs))
			}
			params = append(params, p.consume(lexer.IDENT, ErrUnexpectedToken, "expect parameter name"))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.consume(lexer.RPAREN, ErrUnexpectedToken, "expect ')' after parameters")

	p.consume(lexer.LBRACE, ErrUnexpectedToken, fmt.Sprintf("expect '{' before %s body", kind))
	body := p.block()

	return &ast.FunctionStmt{Token: tok, Name: name, Params: params, Body: body}
}

// varDeclaration parses `IDENT ( "=" expression )? ";"`.
func (p *Parser) varDeclaration() ast.Stmt {
	tok := p.previous()
	name := p.consume(lexer.IDENT, ErrUnexpectedToken, "expect variable name")

	var initializer ast.Expr
	if p.match(lexer.EQUAL) {
		initializer = p.expression()
	}

	p.consume(lexer.SEMICOLON, ErrUnexpectedToken, "expect ';' after variable declaration")
	return &ast.VarStmt{Token: tok, Name: name, Initializer: initializer}
}

// statement dispatches to the statement-level grammar rules.
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.FOR):
		return p.forStatement()
	case p.match(lexer.IF):
		return p.ifStatement()
	case p.match(lexer.PRINT):
		return p.printStatement()
	case p.match(lexer.RETURN):
		return p.returnStatement()
	case p.match(lexer.WHILE):
		return p.whileStatement()
	case p.match(lexer.LBRACE):
		lbrace := p.previous()
		return &ast.BlockStmt{LBrace: lbrace, Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStatement parses `"for" "(" (varDecl|exprStmt|";") expr? ";" expr? ")"
// statement` and desugars it into a block wrapping a while loop: the
// increment runs at the end of the loop body, a missing condition becomes
// `true`, and a missing initializer elides the outer block.
func (p *Parser) forStatement() ast.Stmt {
	forTok := p.previous()
	p.consume(lexer.LPAREN, ErrUnexpectedToken, "expect '(' after 'for'")

	var initializer ast.Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		initializer = nil
	case p.match(lexer.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(lexer.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(lexer.SEMICOLON, ErrUnexpectedToken, "expect ';' after loop condition")

	var increment ast.Expr
	if !p.check(lexer.RPAREN) {
		increment = p.expression()
	}
	p.consume(lexer.RPAREN, ErrUnexpectedToken, "expect ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{LBrace: forTok, Statements: []ast.Stmt{
			body,
			&ast.ExpressionStmt{Token: forTok, Expression: increment},
		}}
	}

	if condition == nil {
		condition = &ast.LiteralExpr{Token: forTok, Value: true}
	}
	body = &ast.WhileStmt{Token: forTok, Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{LBrace: forTok, Statements: []ast.Stmt{initializer, body}}
	}

	return body
}

// ifStatement parses `"if" "(" expr ")" statement ( "else" statement )?`.
func (p *Parser) ifStatement() ast.Stmt {
	tok := p.previous()
	p.consume(lexer.LPAREN, ErrUnexpectedToken, "expect '(' after 'if'")
	condition := p.expression()
	p.consume(lexer.RPAREN, ErrUnexpectedToken, "expect ')' after if condition")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(lexer.ELSE) {
		elseBranch = p.statement()
	}

	return &ast.IfStmt{Token: tok, Condition: condition, Then: thenBranch, Else: elseBranch}
}

// printStatement parses `"print" expr ";"`.
func (p *Parser) printStatement() ast.Stmt {
	tok := p.previous()
	value := p.expression()
	p.consume(lexer.SEMICOLON, ErrUnexpectedToken, "expect ';' after value")
	return &ast.PrintStmt{Token: tok, Expression: value}
}

// returnStatement parses `"return" expr? ";"`.
func (p *Parser) returnStatement() ast.Stmt {
	tok := p.previous()
	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.consume(lexer.SEMICOLON, ErrUnexpectedToken, "expect ';' after return value")
	return &ast.ReturnStmt{Keyword: tok, Value: value}
}

// whileStatement parses `"while" "(" expr ")" statement`.
func (p *Parser) whileStatement() ast.Stmt {
	tok := p.previous()
	p.consume(lexer.LPAREN, ErrUnexpectedToken, "expect '(' after 'while'")
	condition := p.expression()
	p.consume(lexer.RPAREN, ErrUnexpectedToken, "expect ')' after condition")
	body := p.statement()
	return &ast.WhileStmt{Token: tok, Condition: condition, Body: body}
}

// block parses `declaration* "}"`, consuming the closing brace; the
// opening brace is consumed by the caller so it can anchor the BlockStmt.
func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(lexer.RBRACE, ErrUnexpectedToken, "expect '}' after block")
	return statements
}

// expressionStatement parses `expr ";"`.
func (p *Parser) expressionStatement() ast.Stmt {
	tok := p.peek()
	expr := p.expression()
	p.consume(lexer.SEMICOLON, ErrUnexpectedToken, "expect ';' after expression")
	return &ast.ExpressionStmt{Token: tok, Expression: expr}
}
