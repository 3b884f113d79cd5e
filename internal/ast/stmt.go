package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/golox/internal/lexer"
)

// Program is the root node produced by the parser: a flat sequence of
// top-level declarations/statements.
type Program struct {
	Statements []Stmt
}

// String renders each top-level statement on its own line, for --dump-ast.
func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}

// ExpressionStmt evaluates Expression and discards the result.
type ExpressionStmt struct {
	Token      lexer.Token
	Expression Expr
}

func (s *ExpressionStmt) stmtNode()            {}
func (s *ExpressionStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *ExpressionStmt) Pos() lexer.Position  { return s.Token.Pos }
func (s *ExpressionStmt) String() string       { return s.Expression.String() + ";" }

// PrintStmt evaluates Expression, stringifies it, and writes one line to
// the output sink.
type PrintStmt struct {
	Token      lexer.Token
	Expression Expr
}

func (s *PrintStmt) stmtNode()            {}
func (s *PrintStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *PrintStmt) Pos() lexer.Position  { return s.Token.Pos }
func (s *PrintStmt) String() string       { return fmt.Sprintf("print %s;", s.Expression) }

// VarStmt declares Name in the current environment, bound to Initializer's
// value or nil if Initializer is absent.
type VarStmt struct {
	Token       lexer.Token
	Name        lexer.Token
	Initializer Expr
}

func (s *VarStmt) stmtNode()            {}
func (s *VarStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *VarStmt) Pos() lexer.Position  { return s.Token.Pos }
func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return fmt.Sprintf("var %s;", s.Name.Lexeme)
	}
	return fmt.Sprintf("var %s = %s;", s.Name.Lexeme, s.Initializer)
}

// BlockStmt introduces a new lexical scope around Statements.
type BlockStmt struct {
	LBrace     lexer.Token
	Statements []Stmt
}

func (s *BlockStmt) stmtNode()            {}
func (s *BlockStmt) TokenLiteral() string { return s.LBrace.Lexeme }
func (s *BlockStmt) Pos() lexer.Position  { return s.LBrace.Pos }
func (s *BlockStmt) String() string {
	parts := make([]string, len(s.Statements))
	for i, st := range s.Statements {
		parts[i] = st.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// IfStmt executes Then when Condition is truthy, else Else (which may be
// nil).
type IfStmt struct {
	Token     lexer.Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (s *IfStmt) stmtNode()            {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *IfStmt) Pos() lexer.Position  { return s.Token.Pos }
func (s *IfStmt) String() string {
	if s.Else == nil {
		return fmt.Sprintf("if (%s) %s", s.Condition, s.Then)
	}
	return fmt.Sprintf("if (%s) %s else %s", s.Condition, s.Then, s.Else)
}

// WhileStmt repeatedly executes Body while Condition evaluates truthy,
// re-checking the condition each iteration.
type WhileStmt struct {
	Token     lexer.Token
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) stmtNode()            {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *WhileStmt) Pos() lexer.Position  { return s.Token.Pos }
func (s *WhileStmt) String() string       { return fmt.Sprintf("while (%s) %s", s.Condition, s.Body) }

// FunctionStmt declares a named function or method: `fun NAME(params) body`.
// Methods inside a ClassStmt reuse this same node.
type FunctionStmt struct {
	Token  lexer.Token
	Name   lexer.Token
	Params []lexer.Token
	Body   []Stmt
}

func (s *FunctionStmt) stmtNode()            {}
func (s *FunctionStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *FunctionStmt) Pos() lexer.Position  { return s.Token.Pos }
func (s *FunctionStmt) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Lexeme
	}
	return fmt.Sprintf("fun %s(%s) { ... }", s.Name.Lexeme, strings.Join(params, ", "))
}

// ReturnStmt unwinds to the nearest enclosing function call, yielding
// Value's result (or nil if Value is absent).
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expr
}

func (s *ReturnStmt) stmtNode()            {}
func (s *ReturnStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *ReturnStmt) Pos() lexer.Position  { return s.Keyword.Pos }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value)
}

// ClassStmt declares a class, optionally extending Superclass, with a set
// of methods (each a *FunctionStmt).
type ClassStmt struct {
	Token      lexer.Token
	Name       lexer.Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

func (s *ClassStmt) stmtNode()            {}
func (s *ClassStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *ClassStmt) Pos() lexer.Position  { return s.Token.Pos }
func (s *ClassStmt) String() string {
	if s.Superclass == nil {
		return fmt.Sprintf("class %s { ... }", s.Name.Lexeme)
	}
	return fmt.Sprintf("class %s < %s { ... }", s.Name.Lexeme, s.Superclass.Name.Lexeme)
}
