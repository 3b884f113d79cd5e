package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/golox/internal/lexer"
)

// LiteralExpr is a literal value baked into the source: a number, string,
// boolean, or nil.
type LiteralExpr struct {
	Token lexer.Token
	Value any
}

func (e *LiteralExpr) exprNode()                 {}
func (e *LiteralExpr) TokenLiteral() string      { return e.Token.Lexeme }
func (e *LiteralExpr) Pos() lexer.Position       { return e.Token.Pos }
func (e *LiteralExpr) String() string {
	if e.Value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", e.Value)
}

// VariableExpr is a bare identifier used in expression position; it reads
// the named variable's current binding.
type VariableExpr struct {
	Name lexer.Token
}

func (e *VariableExpr) exprNode()            {}
func (e *VariableExpr) TokenLiteral() string { return e.Name.Lexeme }
func (e *VariableExpr) Pos() lexer.Position  { return e.Name.Pos }
func (e *VariableExpr) String() string       { return e.Name.Lexeme }

// AssignExpr assigns Value to the variable Name, and itself evaluates to
// that value.
type AssignExpr struct {
	Name  lexer.Token
	Value Expr
}

func (e *AssignExpr) exprNode()            {}
func (e *AssignExpr) TokenLiteral() string { return e.Name.Lexeme }
func (e *AssignExpr) Pos() lexer.Position  { return e.Name.Pos }
func (e *AssignExpr) String() string       { return fmt.Sprintf("(%s = %s)", e.Name.Lexeme, e.Value) }

// UnaryExpr is a prefix operator (`!` or `-`) applied to Right.
type UnaryExpr struct {
	Operator lexer.Token
	Right    Expr
}

func (e *UnaryExpr) exprNode()            {}
func (e *UnaryExpr) TokenLiteral() string { return e.Operator.Lexeme }
func (e *UnaryExpr) Pos() lexer.Position  { return e.Operator.Pos }
func (e *UnaryExpr) String() string       { return fmt.Sprintf("(%s%s)", e.Operator.Lexeme, e.Right) }

// BinaryExpr is an infix arithmetic/comparison/equality operator.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (e *BinaryExpr) exprNode()            {}
func (e *BinaryExpr) TokenLiteral() string { return e.Operator.Lexeme }
func (e *BinaryExpr) Pos() lexer.Position  { return e.Operator.Pos }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator.Lexeme, e.Right)
}

// LogicalExpr is `and`/`or`, which short-circuit rather than always
// evaluating both operands.
type LogicalExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (e *LogicalExpr) exprNode()            {}
func (e *LogicalExpr) TokenLiteral() string { return e.Operator.Lexeme }
func (e *LogicalExpr) Pos() lexer.Position  { return e.Operator.Pos }
func (e *LogicalExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator.Lexeme, e.Right)
}

// GroupingExpr is a parenthesized sub-expression; it exists purely to
// preserve explicit grouping for debugging output since precedence is
// already resolved by the parser.
type GroupingExpr struct {
	LParen     lexer.Token
	Expression Expr
}

func (e *GroupingExpr) exprNode()            {}
func (e *GroupingExpr) TokenLiteral() string { return e.LParen.Lexeme }
func (e *GroupingExpr) Pos() lexer.Position  { return e.LParen.Pos }
func (e *GroupingExpr) String() string       { return fmt.Sprintf("(group %s)", e.Expression) }

// CallExpr is a function/method/class call: Callee(Arguments...). Paren is
// the closing ')' token, used to locate call-site runtime errors.
type CallExpr struct {
	Callee    Expr
	Paren     lexer.Token
	Arguments []Expr
}

func (e *CallExpr) exprNode()            {}
func (e *CallExpr) TokenLiteral() string { return e.Paren.Lexeme }
func (e *CallExpr) Pos() lexer.Position  { return e.Paren.Pos }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", e.Callee, strings.Join(args, " "))
}

// GetExpr reads a property or method off Object.
type GetExpr struct {
	Object Expr
	Name   lexer.Token
}

func (e *GetExpr) exprNode()            {}
func (e *GetExpr) TokenLiteral() string { return e.Name.Lexeme }
func (e *GetExpr) Pos() lexer.Position  { return e.Name.Pos }
func (e *GetExpr) String() string       { return fmt.Sprintf("(. %s %s)", e.Object, e.Name.Lexeme) }

// SetExpr assigns Value to a property on Object.
type SetExpr struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

func (e *SetExpr) exprNode()            {}
func (e *SetExpr) TokenLiteral() string { return e.Name.Lexeme }
func (e *SetExpr) Pos() lexer.Position  { return e.Name.Pos }
func (e *SetExpr) String() string {
	return fmt.Sprintf("(set %s %s %s)", e.Object, e.Name.Lexeme, e.Value)
}

// ThisExpr is the `this` keyword used inside a method body.
type ThisExpr struct {
	Keyword lexer.Token
}

func (e *ThisExpr) exprNode()            {}
func (e *ThisExpr) TokenLiteral() string { return e.Keyword.Lexeme }
func (e *ThisExpr) Pos() lexer.Position  { return e.Keyword.Pos }
func (e *ThisExpr) String() string       { return "this" }

// SuperExpr is `super.Method` used inside a subclass method body.
type SuperExpr struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (e *SuperExpr) exprNode()            {}
func (e *SuperExpr) TokenLiteral() string { return e.Keyword.Lexeme }
func (e *SuperExpr) Pos() lexer.Position  { return e.Keyword.Pos }
func (e *SuperExpr) String() string       { return fmt.Sprintf("(super.%s)", e.Method.Lexeme) }
