// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the resolver and interpreter.
package ast

import "github.com/cwbudde/golox/internal/lexer"

// Node is the base interface for every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token most closely
	// associated with this node, for debugging.
	TokenLiteral() string

	// Pos returns the node's position in the source, for diagnostics.
	Pos() lexer.Position

	// String renders the node for debugging and --dump-ast output.
	String() string
}

// Expr is any node that produces a Value when evaluated.
//
// Expression nodes are allocated once as unique *T values and referenced by
// that same pointer for the rest of the pipeline. This lets the resolver
// key its scope-distance side table on the Expr interface value itself
// (which embeds the pointer) and get exact node identity without a
// separate id counter.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action rather than producing a value.
type Stmt interface {
	Node
	stmtNode()
}
