// Package resolver performs the static pre-pass between parsing and
// evaluation: for every variable reference it computes how many
// enclosing block scopes separate it from its declaration, so the
// interpreter's environment chain can be walked by exact distance
// instead of falling through scope by scope at run time.
package resolver

import (
	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/lexer"
)

// functionType tracks what kind of function body is currently being
// resolved, so `return` and `this` can be validated contextually.
type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionMethod
	functionInitializer
)

// classType tracks whether resolution is currently inside a class body,
// and whether that class has a superclass, so `this`/`super` can be
// validated contextually.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// ResolveError is a single static-analysis diagnostic, in the same shape
// as the parser's errors so callers can report both uniformly.
type ResolveError struct {
	Message string
	Token   lexer.Token
}

func (e *ResolveError) Error() string {
	return e.Message
}

// Table maps an expression node, keyed by its own pointer identity, to
// the number of enclosing scopes between its use and its declaration.
// Entries are absent for globals, which are resolved dynamically.
type Table map[ast.Expr]int

// Resolver walks a parsed program once, populating a Table as it goes.
type Resolver struct {
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
	table           Table
	errors          []*ResolveError
}

// New creates a Resolver ready to walk a program.
func New() *Resolver {
	return &Resolver{table: Table{}}
}

// Resolve walks prog's statements and returns the populated resolve
// table. Check Errors() / HadError() afterward before evaluating.
func (r *Resolver) Resolve(prog *ast.Program) Table {
	r.resolveStmts(prog.Statements)
	return r.table
}

// Errors returns every diagnostic recorded during Resolve.
func (r *Resolver) Errors() []*ResolveError {
	return r.errors
}

// HadError reports whether any diagnostic was recorded.
func (r *Resolver) HadError() bool {
	return len(r.errors) > 0
}

func (r *Resolver) fail(tok lexer.Token, message string) {
	r.errors = append(r.errors, &ResolveError{Message: message, Token: tok})
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) scopeDepth() int {
	return len(r.scopes)
}

// declare inserts name into the innermost scope as not-yet-defined. At
// global scope (no open scopes) there is nothing to track; redeclaration
// there is permitted.
func (r *Resolver) declare(name lexer.Token) {
	if r.scopeDepth() == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.fail(name, "already a variable with this name in this scope")
	}
	scope[name.Lexeme] = false
}

// define marks name as fully initialized in the innermost scope.
func (r *Resolver) define(name lexer.Token) {
	if r.scopeDepth() == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records how many scopes out name is bound, innermost
// scope counting as distance 0. If name is not found in any open scope,
// it is left unresolved and becomes a global lookup at run time.
func (r *Resolver) resolveLocal(expr ast.Expr, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.table[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionFunction)
	case *ast.ReturnStmt:
		if r.currentFunction == functionNone {
			r.fail(s.Keyword, "can't return from top-level code")
		}
		if s.Value != nil {
			if r.currentFunction == functionInitializer {
				r.fail(s.Keyword, "can't return a value from an initializer")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.fail(s.Superclass.Name, "a class can't inherit from itself")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		// no sub-expressions, no variables
	case *ast.VariableExpr:
		if r.scopeDepth() > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.fail(e.Name, "can't read local variable in its own initializer")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.GroupingExpr:
		r.resolveExpr(e.Expression)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Arguments {
			r.resolveExpr(a)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.fail(e.Keyword, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.SuperExpr:
		switch r.currentClass {
		case classNone:
			r.fail(e.Keyword, "can't use 'super' outside of a class")
		case classClass:
			r.fail(e.Keyword, "can't use 'super' in a class with no superclass")
		}
		r.resolveLocal(e, e.Keyword)
	}
}
