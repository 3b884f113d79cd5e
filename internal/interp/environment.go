package interp

import (
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
)

// Environment is a symbol table for variable storage, chained to an
// enclosing scope for lexical lookup. Lox is case-sensitive, unlike the
// teacher's ident.Map-backed store, so the plain store here is just a
// map[string]Value.
type Environment struct {
	store     map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a root environment with no enclosing scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a scope nested inside outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]Value), enclosing: outer}
}

// Define binds name to v in this environment's own frame. Redeclaring an
// existing name is allowed, per spec: the resolver is what forbids local
// redeclaration, not the environment.
func (e *Environment) Define(name string, v Value) {
	e.store[name] = v
}

// Get looks up name.Lexeme in this frame, then recursively in enclosing
// frames, returning a RuntimeError if it is bound nowhere in the chain.
func (e *Environment) Get(name lexer.Token) (Value, *errors.RuntimeError) {
	if v, ok := e.store[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, errors.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign rebinds name.Lexeme to v wherever it is already bound in the
// chain, failing with a RuntimeError if it is bound nowhere.
func (e *Environment) Assign(name lexer.Token, v Value) *errors.RuntimeError {
	if _, ok := e.store[name.Lexeme]; ok {
		e.store[name.Lexeme] = v
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return errors.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// ancestor walks distance enclosing links out from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name directly from the frame distance links out, with no
// fallthrough to further-enclosing frames: the resolver's contract
// guarantees the binding is exactly there.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).store[name]
}

// AssignAt rebinds name directly in the frame distance links out,
// symmetric with GetAt.
func (e *Environment) AssignAt(distance int, name lexer.Token, v Value) {
	e.ancestor(distance).store[name.Lexeme] = v
}
