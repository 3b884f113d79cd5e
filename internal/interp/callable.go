package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
)

// Callable is anything that can appear as the callee of a Call
// expression: user-defined functions/methods, classes (construction),
// and native builtins like clock().
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, args []Value) (Value, *errors.RuntimeError)
}

// Function is a user-defined function or method, closing over the
// environment active at its declaration site.
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func (f *Function) Type() string   { return "FUNCTION" }
func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme) }

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

// Call binds parameters to args in a fresh environment enclosed by the
// closure, executes the body under the usual environment-swap guard, and
// returns the result of a return signal. An initializer always yields
// the instance bound to "this" in its own closure, regardless of what
// the body returns or whether it falls off the end.
func (f *Function) Call(i *Interpreter, args []Value) (Value, *errors.RuntimeError) {
	env := NewEnclosedEnvironment(f.closure)
	for idx, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	if err := i.executeBlock(f.declaration.Body, env); err != nil {
		return nil, err
	}

	if f.isInitializer {
		i.returnSignal = false
		i.returnValue = nil
		return f.closure.GetAt(0, "this"), nil
	}

	if i.returnSignal {
		i.returnSignal = false
		value := i.returnValue
		i.returnValue = nil
		return value, nil
	}

	return Nil, nil
}

// bind produces a new Function sharing this one's declaration and
// is_initializer flag, but closing over a fresh environment that defines
// "this" as instance. Used by Get and Super to construct bound methods.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

// Class is a runtime class object: a name, an optional superclass, and
// its own method table (not including inherited methods, which are
// looked up via the superclass chain at call time).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() string   { return "CLASS" }
func (c *Class) String() string { return c.Name }

// findMethod looks up name in this class's own method table, falling
// back to the superclass chain if not found locally.
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

// Arity is the arity of init if the class defines one, else 0.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class has an init method,
// binds and calls it with args. The instance is always the result, even
// if the initializer returns early.
func (c *Class) Call(i *Interpreter, args []Value) (Value, *errors.RuntimeError) {
	instance := &Instance{class: c, fields: make(map[string]Value)}
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object produced by calling a Class: a field
// table plus a back-reference to its class for method lookup.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func (o *Instance) Type() string   { return "INSTANCE" }
func (o *Instance) String() string { return o.class.Name + " instance" }

// get reads a field, falling back to a bound method from the class
// (including inherited methods) if no field by that name exists.
func (o *Instance) get(name lexer.Token) (Value, *errors.RuntimeError) {
	if v, ok := o.fields[name.Lexeme]; ok {
		return v, nil
	}
	if method, ok := o.class.findMethod(name.Lexeme); ok {
		return method.bind(o), nil
	}
	return nil, errors.NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// set stores v in the instance's own field table, creating the field if
// it does not already exist.
func (o *Instance) set(name lexer.Token, v Value) {
	o.fields[name.Lexeme] = v
}

// NativeFunction wraps a Go function as a zero-setup builtin, like
// clock().
type NativeFunction struct {
	name string
	fn   func(args []Value) Value
	aty  int
}

func (n *NativeFunction) Type() string      { return "FUNCTION" }
func (n *NativeFunction) String() string    { return fmt.Sprintf("<native fn %s>", n.name) }
func (n *NativeFunction) Arity() int        { return n.aty }
func (n *NativeFunction) Call(_ *Interpreter, args []Value) (Value, *errors.RuntimeError) {
	return n.fn(args), nil
}
