package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/resolver"
)

// Interpreter walks a resolved program's statements, evaluating
// expressions and performing their side effects against a chain of
// environments.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	table       resolver.Table
	output      io.Writer

	// returnSignal/returnValue are the non-local control-flow idiom for
	// Lox's one unwinding construct: set by a Return statement, checked
	// and cleared at the function-call boundary in Function.Call.
	returnSignal bool
	returnValue  Value
}

// New creates an Interpreter writing Print output to output, with the
// global environment pre-populated with clock().
func New(output io.Writer) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{globals: globals, environment: globals, output: output}
	i.defineBuiltins()
	return i
}

func (i *Interpreter) defineBuiltins() {
	i.globals.Define("clock", &NativeFunction{
		name: "clock",
		aty:  0,
		fn: func(args []Value) Value {
			return NumberValue{Value: float64(time.Now().UnixNano()) / 1e9}
		},
	})
}

// Interpret runs prog using table as the resolver's side channel. It
// stops at the first runtime error, matching the unwind-to-top-level
// behavior described for RuntimeError.
func (i *Interpreter) Interpret(prog *ast.Program, table resolver.Table) *errors.RuntimeError {
	i.table = table
	for _, stmt := range prog.Statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// execute runs a single statement's side effect.
func (i *Interpreter) execute(stmt ast.Stmt) *errors.RuntimeError {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		v, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.output, v.String())
		return nil

	case *ast.VarStmt:
		value := Value(Nil)
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnclosedEnvironment(i.environment))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
			if i.returnSignal {
				return nil
			}
		}

	case *ast.FunctionStmt:
		fn := &Function{declaration: s, closure: i.environment}
		i.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		value := Value(Nil)
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		i.returnValue = value
		i.returnSignal = true
		return nil

	case *ast.ClassStmt:
		return i.executeClass(s)
	}

	return nil
}

// executeBlock runs statements against env, restoring the previous
// environment on every exit path (normal, return-signal, or runtime
// error) via the scoped-guard idiom.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) *errors.RuntimeError {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
		if i.returnSignal {
			return nil
		}
	}
	return nil
}

func (i *Interpreter) executeClass(s *ast.ClassStmt) *errors.RuntimeError {
	var superclass *Class
	if s.Superclass != nil {
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return errors.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.environment.Define(s.Name.Lexeme, Nil)

	classEnv := i.environment
	if superclass != nil {
		classEnv = NewEnclosedEnvironment(i.environment)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			declaration:   m,
			closure:       classEnv,
			isInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}

	return i.environment.Assign(s.Name, class)
}

// evaluate computes an expression's value.
func (i *Interpreter) evaluate(expr ast.Expr) (Value, *errors.RuntimeError) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e), nil

	case *ast.GroupingExpr:
		return i.evaluate(e.Expression)

	case *ast.VariableExpr:
		return i.lookUpVariable(e.Name, e)

	case *ast.AssignExpr:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.table[e]; ok {
			i.environment.AssignAt(distance, e.Name, value)
		} else if aerr := i.globals.Assign(e.Name, value); aerr != nil {
			return nil, aerr
		}
		return value, nil

	case *ast.UnaryExpr:
		return i.evalUnary(e)

	case *ast.BinaryExpr:
		return i.evalBinary(e)

	case *ast.LogicalExpr:
		return i.evalLogical(e)

	case *ast.CallExpr:
		return i.evalCall(e)

	case *ast.GetExpr:
		object, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, errors.NewRuntimeError(e.Name, "Only instances have properties.")
		}
		return instance.get(e.Name)

	case *ast.SetExpr:
		object, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, errors.NewRuntimeError(e.Name, "Only instances have fields.")
		}
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		instance.set(e.Name, value)
		return value, nil

	case *ast.ThisExpr:
		return i.lookUpVariable(e.Keyword, e)

	case *ast.SuperExpr:
		return i.evalSuper(e)
	}

	panic(fmt.Sprintf("interp: unhandled expression node %T", expr))
}

func literalValue(e *ast.LiteralExpr) Value {
	switch v := e.Value.(type) {
	case nil:
		return Nil
	case bool:
		return BooleanValue{Value: v}
	case float64:
		return NumberValue{Value: v}
	case string:
		return StringValue{Value: v}
	default:
		return Nil
	}
}

// lookUpVariable resolves a Variable/This/Super expression via the
// resolve table when a distance was recorded, else falls back to a
// dynamic global lookup.
func (i *Interpreter) lookUpVariable(name lexer.Token, expr ast.Expr) (Value, *errors.RuntimeError) {
	if distance, ok := i.table[expr]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}
	return i.globals.Get(name)
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr) (Value, *errors.RuntimeError) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.MINUS:
		n, ok := right.(NumberValue)
		if !ok {
			return nil, errors.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return NumberValue{Value: -n.Value}, nil
	case lexer.BANG:
		return BooleanValue{Value: !isTruthy(right)}, nil
	}

	panic(fmt.Sprintf("interp: unhandled unary operator %s", e.Operator.Type))
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, *errors.RuntimeError) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.EQUAL_EQUAL:
		return BooleanValue{Value: valuesEqual(left, right)}, nil
	case lexer.BANG_EQUAL:
		return BooleanValue{Value: !valuesEqual(left, right)}, nil
	case lexer.PLUS:
		if ln, lok := left.(NumberValue); lok {
			if rn, rok := right.(NumberValue); rok {
				return NumberValue{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, lok := left.(StringValue); lok {
			if rs, rok := right.(StringValue); rok {
				return StringValue{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, errors.NewRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	}

	ln, lok := left.(NumberValue)
	rn, rok := right.(NumberValue)
	if !lok || !rok {
		return nil, errors.NewRuntimeError(e.Operator, "Operands must be numbers.")
	}

	switch e.Operator.Type {
	case lexer.MINUS:
		return NumberValue{Value: ln.Value - rn.Value}, nil
	case lexer.STAR:
		return NumberValue{Value: ln.Value * rn.Value}, nil
	case lexer.SLASH:
		return NumberValue{Value: ln.Value / rn.Value}, nil
	case lexer.GREATER:
		return BooleanValue{Value: ln.Value > rn.Value}, nil
	case lexer.GREATER_EQUAL:
		return BooleanValue{Value: ln.Value >= rn.Value}, nil
	case lexer.LESS:
		return BooleanValue{Value: ln.Value < rn.Value}, nil
	case lexer.LESS_EQUAL:
		return BooleanValue{Value: ln.Value <= rn.Value}, nil
	}

	panic(fmt.Sprintf("interp: unhandled binary operator %s", e.Operator.Type))
}

// evalLogical short-circuits: `or` returns the left operand unchanged
// when it is truthy, `and` returns it unchanged when it is falsy.
func (i *Interpreter) evalLogical(e *ast.LogicalExpr) (Value, *errors.RuntimeError) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Type == lexer.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}

	return i.evaluate(e.Right)
}

func (i *Interpreter) evalCall(e *ast.CallExpr) (Value, *errors.RuntimeError) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Arguments))
	for idx, a := range e.Arguments {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, errors.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, errors.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}

	return callable.Call(i, args)
}

// evalSuper reads the superclass from the environment `distance` frames
// out, the instance from one frame closer in (the enclosing `this`
// scope), finds the named method on the superclass, and returns it bound
// to that instance.
func (i *Interpreter) evalSuper(e *ast.SuperExpr) (Value, *errors.RuntimeError) {
	distance := i.table[e]
	superclass := i.environment.GetAt(distance, "super").(*Class)
	instance := i.environment.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.findMethod(e.Method.Lexeme)
	if !ok {
		return nil, errors.NewRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance), nil
}
