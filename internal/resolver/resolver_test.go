package resolver

import (
	"testing"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
)

func resolveSource(t *testing.T, source string) (*ast.Program, *Resolver) {
	t.Helper()
	p := parser.New(lexer.New(source))
	prog := p.ParseProgram()
	if p.HadError() {
		t.Fatalf("unexpected parse errors for %q: %v", source, p.Errors())
	}
	r := New()
	r.Resolve(prog)
	return prog, r
}

func TestResolvesLocalVariableByDistance(t *testing.T) {
	prog, r := resolveSource(t, `
{
  var a = "outer";
  {
    var a = "inner";
    print a;
  }
}
`)
	if r.HadError() {
		t.Fatalf("unexpected resolve errors: %v", r.Errors())
	}

	outer := prog.Statements[0].(*ast.BlockStmt)
	inner := outer.Statements[1].(*ast.BlockStmt)
	use := inner.Statements[1].(*ast.PrintStmt).Expression
	dist, ok := r.table[use]
	if !ok || dist != 0 {
		t.Fatalf("expected 'a' to resolve to the inner scope at distance 0, got %d (found=%v)", dist, ok)
	}
}

func TestReadingOwnInitializerIsAnError(t *testing.T) {
	_, r := resolveSource(t, `
{
  var a = "outer";
  {
    var a = a;
  }
}
`)
	if !r.HadError() {
		t.Fatal("expected an error reading a variable in its own initializer")
	}
}

func TestRedeclarationInSameLocalScopeIsAnError(t *testing.T) {
	_, r := resolveSource(t, `
{
  var a = 1;
  var a = 2;
}
`)
	if !r.HadError() {
		t.Fatal("expected an error for redeclaring a local twice in one scope")
	}
}

func TestRedeclarationAtGlobalScopeIsAllowed(t *testing.T) {
	_, r := resolveSource(t, `
var a = 1;
var a = 2;
print a;
`)
	if r.HadError() {
		t.Fatalf("global redeclaration should be allowed, got errors: %v", r.Errors())
	}
}

func TestReturnOutsideFunctionIsAnError(t *testing.T) {
	_, r := resolveSource(t, `return 1;`)
	if !r.HadError() {
		t.Fatal("expected an error for top-level return")
	}
}

func TestReturnValueFromInitializerIsAnError(t *testing.T) {
	_, r := resolveSource(t, `
class Foo {
  init() {
    return 1;
  }
}
`)
	if !r.HadError() {
		t.Fatal("expected an error for returning a value from an initializer")
	}
}

func TestBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, r := resolveSource(t, `
class Foo {
  init() {
    return;
  }
}
`)
	if r.HadError() {
		t.Fatalf("bare return from initializer should be allowed, got: %v", r.Errors())
	}
}

func TestThisOutsideClassIsAnError(t *testing.T) {
	_, r := resolveSource(t, `print this;`)
	if !r.HadError() {
		t.Fatal("expected an error using 'this' outside a class")
	}
}

func TestSuperOutsideClassIsAnError(t *testing.T) {
	_, r := resolveSource(t, `super.method();`)
	if !r.HadError() {
		t.Fatal("expected an error using 'super' outside a class")
	}
}

func TestSuperInClassWithNoSuperclassIsAnError(t *testing.T) {
	_, r := resolveSource(t, `
class Foo {
  method() {
    super.method();
  }
}
`)
	if !r.HadError() {
		t.Fatal("expected an error using 'super' in a class without a superclass")
	}
}

func TestClassCannotInheritFromItself(t *testing.T) {
	_, r := resolveSource(t, `class Foo < Foo {}`)
	if !r.HadError() {
		t.Fatal("expected an error for a class inheriting from itself")
	}
}

func TestResolveTableRecordsDistanceForClosure(t *testing.T) {
	prog, r := resolveSource(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}
`)
	if r.HadError() {
		t.Fatalf("unexpected resolve errors: %v", r.Errors())
	}

	outer := prog.Statements[0].(*ast.FunctionStmt)
	inner := outer.Body[1].(*ast.FunctionStmt)
	assign := inner.Body[0].(*ast.ExpressionStmt).Expression.(*ast.AssignExpr)

	dist, ok := r.table[assign]
	if !ok {
		t.Fatalf("expected a resolved distance for 'count' assignment")
	}
	if dist != 1 {
		t.Fatalf("expected distance 1 (one enclosing function scope), got %d", dist)
	}
}
