package interp

import (
	"strings"
	"testing"

	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
)

func run(t *testing.T, source string) (string, *errRuntimeErrorLike) {
	t.Helper()
	p := parser.New(lexer.New(source))
	prog := p.ParseProgram()
	if p.HadError() {
		t.Fatalf("unexpected parse errors for %q: %v", source, p.Errors())
	}

	r := resolver.New()
	table := r.Resolve(prog)
	if r.HadError() {
		t.Fatalf("unexpected resolve errors for %q: %v", source, r.Errors())
	}

	var sb strings.Builder
	i := New(&sb)
	err := i.Interpret(prog, table)
	if err != nil {
		return sb.String(), &errRuntimeErrorLike{msg: err.Error()}
	}
	return sb.String(), nil
}

// errRuntimeErrorLike avoids importing the errors package's concrete
// type into every test signature; tests that care about failure just
// check for non-nil.
type errRuntimeErrorLike struct{ msg string }

func TestPrintArithmetic(t *testing.T) {
	out, err := run(t, `print 1 + 2;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.msg)
	}
	if out != "3\n" {
		t.Fatalf("output = %q, want %q", out, "3\n")
	}
}

func TestBlockScopingShadowsOuter(t *testing.T) {
	out, err := run(t, `var a = 1; { var a = 2; print a; } print a;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.msg)
	}
	if out != "2\n1\n" {
		t.Fatalf("output = %q, want %q", out, "2\n1\n")
	}
}

func TestClosuresCaptureByReference(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var i = 0;
  fun c() {
    i = i + 1;
    print i;
  }
  return c;
}
var c = makeCounter();
c();
c();
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.msg)
	}
	if out != "1\n2\n" {
		t.Fatalf("output = %q, want %q", out, "1\n2\n")
	}
}

func TestRecursiveFibonacci(t *testing.T) {
	out, err := run(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.msg)
	}
	if out != "55\n" {
		t.Fatalf("output = %q, want %q", out, "55\n")
	}
}

func TestClassInitAndMethod(t *testing.T) {
	out, err := run(t, `
class P {
  init(n) { this.name = n; }
  greet() { print "hi " + this.name; }
}
P("world").greet();
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.msg)
	}
	if out != "hi world\n" {
		t.Fatalf("output = %q, want %q", out, "hi world\n")
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
class A { m() { print "A"; } }
class B < A {
  m() {
    super.m();
    print "B";
  }
}
B().m();
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.msg)
	}
	if out != "A\nB\n" {
		t.Fatalf("output = %q, want %q", out, "A\nB\n")
	}
}

func TestNumberStringificationStripsTrailingZero(t *testing.T) {
	out, err := run(t, `print 6 / 2; print 1.5;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.msg)
	}
	if out != "3\n1.5\n" {
		t.Fatalf("output = %q, want %q", out, "3\n1.5\n")
	}
}

func TestStringPlusNumberIsRuntimeError(t *testing.T) {
	_, err := run(t, `"a" + 1;`)
	if err == nil {
		t.Fatal("expected a runtime error adding a string and a number")
	}
}

func TestReferencingUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `undefined;`)
	if err == nil {
		t.Fatal("expected a runtime error referencing an undefined variable")
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	if err == nil {
		t.Fatal("expected a runtime error calling a non-callable value")
	}
}

func TestOrReturnsLeftOperandUnchangedWhenTruthy(t *testing.T) {
	out, err := run(t, `print "hi" or 2;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err.msg)
	}
	if out != "hi\n" {
		t.Fatalf("output = %q, want %q", out, "hi\n")
	}
}

func TestWrongArityIsRuntimeError(t *testing.T) {
	_, err := run(t, `
fun f(a, b) { return a + b; }
f(1);
`)
	if err == nil {
		t.Fatal("expected a runtime error for an arity mismatch")
	}
}

func TestSuperclassMustBeClassIsRuntimeError(t *testing.T) {
	_, err := run(t, `
var NotAClass = 1;
class B < NotAClass {}
`)
	if err == nil {
		t.Fatal("expected a runtime error for a non-class superclass")
	}
}
