package parser

import (
	"strings"
	"testing"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/lexer"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := New(lexer.New(source))
	prog := p.ParseProgram()
	if p.HadError() {
		t.Fatalf("unexpected parse errors for %q: %v", source, p.Errors())
	}
	return prog
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"(1 + 2) * 3;", "((group (1 + 2)) * 3);"},
		{"-1 + 2;", "((-1) + 2);"},
		{"1 < 2 == 3 < 4;", "((1 < 2) == (3 < 4));"},
		{"a = b = 3;", "(a = (b = 3));"},
		{"a and b or c;", "((a and b) or c);"},
	}

	for _, tt := range tests {
		prog := parseSource(t, tt.source)
		if len(prog.Statements) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.source, len(prog.Statements))
		}
		if got := prog.Statements[0].String(); got != tt.want {
			t.Errorf("%q: String() = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestForLoopDesugarsToWhileInBlock(t *testing.T) {
	prog := parseSource(t, "for (var i = 0; i < 10; i = i + 1) print i;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog.Statements))
	}

	outer, ok := prog.Statements[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected outer BlockStmt wrapping the initializer, got %T", prog.Statements[0])
	}
	if len(outer.Statements) != 2 {
		t.Fatalf("expected [initializer, while], got %d statements", len(outer.Statements))
	}
	if _, ok := outer.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("expected first statement to be the var initializer, got %T", outer.Statements[0])
	}

	loop, ok := outer.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected second statement to be a WhileStmt, got %T", outer.Statements[1])
	}
	body, ok := loop.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected loop body to be a BlockStmt wrapping body+increment, got %T", loop.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected [print, increment], got %d statements", len(body.Statements))
	}
}

func TestForLoopWithoutConditionDefaultsToTrue(t *testing.T) {
	prog := parseSource(t, "for (;;) print 1;")
	loop, ok := prog.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected a bare WhileStmt with no initializer wrapper, got %T", prog.Statements[0])
	}
	lit, ok := loop.Condition.(*ast.LiteralExpr)
	if !ok || lit.Value != true {
		t.Fatalf("expected condition to default to literal true, got %#v", loop.Condition)
	}
}

func TestClassDeclarationWithSuperclass(t *testing.T) {
	prog := parseSource(t, `
class Doughnut {
  cook() { print "Fry"; }
}
class BostonCream < Doughnut {
  cook() { print "Boston Cream"; }
}
`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 class declarations, got %d", len(prog.Statements))
	}
	sub, ok := prog.Statements[1].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected ClassStmt, got %T", prog.Statements[1])
	}
	if sub.Superclass == nil || sub.Superclass.Name.Lexeme != "Doughnut" {
		t.Fatalf("expected superclass Doughnut, got %#v", sub.Superclass)
	}
	if len(sub.Methods) != 1 || sub.Methods[0].Name.Lexeme != "cook" {
		t.Fatalf("expected single method 'cook', got %#v", sub.Methods)
	}
}

func TestGetAndSetExpressions(t *testing.T) {
	prog := parseSource(t, "breakfast.omelette.filling.meat = ham;")
	stmt, ok := prog.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %T", prog.Statements[0])
	}
	set, ok := stmt.Expression.(*ast.SetExpr)
	if !ok {
		t.Fatalf("expected trailing assignment to desugar into SetExpr, got %T", stmt.Expression)
	}
	if set.Name.Lexeme != "meat" {
		t.Fatalf("expected property name 'meat', got %q", set.Name.Lexeme)
	}
	if _, ok := set.Object.(*ast.GetExpr); !ok {
		t.Fatalf("expected object to be a chained GetExpr, got %T", set.Object)
	}
}

func TestInvalidAssignmentTargetRecordsError(t *testing.T) {
	p := New(lexer.New("1 = 2;"))
	p.ParseProgram()
	if !p.HadError() {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
	found := false
	for _, e := range p.Errors() {
		if e.Code == ErrInvalidAssignment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrInvalidAssignment among errors, got %v", p.Errors())
	}
}

func TestTooManyArgumentsRecordsError(t *testing.T) {
	var args []string
	for i := 0; i < 256; i++ {
		args = append(args, "1")
	}
	source := "f(" + strings.Join(args, ", ") + ");"

	p := New(lexer.New(source))
	p.ParseProgram()
	if !p.HadError() {
		t.Fatal("expected an error for exceeding the argument limit")
	}
	found := false
	for _, e := range p.Errors() {
		if e.Code == ErrTooManyArgs {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrTooManyArgs among errors, got %v", p.Errors())
	}
}

func TestSynchronizeSkipsToNextStatement(t *testing.T) {
	// The first statement is malformed ('=' followed directly by ';', with
	// no initializer expression); parsing should still recover and yield
	// the subsequent, well-formed variable declaration.
	p := New(lexer.New("var x = ; var y = 2;"))
	prog := p.ParseProgram()
	if !p.HadError() {
		t.Fatal("expected a parse error from the malformed first statement")
	}
	foundY := false
	for _, stmt := range prog.Statements {
		if v, ok := stmt.(*ast.VarStmt); ok && v.Name.Lexeme == "y" {
			foundY = true
		}
	}
	if !foundY {
		t.Fatalf("expected parser to recover and still parse 'var y', statements: %#v", prog.Statements)
	}
}

func TestSuperExpression(t *testing.T) {
	prog := parseSource(t, `
class A { method() { print "A"; } }
class B < A {
  method() {
    super.method();
  }
}
`)
	sub := prog.Statements[1].(*ast.ClassStmt)
	body := sub.Methods[0].Body
	stmt := body[0].(*ast.ExpressionStmt)
	call := stmt.Expression.(*ast.CallExpr)
	if _, ok := call.Callee.(*ast.SuperExpr); !ok {
		t.Fatalf("expected callee to be a SuperExpr, got %T", call.Callee)
	}
}

func TestReturnWithoutValue(t *testing.T) {
	prog := parseSource(t, "fun f() { return; }")
	fn := prog.Statements[0].(*ast.FunctionStmt)
	ret := fn.Body[0].(*ast.ReturnStmt)
	if ret.Value != nil {
		t.Fatalf("expected a nil return value, got %#v", ret.Value)
	}
}
