package golox

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestRunPrintsExpressionResult(t *testing.T) {
	var buf bytes.Buffer
	code := Run(`print 1 + 2;`, &buf)
	if code != ExitSuccess {
		t.Fatalf("exit code = %v, want %v", code, ExitSuccess)
	}
	if buf.String() != "3\n" {
		t.Fatalf("output = %q, want %q", buf.String(), "3\n")
	}
}

func TestRunReportsStaticErrorAndSkipsEvaluation(t *testing.T) {
	var buf bytes.Buffer
	code := Run(`print ;`, &buf)
	if code != ExitStatic {
		t.Fatalf("exit code = %v, want %v", code, ExitStatic)
	}
	if buf.String() != "" {
		t.Fatalf("expected no output for a program that failed to parse, got %q", buf.String())
	}
}

func TestRunReportsRuntimeError(t *testing.T) {
	var buf bytes.Buffer
	code := Run(`"a" + 1;`, &buf)
	if code != ExitRuntime {
		t.Fatalf("exit code = %v, want %v", code, ExitRuntime)
	}
}

func TestRunnerPersistsGlobalsAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf)
	if code := r.Run(`var count = 0;`); code != ExitSuccess {
		t.Fatalf("first Run failed with code %v", code)
	}
	if code := r.Run(`count = count + 1; print count;`); code != ExitSuccess {
		t.Fatalf("second Run failed with code %v", code)
	}
	if buf.String() != "1\n" {
		t.Fatalf("output = %q, want %q", buf.String(), "1\n")
	}
}

func TestRunFibonacciSnapshot(t *testing.T) {
	var buf bytes.Buffer
	code := Run(`
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
for (var i = 0; i < 10; i = i + 1) {
  print fib(i);
}
`, &buf)
	if code != ExitSuccess {
		t.Fatalf("unexpected exit code %v", code)
	}
	snaps.MatchSnapshot(t, fmt.Sprintf("fibonacci_%d_lines", 10), buf.String())
}
