// Package interp implements the tree-walking evaluator: runtime values,
// environments, callable objects, and the statement/expression dispatch
// engine that walks a resolved program.
package interp

import (
	"strconv"
	"strings"
)

// Value represents a runtime value. All seven Lox runtime tags (nil,
// bool, number, string, function, class, instance) implement it.
type Value interface {
	// Type returns the tag name of the value (e.g. "NUMBER", "STRING").
	Type() string
	// String returns the stringification used by `print` and string
	// concatenation, per the stringification rules.
	String() string
}

// NilValue is Lox's single nil value. There is exactly one meaningful
// instance, Nil, which every binding defaults to.
type NilValue struct{}

func (NilValue) Type() string   { return "NIL" }
func (NilValue) String() string { return "nil" }

// Nil is the canonical nil value; use it rather than constructing a new
// NilValue{} so nil comparisons stay cheap.
var Nil = NilValue{}

// BooleanValue wraps a Go bool.
type BooleanValue struct {
	Value bool
}

func (b BooleanValue) Type() string { return "BOOLEAN" }
func (b BooleanValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NumberValue is Lox's single numeric type: a float64, with no
// integer/float distinction at the language level.
type NumberValue struct {
	Value float64
}

func (n NumberValue) Type() string { return "NUMBER" }

// String strips a trailing ".0" so integer-valued numbers print without
// a decimal point, per the stringification rule.
func (n NumberValue) String() string {
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if strings.HasSuffix(s, ".0") {
		return s[:len(s)-2]
	}
	return s
}

// StringValue wraps a Go string.
type StringValue struct {
	Value string
}

func (s StringValue) Type() string   { return "STRING" }
func (s StringValue) String() string { return s.Value }

// isTruthy implements Lox's truthiness rule: nil is false, booleans are
// themselves, everything else (including 0 and "") is true.
func isTruthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BooleanValue:
		return val.Value
	default:
		return true
	}
}

// valuesEqual implements Lox's equality rule: nil equals only nil,
// values of different tags are unequal, otherwise comparison is
// structural on the underlying Go value.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BooleanValue:
		bv, ok := b.(BooleanValue)
		return ok && av.Value == bv.Value
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Value == bv.Value
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Value == bv.Value
	default:
		return a == b
	}
}

