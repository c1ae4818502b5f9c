package value

import "github.com/scrivenlang/scriven/ast"

// Func is the KindFunc payload. Exactly one of Native or Closure is set.
// A function with a non-nil Scope table exposes it to wildcard
// import (spec.md §4.5 "functions that have a scope").
type Func struct {
	Name string // empty for anonymous closures

	Native  NativeFunc
	Closure *ClosurePayload

	// Scope holds named sub-bindings for element/native functions that
	// act as modules (e.g. a library entry with associated constants);
	// nil for ordinary closures, which are never import sources.
	Scope ScopeLike
}

// NativeFunc is a function implemented in Go rather than as a closure
// over user AST; the standard library (out of scope per spec.md §1) is
// expected to register values of this shape into the base scope.
type NativeFunc func(args *Args) (Value, error)

// ClosurePayload is the record described by spec.md §3 "Closure":
// originating file id, optional self-name, captured bindings, parameter
// list, and body AST node. It lives in this package (rather than
// internal/core/eval) so a Value can carry it without an import cycle.
type ClosurePayload struct {
	FileID    string
	SelfName  string // non-empty enables recursive self-reference
	Captured  map[string]Value
	Params    []ast.Param
	Body      ast.Node
}

func (f *Func) String() string {
	if f.Name != "" {
		return "func:" + f.Name
	}
	return "func"
}

func NativeVal(name string, fn NativeFunc) Value {
	return Value{kind: KindFunc, fn: &Func{Name: name, Native: fn}}
}

func ClosureVal(c *ClosurePayload) Value {
	return Value{kind: KindFunc, fn: &Func{Closure: c}}
}

// FuncVal wraps an existing Func, used to bind a closure's own name to
// itself for recursive self-reference (spec.md §4.1.6 step 1 "Bind the
// function name for recursion").
func FuncVal(f *Func) Value { return Value{kind: KindFunc, fn: f} }
