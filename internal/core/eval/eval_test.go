package eval

import (
	"fmt"
	"path"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
	"github.com/scrivenlang/scriven/internal/core/flow"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
	"github.com/scrivenlang/scriven/span"
)

// testWorld is an in-memory vm.World used across this file's fixtures: a
// fixed map of already-parsed sources plus raw manifest bytes, keyed by
// file id. It exists only to drive the evaluator end to end without a
// real loader, the out-of-scope collaborator spec.md §6 describes.
type testWorld struct {
	sources map[string]ast.Node
	files   map[string][]byte
}

func newTestWorld() *testWorld {
	return &testWorld{sources: map[string]ast.Node{}, files: map[string][]byte{}}
}

func (w *testWorld) Library() *content.Library { return content.Default() }

func (w *testWorld) File(id string) ([]byte, error) {
	if b, ok := w.files[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("no such file: %s", id)
}

func (w *testWorld) Source(id string) (ast.Node, error) {
	if n, ok := w.sources[id]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("no such source: %s", id)
}

func (w *testWorld) Join(base, relative string) (string, error) {
	if strings.HasPrefix(relative, "/") {
		return relative, nil
	}
	return path.Join(path.Dir(base), relative), nil
}

func (w *testWorld) NewFileID(pkgSpec, p string) string {
	if pkgSpec == "" {
		return p
	}
	return pkgSpec + "|" + p
}

func newVM(w *testWorld) *vm.VM { return vm.New(w, "/main.typ", nil, nil) }

func newScopes() *scope.Scopes { return scope.NewScopes(scope.New()) }

func ident(name string) *ast.Ident { return ast.NewIdent(span.NoSpan, name) }

func intLit(v int64) *ast.IntLit { return ast.NewIntLit(span.NoSpan, v) }

func strLit(s string) *ast.StrLit { return ast.NewStrLit(span.NoSpan, s) }

func binary(op ast.BinaryOp, x, y ast.Expr) *ast.Binary {
	return ast.NewBinary(span.NoSpan, op, x, y)
}

func codeBlock(body ...ast.Expr) *ast.CodeBlock {
	return ast.NewCodeBlock(span.NoSpan, body)
}

func TestEvalCodeSequencingJoinsStrings(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	v, err := Eval(codeBlock(strLit("a"), strLit("b")), m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), value.KindStr))
	qt.Assert(t, qt.Equals(v.AsStr(), "ab"))
}

func TestEvalBinaryArithmetic(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	v, err := Eval(binary(ast.BinAdd, intLit(2), intLit(3)), m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.AsInt(), int64(5)))

	v, err = Eval(binary(ast.BinMul, intLit(4), intLit(5)), m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.AsInt(), int64(20)))
}

func TestEvalBinaryShortCircuit(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	// "or" should not evaluate its right operand once the left is true;
	// a right side that would error if evaluated proves short-circuiting.
	n := binary(ast.BinOr, ast.NewBoolLit(span.NoSpan, true), ident("boom"))
	v, err := Eval(n, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(v.AsBool()))
}

func TestEvalCompareAndMembership(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	v, err := Eval(binary(ast.BinLt, intLit(1), intLit(2)), m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(v.AsBool()))

	arr := ast.NewArrayExpr(span.NoSpan, []ast.ArrayItem{{Value: intLit(1)}, {Value: intLit(2)}})
	v, err = Eval(binary(ast.BinIn, intLit(2), arr), m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(v.AsBool()))
}

func TestEvalDestructureDefineArrayWithSink(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	pattern := ast.NewPatternArray(span.NoSpan, []ast.ArrayPatternItem{
		{Pattern: ast.NewPatternIdent(span.NoSpan, "first")},
		{IsSink: true, SinkName: "rest"},
		{Pattern: ast.NewPatternIdent(span.NoSpan, "last")},
	})
	arr := ast.NewArrayExpr(span.NoSpan, []ast.ArrayItem{
		{Value: intLit(1)}, {Value: intLit(2)}, {Value: intLit(3)}, {Value: intLit(4)},
	})
	let := ast.NewLetBinding(span.NoSpan, pattern, arr)

	_, err := Eval(let, m, scopes)
	qt.Assert(t, qt.IsNil(err))

	first, _ := scopes.Get("first")
	last, _ := scopes.Get("last")
	rest, _ := scopes.Get("rest")
	qt.Assert(t, qt.Equals(first.AsInt(), int64(1)))
	qt.Assert(t, qt.Equals(last.AsInt(), int64(4)))
	qt.Assert(t, qt.Equals(rest.ArrayLen(), 2))
}

func TestEvalDestructureAssignRejectsCaptured(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	base := scopes.Top()
	base.DefineCaptured("x", value.Int(1))

	assign := ast.NewDestructAssignment(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "x"), intLit(2))
	_, err := Eval(assign, m, scopes)
	qt.Assert(t, qt.ErrorMatches(err, ".*captured.*"))
}

func TestEvalDictFieldAssignment(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	dict := ast.NewDictExpr(span.NoSpan, []ast.DictItem{{Name: "count", Value: intLit(1)}})
	scopes.Define("d", mustEval(t, dict, m, scopes))

	fa := ast.NewFieldAccess(span.NoSpan, ident("d"), "count", span.NoSpan)
	assign := ast.NewBinary(span.NoSpan, ast.BinAssign, fa, intLit(9))
	_, err := Eval(assign, m, scopes)
	qt.Assert(t, qt.IsNil(err))

	d, _ := scopes.Get("d")
	v, ok := d.DictGet("count")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.AsInt(), int64(9)))
}

func mustEval(t *testing.T, n ast.Node, m *vm.VM, scopes *scope.Scopes) value.Value {
	t.Helper()
	v, err := Eval(n, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	return v
}

func TestEvalClosureCallWithDefaultAndSink(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	// let f(x, y: 10, ..rest) = x + y
	closure := ast.NewClosure(span.NoSpan, "", []ast.Param{
		{Kind: ast.ParamPositional, Pattern: ast.NewPatternIdent(span.NoSpan, "x")},
		{Kind: ast.ParamNamed, Name: "y", Default: intLit(10)},
		{Kind: ast.ParamSink, Name: "rest"},
	}, codeBlock(binary(ast.BinAdd, ident("x"), ident("y"))))

	let := ast.NewLetBinding(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "f"), closure)
	_, err := Eval(let, m, scopes)
	qt.Assert(t, qt.IsNil(err))

	call := ast.NewFuncCall(span.NoSpan, ident("f"), ast.NewArgs(span.NoSpan, []ast.ArgItem{
		{Value: intLit(5)},
		{Value: intLit(1)},
	}))
	v, err := Eval(call, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.AsInt(), int64(15)))
}

func TestEvalClosureRecursion(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	// let fact(n) = if n == 0 { 1 } else { n * fact(n - 1) }
	cond := binary(ast.BinEq, ident("n"), intLit(0))
	recCall := ast.NewFuncCall(span.NoSpan, ident("fact"), ast.NewArgs(span.NoSpan, []ast.ArgItem{
		{Value: binary(ast.BinSub, ident("n"), intLit(1))},
	}))
	body := ast.NewConditional(span.NoSpan, cond, codeBlock(intLit(1)), codeBlock(binary(ast.BinMul, ident("n"), recCall)))
	closure := ast.NewClosure(span.NoSpan, "fact", []ast.Param{
		{Kind: ast.ParamPositional, Pattern: ast.NewPatternIdent(span.NoSpan, "n")},
	}, codeBlock(body))

	let := ast.NewLetBinding(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "fact"), closure)
	_, err := Eval(let, m, scopes)
	qt.Assert(t, qt.IsNil(err))

	call := ast.NewFuncCall(span.NoSpan, ident("fact"), ast.NewArgs(span.NoSpan, []ast.ArgItem{{Value: intLit(5)}}))
	v, err := Eval(call, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.AsInt(), int64(120)))
}

func TestEvalClosureCapturesEnclosingBindings(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	scopes.Define("base", value.Int(100))
	closure := ast.NewClosure(span.NoSpan, "", []ast.Param{
		{Kind: ast.ParamPositional, Pattern: ast.NewPatternIdent(span.NoSpan, "x")},
	}, codeBlock(binary(ast.BinAdd, ident("x"), ident("base"))))

	let := ast.NewLetBinding(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "addBase"), closure)
	_, err := Eval(let, m, scopes)
	qt.Assert(t, qt.IsNil(err))

	scopes.Define("base", value.Int(999)) // must not affect the already-captured closure

	call := ast.NewFuncCall(span.NoSpan, ident("addBase"), ast.NewArgs(span.NoSpan, []ast.ArgItem{{Value: intLit(1)}}))
	v, err := Eval(call, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.AsInt(), int64(101)))
}

func TestEvalForLoopOverArraySums(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	scopes.Define("total", value.Int(0))
	arr := ast.NewArrayExpr(span.NoSpan, []ast.ArrayItem{{Value: intLit(1)}, {Value: intLit(2)}, {Value: intLit(3)}})
	assign := ast.NewBinary(span.NoSpan, ast.BinAddAssign, ident("total"), ident("n"))
	loop := ast.NewForLoop(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "n"), arr, codeBlock(assign))

	_, err := Eval(loop, m, scopes)
	qt.Assert(t, qt.IsNil(err))

	total, _ := scopes.Get("total")
	qt.Assert(t, qt.Equals(total.AsInt(), int64(6)))
}

func TestEvalForLoopBreak(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	scopes.Define("seen", value.Int(0))
	arr := ast.NewArrayExpr(span.NoSpan, []ast.ArrayItem{{Value: intLit(1)}, {Value: intLit(2)}, {Value: intLit(3)}})
	breakIf := ast.NewConditional(span.NoSpan, binary(ast.BinEq, ident("n"), intLit(2)), codeBlock(ast.NewLoopBreak(span.NoSpan)), nil)
	body := codeBlock(ast.NewBinary(span.NoSpan, ast.BinAddAssign, ident("seen"), intLit(1)), breakIf)
	loop := ast.NewForLoop(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "n"), arr, body)

	_, err := Eval(loop, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(m.Flow))

	seen, _ := scopes.Get("seen")
	qt.Assert(t, qt.Equals(seen.AsInt(), int64(2)))
}

func TestEvalWhileLoopRejectsInvariantCondition(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	loop := ast.NewWhileLoop(span.NoSpan, ast.NewBoolLit(span.NoSpan, true), codeBlock(intLit(1)))
	_, err := Eval(loop, m, scopes)
	qt.Assert(t, qt.ErrorMatches(err, ".*(?i)always true.*|.*(?i)infinite.*|.*(?i)invariant.*"))
}

func TestEvalWhileLoopBoundedByMaxIterations(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	scopes.Define("i", value.Int(0))
	cond := binary(ast.BinLt, ident("i"), intLit(int64(vm.MaxIterations()+10)))
	body := codeBlock(ast.NewBinary(span.NoSpan, ast.BinAddAssign, ident("i"), intLit(1)))
	loop := ast.NewWhileLoop(span.NoSpan, cond, body)

	_, err := Eval(loop, m, scopes)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestEvalSetRuleWrapsTail(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	scopes.Define("strongify", value.NativeVal("strongify", func(args *value.Args) (value.Value, error) {
		return value.Str("styled"), nil
	}))

	target := ast.NewFuncCall(span.NoSpan, ident("strongify"), ast.NewArgs(span.NoSpan, nil))
	set := ast.NewSetRule(span.NoSpan, target, nil)
	markup := ast.FromExprs([]ast.Expr{set, ast.NewText(span.NoSpan, "hello")})

	v, err := Eval(markup, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), value.KindContent))
	if _, ok := v.AsContent().(content.Styled); !ok {
		t.Fatalf("expected content.Styled, got %T", v.AsContent())
	}
}

func TestEvalShowRuleBuildsRecipe(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	show := ast.NewShowRule(span.NoSpan, nil, strLit("replacement"))
	markup := ast.FromExprs([]ast.Expr{show, ast.NewText(span.NoSpan, "hello")})

	v, err := Eval(markup, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	styled, ok := v.AsContent().(content.Styled)
	qt.Assert(t, qt.IsTrue(ok))
	recipe := styled.Recipe.(value.Value)
	transform, ok := recipe.DictGet("transform")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(transform.AsStr(), "replacement"))
}

func TestEvalReturnStopsClosureBody(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	closure := ast.NewClosure(span.NoSpan, "", nil, codeBlock(
		ast.NewFuncReturn(span.NoSpan, intLit(1), false),
		intLit(2), // must never be reached
	))
	let := ast.NewLetBinding(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "f"), closure)
	_, err := Eval(let, m, scopes)
	qt.Assert(t, qt.IsNil(err))

	call := ast.NewFuncCall(span.NoSpan, ident("f"), ast.NewArgs(span.NoSpan, nil))
	v, err := Eval(call, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.AsInt(), int64(1)))
}

func TestEvalBreakOutsideLoopIsRejected(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	closure := ast.NewClosure(span.NoSpan, "", nil, codeBlock(ast.NewLoopBreak(span.NoSpan)))
	let := ast.NewLetBinding(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "f"), closure)
	_, _ = Eval(let, m, scopes)

	call := ast.NewFuncCall(span.NoSpan, ident("f"), ast.NewArgs(span.NoSpan, nil))
	_, err := Eval(call, m, scopes)
	qt.Assert(t, qt.ErrorMatches(err, ".*break.*"))
}

func TestEvalMaxCallDepthExceeded(t *testing.T) {
	m := newVM(newTestWorld())
	scopes := newScopes()

	recCall := ast.NewFuncCall(span.NoSpan, ident("loop"), ast.NewArgs(span.NoSpan, nil))
	closure := ast.NewClosure(span.NoSpan, "loop", nil, codeBlock(recCall))
	let := ast.NewLetBinding(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "loop"), closure)
	_, _ = Eval(let, m, scopes)

	call := ast.NewFuncCall(span.NoSpan, ident("loop"), ast.NewArgs(span.NoSpan, nil))
	_, err := Eval(call, m, scopes)
	qt.Assert(t, qt.ErrorMatches(err, ".*(?i)call depth.*"))
}

func TestEvalModuleImportWildcard(t *testing.T) {
	w := newTestWorld()
	w.sources["/lib.typ"] = ast.FromExprs([]ast.Expr{
		ast.NewLetBinding(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "greeting"), strLit("hi")),
	})

	m := newVM(w)
	scopes := newScopes()

	imp := ast.NewModuleImport(span.NoSpan, strLit("lib.typ"), "", true, nil)
	_, err := Eval(imp, m, scopes)
	qt.Assert(t, qt.IsNil(err))

	v, ok := scopes.Get("greeting")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.AsStr(), "hi"))
}

func TestEvalModuleImportExplicitItemsUnresolved(t *testing.T) {
	w := newTestWorld()
	w.sources["/lib.typ"] = ast.FromExprs([]ast.Expr{
		ast.NewLetBinding(span.NoSpan, ast.NewPatternIdent(span.NoSpan, "present"), strLit("here")),
	})

	m := newVM(w)
	scopes := newScopes()

	imp := ast.NewModuleImport(span.NoSpan, strLit("lib.typ"), "", false, []ast.ImportItem{
		{Name: "present", BoundAs: "present"},
		{Name: "missing", BoundAs: "missing"},
	})
	_, err := Eval(imp, m, scopes)
	qt.Assert(t, qt.ErrorMatches(err, ".*unresolved import.*missing.*"))
}

func TestEvalModuleIncludeYieldsContent(t *testing.T) {
	w := newTestWorld()
	w.sources["/lib.typ"] = ast.FromExprs([]ast.Expr{ast.NewText(span.NoSpan, "included")})

	m := newVM(w)
	scopes := newScopes()

	inc := ast.NewModuleInclude(span.NoSpan, strLit("lib.typ"))
	v, err := Eval(inc, m, scopes)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), value.KindContent))
}

func TestEvalModuleImportDetectsCycle(t *testing.T) {
	w := newTestWorld()
	w.sources["/a.typ"] = ast.FromExprs([]ast.Expr{
		ast.NewModuleImport(span.NoSpan, strLit("b.typ"), "", true, nil),
	})
	w.sources["/b.typ"] = ast.FromExprs([]ast.Expr{
		ast.NewModuleImport(span.NoSpan, strLit("a.typ"), "", true, nil),
	})

	m := vm.New(w, "/a.typ", nil, nil)
	scopes := newScopes()

	imp := ast.NewModuleImport(span.NoSpan, strLit("a.typ"), "", true, nil)
	_, err := Eval(imp, m, scopes)
	qt.Assert(t, qt.ErrorMatches(err, ".*cyclic.*"))
}

func TestFlowBreakAndContinueEvents(t *testing.T) {
	b := breakEvent(span.NoSpan)
	qt.Assert(t, qt.Equals(b.Kind, flow.Break))
	c := continueEvent(span.NoSpan)
	qt.Assert(t, qt.Equals(c.Kind, flow.Continue))
}
