package runtime

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/span"
)

func TestEvalRunsRegisteredSource(t *testing.T) {
	w := NewMemWorld(nil)
	w.AddSource("/main.typ", ast.FromExprs([]ast.Expr{
		ast.NewText(span.NoSpan, "hello"),
	}))

	rt := New(w, nil)
	mod, err := rt.Eval(nil, nil, "/main.typ")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(mod.FileID, "/main.typ"))
	qt.Assert(t, qt.Equals(mod.Name, "main"))
	qt.Assert(t, qt.IsNotNil(mod.Content))
}

func TestEvalRejectsUnknownFileID(t *testing.T) {
	w := NewMemWorld(nil)
	rt := New(w, nil)
	_, err := rt.Eval(nil, nil, "/missing.typ")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestEvalStringRewritesSpanAndEvaluates(t *testing.T) {
	w := NewMemWorld(nil)
	f := span.NewFile("fragment", 10)
	target := span.Single(f.Pos(0))

	stub := func(code string) (ast.Node, error) {
		x := ast.NewIntLit(span.NoSpan, 1)
		y := ast.NewIntLit(span.NoSpan, 2)
		return ast.NewBinary(span.NoSpan, ast.BinAdd, x, y), nil
	}

	rt := New(w, stub)
	v, err := rt.EvalString("1 + 2", target)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), value.KindInt))
	qt.Assert(t, qt.Equals(v.AsInt(), int64(3)))
}

func TestEvalStringRequiresParser(t *testing.T) {
	w := NewMemWorld(nil)
	rt := New(w, nil)
	_, err := rt.EvalString("1", span.NoSpan)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestMemWorldJoinAndFileID(t *testing.T) {
	w := NewMemWorld(nil)
	joined, err := w.Join("/dir/main.typ", "lib.typ")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(joined, "/dir/lib.typ"))

	qt.Assert(t, qt.Equals(w.NewFileID("", "/lib.typ"), "/lib.typ"))
	qt.Assert(t, qt.Equals(w.NewFileID("@ns/pkg:1.0.0", "/main.typ"), "@ns/pkg:1.0.0|/main.typ"))
}

func TestMemWorldAddFileRejectsInvalidUTF8(t *testing.T) {
	w := NewMemWorld(nil)
	err := w.AddFile("/typst.toml", []byte{0xff, 0xfe, 0xfd})
	qt.Assert(t, qt.IsNotNil(err))
}
