package vm

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/scrivenlang/scriven/internal/core/flow"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/span"
)

func TestCallDepthIsPerInstance(t *testing.T) {
	a := New(nil, "/a.typ", nil, nil)
	b := New(nil, "/b.typ", nil, nil)

	for i := 0; i < MaxCallDepth(); i++ {
		qt.Assert(t, qt.IsNil(a.EnterCall()))
	}
	qt.Assert(t, qt.ErrorIs(a.EnterCall(), ErrMaxCallDepth))

	// b must be unaffected by a's exhausted depth.
	qt.Assert(t, qt.IsNil(b.EnterCall()))
	qt.Assert(t, qt.Equals(b.CallDepth, 1))
}

func TestFlowSaveRestore(t *testing.T) {
	m := New(nil, "/a.typ", nil, nil)
	m.RaiseFlow(flow.NewBreak(span.NoSpan))

	saved := m.SaveFlow()
	qt.Assert(t, qt.IsNil(m.Flow))

	m.RestoreFlow(saved)
	qt.Assert(t, qt.Equals(m.Flow.Kind, flow.Break))
}

func TestRaiseFlowDoesNotOverwrite(t *testing.T) {
	m := New(nil, "/a.typ", nil, nil)
	m.RaiseFlow(flow.NewBreak(span.NoSpan))
	m.RaiseFlow(flow.NewContinue(span.NoSpan))
	qt.Assert(t, qt.Equals(m.Flow.Kind, flow.Break))
}

func TestTracerBoundedAndTargeted(t *testing.T) {
	f := span.NewFile("x", 100)
	target := span.New(f.Pos(0), f.Pos(1))
	tr := NewTracer(target)

	tr.MaybeTrace(target, value.Int(1))
	tr.MaybeTrace(span.New(f.Pos(2), f.Pos(3)), value.Int(2))
	for i := 0; i < 20; i++ {
		tr.Push(value.Int(int64(i)))
	}
	qt.Assert(t, qt.Equals(len(tr.Values()), TracerMax()))
}
