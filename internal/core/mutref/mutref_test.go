package mutref

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/span"
)

func TestMutSetWritesThroughScope(t *testing.T) {
	s := scope.New()
	s.Define("x", value.Int(1))

	m := Mut(s, "x")
	qt.Assert(t, qt.IsTrue(m.IsMut()))
	qt.Assert(t, qt.IsNil(m.Set(value.Int(2))))

	got, _ := s.Get("x")
	qt.Assert(t, qt.Equals(got.AsInt(), int64(2)))
}

func TestImRejectsSet(t *testing.T) {
	m := Im(value.Int(5), span.NoSpan, Const)
	qt.Assert(t, qt.IsFalse(m.IsMut()))
	err := m.Set(value.Int(6))
	qt.Assert(t, qt.ErrorMatches(err, ".*constant.*"))
}

func TestImCapturedReason(t *testing.T) {
	m := Im(value.Str("hi"), span.NoSpan, Captured)
	err := m.Set(value.Str("bye"))
	qt.Assert(t, qt.ErrorMatches(err, ".*captured.*"))
}
