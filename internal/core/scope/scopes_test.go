package scope

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/scrivenlang/scriven/internal/core/value"
)

func TestScopesLookupOrder(t *testing.T) {
	base := New()
	base.Define("x", value.Int(0))

	scopes := NewScopes(base)
	scopes.Define("x", value.Int(1))
	scopes.Enter()
	scopes.Define("x", value.Int(2))

	got, ok := scopes.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.AsInt(), int64(2)))

	scopes.Exit()
	got, ok = scopes.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.AsInt(), int64(1)))
}

func TestScopesFallsThroughToBase(t *testing.T) {
	base := New()
	base.Define("pi", value.Float(3.14))

	scopes := NewScopes(base)
	got, ok := scopes.Get("pi")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.AsFloat(), 3.14))
}

func TestScopesUnknownVariable(t *testing.T) {
	scopes := NewScopes(nil)
	_, ok := scopes.Get("nope")
	qt.Assert(t, qt.IsFalse(ok))

	err := UnknownVariableError("my-var")
	qt.Assert(t, qt.ErrorMatches(err, `.*subtraction.*`))
}

func TestScopeNamesSorted(t *testing.T) {
	s := New()
	s.Define("zeta", value.None)
	s.Define("alpha", value.None)
	s.Define("mid", value.None)

	qt.Assert(t, qt.DeepEquals(s.Names(), []string{"alpha", "mid", "zeta"}))
}

func TestExitWithoutEnterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewScopes(nil).Exit()
}
