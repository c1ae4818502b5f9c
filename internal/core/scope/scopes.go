package scope

import (
	"fmt"
	"strings"

	"github.com/scrivenlang/scriven/internal/core/value"
)

// Scopes is the active lookup chain: a top scope, a stack of enclosing
// scopes (innermost last), and an optional base library scope consulted
// only after every lexical scope misses (spec.md §3 "Scopes (stack)").
type Scopes struct {
	top   *Scope
	stack []*Scope
	base  *Scope
}

func NewScopes(base *Scope) *Scopes {
	return &Scopes{top: New(), base: base}
}

// Enter pushes the current top onto the stack and starts a fresh top.
func (s *Scopes) Enter() {
	s.stack = append(s.stack, s.top)
	s.top = New()
}

// Exit pops the stack back into top. Calling Exit without a matching
// Enter is a programming error (spec.md invariant 2: the stack must
// balance on every control-flow path).
func (s *Scopes) Exit() {
	n := len(s.stack)
	if n == 0 {
		panic("scope: Exit without matching Enter")
	}
	s.top = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

// Top returns the innermost scope, for direct definition (e.g. `let`).
func (s *Scopes) Top() *Scope { return s.top }

// Depth reports how many enclosing scopes are currently pushed, excluding top.
func (s *Scopes) Depth() int { return len(s.stack) }

// Get looks up name innermost -> outermost -> base.
func (s *Scopes) Get(name string) (value.Value, bool) {
	if v, ok := s.top.Get(name); ok {
		return v, true
	}
	for i := len(s.stack) - 1; i >= 0; i-- {
		if v, ok := s.stack[i].Get(name); ok {
			return v, true
		}
	}
	if s.base != nil {
		if v, ok := s.base.Get(name); ok {
			return v, true
		}
	}
	return value.None, false
}

// whichScope locates the scope object owning name, or nil plus
// isBase=true if only the base library has it.
func (s *Scopes) whichScope(name string) (owner *Scope, isBase bool) {
	if _, ok := s.top.Get(name); ok {
		return s.top, false
	}
	for i := len(s.stack) - 1; i >= 0; i-- {
		if _, ok := s.stack[i].Get(name); ok {
			return s.stack[i], false
		}
	}
	if s.base != nil {
		if _, ok := s.base.Get(name); ok {
			return nil, true
		}
	}
	return nil, false
}

// UnknownVariableError formats spec.md §4.2's unknown-variable message,
// including the subtraction-spacing hint when name contains a hyphen.
func UnknownVariableError(name string) error {
	msg := fmt.Sprintf("unknown variable: %s", name)
	if strings.Contains(name, "-") {
		msg += " (if you meant to use subtraction, try adding spaces around the minus sign)"
	}
	return fmt.Errorf("%s", msg)
}

// Owner exposes whichScope to internal/core/eval without making the
// lookup internals public API.
func (s *Scopes) Owner(name string) (owner *Scope, isBase bool) {
	return s.whichScope(name)
}

// Define introduces name in the top scope (spec.md §4.1.4 "Define" mode).
func (s *Scopes) Define(name string, v value.Value) {
	s.top.Define(name, v)
}

// Base returns the library scope consulted after every lexical scope
// misses, shared with a freshly evaluated module so imported files see
// the same standard library as their importer (spec.md §4.5).
func (s *Scopes) Base() *Scope { return s.base }
