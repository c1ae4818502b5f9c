// Package scope implements the evaluator's binding tables: a single
// Scope (spec.md §3 "Scope") and the Scopes stack that chains lookup
// through enclosing scopes down to a base library (spec.md §4.2).
package scope

import (
	"sort"

	"github.com/scrivenlang/scriven/internal/core/value"
)

// SlotKind distinguishes a freely reassignable binding from one captured
// immutably into a closure at creation time.
type SlotKind int

const (
	Normal SlotKind = iota
	Captured
)

type slot struct {
	value value.Value
	kind  SlotKind
}

// Scope is a single binding table. Insertion order is irrelevant; Names
// returns bindings sorted for deterministic iteration (spec.md §3
// "iteration must be deterministic (sorted by name)").
type Scope struct {
	slots map[string]*slot
}

func New() *Scope {
	return &Scope{slots: make(map[string]*slot)}
}

// Define introduces or overwrites name as a Normal binding.
func (s *Scope) Define(name string, v value.Value) {
	s.slots[name] = &slot{value: v, kind: Normal}
}

// DefineCaptured introduces name as a Captured binding, used when
// building the scope for a closure call (spec.md §4.1.6 step 1).
func (s *Scope) DefineCaptured(name string, v value.Value) {
	s.slots[name] = &slot{value: v, kind: Captured}
}

func (s *Scope) Get(name string) (value.Value, bool) {
	sl, ok := s.slots[name]
	if !ok {
		return value.None, false
	}
	return sl.value, true
}

func (s *Scope) Kind(name string) (SlotKind, bool) {
	sl, ok := s.slots[name]
	if !ok {
		return Normal, false
	}
	return sl.kind, true
}

// Set overwrites an existing Normal slot's value in place; it is an
// internal helper for MaybeMut.Mut borrows (internal/core/mutref), which
// is the only caller expected to mutate a slot after creation.
func (s *Scope) Set(name string, v value.Value) bool {
	sl, ok := s.slots[name]
	if !ok || sl.kind != Normal {
		return false
	}
	sl.value = v
	return true
}

// Names returns every bound name, sorted, so that wildcard import effects
// and other observable iteration are reproducible (spec.md §4 "Ordering").
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.slots))
	for n := range s.slots {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s *Scope) Len() int { return len(s.slots) }
