// Package mutref implements the MaybeMut sum (spec.md §3): a borrowed
// mutable slot, or an owned value tagged with the reason it cannot be
// written through. This is the evaluator's substitute for a dynamic
// borrow checker — the AST shape alone (internal/core/eval's
// EvalMaybeMut dispatch) decides which of the two a node can produce.
package mutref

import (
	"fmt"

	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/span"
)

// Reason classifies why an Im value refuses mutation.
type Reason int

const (
	Const Reason = iota
	Captured
	Temporary
)

func (r Reason) String() string {
	switch r {
	case Const:
		return "constant"
	case Captured:
		return "captured"
	case Temporary:
		return "temporary value"
	default:
		return "immutable value"
	}
}

// MaybeMut is either a Mut (backed by a live scope slot or another
// addressable location) or an Im (an owned value with an immutability
// reason and the span it was produced at, for error reporting).
type MaybeMut struct {
	mut    *mutSlot
	custom *customSlot
	im     value.Value
	imOK   bool
	reason Reason
	span   span.Span
}

type mutSlot struct {
	owner *scope.Scope
	name  string
}

// customSlot backs a Mut whose storage is not a plain named scope slot,
// e.g. a dictionary field reached through an owning variable (spec.md
// §4.1.3 "field-access on a dictionary target").
type customSlot struct {
	get func() value.Value
	set func(value.Value) error
}

// Mut wraps a live binding in scope owned by name.
func Mut(owner *scope.Scope, name string) MaybeMut {
	return MaybeMut{mut: &mutSlot{owner: owner, name: name}}
}

// CustomMut wraps an addressable location defined by get/set, for mutable
// targets that are not a bare scope slot.
func CustomMut(get func() value.Value, set func(value.Value) error) MaybeMut {
	return MaybeMut{custom: &customSlot{get: get, set: set}}
}

// Im wraps an owned value that cannot be written through.
func Im(v value.Value, s span.Span, reason Reason) MaybeMut {
	return MaybeMut{im: v, imOK: true, reason: reason, span: s}
}

// IsMut reports whether m is backed by an addressable location.
func (m MaybeMut) IsMut() bool { return m.mut != nil || m.custom != nil }

// Get reads the current value regardless of mutability.
func (m MaybeMut) Get() value.Value {
	if m.mut != nil {
		v, _ := m.mut.owner.Get(m.mut.name)
		return v
	}
	if m.custom != nil {
		return m.custom.get()
	}
	return m.im
}

// Set writes through a Mut; on an Im it returns a mutability error
// carrying the stored reason and span (spec.md §4.1.3).
func (m MaybeMut) Set(v value.Value) error {
	if m.mut != nil {
		if !m.mut.owner.Set(m.mut.name, v) {
			return fmt.Errorf("cannot assign to %s: not a mutable binding", m.mut.name)
		}
		return nil
	}
	if m.custom != nil {
		return m.custom.set(v)
	}
	return fmt.Errorf("cannot mutate %s value", m.reason)
}

// Reason reports the immutability reason for an Im value; callers must
// check IsMut first since a Mut has no reason.
func (m MaybeMut) Reason() Reason { return m.reason }

// Span reports the span an Im value was produced at.
func (m MaybeMut) Span() span.Span { return m.span }
