// Package flow models break/continue/return as VM-resident data rather
// than Go panics or errors (spec.md §3 "FlowEvent", §4.3). Evaluating
// break/continue/return sets at most one pending Event on the VM; loops
// and function calls observe and consume it.
package flow

import (
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/span"
)

type Kind int

const (
	Break Kind = iota
	Continue
	Return
)

func (k Kind) String() string {
	switch k {
	case Break:
		return "break"
	case Continue:
		return "continue"
	case Return:
		return "return"
	default:
		return "flow"
	}
}

// Event is the pending flow-control signal. Value is only meaningful for
// Return; HasValue distinguishes a bare `return` from `return none`
// evaluating to an actual None (spec.md "Return(span, Option<Value>)").
type Event struct {
	Kind     Kind
	Span     span.Span
	Value    value.Value
	HasValue bool
}

func NewBreak(s span.Span) Event    { return Event{Kind: Break, Span: s} }
func NewContinue(s span.Span) Event { return Event{Kind: Continue, Span: s} }

func NewReturn(s span.Span, v value.Value, has bool) Event {
	return Event{Kind: Return, Span: s, Value: v, HasValue: has}
}
