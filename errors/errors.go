// Package errors defines the evaluator's error type. Modeled on the
// teacher's cue/errors package: a single Error interface carrying a primary
// span and a deferred-format Message, with Wrapf/WithTrace accumulating
// tracepoints (spec.md §7) as an error crosses call and import boundaries,
// and a List for batching independent errors (e.g. explicit-item imports).
package errors

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/scrivenlang/scriven/span"
)

// New wraps errors.New without attaching evaluator position information.
func New(msg string) error { return errors.New(msg) }

func Is(err, target error) bool { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }
func Unwrap(err error) error { return errors.Unwrap(err) }

// Message holds a format string and its arguments so that error text can be
// composed lazily, matching cue/errors.Message.
type Message struct {
	format string
	args   []any
}

// NewMessagef builds a Message for human consumption.
func NewMessagef(format string, args ...any) Message {
	return Message{format: format, args: args}
}

func (m *Message) Msg() (string, []any) { return m.format, m.args }
func (m *Message) Error() string        { return fmt.Sprintf(m.format, m.args...) }

// Tracepoint labels a frame accumulated as an error propagates, per
// spec.md §7: Call(name) or Import.
type Tracepoint struct {
	Kind string // "call" or "import"
	Name string // function/import name, may be empty
}

func (t Tracepoint) String() string {
	if t.Name == "" {
		return t.Kind
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Name)
}

// Error is the evaluator's error interface.
type Error interface {
	error
	Position() span.Pos
	InputPositions() []span.Pos
	Trace() []Tracepoint
	Msg() (string, []any)
}

// Newf creates a leaf Error at p.
func Newf(p span.Pos, format string, args ...any) Error {
	return &posError{pos: p, Message: NewMessagef(format, args...)}
}

// Wrapf adds a tracepoint frame around child, with its own message and
// position layered on top.
func Wrapf(child error, p span.Pos, tp Tracepoint, format string, args ...any) Error {
	return &traced{
		pos:     p,
		tp:      tp,
		Message: NewMessagef(format, args...),
		child:   child,
	}
}

// WithTrace appends a tracepoint to err without changing its message,
// the common case when a call or import boundary simply needs to record
// where it was reached.
func WithTrace(err error, tp Tracepoint) Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		return &traced{pos: e.Position(), tp: tp, child: e}
	}
	return &traced{pos: span.NoPos, tp: tp, child: Promote(err, "")}
}

type posError struct {
	pos span.Pos
	Message
}

func (e *posError) Position() span.Pos       { return e.pos }
func (e *posError) InputPositions() []span.Pos { return nil }
func (e *posError) Trace() []Tracepoint      { return nil }

type traced struct {
	pos span.Pos
	tp  Tracepoint
	Message
	child error
}

func (e *traced) Error() string {
	msg := ""
	if e.format() != "" {
		msg = e.Message.Error()
	}
	if e.child == nil {
		return msg
	}
	if msg == "" {
		return e.child.Error()
	}
	return fmt.Sprintf("%s: %s", msg, e.child.Error())
}

func (e *traced) format() string { f, _ := e.Message.Msg(); return f }

func (e *traced) Msg() (string, []any) {
	if e.format() != "" {
		return e.Message.Msg()
	}
	if ce, ok := e.child.(Error); ok {
		return ce.Msg()
	}
	return e.child.Error(), nil
}

func (e *traced) Position() span.Pos {
	if e.pos.IsValid() {
		return e.pos
	}
	if ce, ok := e.child.(Error); ok {
		return ce.Position()
	}
	return span.NoPos
}

func (e *traced) InputPositions() []span.Pos {
	if ce, ok := e.child.(Error); ok {
		return append([]span.Pos{ce.Position()}, ce.InputPositions()...)
	}
	return nil
}

func (e *traced) Trace() []Tracepoint {
	if ce, ok := e.child.(Error); ok {
		return append([]Tracepoint{e.tp}, ce.Trace()...)
	}
	return []Tracepoint{e.tp}
}

func (e *traced) Unwrap() error { return e.child }

// Promote converts a plain error into an Error, attaching msg as context if
// err doesn't already carry one.
func Promote(err error, msg string) Error {
	if e, ok := err.(Error); ok {
		return e
	}
	if msg == "" {
		msg = err.Error()
		return &posError{pos: span.NoPos, Message: NewMessagef("%s", msg)}
	}
	return &posError{pos: span.NoPos, Message: NewMessagef("%s: %s", msg, err.Error())}
}

// List is a batch of independent errors (spec.md §7's "collected into a
// batch").
type List []Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}

// Add appends err to the list, flattening any nested List.
func (l *List) Add(err error) {
	if err == nil {
		return
	}
	if nested, ok := err.(List); ok {
		*l = append(*l, nested...)
		return
	}
	*l = append(*l, Promote(err, ""))
}

// Err returns nil for an empty list, the sole error for a singleton list, or
// the list itself otherwise.
func (l List) Err() error {
	switch len(l) {
	case 0:
		return nil
	case 1:
		return l[0]
	default:
		return l
	}
}

// Sort orders the list by position, then message, for deterministic output.
func (l List) Sort() {
	slices.SortFunc(l, func(a, b Error) int {
		if c := a.Position().Compare(b.Position()); c != 0 {
			return c
		}
		return cmp.Compare(a.Error(), b.Error())
	})
}

// Sanitize sorts and deduplicates near-identical errors (same position and
// message), matching cue/errors.Sanitize's best-effort dedup.
func (l List) Sanitize() List {
	if l == nil {
		return nil
	}
	out := slices.Clone(l)
	out.Sort()
	return slices.CompactFunc(out, func(a, b Error) bool {
		return a.Position().Compare(b.Position()) == 0 && a.Error() == b.Error()
	})
}

// Print writes every error in err (a single Error or a List) to w, one per
// line, with position information indented below each message.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var list List
	if l, ok := err.(List); ok {
		list = l.Sanitize()
	} else if e, ok := err.(Error); ok {
		list = List{e}
	} else {
		fmt.Fprintf(w, "%v\n", err)
		return
	}
	for _, e := range list {
		fmt.Fprintf(w, "%s\n", e.Error())
		if p := e.Position(); p.IsValid() {
			fmt.Fprintf(w, "    %s\n", p)
		}
		if trace := e.Trace(); len(trace) > 0 {
			names := make([]string, len(trace))
			for i, t := range trace {
				names[i] = t.String()
			}
			fmt.Fprintf(w, "    via %s\n", strings.Join(names, " -> "))
		}
	}
}

// Details is a convenience wrapper returning Print's output as a string.
func Details(err error) string {
	var b strings.Builder
	Print(&b, err)
	return b.String()
}
