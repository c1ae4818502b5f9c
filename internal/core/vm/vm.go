// Package vm holds per-evaluation state: the world handle, language
// items, current file id, current route, pending flow event, call depth,
// and tracer (spec.md §3 "VM").
//
// Call depth is a VM field, not a package-level counter. A reference
// implementation of this evaluator (consulted for this package's shape)
// tracks call depth in a package-global variable shared by every VM
// instance; spec.md §5 requires multiple top-level eval calls to run
// correctly on independent VM instances in parallel, which a shared
// global would silently corrupt (one goroutine's calls would trip
// another's depth limit). Keeping the counter on *VM avoids that.
package vm

import (
	"errors"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
	"github.com/scrivenlang/scriven/internal/core/flow"
	"github.com/scrivenlang/scriven/internal/core/route"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/evalflag"
	"github.com/scrivenlang/scriven/span"
)

// MaxCallDepth, MaxIterations and TracerMax read the active bound on each
// call rather than freezing it at package init, so a test can lower
// evalflag.Flags.MaxCallDepth (etc.) and see the new limit take effect
// immediately (spec.md §A.4).
func MaxCallDepth() int  { return evalflag.CallDepthLimit() }
func MaxIterations() int { return evalflag.IterationLimit() }
func TracerMax() int     { return evalflag.TracerLimit() }

var ErrMaxCallDepth = errors.New("maximum call depth exceeded")

// World is the I/O capability the evaluator consumes (spec.md §6 "World
// contract"): source/file access plus file-id path arithmetic, plus the
// language item table every evaluation shares.
type World interface {
	Library() *content.Library
	File(id string) ([]byte, error)
	Source(id string) (ast.Node, error)
	Join(base, relative string) (string, error)
	// NewFileID attaches an optional package spec to a path, the
	// FileId::new(Some(spec), path) constructor from spec.md §6.
	NewFileID(pkgSpec, path string) string
}

// Tracer records up to TracerMax values observed at a target span
// (spec.md §4.7).
type Tracer struct {
	Target span.Span
	log    []value.Value
}

func NewTracer(target span.Span) *Tracer { return &Tracer{Target: target} }

func (t *Tracer) Push(v value.Value) {
	if t == nil || len(t.log) >= TracerMax() {
		return
	}
	t.log = append(t.log, v)
}

func (t *Tracer) Values() []value.Value { return append([]value.Value(nil), t.log...) }

// MaybeTrace appends v to the tracer if s equals the traced target
// (spec.md §4.1 "If the VM has a traced span equal to the node's span").
func (t *Tracer) MaybeTrace(s span.Span, v value.Value) {
	if t == nil || !t.Target.IsValid() {
		return
	}
	if t.Target == s {
		t.Push(v)
	}
}

// VM is the per-evaluation state threaded through every eval call.
type VM struct {
	World     World
	FileID    string
	Route     *route.Route
	Flow      *flow.Event
	CallDepth int
	Tracer    *Tracer

	// Memo caches module evaluation results keyed by file id plus route
	// (spec.md §4.6: "the evaluation function can be memoized keyed by
	// (source, route, world-observations)"; world-observations are not
	// tracked since this evaluator's World has no mutable observation
	// surface). Shared across the whole VM tree a single top-level eval
	// spawns, so sibling imports of the same file hit the cache.
	Memo map[string]value.Value
}

func New(world World, fileID string, r *route.Route, tracer *Tracer) *VM {
	if r == nil {
		r = route.Empty
	}
	if tracer == nil {
		tracer = &Tracer{}
	}
	return &VM{World: world, FileID: fileID, Route: r, Tracer: tracer, Memo: map[string]value.Value{}}
}

// Child creates the VM used to evaluate an imported/included file: same
// world and memo table, route extended with fileID, fresh call depth and
// flow state, and a tracer of its own (spec.md §4.5 "recursively eval
// it with the route extended").
func (m *VM) Child(fileID string) *VM {
	return &VM{
		World:  m.World,
		FileID: fileID,
		Route:  route.Insert(m.Route, fileID),
		Tracer: &Tracer{},
		Memo:   m.Memo,
	}
}

// EnterCall increments call depth, failing once MaxCallDepth is reached
// (spec.md §4.1.5 step 1). The caller must call ExitCall exactly once for
// every successful EnterCall, typically via defer.
func (m *VM) EnterCall() error {
	if m.CallDepth >= MaxCallDepth() {
		return ErrMaxCallDepth
	}
	m.CallDepth++
	return nil
}

func (m *VM) ExitCall() {
	if m.CallDepth > 0 {
		m.CallDepth--
	}
}

// SaveFlow returns the current pending flow event and clears it, for the
// save/restore discipline around markup and code sequences (spec.md
// invariant 1, §4.1.1, §4.3).
func (m *VM) SaveFlow() *flow.Event {
	saved := m.Flow
	m.Flow = nil
	return saved
}

func (m *VM) RestoreFlow(saved *flow.Event) {
	m.Flow = saved
}

// RaiseFlow sets the pending event only if none is already pending
// (spec.md §4.3: "a pending event is not overwritten").
func (m *VM) RaiseFlow(e flow.Event) {
	if m.Flow == nil {
		m.Flow = &e
	}
}
