package runtime

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/eval"
	"github.com/scrivenlang/scriven/internal/core/route"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
	"github.com/scrivenlang/scriven/span"
)

// Parser turns source text into the AST contract internal/core/eval
// consumes. The parser itself is an external collaborator (spec.md §1);
// Runtime only needs one to implement EvalString, where the "source" is
// a string rather than something already reachable through the World.
type Parser func(code string) (ast.Node, error)

// Runtime pairs a World with the parser EvalString needs. Eval alone
// never touches Parser — a Runtime built with a nil Parser still
// supports Eval, only EvalString requires one.
type Runtime struct {
	World  vm.World
	Parser Parser
}

func New(world vm.World, parser Parser) *Runtime {
	return &Runtime{World: world, Parser: parser}
}

// Eval implements spec.md §6's `eval(world, route, tracer, source) ->
// Module`: fileID names an already-registered top-level document in the
// Runtime's World.
func (rt *Runtime) Eval(r *route.Route, tracer *vm.Tracer, fileID string) (*value.Module, error) {
	src, err := rt.World.Source(fileID)
	if err != nil {
		return nil, err
	}
	markup, ok := src.(*ast.Markup)
	if !ok {
		return nil, fmt.Errorf("runtime: %s is not a top-level document", fileID)
	}

	m := vm.New(rt.World, fileID, r, tracer)
	scopes := scope.NewScopes(scope.New())

	v, err := eval.Eval(markup, m, scopes)
	if err != nil {
		return nil, err
	}

	return &value.Module{
		Name:    moduleName(fileID),
		FileID:  fileID,
		Scope:   scopes.Top(),
		Content: v.AsContent(),
	}, nil
}

// EvalString implements spec.md §6's `eval_string(world, code, span) ->
// Value`: code is parsed independently of any registered source, its AST
// rewritten so every span reads as at (SPEC_FULL §C.1, mirroring the
// original's eval_string span-rewrite), then evaluated as code. Each call
// gets a fresh, unrelated file id so two fragments evaluated back to back
// never collide in VM.Memo or Route.
func (rt *Runtime) EvalString(code string, at span.Span) (value.Value, error) {
	if rt.Parser == nil {
		return value.None, errors.New("runtime: EvalString requires a Parser")
	}
	node, err := rt.Parser(code)
	if err != nil {
		return value.None, err
	}
	ast.RewriteSpans(node, at)

	fileID := "string:" + uuid.NewString()
	m := vm.New(rt.World, fileID, nil, nil)
	scopes := scope.NewScopes(scope.New())
	return eval.Eval(node, m, scopes)
}

func moduleName(fileID string) string {
	p := fileID
	if i := strings.LastIndexByte(p, '|'); i >= 0 {
		p = p[i+1:]
	}
	base := p
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
