package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/flow"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
)

func evalClosureLiteral(n *ast.Closure, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	captured := captureClosure(n, scopes)
	payload := &value.ClosurePayload{
		FileID:   m.FileID,
		SelfName: n.Name,
		Captured: captured,
		Params:   n.Params,
		Body:     n.Body,
	}
	return value.ClosureVal(payload), nil
}

// captureClosure implements spec.md §4.1.6 step 1: a lexical walk over the
// closure body that copies the current value of every name referenced but
// not locally bound. Grounded on the reference CapturesVisitor, which
// tracks locally-bound names in their own scope chain (mirrored here by
// internal) separate from the external scopes being captured from.
func captureClosure(n *ast.Closure, external *scope.Scopes) map[string]value.Value {
	v := &captureVisitor{external: external, internal: scope.NewScopes(nil), captured: map[string]value.Value{}}
	v.visitClosure(n)
	return v.captured
}

type captureVisitor struct {
	external *scope.Scopes
	internal *scope.Scopes
	captured map[string]value.Value
}

func (v *captureVisitor) bind(name string) {
	if name == "" {
		return
	}
	v.internal.Define(name, value.None)
}

func (v *captureVisitor) capture(name string) {
	if _, ok := v.internal.Get(name); ok {
		return
	}
	if _, already := v.captured[name]; already {
		return
	}
	if val, ok := v.external.Get(name); ok {
		v.captured[name] = val
	}
}

func (v *captureVisitor) visit(node ast.Node) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *ast.Ident:
		v.capture(n.Name)
	case *ast.MathIdent:
		v.capture(n.Name)

	case *ast.CodeBlock:
		v.internal.Enter()
		for _, c := range n.Body {
			v.visit(c)
		}
		v.internal.Exit()
	case *ast.ContentBlock:
		v.internal.Enter()
		v.visit(n.Body)
		v.internal.Exit()

	case *ast.FieldAccess:
		v.visit(n.Target)

	case *ast.Closure:
		v.visitClosure(n)

	case *ast.LetBinding:
		v.visit(n.Init)
		v.bindPattern(n.Pattern)

	case *ast.ForLoop:
		v.visit(n.Iterable)
		v.internal.Enter()
		v.bindPattern(n.Pattern)
		v.visit(n.Body)
		v.internal.Exit()

	case *ast.ModuleImport:
		v.visit(n.Source)
		for _, it := range n.Items {
			v.bind(it.BoundAs)
		}
		if n.NewName != "" {
			v.bind(n.NewName)
		}

	default:
		for _, c := range ast.Children(node) {
			v.visit(c)
		}
	}
}

// visitClosure visits a nested closure literal: named-parameter defaults
// are visited before any parameter is bound (so a default cannot see a
// sibling parameter), then the name and parameters are bound for the
// duration of the body walk (spec.md §4.1.6 step 1 "entering nested
// blocks/scopes to shadow names correctly").
func (v *captureVisitor) visitClosure(n *ast.Closure) {
	for _, p := range n.Params {
		if p.Kind == ast.ParamNamed && p.Default != nil {
			v.visit(p.Default)
		}
	}

	v.internal.Enter()
	v.bind(n.Name)
	for _, p := range n.Params {
		switch p.Kind {
		case ast.ParamPositional:
			v.bindPattern(p.Pattern)
		case ast.ParamNamed, ast.ParamSink:
			v.bind(p.Name)
		}
	}
	v.visit(n.Body)
	v.internal.Exit()
}

func (v *captureVisitor) bindPattern(p ast.Pattern) {
	switch pp := p.(type) {
	case nil:
	case *ast.PatternIdent:
		v.bind(pp.Name)
	case *ast.PatternPlaceholder:
	case *ast.PatternArray:
		for _, it := range pp.Items {
			if it.IsSink {
				v.bind(it.SinkName)
				continue
			}
			v.bindPattern(it.Pattern)
		}
	case *ast.PatternDict:
		for _, it := range pp.Items {
			if it.IsSink {
				v.bind(it.SinkName)
				continue
			}
			if it.IsPlaceholder {
				continue
			}
			v.bindPattern(it.Pattern)
		}
	}
}

// callClosure implements spec.md §4.1.6's "on call" steps 1-5. Call depth
// (step 6) is the caller's responsibility (internal/core/eval/calls.go's
// invoke wraps every call with VM.EnterCall/ExitCall).
func callClosure(fn *value.Func, args *value.Args, m *vm.VM) (value.Value, error) {
	c := fn.Closure
	base := scope.New()
	for k, v := range c.Captured {
		base.DefineCaptured(k, v)
	}
	if c.SelfName != "" {
		base.DefineCaptured(c.SelfName, value.FuncVal(fn))
	}
	callScopes := scope.NewScopes(base)

	if err := bindParams(c.Params, args, callScopes, m); err != nil {
		return value.None, err
	}

	savedFlow := m.Flow
	m.Flow = nil
	result, err := Eval(c.Body, m, callScopes)
	if err != nil {
		m.Flow = savedFlow
		return value.None, err
	}

	if m.Flow != nil {
		switch m.Flow.Kind {
		case flow.Return:
			if m.Flow.HasValue {
				result = m.Flow.Value
			} else {
				result = value.None
			}
		case flow.Break:
			m.Flow = savedFlow
			return value.None, errors.New("cannot break outside of a loop")
		case flow.Continue:
			m.Flow = savedFlow
			return value.None, errors.New("cannot continue outside of a loop")
		}
	}
	m.Flow = savedFlow
	return result, nil
}

// bindParams implements spec.md §4.1.6 step 2.
func bindParams(params []ast.Param, args *value.Args, callScopes *scope.Scopes, m *vm.VM) error {
	posIdx := 0
	usedNamed := make(map[string]bool, len(args.NamedKeys))
	sinkSeen := false

	for _, p := range params {
		switch p.Kind {
		case ast.ParamPositional:
			if posIdx >= len(args.Positional) {
				return errors.Newf(p.Span.Start(), "missing argument")
			}
			if err := defineBindings(p.Pattern, args.Positional[posIdx], callScopes); err != nil {
				return err
			}
			posIdx++

		case ast.ParamPlaceholder:
			if posIdx < len(args.Positional) {
				posIdx++
			}

		case ast.ParamNamed:
			if v, ok := args.Named[p.Name]; ok {
				usedNamed[p.Name] = true
				callScopes.Define(p.Name, v)
				continue
			}
			if p.Default == nil {
				return errors.Newf(p.Span.Start(), "missing argument: %s", p.Name)
			}
			v, err := Eval(p.Default, m, callScopes)
			if err != nil {
				return err
			}
			callScopes.Define(p.Name, v)

		case ast.ParamSink:
			sinkSeen = true
			remaining := value.NewArgs()
			remaining.Positional = append(remaining.Positional, args.Positional[posIdx:]...)
			posIdx = len(args.Positional)
			for _, k := range args.NamedKeys {
				if usedNamed[k] {
					continue
				}
				usedNamed[k] = true
				remaining.NamedKeys = append(remaining.NamedKeys, k)
				remaining.Named[k] = args.Named[k]
			}
			if p.Name != "" {
				callScopes.Define(p.Name, value.ArgsVal(remaining))
			}
		}
	}

	if !sinkSeen {
		if posIdx < len(args.Positional) {
			return errors.New("too many arguments")
		}
		for _, k := range args.NamedKeys {
			if !usedNamed[k] {
				return errors.New("unexpected named argument: " + k)
			}
		}
	}
	return nil
}
