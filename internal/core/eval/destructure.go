package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/mutref"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
)

func evalLetBinding(n *ast.LetBinding, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	init := value.None
	if n.Init != nil {
		v, err := Eval(n.Init, m, scopes)
		if err != nil {
			return value.None, err
		}
		init = v
	}
	if err := walkPattern(n.Pattern, init, func(leaf ast.Pattern, v value.Value) error {
		return defineLeaf(leaf, v, scopes)
	}); err != nil {
		return value.None, err
	}
	return value.None, nil
}

func evalDestructAssignment(n *ast.DestructAssignment, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	v, err := Eval(n.Value, m, scopes)
	if err != nil {
		return value.None, err
	}
	if err := walkPattern(n.Pattern, v, func(leaf ast.Pattern, val value.Value) error {
		return assignLeaf(leaf, val, scopes)
	}); err != nil {
		return value.None, err
	}
	return value.None, nil
}

func defineLeaf(p ast.Pattern, v value.Value, scopes *scope.Scopes) error {
	switch pp := p.(type) {
	case *ast.PatternIdent:
		scopes.Define(pp.Name, v)
		return nil
	case *ast.PatternPlaceholder:
		return nil
	default:
		return errors.Newf(p.Span().Start(), "nested patterns not supported")
	}
}

func assignLeaf(p ast.Pattern, v value.Value, scopes *scope.Scopes) error {
	switch pp := p.(type) {
	case *ast.PatternIdent:
		owner, isBase := scopes.Owner(pp.Name)
		if owner == nil {
			if isBase {
				return errors.Newf(pp.Span().Start(), "cannot assign to constant %s", pp.Name)
			}
			return errors.Newf(pp.Span().Start(), "%s", scope.UnknownVariableError(pp.Name).Error())
		}
		if kind, _ := owner.Kind(pp.Name); kind == scope.Captured {
			return errors.Newf(pp.Span().Start(), "cannot mutate %s: captured value", pp.Name)
		}
		return mutref.Mut(owner, pp.Name).Set(v)
	case *ast.PatternPlaceholder:
		return nil
	default:
		return errors.Newf(p.Span().Start(), "nested patterns not supported")
	}
}

// defineBindings is walkPattern specialized to Define mode, used directly
// by for-loop pattern binding (spec.md §4.4: the loop pattern always
// introduces fresh bindings, never assigns through existing ones).
func defineBindings(pattern ast.Pattern, v value.Value, scopes *scope.Scopes) error {
	return walkPattern(pattern, v, func(leaf ast.Pattern, val value.Value) error {
		return defineLeaf(leaf, val, scopes)
	})
}

// walkPattern destructures v according to pattern, invoking bind at every
// leaf (identifier or placeholder) with the value that leaf receives.
// Array and dictionary patterns are resolved structurally here, one level
// deep; a nested array/dict sub-pattern is handed to bind unchanged, and
// the binders reject it (spec.md §4.1.4 "non-identifier leaves are
// currently rejected").
func walkPattern(pattern ast.Pattern, v value.Value, bind func(ast.Pattern, value.Value) error) error {
	switch p := pattern.(type) {
	case *ast.PatternIdent, *ast.PatternPlaceholder:
		return bind(pattern, v)
	case *ast.PatternArray:
		return walkArrayPattern(p, v, bind)
	case *ast.PatternDict:
		return walkDictPattern(p, v, bind)
	default:
		return errors.Newf(pattern.Span().Start(), "unsupported pattern")
	}
}

func walkArrayPattern(p *ast.PatternArray, v value.Value, bind func(ast.Pattern, value.Value) error) error {
	if v.Kind() != value.KindArray {
		return errors.Newf(p.Span().Start(), "cannot destructure %s as array", v.Kind())
	}
	arr := v.ArrayItems()

	sinkIdx := -1
	for i, it := range p.Items {
		if it.IsSink {
			sinkIdx = i
			break
		}
	}
	n := len(p.Items)

	if sinkIdx == -1 {
		if len(arr) < n {
			return errors.Newf(p.Span().Start(), "not enough elements to destructure")
		}
		if len(arr) > n {
			return errors.Newf(p.Span().Start(), "too many elements to destructure")
		}
		for i, it := range p.Items {
			if err := bind(it.Pattern, arr[i]); err != nil {
				return err
			}
		}
		return nil
	}

	sinkSize := 1 + len(arr) - n
	if sinkSize < 0 {
		return errors.Newf(p.Span().Start(), "not enough elements to destructure")
	}
	before := arr[:sinkIdx]
	sunk := arr[sinkIdx : sinkIdx+sinkSize]
	after := arr[sinkIdx+sinkSize:]

	for i, it := range p.Items[:sinkIdx] {
		if err := bind(it.Pattern, before[i]); err != nil {
			return err
		}
	}
	if p.Items[sinkIdx].SinkName != "" {
		sinkPattern := ast.NewPatternIdent(p.Items[sinkIdx].Span, p.Items[sinkIdx].SinkName)
		if err := bind(sinkPattern, value.Array(sunk)); err != nil {
			return err
		}
	}
	for i, it := range p.Items[sinkIdx+1:] {
		if err := bind(it.Pattern, after[i]); err != nil {
			return err
		}
	}
	return nil
}

func walkDictPattern(p *ast.PatternDict, v value.Value, bind func(ast.Pattern, value.Value) error) error {
	if v.Kind() != value.KindDict {
		return errors.Newf(p.Span().Start(), "cannot destructure %s as dictionary", v.Kind())
	}

	used := make(map[string]bool, len(p.Items))
	var sinkName string
	var sinkSpan = p.Span()
	hasSink := false

	for _, it := range p.Items {
		if it.IsSink {
			sinkName = it.SinkName
			sinkSpan = it.Span
			hasSink = true
			continue
		}
		val, ok := v.DictGet(it.Key)
		if !ok {
			return errors.Newf(it.Span.Start(), "missing key %q", it.Key)
		}
		used[it.Key] = true
		if it.IsPlaceholder {
			continue
		}
		if err := bind(it.Pattern, val); err != nil {
			return err
		}
	}

	if hasSink && sinkName != "" {
		rest := value.EmptyDict()
		for _, k := range v.DictKeys() {
			if used[k] {
				continue
			}
			vv, _ := v.DictGet(k)
			rest = rest.DictSet(k, vv)
		}
		sinkPattern := ast.NewPatternIdent(sinkSpan, sinkName)
		if err := bind(sinkPattern, rest); err != nil {
			return err
		}
	}
	return nil
}
