package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/flow"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
	"github.com/scrivenlang/scriven/internal/grapheme"
	"github.com/scrivenlang/scriven/span"
)

// evalCode implements spec.md §4.1.2: a code block's statements are
// evaluated in order and combined with Join, with the same set/show
// tail-wrapping rule as markup: the joined tail is coerced to content with
// value.Display and wrapped in a Styled element.
func evalCode(exprs []ast.Expr, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	acc := value.None
	for i := 0; i < len(exprs); i++ {
		expr := exprs[i]

		if set, ok := expr.(*ast.SetRule); ok {
			styleVal, err := evalSetRuleValue(set, m, scopes)
			if err != nil {
				return value.None, err
			}
			if m.Flow != nil {
				return acc, nil
			}
			tailVal, err := evalCode(exprs[i+1:], m, scopes)
			if err != nil {
				return value.None, err
			}
			styled := value.ContentVal(content.Styled{Body: value.Display(tailVal), Style: styleVal})
			return value.Join(acc, styled)
		}

		if show, ok := expr.(*ast.ShowRule); ok {
			recipeVal, err := evalShowRuleValue(show, m, scopes)
			if err != nil {
				return value.None, err
			}
			if m.Flow != nil {
				return acc, nil
			}
			tailVal, err := evalCode(exprs[i+1:], m, scopes)
			if err != nil {
				return value.None, err
			}
			styled := value.ContentVal(content.Styled{Body: value.Display(tailVal), Recipe: recipeVal})
			return value.Join(acc, styled)
		}

		v, err := Eval(expr, m, scopes)
		if err != nil {
			return value.None, err
		}
		joined, err := value.Join(acc, v)
		if err != nil {
			return value.None, errors.Newf(expr.Span().Start(), "%s", err.Error())
		}
		acc = joined

		if m.Flow != nil {
			return acc, nil
		}
	}
	return acc, nil
}

func evalConditional(n *ast.Conditional, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	cv, err := Eval(n.Cond, m, scopes)
	if err != nil {
		return value.None, err
	}
	b, ok := cv.Truthy()
	if !ok {
		return value.None, errors.Newf(n.Cond.Span().Start(), "expected boolean condition, found %s", cv.Kind())
	}
	scopes.Enter()
	defer scopes.Exit()
	if b {
		return Eval(n.Then, m, scopes)
	}
	if n.Else != nil {
		return Eval(n.Else, m, scopes)
	}
	return value.None, nil
}

// evalWhileLoop implements spec.md §4.4's "While" rules, including the
// always-true-condition diagnostic checked only on the first iteration.
//
// Like callClosure, it takes the incoming flow event before running
// (it should always be nil entering a loop, but is saved rather than
// assumed) and restores it on every exit path except Return, which must
// keep propagating out to the enclosing function call.
func evalWhileLoop(n *ast.WhileLoop, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	savedFlow := m.Flow
	m.Flow = nil

	acc := value.None
	iterations := 0
	for {
		cv, err := Eval(n.Cond, m, scopes)
		if err != nil {
			m.Flow = savedFlow
			return value.None, err
		}
		b, ok := cv.Truthy()
		if !ok {
			m.Flow = savedFlow
			return value.None, errors.Newf(n.Cond.Span().Start(), "expected boolean condition, found %s", cv.Kind())
		}
		if !b {
			m.Flow = savedFlow
			return acc, nil
		}
		if iterations == 0 && isInvariant(n.Cond) && !isDivergent(n.Body) {
			m.Flow = savedFlow
			return value.None, errors.Newf(n.Cond.Span().Start(), "condition is always true")
		}
		iterations++
		if iterations >= vm.MaxIterations() {
			m.Flow = savedFlow
			return value.None, errors.Newf(n.Span().Start(), "loop seems infinite")
		}

		scopes.Enter()
		v, err := Eval(n.Body, m, scopes)
		scopes.Exit()
		if err != nil {
			m.Flow = savedFlow
			return value.None, err
		}
		joined, err := value.Join(acc, v)
		if err != nil {
			m.Flow = savedFlow
			return value.None, errors.Newf(n.Body.Span().Start(), "%s", err.Error())
		}
		acc = joined

		if m.Flow != nil {
			switch m.Flow.Kind {
			case flow.Break:
				m.Flow = savedFlow
				return acc, nil
			case flow.Continue:
				m.Flow = savedFlow
				continue
			case flow.Return:
				return acc, nil
			}
		}
	}
}

// evalForLoop implements spec.md §4.4's "For" admission rules: a string
// admits only an identifier pattern (iterated by extended grapheme
// cluster), a dict or array admits any pattern.
func evalForLoop(n *ast.ForLoop, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	iter, err := Eval(n.Iterable, m, scopes)
	if err != nil {
		return value.None, err
	}

	switch iter.Kind() {
	case value.KindStr:
		ident, ok := n.Pattern.(*ast.PatternIdent)
		if !ok {
			return value.None, errors.Newf(n.Pattern.Span().Start(), "cannot destructure values of string")
		}
		acc := value.None
		for _, g := range grapheme.Split(iter.AsStr()) {
			scopes.Enter()
			scopes.Define(ident.Name, value.Str(g))
			v, err := Eval(n.Body, m, scopes)
			scopes.Exit()
			if err != nil {
				return value.None, err
			}
			joined, err := value.Join(acc, v)
			if err != nil {
				return value.None, errors.Newf(n.Body.Span().Start(), "%s", err.Error())
			}
			acc = joined
			if stop, done := observeLoopFlow(m); done {
				return acc, nil
			} else if stop {
				continue
			}
		}
		return acc, nil

	case value.KindDict:
		acc := value.None
		for _, k := range iter.DictKeys() {
			v, _ := iter.DictGet(k)
			scopes.Enter()
			if err := bindForPattern(n.Pattern, value.Array([]value.Value{value.Str(k), v}), scopes); err != nil {
				scopes.Exit()
				return value.None, err
			}
			bv, err := Eval(n.Body, m, scopes)
			scopes.Exit()
			if err != nil {
				return value.None, err
			}
			joined, err := value.Join(acc, bv)
			if err != nil {
				return value.None, errors.Newf(n.Body.Span().Start(), "%s", err.Error())
			}
			acc = joined
			if stop, done := observeLoopFlow(m); done {
				return acc, nil
			} else if stop {
				continue
			}
		}
		return acc, nil

	case value.KindArray:
		acc := value.None
		for _, item := range iter.ArrayItems() {
			scopes.Enter()
			if err := bindForPattern(n.Pattern, item, scopes); err != nil {
				scopes.Exit()
				return value.None, err
			}
			bv, err := Eval(n.Body, m, scopes)
			scopes.Exit()
			if err != nil {
				return value.None, err
			}
			joined, err := value.Join(acc, bv)
			if err != nil {
				return value.None, errors.Newf(n.Body.Span().Start(), "%s", err.Error())
			}
			acc = joined
			if stop, done := observeLoopFlow(m); done {
				return acc, nil
			} else if stop {
				continue
			}
		}
		return acc, nil

	default:
		return value.None, errors.Newf(n.Iterable.Span().Start(), "cannot loop over %s", iter.Kind())
	}
}

// bindForPattern binds item into scopes.Top() according to pattern, for
// the dict/array admission cases where any pattern (not just a plain
// identifier) is allowed.
func bindForPattern(pattern ast.Pattern, item value.Value, scopes *scope.Scopes) error {
	return defineBindings(pattern, item, scopes)
}

// observeLoopFlow consumes a pending Break/Continue and reports whether
// the loop must stop (true, true) or skip to the next iteration
// (true, false meaning "continue" handled by the caller's loop construct
// continuing naturally); Return leaves flow set and stops the loop.
func observeLoopFlow(m *vm.VM) (stop bool, done bool) {
	if m.Flow == nil {
		return false, false
	}
	switch m.Flow.Kind {
	case flow.Break:
		m.Flow = nil
		return true, true
	case flow.Continue:
		m.Flow = nil
		return true, false
	case flow.Return:
		return true, true
	}
	return false, false
}

func breakEvent(s span.Span) flow.Event    { return flow.NewBreak(s) }
func continueEvent(s span.Span) flow.Event { return flow.NewContinue(s) }

func evalReturn(n *ast.FuncReturn, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	if n.Value == nil {
		m.RaiseFlow(flow.NewReturn(n.Span(), value.None, false))
		return value.None, nil
	}
	v, err := Eval(n.Value, m, scopes)
	if err != nil {
		return value.None, err
	}
	m.RaiseFlow(flow.NewReturn(n.Span(), v, true))
	return value.None, nil
}

// isInvariant reports whether node can never change value across loop
// iterations: it contains no identifier or math-identifier reference,
// recursively (spec.md §4.4 "always true" diagnostic precondition).
func isInvariant(node ast.Node) bool {
	switch node.(type) {
	case *ast.Ident, *ast.MathIdent:
		return false
	}
	for _, c := range ast.Children(node) {
		if !isInvariant(c) {
			return false
		}
	}
	return true
}

// isDivergent reports whether node contains a break or return anywhere in
// its (non-nested-loop) subtree, recursively. Nested loops/closures have
// their own break/return scope and do not make the outer loop divergent.
func isDivergent(node ast.Node) bool {
	switch node.(type) {
	case *ast.LoopBreak, *ast.FuncReturn:
		return true
	case *ast.WhileLoop, *ast.ForLoop, *ast.Closure:
		return false
	}
	for _, c := range ast.Children(node) {
		if isDivergent(c) {
			return true
		}
	}
	return false
}
