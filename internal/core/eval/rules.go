package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
)

// evalSetRuleValue evaluates a set rule's target call to the style value
// it applies to its tail, or value.None (a no-op style) when Condition is
// present and false (spec.md §4.1.1/§4.1.2).
func evalSetRuleValue(n *ast.SetRule, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	if n.Condition != nil {
		cv, err := Eval(n.Condition, m, scopes)
		if err != nil {
			return value.None, err
		}
		b, ok := cv.Truthy()
		if !ok {
			return value.None, errors.Newf(n.Condition.Span().Start(), "expected boolean condition, found %s", cv.Kind())
		}
		if !b {
			return value.None, nil
		}
	}
	return evalFuncCall(n.Target, m, scopes)
}

// evalShowRuleValue evaluates a show rule to an opaque recipe value: a
// dictionary carrying its selector (none for "everything") and its
// transform, consumed by content.Styled{Recipe: ...} the way evalMarkup
// and evalCode attach it to the styled tail.
func evalShowRuleValue(n *ast.ShowRule, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	selector := value.None
	if n.Selector != nil {
		v, err := Eval(n.Selector, m, scopes)
		if err != nil {
			return value.None, err
		}
		selector = v
	}
	transform, err := Eval(n.Transform, m, scopes)
	if err != nil {
		return value.None, err
	}
	recipe := value.EmptyDict()
	recipe = recipe.DictSet("selector", selector)
	recipe = recipe.DictSet("transform", transform)
	return recipe, nil
}
