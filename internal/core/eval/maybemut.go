package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/mutref"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
)

// EvalMaybeMut evaluates node to a MaybeMut (spec.md §4.1 "eval_maybe_mut
// (node, vm, scopes) -> MaybeMut"): an identifier bound in a lexical
// scope, a parenthesized sub-expression of such a node, and a field
// access on a dictionary yield Mut. Captured and base-library identifiers
// yield Im with reason Captured or Const. Function and method calls have
// no case of their own and, like every other node, yield Im(_, Temporary).
func EvalMaybeMut(node ast.Node, m *vm.VM, scopes *scope.Scopes) (mutref.MaybeMut, error) {
	switch n := node.(type) {

	case *ast.Ident:
		owner, isBase := scopes.Owner(n.Name)
		if owner == nil {
			if isBase {
				v, _ := scopes.Get(n.Name)
				return mutref.Im(v, n.Span(), mutref.Const), nil
			}
			return mutref.MaybeMut{}, errors.Newf(n.Span().Start(), "%s", scope.UnknownVariableError(n.Name).Error())
		}
		if kind, _ := owner.Kind(n.Name); kind == scope.Captured {
			v, _ := owner.Get(n.Name)
			return mutref.Im(v, n.Span(), mutref.Captured), nil
		}
		return mutref.Mut(owner, n.Name), nil

	case *ast.Parenthesized:
		return EvalMaybeMut(n.Inner, m, scopes)

	case *ast.FieldAccess:
		targetMut, err := EvalMaybeMut(n.Target, m, scopes)
		if err != nil {
			return mutref.MaybeMut{}, err
		}
		targetVal := targetMut.Get()
		if targetVal.Kind() != value.KindDict {
			v, err := readFieldValue(targetVal, n.Field, n.FieldSpan)
			if err != nil {
				return mutref.MaybeMut{}, err
			}
			return mutref.Im(v, n.Span(), mutref.Temporary), nil
		}
		field := n.Field
		get := func() value.Value {
			v, _ := targetMut.Get().DictGet(field)
			return v
		}
		set := func(v value.Value) error {
			return targetMut.Set(targetMut.Get().DictSet(field, v))
		}
		return mutref.CustomMut(get, set), nil

	default:
		v, err := Eval(node, m, scopes)
		if err != nil {
			return mutref.MaybeMut{}, err
		}
		return mutref.Im(v, node.Span(), mutref.Temporary), nil
	}
}
