package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
	"github.com/scrivenlang/scriven/span"
)

func evalArrayExpr(n *ast.ArrayExpr, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	items := make([]value.Value, 0, len(n.Items))
	for _, it := range n.Items {
		v, err := Eval(it.Value, m, scopes)
		if err != nil {
			return value.None, err
		}
		if it.Spread {
			if v.Kind() != value.KindArray {
				return value.None, errors.Newf(it.Value.Span().Start(), "cannot spread %s", v.Kind())
			}
			items = append(items, v.ArrayItems()...)
			continue
		}
		items = append(items, v)
	}
	return value.Array(items), nil
}

func evalDictExpr(n *ast.DictExpr, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	result := value.EmptyDict()
	for _, it := range n.Items {
		v, err := Eval(it.Value, m, scopes)
		if err != nil {
			return value.None, err
		}
		if it.Spread {
			if v.Kind() != value.KindDict {
				return value.None, errors.Newf(it.Value.Span().Start(), "cannot spread %s", v.Kind())
			}
			for _, k := range v.DictKeys() {
				vv, _ := v.DictGet(k)
				result = result.DictSet(k, vv)
			}
			continue
		}
		key := it.Name
		if it.Key != nil {
			kv, err := Eval(it.Key, m, scopes)
			if err != nil {
				return value.None, err
			}
			if kv.Kind() != value.KindStr {
				return value.None, errors.Newf(it.Key.Span().Start(), "expected string key, found %s", kv.Kind())
			}
			key = kv.AsStr()
		}
		result = result.DictSet(key, v)
	}
	return result, nil
}

// evalFieldAccessValue reads target.Field. Method-vs-field precedence for
// call expressions is handled separately in evalFuncCall; this path only
// serves plain (non-call) field reads.
func evalFieldAccessValue(n *ast.FieldAccess, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	target, err := Eval(n.Target, m, scopes)
	if err != nil {
		return value.None, err
	}
	return readFieldValue(target, n.Field, n.FieldSpan)
}

// readFieldValue implements plain field reads for the value kinds that
// admit fields: dictionaries by key, and modules/functions-with-scope by
// their exposed binding name.
func readFieldValue(target value.Value, field string, fieldSpan span.Span) (value.Value, error) {
	switch target.Kind() {
	case value.KindDict:
		v, ok := target.DictGet(field)
		if !ok {
			return value.None, errors.Newf(fieldSpan.Start(), "dictionary does not contain key %q", field)
		}
		return v, nil
	case value.KindModule:
		mod := target.AsModule()
		if v, ok := mod.Scope.Get(field); ok {
			return v, nil
		}
		return value.None, errors.Newf(fieldSpan.Start(), "module %q has no binding %q", mod.Name, field)
	case value.KindFunc:
		fn := target.AsFunc()
		if fn.Scope != nil {
			if v, ok := fn.Scope.Get(field); ok {
				return v, nil
			}
		}
		return value.None, errors.Newf(fieldSpan.Start(), "function has no field %q", field)
	default:
		return value.None, errors.Newf(fieldSpan.Start(), "cannot access field %q on %s", field, target.Kind())
	}
}
