package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
	"github.com/scrivenlang/scriven/internal/numeric"
)

func evalUnary(n *ast.Unary, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	v, err := Eval(n.X, m, scopes)
	if err != nil {
		return value.None, err
	}
	switch n.Op {
	case ast.UnaryNot:
		b, ok := v.Truthy()
		if !ok {
			return value.None, errors.Newf(n.X.Span().Start(), "expected boolean, found %s", v.Kind())
		}
		return value.Bool(!b), nil
	case ast.UnaryNeg:
		switch v.Kind() {
		case value.KindInt:
			return value.Int(-v.AsInt()), nil
		case value.KindFloat:
			return value.Float(-v.AsFloat()), nil
		case value.KindNumeric:
			return value.Numeric(-v.AsFloat(), v.NumericUnit()), nil
		}
		return value.None, errors.Newf(n.X.Span().Start(), "cannot negate %s", v.Kind())
	case ast.UnaryPos:
		switch v.Kind() {
		case value.KindInt, value.KindFloat, value.KindNumeric:
			return v, nil
		}
		return value.None, errors.Newf(n.X.Span().Start(), "cannot apply unary plus to %s", v.Kind())
	default:
		return value.None, errors.Newf(n.Span().Start(), "unknown unary operator")
	}
}

func evalBinary(n *ast.Binary, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	if n.Op.IsAssign() {
		return evalAssign(n, m, scopes)
	}

	switch n.Op {
	case ast.BinAnd:
		return evalShortCircuit(n, m, scopes, false)
	case ast.BinOr:
		return evalShortCircuit(n, m, scopes, true)
	}

	x, err := Eval(n.X, m, scopes)
	if err != nil {
		return value.None, err
	}
	y, err := Eval(n.Y, m, scopes)
	if err != nil {
		return value.None, err
	}

	switch n.Op {
	case ast.BinEq:
		return value.Bool(value.Equal(x, y)), nil
	case ast.BinNeq:
		return value.Bool(!value.Equal(x, y)), nil
	case ast.BinIn:
		return evalMembership(n, x, y, false)
	case ast.BinNotIn:
		return evalMembership(n, x, y, true)
	case ast.BinLt, ast.BinLte, ast.BinGt, ast.BinGte:
		return evalCompare(n, x, y)
	case ast.BinAdd:
		return arith(n, x, y, opAdd)
	case ast.BinSub:
		return arith(n, x, y, opSub)
	case ast.BinMul:
		return arith(n, x, y, opMul)
	case ast.BinDiv:
		return arith(n, x, y, opDiv)
	default:
		return value.None, errors.Newf(n.Span().Start(), "unknown binary operator")
	}
}

// evalShortCircuit implements spec.md §4.1.3: and/or short-circuit on the
// left operand when it is a boolean that already determines the result
// (false for and, true for or).
func evalShortCircuit(n *ast.Binary, m *vm.VM, scopes *scope.Scopes, shortOn bool) (value.Value, error) {
	x, err := Eval(n.X, m, scopes)
	if err != nil {
		return value.None, err
	}
	if b, ok := x.Truthy(); ok && b == shortOn {
		return value.Bool(shortOn), nil
	}
	if _, ok := x.Truthy(); !ok {
		return value.None, errors.Newf(n.X.Span().Start(), "expected boolean, found %s", x.Kind())
	}
	y, err := Eval(n.Y, m, scopes)
	if err != nil {
		return value.None, err
	}
	b, ok := y.Truthy()
	if !ok {
		return value.None, errors.Newf(n.Y.Span().Start(), "expected boolean, found %s", y.Kind())
	}
	return value.Bool(b), nil
}

func evalMembership(n *ast.Binary, needle, hay value.Value, negate bool) (value.Value, error) {
	var found bool
	switch hay.Kind() {
	case value.KindStr:
		if needle.Kind() != value.KindStr {
			return value.None, errors.Newf(n.X.Span().Start(), "expected string, found %s", needle.Kind())
		}
		found = len(needle.AsStr()) == 0 || containsSubstr(hay.AsStr(), needle.AsStr())
	case value.KindArray:
		for _, item := range hay.ArrayItems() {
			if value.Equal(item, needle) {
				found = true
				break
			}
		}
	case value.KindDict:
		if needle.Kind() != value.KindStr {
			return value.None, errors.Newf(n.X.Span().Start(), "expected string, found %s", needle.Kind())
		}
		_, found = hay.DictGet(needle.AsStr())
	default:
		return value.None, errors.Newf(n.Y.Span().Start(), "cannot use 'in' on %s", hay.Kind())
	}
	if negate {
		found = !found
	}
	return value.Bool(found), nil
}

func containsSubstr(hay, needle string) bool {
	if len(needle) > len(hay) {
		return false
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		if hay[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func evalCompare(n *ast.Binary, x, y value.Value) (value.Value, error) {
	var c int
	switch {
	case x.Kind() == value.KindInt && y.Kind() == value.KindInt:
		switch {
		case x.AsInt() < y.AsInt():
			c = -1
		case x.AsInt() > y.AsInt():
			c = 1
		}
	case isNumberKind(x.Kind()) && isNumberKind(y.Kind()):
		c = numeric.CompareFloat(numberAsFloat(x), numberAsFloat(y))
	case x.Kind() == value.KindStr && y.Kind() == value.KindStr:
		switch {
		case x.AsStr() < y.AsStr():
			c = -1
		case x.AsStr() > y.AsStr():
			c = 1
		}
	default:
		return value.None, errors.Newf(n.Span().Start(), "cannot compare %s with %s", x.Kind(), y.Kind())
	}
	switch n.Op {
	case ast.BinLt:
		return value.Bool(c < 0), nil
	case ast.BinLte:
		return value.Bool(c <= 0), nil
	case ast.BinGt:
		return value.Bool(c > 0), nil
	default:
		return value.Bool(c >= 0), nil
	}
}

func isNumberKind(k value.Kind) bool {
	return k == value.KindInt || k == value.KindFloat || k == value.KindNumeric
}

func numberAsFloat(v value.Value) float64 {
	if v.Kind() == value.KindInt {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
)

// arith dispatches +,-,*,/ across Int/Float/Numeric/Str/Array/Content per
// spec.md §4.1.3, routing float math through internal/numeric's
// decimal-backed helpers.
func arith(n *ast.Binary, x, y value.Value, op arithOp) (value.Value, error) {
	if op == opAdd {
		if v, ok, err := tryJoinAdd(n, x, y); ok {
			return v, err
		}
	}

	if x.Kind() == value.KindInt && y.Kind() == value.KindInt {
		a, b := x.AsInt(), y.AsInt()
		switch op {
		case opAdd:
			return value.Int(numeric.AddInt(a, b)), nil
		case opSub:
			return value.Int(numeric.SubInt(a, b)), nil
		case opMul:
			return value.Int(numeric.MulInt(a, b)), nil
		case opDiv:
			if r, ok := numeric.DivIntExact(a, b); ok {
				return value.Int(r), nil
			}
			if b == 0 {
				return value.None, errors.Newf(n.Span().Start(), "division by zero")
			}
			return value.Float(float64(a) / float64(b)), nil
		}
	}

	if isNumberKind(x.Kind()) && isNumberKind(y.Kind()) {
		unit := resultUnit(x, y)
		a, b := numberAsFloat(x), numberAsFloat(y)
		var f float64
		switch op {
		case opAdd:
			f = numeric.AddFloat(a, b)
		case opSub:
			f = numeric.SubFloat(a, b)
		case opMul:
			f = numeric.MulFloat(a, b)
		case opDiv:
			r, err := numeric.DivFloat(a, b)
			if err != nil {
				return value.None, errors.Newf(n.Span().Start(), "division by zero")
			}
			f = r
		}
		if unit == 0 {
			return value.Float(f), nil
		}
		return value.Numeric(f, unit), nil
	}

	return value.None, errors.Newf(n.Span().Start(), "cannot apply operator to %s and %s", x.Kind(), y.Kind())
}

// resultUnit picks the operand's unit for a Numeric result: at most one
// side carries a unit in the expressions this evaluator admits (unit
// arithmetic between two distinct units is rejected upstream by the
// grammar, not here).
func resultUnit(x, y value.Value) ast.Unit {
	if x.Kind() == value.KindNumeric {
		return x.NumericUnit()
	}
	if y.Kind() == value.KindNumeric {
		return y.NumericUnit()
	}
	return 0
}

// tryJoinAdd handles the "+" operator's string/array/content concatenation
// cases via the same Join combinator code sequencing uses, so "a" + "b"
// and + between content fragments share one implementation.
func tryJoinAdd(n *ast.Binary, x, y value.Value) (value.Value, bool, error) {
	switch {
	case x.Kind() == value.KindStr && y.Kind() == value.KindStr,
		x.Kind() == value.KindArray && y.Kind() == value.KindArray,
		x.Kind() == value.KindContent && y.Kind() == value.KindContent:
		v, err := value.Join(x, y)
		if err != nil {
			return value.None, true, errors.Newf(n.Span().Start(), "%s", err.Error())
		}
		return v, true, nil
	default:
		return value.None, false, nil
	}
}

// evalAssign implements spec.md §4.1.3's assignment rule: a plain
// field-access-on-dict left-hand side writes the field directly; every
// other assignment obtains a Mut borrow and applies the compound
// operator, if any.
func evalAssign(n *ast.Binary, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	if n.Op == ast.BinAssign {
		if fa, ok := n.X.(*ast.FieldAccess); ok {
			if targetMut, isDict, err := tryDictFieldAssign(fa, m, scopes); err != nil {
				return value.None, err
			} else if isDict {
				v, err := Eval(n.Y, m, scopes)
				if err != nil {
					return value.None, err
				}
				return value.None, targetMut.Set(v)
			}
		}
	}

	lhsMut, err := EvalMaybeMut(n.X, m, scopes)
	if err != nil {
		return value.None, err
	}
	rhs, err := Eval(n.Y, m, scopes)
	if err != nil {
		return value.None, err
	}

	newVal := rhs
	if n.Op != ast.BinAssign {
		current := lhsMut.Get()
		var op arithOp
		switch n.Op {
		case ast.BinAddAssign:
			op = opAdd
		case ast.BinSubAssign:
			op = opSub
		case ast.BinMulAssign:
			op = opMul
		case ast.BinDivAssign:
			op = opDiv
		}
		v, err := arith(n, current, rhs, op)
		if err != nil {
			return value.None, err
		}
		newVal = v
	}

	if !lhsMut.IsMut() {
		return value.None, errors.Newf(n.X.Span().Start(), "cannot assign to %s value", lhsMut.Reason())
	}
	return value.None, lhsMut.Set(newVal)
}

// tryDictFieldAssign evaluates fa.Target to a MaybeMut and reports
// whether it is a dictionary, the special case that creates or updates
// the field without going through eval_maybe_mut on the field itself.
func tryDictFieldAssign(fa *ast.FieldAccess, m *vm.VM, scopes *scope.Scopes) (targetMut interface {
	Get() value.Value
	Set(value.Value) error
}, isDict bool, err error) {
	tm, err := EvalMaybeMut(fa.Target, m, scopes)
	if err != nil {
		return nil, false, err
	}
	if tm.Get().Kind() != value.KindDict {
		return nil, false, nil
	}
	field := fa.Field
	return dictFieldRef{target: tm, field: field}, true, nil
}

type dictFieldRef struct {
	target interface {
		Get() value.Value
		Set(value.Value) error
	}
	field string
}

func (d dictFieldRef) Get() value.Value {
	v, _ := d.target.Get().DictGet(d.field)
	return v
}

func (d dictFieldRef) Set(v value.Value) error {
	return d.target.Set(d.target.Get().DictSet(d.field, v))
}
