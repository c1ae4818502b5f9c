package eval

import (
	"strings"
	"unicode/utf8"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/mutref"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
	"github.com/scrivenlang/scriven/span"
)

// methodTable is the fixed set of dictionary methods that outrank a
// same-named field read (spec.md §4.1.5 step 2). Symbols, modules, and
// user functions are excluded per the spec's explicit carve-out; they
// expose .with/.where only through the function type's own method table,
// which call sites reach without going through this map.
var methodTable = map[string]func(recv mutref.MaybeMut, args *value.Args) (value.Value, error){
	"insert": dictInsertMethod,
	"remove": dictRemoveMethod,
}

func evalFuncCall(n *ast.FuncCall, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	if m.CallDepth >= vm.MaxCallDepth() {
		return value.None, errors.Newf(n.Span().Start(), "maximum function call depth exceeded")
	}

	args, err := evalArgs(n.Args, m, scopes)
	if err != nil {
		return value.None, err
	}

	if fa, ok := n.Callee.(*ast.FieldAccess); ok {
		return evalMethodOrFieldCall(n, fa, args, m, scopes)
	}

	callee, err := Eval(n.Callee, m, scopes)
	if err != nil {
		return value.None, err
	}

	if callee.Kind() != value.KindFunc {
		if mathCallee, ok := mathCalleeNode(n.Callee); ok {
			return evalMathCallFallback(mathCallee, callee, n, args, m)
		}
		return value.None, errors.Newf(n.Callee.Span().Start(), "cannot call %s", callee.Kind())
	}

	return invoke(callee.AsFunc(), args, n.Span(), m)
}

func evalMethodOrFieldCall(n *ast.FuncCall, fa *ast.FieldAccess, args *value.Args, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	targetMut, err := EvalMaybeMut(fa.Target, m, scopes)
	if err != nil {
		return value.None, err
	}
	targetVal := targetMut.Get()

	if targetVal.Kind() != value.KindSymbol && targetVal.Kind() != value.KindModule && targetVal.Kind() != value.KindFunc {
		if method, ok := methodTable[fa.Field]; ok {
			return method(targetMut, args)
		}
	}

	callee, err := readFieldValue(targetVal, fa.Field, fa.FieldSpan)
	if err != nil {
		return value.None, err
	}
	if callee.Kind() != value.KindFunc {
		if mathCallee, ok := mathCalleeNode(fa); ok {
			return evalMathCallFallback(mathCallee, callee, n, args, m)
		}
		return value.None, errors.Newf(fa.Span().Start(), "cannot call %s", callee.Kind())
	}
	return invoke(callee.AsFunc(), args, n.Span(), m)
}

func evalArgs(a *ast.Args, m *vm.VM, scopes *scope.Scopes) (*value.Args, error) {
	out := value.NewArgs()
	if a == nil {
		return out, nil
	}
	for _, it := range a.Items {
		v, err := Eval(it.Value, m, scopes)
		if err != nil {
			return nil, err
		}
		if it.Spread {
			switch v.Kind() {
			case value.KindArray:
				out.Positional = append(out.Positional, v.ArrayItems()...)
			case value.KindDict:
				for _, k := range v.DictKeys() {
					vv, _ := v.DictGet(k)
					out.NamedKeys = append(out.NamedKeys, k)
					out.Named[k] = vv
				}
			case value.KindArgs:
				src := v.AsArgs()
				out.Positional = append(out.Positional, src.Positional...)
				out.NamedKeys = append(out.NamedKeys, src.NamedKeys...)
				for k, vv := range src.Named {
					out.Named[k] = vv
				}
			default:
				return nil, errors.Newf(it.Value.Span().Start(), "cannot spread %s into arguments", v.Kind())
			}
			continue
		}
		if it.Name != "" {
			out.NamedKeys = append(out.NamedKeys, it.Name)
			out.Named[it.Name] = v
			continue
		}
		out.Positional = append(out.Positional, v)
	}
	return out, nil
}

// invoke dispatches to a native or closure function, incrementing call
// depth around the call (spec.md §4.1.5 step 4-5, §4.1.6 step 6).
func invoke(fn *value.Func, args *value.Args, callSpan span.Span, m *vm.VM) (value.Value, error) {
	if err := m.EnterCall(); err != nil {
		return value.None, err
	}
	defer m.ExitCall()

	var result value.Value
	var err error
	if fn.Native != nil {
		result, err = fn.Native(args)
	} else {
		result, err = callClosure(fn, args, m)
	}
	if err != nil {
		tp := errors.Tracepoint{Kind: "call", Name: fn.Name}
		return value.None, errors.WithTrace(err, tp)
	}
	return result, nil
}

// mathCalleeNode reports whether callee is a (possibly field-accessed)
// math identifier chain, the trigger condition for the math-call special
// case (spec.md §4.1.5 step 3).
func mathCalleeNode(callee ast.Node) (ast.Node, bool) {
	switch n := callee.(type) {
	case *ast.MathIdent:
		return n, true
	case *ast.FieldAccess:
		return mathCalleeNode(n.Target)
	default:
		return nil, false
	}
}

// evalMathCallFallback implements spec.md §4.1.5 step 3: a math-mode
// callee that did not resolve to a function either renders as an accent
// (single combining-accent symbol, one argument) or as literal call
// syntax reconstructed from the display of callee and arguments.
func evalMathCallFallback(mathCallee ast.Node, calleeVal value.Value, n *ast.FuncCall, args *value.Args, m *vm.VM) (value.Value, error) {
	if calleeVal.Kind() == value.KindSymbol && len(args.Positional) == 1 {
		r, size := utf8.DecodeRuneInString(calleeVal.AsSymbol())
		if size == len(calleeVal.AsSymbol()) && isCombiningAccent(r) {
			base := value.Display(args.Positional[0])
			return value.ContentVal(lib(m).MathAccent(base, r)), nil
		}
	}

	var b strings.Builder
	b.WriteString(value.Display(calleeVal).String())
	b.WriteByte('(')
	for i, p := range args.Positional {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(value.Display(p).String())
	}
	for i, k := range args.NamedKeys {
		if len(args.Positional) > 0 || i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(value.Display(args.Named[k]).String())
	}
	b.WriteByte(')')
	return value.ContentVal(lib(m).Text(b.String())), nil
}

func dictInsertMethod(recv mutref.MaybeMut, args *value.Args) (value.Value, error) {
	if len(args.Positional) != 2 || args.Positional[0].Kind() != value.KindStr {
		return value.None, errors.New("insert expects (key: string, value)")
	}
	d := recv.Get()
	if d.Kind() != value.KindDict {
		return value.None, errors.New("insert is only defined on dictionaries")
	}
	updated := d.DictSet(args.Positional[0].AsStr(), args.Positional[1])
	if err := recv.Set(updated); err != nil {
		return value.None, err
	}
	return value.None, nil
}

func dictRemoveMethod(recv mutref.MaybeMut, args *value.Args) (value.Value, error) {
	if len(args.Positional) != 1 || args.Positional[0].Kind() != value.KindStr {
		return value.None, errors.New("remove expects (key: string)")
	}
	d := recv.Get()
	if d.Kind() != value.KindDict {
		return value.None, errors.New("remove is only defined on dictionaries")
	}
	key := args.Positional[0].AsStr()
	removed, ok := d.DictGet(key)
	if !ok {
		return value.None, errors.New("dictionary does not contain key " + key)
	}
	nd := value.EmptyDict()
	for _, k := range d.DictKeys() {
		if k == key {
			continue
		}
		v, _ := d.DictGet(k)
		nd = nd.DictSet(k, v)
	}
	if err := recv.Set(nd); err != nil {
		return value.None, err
	}
	return removed, nil
}
