package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
)

// evalMath sequences a math AST the same way evalMarkup does for markup,
// minus the set/show special cases: math mode has no styling directives
// of its own (spec.md §4.1.1 note that markup and math are "uniformly
// expressions", but only markup carries set/show syntax).
func evalMath(math *ast.Math, m *vm.VM, scopes *scope.Scopes) (content.Content, error) {
	saved := m.SaveFlow()
	defer m.RestoreFlow(saved)

	seq := make([]content.Content, 0, len(math.Exprs))
	for _, expr := range math.Exprs {
		v, err := Eval(expr, m, scopes)
		if err != nil {
			return nil, err
		}
		seq = append(seq, value.Display(v))
		if m.Flow != nil {
			break
		}
	}
	return content.Sequence(seq...), nil
}

// evalMathIdent looks a name up the normal way; an identifier unresolved
// in math mode is not an error, it is rendered as a bare math variable
// (spec.md §4.5 "lookup rules differ from a regular Ident").
func evalMathIdent(n *ast.MathIdent, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	if v, ok := scopes.Get(n.Name); ok {
		return v, nil
	}
	return value.ContentVal(lib(m).Text(n.Name)), nil
}

func evalMathDelimited(n *ast.MathDelimited, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	var open, close_ content.Content
	if n.Open != nil {
		v, err := Eval(n.Open, m, scopes)
		if err != nil {
			return value.None, err
		}
		open = value.Display(v)
	}
	body, err := evalMath(n.Body, m, scopes)
	if err != nil {
		return value.None, err
	}
	if n.Close != nil {
		v, err := Eval(n.Close, m, scopes)
		if err != nil {
			return value.None, err
		}
		close_ = value.Display(v)
	}
	return value.ContentVal(lib(m).MathDelimited(open, body, close_)), nil
}

func evalMathAttach(n *ast.MathAttach, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	base, err := Eval(n.BaseExpr, m, scopes)
	if err != nil {
		return value.None, err
	}
	var top, bottom content.Content
	if n.Top != nil {
		v, err := Eval(n.Top, m, scopes)
		if err != nil {
			return value.None, err
		}
		top = value.Display(v)
	}
	if n.Bottom != nil {
		v, err := Eval(n.Bottom, m, scopes)
		if err != nil {
			return value.None, err
		}
		bottom = value.Display(v)
	}
	return value.ContentVal(lib(m).MathAttach(value.Display(base), top, bottom)), nil
}

// combiningAccents maps a single combining codepoint to itself as used by
// the math-call special case (spec.md §4.1.5 step 3): symbols whose sole
// codepoint is a known spacing/combining accent render as an accented
// node instead of function-call syntax when called with one argument.
var combiningAccents = map[rune]bool{
	'̂': true, // combining circumflex accent (hat)
	'̃': true, // combining tilde
	'̄': true, // combining macron (bar)
	'̇': true, // combining dot above
	'̈': true, // combining diaeresis
	'⃗': true, // combining right arrow above (vec)
	'́': true, // combining acute accent
	'̀': true, // combining grave accent
	'̆': true, // combining breve
	'̌': true, // combining caron
}

func isCombiningAccent(r rune) bool { return combiningAccents[r] }
