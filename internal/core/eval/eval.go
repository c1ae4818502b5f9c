// Package eval is the tree-walking evaluator: dispatch over AST node
// kinds into Value, the mutable-location counterpart EvalMaybeMut, and
// everything spec.md §4.1 describes (sequencing, binary ops,
// destructuring, closures, control flow, imports). It is deliberately a
// single flat package rather than per-concern sub-packages, mirroring
// how the reference evaluator keeps eval-markup/eval-code/eval-vm side
// by side in one package instead of layering interfaces between them.
package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
)

// Eval evaluates node to an owned Value (spec.md §4.1 "eval(node, vm,
// scopes) -> Value").
func Eval(node ast.Node, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	v, err := evalDispatch(node, m, scopes)
	if err != nil {
		return value.None, err
	}
	m.Tracer.MaybeTrace(node.Span(), v)
	return v, nil
}

func lib(m *vm.VM) *content.Library { return m.World.Library() }

func evalDispatch(node ast.Node, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	switch n := node.(type) {

	// Markup
	case *ast.Markup:
		c, err := evalMarkup(n, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(c), nil
	case *ast.Text:
		return value.ContentVal(lib(m).Text(n.Value)), nil
	case *ast.Space:
		return value.ContentVal(lib(m).Space()), nil
	case *ast.Linebreak:
		return value.ContentVal(lib(m).Linebreak()), nil
	case *ast.Parbreak:
		return value.ContentVal(lib(m).Parbreak()), nil
	case *ast.Escape:
		return value.Symbol(string(n.Char)), nil
	case *ast.Shorthand:
		return value.Symbol(string(n.Char)), nil
	case *ast.SmartQuote:
		return value.ContentVal(lib(m).SmartQuote(n.Double)), nil
	case *ast.Strong:
		body, err := evalMarkup(n.Body, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).Strong(body)), nil
	case *ast.Emph:
		body, err := evalMarkup(n.Body, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).Emph(body)), nil
	case *ast.Raw:
		text := ""
		for i, l := range n.Lines {
			if i > 0 {
				text += "\n"
			}
			text += l
		}
		return value.ContentVal(lib(m).Raw(text, n.Lang, n.Block)), nil
	case *ast.Link:
		return value.ContentVal(lib(m).Link(n.URL)), nil
	case *ast.Label:
		return value.Label(n.Name), nil
	case *ast.Ref:
		var supplement content.Content
		if n.Supplement != nil {
			c, err := evalMarkup(n.Supplement, m, scopes)
			if err != nil {
				return value.None, err
			}
			supplement = c
		}
		return value.ContentVal(lib(m).Reference(n.Target, supplement)), nil
	case *ast.Heading:
		body, err := evalMarkup(n.Body, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).Heading(n.Level, body)), nil
	case *ast.ListItem:
		body, err := evalMarkup(n.Body, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).ListItem(body)), nil
	case *ast.EnumItem:
		body, err := evalMarkup(n.Body, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).EnumItem(n.Number, body)), nil
	case *ast.TermItem:
		term, err := evalMarkup(n.Term, m, scopes)
		if err != nil {
			return value.None, err
		}
		desc, err := evalMarkup(n.Desc, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).TermItem(term, desc)), nil

	// Math
	case *ast.Equation:
		body, err := evalMath(n.Body, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).Equation(body, n.Block)), nil
	case *ast.Math:
		c, err := evalMath(n, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(c), nil
	case *ast.MathText:
		return value.ContentVal(lib(m).Text(n.Value)), nil
	case *ast.MathIdent:
		return evalMathIdent(n, m, scopes)
	case *ast.MathShorthand:
		return value.Symbol(string(n.Char)), nil
	case *ast.MathAlignPoint:
		return value.ContentVal(lib(m).MathAlignPoint()), nil
	case *ast.MathDelimited:
		return evalMathDelimited(n, m, scopes)
	case *ast.MathAttach:
		return evalMathAttach(n, m, scopes)
	case *ast.MathPrimes:
		return value.ContentVal(lib(m).MathPrimes(n.Count)), nil
	case *ast.MathFrac:
		num, err := Eval(n.Num, m, scopes)
		if err != nil {
			return value.None, err
		}
		den, err := Eval(n.Denom, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).MathFrac(value.Display(num), value.Display(den))), nil
	case *ast.MathRoot:
		var index content.Content
		if n.Index != nil {
			v, err := Eval(n.Index, m, scopes)
			if err != nil {
				return value.None, err
			}
			index = value.Display(v)
		}
		rad, err := Eval(n.Radicand, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(lib(m).MathRoot(index, value.Display(rad))), nil

	// Literals
	case *ast.Ident:
		v, ok := scopes.Get(n.Name)
		if !ok {
			return value.None, errors.Newf(n.Span().Start(), "%s", scope.UnknownVariableError(n.Name).Error())
		}
		return v, nil
	case *ast.NoneLit:
		return value.None, nil
	case *ast.AutoLit:
		return value.Auto, nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil
	case *ast.IntLit:
		return value.Int(n.Value), nil
	case *ast.FloatLit:
		return value.Float(n.Value), nil
	case *ast.NumericLit:
		return value.Numeric(n.Value, n.Unit), nil
	case *ast.StrLit:
		return value.Str(n.Value), nil

	// Collections / blocks
	case *ast.ArrayExpr:
		return evalArrayExpr(n, m, scopes)
	case *ast.DictExpr:
		return evalDictExpr(n, m, scopes)
	case *ast.Parenthesized:
		return Eval(n.Inner, m, scopes)
	case *ast.CodeBlock:
		scopes.Enter()
		defer scopes.Exit()
		return evalCode(n.Body, m, scopes)
	case *ast.ContentBlock:
		c, err := evalMarkup(n.Body, m, scopes)
		if err != nil {
			return value.None, err
		}
		return value.ContentVal(c), nil

	// Access & calls
	case *ast.FieldAccess:
		return evalFieldAccessValue(n, m, scopes)
	case *ast.FuncCall:
		return evalFuncCall(n, m, scopes)
	case *ast.Closure:
		return evalClosureLiteral(n, m, scopes)

	// Operators
	case *ast.Unary:
		return evalUnary(n, m, scopes)
	case *ast.Binary:
		return evalBinary(n, m, scopes)

	// Bindings
	case *ast.LetBinding:
		return evalLetBinding(n, m, scopes)
	case *ast.DestructAssignment:
		return evalDestructAssignment(n, m, scopes)

	// Styling
	case *ast.SetRule:
		return evalSetRuleValue(n, m, scopes)
	case *ast.ShowRule:
		return evalShowRuleValue(n, m, scopes)

	// Contextual
	case *ast.Contextual:
		return Eval(n.Body, m, scopes)

	// Control flow
	case *ast.Conditional:
		return evalConditional(n, m, scopes)
	case *ast.WhileLoop:
		return evalWhileLoop(n, m, scopes)
	case *ast.ForLoop:
		return evalForLoop(n, m, scopes)
	case *ast.LoopBreak:
		m.RaiseFlow(breakEvent(n.Span()))
		return value.None, nil
	case *ast.LoopContinue:
		m.RaiseFlow(continueEvent(n.Span()))
		return value.None, nil
	case *ast.FuncReturn:
		return evalReturn(n, m, scopes)

	// Modules
	case *ast.ModuleImport:
		return evalModuleImport(n, m, scopes)
	case *ast.ModuleInclude:
		return evalModuleInclude(n, m, scopes)
	}

	return value.None, errors.Newf(node.Span().Start(), "cannot evaluate node of kind %d", node.Kind())
}
