package eval

import (
	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
)

// evalMarkup implements spec.md §4.1.1: left-to-right sequencing with
// set/show tail-wrapping, label attachment, and display coercion.
func evalMarkup(markup *ast.Markup, m *vm.VM, scopes *scope.Scopes) (content.Content, error) {
	saved := m.SaveFlow()
	defer m.RestoreFlow(saved)

	exprs := markup.Exprs
	seq := make([]content.Content, 0, len(exprs))

	for i := 0; i < len(exprs); i++ {
		expr := exprs[i]

		if set, ok := expr.(*ast.SetRule); ok {
			styleVal, err := evalSetRuleValue(set, m, scopes)
			if err != nil {
				return nil, err
			}
			if m.Flow != nil {
				break
			}
			tail, err := evalMarkup(ast.FromExprs(exprs[i+1:]), m, scopes)
			if err != nil {
				return nil, err
			}
			seq = append(seq, content.Styled{Body: tail, Style: styleVal})
			break
		}

		if show, ok := expr.(*ast.ShowRule); ok {
			recipeVal, err := evalShowRuleValue(show, m, scopes)
			if err != nil {
				return nil, err
			}
			if m.Flow != nil {
				break
			}
			tail, err := evalMarkup(ast.FromExprs(exprs[i+1:]), m, scopes)
			if err != nil {
				return nil, err
			}
			seq = append(seq, content.Styled{Body: tail, Recipe: recipeVal})
			break
		}

		v, err := Eval(expr, m, scopes)
		if err != nil {
			return nil, err
		}

		if v.Kind() == value.KindLabel {
			rewritten, ok := content.Label(content.Sequence(seq...), v.AsLabel())
			if ok {
				seq = []content.Content{rewritten}
			}
			// Silently dropped when no labellable target exists, per
			// spec.md §4.1.1.
		} else {
			seq = append(seq, value.Display(v))
		}

		if m.Flow != nil {
			break
		}
	}

	return content.Sequence(seq...), nil
}
