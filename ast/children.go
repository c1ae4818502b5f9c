package ast

// Children returns the immediate descendant nodes of node in evaluation
// order. It is the single place that knows every node shape, used by
// RewriteSpans and by the closure capture visitor (internal/core/eval)
// instead of a generated visitor interface.
func Children(node Node) []Node {
	switch n := node.(type) {

	// Markup
	case *Markup:
		return exprSlice(n.Exprs)
	case *Strong:
		return []Node{n.Body}
	case *Emph:
		return []Node{n.Body}
	case *Ref:
		if n.Supplement != nil {
			return []Node{n.Supplement}
		}
	case *Heading:
		return []Node{n.Body}
	case *ListItem:
		return []Node{n.Body}
	case *EnumItem:
		return []Node{n.Body}
	case *TermItem:
		return []Node{n.Term, n.Desc}

	// Math
	case *Equation:
		return []Node{n.Body}
	case *Math:
		return exprSlice(n.Exprs)
	case *MathDelimited:
		out := make([]Node, 0, 3)
		if n.Open != nil {
			out = append(out, n.Open)
		}
		out = append(out, n.Body)
		if n.Close != nil {
			out = append(out, n.Close)
		}
		return out
	case *MathAttach:
		out := []Node{n.BaseExpr}
		if n.Top != nil {
			out = append(out, n.Top)
		}
		if n.Bottom != nil {
			out = append(out, n.Bottom)
		}
		return out
	case *MathFrac:
		return []Node{n.Num, n.Denom}
	case *MathRoot:
		out := make([]Node, 0, 2)
		if n.Index != nil {
			out = append(out, n.Index)
		}
		out = append(out, n.Radicand)
		return out

	// Collections / blocks
	case *ArrayExpr:
		out := make([]Node, 0, len(n.Items))
		for _, it := range n.Items {
			out = append(out, it.Value)
		}
		return out
	case *DictExpr:
		out := make([]Node, 0, len(n.Items)*2)
		for _, it := range n.Items {
			if it.Key != nil {
				out = append(out, it.Key)
			}
			out = append(out, it.Value)
		}
		return out
	case *Parenthesized:
		return []Node{n.Inner}
	case *CodeBlock:
		return exprSlice(n.Body)
	case *ContentBlock:
		return []Node{n.Body}

	// Access & calls
	case *FieldAccess:
		return []Node{n.Target}
	case *Args:
		out := make([]Node, 0, len(n.Items))
		for _, it := range n.Items {
			out = append(out, it.Value)
		}
		return out
	case *FuncCall:
		out := []Node{n.Callee}
		if n.Args != nil {
			out = append(out, n.Args)
		}
		return out
	case *Closure:
		out := make([]Node, 0, len(n.Params)+1)
		for _, p := range n.Params {
			if p.Pattern != nil {
				out = append(out, p.Pattern)
			}
			if p.Default != nil {
				out = append(out, p.Default)
			}
		}
		out = append(out, n.Body)
		return out

	// Operators
	case *Unary:
		return []Node{n.X}
	case *Binary:
		return []Node{n.X, n.Y}

	// Bindings
	case *LetBinding:
		out := []Node{n.Pattern}
		if n.Init != nil {
			out = append(out, n.Init)
		}
		return out
	case *DestructAssignment:
		return []Node{n.Pattern, n.Value}

	// Patterns
	case *PatternArray:
		out := make([]Node, 0, len(n.Items))
		for _, it := range n.Items {
			if it.Pattern != nil {
				out = append(out, it.Pattern)
			}
		}
		return out
	case *PatternDict:
		out := make([]Node, 0, len(n.Items))
		for _, it := range n.Items {
			if it.Pattern != nil {
				out = append(out, it.Pattern)
			}
		}
		return out

	// Styling
	case *SetRule:
		out := []Node{n.Target}
		if n.Condition != nil {
			out = append(out, n.Condition)
		}
		return out
	case *ShowRule:
		out := make([]Node, 0, 2)
		if n.Selector != nil {
			out = append(out, n.Selector)
		}
		out = append(out, n.Transform)
		return out

	// Contextual
	case *Contextual:
		return []Node{n.Body}

	// Control flow
	case *Conditional:
		out := []Node{n.Cond, n.Then}
		if n.Else != nil {
			out = append(out, n.Else)
		}
		return out
	case *WhileLoop:
		return []Node{n.Cond, n.Body}
	case *ForLoop:
		return []Node{n.Pattern, n.Iterable, n.Body}
	case *FuncReturn:
		if n.Value != nil {
			return []Node{n.Value}
		}

	// Modules
	case *ModuleImport:
		return []Node{n.Source}
	case *ModuleInclude:
		return []Node{n.Source}
	}

	return nil
}

func exprSlice(exprs []Expr) []Node {
	out := make([]Node, len(exprs))
	copy(out, exprs)
	return out
}
