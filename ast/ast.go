// Package ast defines the read-only AST contract the evaluator consumes.
// Per spec.md §1/§6 the parser and the concrete node types are external
// collaborators: this package is not a parser, it is the shape a parser
// must produce for internal/core/eval to walk. Every node carries its
// span and exposes typed children accessors; the evaluator never mutates
// a node.
package ast

import "github.com/scrivenlang/scriven/span"

// Kind identifies the concrete shape of a Node, used by the evaluator's
// type switch in place of a visitor (matches the teacher's use of Go type
// switches over sum-type-like node families).
type Kind int

const (
	KindInvalid Kind = iota

	// Markup
	KindMarkup
	KindText
	KindSpace
	KindLinebreak
	KindParbreak
	KindEscape
	KindShorthand
	KindSmartQuote
	KindStrong
	KindEmph
	KindRaw
	KindLink
	KindLabel
	KindRef
	KindHeading
	KindListItem
	KindEnumItem
	KindTermItem

	// Math
	KindEquation
	KindMath
	KindMathText
	KindMathIdent
	KindMathShorthand
	KindMathAlignPoint
	KindMathDelimited
	KindMathAttach
	KindMathPrimes
	KindMathFrac
	KindMathRoot

	// Literals
	KindIdent
	KindNone
	KindAuto
	KindBool
	KindInt
	KindFloat
	KindNumeric
	KindStr

	// Collections / blocks
	KindArray
	KindDict
	KindParenthesized
	KindCodeBlock
	KindContentBlock

	// Access & calls
	KindFieldAccess
	KindFuncCall
	KindClosure

	// Operators
	KindUnary
	KindBinary

	// Bindings
	KindLetBinding
	KindDestructAssignment

	// Styling
	KindSetRule
	KindShowRule

	// Contextual
	KindContextual

	// Control flow
	KindConditional
	KindWhileLoop
	KindForLoop
	KindLoopBreak
	KindLoopContinue
	KindFuncReturn

	// Modules
	KindModuleImport
	KindModuleInclude
)

// Node is implemented by every AST node the evaluator walks.
type Node interface {
	Span() span.Span
	Kind() Kind
}

// base is embedded by every concrete node to provide Span/Kind.
type base struct {
	span span.Span
	kind Kind
}

func (b base) Span() span.Span { return b.span }
func (b base) Kind() Kind      { return b.kind }

func newBase(s span.Span, k Kind) base { return base{span: s, kind: k} }

// Expr is any node that can be evaluated to a Value (i.e. every node: the
// spec treats markup, code, and math uniformly as "expressions").
type Expr = Node

// Unit is a physical/relative unit attached to a Numeric literal.
type Unit int

const (
	UnitNone Unit = iota
	UnitPt
	UnitMm
	UnitCm
	UnitIn
	UnitEm
	UnitFr
	UnitRad
	UnitDeg
	UnitPercent
)

// RewriteSpans walks node and every descendant reachable through Children,
// rewriting each span to s. This matches the original's eval_string
// behavior (SPEC_FULL.md §C.1): a fragment parsed for eval_string is
// evaluated as if its entire AST originated at the caller-supplied span.
func RewriteSpans(node Node, s span.Span) Node {
	if node == nil {
		return nil
	}
	rewriteSpan(node, s)
	for _, c := range Children(node) {
		RewriteSpans(c, s)
	}
	return node
}

func rewriteSpan(node Node, s span.Span) {
	if r, ok := node.(spanRewriter); ok {
		r.setSpan(s)
	}
}

type spanRewriter interface {
	setSpan(span.Span)
}

func (b *base) setSpan(s span.Span) { b.span = s }
