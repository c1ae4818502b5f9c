package ast

import "github.com/scrivenlang/scriven/span"

type Equation struct {
	base
	Body  *Math
	Block bool
}

func NewEquation(s span.Span, body *Math, block bool) *Equation {
	return &Equation{newBase(s, KindEquation), body, block}
}

// Math is a sequence of math-mode expressions, analogous to Markup.
type Math struct {
	base
	Exprs []Expr
}

func NewMath(s span.Span, exprs []Expr) *Math { return &Math{newBase(s, KindMath), exprs} }

type MathText struct {
	base
	Value string
}

func NewMathText(s span.Span, v string) *MathText { return &MathText{newBase(s, KindMathText), v} }

// MathIdent is an identifier used inside math mode; lookup rules differ
// from a regular Ident (spec.md §4.1.5, §4.5).
type MathIdent struct {
	base
	Name string
}

func NewMathIdent(s span.Span, name string) *MathIdent {
	return &MathIdent{newBase(s, KindMathIdent), name}
}

type MathShorthand struct {
	base
	Char rune
}

func NewMathShorthand(s span.Span, r rune) *MathShorthand {
	return &MathShorthand{newBase(s, KindMathShorthand), r}
}

type MathAlignPoint struct{ base }

func NewMathAlignPoint(s span.Span) *MathAlignPoint {
	return &MathAlignPoint{newBase(s, KindMathAlignPoint)}
}

type MathDelimited struct {
	base
	Open  Expr
	Body  *Math
	Close Expr
}

func NewMathDelimited(s span.Span, open Expr, body *Math, close Expr) *MathDelimited {
	return &MathDelimited{newBase(s, KindMathDelimited), open, body, close}
}

type MathAttach struct {
	base
	BaseExpr Expr
	Top      Expr // nil if absent
	Bottom   Expr // nil if absent
}

func NewMathAttach(s span.Span, base_ Expr, top, bottom Expr) *MathAttach {
	return &MathAttach{newBase(s, KindMathAttach), base_, top, bottom}
}

type MathPrimes struct {
	base
	Count int
}

func NewMathPrimes(s span.Span, n int) *MathPrimes { return &MathPrimes{newBase(s, KindMathPrimes), n} }

type MathFrac struct {
	base
	Num   Expr
	Denom Expr
}

func NewMathFrac(s span.Span, num, denom Expr) *MathFrac {
	return &MathFrac{newBase(s, KindMathFrac), num, denom}
}

type MathRoot struct {
	base
	Index    Expr // nil for square root
	Radicand Expr
}

func NewMathRoot(s span.Span, index, radicand Expr) *MathRoot {
	return &MathRoot{newBase(s, KindMathRoot), index, radicand}
}
