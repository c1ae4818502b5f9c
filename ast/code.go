package ast

import "github.com/scrivenlang/scriven/span"

type Ident struct {
	base
	Name string
}

func NewIdent(s span.Span, name string) *Ident { return &Ident{newBase(s, KindIdent), name} }

type NoneLit struct{ base }

func NewNoneLit(s span.Span) *NoneLit { return &NoneLit{newBase(s, KindNone)} }

type AutoLit struct{ base }

func NewAutoLit(s span.Span) *AutoLit { return &AutoLit{newBase(s, KindAuto)} }

type BoolLit struct {
	base
	Value bool
}

func NewBoolLit(s span.Span, v bool) *BoolLit { return &BoolLit{newBase(s, KindBool), v} }

type IntLit struct {
	base
	Value int64
}

func NewIntLit(s span.Span, v int64) *IntLit { return &IntLit{newBase(s, KindInt), v} }

type FloatLit struct {
	base
	Value float64
}

func NewFloatLit(s span.Span, v float64) *FloatLit { return &FloatLit{newBase(s, KindFloat), v} }

type NumericLit struct {
	base
	Value float64
	Unit  Unit
}

func NewNumericLit(s span.Span, v float64, u Unit) *NumericLit {
	return &NumericLit{newBase(s, KindNumeric), v, u}
}

type StrLit struct {
	base
	Value string
}

func NewStrLit(s span.Span, v string) *StrLit { return &StrLit{newBase(s, KindStr), v} }

// ArrayItem is one element of an array literal: a positional value or a
// spread ("..expr").
type ArrayItem struct {
	Value  Expr
	Spread bool
}

type ArrayExpr struct {
	base
	Items []ArrayItem
}

func NewArrayExpr(s span.Span, items []ArrayItem) *ArrayExpr {
	return &ArrayExpr{newBase(s, KindArray), items}
}

// DictItem is one entry of a dictionary literal: "name: value",
// "(keyExpr): value", or a spread ("..expr").
type DictItem struct {
	Name   string // set for "name: value" form
	Key    Expr   // set for "(expr): value" form
	Value  Expr
	Spread bool
}

type DictExpr struct {
	base
	Items []DictItem
}

func NewDictExpr(s span.Span, items []DictItem) *DictExpr {
	return &DictExpr{newBase(s, KindDict), items}
}

type Parenthesized struct {
	base
	Inner Expr
}

func NewParenthesized(s span.Span, inner Expr) *Parenthesized {
	return &Parenthesized{newBase(s, KindParenthesized), inner}
}

type CodeBlock struct {
	base
	Body []Expr
}

func NewCodeBlock(s span.Span, body []Expr) *CodeBlock {
	return &CodeBlock{newBase(s, KindCodeBlock), body}
}

type ContentBlock struct {
	base
	Body *Markup
}

func NewContentBlock(s span.Span, body *Markup) *ContentBlock {
	return &ContentBlock{newBase(s, KindContentBlock), body}
}

type FieldAccess struct {
	base
	Target    Expr
	Field     string
	FieldSpan span.Span
}

func NewFieldAccess(s span.Span, target Expr, field string, fieldSpan span.Span) *FieldAccess {
	return &FieldAccess{newBase(s, KindFieldAccess), target, field, fieldSpan}
}

// ArgItem is one argument of a call: positional, named, or a spread.
type ArgItem struct {
	Name   string // set for named arguments
	Value  Expr
	Spread bool
	Span   span.Span
}

type Args struct {
	base
	Items []ArgItem
}

func NewArgs(s span.Span, items []ArgItem) *Args { return &Args{newBase(s, KindInvalid), items} }

type FuncCall struct {
	base
	Callee Expr
	Args   *Args
}

func NewFuncCall(s span.Span, callee Expr, args *Args) *FuncCall {
	return &FuncCall{newBase(s, KindFuncCall), callee, args}
}

// ParamKind identifies the shape of one closure parameter.
type ParamKind int

const (
	ParamPositional ParamKind = iota
	ParamNamed
	ParamSink
	ParamPlaceholder
)

type Param struct {
	Kind    ParamKind
	Pattern Pattern // set for ParamPositional (may be a destructuring pattern)
	Name    string  // set for ParamNamed/ParamSink
	Default Expr    // set for ParamNamed
	Span    span.Span
}

type Closure struct {
	base
	Name   string // non-empty enables self-reference for recursion
	Params []Param
	Body   Node // *CodeBlock or *ContentBlock (or a bare Expr for arrow bodies)
}

func NewClosure(s span.Span, name string, params []Param, body Node) *Closure {
	return &Closure{newBase(s, KindClosure), name, params, body}
}

type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryPos
	UnaryNot
)

type Unary struct {
	base
	Op UnaryOp
	X  Expr
}

func NewUnary(s span.Span, op UnaryOp, x Expr) *Unary { return &Unary{newBase(s, KindUnary), op, x} }

type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinAnd
	BinOr
	BinEq
	BinNeq
	BinLt
	BinLte
	BinGt
	BinGte
	BinIn
	BinNotIn
	BinAssign
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
)

// IsAssign reports whether op writes through a mutable location.
func (op BinaryOp) IsAssign() bool {
	switch op {
	case BinAssign, BinAddAssign, BinSubAssign, BinMulAssign, BinDivAssign:
		return true
	}
	return false
}

type Binary struct {
	base
	Op   BinaryOp
	X, Y Expr
}

func NewBinary(s span.Span, op BinaryOp, x, y Expr) *Binary {
	return &Binary{newBase(s, KindBinary), op, x, y}
}

// LetBinding introduces new bindings via Pattern from the value of Init.
// A LetBinding that also declares a closure (`let f(x) = ...` sugar) is
// represented by Init being a *Closure; there is no separate node kind.
type LetBinding struct {
	base
	Pattern Pattern
	Init    Expr // nil for `let x` with no initializer (binds None)
}

func NewLetBinding(s span.Span, pattern Pattern, init Expr) *LetBinding {
	return &LetBinding{newBase(s, KindLetBinding), pattern, init}
}

// DestructAssignment assigns Value's components into existing mutable
// locations named by Pattern (spec.md §4.1.4 "Assign" mode).
type DestructAssignment struct {
	base
	Pattern Pattern
	Value   Expr
}

func NewDestructAssignment(s span.Span, pattern Pattern, value Expr) *DestructAssignment {
	return &DestructAssignment{newBase(s, KindDestructAssignment), pattern, value}
}

// SetRule evaluates Target (a function call producing a style) only when
// Condition (may be nil) is true.
type SetRule struct {
	base
	Target    *FuncCall
	Condition Expr // nil if unconditional
}

func NewSetRule(s span.Span, target *FuncCall, cond Expr) *SetRule {
	return &SetRule{newBase(s, KindSetRule), target, cond}
}

// ShowRule installs Transform (a function, or content to substitute
// directly) for elements matched by Selector (nil means "everything").
type ShowRule struct {
	base
	Selector  Expr
	Transform Expr
}

func NewShowRule(s span.Span, selector, transform Expr) *ShowRule {
	return &ShowRule{newBase(s, KindShowRule), selector, transform}
}

// Contextual wraps Body in a closure evaluated lazily against the styles
// active at the point of layout.
type Contextual struct {
	base
	Body Node
}

func NewContextual(s span.Span, body Node) *Contextual {
	return &Contextual{newBase(s, KindContextual), body}
}

type Conditional struct {
	base
	Cond Expr
	Then Node
	Else Node // nil if no else-branch
}

func NewConditional(s span.Span, cond Expr, then, els Node) *Conditional {
	return &Conditional{newBase(s, KindConditional), cond, then, els}
}

type WhileLoop struct {
	base
	Cond Expr
	Body Node
}

func NewWhileLoop(s span.Span, cond Expr, body Node) *WhileLoop {
	return &WhileLoop{newBase(s, KindWhileLoop), cond, body}
}

type ForLoop struct {
	base
	Pattern  Pattern
	Iterable Expr
	Body     Node
}

func NewForLoop(s span.Span, pattern Pattern, iterable Expr, body Node) *ForLoop {
	return &ForLoop{newBase(s, KindForLoop), pattern, iterable, body}
}

type LoopBreak struct{ base }

func NewLoopBreak(s span.Span) *LoopBreak { return &LoopBreak{newBase(s, KindLoopBreak)} }

type LoopContinue struct{ base }

func NewLoopContinue(s span.Span) *LoopContinue { return &LoopContinue{newBase(s, KindLoopContinue)} }

type FuncReturn struct {
	base
	Value       Expr // nil for bare `return`
	Conditional bool // true if this return is inside a conditional branch
}

func NewFuncReturn(s span.Span, value Expr, conditional bool) *FuncReturn {
	return &FuncReturn{newBase(s, KindFuncReturn), value, conditional}
}

// ImportItem is one explicitly selected name in `import "x": a, b as c`.
type ImportItem struct {
	Name     string
	BoundAs  string // equal to Name unless renamed with "as"
	Span     span.Span
}

type ModuleImport struct {
	base
	Source Expr
	// NewName renames the bare import ("import "x" as y"); empty otherwise.
	NewName string
	// Wildcard is true for "import "x": *".
	Wildcard bool
	// Items is non-nil for "import "x": a, b"; nil otherwise.
	Items []ImportItem
}

func NewModuleImport(s span.Span, source Expr, newName string, wildcard bool, items []ImportItem) *ModuleImport {
	return &ModuleImport{newBase(s, KindModuleImport), source, newName, wildcard, items}
}

type ModuleInclude struct {
	base
	Source Expr
}

func NewModuleInclude(s span.Span, source Expr) *ModuleInclude {
	return &ModuleInclude{newBase(s, KindModuleInclude), source}
}
