package ast

import "github.com/scrivenlang/scriven/span"

// Markup is an ordered sequence of markup expressions (spec.md §4.1.1).
type Markup struct {
	base
	Exprs []Expr
}

func NewMarkup(s span.Span, exprs []Expr) *Markup {
	return &Markup{base: newBase(s, KindMarkup), Exprs: exprs}
}

// FromExprs builds a tail Markup node from a slice of remaining
// expressions, used when splitting a sequence at a set/show rule.
func FromExprs(exprs []Expr) *Markup {
	s := span.NoSpan
	if len(exprs) > 0 {
		s = exprs[0].Span()
	}
	return NewMarkup(s, exprs)
}

type Text struct {
	base
	Value string
}

func NewText(s span.Span, v string) *Text { return &Text{newBase(s, KindText), v} }

type Space struct{ base }

func NewSpace(s span.Span) *Space { return &Space{newBase(s, KindSpace)} }

type Linebreak struct{ base }

func NewLinebreak(s span.Span) *Linebreak { return &Linebreak{newBase(s, KindLinebreak)} }

type Parbreak struct{ base }

func NewParbreak(s span.Span) *Parbreak { return &Parbreak{newBase(s, KindParbreak)} }

// Escape and Shorthand both denote a single codepoint.
type Escape struct {
	base
	Char rune
}

func NewEscape(s span.Span, r rune) *Escape { return &Escape{newBase(s, KindEscape), r} }

type Shorthand struct {
	base
	Char rune
}

func NewShorthand(s span.Span, r rune) *Shorthand { return &Shorthand{newBase(s, KindShorthand), r} }

type SmartQuote struct {
	base
	Double bool
}

func NewSmartQuote(s span.Span, double bool) *SmartQuote {
	return &SmartQuote{newBase(s, KindSmartQuote), double}
}

type Strong struct {
	base
	Body *Markup
}

func NewStrong(s span.Span, body *Markup) *Strong { return &Strong{newBase(s, KindStrong), body} }

type Emph struct {
	base
	Body *Markup
}

func NewEmph(s span.Span, body *Markup) *Emph { return &Emph{newBase(s, KindEmph), body} }

type Raw struct {
	base
	Lines []string
	Lang  string
	Block bool
}

func NewRaw(s span.Span, lines []string, lang string, block bool) *Raw {
	return &Raw{newBase(s, KindRaw), lines, lang, block}
}

type Link struct {
	base
	URL string
}

func NewLink(s span.Span, url string) *Link { return &Link{newBase(s, KindLink), url} }

type Label struct {
	base
	Name string
}

func NewLabel(s span.Span, name string) *Label { return &Label{newBase(s, KindLabel), name} }

type Ref struct {
	base
	Target     string
	Supplement *Markup // nil if absent
}

func NewRef(s span.Span, target string, supp *Markup) *Ref {
	return &Ref{newBase(s, KindRef), target, supp}
}

type Heading struct {
	base
	Level int
	Body  *Markup
}

func NewHeading(s span.Span, level int, body *Markup) *Heading {
	return &Heading{newBase(s, KindHeading), level, body}
}

type ListItem struct {
	base
	Body *Markup
}

func NewListItem(s span.Span, body *Markup) *ListItem {
	return &ListItem{newBase(s, KindListItem), body}
}

type EnumItem struct {
	base
	Number *int // nil if unspecified
	Body   *Markup
}

func NewEnumItem(s span.Span, number *int, body *Markup) *EnumItem {
	return &EnumItem{newBase(s, KindEnumItem), number, body}
}

type TermItem struct {
	base
	Term *Markup
	Desc *Markup
}

func NewTermItem(s span.Span, term, desc *Markup) *TermItem {
	return &TermItem{newBase(s, KindTermItem), term, desc}
}
