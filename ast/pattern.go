package ast

import "github.com/scrivenlang/scriven/span"

// Pattern is a destructuring target: a single identifier, a placeholder, an
// array pattern, or a dictionary pattern (spec.md §4.1.4).
type Pattern interface {
	Node
	isPattern()
}

type PatternIdent struct {
	base
	Name string
}

func NewPatternIdent(s span.Span, name string) *PatternIdent {
	return &PatternIdent{newBase(s, KindIdent), name}
}
func (*PatternIdent) isPattern() {}

type PatternPlaceholder struct{ base }

func NewPatternPlaceholder(s span.Span) *PatternPlaceholder {
	return &PatternPlaceholder{newBase(s, KindInvalid)}
}
func (*PatternPlaceholder) isPattern() {}

// ArrayPatternItem is one slot of an array pattern: a sub-pattern, or a
// sink ("..name") that absorbs a middle slice.
type ArrayPatternItem struct {
	Pattern Pattern
	IsSink  bool
	// SinkName is the identifier bound to the absorbed slice when IsSink;
	// empty means an anonymous sink ("..").
	SinkName string
	Span     span.Span
}

type PatternArray struct {
	base
	Items []ArrayPatternItem
}

func NewPatternArray(s span.Span, items []ArrayPatternItem) *PatternArray {
	return &PatternArray{newBase(s, KindArray), items}
}
func (*PatternArray) isPattern() {}

// DictPatternItem is one slot of a dictionary pattern.
type DictPatternItem struct {
	// Key is the dictionary key this item binds, empty for a sink.
	Key string
	// Pattern is the sub-pattern bound to Key ("name" or "name: pattern").
	Pattern Pattern
	IsSink  bool
	// SinkName is the identifier bound to the leftover dictionary when IsSink.
	SinkName      string
	IsPlaceholder bool
	Span          span.Span
}

type PatternDict struct {
	base
	Items []DictPatternItem
}

func NewPatternDict(s span.Span, items []DictPatternItem) *PatternDict {
	return &PatternDict{newBase(s, KindDict), items}
}
func (*PatternDict) isPattern() {}
