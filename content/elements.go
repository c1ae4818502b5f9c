package content

import "fmt"

// The element types below are the concrete results of the Library
// constructors (spec.md §6 "Language items"). Each is a plain leaf; the
// evaluator composes them through Sequence/Styled/Labelled but never
// reaches into their fields.

type Text struct{ Value string }

func (Text) isContent()         {}
func (Text) Unlabellable() bool { return false }
func (t Text) String() string   { return t.Value }

type Space struct{}

func (Space) isContent()         {}
func (Space) Unlabellable() bool { return true }
func (Space) String() string     { return " " }

type Linebreak struct{}

func (Linebreak) isContent()         {}
func (Linebreak) Unlabellable() bool { return true }
func (Linebreak) String() string     { return "\n" }

type Parbreak struct{}

func (Parbreak) isContent()         {}
func (Parbreak) Unlabellable() bool { return true }
func (Parbreak) String() string     { return "\n\n" }

type SmartQuote struct{ Double bool }

func (SmartQuote) isContent()         {}
func (SmartQuote) Unlabellable() bool { return false }
func (q SmartQuote) String() string {
	if q.Double {
		return "“”"
	}
	return "‘’"
}

type Strong struct{ Body Content }

func (Strong) isContent()         {}
func (Strong) Unlabellable() bool { return false }
func (s Strong) String() string   { return fmt.Sprintf("*%s*", s.Body) }

type Emph struct{ Body Content }

func (Emph) isContent()         {}
func (Emph) Unlabellable() bool { return false }
func (e Emph) String() string   { return fmt.Sprintf("_%s_", e.Body) }

type Raw struct {
	Text  string
	Lang  string
	Block bool
}

func (Raw) isContent()         {}
func (Raw) Unlabellable() bool { return false }
func (r Raw) String() string   { return fmt.Sprintf("`%s`", r.Text) }

type Link struct{ URL string }

func (Link) isContent()         {}
func (Link) Unlabellable() bool { return false }
func (l Link) String() string   { return l.URL }

// Reference is the `reference` language item produced by a markup `@label`
// (spec.md naming: the markup node is Ref, the content element is
// "reference" to avoid colliding with the Label-attachment operation).
type Reference struct {
	Target     string
	Supplement Content // nil if absent
}

func (Reference) isContent()         {}
func (Reference) Unlabellable() bool { return false }
func (r Reference) String() string   { return "@" + r.Target }

type Heading struct {
	Level int
	Body  Content
}

func (Heading) isContent()         {}
func (Heading) Unlabellable() bool { return false }
func (h Heading) String() string   { return fmt.Sprintf("heading(%d, %s)", h.Level, h.Body) }

type ListItem struct{ Body Content }

func (ListItem) isContent()         {}
func (ListItem) Unlabellable() bool { return false }
func (l ListItem) String() string   { return fmt.Sprintf("- %s", l.Body) }

type EnumItem struct {
	Number *int // nil if unspecified
	Body   Content
}

func (EnumItem) isContent()         {}
func (EnumItem) Unlabellable() bool { return false }
func (e EnumItem) String() string   { return fmt.Sprintf("+ %s", e.Body) }

type TermItem struct {
	Term Content
	Desc Content
}

func (TermItem) isContent()         {}
func (TermItem) Unlabellable() bool { return false }
func (t TermItem) String() string   { return fmt.Sprintf("/ %s: %s", t.Term, t.Desc) }

type Equation struct {
	Body  Content
	Block bool
}

func (Equation) isContent()         {}
func (Equation) Unlabellable() bool { return false }
func (e Equation) String() string {
	if e.Block {
		return fmt.Sprintf("$ %s $", e.Body)
	}
	return fmt.Sprintf("$%s$", e.Body)
}

type MathAlignPoint struct{}

func (MathAlignPoint) isContent()         {}
func (MathAlignPoint) Unlabellable() bool { return true }
func (MathAlignPoint) String() string     { return "&" }

type MathDelimited struct {
	Open  Content
	Body  Content
	Close Content
}

func (MathDelimited) isContent()         {}
func (MathDelimited) Unlabellable() bool { return false }
func (d MathDelimited) String() string   { return fmt.Sprintf("%s%s%s", d.Open, d.Body, d.Close) }

type MathAttach struct {
	Base   Content
	Top    Content // nil if absent
	Bottom Content // nil if absent
}

func (MathAttach) isContent()         {}
func (MathAttach) Unlabellable() bool { return false }
func (a MathAttach) String() string   { return fmt.Sprintf("attach(%s)", a.Base) }

type MathPrimes struct{ Count int }

func (MathPrimes) isContent()         {}
func (MathPrimes) Unlabellable() bool { return true }
func (p MathPrimes) String() string {
	out := ""
	for i := 0; i < p.Count; i++ {
		out += "'"
	}
	return out
}

type MathFrac struct {
	Num   Content
	Denom Content
}

func (MathFrac) isContent()         {}
func (MathFrac) Unlabellable() bool { return false }
func (f MathFrac) String() string   { return fmt.Sprintf("(%s)/(%s)", f.Num, f.Denom) }

type MathRoot struct {
	Index    Content // nil for square root
	Radicand Content
}

func (MathRoot) isContent()         {}
func (MathRoot) Unlabellable() bool { return false }
func (r MathRoot) String() string   { return fmt.Sprintf("root(%s)", r.Radicand) }

// MathAccent is produced by the single-codepoint-symbol call special case
// (spec.md §4.1.5 point about "combining accent").
type MathAccent struct {
	Base   Content
	Accent rune
}

func (MathAccent) isContent()         {}
func (MathAccent) Unlabellable() bool { return false }
func (a MathAccent) String() string   { return fmt.Sprintf("%s%c", a.Base, a.Accent) }
