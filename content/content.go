// Package content implements the opaque content tree produced by markup
// evaluation: the frozen language-item constructor table consumed by
// internal/core/eval (spec.md §6 "Language items") plus just enough
// structure (sequencing, styling, labelling) for the evaluator to compose
// and test against without introspecting element internals.
package content

import "fmt"

// Content is an immutable, persistent tree of typeset elements. The
// evaluator never inspects a Content's internals; it only sequences,
// styles, and labels values produced by the Library constructors.
type Content interface {
	fmt.Stringer

	// Unlabellable reports whether a preceding markup label must skip
	// past this node when searching for something to attach to
	// (spec.md §4.1.1 "skipping nodes that advertise unlabellable").
	Unlabellable() bool

	isContent()
}

// Empty is the identity element for Sequence.
var Empty Content = sequence{}

// Sequence concatenates parts left to right, flattening nested sequences
// and dropping empty ones so repeated markup concatenation does not build
// unbounded nesting.
func Sequence(parts ...Content) Content {
	flat := make([]Content, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			continue
		}
		if seq, ok := p.(sequence); ok {
			flat = append(flat, seq.items...)
			continue
		}
		flat = append(flat, p)
	}
	switch len(flat) {
	case 0:
		return Empty
	case 1:
		return flat[0]
	default:
		return sequence{items: flat}
	}
}

type sequence struct {
	items []Content
}

func (sequence) isContent()          {}
func (sequence) Unlabellable() bool  { return true }
func (s sequence) String() string {
	out := ""
	for i, it := range s.items {
		if i > 0 {
			out += " "
		}
		out += it.String()
	}
	return out
}

// Items returns the flattened parts of c, or a single-element slice if c
// is not a sequence.
func Items(c Content) []Content {
	if seq, ok := c.(sequence); ok {
		return seq.items
	}
	return []Content{c}
}

// Styled wraps Body with an opaque style set or recipe produced by `set`
// or `show` (spec.md §4.1.1 "Set form" / "Show form"). Style and Recipe
// are mutually exclusive; exactly one is non-nil.
type Styled struct {
	Body   Content
	Style  any // an internal/core/value style-set handle, or nil
	Recipe any // an internal/core/value recipe handle, or nil
}

func (Styled) isContent()         {}
func (Styled) Unlabellable() bool { return true }
func (s Styled) String() string   { return fmt.Sprintf("styled(%s)", s.Body) }

// Labelled attaches a label to Body. Unlabellable reports whether the
// immediately preceding content in a markup sequence may accept a label;
// Label walks backward through a sequence applying one.
type Labelled struct {
	Body  Content
	Label string
}

func (Labelled) isContent()         {}
func (Labelled) Unlabellable() bool { return false }
func (l Labelled) String() string   { return fmt.Sprintf("%s<%s>", l.Body, l.Label) }

// Label attaches name to the last labellable node in c, searching
// backward past any trailing nodes that advertise Unlabellable. It
// returns the rewritten content and whether attachment succeeded; a
// caller that gets false must silently drop the label per spec.md §4.1.1.
func Label(c Content, name string) (Content, bool) {
	items := Items(c)
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Unlabellable() {
			continue
		}
		rewritten := make([]Content, len(items))
		copy(rewritten, items)
		rewritten[i] = Labelled{Body: items[i], Label: name}
		return Sequence(rewritten...), true
	}
	return c, false
}
