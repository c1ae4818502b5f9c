package value

import (
	"fmt"

	"github.com/scrivenlang/scriven/content"
)

// Join implements spec.md §4.1.2's code-sequencing combinator:
// join(None, v) = v; join(v, None) = v; join(str, str) concatenates;
// join(content, content) concatenates; join(array, array) concatenates;
// otherwise an error.
func Join(a, b Value) (Value, error) {
	if a.kind == KindNone {
		return b, nil
	}
	if b.kind == KindNone {
		return a, nil
	}
	switch {
	case a.kind == KindStr && b.kind == KindStr:
		return Str(a.s + b.s), nil
	case a.kind == KindContent && b.kind == KindContent:
		return ContentVal(content.Sequence(a.content, b.content)), nil
	case a.kind == KindArray && b.kind == KindArray:
		items := make([]Value, 0, len(a.arr.items)+len(b.arr.items))
		items = append(items, a.arr.items...)
		items = append(items, b.arr.items...)
		return Array(items), nil
	default:
		return None, fmt.Errorf("cannot join %s with %s", a.kind, b.kind)
	}
}
