package route

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestContainsDetectsCycle(t *testing.T) {
	r := Insert(Insert(Empty, "/a.typ"), "/b.typ")
	qt.Assert(t, qt.IsTrue(r.Contains("/a.typ")))
	qt.Assert(t, qt.IsTrue(r.Contains("/b.typ")))
	qt.Assert(t, qt.IsFalse(r.Contains("/c.typ")))
}

func TestKeyOrdersOutermostFirst(t *testing.T) {
	r := Insert(Insert(Empty, "/a.typ"), "/b.typ")
	qt.Assert(t, qt.Equals(r.Key(), "/a.typ>/b.typ>"))
}
