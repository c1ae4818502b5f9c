package content

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestSequenceFlattensAndDropsEmpty(t *testing.T) {
	lib := Default()
	a := lib.Text("a")
	b := lib.Text("b")
	c := lib.Text("c")

	got := Sequence(Empty, Sequence(a, b), Empty, c)
	qt.Assert(t, qt.DeepEquals(Items(got), []Content{a, b, c}))
}

func TestSequenceSingleUnwraps(t *testing.T) {
	a := Default().Text("solo")
	got := Sequence(a)
	qt.Assert(t, qt.Equals(got, a))
}

func TestSequenceEmptyIsEmpty(t *testing.T) {
	qt.Assert(t, qt.DeepEquals(Sequence(), Empty))
}

func TestLabelSkipsUnlabellableTrailingNodes(t *testing.T) {
	lib := Default()
	text := lib.Text("word")
	seq := Sequence(text, lib.Space())

	labelled, ok := Label(seq, "lbl")
	qt.Assert(t, qt.IsTrue(ok))

	items := Items(labelled)
	qt.Assert(t, qt.Equals(len(items), 2))
	qt.Assert(t, qt.Equals(items[1], lib.Space()))
	if _, ok := items[0].(Labelled); !ok {
		t.Fatalf("expected items[0] to be Labelled, got %T", items[0])
	}
}

func TestLabelDroppedWhenNoTarget(t *testing.T) {
	seq := Sequence(Default().Space(), Default().Linebreak())
	_, ok := Label(seq, "lbl")
	qt.Assert(t, qt.IsFalse(ok))
}
