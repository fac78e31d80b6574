package history

import (
	"reflect"
	"testing"

	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

func corpus(words ...string) *tb.Corpus {
	s := tb.Sentence{ID: "1"}
	for i, f := range words {
		w := tb.NewWord(string(rune('1'+i)), f, f, "")
		s.Words = append(s.Words, w)
	}
	return &tb.Corpus{Root: "treebank", Sentences: []tb.Sentence{s}}
}

// edit mutates c in place the way a session commit would after Save.
func edit(h *History, c *tb.Corpus, form string) *tb.Corpus {
	h.Save(c)
	next := c.Clone()
	next.Sentences[0].Words[0].Form = form
	return next
}

func TestUndoRedoInverse(t *testing.T) {
	h := New(0)
	s0 := corpus("a", "b")

	s1 := edit(h, s0, "x")
	s2 := edit(h, s1, "y")

	got, ok := h.Undo(s2)
	if !ok || !reflect.DeepEqual(got, s1) {
		t.Fatalf("first undo = %+v, want %+v", got, s1)
	}
	got, ok = h.Undo(got)
	if !ok || !reflect.DeepEqual(got, s0) {
		t.Fatalf("second undo = %+v, want s0", got)
	}

	got, ok = h.Redo(got)
	if !ok || !reflect.DeepEqual(got, s1) {
		t.Fatalf("redo = %+v, want s1", got)
	}
	got, ok = h.Redo(got)
	if !ok || !reflect.DeepEqual(got, s2) {
		t.Fatalf("second redo = %+v, want s2", got)
	}

	if _, ok := h.Redo(got); ok {
		t.Error("redo past the newest state should be a no-op")
	}
}

func TestUndoOnEmptyIsNoop(t *testing.T) {
	h := New(0)
	c := corpus("a")

	got, ok := h.Undo(c)
	if ok || got != c {
		t.Fatalf("Undo on empty history = %v, %v", got, ok)
	}
	if u, r := h.Depth(); u != 0 || r != 0 {
		t.Errorf("depth = %d/%d", u, r)
	}
}

func TestSaveClearsRedo(t *testing.T) {
	h := New(0)
	s0 := corpus("a")
	s1 := edit(h, s0, "x")

	back, _ := h.Undo(s1)
	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	edit(h, back, "z")
	if h.CanRedo() {
		t.Error("a new edit must discard redo history")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	h := New(0)
	c := corpus("a")

	h.Save(c)
	c.Sentences[0].Words[0].Form = "changed"
	c.Sentences[0].Words[0].Forms = append(c.Sentences[0].Words[0].Forms, tb.Form{Lemma: "l"})

	got, _ := h.Undo(c)
	w := got.Sentences[0].Words[0]
	if w.Form != "a" || len(w.Forms) != 0 {
		t.Errorf("snapshot followed the live corpus: %+v", w)
	}

	// the redo entry is a copy of c, not c itself
	c.Sentences[0].Words[0].Form = "later"
	again, _ := h.Redo(got)
	if again.Sentences[0].Words[0].Form != "changed" {
		t.Errorf("redo snapshot = %q", again.Sentences[0].Words[0].Form)
	}
}

func TestLimit(t *testing.T) {
	h := New(2)
	c := corpus("a")
	for _, f := range []string{"b", "c", "d", "e"} {
		c = edit(h, c, f)
	}

	if u, _ := h.Depth(); u != 2 {
		t.Fatalf("undo depth = %d, want 2", u)
	}

	c, _ = h.Undo(c)
	c, _ = h.Undo(c)
	if got := c.Sentences[0].Words[0].Form; got != "c" {
		t.Errorf("oldest reachable state has form %q, want c", got)
	}
	if h.CanUndo() {
		t.Error("history kept more than its limit")
	}
}

func TestClear(t *testing.T) {
	h := New(0)
	c := edit(h, corpus("a"), "b")
	h.Undo(c)
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear left entries behind")
	}
}
