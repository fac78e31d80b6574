package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/render"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/session"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

const doc = `<treebank xml:lang="grc">
  <sentence id="1">
    <word id="1" form="ἄνδρα" lemma="ἀνήρ" postag="n-s---ma-" relation="OBJ" head="2"/>
    <word id="2" form="μοι" lemma="ἐγώ" postag="p1s---md-" relation="OBJ" head="3"/>
    <word id="3" form="ἔννεπε" lemma="ἐννέπω" postag="v2spma---" relation="PRED" head="0"/>
  </sentence>
  <sentence id="2">
    <word id="1" form="μοῦσα" lemma="μοῦσα" postag="n-s---fv-" relation="ExD" head="0"/>
  </sentence>
</treebank>`

func newHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	c, err := file.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	s, err := session.New(c)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	r := render.NewRenderer(&out)
	r.Format = "text"
	return NewHandler(s, r, &out), &out
}

func word(t *testing.T, h *Handler, sid, wid string) tb.Word {
	t.Helper()
	st, err := h.Session.Sentence(sid)
	if err != nil {
		t.Fatal(err)
	}
	w, err := st.Word(wid)
	if err != nil {
		t.Fatal(err)
	}
	return *w
}

func TestExecEdits(t *testing.T) {
	h, _ := newHandler(t)

	for _, in := range []string{"rel 1 auxp", "head 3 1"} {
		if err := h.Exec(in); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
	}
	if w := word(t, h, "1", "1"); w.Relation != "AuxP" {
		t.Errorf("relation = %q", w.Relation)
	}
	// 3 is the root of 2 and 1, so attaching it to 1 flips 1 onto the root
	if w := word(t, h, "1", "1"); w.Head != "0" {
		t.Errorf("flipped head = %q", w.Head)
	}

	if err := h.Exec("undo"); err != nil {
		t.Fatal(err)
	}
	if w := word(t, h, "1", "1"); w.Head != "2" {
		t.Errorf("head after undo = %q", w.Head)
	}
	if err := h.Exec("redo"); err != nil {
		t.Fatal(err)
	}
	if err := h.Exec("redo"); err == nil {
		t.Errorf("second redo succeeded")
	}
}

func TestExecSplitMergeNavigation(t *testing.T) {
	h, out := newHandler(t)

	if err := h.Exec("split 1"); err != nil {
		t.Fatal(err)
	}
	if h.Session.Len() != 3 {
		t.Fatalf("sentences = %d", h.Session.Len())
	}

	out.Reset()
	if err := h.Exec("next"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "[   2] μοι ἔννεπε\n" {
		t.Errorf("next shows %q", out.String())
	}
	if err := h.Exec("goto 1"); err != nil {
		t.Fatal(err)
	}
	if err := h.Exec("prev"); err == nil {
		t.Errorf("prev before the first sentence succeeded")
	}

	if err := h.Exec("merge"); err != nil {
		t.Fatal(err)
	}
	if h.Session.Len() != 2 {
		t.Errorf("sentences after merge = %d", h.Session.Len())
	}
	if err := h.Exec("goto 9"); !errors.Is(err, tb.ErrSentenceNotFound) {
		t.Errorf("goto 9: %v", err)
	}
}

func TestExecForms(t *testing.T) {
	h, out := newHandler(t)

	if err := h.Exec("form 1 ἀνήρ pos=noun number=sg gender=masc case=acc"); err != nil {
		t.Fatal(err)
	}
	w := word(t, h, "1", "1")
	if len(w.Forms) != 1 || w.Forms[0].Postag != "n-s---ma-" || w.Active != 0 {
		t.Fatalf("forms = %+v active %d", w.Forms, w.Active)
	}

	if err := h.Exec("activate 1 0"); err != nil {
		t.Fatal(err)
	}
	if w := word(t, h, "1", "1"); w.Active != tb.NoForm {
		t.Errorf("active = %d", w.Active)
	}

	out.Reset()
	if err := h.Exec("forms 1"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "* 0 ἀνήρ") {
		t.Errorf("forms = %q", out.String())
	}

	if err := h.Exec("delform 1 1"); err != nil {
		t.Fatal(err)
	}
	if w := word(t, h, "1", "1"); len(w.Forms) != 0 {
		t.Errorf("forms after delete = %+v", w.Forms)
	}

	if err := h.Exec("form 1 ἀνήρ pos=noun"); !errors.Is(err, tb.ErrMissingField) {
		t.Errorf("incomplete form: %v", err)
	}
	if err := h.Exec("form 1 ἀνήρ pos"); err == nil || !strings.HasPrefix(err.Error(), "usage: form") {
		t.Errorf("malformed field: %v", err)
	}
}

func TestExecSaveAndQuit(t *testing.T) {
	h, _ := newHandler(t)

	if err := h.Exec("quit"); !errors.Is(err, ErrQuit) {
		t.Fatalf("quit on a clean session: %v", err)
	}
	if err := h.Exec("rel 2 ATR"); err != nil {
		t.Fatal(err)
	}
	if err := h.Exec("quit"); err == nil || errors.Is(err, ErrQuit) {
		t.Errorf("quit with unsaved edits: %v", err)
	}
	if err := h.Exec("save"); err == nil {
		t.Errorf("save without Save func succeeded")
	}

	var saved *tb.Corpus
	h.Save = func(c *tb.Corpus) error {
		saved = c
		return nil
	}
	if err := h.Exec("save"); err != nil {
		t.Fatal(err)
	}
	if saved == nil || saved.Sentences[0].Words[1].Relation != "ATR" {
		t.Errorf("saved corpus = %+v", saved)
	}
	if err := h.Exec("quit"); !errors.Is(err, ErrQuit) {
		t.Errorf("quit after save: %v", err)
	}
	if err := h.Exec("quit!"); !errors.Is(err, ErrQuit) {
		t.Errorf("quit!: %v", err)
	}
}

func TestExecErrors(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		in   string
		want string
	}{
		{"dance", `unknown command "dance", try help`},
		{"split", "usage: split <k>"},
		{"split x", "usage: split <k>"},
		{"head 1", "usage: head <word> <head>"},
		{"find λόγος", "no repository to search"},
		{"lookup 1", session.ErrNoAnalyzer.Error()},
	}
	for _, tt := range tests {
		err := h.Exec(tt.in)
		if err == nil || err.Error() != tt.want {
			t.Errorf("%s: err = %v, want %q", tt.in, err, tt.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	h, _ := newHandler(t)

	texts := func(in string) []string {
		var out []string
		for _, s := range h.suggest(in) {
			out = append(out, s.Text)
		}
		return out
	}

	if got := texts("re"); strings.Join(got, " ") != "rel redo" {
		t.Errorf("commands = %v", got)
	}
	if got := texts("head "); strings.Join(got, " ") != "1 2 3" {
		t.Errorf("word ids = %v", got)
	}
	if got := texts("rel 1 aux"); len(got) == 0 || got[0] != "AuxP" {
		t.Errorf("relations = %v", got)
	}
	if got := texts("form 1 ἀνήρ nu"); strings.Join(got, " ") != "number=" {
		t.Errorf("fields = %v", got)
	}
	if got := texts(""); len(got) != 0 {
		t.Errorf("empty line = %v", got)
	}
}
