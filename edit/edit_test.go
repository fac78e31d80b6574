package edit

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/postag"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

func sentence(id string, heads ...string) tb.Sentence {
	s := tb.Sentence{ID: id, Attrs: []tb.Attr{{Name: "document_id", Value: "tlg0012"}}}
	for i, h := range heads {
		n := strconv.Itoa(i + 1)
		w := tb.NewWord(n, "form"+n, "lemma"+n, "n-s---mn-")
		w.Head = h
		s.Words = append(s.Words, w)
	}
	return s
}

func heads(s tb.Sentence) []string {
	out := make([]string, len(s.Words))
	for i, w := range s.Words {
		out[i] = w.Head
	}
	return out
}

func ids(s tb.Sentence) []string {
	out := make([]string, len(s.Words))
	for i, w := range s.Words {
		out[i] = w.ID
	}
	return out
}

func TestReassignHeadCycleFlip(t *testing.T) {
	// 1 <- 2 <- 3
	s := sentence("1", "0", "1", "2")

	ch, err := ReassignHead(&s, "1", "3")
	if err != nil {
		t.Fatalf("ReassignHead: %v", err)
	}
	if ch.Kind != Flipped || ch.WordID != "3" {
		t.Fatalf("change = %+v, want flip of word 3", ch)
	}
	if got := heads(s); !reflect.DeepEqual(got, []string{"0", "1", "0"}) {
		t.Errorf("heads = %v, want [0 1 0]", got)
	}
	if err := tb.CheckTree(&s); err != nil {
		t.Errorf("tree broken after flip: %v", err)
	}
}

func TestReassignHead(t *testing.T) {
	s := sentence("1", "0", "1", "1")

	ch, err := ReassignHead(&s, "3", "2")
	if err != nil {
		t.Fatal(err)
	}
	if ch.Kind != Reattached || s.Words[2].Head != "2" {
		t.Fatalf("change = %+v, head = %q", ch, s.Words[2].Head)
	}

	if _, err := ReassignHead(&s, "2", "0"); err != nil || s.Words[1].Head != "0" {
		t.Fatalf("attach to root: err %v head %q", err, s.Words[1].Head)
	}

	ch, err = ReassignHead(&s, "2", "2")
	if err != nil || ch.Kind != NoOp {
		t.Fatalf("same word: %+v %v", ch, err)
	}

	_, err = ReassignHead(&s, "2", "9")
	if !errors.Is(err, tb.ErrWordNotFound) || !errors.Is(err, tb.ErrPrecondition) {
		t.Errorf("unknown head: err = %v", err)
	}
}

func TestReassignHeadKeepsTree(t *testing.T) {
	base := sentence("1", "0", "1", "2", "2", "4", "1")

	for _, dep := range ids(base) {
		for _, head := range append(ids(base), "0") {
			s := base.Clone()
			if _, err := ReassignHead(&s, dep, head); err != nil {
				t.Fatalf("%s -> %s: %v", dep, head, err)
			}
			if err := tb.CheckTree(&s); err != nil {
				t.Errorf("%s -> %s broke the tree: %v", dep, head, err)
			}
		}
	}
}

func TestSetRelation(t *testing.T) {
	s := sentence("1", "0", "1")

	if _, err := SetRelation(&s, "2", "SBJ_CO"); err != nil {
		t.Fatal(err)
	}
	if s.Words[1].Relation != "SBJ_CO" {
		t.Errorf("relation = %q", s.Words[1].Relation)
	}

	_, err := SetRelation(&s, "2", "subject")
	if !errors.Is(err, tb.ErrInvalidRelation) || !errors.Is(err, tb.ErrPrecondition) {
		t.Errorf("invalid relation: err = %v", err)
	}
	if s.Words[1].Relation != "SBJ_CO" {
		t.Error("refused edit changed the word")
	}
}

func TestMergeOffsets(t *testing.T) {
	c := &tb.Corpus{Sentences: []tb.Sentence{
		sentence("1", "0", "1"),
		sentence("2", "0", "1", "1"),
		sentence("3", "0"),
	}}

	ch, err := Merge(c, "1", "2")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if ch.Kind != Merged || ch.SentenceID != "1" {
		t.Fatalf("change = %+v", ch)
	}
	if c.Len() != 2 || c.Sentences[1].ID != "2" {
		t.Fatalf("corpus not renumbered: %d sentences", c.Len())
	}

	s := c.Sentences[0]
	if got := ids(s); !reflect.DeepEqual(got, []string{"1", "2", "3", "4", "5"}) {
		t.Errorf("ids = %v", got)
	}
	if got := heads(s); !reflect.DeepEqual(got, []string{"0", "1", "0", "3", "3"}) {
		t.Errorf("heads = %v", got)
	}
	if s.Words[2].Form != "form1" {
		t.Errorf("appended word 3 has form %q", s.Words[2].Form)
	}
	if err := tb.CheckTree(&s); err != nil {
		t.Error(err)
	}
}

func TestMergeIntoLaterSentence(t *testing.T) {
	c := &tb.Corpus{Sentences: []tb.Sentence{sentence("1", "0"), sentence("2", "0", "1")}}

	ch, err := Merge(c, "2", "1")
	if err != nil {
		t.Fatal(err)
	}
	if ch.SentenceID != "1" || c.Len() != 1 {
		t.Fatalf("change %+v, %d sentences", ch, c.Len())
	}
	if got := heads(c.Sentences[0]); !reflect.DeepEqual(got, []string{"0", "1", "0"}) {
		t.Errorf("heads = %v", got)
	}
}

func TestMergePreconditions(t *testing.T) {
	tests := []struct {
		name           string
		source, target string
		want           error
	}{
		{"same", "1", "1", tb.ErrSameSentence},
		{"missing source", "7", "1", tb.ErrSentenceNotFound},
		{"missing target", "1", "7", tb.ErrSentenceNotFound},
		{"empty target", "1", "2", tb.ErrEmptyMergeTarget},
	}

	for _, tt := range tests {
		c := &tb.Corpus{Sentences: []tb.Sentence{sentence("1", "0"), sentence("2")}}
		before := c.Clone()

		_, err := Merge(c, tt.source, tt.target)
		if !errors.Is(err, tt.want) || !errors.Is(err, tb.ErrPrecondition) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
		if !reflect.DeepEqual(c, before) {
			t.Errorf("%s: refused merge changed the corpus", tt.name)
		}
	}
}

func TestSplit(t *testing.T) {
	c := &tb.Corpus{Sentences: []tb.Sentence{
		sentence("1", "0", "1", "1", "3", "4"),
		sentence("2", "0"),
	}}

	ch, err := Split(c, "1", 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if ch.Kind != SplitApart || ch.SentenceID != "1" {
		t.Fatalf("change = %+v", ch)
	}
	if c.Len() != 3 || c.Sentences[2].ID != "3" {
		t.Fatalf("corpus not renumbered: %d sentences", c.Len())
	}

	first, second := c.Sentences[0], c.Sentences[1]
	if got := heads(first); !reflect.DeepEqual(got, []string{"0", "1", "1"}) {
		t.Errorf("first heads = %v", got)
	}
	if got := ids(second); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("second ids = %v", got)
	}
	// word 4 pointed across the cut, word 5 pointed at word 4
	if got := heads(second); !reflect.DeepEqual(got, []string{"0", "1"}) {
		t.Errorf("second heads = %v", got)
	}
	if second.Words[0].Form != "form4" {
		t.Errorf("second sentence starts with %q", second.Words[0].Form)
	}
	if !reflect.DeepEqual(second.Attrs, first.Attrs) {
		t.Errorf("second attrs = %v", second.Attrs)
	}

	second.Attrs[0].Value = "changed"
	if c.Sentences[0].Attrs[0].Value == "changed" {
		t.Error("split sentences share attributes")
	}

	for i := range c.Sentences {
		if err := tb.CheckTree(&c.Sentences[i]); err != nil {
			t.Error(err)
		}
	}
}

func TestSplitPreconditions(t *testing.T) {
	for _, k := range []int{0, 3, -1, 9} {
		c := &tb.Corpus{Sentences: []tb.Sentence{sentence("1", "0", "1", "1")}}
		_, err := Split(c, "1", k)
		if !errors.Is(err, tb.ErrInvalidSplitPoint) {
			t.Errorf("k=%d: err = %v", k, err)
		}
		if c.Len() != 1 {
			t.Errorf("k=%d: refused split changed the corpus", k)
		}
	}

	c := &tb.Corpus{Sentences: []tb.Sentence{sentence("1", "0")}}
	if _, err := Split(c, "1", 1); !errors.Is(err, tb.ErrInvalidSplitPoint) {
		t.Errorf("one word sentence: err = %v", err)
	}
	if _, err := Split(c, "4", 1); !errors.Is(err, tb.ErrSentenceNotFound) {
		t.Errorf("missing sentence: err = %v", err)
	}
}

func TestSplitThenMergeRestoresWords(t *testing.T) {
	// no head crosses the cut after word 2
	orig := sentence("1", "0", "1", "0", "3")
	c := &tb.Corpus{Sentences: []tb.Sentence{orig.Clone()}}

	if _, err := Split(c, "1", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := Merge(c, "1", "2"); err != nil {
		t.Fatal(err)
	}

	if c.Len() != 1 {
		t.Fatalf("%d sentences after merge", c.Len())
	}
	if !reflect.DeepEqual(c.Sentences[0].Words, orig.Words) {
		t.Errorf("words differ after split and merge:\n got %+v\nwant %+v", c.Sentences[0].Words, orig.Words)
	}
}

func TestMergeNonContiguousIDs(t *testing.T) {
	target := sentence("2", "0", "1")
	target.Words[0].ID = "10"
	target.Words[1].ID = "11"
	target.Words[1].Head = "10"
	c := &tb.Corpus{Sentences: []tb.Sentence{sentence("1", "0"), target}}

	if _, err := Merge(c, "1", "2"); err != nil {
		t.Fatal(err)
	}
	if got := heads(c.Sentences[0]); !reflect.DeepEqual(got, []string{"0", "0", "2"}) {
		t.Errorf("heads = %v", got)
	}
}

func TestMergeKeepsWordIDsUnique(t *testing.T) {
	source := sentence("1", "0", "3")
	source.Words[0].ID = "3"
	source.Words[1].ID = "4"
	c := &tb.Corpus{Sentences: []tb.Sentence{source, sentence("2", "0", "1")}}

	if _, err := Merge(c, "1", "2"); err != nil {
		t.Fatal(err)
	}
	s := c.Sentences[0]
	ids := make([]string, len(s.Words))
	for i, w := range s.Words {
		ids[i] = w.ID
	}
	if !reflect.DeepEqual(ids, []string{"1", "2", "3", "4"}) {
		t.Errorf("ids = %v", ids)
	}
	if got := heads(s); !reflect.DeepEqual(got, []string{"0", "1", "0", "3"}) {
		t.Errorf("heads = %v", got)
	}
	if err := tb.Validate(c); err != nil {
		t.Errorf("merged corpus invalid: %v", err)
	}
}

func TestKindText(t *testing.T) {
	for kind := range kindNames {
		b, err := kind.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Kind
		if err := got.UnmarshalText(b); err != nil || got != kind {
			t.Errorf("%s: got %v, err %v", b, got, err)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("moved")); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestChangeJSONKeepsFirstForm(t *testing.T) {
	b, err := json.Marshal(Change{Kind: FormActivated, WordID: "2", Form: 0})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"form":0`) || !strings.Contains(string(b), `"kind":"form-activated"`) {
		t.Errorf("json = %s", b)
	}
	var ch Change
	if err := json.Unmarshal(b, &ch); err != nil || ch.Kind != FormActivated || ch.Form != 0 {
		t.Errorf("decoded %+v, err %v", ch, err)
	}
}

func TestCreateForm(t *testing.T) {
	w := tb.NewWord("1", "ἔλεγε", "λέγω", "v3siia---")

	ch, err := CreateForm(&w, "λέγω", postag.Fields{POS: "v", Person: "3", Number: "s", Tense: "p", Mood: "i", Voice: "a"})
	if err != nil {
		t.Fatalf("CreateForm: %v", err)
	}
	if ch.Kind != FormCreated || ch.Form != 0 {
		t.Fatalf("change = %+v", ch)
	}
	want := tb.Form{Lemma: "λέγω", Postag: "v3spia---", Source: tb.SourceUser}
	if len(w.Forms) != 1 || w.Forms[0] != want {
		t.Fatalf("forms = %+v", w.Forms)
	}
	if l, p := w.Display(); l != "λέγω" || p != "v3spia---" || w.Active != 0 {
		t.Errorf("display = %q %q, active %d", l, p, w.Active)
	}
}

func TestCreateFormRejects(t *testing.T) {
	w := tb.NewWord("1", "λόγον", "λόγος", "n-s---ma-")

	_, err := CreateForm(&w, " ", postag.Fields{POS: "c"})
	if !errors.Is(err, tb.ErrMissingLemma) {
		t.Errorf("no lemma: err = %v", err)
	}

	_, err = CreateForm(&w, "λόγος", postag.Fields{POS: "n", Number: "s"})
	var mf *MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("missing fields: err = %v", err)
	}
	if !reflect.DeepEqual(mf.Fields, []postag.Slot{postag.SlotGender, postag.SlotCase}) {
		t.Errorf("missing = %v", mf.Fields)
	}
	if !errors.Is(err, tb.ErrMissingField) || !errors.Is(err, tb.ErrPrecondition) {
		t.Errorf("missing field error does not match its kinds: %v", err)
	}

	_, err = CreateForm(&w, "λόγος", postag.Fields{POS: "n", Number: "s", Gender: "m", Case: "q"})
	if !errors.Is(err, postag.ErrSlotValue) || !errors.Is(err, tb.ErrPrecondition) {
		t.Errorf("bad case: err = %v", err)
	}

	if len(w.Forms) != 0 || w.Active != tb.NoForm {
		t.Error("refused forms changed the word")
	}
}

func TestActivateForm(t *testing.T) {
	w := tb.NewWord("1", "a", "a", "")
	w.Forms = []tb.Form{{Lemma: "x"}, {Lemma: "y"}}

	if _, err := ActivateForm(&w, 1); err != nil || w.Active != 1 {
		t.Fatalf("activate 1: %v, active %d", err, w.Active)
	}
	if _, err := ActivateForm(&w, tb.NoForm); err != nil || w.Active != tb.NoForm {
		t.Fatalf("activate document: %v, active %d", err, w.Active)
	}
	for _, i := range []int{2, -2} {
		if _, err := ActivateForm(&w, i); !errors.Is(err, tb.ErrFormIndex) {
			t.Errorf("activate %d: err = %v", i, err)
		}
	}
}

func TestDeleteForm(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		del        int
		wantActive int
		wantLemmas []string
	}{
		{"active removed", 1, 1, tb.NoForm, []string{"x", "z"}},
		{"before active", 2, 0, 1, []string{"y", "z"}},
		{"after active", 0, 2, 0, []string{"x", "y"}},
		{"document active", tb.NoForm, 0, tb.NoForm, []string{"y", "z"}},
	}

	for _, tt := range tests {
		w := tb.NewWord("1", "a", "a", "")
		w.Forms = []tb.Form{{Lemma: "x"}, {Lemma: "y"}, {Lemma: "z"}}
		w.Active = tt.active

		if _, err := DeleteForm(&w, tt.del); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if w.Active != tt.wantActive {
			t.Errorf("%s: active = %d, want %d", tt.name, w.Active, tt.wantActive)
		}
		var got []string
		for _, f := range w.Forms {
			got = append(got, f.Lemma)
		}
		if !reflect.DeepEqual(got, tt.wantLemmas) {
			t.Errorf("%s: forms = %v, want %v", tt.name, got, tt.wantLemmas)
		}
	}
}

func TestDeleteDocumentForm(t *testing.T) {
	w := tb.NewWord("1", "λόγος", "λόγος", "n-s---mn-")

	ch, err := DeleteForm(&w, tb.NoForm)
	if err != nil {
		t.Fatal(err)
	}
	if ch.Kind != DocumentFormCleared {
		t.Errorf("kind = %v", ch.Kind)
	}
	if l, p := w.Display(); l != "" || p != "" {
		t.Errorf("display = %q %q after clearing", l, p)
	}

	if _, err := DeleteForm(&w, 0); !errors.Is(err, tb.ErrFormIndex) {
		t.Errorf("delete on empty forms: err = %v", err)
	}
}

func TestMergeSuggestions(t *testing.T) {
	w := tb.NewWord("1", "λόγος", "λόγος", "n-s---mn-")
	w.Forms = []tb.Form{{Lemma: "λόγος", Postag: "n-s---mv-", Source: tb.SourceUser}}

	n := MergeSuggestions(&w, []tb.Form{
		{Lemma: "λόγος", Postag: "n-s---mn-", Source: "morpheusgrc"},
		{Lemma: "λόγος", Postag: "n-s---mv-", Source: "morpheusgrc"},
		{Lemma: "λόγος", Postag: "n-s---mg-", Source: "morpheusgrc"},
		{Lemma: "λόγος", Postag: "n-s---mg-", Source: "morpheusgrc"},
	})
	if n != 1 || len(w.Forms) != 2 {
		t.Fatalf("added %d, forms %+v", n, w.Forms)
	}
	if w.Forms[1].Postag != "n-s---mg-" || w.Active != tb.NoForm {
		t.Errorf("forms %+v, active %d", w.Forms, w.Active)
	}
}
