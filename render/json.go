package render

import (
	"encoding/json"
	"io"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/edit"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// SentenceView is the JSON shape of a sentence: the words with the values
// currently shown, plus their candidate forms.
type SentenceView struct {
	ID       string     `json:"id"`
	Position int        `json:"position"`
	Words    []WordView `json:"words"`
}

type WordView struct {
	ID       string    `json:"id"`
	Form     string    `json:"form"`
	Lemma    string    `json:"lemma"`
	Postag   string    `json:"postag"`
	Relation string    `json:"relation"`
	Head     string    `json:"head"`
	Active   int       `json:"active"`
	Forms    []tb.Form `json:"forms,omitempty"`
}

// View builds the JSON shape of s at position pos (0-based).
func View(s *tb.Sentence, pos int) SentenceView {
	v := SentenceView{ID: s.ID, Position: pos, Words: make([]WordView, len(s.Words))}
	for i := range s.Words {
		w := &s.Words[i]
		lemma, tag := w.Display()
		v.Words[i] = WordView{
			ID:       w.ID,
			Form:     w.Form,
			Lemma:    lemma,
			Postag:   tag,
			Relation: w.Relation,
			Head:     w.Head,
			Active:   w.Active,
			Forms:    w.Forms,
		}
	}
	return v
}

// JSONRenderer writes sentences and changes as JSON lines to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

func (r *JSONRenderer) Sentence(s *tb.Sentence, pos int) error {
	return json.NewEncoder(r.W).Encode(View(s, pos))
}

func (r *JSONRenderer) Change(ch edit.Change) error {
	return json.NewEncoder(r.W).Encode(ch)
}
