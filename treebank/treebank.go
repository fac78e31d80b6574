package treebank

import (
	"strconv"
)

const (
	// RootID is the head value of words attached to the synthetic sentence root.
	RootID = "0"

	// NoForm is the Active value selecting the document form.
	NoForm = -1

	SourceDocument = "document"
	SourceUser     = "you"
)

// Attr is an attribute kept verbatim from the source document. Namespaced
// attributes carry their prefix in Name (f.ex. "xml:lang").
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Corpus is an ordered collection of sentences together with the root element
// that wrapped them in the source document.
type Corpus struct {
	Root      string     `json:"root"`
	RootAttrs []Attr     `json:"root_attrs,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

type Sentence struct {
	ID    string `json:"id"`
	Words []Word `json:"words"`

	// Attrs holds the sentence attributes other than id.
	Attrs []Attr `json:"attrs,omitempty"`
}

// Form is one candidate morphological analysis of a word.
type Form struct {
	Lemma  string `json:"lemma"`
	Postag string `json:"postag"`

	// Source is "document", "you" or the id of an external analyzer.
	Source string `json:"source"`
}

// DocForm is the shadow of the lemma and postag found in the source document.
type DocForm struct {
	Lemma  string `json:"lemma"`
	Postag string `json:"postag"`

	// Set reports whether the shadow was captured.
	Set bool `json:"set"`
}

// Word represents a token of a sentence with its dependency and morphology.
type Word struct {
	ID       string `json:"id"`
	Form     string `json:"form"`
	Head     string `json:"head"`
	Relation string `json:"relation"`

	Doc    DocForm `json:"doc"`
	Forms  []Form  `json:"forms,omitempty"`
	Active int     `json:"active"`

	// Attrs holds the word attributes the model does not track.
	Attrs []Attr `json:"attrs,omitempty"`

	// AnalysesLoaded is set once an external analyzer was asked for this
	// word. It is reset when the lookup fails.
	AnalysesLoaded bool `json:"-"`
}

// NewWord returns a word whose document form is lemma and postag.
func NewWord(id, form, lemma, postag string) Word {
	w := Word{
		ID:       id,
		Form:     form,
		Head:     RootID,
		Relation: RelationUnset,
		Active:   NoForm,
	}
	w.Doc = DocForm{Lemma: lemma, Postag: postag, Set: true}
	return w
}

// TouchDocument captures the document lemma and postag the first time a word
// is touched. Later calls are no-ops.
func (w *Word) TouchDocument(lemma, postag string) {
	if w.Doc.Set {
		return
	}
	w.Doc = DocForm{Lemma: lemma, Postag: postag, Set: true}
}

// Display returns the lemma and postag currently shown for the word: the
// active form, or the document form when no form is active.
func (w *Word) Display() (lemma, postag string) {
	if w.Active >= 0 && w.Active < len(w.Forms) {
		f := w.Forms[w.Active]
		return f.Lemma, f.Postag
	}
	return w.Doc.Lemma, w.Doc.Postag
}

// IsRoot reports whether the word attaches to the synthetic root.
func (w *Word) IsRoot() bool {
	return w.Head == RootID || w.Head == ""
}

// HasForm reports whether lemma and postag are already an analysis of the
// word, the document form included.
func (w *Word) HasForm(lemma, postag string) bool {
	if w.Doc.Set && w.Doc.Lemma == lemma && w.Doc.Postag == postag {
		return true
	}
	for _, f := range w.Forms {
		if f.Lemma == lemma && f.Postag == postag {
			return true
		}
	}
	return false
}

// Attr returns the value of a preserved attribute.
func (w *Word) Attr(name string) (string, bool) {
	return lookupAttr(w.Attrs, name)
}

func (s *Sentence) Attr(name string) (string, bool) {
	return lookupAttr(s.Attrs, name)
}

func lookupAttr(attrs []Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Index returns the index of the word with the given id, or -1.
func (s *Sentence) Index(id string) int {
	for i := range s.Words {
		if s.Words[i].ID == id {
			return i
		}
	}
	return -1
}

// Word returns a pointer to the word with the given id.
func (s *Sentence) Word(id string) (*Word, error) {
	i := s.Index(id)
	if i < 0 {
		return nil, &PreconditionError{Op: "word", Err: ErrWordNotFound, Detail: "sentence " + s.ID + " word " + id}
	}
	return &s.Words[i], nil
}

// RenumberWords gives the words the ids offset+1..offset+n in positional
// order. Heads are rewritten through remap; a head remap does not know
// becomes the root.
func (s *Sentence) RenumberWords(offset int, remap func(head string) string) {
	for i := range s.Words {
		w := &s.Words[i]
		w.ID = strconv.Itoa(offset + i + 1)
		if remap != nil {
			w.Head = remap(w.Head)
		}
		if w.Head == "" {
			w.Head = RootID
		}
	}
}

// Len returns the number of sentences.
func (c *Corpus) Len() int {
	return len(c.Sentences)
}

// Index returns the position of the sentence with the given id, or -1.
func (c *Corpus) Index(id string) int {
	for i := range c.Sentences {
		if c.Sentences[i].ID == id {
			return i
		}
	}
	return -1
}

// Sentence returns a pointer to the sentence with the given id.
func (c *Corpus) Sentence(id string) (*Sentence, error) {
	i := c.Index(id)
	if i < 0 {
		return nil, &PreconditionError{Op: "sentence", Err: ErrSentenceNotFound, Detail: "sentence " + id}
	}
	return &c.Sentences[i], nil
}

// Renumber gives the sentences the ids 1..N in corpus order.
func (c *Corpus) Renumber() {
	for i := range c.Sentences {
		c.Sentences[i].ID = strconv.Itoa(i + 1)
	}
}

// Insert places s at position i and renumbers the corpus.
func (c *Corpus) Insert(i int, s Sentence) {
	if i < 0 {
		i = 0
	}
	if i > len(c.Sentences) {
		i = len(c.Sentences)
	}
	c.Sentences = append(c.Sentences, Sentence{})
	copy(c.Sentences[i+1:], c.Sentences[i:])
	c.Sentences[i] = s
	c.Renumber()
}

// Remove deletes the sentence at position i and renumbers the corpus.
func (c *Corpus) Remove(i int) {
	if i < 0 || i >= len(c.Sentences) {
		return
	}
	c.Sentences = append(c.Sentences[:i], c.Sentences[i+1:]...)
	c.Renumber()
}

// NumWords returns the number of words in the corpus.
func (c *Corpus) NumWords() int {
	n := 0
	for _, s := range c.Sentences {
		n += len(s.Words)
	}
	return n
}

// Clone returns a deep copy of the corpus that shares no memory with c.
func (c *Corpus) Clone() *Corpus {
	if c == nil {
		return nil
	}
	out := &Corpus{
		Root:      c.Root,
		RootAttrs: cloneAttrs(c.RootAttrs),
	}
	if c.Sentences != nil {
		out.Sentences = make([]Sentence, len(c.Sentences))
		for i := range c.Sentences {
			out.Sentences[i] = c.Sentences[i].Clone()
		}
	}
	return out
}

func (s Sentence) Clone() Sentence {
	out := Sentence{
		ID:    s.ID,
		Attrs: cloneAttrs(s.Attrs),
	}
	if s.Words != nil {
		out.Words = make([]Word, len(s.Words))
		for i := range s.Words {
			out.Words[i] = s.Words[i].Clone()
		}
	}
	return out
}

func (w Word) Clone() Word {
	out := w
	out.Attrs = cloneAttrs(w.Attrs)
	if w.Forms != nil {
		out.Forms = make([]Form, len(w.Forms))
		copy(out.Forms, w.Forms)
	}
	return out
}

func cloneAttrs(attrs []Attr) []Attr {
	if attrs == nil {
		return nil
	}
	out := make([]Attr, len(attrs))
	copy(out, attrs)
	return out
}
