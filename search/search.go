// Package search finds the words of a repository by lemma.
package search

import (
	"fmt"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// Match is a hit together with the forms of its sentence. Index is the
// position of the hit word in Forms.
type Match struct {
	storage.Hit
	Forms []string `json:"forms"`
	Index int      `json:"index"`
}

// Search orchestrates the strategy selection for finding the words of a
// lemma in a document repository.
type Search struct {
	repo storage.CorpusReader
	doc  *string
}

func New(repo storage.CorpusReader) *Search {
	return &Search{repo: repo}
}

// WithDoc restricts the search to one document. The document is then
// scanned directly instead of going through the repository index.
func (s *Search) WithDoc(name string) *Search {
	s.doc = &name
	return s
}

// Lemma calls onMatch for every word of lemma.
func (s *Search) Lemma(lemma string, onMatch func(Match) error) error {
	// Strategy 1: single document, no index
	if s.doc != nil {
		c, err := s.repo.Read(*s.doc)
		if err != nil {
			return err
		}
		return storage.Hits(*s.doc, c, storage.LemmaKey(lemma), func(h storage.Hit) error {
			return onMatch(kwic(c, h))
		})
	}

	// Strategy 2: the repository lookup. Documents are read once for the
	// sentence context of their hits.
	docs := map[string]*tb.Corpus{}
	return s.repo.FindLemma(lemma, func(h storage.Hit) error {
		c, ok := docs[h.Doc]
		if !ok {
			var err error
			c, err = s.repo.Read(h.Doc)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", h.Doc, err)
			}
			docs[h.Doc] = c
		}
		return onMatch(kwic(c, h))
	})
}

func kwic(c *tb.Corpus, h storage.Hit) Match {
	m := Match{Hit: h, Index: -1}
	st, err := c.Sentence(h.SentenceID)
	if err != nil {
		return m
	}
	for i, w := range st.Words {
		m.Forms = append(m.Forms, w.Form)
		if w.ID == h.WordID {
			m.Index = i
		}
	}
	return m
}
