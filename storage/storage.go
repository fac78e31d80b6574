// Package storage defines the repositories treebank documents are kept in.
package storage

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidName = errors.New("invalid document name")
)

// Meta describes a stored document without its content.
type Meta struct {
	Name      string `json:"name"`
	Lang      string `json:"lang,omitempty"`
	Sentences int    `json:"sentences"`
	Words     int    `json:"words"`
}

// Hit is a word whose displayed lemma matched a search.
type Hit struct {
	Doc        string `json:"doc"`
	SentenceID string `json:"sentence_id"`
	WordID     string `json:"word_id"`
	Form       string `json:"form"`
	Lemma      string `json:"lemma"`
}

// CorpusReader defines read operations for document storage
type CorpusReader interface {
	// List returns the metadata of all documents, sorted by name.
	List() ([]Meta, error)

	// Read returns a validated document by name.
	Read(name string) (*tb.Corpus, error)

	// FindLemma calls onHit for every word whose lemma has the same
	// LemmaKey as lemma, in document and sentence order.
	FindLemma(lemma string, onHit func(Hit) error) error
}

// CorpusWriter defines write operations for document storage
type CorpusWriter interface {
	// Write stores c under name, replacing any document of that name.
	Write(name string, c *tb.Corpus) error
}

// CorpusRepository combines read and write operations
type CorpusRepository interface {
	CorpusReader
	CorpusWriter
}

// Preloader defines an optional capability for repositories that can load
// every document into memory ahead of searches.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}

// LemmaKey folds a lemma for matching: NFC normalized, lower case, and
// without the homonym number analyzers append ("λόγος1").
func LemmaKey(lemma string) string {
	k := norm.NFC.String(strings.TrimSpace(lemma))
	// a Caser keeps state, so each call gets its own
	k = cases.Lower(language.Und).String(k)
	return strings.TrimRightFunc(k, unicode.IsDigit)
}

// ValidName reports whether name can be used as a document name: not empty
// and free of path separators.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// MetaOf summarizes c under name.
func MetaOf(name string, c *tb.Corpus) Meta {
	m := Meta{Name: name, Sentences: c.Len(), Words: c.NumWords()}
	for _, a := range c.RootAttrs {
		if a.Name == "xml:lang" {
			m.Lang = a.Value
		}
	}
	return m
}

// Hits calls onHit for the words of c whose displayed lemma matches key.
func Hits(name string, c *tb.Corpus, key string, onHit func(Hit) error) error {
	for _, s := range c.Sentences {
		for i := range s.Words {
			w := &s.Words[i]
			lemma, _ := w.Display()
			if lemma == "" || LemmaKey(lemma) != key {
				continue
			}
			h := Hit{Doc: name, SentenceID: s.ID, WordID: w.ID, Form: w.Form, Lemma: lemma}
			if err := onHit(h); err != nil {
				return err
			}
		}
	}
	return nil
}
