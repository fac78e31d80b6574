// Package stat aggregates corpus statistics.
package stat

import (
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs      int `json:"docs"`
	NumSentences int `json:"sentences"`
	NumWords     int `json:"words"`

	// WordsPerSentenceMean is rounded down.
	WordsPerSentenceMean int         `json:"words_per_sentence_mean"`
	WordsPerSentenceDis  map[int]int `json:"words_per_sentence"`

	// Unlabelled counts words whose relation is still "---", Unannotated
	// words without postag.
	Unlabelled  int `json:"unlabelled"`
	Unannotated int `json:"unannotated"`

	// MultiRoot counts sentences with more than one word on the root.
	MultiRoot int `json:"multi_root"`

	Relations map[string]int `json:"relations"`
	POS       map[string]int `json:"pos"`
}

func NewHandler() *Handler {
	return &Handler{
		stats: Stats{
			WordsPerSentenceDis: map[int]int{},
			Relations:           map[string]int{},
			POS:                 map[string]int{},
		},
	}
}

func (h *Handler) Get() Stats {
	s := h.stats
	if s.NumSentences > 0 {
		s.WordsPerSentenceMean = s.NumWords / s.NumSentences
	}
	return s
}

// Aggregate adds a document to the statistics.
func (h *Handler) Aggregate(c *tb.Corpus) {
	h.stats.NumDocs++
	h.stats.NumSentences += c.Len()

	for _, s := range c.Sentences {
		h.stats.NumWords += len(s.Words)
		h.stats.WordsPerSentenceDis[len(s.Words)]++

		roots := 0
		for i := range s.Words {
			w := &s.Words[i]
			if w.IsRoot() {
				roots++
			}
			if w.Relation == tb.RelationUnset {
				h.stats.Unlabelled++
			}
			h.stats.Relations[w.Relation]++

			_, tag := w.Display()
			if tag == "" || tag[0] == '-' {
				h.stats.Unannotated++
				continue
			}
			h.stats.POS[tag[:1]]++
		}
		if roots > 1 {
			h.stats.MultiRoot++
		}
	}
}
