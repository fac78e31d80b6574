package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/edit"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/morph"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/postag"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// apply runs op on a copy of the corpus. The copy replaces the corpus only
// when op succeeds and the result still validates; the previous corpus then
// goes to the history. A failed or no-op edit changes nothing.
func (s *Session) apply(op func(c *tb.Corpus) (edit.Change, error)) (edit.Change, error) {
	s.mu.Lock()

	work := s.corpus.Clone()
	ch, err := op(work)
	if err != nil {
		s.mu.Unlock()
		return ch, err
	}
	if ch.Kind == edit.NoOp {
		s.mu.Unlock()
		return ch, nil
	}
	if err := tb.Validate(work); err != nil {
		s.mu.Unlock()
		s.logger.Error("session: edit left an invalid corpus, rolled back", "kind", ch.Kind, "error", err)
		return edit.Change{Kind: edit.NoOp}, fmt.Errorf("%s: %w", ch.Kind, err)
	}

	s.history.Save(s.corpus)
	s.corpus = work
	s.xml = nil
	s.clampLocked()
	obs := s.observersLocked()
	s.mu.Unlock()

	s.logger.Debug("session: edit", "kind", ch.Kind, "sentence", ch.SentenceID, "word", ch.WordID)
	notify(obs, ch)
	return ch, nil
}

// sentenceOp runs op on the sentence with the given id.
func (s *Session) sentenceOp(sentenceID string, op func(st *tb.Sentence) (edit.Change, error)) (edit.Change, error) {
	return s.apply(func(c *tb.Corpus) (edit.Change, error) {
		st, err := c.Sentence(sentenceID)
		if err != nil {
			return edit.Change{}, err
		}
		return op(st)
	})
}

// wordOp runs op on a word of a sentence.
func (s *Session) wordOp(sentenceID, wordID string, op func(w *tb.Word) (edit.Change, error)) (edit.Change, error) {
	return s.sentenceOp(sentenceID, func(st *tb.Sentence) (edit.Change, error) {
		w, err := st.Word(wordID)
		if err != nil {
			return edit.Change{}, err
		}
		ch, err := op(w)
		ch.SentenceID = st.ID
		return ch, err
	})
}

func (s *Session) ReassignHead(sentenceID, dependentID, newHeadID string) (edit.Change, error) {
	return s.sentenceOp(sentenceID, func(st *tb.Sentence) (edit.Change, error) {
		return edit.ReassignHead(st, dependentID, newHeadID)
	})
}

func (s *Session) SetRelation(sentenceID, wordID, relation string) (edit.Change, error) {
	return s.sentenceOp(sentenceID, func(st *tb.Sentence) (edit.Change, error) {
		return edit.SetRelation(st, wordID, relation)
	})
}

// Split cuts a sentence after its k-th word.
func (s *Session) Split(sentenceID string, k int) (edit.Change, error) {
	return s.apply(func(c *tb.Corpus) (edit.Change, error) {
		return edit.Split(c, sentenceID, k)
	})
}

// Merge appends targetID to sourceID.
func (s *Session) Merge(sourceID, targetID string) (edit.Change, error) {
	return s.apply(func(c *tb.Corpus) (edit.Change, error) {
		return edit.Merge(c, sourceID, targetID)
	})
}

// MergeNext appends the sentence following sentenceID to it.
func (s *Session) MergeNext(sentenceID string) (edit.Change, error) {
	return s.apply(func(c *tb.Corpus) (edit.Change, error) {
		i := c.Index(sentenceID)
		if i < 0 || i+1 >= c.Len() {
			return edit.Change{}, &tb.PreconditionError{Op: "merge", Err: tb.ErrSentenceNotFound, Detail: "no sentence after " + sentenceID}
		}
		return edit.Merge(c, sentenceID, c.Sentences[i+1].ID)
	})
}

func (s *Session) CreateForm(sentenceID, wordID, lemma string, fields postag.Fields) (edit.Change, error) {
	return s.wordOp(sentenceID, wordID, func(w *tb.Word) (edit.Change, error) {
		return edit.CreateForm(w, lemma, fields)
	})
}

func (s *Session) ActivateForm(sentenceID, wordID string, i int) (edit.Change, error) {
	return s.wordOp(sentenceID, wordID, func(w *tb.Word) (edit.Change, error) {
		return edit.ActivateForm(w, i)
	})
}

func (s *Session) DeleteForm(sentenceID, wordID string, i int) (edit.Change, error) {
	return s.wordOp(sentenceID, wordID, func(w *tb.Word) (edit.Change, error) {
		return edit.DeleteForm(w, i)
	})
}

// Undo restores the corpus as it was before the last edit. It reports
// false when there is nothing to undo.
func (s *Session) Undo() bool {
	return s.travel(edit.Undone)
}

func (s *Session) Redo() bool {
	return s.travel(edit.Redone)
}

func (s *Session) travel(kind edit.Kind) bool {
	s.mu.Lock()
	var c *tb.Corpus
	var ok bool
	if kind == edit.Undone {
		c, ok = s.history.Undo(s.corpus)
	} else {
		c, ok = s.history.Redo(s.corpus)
	}
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.corpus = c
	s.xml = nil
	s.clampLocked()
	obs := s.observersLocked()
	s.mu.Unlock()

	s.logger.Debug("session: history", "kind", kind)
	notify(obs, edit.Change{Kind: kind})
	return true
}

// LookupForms asks the analyzer for the forms of a word and adds the new
// ones as suggestions. A word is looked up once; a failed lookup may be
// retried. The session is not locked while the analyzer runs: the results
// go to the word found at the same position afterwards, and only if it
// still has the same surface form. Lookups are not recorded in the history.
func (s *Session) LookupForms(ctx context.Context, sentenceID, wordID string) (int, error) {
	s.mu.Lock()
	if s.analyzer == nil {
		s.mu.Unlock()
		return 0, ErrNoAnalyzer
	}
	w, err := s.wordLocked(sentenceID, wordID)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	if w.AnalysesLoaded {
		s.mu.Unlock()
		return 0, nil
	}
	w.AnalysesLoaded = true
	form := w.Form
	s.mu.Unlock()

	analyses, lookupErr := s.analyzer.Analyze(ctx, form, s.lang)

	s.mu.Lock()
	w, err = s.wordLocked(sentenceID, wordID)
	same := err == nil && w.Form == form

	if lookupErr != nil {
		if same {
			w.AnalysesLoaded = false
		}
		s.mu.Unlock()
		s.logger.Warn("session: morphology lookup failed", "form", form, "error", lookupErr)
		if !errors.Is(lookupErr, morph.ErrTransient) {
			lookupErr = fmt.Errorf("%w: %w", morph.ErrTransient, lookupErr)
		}
		return 0, fmt.Errorf("lookup %q: %w", form, lookupErr)
	}
	if !same {
		// the word moved or went away while the analyzer ran
		s.mu.Unlock()
		return 0, nil
	}

	n := edit.MergeSuggestions(w, morph.Forms(analyses, s.source))
	obs := s.observersLocked()
	s.mu.Unlock()

	s.logger.Debug("session: forms merged", "form", form, "added", n)
	notify(obs, edit.Change{Kind: edit.SuggestionsMerged, SentenceID: sentenceID, WordID: wordID, Count: n})
	return n, nil
}

func (s *Session) wordLocked(sentenceID, wordID string) (*tb.Word, error) {
	st, err := s.corpus.Sentence(sentenceID)
	if err != nil {
		return nil, err
	}
	return st.Word(wordID)
}
