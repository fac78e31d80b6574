package treebank

import (
	"strconv"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/postag"
)

// Validate checks the corpus against the treebank schema and returns the
// first violation found as a *ValidationError.
func Validate(c *Corpus) error {
	for i := range c.Sentences {
		if err := ValidateSentence(&c.Sentences[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSentence checks ids, heads, postags, relations and the tree shape
// of one sentence.
func ValidateSentence(s *Sentence) error {
	if !positiveInt(s.ID) {
		return &ValidationError{SentenceID: s.ID, Err: ErrInvalidSentenceID, Detail: strconv.Quote(s.ID)}
	}

	ids := make(map[string]bool, len(s.Words))
	for _, w := range s.Words {
		if !positiveInt(w.ID) {
			return &ValidationError{SentenceID: s.ID, WordID: w.ID, Err: ErrNonNumericID, Detail: strconv.Quote(w.ID)}
		}
		if ids[w.ID] {
			return &ValidationError{SentenceID: s.ID, WordID: w.ID, Err: ErrDuplicateWordID}
		}
		ids[w.ID] = true
	}

	for _, w := range s.Words {
		if err := validateWord(s, &w, ids); err != nil {
			return err
		}
	}

	return CheckTree(s)
}

func validateWord(s *Sentence, w *Word, ids map[string]bool) error {
	if w.Head != "" && w.Head != RootID {
		if _, err := strconv.Atoi(w.Head); err != nil {
			return &ValidationError{SentenceID: s.ID, WordID: w.ID, Err: ErrNonNumericHead, Detail: strconv.Quote(w.Head)}
		}
		if w.Head == w.ID {
			return &ValidationError{SentenceID: s.ID, WordID: w.ID, Err: ErrSelfHead}
		}
		if !ids[w.Head] {
			return &ValidationError{SentenceID: s.ID, WordID: w.ID, Err: ErrHeadOutOfRange, Detail: "head " + w.Head}
		}
	}

	_, tag := w.Display()
	if tag != "" && !postag.Valid(tag) {
		return &ValidationError{SentenceID: s.ID, WordID: w.ID, Err: ErrMalformedPostag, Detail: strconv.Quote(tag)}
	}

	if !ValidRelation(w.Relation) {
		return &ValidationError{SentenceID: s.ID, WordID: w.ID, Err: ErrInvalidRelation, Detail: strconv.Quote(w.Relation)}
	}
	return nil
}

func positiveInt(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0 && strconv.Itoa(n) == s
}
