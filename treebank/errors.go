package treebank

import (
	"errors"
	"fmt"
)

// Error kinds. Every structural violation matches ErrStructural and every
// precondition failure matches ErrPrecondition under errors.Is.
var (
	// ErrStructural marks a document that breaks the treebank schema. A load
	// that hits one is aborted as a whole.
	ErrStructural = errors.New("structural violation")

	// ErrPrecondition marks an edit that was refused before anything changed.
	ErrPrecondition = errors.New("precondition failure")
)

// Structural violations
var (
	// ErrInvalidSentenceID indicates a sentence id that is not a positive integer.
	ErrInvalidSentenceID = errors.New("sentence id is not a positive integer")

	// ErrNonNumericID indicates a word id that is not a positive integer.
	ErrNonNumericID = errors.New("word id is not a positive integer")

	// ErrDuplicateWordID indicates two words of a sentence sharing an id.
	ErrDuplicateWordID = errors.New("duplicate word id")

	// ErrNonNumericHead indicates a head that is not an integer.
	ErrNonNumericHead = errors.New("head is not an integer")

	// ErrHeadOutOfRange indicates a head naming no word of the sentence.
	ErrHeadOutOfRange = errors.New("head out of range")

	// ErrSelfHead indicates a word that is its own head.
	ErrSelfHead = errors.New("word is its own head")

	// ErrMalformedPostag indicates a postag of the wrong length or alphabet.
	ErrMalformedPostag = errors.New("malformed postag")

	// ErrInvalidRelation indicates a relation outside the label vocabulary.
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrCycle indicates a head chain that never reaches the root.
	ErrCycle = errors.New("dependency cycle")
)

// Precondition failures
var (
	ErrSentenceNotFound = errors.New("sentence not found")
	ErrWordNotFound     = errors.New("word not found")

	// ErrInvalidSplitPoint indicates a cut point outside [1, words).
	ErrInvalidSplitPoint = errors.New("invalid split point")

	// ErrEmptyMergeTarget indicates a merge whose appended sentence has no words.
	ErrEmptyMergeTarget = errors.New("merge target has no words")

	// ErrSameSentence indicates a merge of a sentence with itself.
	ErrSameSentence = errors.New("cannot merge a sentence with itself")

	// ErrMissingField indicates a morphological field required by the part of
	// speech was not given.
	ErrMissingField = errors.New("missing morphological field")

	// ErrFormIndex indicates a form index outside the word's forms.
	ErrFormIndex = errors.New("form index out of range")

	// ErrMissingLemma indicates a user form without lemma.
	ErrMissingLemma = errors.New("lemma is required")
)

// ValidationError locates a structural violation in the corpus.
type ValidationError struct {
	SentenceID string
	WordID     string
	Detail     string
	Err        error
}

func (e *ValidationError) Error() string {
	msg := "sentence " + e.SentenceID
	if e.WordID != "" {
		msg += " word " + e.WordID
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrStructural
}

// PreconditionError reports an edit refused before any mutation.
type PreconditionError struct {
	Op     string
	Detail string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
