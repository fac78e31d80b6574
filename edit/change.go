// Package edit holds the operations that transform a treebank corpus. Each
// one checks its preconditions before it touches the model and returns a
// Change describing what it did, for observers that re-render.
package edit

import (
	"fmt"
)

// Kind classifies a Change.
type Kind int

const (
	NoOp Kind = iota
	Reattached
	Flipped
	Relabeled
	Merged
	SplitApart
	FormCreated
	FormActivated
	FormDeleted
	DocumentFormCleared
	SuggestionsMerged

	// Session level changes
	Loaded
	Undone
	Redone
)

var kindNames = map[Kind]string{
	NoOp:                "noop",
	Reattached:          "reattached",
	Flipped:             "flipped",
	Relabeled:           "relabeled",
	Merged:              "merged",
	SplitApart:          "split",
	FormCreated:         "form-created",
	FormActivated:       "form-activated",
	FormDeleted:         "form-deleted",
	DocumentFormCleared: "document-form-cleared",
	SuggestionsMerged:   "suggestions-merged",
	Loaded:              "loaded",
	Undone:              "undone",
	Redone:              "redone",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText lets Kind appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown change kind %q", b)
}

// Change describes a completed edit. SentenceID is the sentence that holds
// the result; WordID the word whose fields changed, if any.
type Change struct {
	Kind       Kind   `json:"kind"`
	SentenceID string `json:"sentence_id,omitempty"`
	WordID     string `json:"word_id,omitempty"`

	// Head is the new head of WordID for Reattached and Flipped.
	Head string `json:"head,omitempty"`

	// Form is the affected form index for form changes, NoForm the
	// document form.
	Form int `json:"form"`

	// Count is the number of forms added by SuggestionsMerged.
	Count int `json:"count,omitempty"`
}

// Structural reports whether the change may have touched heads or sentence
// boundaries.
func (c Change) Structural() bool {
	switch c.Kind {
	case Reattached, Flipped, Merged, SplitApart, Loaded, Undone, Redone:
		return true
	}
	return false
}
