package edit

import (
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// ReassignHead makes newHeadID the head of dependentID.
//
// When that would close a cycle the edit is not refused: instead the word
// newHeadID takes over the current head of dependentID and dependentID keeps
// its head. Selecting the same word twice is a no-op.
func ReassignHead(s *tb.Sentence, dependentID, newHeadID string) (Change, error) {
	ch := Change{Kind: NoOp, SentenceID: s.ID}
	if dependentID == newHeadID {
		return ch, nil
	}

	dep, err := s.Word(dependentID)
	if err != nil {
		return ch, err
	}

	if newHeadID == tb.RootID {
		dep.Head = tb.RootID
		return Change{Kind: Reattached, SentenceID: s.ID, WordID: dependentID, Head: tb.RootID}, nil
	}

	head, err := s.Word(newHeadID)
	if err != nil {
		return ch, err
	}

	if tb.WouldCreateCycle(s.Words, dependentID, newHeadID) {
		head.Head = dep.Head
		if head.Head == "" {
			head.Head = tb.RootID
		}
		return Change{Kind: Flipped, SentenceID: s.ID, WordID: newHeadID, Head: head.Head}, nil
	}

	dep.Head = newHeadID
	return Change{Kind: Reattached, SentenceID: s.ID, WordID: dependentID, Head: newHeadID}, nil
}

// SetRelation sets the relation label of a word.
func SetRelation(s *tb.Sentence, wordID, relation string) (Change, error) {
	w, err := s.Word(wordID)
	if err != nil {
		return Change{Kind: NoOp, SentenceID: s.ID}, err
	}
	if !tb.ValidRelation(relation) {
		return Change{Kind: NoOp, SentenceID: s.ID}, &tb.PreconditionError{Op: "relation", Err: tb.ErrInvalidRelation, Detail: relation}
	}

	w.Relation = relation
	return Change{Kind: Relabeled, SentenceID: s.ID, WordID: wordID}, nil
}
