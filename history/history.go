// Package history keeps undo and redo stacks of corpus snapshots.
//
// Every entry is a deep copy: nothing pushed onto a stack shares memory with
// the live corpus, so later edits cannot reach back into the past.
package history

import (
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

type History struct {
	// Limit bounds the number of undo snapshots kept. The oldest is dropped
	// first. Zero keeps everything.
	Limit int

	undo []*tb.Corpus
	redo []*tb.Corpus
}

func New(limit int) *History {
	return &History{Limit: limit}
}

// Save records c as the state to return to on the next Undo. Any redo
// history is discarded.
func (h *History) Save(c *tb.Corpus) {
	h.undo = append(h.undo, c.Clone())
	if h.Limit > 0 && len(h.undo) > h.Limit {
		drop := len(h.undo) - h.Limit
		clear(h.undo[:drop])
		h.undo = h.undo[drop:]
	}
	h.redo = nil
}

// Undo returns the last saved state and pushes cur onto the redo stack. It
// returns false, and cur unchanged, when there is nothing to undo.
func (h *History) Undo(cur *tb.Corpus) (*tb.Corpus, bool) {
	if len(h.undo) == 0 {
		return cur, false
	}
	h.redo = append(h.redo, cur.Clone())
	return pop(&h.undo), true
}

// Redo is the mirror of Undo.
func (h *History) Redo(cur *tb.Corpus) (*tb.Corpus, bool) {
	if len(h.redo) == 0 {
		return cur, false
	}
	h.undo = append(h.undo, cur.Clone())
	return pop(&h.redo), true
}

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

func pop(stack *[]*tb.Corpus) *tb.Corpus {
	s := *stack
	c := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return c
}
