package edit

import (
	"fmt"
	"strconv"

	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// Merge appends the words of targetID to sourceID and removes targetID from
// the corpus. Both sentences are first given the word ids 1..n. Appended
// words get the ids offset+1.. where offset is the word count of the source;
// their non-zero heads are shifted by the same offset, root heads stay at the
// root. Sentences are renumbered afterwards.
func Merge(c *tb.Corpus, sourceID, targetID string) (Change, error) {
	ch := Change{Kind: NoOp, SentenceID: sourceID}

	if sourceID == targetID {
		return ch, &tb.PreconditionError{Op: "merge", Err: tb.ErrSameSentence, Detail: "sentence " + sourceID}
	}
	si := c.Index(sourceID)
	if si < 0 {
		return ch, &tb.PreconditionError{Op: "merge", Err: tb.ErrSentenceNotFound, Detail: "sentence " + sourceID}
	}
	ti := c.Index(targetID)
	if ti < 0 {
		return ch, &tb.PreconditionError{Op: "merge", Err: tb.ErrSentenceNotFound, Detail: "sentence " + targetID}
	}
	if len(c.Sentences[ti].Words) == 0 {
		return ch, &tb.PreconditionError{Op: "merge", Err: tb.ErrEmptyMergeTarget, Detail: "sentence " + targetID}
	}

	c.Sentences[si] = positional(c.Sentences[si])
	source := &c.Sentences[si]
	target := positional(c.Sentences[ti])
	offset := len(source.Words)

	target.RenumberWords(offset, func(head string) string {
		n, err := strconv.Atoi(head)
		if err != nil || n == 0 {
			return tb.RootID
		}
		return strconv.Itoa(n + offset)
	})
	source.Words = append(source.Words, target.Words...)

	c.Remove(ti)
	if ti < si {
		si--
	}

	return Change{Kind: Merged, SentenceID: c.Sentences[si].ID}, nil
}

// Split cuts sentenceID after its k-th word (1-based, 1 <= k < words). The
// first k words stay in place and the rest become a new sentence right after
// it. Both parts are renumbered from 1, and a head that pointed across the
// cut is attached to the root. Sentences are renumbered afterwards.
func Split(c *tb.Corpus, sentenceID string, k int) (Change, error) {
	ch := Change{Kind: NoOp, SentenceID: sentenceID}

	i := c.Index(sentenceID)
	if i < 0 {
		return ch, &tb.PreconditionError{Op: "split", Err: tb.ErrSentenceNotFound, Detail: "sentence " + sentenceID}
	}
	n := len(c.Sentences[i].Words)
	if n < 2 || k < 1 || k >= n {
		return ch, &tb.PreconditionError{
			Op:     "split",
			Err:    tb.ErrInvalidSplitPoint,
			Detail: fmt.Sprintf("cut after word %d of %d", k, n),
		}
	}

	whole := positional(c.Sentences[i])

	first := tb.Sentence{ID: whole.ID, Attrs: whole.Attrs, Words: whole.Words[:k:k]}
	first.RenumberWords(0, func(head string) string {
		if h, err := strconv.Atoi(head); err == nil && h > k {
			return tb.RootID
		}
		return head
	})

	second := tb.Sentence{Attrs: cloneAttrs(whole.Attrs), Words: whole.Words[k:]}
	second.RenumberWords(0, func(head string) string {
		h, err := strconv.Atoi(head)
		if err != nil || h <= k {
			return tb.RootID
		}
		return strconv.Itoa(h - k)
	})

	c.Sentences[i] = first
	c.Insert(i+1, second)

	return Change{Kind: SplitApart, SentenceID: c.Sentences[i].ID}, nil
}

// positional returns a copy of s whose word ids are 1..n in order, with
// heads rewritten to match. Heads naming no word go to the root.
func positional(s tb.Sentence) tb.Sentence {
	out := s.Clone()
	ids := make(map[string]string, len(out.Words))
	for i, w := range out.Words {
		ids[w.ID] = strconv.Itoa(i + 1)
	}
	out.RenumberWords(0, func(head string) string {
		if head == tb.RootID || head == "" {
			return tb.RootID
		}
		if id, ok := ids[head]; ok {
			return id
		}
		return tb.RootID
	})
	return out
}

func cloneAttrs(attrs []tb.Attr) []tb.Attr {
	if attrs == nil {
		return nil
	}
	out := make([]tb.Attr, len(attrs))
	copy(out, attrs)
	return out
}
