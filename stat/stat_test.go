package stat

import (
	"testing"

	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

func sentence(id string, words ...tb.Word) tb.Sentence {
	return tb.Sentence{ID: id, Words: words}
}

func word(id, head, rel, tag string) tb.Word {
	w := tb.NewWord(id, "f"+id, "l"+id, tag)
	w.Head = head
	w.Relation = rel
	return w
}

func TestAggregate(t *testing.T) {
	h := NewHandler()
	h.Aggregate(&tb.Corpus{Sentences: []tb.Sentence{
		sentence("1", word("1", "2", "SBJ", "n-s---mn-"), word("2", "0", "PRED", "v3spia---"), word("3", "0", "---", "")),
		sentence("2", word("1", "0", "---", "---------")),
	}})
	h.Aggregate(&tb.Corpus{Sentences: []tb.Sentence{
		sentence("1", word("1", "0", "PRED", "v3spia---")),
	}})

	s := h.Get()
	if s.NumDocs != 2 || s.NumSentences != 3 || s.NumWords != 5 {
		t.Fatalf("counts = %d docs %d sentences %d words", s.NumDocs, s.NumSentences, s.NumWords)
	}
	if s.WordsPerSentenceMean != 1 {
		t.Errorf("mean = %d", s.WordsPerSentenceMean)
	}
	if s.WordsPerSentenceDis[1] != 2 || s.WordsPerSentenceDis[3] != 1 {
		t.Errorf("distribution = %v", s.WordsPerSentenceDis)
	}
	if s.Unlabelled != 2 || s.Unannotated != 2 || s.MultiRoot != 1 {
		t.Errorf("unlabelled %d unannotated %d multi root %d", s.Unlabelled, s.Unannotated, s.MultiRoot)
	}
	if s.Relations["PRED"] != 2 || s.POS["v"] != 2 || s.POS["n"] != 1 {
		t.Errorf("relations %v pos %v", s.Relations, s.POS)
	}
}

func TestEmpty(t *testing.T) {
	if s := NewHandler().Get(); s.WordsPerSentenceMean != 0 || s.NumSentences != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}
