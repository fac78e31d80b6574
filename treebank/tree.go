package treebank

// WouldCreateCycle reports whether making candidateHeadID the head of
// dependentID closes a cycle. It follows the head chain upwards from the
// candidate until it reaches the root, a missing parent, or the dependent.
func WouldCreateCycle(words []Word, dependentID, candidateHeadID string) bool {
	if dependentID == candidateHeadID {
		return true
	}

	heads := make(map[string]string, len(words))
	for _, w := range words {
		heads[w.ID] = w.Head
	}

	cur := candidateHeadID
	// a walk longer than the sentence is already going around in circles
	for steps := 0; steps <= len(words); steps++ {
		if cur == RootID || cur == "" {
			return false
		}
		if cur == dependentID {
			return true
		}
		next, ok := heads[cur]
		if !ok {
			return false
		}
		cur = next
	}
	return true
}

// ValidHead reports whether head is the root or the id of a word of s.
func ValidHead(s *Sentence, head string) bool {
	if head == RootID || head == "" {
		return true
	}
	return s.Index(head) >= 0
}

// CheckTree verifies that every word of s reaches the synthetic root in at
// most len(s.Words) steps without visiting a word twice.
func CheckTree(s *Sentence) error {
	heads := make(map[string]string, len(s.Words))
	for _, w := range s.Words {
		heads[w.ID] = w.Head
	}

	// words already known to reach the root
	rooted := make(map[string]bool, len(s.Words))

	for _, w := range s.Words {
		path := map[string]bool{}
		cur := w.ID
		for {
			if cur == RootID || cur == "" || rooted[cur] {
				break
			}
			if path[cur] {
				return &ValidationError{SentenceID: s.ID, WordID: w.ID, Err: ErrCycle}
			}
			path[cur] = true

			next, ok := heads[cur]
			if !ok {
				return &ValidationError{SentenceID: s.ID, WordID: cur, Err: ErrHeadOutOfRange, Detail: "head " + cur}
			}
			cur = next
		}
		for id := range path {
			rooted[id] = true
		}
	}
	return nil
}

// CheckCorpus runs CheckTree on every sentence.
func CheckCorpus(c *Corpus) error {
	for i := range c.Sentences {
		if err := CheckTree(&c.Sentences[i]); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the ids of the words whose head is id, in sentence order.
func Children(s *Sentence, id string) []string {
	var out []string
	for _, w := range s.Words {
		if w.Head == id || (id == RootID && w.Head == "") {
			out = append(out, w.ID)
		}
	}
	return out
}
