// Package session holds the state of one editing session: the corpus being
// edited, the sentence in focus, the undo history and the parties that
// re-render after a change.
//
// All access goes through a Session; there is no package level state. A
// Session is safe for concurrent use, edits are applied one at a time.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/edit"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/history"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/morph"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

var ErrNoAnalyzer = errors.New("no morphology analyzer configured")

// Observer is called after every change, outside the session lock.
type Observer func(edit.Change)

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithHistoryLimit bounds the number of undo steps kept.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.history.Limit = n }
}

// WithAnalyzer enables morphology lookups. Forms found are attributed to
// source and looked up in lang.
func WithAnalyzer(a morph.Analyzer, source, lang string) Option {
	return func(s *Session) {
		s.analyzer = a
		s.source = source
		s.lang = lang
	}
}

// WithObserver subscribes o from the start.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

type Session struct {
	mu sync.Mutex

	corpus  *tb.Corpus
	active  int
	history *history.History

	// xml caches the serialization of corpus until the next change. saved
	// is the serialization last loaded or saved.
	xml   []byte
	saved []byte

	observers []Observer

	analyzer morph.Analyzer
	source   string
	lang     string

	logger *slog.Logger
}

// New starts a session on c. The session works on its own copy of c.
func New(c *tb.Corpus, opts ...Option) (*Session, error) {
	s := &Session{
		history: history.New(0),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	if err := s.Load(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the corpus. The history is cleared: undo never crosses
// documents. A corpus that fails validation leaves the session untouched.
func (s *Session) Load(c *tb.Corpus) error {
	if err := tb.Validate(c); err != nil {
		return err
	}

	s.mu.Lock()
	s.corpus = c.Clone()
	s.active = 0
	s.history.Clear()
	s.xml = file.Build(s.corpus)
	s.saved = s.xml
	obs := s.observersLocked()
	s.mu.Unlock()

	s.logger.Debug("session: loaded", "sentences", c.Len(), "words", c.NumWords())
	notify(obs, edit.Change{Kind: edit.Loaded})
	return nil
}

// Subscribe adds an observer.
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Corpus returns a copy of the corpus.
func (s *Session) Corpus() *tb.Corpus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.corpus.Clone()
}

// Len returns the number of sentences.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.corpus.Len()
}

// Sentence returns a copy of the sentence with the given id.
func (s *Session) Sentence(id string) (tb.Sentence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.corpus.Sentence(id)
	if err != nil {
		return tb.Sentence{}, err
	}
	return st.Clone(), nil
}

// Position returns the position of sentence id, or -1.
func (s *Session) Position(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.corpus.Index(id)
}

// Current returns a copy of the sentence in focus and its position. It
// returns false for an empty corpus.
func (s *Session) Current() (tb.Sentence, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.corpus.Len() == 0 {
		return tb.Sentence{}, 0, false
	}
	return s.corpus.Sentences[s.active].Clone(), s.active, true
}

// Select moves the focus to the sentence at position i.
func (s *Session) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= s.corpus.Len() {
		return &tb.PreconditionError{Op: "select", Err: tb.ErrSentenceNotFound, Detail: fmt.Sprintf("position %d of %d", i+1, s.corpus.Len())}
	}
	s.active = i
	return nil
}

// Next moves the focus one sentence forward and reports whether it moved.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active+1 >= s.corpus.Len() {
		return false
	}
	s.active++
	return true
}

func (s *Session) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == 0 {
		return false
	}
	s.active--
	return true
}

// XML returns the serialized corpus. The bytes are cached until the next
// change and must not be modified.
func (s *Session) XML() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.xmlLocked()
}

func (s *Session) xmlLocked() []byte {
	if s.xml == nil {
		s.xml = file.Build(s.corpus)
	}
	return s.xml
}

// Dirty reports whether saving would write something other than what was
// last loaded or marked saved. Undoing back to that state makes the session
// clean again.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !bytes.Equal(s.xmlLocked(), s.saved)
}

func (s *Session) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = s.xmlLocked()
}

// CanUndo and CanRedo report the state of the history.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

func (s *Session) observersLocked() []Observer {
	if len(s.observers) == 0 {
		return nil
	}
	out := make([]Observer, len(s.observers))
	copy(out, s.observers)
	return out
}

func notify(obs []Observer, ch edit.Change) {
	for _, o := range obs {
		o(ch)
	}
}

// clampLocked keeps the focus inside the corpus after sentences went away.
func (s *Session) clampLocked() {
	if s.active >= s.corpus.Len() {
		s.active = s.corpus.Len() - 1
	}
	if s.active < 0 {
		s.active = 0
	}
}
