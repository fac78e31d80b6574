package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/search"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

var (
	errBadRequest = errors.New("bad request")
	errNoRepo     = fmt.Errorf("%w: no document repository", errBadRequest)
)

// Summary describes an open document.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Sentences int    `json:"sentences"`
	Position  int    `json:"position"`
	Dirty     bool   `json:"dirty"`
	CanUndo   bool   `json:"can_undo"`
	CanRedo   bool   `json:"can_redo"`
}

func summary(id string, d *document) Summary {
	_, pos, _ := d.sess.Current()
	return Summary{
		ID:        id,
		Name:      d.name,
		Sentences: d.sess.Len(),
		Position:  pos,
		Dirty:     d.sess.Dirty(),
		CanUndo:   d.sess.CanUndo(),
		CanRedo:   d.sess.CanRedo(),
	}
}

// readCorpus loads the XML document of the request body.
func (s *Server) readCorpus(w http.ResponseWriter, r *http.Request) (*tb.Corpus, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes)
	defer body.Close()
	return file.Load(body)
}

// createDocument opens a session on the XML body, or on the stored document
// named by the "name" query parameter.
func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	var c *tb.Corpus
	var err error

	name := r.URL.Query().Get("name")
	if name != "" {
		if s.cfg.Repo == nil {
			s.fail(w, r, errNoRepo)
			return
		}
		c, err = s.cfg.Repo.Read(name)
	} else {
		c, err = s.readCorpus(w, r)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	id, d, err := s.open(c, name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, summary(id, d))
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary(docID(r), d))
}

// reloadDocument replaces the corpus of a session with the XML body. The
// history is cleared.
func (s *Server) reloadDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	c, err := s.readCorpus(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := d.sess.Load(c); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary(docID(r), d))
}

func (s *Server) closeDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.document(w, r); !ok {
		return
	}
	s.mu.Lock()
	delete(s.docs, docID(r))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getXML(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(d.sess.XML())
}

// saveDocument writes the corpus to the repository, under the name it was
// opened from or the "name" query parameter.
func (s *Server) saveDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	if s.cfg.Repo == nil {
		s.fail(w, r, errNoRepo)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = d.name
	}
	if name == "" {
		s.fail(w, r, fmt.Errorf("%w: name is required", errBadRequest))
		return
	}
	if err := s.cfg.Repo.Write(name, d.sess.Corpus()); err != nil {
		s.fail(w, r, err)
		return
	}
	d.sess.MarkSaved()
	writeJSON(w, http.StatusOK, summary(docID(r), d))
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	s.travel(w, r, true)
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	s.travel(w, r, false)
}

func (s *Server) travel(w http.ResponseWriter, r *http.Request, back bool) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	moved := d.sess.Redo
	if back {
		moved = d.sess.Undo
	}
	if !moved() {
		writeError(w, http.StatusConflict, "nothing to do")
		return
	}
	writeJSON(w, http.StatusOK, summary(docID(r), d))
}

// search finds the words of the "lemma" query parameter in the repository,
// or in the document named by "doc".
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Repo == nil {
		s.fail(w, r, errNoRepo)
		return
	}
	lemma := r.URL.Query().Get("lemma")
	if lemma == "" {
		writeError(w, http.StatusBadRequest, "lemma is required")
		return
	}

	srch := search.New(s.cfg.Repo)
	if doc := r.URL.Query().Get("doc"); doc != "" {
		srch.WithDoc(doc)
	}
	matches := []search.Match{}
	err := srch.Lemma(lemma, func(m search.Match) error {
		matches = append(matches, m)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
