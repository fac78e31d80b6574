package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/edit"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/postag"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/render"
)

const maxEditBytes = 1 << 20

type HeadRequest struct {
	Word string `json:"word"`
	Head string `json:"head"`
}

type RelationRequest struct {
	Word     string `json:"word"`
	Relation string `json:"relation"`
}

type SplitRequest struct {
	// After is the number of words that stay in the sentence.
	After int `json:"after"`
}

type MergeRequest struct {
	// With is the sentence appended. Empty means the next one.
	With string `json:"with,omitempty"`
}

type FormRequest struct {
	Lemma  string            `json:"lemma"`
	Fields map[string]string `json:"fields"`
}

type ActivateRequest struct {
	// Index -1 selects the document form.
	Index int `json:"index"`
}

// EditResponse is returned by every edit: what changed and the sentence
// that holds the result.
type EditResponse struct {
	Change   edit.Change          `json:"change"`
	Sentence *render.SentenceView `json:"sentence,omitempty"`
	Document Summary              `json:"document"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxEditBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}

func sentenceID(r *http.Request) string { return chi.URLParam(r, "sentenceID") }
func wordID(r *http.Request) string     { return chi.URLParam(r, "wordID") }

func (s *Server) getSentence(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	st, err := d.sess.Sentence(sentenceID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, render.View(&st, d.sess.Position(st.ID)))
}

// edited writes the response of a successful edit.
func (s *Server) edited(w http.ResponseWriter, r *http.Request, d *document, ch edit.Change, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := EditResponse{Change: ch, Document: summary(docID(r), d)}
	if st, err := d.sess.Sentence(ch.SentenceID); err == nil {
		v := render.View(&st, d.sess.Position(st.ID))
		resp.Sentence = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) reassignHead(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	var req HeadRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ch, err := d.sess.ReassignHead(sentenceID(r), req.Word, req.Head)
	s.edited(w, r, d, ch, err)
}

func (s *Server) setRelation(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	var req RelationRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ch, err := d.sess.SetRelation(sentenceID(r), req.Word, req.Relation)
	s.edited(w, r, d, ch, err)
}

func (s *Server) split(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	var req SplitRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ch, err := d.sess.Split(sentenceID(r), req.After)
	s.edited(w, r, d, ch, err)
}

func (s *Server) merge(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	var req MergeRequest
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	var ch edit.Change
	var err error
	if req.With == "" {
		ch, err = d.sess.MergeNext(sentenceID(r))
	} else {
		ch, err = d.sess.Merge(sentenceID(r), req.With)
	}
	s.edited(w, r, d, ch, err)
}

func (s *Server) createForm(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	var req FormRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	fields, err := postag.FromMap(req.Fields)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	ch, err := d.sess.CreateForm(sentenceID(r), wordID(r), req.Lemma, fields)
	s.edited(w, r, d, ch, err)
}

func (s *Server) activateForm(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	var req ActivateRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ch, err := d.sess.ActivateForm(sentenceID(r), wordID(r), req.Index)
	s.edited(w, r, d, ch, err)
}

func (s *Server) deleteForm(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "form index is not a number")
		return
	}
	ch, err := d.sess.DeleteForm(sentenceID(r), wordID(r), i)
	s.edited(w, r, d, ch, err)
}

// lookup asks the morphology service for the forms of a word. The response
// Count is the number of forms added.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	n, err := d.sess.LookupForms(r.Context(), sentenceID(r), wordID(r))
	ch := edit.Change{Kind: edit.SuggestionsMerged, SentenceID: sentenceID(r), WordID: wordID(r), Count: n}
	s.edited(w, r, d, ch, err)
}
