// Package api serves editing sessions over HTTP as JSON, for a browser
// front-end.
package api

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/morph"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/session"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

var errNoDocument = errors.New("document not found")

type Config struct {
	Logger *slog.Logger

	// MaxDocumentBytes bounds uploaded documents. Zero means 20MB.
	MaxDocumentBytes int64

	HistoryLimit int

	// Analyzer enables word lookups. Source and Lang are passed to the
	// sessions with it.
	Analyzer morph.Analyzer
	Source   string
	Lang     string

	// Repo enables opening and saving stored documents. Optional.
	Repo storage.CorpusRepository
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.MaxDocumentBytes <= 0 {
		c.MaxDocumentBytes = 20 << 20
	}
}

// document is an open session. name is the repository name it was opened
// from, if any.
type document struct {
	sess *session.Session
	name string
}

type Server struct {
	cfg Config

	mu   sync.RWMutex
	docs map[string]*document
}

func New(cfg Config) *Server {
	cfg.defaults()
	return &Server{cfg: cfg, docs: map[string]*document{}}
}

// Handler returns the router of the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/search", s.search)

	r.Route("/documents", func(r chi.Router) {
		r.Post("/", s.createDocument)
		r.Route("/{docID}", func(r chi.Router) {
			r.Get("/", s.getDocument)
			r.Put("/", s.reloadDocument)
			r.Delete("/", s.closeDocument)
			r.Get("/xml", s.getXML)
			r.Post("/save", s.saveDocument)
			r.Post("/undo", s.undo)
			r.Post("/redo", s.redo)

			r.Route("/sentences/{sentenceID}", func(r chi.Router) {
				r.Get("/", s.getSentence)
				r.Post("/head", s.reassignHead)
				r.Post("/relation", s.setRelation)
				r.Post("/split", s.split)
				r.Post("/merge", s.merge)

				r.Route("/words/{wordID}", func(r chi.Router) {
					r.Post("/forms", s.createForm)
					r.Post("/forms/active", s.activateForm)
					r.Delete("/forms/{index}", s.deleteForm)
					r.Post("/lookup", s.lookup)
				})
			})
		})
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) open(c *tb.Corpus, name string) (string, *document, error) {
	opts := []session.Option{
		session.WithLogger(s.cfg.Logger),
		session.WithHistoryLimit(s.cfg.HistoryLimit),
	}
	if s.cfg.Analyzer != nil {
		opts = append(opts, session.WithAnalyzer(s.cfg.Analyzer, s.cfg.Source, s.cfg.Lang))
	}
	sess, err := session.New(c, opts...)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	d := &document{sess: sess, name: name}
	s.mu.Lock()
	s.docs[id] = d
	s.mu.Unlock()

	s.cfg.Logger.Info("api: document opened", "id", id, "name", name, "sentences", c.Len())
	return id, d, nil
}

// document returns the session of the {docID} path parameter, writing a 404
// when there is none.
func (s *Server) document(w http.ResponseWriter, r *http.Request) (*document, bool) {
	s.mu.RLock()
	d, ok := s.docs[docID(r)]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, errNoDocument.Error())
	}
	return d, ok
}

func docID(r *http.Request) string {
	return chi.URLParam(r, "docID")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// fail writes err with the status of its kind.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("api: request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	writeError(w, status, err.Error())
}

func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	var syntax *xml.SyntaxError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &syntax), errors.Is(err, file.ErrNoRoot):
		return http.StatusBadRequest
	case errors.Is(err, tb.ErrStructural):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tb.ErrSentenceNotFound), errors.Is(err, tb.ErrWordNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tb.ErrPrecondition):
		return http.StatusConflict
	case errors.Is(err, storage.ErrInvalidName), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoAnalyzer):
		return http.StatusNotImplemented
	case errors.Is(err, morph.ErrTransient):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
