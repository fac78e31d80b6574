package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/config"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/morph"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/render"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage/filesystem"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage/sqlite/zombiezen"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// env is what every command starts from: the configuration with the global
// flags applied, and a logger on the error stream.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	ui     UI
	pool   Pool
}

func setup(c *cli.Context, ui UI) (*env, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if v := c.String("corpus"); v != "" {
		cfg.CorpusPath = v
	}
	if v := c.String("storage"); v != "" {
		cfg.Storage = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if c.Bool("no-color") {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: cfg.Logger(ui.Err), ui: ui}, nil
}

func (e *env) Close() error {
	return e.pool.Close()
}

func (e *env) renderer() *render.Renderer {
	r := render.NewRenderer(e.ui.Out)
	r.HasColor = e.cfg.Color
	return r
}

// NewCorpusRepository opens the repository at path: a directory of XML
// documents, or else a SQLite database. A missing database is created when
// kind is sqlite.
func NewCorpusRepository(p *Pool, path, kind string) (storage.CorpusRepository, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return filesystem.NewStore(path)
	case err != nil && kind != config.StorageSQLite:
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewStore(pool), nil
}

func (e *env) repository() (storage.CorpusRepository, error) {
	return NewCorpusRepository(&e.pool, e.cfg.CorpusPath, e.cfg.Storage)
}

// source is a document given on the command line: an XML file, or the name
// of a document of the repository.
type source struct {
	path string
	name string
	repo storage.CorpusRepository
}

func (e *env) source(arg string) (*source, error) {
	if strings.HasSuffix(arg, filesystem.Ext) || strings.ContainsRune(arg, filepath.Separator) {
		if _, err := os.Stat(arg); err == nil {
			return &source{path: arg}, nil
		}
	}
	repo, err := e.repository()
	if err != nil {
		return nil, err
	}
	return &source{name: arg, repo: repo}, nil
}

func (s *source) String() string {
	if s.path != "" {
		return s.path
	}
	return s.name
}

func (s *source) Read() (*tb.Corpus, error) {
	if s.path != "" {
		return file.ReadCorpus(s.path)
	}
	return s.repo.Read(s.name)
}

func (s *source) Write(c *tb.Corpus) error {
	if s.path != "" {
		return file.WriteCorpus(s.path, c)
	}
	return s.repo.Write(s.name, c)
}

// analyzer returns the cached morphology client, or nil when lookups are
// disabled.
func (e *env) analyzer() morph.Analyzer {
	if e.cfg.Morph.URL == "" {
		return nil
	}
	return morph.NewCache(morph.NewClient(e.cfg.MorphClient(e.logger)))
}
