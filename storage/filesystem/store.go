package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

const Ext = ".xml"

// Store keeps every document as an XML file in a directory. The document
// name is the file name without extension.
type Store struct {
	dir string

	mu sync.Mutex
	// In-memory cache, filled by Preload and Read
	docs map[string]*tb.Corpus
}

var _ storage.CorpusRepository = (*Store)(nil)
var _ storage.Preloader = (*Store)(nil)

// NewStore creates a filesystem store on an existing directory.
func NewStore(dir string) (*Store, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}
	return &Store{dir: dir, docs: map[string]*tb.Corpus{}}, nil
}

func (s *Store) names() ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(f.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Preload parses every document into memory.
// The callback is called before each file is loaded.
func (s *Store) Preload(cb func(current, total int, name string)) error {
	names, err := s.names()
	if err != nil {
		return err
	}

	total := len(names)
	for i, name := range names {
		if cb != nil {
			cb(i+1, total, name)
		}
		if _, err := s.Read(name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]storage.Meta, error) {
	names, err := s.names()
	if err != nil {
		return nil, err
	}

	metas := make([]storage.Meta, 0, len(names))
	for _, name := range names {
		c, err := s.Read(name)
		if err != nil {
			return nil, err
		}
		metas = append(metas, storage.MetaOf(name, c))
	}
	return metas, nil
}

// Read returns a copy of the named document.
func (s *Store) Read(name string) (*tb.Corpus, error) {
	if !storage.ValidName(name) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidName, name)
	}

	s.mu.Lock()
	c, ok := s.docs[name]
	s.mu.Unlock()
	if ok {
		return c.Clone(), nil
	}

	c, err := file.ReadCorpus(s.path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	s.mu.Lock()
	s.docs[name] = c
	s.mu.Unlock()
	return c.Clone(), nil
}

// Write replaces the file of the named document. The new content is
// written next to it first and renamed over it.
func (s *Store) Write(name string, c *tb.Corpus) error {
	if !storage.ValidName(name) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidName, name)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := file.Write(tmp, c); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return err
	}

	s.mu.Lock()
	s.docs[name] = c.Clone()
	s.mu.Unlock()
	return nil
}

// FindLemma scans every document.
func (s *Store) FindLemma(lemma string, onHit func(storage.Hit) error) error {
	names, err := s.names()
	if err != nil {
		return err
	}

	key := storage.LemmaKey(lemma)
	for _, name := range names {
		c, err := s.Read(name)
		if err != nil {
			return err
		}
		if err := storage.Hits(name, c, key, onHit); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+Ext)
}
