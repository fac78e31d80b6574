package zombiezen

import (
	"context"
	"fmt"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/file"
	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/storage"
	tb "github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/treebank"
)

// Store keeps documents as serialized XML in a SQLite database, next to a
// lemma index of their words.
type Store struct {
	pool *sqlitex.Pool
}

var _ storage.CorpusRepository = (*Store)(nil)

func NewStore(pool *sqlitex.Pool) *Store {
	return &Store{pool: pool}
}

func (h *Store) Close() error {
	return h.pool.Close()
}

func (h *Store) List() ([]storage.Meta, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var metas []storage.Meta
	err = sqlitex.Execute(conn, "SELECT name, lang, sentences, words FROM documents ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			metas = append(metas, storage.Meta{
				Name:      stmt.ColumnText(0),
				Lang:      stmt.ColumnText(1),
				Sentences: stmt.ColumnInt(2),
				Words:     stmt.ColumnInt(3),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return metas, nil
}

func (h *Store) Read(name string) (*tb.Corpus, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var data string
	found := false
	err = sqlitex.Execute(conn, "SELECT xml FROM documents WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			data = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}

	c, err := file.Load(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Write replaces the named document and its lemma index in one transaction.
func (h *Store) Write(name string, c *tb.Corpus) (err error) {
	if !storage.ValidName(name) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidName, name)
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM word_lemmas WHERE doc_id IN (SELECT id FROM documents WHERE name = ?)", &sqlitex.ExecOptions{
		Args: []interface{}{name},
	})
	if err != nil {
		return fmt.Errorf("failed to clear lemmas: %w", err)
	}
	err = sqlitex.Execute(conn, "DELETE FROM documents WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
	})
	if err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}

	meta := storage.MetaOf(name, c)
	err = sqlitex.Execute(conn, `
		INSERT INTO documents (name, lang, sentences, words, xml, updated)
		VALUES (?, ?, ?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	`, &sqlitex.ExecOptions{
		Args: []interface{}{name, meta.Lang, meta.Sentences, meta.Words, string(file.Build(c))},
	})
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	docID := conn.LastInsertRowID()

	for _, s := range c.Sentences {
		for i := range s.Words {
			w := &s.Words[i]
			lemma, _ := w.Display()
			if lemma == "" {
				continue
			}
			err = sqlitex.Execute(conn, "INSERT INTO word_lemmas (doc_id, lemma, sentence_id, word_id, form, shown) VALUES (?, ?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{docID, storage.LemmaKey(lemma), s.ID, w.ID, w.Form, lemma},
			})
			if err != nil {
				return fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return nil
}

// FindLemma answers from the lemma index.
func (h *Store) FindLemma(lemma string, onHit func(storage.Hit) error) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return sqlitex.Execute(conn, `
		SELECT d.name, l.sentence_id, l.word_id, l.form, l.shown
		FROM word_lemmas l JOIN documents d ON d.id = l.doc_id
		WHERE l.lemma = ?
		ORDER BY d.name, l.rowid
	`, &sqlitex.ExecOptions{
		Args: []interface{}{storage.LemmaKey(lemma)},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			return onHit(storage.Hit{
				Doc:        stmt.ColumnText(0),
				SentenceID: stmt.ColumnText(1),
				WordID:     stmt.ColumnText(2),
				Form:       stmt.ColumnText(3),
				Lemma:      stmt.ColumnText(4),
			})
		},
	})
}
