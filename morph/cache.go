package morph

import (
	"context"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Cache remembers the analyses of forms already looked up. Forms are keyed
// by language and NFC normalization, so precomposed and combining spellings
// of the same Greek word share an entry. Failed lookups are not cached.
type Cache struct {
	next Analyzer

	mu      sync.Mutex
	entries map[string][]Analysis
}

var _ Analyzer = (*Cache)(nil)

func NewCache(next Analyzer) *Cache {
	return &Cache{next: next, entries: map[string][]Analysis{}}
}

func (c *Cache) Analyze(ctx context.Context, form, lang string) ([]Analysis, error) {
	key := lang + "\x00" + norm.NFC.String(form)

	c.mu.Lock()
	a, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return a, nil
	}

	a, err := c.next.Analyze(ctx, form, lang)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = a
	c.mu.Unlock()
	return a, nil
}

// Len returns the number of cached forms.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
