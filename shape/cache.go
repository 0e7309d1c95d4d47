package shape

import (
	"errors"

	"github.com/wudi/layoutkit/fixedpage"
)

// Opener opens a fixed-page package by path. It exists so tests can
// substitute a double for the real decoder.
type Opener func(path string) (*fixedpage.Document, error)

// DocumentCache amortizes the cost of opening fixed-page packages across
// repeated references within one rendering pass. Parsing a package
// (container plus structured content) is expensive; caching by resolved path
// avoids re-parsing when the same source is referenced from several places
// in the host document.
//
// The cache is scoped to a single rendering pass and is not safe for
// concurrent use. Close must be called when the pass ends; it closes every
// cached handle exactly once.
type DocumentCache struct {
	open    Opener
	entries map[string]*fixedpage.Document
	opens   int
	hits    int
	closed  bool
}

// NewDocumentCache creates an empty cache. A nil opener means
// fixedpage.Open.
func NewDocumentCache(open Opener) *DocumentCache {
	if open == nil {
		open = fixedpage.Open
	}
	return &DocumentCache{
		open:    open,
		entries: make(map[string]*fixedpage.Document),
	}
}

// GetOrOpen returns the cached document for path, opening it on a miss.
func (c *DocumentCache) GetOrOpen(path string) (*fixedpage.Document, error) {
	if c.closed {
		return nil, errors.New("shape: document cache is closed")
	}
	if doc, ok := c.entries[path]; ok {
		c.hits++
		return doc, nil
	}
	doc, err := c.open(path)
	if err != nil {
		return nil, err
	}
	c.opens++
	c.entries[path] = doc
	return doc, nil
}

// Stats returns the number of package opens and cache hits so far.
func (c *DocumentCache) Stats() (opens, hits int) { return c.opens, c.hits }

// Close closes every cached handle and empties the cache. It returns the
// first close error encountered, after attempting to close all entries.
func (c *DocumentCache) Close() error {
	var first error
	for _, doc := range c.entries {
		if err := doc.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.entries = nil
	c.closed = true
	return first
}
