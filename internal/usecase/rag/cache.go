package rag

import "github.com/kailas-cloud/homechef/internal/domain/document"

// Cache remembers the last ingested document of one session, keyed by name.
// Storing a result under a new name evicts the previous one. Not safe for
// concurrent use; the owning session serializes access.
type Cache struct {
	entry *document.Ingested
}

// Get returns the cached result for name.
func (c *Cache) Get(name string) (document.Ingested, bool) {
	if c == nil || c.entry == nil || c.entry.Name() != name {
		return document.Ingested{}, false
	}
	return *c.entry, true
}

// Put replaces whatever was cached.
func (c *Cache) Put(r document.Ingested) {
	c.entry = &r
}

// Clear drops the cached result.
func (c *Cache) Clear() {
	c.entry = nil
}
