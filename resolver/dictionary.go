package resolver

import (
	"maps"
	"sync"
)

// Dictionary maps normalised entity keys to resolved URIs. Entries are
// never overwritten or evicted. It is safe for concurrent use.
type Dictionary struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string]string)}
}

// Get returns the URI recorded for key.
func (d *Dictionary) Get(key string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	uri, ok := d.entries[key]
	return uri, ok
}

// Insert records uri for key unless key is already present. It returns the
// URI now associated with key and whether this call stored it.
func (d *Dictionary) Insert(key, uri string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.entries[key]; ok {
		return existing, false
	}
	d.entries[key] = uri
	return uri, true
}

// Len returns the number of recorded decisions.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Snapshot returns a copy of every recorded decision.
func (d *Dictionary) Snapshot() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.entries)
}
