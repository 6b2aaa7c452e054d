// Package storage persists entity URI decisions in a bbolt file so repeated
// conversions reuse earlier lookups instead of calling the remote services
// again. Writes are transactional; a crash mid-write cannot corrupt
// previously committed decisions.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names.
var (
	bucketDecisions = []byte("entity_uris")
	bucketMeta      = []byte("meta")
	keySchema       = []byte("schema")
)

const schemaVersion = "1"

// Decision is a stored resolution: the URI chosen for a normalised entity
// key and when it was chosen.
type Decision struct {
	URI       string    `json:"uri"`
	RunID     string    `json:"run_id,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

// Store is a persistent, never-overwrite map from entity key to Decision.
// It is safe for concurrent use.
type Store struct {
	db     *bolt.DB
	runID  string
	closed atomic.Bool
}

// Open opens (or creates) a decision store at path. runID tags the
// decisions written through this handle.
func Open(path, runID string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketDecisions); err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if v := meta.Get(keySchema); v != nil && string(v) != schemaVersion {
			return fmt.Errorf("unsupported schema version %q", v)
		}
		return meta.Put(keySchema, []byte(schemaVersion))
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init store %s: %w", path, err)
	}

	return &Store{db: db, runID: runID}, nil
}

// Close closes the underlying database. Further calls return ErrClosed.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// Get returns the URI stored for key.
func (s *Store) Get(key string) (string, bool, error) {
	d, ok, err := s.Decision(key)
	return d.URI, ok, err
}

// Decision returns the full stored decision for key.
func (s *Store) Decision(key string) (Decision, bool, error) {
	if s.closed.Load() {
		return Decision{}, false, ErrClosed
	}

	var d Decision
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketDecisions).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &d)
	})
	if err != nil {
		return Decision{}, false, fmt.Errorf("get decision %q: %w", key, err)
	}
	return d, found, nil
}

// PutIfAbsent stores uri for key unless a decision already exists. It
// reports whether the decision was written.
func (s *Store) PutIfAbsent(key, uri string) (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}
	if key == "" {
		return false, ErrEmptyKey
	}

	data, err := json.Marshal(Decision{URI: uri, RunID: s.runID, DecidedAt: time.Now().UTC()})
	if err != nil {
		return false, fmt.Errorf("marshal decision: %w", err)
	}

	var written bool
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDecisions)
		if b.Get([]byte(key)) != nil {
			return nil
		}
		written = true
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return false, fmt.Errorf("put decision %q: %w", key, err)
	}
	return written, nil
}

// All returns every stored key and its URI.
func (s *Store) All() (map[string]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	out := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDecisions).ForEach(func(k, v []byte) error {
			var d Decision
			if err := json.Unmarshal(v, &d); err != nil {
				return fmt.Errorf("decode %q: %w", k, err)
			}
			out[string(k)] = d.URI
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	return out, nil
}

// Len returns the number of stored decisions.
func (s *Store) Len() (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketDecisions).Stats().KeyN
		return nil
	})
	return n, err
}

// IsClosed reports whether err came from a closed store.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
