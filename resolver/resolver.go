package resolver

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/c360studio/semlink/lookup"
	"github.com/c360studio/semlink/similarity"
)

// DefaultLimit is the number of candidates requested from each source.
const DefaultLimit = 5

// ErrBlankEntity is returned when asked to resolve text with no content.
// Callers are expected to filter missing values first.
var ErrBlankEntity = errors.New("blank entity")

// CandidateSource yields external candidates for a query, in priority order.
// lookup.Sources implements it.
type CandidateSource interface {
	SearchAll(ctx context.Context, query string, limit int, categoryFilter string) iter.Seq[lookup.KGEntity]
}

// Store persists decisions across runs. storage.Store implements it.
type Store interface {
	Get(key string) (string, bool, error)
	PutIfAbsent(key, uri string) (bool, error)
}

// Stats counts resolver activity since construction.
type Stats struct {
	Hits     int64
	Misses   int64
	Restored int64
	External int64
	Local    int64
}

// Resolver decides and memoises the URI of each distinct entity string.
type Resolver struct {
	namespace string
	dict      *Dictionary
	classes   *Dictionary
	sources   CandidateSource
	scorer    similarity.Scorer
	store     Store
	limit     int
	logger    *slog.Logger
	metrics   *Metrics

	hits, misses, restored, external, local atomic.Int64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup sets the external candidate source. Without one every entity
// resolves locally regardless of policy.
func WithLookup(src CandidateSource) Option {
	return func(r *Resolver) {
		r.sources = src
	}
}

// WithScorer sets the similarity scorer. Defaults to Jaro-Winkler.
func WithScorer(s similarity.Scorer) Option {
	return func(r *Resolver) {
		r.scorer = s
	}
}

// WithStore reads through to and writes decisions into a persistent store.
func WithStore(s Store) Option {
	return func(r *Resolver) {
		r.store = s
	}
}

// WithLimit sets the per-source candidate limit.
func WithLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithMetrics records cache results and decisions.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithDictionary shares an existing dictionary.
func WithDictionary(d *Dictionary) Option {
	return func(r *Resolver) {
		r.dict = d
	}
}

// New creates a resolver minting local URIs under namespace.
func New(namespace string, opts ...Option) *Resolver {
	r := &Resolver{
		namespace: namespace,
		dict:      NewDictionary(),
		classes:   NewDictionary(),
		scorer:    similarity.NewJaroWinkler(),
		limit:     DefaultLimit,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Namespace returns the namespace local URIs are minted under.
func (r *Resolver) Namespace() string {
	return r.namespace
}

// Dictionary returns the resolver's decision cache.
func (r *Resolver) Dictionary() *Dictionary {
	return r.dict
}

// LocalURI returns the URI entity would receive in the local namespace.
func (r *Resolver) LocalURI(entity string) string {
	return r.namespace + Slug(entity)
}

// IsLocal reports whether uri was minted in the local namespace.
func (r *Resolver) IsLocal(uri string) bool {
	return strings.HasPrefix(uri, r.namespace)
}

// Lookup returns the decision already recorded for entity, without
// resolving it.
func (r *Resolver) Lookup(entity string) (string, bool) {
	return r.dict.Get(NormalizeKey(entity))
}

// Resolve returns the canonical URI for entity under policy. The first
// decision for an entity (case-insensitively) is final: later calls return
// it without consulting lookup sources, whatever their policy.
//
// Lookup failures never surface here; they leave the entity with its local
// URI. The only errors are a blank entity and persistent store failures.
//
// The persistent store only holds outcomes of external lookups and is only
// consulted under an external policy, so an offline run neither records nor
// replays decisions. Stored keys are scoped by namespace.
func (r *Resolver) Resolve(ctx context.Context, entity string, policy Policy) (string, error) {
	if strings.TrimSpace(entity) == "" {
		return "", ErrBlankEntity
	}

	key := NormalizeKey(entity)
	if uri, ok := r.dict.Get(key); ok {
		r.hits.Add(1)
		r.metrics.lookup("hit")
		return uri, nil
	}

	consult := policy.EnableExternal && r.sources != nil
	if consult && r.store != nil {
		uri, ok, err := r.store.Get(r.storeKey(key))
		if err != nil {
			return "", fmt.Errorf("read stored decision for %q: %w", entity, err)
		}
		if ok {
			uri, _ = r.dict.Insert(key, uri)
			r.restored.Add(1)
			r.metrics.lookup("store")
			return uri, nil
		}
	}

	r.misses.Add(1)
	r.metrics.lookup("miss")

	uri := r.LocalURI(entity)
	if consult {
		if best, score, ok := r.best(ctx, entity, policy.CategoryFilter); ok && score >= policy.Threshold {
			uri = best.ID
			r.logger.Debug("Adopted external URI",
				"entity", entity,
				"uri", uri,
				"source", best.Source,
				"label", best.Label,
				"score", score,
				"threshold", policy.Threshold)
		} else if ok {
			r.logger.Debug("Best candidate below threshold",
				"entity", entity,
				"candidate", best.ID,
				"score", score,
				"threshold", policy.Threshold)
		}
	}

	uri, stored := r.dict.Insert(key, uri)
	if stored {
		if r.IsLocal(uri) {
			r.local.Add(1)
			r.metrics.decision("local")
		} else {
			r.external.Add(1)
			r.metrics.decision("external")
		}
		if consult && r.store != nil {
			if _, err := r.store.PutIfAbsent(r.storeKey(key), uri); err != nil {
				return "", fmt.Errorf("store decision for %q: %w", entity, err)
			}
		}
	}
	return uri, nil
}

// ResolveClass returns the local URI of a schema class name. Classes are
// kept apart from data entities, so a class and a data value spelled alike
// never share a decision.
func (r *Resolver) ResolveClass(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrBlankEntity
	}
	uri, _ := r.classes.Insert(NormalizeKey(name), r.LocalURI(name))
	return uri, nil
}

// best returns the highest-scoring candidate. ok is false when there were
// no candidates or the top scorer has an empty identifier. Ties keep the
// first candidate seen, so earlier sources win.
func (r *Resolver) best(ctx context.Context, query, categoryFilter string) (lookup.KGEntity, float64, bool) {
	var best lookup.KGEntity
	score := -1.0
	for cand := range r.sources.SearchAll(ctx, query, r.limit, categoryFilter) {
		s := r.scorer.Score(query, cand.Label)
		if s > score {
			best, score = cand, s
		}
	}
	if best.ID == "" {
		return best, score, false
	}
	return best, score, true
}

// storeKey prefixes key with the namespace so decisions made under another
// namespace are never restored.
func (r *Resolver) storeKey(key string) string {
	return r.namespace + "\t" + key
}

// Stats returns a snapshot of the activity counters.
func (r *Resolver) Stats() Stats {
	return Stats{
		Hits:     r.hits.Load(),
		Misses:   r.misses.Load(),
		Restored: r.restored.Load(),
		External: r.external.Load(),
		Local:    r.local.Load(),
	}
}
