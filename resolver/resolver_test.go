package resolver

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/c360studio/semlink/lookup"
	"github.com/c360studio/semlink/similarity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://example.org/restaurants#"

// fakeSources serves fixed candidates per source and counts queries.
type fakeSources struct {
	mu         sync.Mutex
	candidates []lookup.KGEntity
	calls      atomic.Int32
	filters    []string
}

func (f *fakeSources) SearchAll(_ context.Context, _ string, _ int, filter string) iter.Seq[lookup.KGEntity] {
	f.calls.Add(1)
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	return func(yield func(lookup.KGEntity) bool) {
		for _, c := range f.candidates {
			if !yield(c) {
				return
			}
		}
	}
}

// labelScorer returns a fixed score per candidate label.
func labelScorer(scores map[string]float64) similarity.Scorer {
	return similarity.ScorerFunc(func(_, label string) float64 {
		return scores[label]
	})
}

func TestResolve_Idempotent(t *testing.T) {
	src := &fakeSources{candidates: []lookup.KGEntity{
		{ID: "http://dbpedia.org/resource/Paris", Label: "Paris", Source: lookup.SourceDBpedia},
	}}
	r := New(ns, WithLookup(src))

	first, err := r.Resolve(context.Background(), "Paris", External(0.4, ""))
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "PARIS", External(0.4, ""))
	require.NoError(t, err)
	third, err := r.Resolve(context.Background(), "paris", Local())
	require.NoError(t, err)

	assert.Equal(t, "http://dbpedia.org/resource/Paris", first)
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Equal(t, int32(1), src.calls.Load(), "at most one external lookup per distinct entity")

	stats := r.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.External)
}

func TestResolve_ExternalDisabledIsLocalSlug(t *testing.T) {
	src := &fakeSources{candidates: []lookup.KGEntity{{ID: "http://dbpedia.org/resource/X", Label: "X"}}}
	r := New(ns, WithLookup(src))

	for _, entity := range []string{"Burgers & Cupcakes", "New York", "Côte d'Azur", "X"} {
		uri, err := r.Resolve(context.Background(), entity, Local())
		require.NoError(t, err)
		assert.Equal(t, ns+Slug(entity), uri)
		assert.True(t, r.IsLocal(uri))
	}
	assert.Zero(t, src.calls.Load())
}

func TestResolve_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"equal to threshold adopts external", 0.8, "http://dbpedia.org/resource/Texas"},
		{"just below threshold stays local", 0.7999999, ns + "Texas"},
		{"above threshold adopts external", 0.95, "http://dbpedia.org/resource/Texas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSources{candidates: []lookup.KGEntity{
				{ID: "http://dbpedia.org/resource/Texas", Label: "Texas (U.S. state)"},
			}}
			r := New(ns, WithLookup(src), WithScorer(labelScorer(map[string]float64{
				"Texas (U.S. state)": tt.score,
			})))

			uri, err := r.Resolve(context.Background(), "Texas", External(0.8, ""))
			require.NoError(t, err)
			assert.Equal(t, tt.want, uri)
		})
	}
}

func TestResolve_TieFavoursFirstSource(t *testing.T) {
	src := &fakeSources{candidates: []lookup.KGEntity{
		{ID: "http://dbpedia.org/resource/Rome", Label: "Rome", Source: lookup.SourceDBpedia},
		{ID: "http://www.wikidata.org/entity/Q220", Label: "Roma", Source: lookup.SourceWikidata},
	}}
	r := New(ns, WithLookup(src), WithScorer(labelScorer(map[string]float64{
		"Rome": 0.9,
		"Roma": 0.9,
	})))

	uri, err := r.Resolve(context.Background(), "Rome", External(0.4, ""))
	require.NoError(t, err)
	assert.Equal(t, "http://dbpedia.org/resource/Rome", uri)
}

func TestResolve_BestCandidateWins(t *testing.T) {
	src := &fakeSources{candidates: []lookup.KGEntity{
		{ID: "a", Label: "low"},
		{ID: "b", Label: "high"},
		{ID: "c", Label: "mid"},
	}}
	r := New(ns, WithLookup(src), WithScorer(labelScorer(map[string]float64{
		"low": 0.5, "high": 0.9, "mid": 0.7,
	})))

	uri, err := r.Resolve(context.Background(), "q", External(0.4, ""))
	require.NoError(t, err)
	assert.Equal(t, "b", uri)
}

func TestResolve_EmptyIdentifierRejected(t *testing.T) {
	src := &fakeSources{candidates: []lookup.KGEntity{{ID: "", Label: "Lyon"}}}
	r := New(ns, WithLookup(src))

	uri, err := r.Resolve(context.Background(), "Lyon", External(0.1, ""))
	require.NoError(t, err)
	assert.Equal(t, ns+"Lyon", uri)
}

func TestResolve_NoCandidatesFallsBackToLocal(t *testing.T) {
	src := &fakeSources{}
	r := New(ns, WithLookup(src))

	uri, err := r.Resolve(context.Background(), "Nowhere Town", External(0.4, "cat"))
	require.NoError(t, err)
	assert.Equal(t, ns+"Nowhere_Town", uri)
	assert.Equal(t, []string{"cat"}, src.filters)
}

func TestResolve_BlankEntity(t *testing.T) {
	r := New(ns)
	_, err := r.Resolve(context.Background(), "   ", Local())
	assert.ErrorIs(t, err, ErrBlankEntity)
	assert.Zero(t, r.Dictionary().Len())
}

// memStore is an in-memory Store.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) PutIfAbsent(key, uri string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = uri
	return true, nil
}

func TestResolve_StoreReadThroughAndWrite(t *testing.T) {
	store := &memStore{data: map[string]string{ns + "\ttexas": "http://dbpedia.org/resource/Texas"}}
	src := &fakeSources{candidates: []lookup.KGEntity{
		{ID: "http://dbpedia.org/resource/Ohio", Label: "Ohio", Source: lookup.SourceDBpedia},
	}}
	r := New(ns, WithLookup(src), WithStore(store))

	uri, err := r.Resolve(context.Background(), "Texas", External(0.8, ""))
	require.NoError(t, err)
	assert.Equal(t, "http://dbpedia.org/resource/Texas", uri)
	assert.Zero(t, src.calls.Load(), "stored decisions skip lookup")
	assert.Equal(t, int64(1), r.Stats().Restored)

	_, err = r.Resolve(context.Background(), "Ohio", External(0.8, ""))
	require.NoError(t, err)
	assert.Equal(t, "http://dbpedia.org/resource/Ohio", store.data[ns+"\tohio"])
}

func TestResolve_StoreIgnoresLocalPolicy(t *testing.T) {
	store := &memStore{data: map[string]string{}}
	texas := lookup.KGEntity{ID: "http://dbpedia.org/resource/Texas", Label: "Texas", Source: lookup.SourceDBpedia}

	offline := New(ns, WithLookup(&fakeSources{candidates: []lookup.KGEntity{texas}}), WithStore(store))
	uri, err := offline.Resolve(context.Background(), "Texas", Local())
	require.NoError(t, err)
	assert.Equal(t, ns+"Texas", uri)
	assert.Empty(t, store.data, "local-only decisions are not persisted")

	src := &fakeSources{candidates: []lookup.KGEntity{texas}}
	online := New(ns, WithLookup(src), WithStore(store))
	uri, err = online.Resolve(context.Background(), "Texas", External(0.8, ""))
	require.NoError(t, err)
	assert.Equal(t, texas.ID, uri)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Zero(t, online.Stats().Restored)

	// A later offline run does not replay the external decision.
	again := New(ns, WithLookup(&fakeSources{}), WithStore(store))
	uri, err = again.Resolve(context.Background(), "Texas", Local())
	require.NoError(t, err)
	assert.Equal(t, ns+"Texas", uri)
}

func TestResolve_StoreScopedByNamespace(t *testing.T) {
	store := &memStore{data: map[string]string{}}
	src := &fakeSources{}
	first := New("http://old.example.org/r#", WithLookup(src), WithStore(store))
	uri, err := first.Resolve(context.Background(), "Mozzarella", External(0.65, ""))
	require.NoError(t, err)
	assert.Equal(t, "http://old.example.org/r#Mozzarella", uri)

	second := New(ns, WithLookup(src), WithStore(store))
	uri, err = second.Resolve(context.Background(), "Mozzarella", External(0.65, ""))
	require.NoError(t, err)
	assert.Equal(t, ns+"Mozzarella", uri)
	assert.True(t, second.IsLocal(uri))
	assert.Zero(t, second.Stats().Restored)
	assert.Len(t, store.data, 2)
}

func TestResolve_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	r := New(ns, WithMetrics(m))
	_, _ = r.Resolve(context.Background(), "a", Local())
	_, _ = r.Resolve(context.Background(), "A", Local())

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["semlink_resolver_cache_lookups_total"])
	assert.True(t, names["semlink_resolver_decisions_total"])
}

func TestLookup(t *testing.T) {
	r := New(ns)
	_, ok := r.Lookup("Paris")
	assert.False(t, ok)

	want, err := r.Resolve(context.Background(), "Paris", Local())
	require.NoError(t, err)

	got, ok := r.Lookup("pArIs")
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, External(0.4, "").Validate())
	assert.NoError(t, Local().Validate())
	assert.Error(t, Policy{Threshold: 1.5}.Validate())
	assert.Error(t, Policy{Threshold: -0.1}.Validate())
}
