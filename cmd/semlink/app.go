package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/c360studio/semlink/config"
	"github.com/c360studio/semlink/convert"
	"github.com/c360studio/semlink/dataset"
	"github.com/c360studio/semlink/graph"
	"github.com/c360studio/semlink/lookup"
	"github.com/c360studio/semlink/resolver"
	"github.com/c360studio/semlink/similarity"
	"github.com/c360studio/semlink/storage"
	"github.com/c360studio/semstreams/pkg/retry"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// App wires the configuration into lookup sources, the resolver and the
// converter. One App serves one run.
type App struct {
	cfg    *config.Config
	runID  string
	logger *slog.Logger

	registry *prometheus.Registry
	sources  lookup.Sources
	scorer   similarity.Scorer
	store    *storage.Store
	resolver *resolver.Resolver
	policies convert.Policies
}

// NewApp builds the run's components from cfg.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	scorer, err := similarity.New(cfg.Resolution.Metric)
	if err != nil {
		return nil, err
	}
	policies, err := buildPolicies(cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	lookupMetrics, err := lookup.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("register lookup metrics: %w", err)
	}
	resolverMetrics, err := resolver.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("register resolver metrics: %w", err)
	}

	app := &App{
		cfg:      cfg,
		runID:    runID,
		logger:   logger,
		registry: registry,
		sources:  buildSources(cfg, logger, lookupMetrics),
		scorer:   scorer,
		policies: policies,
	}

	opts := []resolver.Option{
		resolver.WithLookup(app.sources),
		resolver.WithScorer(scorer),
		resolver.WithLimit(cfg.Lookup.Limit),
		resolver.WithLogger(logger),
		resolver.WithMetrics(resolverMetrics),
	}
	if cfg.Cache.Path != "" {
		store, err := storage.Open(cfg.Cache.Path, runID)
		if err != nil {
			return nil, fmt.Errorf("open URI cache: %w", err)
		}
		app.store = store
		opts = append(opts, resolver.WithStore(store))
		logger.Info("Using persistent URI cache", "path", store.Path())
	}
	app.resolver = resolver.New(cfg.Namespace.IRI, opts...)

	return app, nil
}

// buildSources creates the enabled lookup services in query order.
func buildSources(cfg *config.Config, logger *slog.Logger, metrics *lookup.Metrics) lookup.Sources {
	backoff := cfg.Lookup.Backoff
	opts := []lookup.ClientOption{
		lookup.WithHTTPClient(&http.Client{Timeout: cfg.Lookup.Timeout}),
		lookup.WithRetryConfig(retry.Config{
			MaxAttempts:  cfg.Lookup.Attempts,
			InitialDelay: backoff,
			MaxDelay:     backoff,
			Multiplier:   1,
		}),
		lookup.WithLogger(logger),
		lookup.WithMetrics(metrics),
	}
	with := func(baseURL string) []lookup.ClientOption {
		return append(opts[:len(opts):len(opts)], lookup.WithBaseURL(baseURL))
	}

	sources := lookup.Sources{lookup.NewDBpedia(with(cfg.Lookup.DBpediaURL)...)}
	if cfg.WikidataEnabled() {
		sources = append(sources, lookup.NewWikidata(with(cfg.Lookup.WikidataURL)...))
	}
	if cfg.Lookup.EnableGoogle {
		sources = append(sources, lookup.NewGoogleKG(cfg.Lookup.GoogleAPIKey, with(cfg.Lookup.GoogleURL)...))
	}
	return sources
}

// buildPolicies applies the configured overrides to the built-in policies.
func buildPolicies(cfg *config.Config) (convert.Policies, error) {
	policies := convert.DefaultPolicies(cfg.Resolution.DefaultThreshold)
	for name, pc := range cfg.Resolution.Policies {
		kind, err := convert.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("resolution.policies: %w", err)
		}
		p := policies.For(kind)
		if pc.External != nil {
			p.EnableExternal = *pc.External
			if p.EnableExternal && p.Threshold == 0 {
				p.Threshold = cfg.Resolution.DefaultThreshold
			}
		}
		if pc.Threshold != nil {
			p.Threshold = *pc.Threshold
		}
		if pc.CategoryFilter != nil {
			p.CategoryFilter = *pc.CategoryFilter
		}
		policies[kind] = p
	}
	if !cfg.ExternalEnabled() {
		policies = policies.Offline()
	}
	if err := policies.Validate(); err != nil {
		return nil, err
	}
	return policies, nil
}

// RunID identifies the run in logs and cache records.
func (a *App) RunID() string {
	return a.runID
}

// NewGraph returns an empty graph with the namespace prefix bound.
func (a *App) NewGraph() *graph.Graph {
	g := graph.New()
	g.Bind(a.cfg.Namespace.Prefix, a.cfg.Namespace.IRI)
	return g
}

// Convert reads every input CSV into g. URI decisions are shared across
// inputs and across repeated calls.
func (a *App) Convert(ctx context.Context, g *graph.Graph, inputs []string) (convert.Stats, error) {
	var total convert.Stats
	start := time.Now()

	c := convert.New(g, a.resolver,
		convert.WithPolicies(a.policies),
		convert.WithWorkers(a.cfg.Lookup.Workers),
		convert.WithLogger(a.logger))

	for _, path := range inputs {
		tbl, err := dataset.ReadFile(path)
		if err != nil {
			return total, err
		}
		a.logger.Info("Converting dataset", "path", path, "rows", tbl.Len())

		stats, err := c.Convert(ctx, tbl)
		if err != nil {
			return total, fmt.Errorf("convert %s: %w", path, err)
		}
		total.Rows += stats.Rows
	}

	total.Triples = g.Len()
	total.Duration = time.Since(start)
	total.Resolver = a.resolver.Stats()
	return total, nil
}

// Candidate is a lookup result with its similarity to the query.
type Candidate struct {
	lookup.KGEntity
	Score float64
}

// Lookup queries the enabled sources, optionally restricted to one.
func (a *App) Lookup(ctx context.Context, query string, source lookup.Source, limit int, categoryFilter string) []Candidate {
	sources := a.sources
	if source != "" {
		sources = nil
		for _, s := range a.sources {
			if s.Source() == source {
				sources = append(sources, s)
			}
		}
	}

	var out []Candidate
	for entity := range sources.SearchAll(ctx, query, limit, categoryFilter) {
		out = append(out, Candidate{KGEntity: entity, Score: a.scorer.Score(query, entity.Label)})
	}
	return out
}

// WriteMetrics writes a Prometheus textfile snapshot when metrics.path is set.
func (a *App) WriteMetrics() error {
	path := a.cfg.Metrics.Path
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.logger.Debug("Wrote metrics", "path", path)
	return nil
}

// Close releases the URI cache.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil && !errors.Is(err, storage.ErrClosed) {
		return err
	}
	return nil
}
