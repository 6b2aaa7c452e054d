// Package config provides configuration loading and management for semlink.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/semlink/export"
	"github.com/c360studio/semlink/lookup"
	"github.com/c360studio/semlink/similarity"
	"github.com/c360studio/semlink/vocabulary/restaurant"
	ssconfig "github.com/c360studio/semstreams/config"
	"gopkg.in/yaml.v3"
)

// Config represents the complete semlink configuration
type Config struct {
	Namespace  NamespaceConfig  `yaml:"namespace"`
	Lookup     LookupConfig     `yaml:"lookup"`
	Resolution ResolutionConfig `yaml:"resolution"`
	Output     OutputConfig     `yaml:"output"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// NamespaceConfig configures where local URIs are minted
type NamespaceConfig struct {
	// IRI is the base for local entities, classes and predicates; ends in '#' or '/'
	IRI string `yaml:"iri"`
	// Prefix is bound to IRI in Turtle output
	Prefix string `yaml:"prefix"`
}

// LookupConfig configures the external entity search services
type LookupConfig struct {
	DBpediaURL   string `yaml:"dbpedia_url"`
	WikidataURL  string `yaml:"wikidata_url"`
	GoogleURL    string `yaml:"google_url"`
	GoogleAPIKey string `yaml:"google_api_key"`
	// Limit is the number of candidates requested per source
	Limit int `yaml:"limit"`
	// Attempts is the retry budget per request
	Attempts int `yaml:"attempts"`
	// Backoff is the fixed wait between attempts
	Backoff time.Duration `yaml:"backoff"`
	// Timeout bounds a single HTTP request
	Timeout time.Duration `yaml:"timeout"`
	// Workers > 1 resolves distinct entities of a phase concurrently
	Workers        int   `yaml:"workers"`
	EnableWikidata *bool `yaml:"enable_wikidata,omitempty"`
	EnableGoogle   bool  `yaml:"enable_google"`
}

// ResolutionConfig configures how entities are linked
type ResolutionConfig struct {
	// EnableExternal turns external linking on for every kind (nil = true)
	EnableExternal   *bool   `yaml:"enable_external,omitempty"`
	DefaultThreshold float64 `yaml:"default_threshold"`
	// Metric names the similarity metric (jaro-winkler, jaro, levenshtein, smith-waterman-gotoh)
	Metric string `yaml:"metric"`
	// Policies overrides the built-in policy of an entity kind
	Policies map[string]PolicyConfig `yaml:"policies,omitempty"`
}

// PolicyConfig overrides one entity kind's resolution policy. Unset fields
// keep the built-in value.
type PolicyConfig struct {
	External       *bool    `yaml:"external,omitempty"`
	Threshold      *float64 `yaml:"threshold,omitempty"`
	CategoryFilter *string  `yaml:"category_filter,omitempty"`
}

// OutputConfig configures the serialised graph
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// CacheConfig configures the persistent URI dictionary
type CacheConfig struct {
	// Path is the bbolt file (empty = memory only)
	Path string `yaml:"path"`
}

// MetricsConfig configures the Prometheus textfile snapshot
type MetricsConfig struct {
	// Path is the textfile written after a run (empty = disabled)
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Namespace: NamespaceConfig{
			IRI:    restaurant.DefaultNamespace,
			Prefix: restaurant.DefaultPrefix,
		},
		Lookup: LookupConfig{
			DBpediaURL:     lookup.DefaultDBpediaURL,
			WikidataURL:    lookup.DefaultWikidataURL,
			GoogleURL:      lookup.DefaultGoogleKGURL,
			Limit:          5,
			Attempts:       3,
			Backoff:        60 * time.Second,
			Timeout:        30 * time.Second,
			Workers:        1,
			EnableWikidata: boolPtr(true),
		},
		Resolution: ResolutionConfig{
			EnableExternal:   boolPtr(true),
			DefaultThreshold: 0.4,
			Metric:           "jaro-winkler",
		},
		Output: OutputConfig{
			Format: "turtle",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Namespace.IRI == "" {
		return fmt.Errorf("namespace.iri is required")
	}
	if !strings.HasSuffix(c.Namespace.IRI, "#") && !strings.HasSuffix(c.Namespace.IRI, "/") {
		return fmt.Errorf("namespace.iri must end in '#' or '/': %s", c.Namespace.IRI)
	}
	if c.Namespace.Prefix == "" {
		return fmt.Errorf("namespace.prefix is required")
	}
	if c.Lookup.Limit < 1 {
		return fmt.Errorf("lookup.limit must be at least 1")
	}
	if c.Lookup.Attempts < 1 {
		return fmt.Errorf("lookup.attempts must be at least 1")
	}
	if c.Lookup.Backoff < 0 || c.Lookup.Timeout < 0 {
		return fmt.Errorf("lookup.backoff and lookup.timeout must not be negative")
	}
	if c.Lookup.Workers < 1 {
		return fmt.Errorf("lookup.workers must be at least 1")
	}
	if c.Lookup.EnableGoogle && c.Lookup.GoogleAPIKey == "" {
		return fmt.Errorf("lookup.google_api_key is required when lookup.enable_google is set")
	}
	if !validThreshold(c.Resolution.DefaultThreshold) {
		return fmt.Errorf("resolution.default_threshold must be between 0 and 1")
	}
	if _, err := similarity.New(c.Resolution.Metric); err != nil {
		return fmt.Errorf("resolution.metric: %w", err)
	}
	for kind, p := range c.Resolution.Policies {
		if p.Threshold != nil && !validThreshold(*p.Threshold) {
			return fmt.Errorf("resolution.policies.%s.threshold must be between 0 and 1", kind)
		}
	}
	if c.Output.Format != "" {
		f, err := export.ParseFormat(c.Output.Format)
		if info, _ := export.GetFormatInfo(f); err != nil || !info.Writable {
			return fmt.Errorf("output.format %q is not supported", c.Output.Format)
		}
	}
	return nil
}

// ExternalEnabled reports whether external linking is on.
func (c *Config) ExternalEnabled() bool {
	return c.Resolution.EnableExternal == nil || *c.Resolution.EnableExternal
}

// WikidataEnabled reports whether Wikidata is queried.
func (c *Config) WikidataEnabled() bool {
	return c.Lookup.EnableWikidata == nil || *c.Lookup.EnableWikidata
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// decodeFile unmarshals path into config after expanding ${VAR} and
// ${VAR:-default} references.
func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	expanded := ssconfig.ExpandEnvWithDefaults(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Namespace
	if other.Namespace.IRI != "" {
		c.Namespace.IRI = other.Namespace.IRI
	}
	if other.Namespace.Prefix != "" {
		c.Namespace.Prefix = other.Namespace.Prefix
	}

	// Lookup
	mergeString(&c.Lookup.DBpediaURL, other.Lookup.DBpediaURL)
	mergeString(&c.Lookup.WikidataURL, other.Lookup.WikidataURL)
	mergeString(&c.Lookup.GoogleURL, other.Lookup.GoogleURL)
	mergeString(&c.Lookup.GoogleAPIKey, other.Lookup.GoogleAPIKey)
	if other.Lookup.Limit != 0 {
		c.Lookup.Limit = other.Lookup.Limit
	}
	if other.Lookup.Attempts != 0 {
		c.Lookup.Attempts = other.Lookup.Attempts
	}
	if other.Lookup.Backoff != 0 {
		c.Lookup.Backoff = other.Lookup.Backoff
	}
	if other.Lookup.Timeout != 0 {
		c.Lookup.Timeout = other.Lookup.Timeout
	}
	if other.Lookup.Workers != 0 {
		c.Lookup.Workers = other.Lookup.Workers
	}
	if other.Lookup.EnableWikidata != nil {
		c.Lookup.EnableWikidata = boolPtr(*other.Lookup.EnableWikidata)
	}
	if other.Lookup.EnableGoogle {
		c.Lookup.EnableGoogle = true
	}

	// Resolution
	if other.Resolution.EnableExternal != nil {
		c.Resolution.EnableExternal = boolPtr(*other.Resolution.EnableExternal)
	}
	if other.Resolution.DefaultThreshold != 0 {
		c.Resolution.DefaultThreshold = other.Resolution.DefaultThreshold
	}
	mergeString(&c.Resolution.Metric, other.Resolution.Metric)
	for kind, p := range other.Resolution.Policies {
		if c.Resolution.Policies == nil {
			c.Resolution.Policies = make(map[string]PolicyConfig)
		}
		c.Resolution.Policies[kind] = c.Resolution.Policies[kind].merge(p)
	}

	// Output, cache, metrics
	mergeString(&c.Output.Path, other.Output.Path)
	mergeString(&c.Output.Format, other.Output.Format)
	mergeString(&c.Cache.Path, other.Cache.Path)
	mergeString(&c.Metrics.Path, other.Metrics.Path)
}

func (p PolicyConfig) merge(other PolicyConfig) PolicyConfig {
	if other.External != nil {
		p.External = other.External
	}
	if other.Threshold != nil {
		p.Threshold = other.Threshold
	}
	if other.CategoryFilter != nil {
		p.CategoryFilter = other.CategoryFilter
	}
	return p
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func validThreshold(v float64) bool {
	return v >= 0 && v <= 1
}

func boolPtr(b bool) *bool {
	return &b
}
