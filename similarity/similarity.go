// Package similarity scores how closely a candidate label matches a query.
package similarity

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Scorer returns a similarity in [0,1] between a query and a candidate
// label. Implementations must be deterministic and side-effect free.
type Scorer interface {
	Score(query, label string) float64
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(query, label string) float64

// Score implements Scorer.
func (f ScorerFunc) Score(query, label string) float64 {
	return f(query, label)
}

// JaroWinkler scores with the Jaro-Winkler metric, which rewards a shared
// prefix. "Texas" scores higher against "Texas (U.S. state)" than against
// "Austin, Texas". Comparison is case-insensitive.
type JaroWinkler struct {
	metric *metrics.JaroWinkler
}

// NewJaroWinkler creates a case-insensitive Jaro-Winkler scorer.
func NewJaroWinkler() *JaroWinkler {
	m := metrics.NewJaroWinkler()
	m.CaseSensitive = false
	return &JaroWinkler{metric: m}
}

// Score implements Scorer.
func (j *JaroWinkler) Score(query, label string) float64 {
	return strutil.Similarity(strings.TrimSpace(query), strings.TrimSpace(label), j.metric)
}

// Metric wraps any strutil metric as a Scorer.
type Metric struct {
	metric strutil.StringMetric
}

// Score implements Scorer.
func (m Metric) Score(query, label string) float64 {
	return strutil.Similarity(query, label, m.metric)
}

// New returns the scorer registered under name. An empty name selects
// Jaro-Winkler.
func New(name string) (Scorer, error) {
	switch strings.ToLower(name) {
	case "", "jaro-winkler", "jarowinkler":
		return NewJaroWinkler(), nil
	case "jaro":
		m := metrics.NewJaro()
		m.CaseSensitive = false
		return Metric{metric: m}, nil
	case "levenshtein":
		m := metrics.NewLevenshtein()
		m.CaseSensitive = false
		return Metric{metric: m}, nil
	case "smith-waterman-gotoh":
		m := metrics.NewSmithWatermanGotoh()
		m.CaseSensitive = false
		return Metric{metric: m}, nil
	default:
		return nil, fmt.Errorf("unknown similarity metric %q", name)
	}
}
