// Package lookup queries public knowledge graphs for entities matching a
// free-text query.
//
// Each source (DBpedia Lookup, the Wikidata wbsearchentities action, the
// Google Knowledge Graph Search API) maps its own response schema into the
// common KGEntity shape. Searches fail soft: after the retry budget is spent
// the failure is logged and an empty candidate list is returned, so callers
// fall back to local identifiers instead of aborting.
package lookup

import (
	"fmt"
	"slices"
	"strings"
)

// Source identifies the knowledge graph a candidate came from.
type Source string

// Known sources, in the order the resolver queries them.
const (
	SourceDBpedia  Source = "DBpedia"
	SourceWikidata Source = "Wikidata"
	SourceGoogleKG Source = "GoogleKG"
)

// ParseSource maps a case-insensitive source name to a Source.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dbpedia":
		return SourceDBpedia, nil
	case "wikidata":
		return SourceWikidata, nil
	case "google", "googlekg", "google_kg":
		return SourceGoogleKG, nil
	default:
		return "", fmt.Errorf("unknown lookup source %q", s)
	}
}

// KGEntity is a candidate returned by a lookup source. It is a value type
// created per response and discarded after scoring.
type KGEntity struct {
	ID          string
	Label       string
	Description string
	// Types is a sorted, duplicate-free list of type IRIs.
	Types  []string
	Source Source
}

// String renders the entity for CLI output and logs.
func (e KGEntity) String() string {
	return fmt.Sprintf("<id: %s, label: %s, description: %s, types: %s, source: %s>",
		e.ID, e.Label, e.Description, strings.Join(e.Types, " "), e.Source)
}

// typeSet sorts and deduplicates type IRIs.
func typeSet(types []string) []string {
	if len(types) == 0 {
		return nil
	}
	out := slices.Clone(types)
	slices.Sort(out)
	return slices.Compact(out)
}
