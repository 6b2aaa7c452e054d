package lookup

import (
	"context"
	"iter"
	"regexp"
)

// Searcher is a single knowledge-graph lookup source.
//
// Search never returns an error: transient failures are retried inside the
// source and exhausted or fatal failures are logged and yield no candidates.
type Searcher interface {
	Source() Source
	Search(ctx context.Context, query string, limit int, categoryFilter string) []KGEntity
}

// dbpediaFilter recognises category filters that only make sense against
// DBpedia identifiers.
var dbpediaFilter = regexp.MustCompile(`dbpedia\.org`)

// Sources is an ordered list of searchers queried one after another.
type Sources []Searcher

// SearchAll returns the concatenated candidates of every source, each
// source's results in its own order. Sources are queried lazily as the
// sequence is consumed. Wikidata is skipped when the category filter names
// a DBpedia category, since its identifiers cannot satisfy that filter.
func (s Sources) SearchAll(ctx context.Context, query string, limit int, categoryFilter string) iter.Seq[KGEntity] {
	return func(yield func(KGEntity) bool) {
		for _, src := range s {
			if src.Source() == SourceWikidata && dbpediaFilter.MatchString(categoryFilter) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			for _, e := range src.Search(ctx, query, limit, categoryFilter) {
				if !yield(e) {
					return
				}
			}
		}
	}
}
