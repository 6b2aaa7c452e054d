package lookup

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// DefaultDBpediaURL is the public DBpedia Lookup search endpoint.
const DefaultDBpediaURL = "http://lookup.dbpedia.org/api/search"

// Type IRI namespaces kept from DBpedia results; anything else (and
// owl:Thing) is dropped as noise.
var dbpediaTypePrefixes = []string{
	"http://dbpedia.org/ontology/",
	"http://www.wikidata.org/entity/",
	"http://schema.org/",
}

const owlThing = "http://www.w3.org/2002/07/owl#Thing"

// DBpedia searches DBpedia Lookup.
type DBpedia struct {
	client *Client
	logger *slog.Logger
}

// NewDBpedia creates a DBpedia Lookup source.
func NewDBpedia(opts ...ClientOption) *DBpedia {
	c := NewClient(SourceDBpedia, DefaultDBpediaURL, opts...)
	return &DBpedia{client: c, logger: c.logger}
}

// Source implements Searcher.
func (d *DBpedia) Source() Source { return SourceDBpedia }

type dbpediaResponse struct {
	Docs []dbpediaDoc `json:"docs"`
}

// DBpedia Lookup returns every field as an array.
type dbpediaDoc struct {
	Resource []string `json:"resource"`
	Label    []string `json:"label"`
	Comment  []string `json:"comment"`
	Type     []string `json:"type"`
	Category []string `json:"category"`
}

// Search implements Searcher. Candidates carrying categoryFilter among their
// categories are moved to the front in their original order. When a filter
// is given, candidates without any category are dropped.
func (d *DBpedia) Search(ctx context.Context, query string, limit int, categoryFilter string) []KGEntity {
	params := url.Values{}
	params.Set("query", query)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("format", "json")

	var resp dbpediaResponse
	if err := d.client.GetJSON(ctx, params, &resp); err != nil {
		d.logger.Warn("Lookup failed, no candidates",
			"source", SourceDBpedia,
			"query", query,
			"error", err)
		return nil
	}

	var matched, rest []KGEntity
	for _, doc := range resp.Docs {
		e := KGEntity{
			ID:          first(doc.Resource),
			Label:       stripMarkup(first(doc.Label)),
			Description: stripMarkup(first(doc.Comment)),
			Types:       typeSet(dbpediaTypes(doc.Type)),
			Source:      SourceDBpedia,
		}

		switch {
		case categoryFilter != "" && slices.Contains(doc.Category, categoryFilter):
			matched = append(matched, e)
		case categoryFilter != "" && len(doc.Category) == 0:
			continue
		default:
			rest = append(rest, e)
		}
	}

	out := append(matched, rest...)
	d.client.metrics.returned(SourceDBpedia, len(out))
	return out
}

func dbpediaTypes(types []string) []string {
	var out []string
	for _, t := range types {
		if t == owlThing {
			continue
		}
		for _, prefix := range dbpediaTypePrefixes {
			if strings.HasPrefix(t, prefix) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
