package lookup

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
)

// DefaultWikidataURL is the Wikidata MediaWiki action API endpoint.
const DefaultWikidataURL = "https://www.wikidata.org/w/api.php"

// Wikidata searches Wikidata items by label with wbsearchentities.
// Results carry no types and the category filter is ignored.
type Wikidata struct {
	client *Client
	logger *slog.Logger
}

// NewWikidata creates a Wikidata search source.
func NewWikidata(opts ...ClientOption) *Wikidata {
	c := NewClient(SourceWikidata, DefaultWikidataURL, opts...)
	return &Wikidata{client: c, logger: c.logger}
}

// Source implements Searcher.
func (w *Wikidata) Source() Source { return SourceWikidata }

type wikidataResponse struct {
	Search []struct {
		ConceptURI  string `json:"concepturi"`
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
}

// Search implements Searcher.
func (w *Wikidata) Search(ctx context.Context, query string, limit int, _ string) []KGEntity {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("format", "json")
	params.Set("search", query)
	params.Set("type", "item")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("language", "en")

	var resp wikidataResponse
	if err := w.client.GetJSON(ctx, params, &resp); err != nil {
		w.logger.Warn("Lookup failed, no candidates",
			"source", SourceWikidata,
			"query", query,
			"error", err)
		return nil
	}

	out := make([]KGEntity, 0, len(resp.Search))
	for _, item := range resp.Search {
		out = append(out, KGEntity{
			ID:          item.ConceptURI,
			Label:       item.Label,
			Description: item.Description,
			Source:      SourceWikidata,
		})
	}
	w.client.metrics.returned(SourceWikidata, len(out))
	return out
}
