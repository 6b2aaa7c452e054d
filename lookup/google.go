package lookup

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
)

// DefaultGoogleKGURL is the Google Knowledge Graph Search API endpoint.
const DefaultGoogleKGURL = "https://kgsearch.googleapis.com/v1/entities:search"

const schemaOrg = "http://schema.org/"

// GoogleKG searches the Google Knowledge Graph. It needs an API key.
type GoogleKG struct {
	client *Client
	apiKey string
	logger *slog.Logger
}

// NewGoogleKG creates a Google Knowledge Graph source.
func NewGoogleKG(apiKey string, opts ...ClientOption) *GoogleKG {
	c := NewClient(SourceGoogleKG, DefaultGoogleKGURL, opts...)
	return &GoogleKG{client: c, apiKey: apiKey, logger: c.logger}
}

// Source implements Searcher.
func (g *GoogleKG) Source() Source { return SourceGoogleKG }

type googleResponse struct {
	ItemListElement []struct {
		Result struct {
			ID          string   `json:"@id"`
			Name        string   `json:"name"`
			Type        []string `json:"@type"`
			Description string   `json:"description"`
		} `json:"result"`
	} `json:"itemListElement"`
}

// Search implements Searcher. Schema.org type names are expanded to IRIs
// and "Thing" is dropped. The category filter is ignored.
func (g *GoogleKG) Search(ctx context.Context, query string, limit int, _ string) []KGEntity {
	if g.apiKey == "" {
		g.logger.Warn("Google KG lookup skipped, no API key", "query", query)
		return nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("indent", "true")
	params.Set("key", g.apiKey)

	var resp googleResponse
	if err := g.client.GetJSON(ctx, params, &resp); err != nil {
		g.logger.Warn("Lookup failed, no candidates",
			"source", SourceGoogleKG,
			"query", query,
			"error", err)
		return nil
	}

	out := make([]KGEntity, 0, len(resp.ItemListElement))
	for _, el := range resp.ItemListElement {
		var types []string
		for _, t := range el.Result.Type {
			if t != "Thing" {
				types = append(types, schemaOrg+t)
			}
		}
		out = append(out, KGEntity{
			ID:          el.Result.ID,
			Label:       el.Result.Name,
			Description: el.Result.Description,
			Types:       typeSet(types),
			Source:      SourceGoogleKG,
		})
	}
	g.client.metrics.returned(SourceGoogleKG, len(out))
	return out
}
