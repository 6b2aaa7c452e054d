package lookup

import (
	"strings"

	"golang.org/x/net/html"
)

// stripMarkup removes HTML tags from a label and unescapes entities.
// DBpedia Lookup highlights matched terms, e.g. "<B>Texas</B>".
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
