package resolver

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// meaningful characters are spelled out before slugging so that
// "Burgers & Cupcakes" keeps its conjunction.
var meaningful = strings.NewReplacer(
	"&", " and ",
	"+", " plus ",
	"@", " at ",
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slug turns entity text into a URI-safe local name: meaningful symbols are
// spelled out, runs of anything other than letters and digits become a
// single underscore and leading or trailing underscores are dropped.
// Text with no letters or digits slugs to "_".
func Slug(entity string) string {
	s := norm.NFC.String(meaningful.Replace(entity))
	s = strings.Trim(nonWord.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return "_"
	}
	return s
}

// NormalizeKey returns the dictionary key for entity text: NFC-normalised
// and case-folded, so "PARIS" and "paris" share one decision.
func NormalizeKey(entity string) string {
	// cases.Caser is stateful; one per call keeps this safe for Warm.
	return cases.Fold().String(norm.NFC.String(entity))
}
