package dataset

import (
	"regexp"
	"slices"
	"strings"
)

// Rule replaces every match of Pattern with Replacement.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Rules is an ordered cleanup table. Rules apply in order, each to the
// output of the previous one.
type Rules []Rule

// Apply runs every rule over s.
func (rs Rules) Apply(s string) string {
	for _, r := range rs {
		s = r.Pattern.ReplaceAllString(s, r.Replacement)
	}
	return s
}

func rule(pattern, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replacement: replacement}
}

// NoiseRules drop connective words and punctuation from list cells.
var NoiseRules = Rules{
	rule(`\band\b`, ""),
	rule(`/`, ""),
	rule(`&`, ""),
	rule(`\.`, ""),
	rule(` +`, " "),
}

// DescriptionRules turn connectives into list separators before the noise
// rules run, so "cheese and tomato" splits into two ingredients.
var DescriptionRules = append(Rules{
	rule(`\b(?:and|or)\b`, ","),
	rule(`&`, ","),
}, NoiseRules...)

// SplitList splits a comma-separated cell into trimmed, non-empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ListCleaner cleans a list-valued cell into items.
type ListCleaner struct {
	Rules Rules
	// Drop lists items removed after cleaning.
	Drop []string
	// Singular trims one trailing plural "s".
	Singular bool
}

// Split applies the rules, splits the cell and post-processes each item.
// Missing cells yield nil.
func (c ListCleaner) Split(s string) []string {
	if IsMissing(s) {
		return nil
	}
	var out []string
	for _, item := range SplitList(c.Rules.Apply(s)) {
		if c.Singular {
			item = singular(item)
		}
		if item == "" || slices.Contains(c.Drop, item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories cleans the categories column into restaurant class names.
var Categories = ListCleaner{
	Rules:    NoiseRules,
	Drop:     []string{"Restaurant", "restaurant"},
	Singular: true,
}

// Descriptions splits item descriptions into singular ingredient candidates.
var Descriptions = ListCleaner{Rules: DescriptionRules, Singular: true}

func singular(s string) string {
	if strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		return strings.TrimSpace(s[:len(s)-1])
	}
	return s
}

var reversedPizza = regexp.MustCompile(`(?i)^\s*(pizza)\s?,\s?([\p{L}\s]+?)\s*$`)

// NormalizeMenuItem rewrites inverted names: "Pizza, Margherita" becomes
// "Margherita Pizza". Other names are returned unchanged.
func NormalizeMenuItem(name string) string {
	m := reversedPizza.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	return m[2] + " " + m[1]
}
