package dataset

import (
	"math"
	"strings"
)

// missingSentinels are placeholder strings treated as absent values: the
// placeholders seen in the restaurant data plus the strings a pandas CSV
// reader maps to NaN, so files exported from a dataframe read the same way.
var missingSentinels = map[string]struct{}{
	"_":        {},
	"nan":      {},
	"NaN":      {},
	"-nan":     {},
	"-NaN":     {},
	"None":     {},
	"NULL":     {},
	"null":     {},
	"NA":       {},
	"N/A":      {},
	"n/a":      {},
	"<NA>":     {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"1.#IND":   {},
	"1.#QNAN":  {},
}

// IsMissing reports whether a cell value is absent: empty, whitespace-only
// or a placeholder such as "_" or "nan". "0" is a value.
func IsMissing(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return true
	}
	_, ok := missingSentinels[t]
	return ok
}

// IsMissingValue extends IsMissing to untyped values: nil, nil pointers and
// NaN floats are missing.
func IsMissingValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return IsMissing(x)
	case *string:
		return x == nil || IsMissing(*x)
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	default:
		return false
	}
}
