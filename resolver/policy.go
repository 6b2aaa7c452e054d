package resolver

import "fmt"

// DefaultThreshold is the similarity a candidate needs when a policy does
// not set a stricter one.
const DefaultThreshold = 0.4

// Policy holds the per-entity-kind resolution parameters. Short or ambiguous
// kinds (states, cities, currencies) use stricter thresholds.
type Policy struct {
	// EnableExternal allows adopting an external knowledge-graph identifier.
	EnableExternal bool
	// CategoryFilter is passed to sources that can rank by category.
	CategoryFilter string
	// Threshold is the minimum similarity for accepting a candidate,
	// compared with >=.
	Threshold float64
}

// Local returns a policy that always mints a local URI.
func Local() Policy {
	return Policy{}
}

// External returns a policy that consults lookup sources.
func External(threshold float64, categoryFilter string) Policy {
	return Policy{EnableExternal: true, CategoryFilter: categoryFilter, Threshold: threshold}
}

// Validate checks the threshold range.
func (p Policy) Validate() error {
	if p.Threshold < 0 || p.Threshold > 1 {
		return fmt.Errorf("threshold %v outside [0,1]", p.Threshold)
	}
	return nil
}
