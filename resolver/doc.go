// Package resolver decides the canonical URI for raw entity strings.
//
// For each distinct entity (compared case-insensitively) the Resolver either
// mints a local URI in its namespace or adopts the identifier of the best
// external candidate, when that candidate's label is similar enough to the
// entity text. Decisions are memoised in a Dictionary for the life of the
// Resolver and, optionally, in a persistent Store so later runs reuse them.
//
// A decision, once recorded, is never overwritten:
//
//	r := resolver.New(ns, resolver.WithLookup(sources))
//	uri, err := r.Resolve(ctx, "Texas", resolver.Policy{
//		EnableExternal: true,
//		CategoryFilter: "http://dbpedia.org/resource/Category:States_of_the_United_States",
//		Threshold:      0.8,
//	})
package resolver
