// Package graph provides the in-memory RDF graph the conversion writes into.
//
// A Graph is an append-only set of triples kept in insertion order. Adding a
// triple that is already present is a no-op, matching RDF set semantics, so
// callers may emit the same fact once per dataset row without duplicating it
// in the output.
package graph

import (
	"fmt"
	"maps"
	"strings"
)

// TermKind distinguishes the kinds of RDF terms an object position can hold.
type TermKind int

const (
	// KindIRI is a resource identified by an IRI.
	KindIRI TermKind = iota
	// KindLiteral is a lexical value with an optional datatype or language.
	KindLiteral
	// KindBlank is a blank node; Value holds its "_:" label.
	KindBlank
)

// Term is an RDF term in object position.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

// IRI returns an IRI term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Literal returns a literal term. An empty datatype leaves the literal plain.
func Literal(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal.
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: lang}
}

// Blank returns a blank node term. The label is prefixed with "_:" if needed.
func Blank(label string) Term {
	if !strings.HasPrefix(label, "_:") {
		label = "_:" + label
	}
	return Term{Kind: KindBlank, Value: label}
}

// IsResource reports whether the term can appear in subject position.
func (t Term) IsResource() bool {
	return t.Kind == KindIRI || t.Kind == KindBlank
}

// String renders the term in N-Triples-like notation for logs and errors.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return t.Value
	default:
		s := fmt.Sprintf("%q", t.Value)
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	}
}

// IsBlankLabel reports whether a subject string is a blank node label.
func IsBlankLabel(subject string) bool {
	return strings.HasPrefix(subject, "_:")
}

// SubjectTerm converts a subject string to a term.
func SubjectTerm(subject string) Term {
	if IsBlankLabel(subject) {
		return Term{Kind: KindBlank, Value: subject}
	}
	return IRI(subject)
}

// Triple is a single RDF statement. Subject holds an IRI or a "_:" blank
// label; Predicate is always an IRI.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// String renders the triple for logs and errors.
func (t Triple) String() string {
	return fmt.Sprintf("%s <%s> %s .", SubjectTerm(t.Subject), t.Predicate, t.Object)
}

// Graph is an insertion-ordered set of triples with namespace bindings.
// It is owned by a single writer and is not safe for concurrent mutation.
type Graph struct {
	triples  []Triple
	index    map[Triple]struct{}
	prefixes map[string]string
}

// New returns an empty graph with DefaultPrefixes bound.
func New() *Graph {
	return &Graph{
		index:    make(map[Triple]struct{}),
		prefixes: DefaultPrefixes(),
	}
}

// Add inserts a triple. It returns false if the triple was already present.
func (g *Graph) Add(t Triple) bool {
	if _, ok := g.index[t]; ok {
		return false
	}
	g.index[t] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// AddAll inserts every triple and returns how many were new.
func (g *Graph) AddAll(ts []Triple) int {
	added := 0
	for _, t := range ts {
		if g.Add(t) {
			added++
		}
	}
	return added
}

// Merge adds every triple and prefix binding of other into g.
func (g *Graph) Merge(other *Graph) int {
	for prefix, iri := range other.prefixes {
		if _, ok := g.prefixes[prefix]; !ok {
			g.prefixes[prefix] = iri
		}
	}
	return g.AddAll(other.triples)
}

// Has reports whether the triple is present.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.index[t]
	return ok
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of the triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Match returns the triples whose subject and predicate equal the given
// values and whose object equals *object. Empty strings and a nil object act
// as wildcards.
func (g *Graph) Match(subject, predicate string, object *Term) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if subject != "" && t.Subject != subject {
			continue
		}
		if predicate != "" && t.Predicate != predicate {
			continue
		}
		if object != nil && t.Object != *object {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Bind associates a prefix with a namespace IRI, replacing any previous
// binding of the prefix.
func (g *Graph) Bind(prefix, iri string) {
	g.prefixes[prefix] = iri
}

// Prefixes returns a copy of the namespace bindings.
func (g *Graph) Prefixes() map[string]string {
	return maps.Clone(g.prefixes)
}
