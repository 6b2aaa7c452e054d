// Package emit turns resolved entities into graph statements.
//
// Type emission resolves its entity and subclass emission mints class IRIs; literal and object
// emission require the entities to have been resolved already and return an
// *UnresolvedEntityError otherwise. Missing values are skipped silently.
package emit

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/c360studio/semlink/dataset"
	"github.com/c360studio/semlink/graph"
	"github.com/c360studio/semlink/resolver"
)

// Emitter writes statements about resolved entities into a graph.
type Emitter struct {
	graph    *graph.Graph
	resolver *resolver.Resolver
	logger   *slog.Logger
}

// New creates an emitter writing into g with URIs from r.
func New(g *graph.Graph, r *resolver.Resolver, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{graph: g, resolver: r, logger: logger}
}

// Graph returns the graph being written.
func (e *Emitter) Graph() *graph.Graph {
	return e.graph
}

// Resolver returns the resolver supplying URIs.
func (e *Emitter) Resolver() *resolver.Resolver {
	return e.resolver
}

// EmitType resolves entity under policy and adds (uri rdf:type classIRI).
// It returns the resolved URI, or "" when entity is missing.
func (e *Emitter) EmitType(ctx context.Context, entity, classIRI string, policy resolver.Policy) (string, error) {
	if dataset.IsMissing(entity) {
		return "", nil
	}
	uri, err := e.resolver.Resolve(ctx, entity, policy)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", entity, err)
	}
	e.graph.Add(graph.Triple{Subject: uri, Predicate: graph.RDFType, Object: graph.IRI(classIRI)})
	return uri, nil
}

// EmitLiteral adds (uri predicate "value"^^datatype) for an already
// resolved entity. Missing entities or values are skipped.
func (e *Emitter) EmitLiteral(entity, predicate, value, datatype string) error {
	if dataset.IsMissing(entity) || dataset.IsMissing(value) {
		return nil
	}
	uri, ok := e.resolver.Lookup(entity)
	if !ok {
		return &UnresolvedEntityError{Entity: entity}
	}
	e.graph.Add(graph.Triple{Subject: uri, Predicate: predicate, Object: graph.Literal(value, datatype)})
	return nil
}

// EmitObject adds (subject p object) for each predicate, linking two
// already resolved entities under several predicate aliases at once.
func (e *Emitter) EmitObject(subject string, predicates []string, object string) error {
	if dataset.IsMissing(subject) || dataset.IsMissing(object) {
		return nil
	}
	subjectURI, ok := e.resolver.Lookup(subject)
	if !ok {
		return &UnresolvedEntityError{Entity: subject}
	}
	objectURI, ok := e.resolver.Lookup(object)
	if !ok {
		return &UnresolvedEntityError{Entity: object}
	}
	for _, p := range predicates {
		e.graph.Add(graph.Triple{Subject: subjectURI, Predicate: p, Object: graph.IRI(objectURI)})
	}
	return nil
}

// EmitSubclass adds (child rdfs:subClassOf parent) between two schema
// classes minted in the local namespace. Class names do not enter the
// entity dictionary.
func (e *Emitter) EmitSubclass(ctx context.Context, parent, child string) error {
	if dataset.IsMissing(parent) || dataset.IsMissing(child) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	parentURI, err := e.resolver.ResolveClass(parent)
	if err != nil {
		return fmt.Errorf("resolve class %q: %w", parent, err)
	}
	childURI, err := e.resolver.ResolveClass(child)
	if err != nil {
		return fmt.Errorf("resolve class %q: %w", child, err)
	}
	e.graph.Add(graph.Triple{Subject: childURI, Predicate: graph.RDFSSubClassOf, Object: graph.IRI(parentURI)})
	return nil
}

// EmitAxiom adds a schema statement between two IRIs without resolution.
func (e *Emitter) EmitAxiom(subjectIRI, predicate, objectIRI string) {
	e.graph.Add(graph.Triple{Subject: subjectIRI, Predicate: predicate, Object: graph.IRI(objectIRI)})
}

var classNameNoise = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// ClassIRI mints a class IRI from free text in the resolver's namespace:
// non-word characters are removed and the first letter upper-cased,
// "pizza place" becomes "Pizzaplace".
func (e *Emitter) ClassIRI(name string) string {
	return e.resolver.Namespace() + ClassName(name)
}

// ClassName is the local part used by ClassIRI.
func ClassName(name string) string {
	s := strings.ToLower(classNameNoise.ReplaceAllString(name, ""))
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
