// Package reasoner computes the deductive closure of a graph under the
// RDFS and OWL-RL rules used by the restaurant ontology: class and property
// hierarchies, domains and ranges, inverse, symmetric and transitive
// properties, class and property equivalence, and owl:sameAs symmetry.
//
// Axiomatic and datatype triples are never generated.
package reasoner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semlink/export"
	"github.com/c360studio/semlink/graph"
)

// DefaultMaxRounds bounds the fixed-point iteration.
const DefaultMaxRounds = 64

// Reasoner expands graphs to their closure.
type Reasoner struct {
	logger    *slog.Logger
	maxRounds int
}

// Option configures a Reasoner.
type Option func(*Reasoner)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reasoner) {
		r.logger = l
	}
}

// WithMaxRounds caps the number of rule rounds. Values below 1 are ignored.
func WithMaxRounds(n int) Option {
	return func(r *Reasoner) {
		if n > 0 {
			r.maxRounds = n
		}
	}
}

// New creates a Reasoner.
func New(opts ...Option) *Reasoner {
	r := &Reasoner{
		logger:    slog.Default(),
		maxRounds: DefaultMaxRounds,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadOntology loads an ontology file (format by extension) into g and
// returns the number of new triples.
func LoadOntology(g *graph.Graph, path string) (int, error) {
	onto, err := export.LoadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load ontology: %w", err)
	}
	return g.Merge(onto), nil
}

// Expand applies the rules to g until nothing new is entailed and returns
// the number of triples added.
func (r *Reasoner) Expand(g *graph.Graph) int {
	start := time.Now()
	before := g.Len()

	rounds, fixed := 0, false
	for !fixed && rounds < r.maxRounds {
		rounds++
		fixed = g.AddAll(infer(g)) == 0
	}
	if !fixed {
		r.logger.Warn("Closure stopped at round limit", "rounds", rounds)
	}

	added := g.Len() - before
	r.logger.Info("Closure computed",
		"added", added,
		"rounds", rounds,
		"duration", time.Since(start))
	return added
}

// schema indexes the terminological statements of a graph.
type schema struct {
	superClasses map[string][]string
	equivalents  map[string][]string
	superProps   map[string][]string
	domains      map[string][]string
	ranges       map[string][]string
	inverses     map[string][]string
	symmetric    map[string]bool
	transitive   map[string]bool
	equivProps   map[string][]string
}

func newSchema(triples []graph.Triple) *schema {
	s := &schema{
		superClasses: make(map[string][]string),
		equivalents:  make(map[string][]string),
		superProps:   make(map[string][]string),
		domains:      make(map[string][]string),
		ranges:       make(map[string][]string),
		inverses:     make(map[string][]string),
		symmetric:    make(map[string]bool),
		transitive:   make(map[string]bool),
		equivProps:   make(map[string][]string),
	}
	for _, t := range triples {
		if t.Object.Kind == graph.KindLiteral {
			continue
		}
		o := t.Object.Value
		switch t.Predicate {
		case graph.RDFSSubClassOf:
			s.superClasses[t.Subject] = append(s.superClasses[t.Subject], o)
		case graph.OWLEquivalentClass:
			s.equivalents[t.Subject] = append(s.equivalents[t.Subject], o)
			s.equivalents[o] = append(s.equivalents[o], t.Subject)
		case graph.RDFSSubPropertyOf:
			s.superProps[t.Subject] = append(s.superProps[t.Subject], o)
		case graph.OWLEquivalentProperty:
			s.equivProps[t.Subject] = append(s.equivProps[t.Subject], o)
			s.equivProps[o] = append(s.equivProps[o], t.Subject)
		case graph.RDFSDomain:
			s.domains[t.Subject] = append(s.domains[t.Subject], o)
		case graph.RDFSRange:
			s.ranges[t.Subject] = append(s.ranges[t.Subject], o)
		case graph.OWLInverseOf:
			s.inverses[t.Subject] = append(s.inverses[t.Subject], o)
			s.inverses[o] = append(s.inverses[o], t.Subject)
		case graph.RDFType:
			switch o {
			case graph.OWLSymmetricProperty:
				s.symmetric[t.Subject] = true
			case graph.OWLTransitiveProperty:
				s.transitive[t.Subject] = true
			}
		}
	}
	return s
}

// infer runs one round of every rule over a snapshot of g.
func infer(g *graph.Graph) []graph.Triple {
	triples := g.Triples()
	s := newSchema(triples)

	var out []graph.Triple
	emit := func(subject, predicate string, object graph.Term) {
		t := graph.Triple{Subject: subject, Predicate: predicate, Object: object}
		if !g.Has(t) {
			out = append(out, t)
		}
	}
	typeOf := func(x, class string) {
		emit(x, graph.RDFType, graph.SubjectTerm(class))
	}

	// Objects of transitive properties, by property and subject.
	type edge struct{ p, s string }
	next := make(map[edge][]graph.Term)
	for _, t := range triples {
		if s.transitive[t.Predicate] && t.Object.IsResource() {
			k := edge{t.Predicate, t.Subject}
			next[k] = append(next[k], t.Object)
		}
	}

	for _, t := range triples {
		p, x, y := t.Predicate, t.Subject, t.Object

		switch p {
		case graph.RDFSSubClassOf:
			// scm-sco
			if y.IsResource() {
				for _, sup := range s.superClasses[y.Value] {
					emit(x, graph.RDFSSubClassOf, graph.SubjectTerm(sup))
				}
			}
		case graph.RDFSSubPropertyOf:
			// scm-spo
			if y.IsResource() {
				for _, sup := range s.superProps[y.Value] {
					emit(x, graph.RDFSSubPropertyOf, graph.SubjectTerm(sup))
				}
			}
		case graph.RDFType:
			// cax-sco, cax-eqc1, cax-eqc2
			if y.IsResource() {
				for _, sup := range s.superClasses[y.Value] {
					typeOf(x, sup)
				}
				for _, eq := range s.equivalents[y.Value] {
					typeOf(x, eq)
				}
			}
		case graph.OWLSameAs:
			// eq-sym
			if y.IsResource() {
				emit(y.Value, graph.OWLSameAs, graph.SubjectTerm(x))
			}
		}

		// prp-spo1, prp-eqp1, prp-eqp2
		for _, sup := range s.superProps[p] {
			emit(x, sup, y)
		}
		for _, eq := range s.equivProps[p] {
			emit(x, eq, y)
		}

		// prp-dom
		for _, c := range s.domains[p] {
			typeOf(x, c)
		}

		if !y.IsResource() {
			continue
		}

		// prp-rng
		for _, c := range s.ranges[p] {
			typeOf(y.Value, c)
		}

		// prp-inv1, prp-inv2
		for _, inv := range s.inverses[p] {
			emit(y.Value, inv, graph.SubjectTerm(x))
		}

		// prp-symp
		if s.symmetric[p] {
			emit(y.Value, p, graph.SubjectTerm(x))
		}

		// prp-trp
		if s.transitive[p] {
			for _, z := range next[edge{p, y.Value}] {
				emit(x, p, z)
			}
		}
	}
	return out
}
