package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/semlink/graph"
	"github.com/knakk/rdf"
)

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(t graph.Triple) error {
	kt, err := toRDF(t)
	if err != nil {
		return fmt.Errorf("convert %s: %w", t, err)
	}
	w.sb.WriteString(kt.Serialize(rdf.NTriples))
	return nil
}

// WriteGraph writes every triple of g in insertion order.
func (w *NTriplesWriter) WriteGraph(g *graph.Graph) error {
	for _, t := range g.Triples() {
		if err := w.WriteTriple(t); err != nil {
			return err
		}
	}
	return nil
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}

// toRDF converts a graph triple to a knakk/rdf triple, validating IRIs.
func toRDF(t graph.Triple) (rdf.Triple, error) {
	subj, err := toRDFTerm(graph.SubjectTerm(t.Subject))
	if err != nil {
		return rdf.Triple{}, err
	}
	pred, err := rdf.NewIRI(t.Predicate)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("predicate: %w", err)
	}
	obj, err := toRDFTerm(t.Object)
	if err != nil {
		return rdf.Triple{}, err
	}
	return rdf.Triple{Subj: subj.(rdf.Subject), Pred: pred, Obj: obj.(rdf.Object)}, nil
}

func toRDFTerm(t graph.Term) (rdf.Term, error) {
	switch t.Kind {
	case graph.KindIRI:
		return rdf.NewIRI(t.Value)
	case graph.KindBlank:
		return rdf.NewBlank(strings.TrimPrefix(t.Value, "_:"))
	default:
		if t.Lang != "" {
			return rdf.NewLangLiteral(t.Value, t.Lang)
		}
		dt := t.Datatype
		if dt == "" {
			dt = graph.XSDString
		}
		iri, err := rdf.NewIRI(dt)
		if err != nil {
			return nil, fmt.Errorf("datatype: %w", err)
		}
		return rdf.NewTypedLiteral(t.Value, iri), nil
	}
}

// fromRDF converts a decoded knakk/rdf triple into a graph triple.
func fromRDF(t rdf.Triple) graph.Triple {
	return graph.Triple{
		Subject:   fromRDFTerm(t.Subj).Value,
		Predicate: t.Pred.String(),
		Object:    fromRDFTerm(t.Obj),
	}
}

func fromRDFTerm(t rdf.Term) graph.Term {
	switch v := t.(type) {
	case rdf.IRI:
		return graph.IRI(v.String())
	case rdf.Blank:
		return graph.Blank(v.String())
	case rdf.Literal:
		if v.Lang() != "" {
			return graph.LangLiteral(v.String(), v.Lang())
		}
		return graph.Literal(v.String(), v.DataType.String())
	default:
		return graph.IRI(t.String())
	}
}
