package reasoner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/semlink/graph"
	"github.com/c360studio/semlink/reasoner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://example.org/r#"

func iri(local string) graph.Term {
	return graph.IRI(ns + local)
}

func add(g *graph.Graph, s, p string, o graph.Term) {
	g.Add(graph.Triple{Subject: ns + s, Predicate: p, Object: o})
}

func has(g *graph.Graph, s, p string, o graph.Term) bool {
	return g.Has(graph.Triple{Subject: ns + s, Predicate: p, Object: o})
}

func TestExpandClassHierarchy(t *testing.T) {
	g := graph.New()
	add(g, "City", graph.RDFSSubClassOf, iri("Location"))
	add(g, "Location", graph.RDFSSubClassOf, iri("Place"))
	add(g, "Paris", graph.RDFType, iri("City"))

	added := reasoner.New().Expand(g)

	assert.Equal(t, 3, added)
	assert.True(t, has(g, "City", graph.RDFSSubClassOf, iri("Place")))
	assert.True(t, has(g, "Paris", graph.RDFType, iri("Location")))
	assert.True(t, has(g, "Paris", graph.RDFType, iri("Place")))
}

func TestExpandIsIdempotent(t *testing.T) {
	g := graph.New()
	add(g, "City", graph.RDFSSubClassOf, iri("Location"))
	add(g, "Paris", graph.RDFType, iri("City"))

	r := reasoner.New()
	require.Equal(t, 1, r.Expand(g))
	assert.Equal(t, 0, r.Expand(g))
}

func TestExpandPropertyRules(t *testing.T) {
	g := graph.New()
	add(g, "locatedCity", graph.RDFSSubPropertyOf, iri("locatedIn"))
	add(g, "locatedIn", graph.RDFSDomain, iri("Location"))
	add(g, "locatedCity", graph.RDFSRange, iri("City"))
	add(g, "addr1", ns+"locatedCity", iri("Paris"))

	reasoner.New().Expand(g)

	assert.True(t, has(g, "addr1", ns+"locatedIn", iri("Paris")), "prp-spo1")
	assert.True(t, has(g, "addr1", graph.RDFType, iri("Location")), "prp-dom via super property")
	assert.True(t, has(g, "Paris", graph.RDFType, iri("City")), "prp-rng")
}

func TestExpandRangeSkipsLiterals(t *testing.T) {
	g := graph.New()
	add(g, "name", graph.RDFSRange, graph.IRI(graph.XSDString))
	add(g, "Paris", ns+"name", graph.Literal("Paris", graph.XSDString))

	assert.Equal(t, 0, reasoner.New().Expand(g))
}

func TestExpandInverseSymmetricTransitive(t *testing.T) {
	g := graph.New()
	add(g, "isIngredientOf", graph.OWLInverseOf, iri("hasIngredient"))
	add(g, "mozzarella", ns+"isIngredientOf", iri("margherita"))

	add(g, "near", graph.RDFType, graph.IRI(graph.OWLSymmetricProperty))
	add(g, "a", ns+"near", iri("b"))

	add(g, "locatedIn", graph.RDFType, graph.IRI(graph.OWLTransitiveProperty))
	add(g, "addr1", ns+"locatedIn", iri("Austin"))
	add(g, "Austin", ns+"locatedIn", iri("Texas"))
	add(g, "Texas", ns+"locatedIn", iri("USA"))

	reasoner.New().Expand(g)

	assert.True(t, has(g, "margherita", ns+"hasIngredient", iri("mozzarella")))
	assert.True(t, has(g, "b", ns+"near", iri("a")))
	assert.True(t, has(g, "addr1", ns+"locatedIn", iri("Texas")))
	assert.True(t, has(g, "addr1", ns+"locatedIn", iri("USA")))
	assert.True(t, has(g, "Austin", ns+"locatedIn", iri("USA")))
}

func TestExpandEquivalence(t *testing.T) {
	g := graph.New()
	add(g, "Eatery", graph.OWLEquivalentClass, iri("Restaurant"))
	add(g, "joes", graph.RDFType, iri("Restaurant"))
	add(g, "moes", graph.RDFType, iri("Eatery"))
	add(g, "servedIn", graph.OWLEquivalentProperty, iri("servedInRestaurant"))
	add(g, "pie", ns+"servedIn", iri("joes"))
	add(g, "Paris", graph.OWLSameAs, graph.IRI("http://dbpedia.org/resource/Paris"))

	reasoner.New().Expand(g)

	assert.True(t, has(g, "joes", graph.RDFType, iri("Eatery")))
	assert.True(t, has(g, "moes", graph.RDFType, iri("Restaurant")))
	assert.True(t, has(g, "pie", ns+"servedInRestaurant", iri("joes")))
	assert.True(t, g.Has(graph.Triple{
		Subject:   "http://dbpedia.org/resource/Paris",
		Predicate: graph.OWLSameAs,
		Object:    iri("Paris"),
	}))
}

func TestExpandNoAxiomaticTriples(t *testing.T) {
	g := graph.New()
	add(g, "Paris", ns+"name", graph.Literal("Paris", graph.XSDString))

	assert.Equal(t, 0, reasoner.New().Expand(g))
	assert.Equal(t, 1, g.Len())
}

func TestExpandRoundLimit(t *testing.T) {
	g := graph.New()
	add(g, "A", graph.RDFSSubClassOf, iri("B"))
	add(g, "B", graph.RDFSSubClassOf, iri("C"))
	add(g, "C", graph.RDFSSubClassOf, iri("D"))
	add(g, "x", graph.RDFType, iri("A"))

	added := reasoner.New(reasoner.WithMaxRounds(1)).Expand(g)
	assert.Greater(t, added, 0)
	assert.False(t, has(g, "x", graph.RDFType, iri("D")))
}

func TestLoadOntology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onto.ttl")
	ttl := `@prefix cw: <` + ns + `> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

cw:City rdfs:subClassOf cw:Location .
`
	require.NoError(t, os.WriteFile(path, []byte(ttl), 0o644))

	g := graph.New()
	add(g, "Paris", graph.RDFType, iri("City"))

	n, err := reasoner.LoadOntology(g, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, ns, g.Prefixes()["cw"])

	reasoner.New().Expand(g)
	assert.True(t, has(g, "Paris", graph.RDFType, iri("Location")))

	_, err = reasoner.LoadOntology(g, filepath.Join(t.TempDir(), "missing.owl"))
	assert.Error(t, err)
}

func TestLoadOntologyRDFXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurants.owl")
	owl := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
     xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
     xmlns:owl="http://www.w3.org/2002/07/owl#">
    <owl:Class rdf:about="` + ns + `Pizzaplace">
        <rdfs:subClassOf rdf:resource="` + ns + `Restaurant"/>
    </owl:Class>
    <owl:ObjectProperty rdf:about="` + ns + `locatedAddress">
        <rdfs:subPropertyOf rdf:resource="` + ns + `locatedIn"/>
    </owl:ObjectProperty>
</rdf:RDF>
`
	require.NoError(t, os.WriteFile(path, []byte(owl), 0o644))

	g := graph.New()
	add(g, "JoesPizza", graph.RDFType, iri("Pizzaplace"))
	add(g, "JoesPizza", ns+"locatedAddress", iri("Elm_St"))

	n, err := reasoner.LoadOntology(g, path)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	reasoner.New().Expand(g)
	assert.True(t, has(g, "JoesPizza", graph.RDFType, iri("Restaurant")))
	assert.True(t, has(g, "JoesPizza", ns+"locatedIn", iri("Elm_St")))
}
