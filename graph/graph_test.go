package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://example.org/r#"

func TestGraphAddDeduplicates(t *testing.T) {
	g := New()

	tr := Triple{Subject: ns + "Paris", Predicate: RDFType, Object: IRI(ns + "City")}
	assert.True(t, g.Add(tr), "first add should insert")
	assert.False(t, g.Add(tr), "second add should be a no-op")
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(tr))
}

func TestGraphPreservesInsertionOrder(t *testing.T) {
	g := New()
	in := []Triple{
		{Subject: ns + "b", Predicate: RDFType, Object: IRI(ns + "City")},
		{Subject: ns + "a", Predicate: RDFType, Object: IRI(ns + "City")},
		{Subject: ns + "a", Predicate: ns + "name", Object: Literal("a", XSDString)},
	}
	assert.Equal(t, 3, g.AddAll(in))
	assert.Equal(t, in, g.Triples())
}

func TestGraphLiteralDatatypeDistinguishesTriples(t *testing.T) {
	g := New()
	g.Add(Triple{Subject: ns + "x", Predicate: ns + "amount", Object: Literal("1", XSDString)})
	g.Add(Triple{Subject: ns + "x", Predicate: ns + "amount", Object: Literal("1", XSDDouble)})
	assert.Equal(t, 2, g.Len())
}

func TestGraphMatch(t *testing.T) {
	g := New()
	city := IRI(ns + "City")
	g.Add(Triple{Subject: ns + "Paris", Predicate: RDFType, Object: city})
	g.Add(Triple{Subject: ns + "Lyon", Predicate: RDFType, Object: city})
	g.Add(Triple{Subject: ns + "Paris", Predicate: ns + "locatedIn", Object: IRI(ns + "France")})

	assert.Len(t, g.Match("", RDFType, &city), 2)
	assert.Len(t, g.Match(ns+"Paris", "", nil), 2)
	assert.Len(t, g.Match(ns+"Paris", RDFType, nil), 1)
	assert.Empty(t, g.Match(ns+"Nice", "", nil))
}

func TestGraphMerge(t *testing.T) {
	a := New()
	b := New()
	b.Bind("ex", "http://example.org/")

	shared := Triple{Subject: ns + "a", Predicate: RDFType, Object: IRI(ns + "City")}
	a.Add(shared)
	b.Add(shared)
	b.Add(Triple{Subject: ns + "b", Predicate: RDFType, Object: IRI(ns + "City")})

	added := a.Merge(b)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, "http://example.org/", a.Prefixes()["ex"])
}

func TestDefaultPrefixesBound(t *testing.T) {
	g := New()
	prefixes := g.Prefixes()
	for _, p := range []string{"dc", "owl", "rdf", "rdfs", "skos", "xsd", "dbr", "dbo", "wd", "wdt"} {
		_, ok := prefixes[p]
		assert.True(t, ok, "prefix %s should be bound", p)
	}

	prefixes["dbr"] = "mutated"
	assert.Equal(t, "http://dbpedia.org/resource/", g.Prefixes()["dbr"], "Prefixes should return a copy")
}

func TestTermHelpers(t *testing.T) {
	b := Blank("n1")
	require.Equal(t, "_:n1", b.Value)
	assert.True(t, b.IsResource())
	assert.False(t, Literal("x", "").IsResource())
	assert.True(t, IsBlankLabel("_:n1"))
	assert.Equal(t, KindBlank, SubjectTerm("_:n1").Kind)
	assert.Equal(t, KindIRI, SubjectTerm(ns+"a").Kind)

	assert.Equal(t, `"Paris"@fr`, LangLiteral("Paris", "fr").String())
	assert.Equal(t, `"1"^^<`+XSDDouble+`>`, Literal("1", XSDDouble).String())
}
