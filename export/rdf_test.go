package export_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/semlink/export"
	"github.com/c360studio/semlink/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://example.org/r#"

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.Bind("cw", ns)
	g.Add(graph.Triple{Subject: ns + "Paris", Predicate: ns + "name", Object: graph.Literal(`Paris "City of Light"`, graph.XSDString)})
	g.Add(graph.Triple{Subject: ns + "Paris", Predicate: graph.RDFType, Object: graph.IRI(ns + "City")})
	g.Add(graph.Triple{Subject: ns + "Paris", Predicate: ns + "locatedIn", Object: graph.IRI("http://dbpedia.org/resource/France")})
	g.Add(graph.Triple{Subject: ns + "Paris", Predicate: ns + "locatedIn", Object: graph.IRI(ns + "Ile_de_France")})
	g.Add(graph.Triple{Subject: ns + "12.5EUR", Predicate: ns + "amount", Object: graph.Literal("12.5", graph.XSDDouble)})
	g.Add(graph.Triple{Subject: "http://dbpedia.org/resource/Austin,_Texas", Predicate: graph.RDFType, Object: graph.IRI(ns + "City")})
	return g
}

func TestExportTurtle(t *testing.T) {
	output, err := export.Export(sampleGraph(), export.FormatTurtle)
	require.NoError(t, err)

	assert.Contains(t, output, "@prefix cw: <"+ns+"> .")
	assert.Contains(t, output, "@prefix dbr: <http://dbpedia.org/resource/> .")
	assert.Contains(t, output, "cw:Paris\n    a cw:City ;\n")
	assert.Contains(t, output, `cw:name "Paris \"City of Light\""^^xsd:string ;`)
	assert.Contains(t, output, "cw:locatedIn dbr:France, cw:Ile_de_France .")
	assert.Contains(t, output, "<"+ns+"12.5EUR>", "local names with dots stay full IRIs")
	assert.Contains(t, output, "<http://dbpedia.org/resource/Austin,_Texas>")
}

func TestExportNTriples(t *testing.T) {
	output, err := export.Export(sampleGraph(), export.FormatNTriples)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, output, "<"+ns+"Paris> <"+graph.RDFType+"> <"+ns+"City> .")
	for _, l := range lines {
		assert.True(t, strings.HasSuffix(l, " ."), l)
	}
}

func TestExportJSONLD(t *testing.T) {
	output, err := export.Export(sampleGraph(), export.FormatJSONLD)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &doc))

	ctx := doc["@context"].(map[string]any)
	assert.Equal(t, ns, ctx["cw"])

	nodes := doc["@graph"].([]any)
	require.Len(t, nodes, 3)
	paris := nodes[0].(map[string]any)
	assert.Equal(t, ns+"Paris", paris["@id"])
	assert.Equal(t, []any{ns + "City"}, paris["@type"])
	assert.Len(t, paris[ns+"locatedIn"], 2)
}

func TestExportUnsupported(t *testing.T) {
	_, err := export.Export(graph.New(), export.Format("rdfxml"))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []export.Format{export.FormatTurtle, export.FormatNTriples} {
		t.Run(string(format), func(t *testing.T) {
			g := sampleGraph()
			output, err := export.Export(g, format)
			require.NoError(t, err)

			loaded, err := export.Load(strings.NewReader(output), format)
			require.NoError(t, err)
			assert.Equal(t, g.Len(), loaded.Len())
			for _, tr := range g.Triples() {
				assert.True(t, loaded.Has(tr), "missing %s", tr)
			}
		})
	}
}

func TestLoadTurtleKeepsPrefixes(t *testing.T) {
	ttl := `@prefix ex: <http://example.org/onto#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:City rdfs:subClassOf ex:Location .
`
	g, err := export.Load(strings.NewReader(ttl), export.FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/onto#", g.Prefixes()["ex"])
	assert.True(t, g.Has(graph.Triple{
		Subject:   "http://example.org/onto#City",
		Predicate: graph.RDFSSubClassOf,
		Object:    graph.IRI("http://example.org/onto#Location"),
	}))
}

const owlOntology = `<?xml version="1.0"?>
<rdf:RDF xmlns="http://example.org/r#"
     xml:base="http://example.org/r"
     xmlns:cw="http://example.org/r#"
     xmlns:owl="http://www.w3.org/2002/07/owl#"
     xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
     xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
    <owl:Class rdf:about="http://example.org/r#City">
        <rdfs:subClassOf rdf:resource="http://example.org/r#Location"/>
        <rdfs:label>City</rdfs:label>
    </owl:Class>
</rdf:RDF>
`

func TestLoadRDFXMLOntology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurants.owl")
	require.NoError(t, os.WriteFile(path, []byte(owlOntology), 0o644))

	g, err := export.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.True(t, g.Has(graph.Triple{Subject: ns + "City", Predicate: graph.RDFType, Object: graph.IRI("http://www.w3.org/2002/07/owl#Class")}))
	assert.True(t, g.Has(graph.Triple{Subject: ns + "City", Predicate: graph.RDFSSubClassOf, Object: graph.IRI(ns + "Location")}))
	assert.Equal(t, ns, g.Prefixes()["cw"])

	for _, p := range []string{"onto.rdf", "onto.OWL", "onto.xml"} {
		f, err := export.FormatFromPath(p)
		require.NoError(t, err)
		assert.Equal(t, export.FormatRDFXML, f, p)
	}

	// Read-only: RDF/XML is never written.
	_, err = export.Export(g, export.FormatRDFXML)
	assert.Error(t, err)
	info, ok := export.GetFormatInfo(export.FormatRDFXML)
	require.True(t, ok)
	assert.True(t, info.Readable)
	assert.False(t, info.Writable)
}

func TestLoadRejectsJSONLD(t *testing.T) {
	_, err := export.Load(strings.NewReader("{}"), export.FormatJSONLD)
	assert.Error(t, err)
}

func TestWriteFileAndMerge(t *testing.T) {
	dir := t.TempDir()

	a := graph.New()
	a.Add(graph.Triple{Subject: ns + "a", Predicate: graph.RDFType, Object: graph.IRI(ns + "City")})
	b := graph.New()
	b.Add(graph.Triple{Subject: ns + "a", Predicate: graph.RDFType, Object: graph.IRI(ns + "City")})
	b.Add(graph.Triple{Subject: ns + "b", Predicate: graph.RDFType, Object: graph.IRI(ns + "City")})

	pa := filepath.Join(dir, "a.ttl")
	pb := filepath.Join(dir, "sub", "b.nt")
	require.NoError(t, export.WriteFile(pa, a, ""))
	require.NoError(t, export.WriteFile(pb, b, ""))

	merged, err := export.Merge(pa, pb)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Len())

	_, err = export.Merge(filepath.Join(dir, "missing.ttl"))
	assert.Error(t, err)
}

func TestWriteFileUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xyz")
	assert.Error(t, export.WriteFile(path, graph.New(), ""))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]export.Format{
		"ttl":      export.FormatTurtle,
		"Turtle":   export.FormatTurtle,
		"nt":       export.FormatNTriples,
		"json-ld":  export.FormatJSONLD,
		"ntriples": export.FormatNTriples,
	}
	for in, want := range tests {
		got, err := export.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := export.ParseFormat("rdfxml")
	assert.Error(t, err)

	f, err := export.FormatFromPath("graph.JSONLD")
	require.NoError(t, err)
	assert.Equal(t, export.FormatJSONLD, f)

	info, ok := export.GetFormatInfo(export.FormatTurtle)
	require.True(t, ok)
	assert.Equal(t, "text/turtle", info.MIMEType)
	assert.True(t, info.Readable)
}
