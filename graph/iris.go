package graph

import "github.com/c360studio/semstreams/vocabulary"

// W3C vocabulary IRIs used when building and reasoning over graphs.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"

	RDFType = RDFNamespace + "type"

	RDFSSubClassOf    = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"
	RDFSDomain        = RDFSNamespace + "domain"
	RDFSRange         = RDFSNamespace + "range"
	RDFSLabel         = vocabulary.RdfsLabel

	OWLSameAs             = vocabulary.OwlSameAs
	OWLEquivalentClass    = vocabulary.OwlEquivalentClass
	OWLEquivalentProperty = vocabulary.OwlEquivalentProperty
	OWLInverseOf          = OWLNamespace + "inverseOf"
	OWLSymmetricProperty  = OWLNamespace + "SymmetricProperty"
	OWLTransitiveProperty = OWLNamespace + "TransitiveProperty"
	OWLClass              = OWLNamespace + "Class"
	OWLThing              = OWLNamespace + "Thing"

	XSDString  = XSDNamespace + "string"
	XSDDouble  = XSDNamespace + "double"
	XSDInteger = XSDNamespace + "integer"
	XSDBoolean = XSDNamespace + "boolean"
)

// DefaultPrefixes returns the prefixes bound on every new graph: the W3C
// vocabularies plus the public knowledge graphs entities are linked against.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"dc":   "http://purl.org/dc/elements/1.1/",
		"owl":  OWLNamespace,
		"rdf":  RDFNamespace,
		"rdfs": RDFSNamespace,
		"skos": "http://www.w3.org/2004/02/skos/core#",
		"xml":  "http://www.w3.org/XML/1998/namespace",
		"xsd":  XSDNamespace,
		"dbr":  "http://dbpedia.org/resource/",
		"dbo":  "http://dbpedia.org/ontology/",
		"wd":   "http://www.wikidata.org/entity/",
		"wdt":  "http://www.wikidata.org/prop/direct/",
	}
}
