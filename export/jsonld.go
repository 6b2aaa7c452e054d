package export

import (
	"encoding/json"

	"github.com/c360studio/semlink/graph"
)

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in expanded-IRI JSON-LD with the graph's prefixes
// as @context.
type JSONLDWriter struct {
	doc JSONLDDocument
}

// NewJSONLDWriter creates a new JSON-LD writer.
func NewJSONLDWriter() *JSONLDWriter {
	return &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
	}
}

// SetContext sets the @context with prefixes.
func (w *JSONLDWriter) SetContext(prefixes map[string]string) {
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
}

// WriteGraph adds one node per subject, in first-seen order.
func (w *JSONLDWriter) WriteGraph(g *graph.Graph) {
	index := make(map[string]int)
	for _, t := range g.Triples() {
		i, ok := index[t.Subject]
		if !ok {
			i = len(w.doc.Graph)
			index[t.Subject] = i
			w.doc.Graph = append(w.doc.Graph, JSONLDNode{ID: t.Subject, Properties: make(map[string]any)})
		}
		node := &w.doc.Graph[i]

		if t.Predicate == graph.RDFType && t.Object.Kind != graph.KindLiteral {
			node.Type = append(node.Type, t.Object.Value)
			continue
		}
		values, _ := node.Properties[t.Predicate].([]map[string]string)
		node.Properties[t.Predicate] = append(values, jsonldValue(t.Object))
	}
}

func jsonldValue(t graph.Term) map[string]string {
	switch t.Kind {
	case graph.KindIRI, graph.KindBlank:
		return map[string]string{"@id": t.Value}
	default:
		v := map[string]string{"@value": t.Value}
		if t.Lang != "" {
			v["@language"] = t.Lang
		} else if t.Datatype != "" {
			v["@type"] = t.Datatype
		}
		return v
	}
}

// Document returns the accumulated document.
func (w *JSONLDWriter) Document() *JSONLDDocument {
	return &w.doc
}

// String returns the JSON-LD output.
func (w *JSONLDWriter) String() string {
	data, err := json.MarshalIndent(w.doc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
