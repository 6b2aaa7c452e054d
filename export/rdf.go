// Package export serialises graphs to Turtle, N-Triples and JSON-LD and
// loads Turtle, N-Triples and RDF/XML (including OWL ontologies) into graphs.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/c360studio/semlink/graph"
	"github.com/knakk/rdf"
)

// Export serialises g in the given format.
func Export(g *graph.Graph, format Format) (string, error) {
	switch format {
	case FormatTurtle:
		w := NewTurtleWriter(g.Prefixes())
		w.WritePrefixes()
		w.WriteGraph(g)
		return w.String(), nil
	case FormatNTriples:
		w := NewNTriplesWriter()
		if err := w.WriteGraph(g); err != nil {
			return "", err
		}
		return w.String(), nil
	case FormatJSONLD:
		w := NewJSONLDWriter()
		w.SetContext(g.Prefixes())
		w.WriteGraph(g)
		return w.String(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Write serialises g to out.
func Write(out io.Writer, g *graph.Graph, format Format) error {
	s, err := Export(g, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, s)
	return err
}

// WriteFile serialises g to path, creating parent directories. The format
// is inferred from the extension when empty.
func WriteFile(path string, g *graph.Graph, format Format) error {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}
	s, err := Export(g, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var (
	prefixDecl = regexp.MustCompile(`(?mi)^\s*@?prefix\s+([A-Za-z][\w.-]*)?:\s*<([^>]*)>`)
	xmlnsDecl  = regexp.MustCompile(`\bxmlns:([A-Za-z][\w.-]*)\s*=\s*["']([^"']*)["']`)
)

// Load parses Turtle, N-Triples or RDF/XML from r into a new graph. Turtle
// prefix declarations and RDF/XML namespace declarations are kept as graph
// bindings.
func Load(r io.Reader, format Format) (*graph.Graph, error) {
	var rf rdf.Format
	switch format {
	case FormatTurtle:
		rf = rdf.Turtle
	case FormatNTriples:
		rf = rdf.NTriples
	case FormatRDFXML:
		rf = rdf.RDFXML
	default:
		return nil, fmt.Errorf("cannot load format: %s", format)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}

	g := graph.New()
	var decls *regexp.Regexp
	switch format {
	case FormatTurtle:
		decls = prefixDecl
	case FormatRDFXML:
		decls = xmlnsDecl
	}
	if decls != nil {
		for _, m := range decls.FindAllSubmatch(data, -1) {
			if len(m[1]) > 0 {
				g.Bind(string(m[1]), string(m[2]))
			}
		}
	}

	dec := rdf.NewTripleDecoder(bytes.NewReader(data), rf)
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", format, err)
		}
		g.Add(fromRDF(t))
	}
	return g, nil
}

// LoadFile loads a graph file, inferring the format from its extension.
func LoadFile(path string) (*graph.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer f.Close()

	g, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}

// Merge loads every file and combines them into one graph. Prefixes bound
// by earlier files take precedence.
func Merge(paths ...string) (*graph.Graph, error) {
	out := graph.New()
	for _, p := range paths {
		g, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		out.Merge(g)
	}
	return out, nil
}
