package export

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Format names an RDF serialization.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatJSONLD   Format = "jsonld"
	FormatRDFXML   Format = "rdfxml"
)

// FormatInfo describes a serialization: how it is named on the command
// line, which file extensions map to it and whether Export can write it and
// Load read it.
type FormatInfo struct {
	Name       Format
	MIMEType   string
	Extensions []string // first entry is used when writing
	Aliases    []string
	Writable   bool
	Readable   bool
}

// Extension is the preferred file extension, dot included.
func (i FormatInfo) Extension() string {
	if len(i.Extensions) == 0 {
		return ""
	}
	return i.Extensions[0]
}

// FormatRegistry lists the serializations the exporter knows.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:       FormatTurtle,
		MIMEType:   "text/turtle",
		Extensions: []string{".ttl", ".turtle", ".n3"},
		Aliases:    []string{"ttl"},
		Writable:   true,
		Readable:   true,
	},
	FormatNTriples: {
		Name:       FormatNTriples,
		MIMEType:   "application/n-triples",
		Extensions: []string{".nt"},
		Aliases:    []string{"n-triples", "nt"},
		Writable:   true,
		Readable:   true,
	},
	FormatJSONLD: {
		Name:       FormatJSONLD,
		MIMEType:   "application/ld+json",
		Extensions: []string{".jsonld", ".json"},
		Aliases:    []string{"json-ld"},
		Writable:   true,
	},
	FormatRDFXML: {
		Name:       FormatRDFXML,
		MIMEType:   "application/rdf+xml",
		Extensions: []string{".rdf", ".owl", ".xml"},
		Aliases:    []string{"rdf/xml", "rdf", "owl", "xml"},
		Readable:   true,
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat accepts a format name or one of its aliases ("ttl", "nt", "json-ld").
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, info := range FormatRegistry {
		if string(f) == name || slices.Contains(info.Aliases, name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// FormatFromPath infers a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, info := range FormatRegistry {
		if slices.Contains(info.Extensions, ext) {
			return f, nil
		}
	}
	return "", fmt.Errorf("cannot infer RDF format from %q", path)
}
