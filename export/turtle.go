package export

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/c360studio/semlink/graph"
)

// localName matches local parts safe to write as prefixed names.
var localName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// TurtleWriter writes a graph in Turtle, grouping statements by subject and
// compacting IRIs against the bound prefixes.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a Turtle writer for the given prefix bindings.
func NewTurtleWriter(prefixes map[string]string) *TurtleWriter {
	p := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		p[k] = v
	}
	return &TurtleWriter{prefixes: p}
}

// SetPrefix sets a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	// Sort prefixes for consistent output
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix]))
	}
	w.sb.WriteString("\n")
}

// WriteGraph writes every statement of g, subjects in first-seen order.
// rdf:type statements come first and are written as "a".
func (w *TurtleWriter) WriteGraph(g *graph.Graph) {
	var subjects []string
	bySubject := make(map[string][]graph.Triple)
	for _, t := range g.Triples() {
		if _, ok := bySubject[t.Subject]; !ok {
			subjects = append(subjects, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}

	for _, s := range subjects {
		w.writeSubject(s, bySubject[s])
	}
}

func (w *TurtleWriter) writeSubject(subject string, triples []graph.Triple) {
	var predicates []string
	objects := make(map[string][]graph.Term)
	for _, t := range triples {
		if _, ok := objects[t.Predicate]; !ok {
			predicates = append(predicates, t.Predicate)
		}
		objects[t.Predicate] = append(objects[t.Predicate], t.Object)
	}
	sort.SliceStable(predicates, func(i, j int) bool {
		return predicates[i] == graph.RDFType && predicates[j] != graph.RDFType
	})

	w.sb.WriteString(w.subject(subject))
	w.sb.WriteString("\n")
	for i, p := range predicates {
		terminator := " ;"
		if i == len(predicates)-1 {
			terminator = " ."
		}
		pred := w.iri(p)
		if p == graph.RDFType {
			pred = "a"
		}
		objs := make([]string, len(objects[p]))
		for j, o := range objects[p] {
			objs[j] = w.term(o)
		}
		w.sb.WriteString(fmt.Sprintf("    %s %s%s\n", pred, strings.Join(objs, ", "), terminator))
	}
	w.sb.WriteString("\n")
}

func (w *TurtleWriter) subject(s string) string {
	if graph.IsBlankLabel(s) {
		return s
	}
	return w.iri(s)
}

// iri returns a prefixed name when a bound namespace covers iri with a
// safe local part, the longest namespace winning, else <iri>.
func (w *TurtleWriter) iri(iri string) string {
	best, bestNS := "", ""
	for prefix, ns := range w.prefixes {
		if len(ns) <= len(bestNS) || !strings.HasPrefix(iri, ns) {
			continue
		}
		if local := iri[len(ns):]; localName.MatchString(local) {
			best, bestNS = prefix+":"+local, ns
		}
	}
	if best != "" {
		return best
	}
	return "<" + escapeIRI(iri) + ">"
}

func (w *TurtleWriter) term(t graph.Term) string {
	switch t.Kind {
	case graph.KindIRI:
		return w.iri(t.Value)
	case graph.KindBlank:
		return t.Value
	default:
		s := quote(t.Value)
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^" + w.iri(t.Datatype)
		}
		return s
	}
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

// WriteTo writes the accumulated output to out.
func (w *TurtleWriter) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, w.sb.String())
	return int64(n), err
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quote(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}

var iriEscaper = strings.NewReplacer(
	`<`, `%3C`,
	`>`, `%3E`,
	`"`, `%22`,
	` `, `%20`,
	`{`, `%7B`,
	`}`, `%7D`,
	`|`, `%7C`,
	`\`, `%5C`,
	"^", `%5E`,
	"`", `%60`,
)

func escapeIRI(s string) string {
	return iriEscaper.Replace(s)
}
