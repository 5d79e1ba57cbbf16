package owl

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/owl-modules/rdf"
	"github.com/geoknoesis/owl-modules/store"
)

var prefixes = map[string]string{
	"ex":   "http://example.org/",
	"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
	"owl":  "http://www.w3.org/2002/07/owl#",
}

// expand turns "ex:A rdfs:subClassOf _:x" lines into N-Triples.
// Literal tokens must not contain spaces.
func expand(lines ...string) string {
	var b strings.Builder
	for _, line := range lines {
		for i, tok := range strings.Fields(line) {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(expandToken(tok))
		}
		b.WriteString(" .\n")
	}
	return b.String()
}

func expandToken(tok string) string {
	if strings.HasPrefix(tok, "_:") || strings.HasPrefix(tok, "\"") || strings.HasPrefix(tok, "<") {
		return tok
	}
	if prefix, local, ok := strings.Cut(tok, ":"); ok {
		if ns, known := prefixes[prefix]; known {
			return "<" + ns + local + ">"
		}
	}
	return tok
}

func iri(curie string) string {
	return strings.Trim(expandToken(curie), "<>")
}

func load(t *testing.T, lines ...string) *store.Store {
	t.Helper()
	r, err := rdf.NewReader(strings.NewReader(expand(lines...)), rdf.FormatNTriples)
	require.NoError(t, err)
	s := store.New()
	_, err = store.Load(context.Background(), s, r)
	require.NoError(t, err)
	return s
}

func node(t *testing.T, s *store.Store, curie string) store.NodeID {
	t.Helper()
	id := s.Lookup(iri(curie))
	require.NotEqual(t, store.NoNode, id, curie)
	return id
}

// rendered returns the triples of s as sorted N-Triples strings.
func rendered(s *store.Store) []string {
	out := make([]string, 0, s.Len())
	for _, t := range s.Triples() {
		out = append(out, s.RDF(t).String())
	}
	sort.Strings(out)
	return out
}

// line renders one expanded triple without the trailing dot.
func line(l string) string {
	return strings.TrimSuffix(strings.TrimSpace(expand(l)), " .")
}

func lines(ls ...string) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = line(l)
	}
	sort.Strings(out)
	return out
}

func requireSubset(t *testing.T, sub, super *store.Store) {
	t.Helper()
	for _, tr := range sub.Triples() {
		require.True(t, super.Has(tr), "triple %s not in source", super.RDF(tr))
	}
}
