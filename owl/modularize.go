package owl

import (
	"bufio"
	"io"
	"strings"

	"github.com/geoknoesis/owl-modules/store"
)

// Modularizer extracts the module of an ontology around a signature.
type Modularizer struct {
	src       *store.Store
	extractor *Extractor
	opts      options
}

// NewModularizer returns a Modularizer over s. Closures default to ExpandDeclared.
func NewModularizer(s *store.Store, opts ...Option) *Modularizer {
	o := buildOptions(opts)
	return &Modularizer{src: s, extractor: &Extractor{src: s, opts: o}, opts: o}
}

// Modularize returns the closure of the named identifiers in signature.
// IRIs unknown to the store contribute nothing.
func (m *Modularizer) Modularize(signature ...string) *store.Store {
	seed := make([]store.NodeID, 0, len(signature))
	for _, iri := range signature {
		id := m.src.Lookup(iri)
		if id == store.NoNode {
			m.opts.logger.WithField("iri", iri).Debug("signature entity not in ontology")
			continue
		}
		seed = append(seed, id)
	}
	return m.extractor.Close(seed...)
}

// ModularizeNodes returns the closure of the given nodes.
func (m *Modularizer) ModularizeNodes(ids ...store.NodeID) *store.Store {
	return m.extractor.Close(ids...)
}

// ReadSignature reads one IRI per line. Blank lines and lines starting with
// '#' are skipped; angle brackets around an IRI are removed.
func ReadSignature(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSuffix(strings.TrimPrefix(line, "<"), ">")
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
