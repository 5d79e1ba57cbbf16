package rdf

import (
	"fmt"
	"net/url"
)

// ValidateIRI reports whether iri is an absolute IRI as required by
// N-Triples: a scheme starting with a letter, no whitespace or control
// characters, and none of the characters that must be percent-encoded.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("empty IRI")
	}
	for i, r := range iri {
		if r <= 0x20 {
			return fmt.Errorf("invalid control or space character at position %d in IRI: %q", i, iri)
		}
		switch r {
		case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
			return fmt.Errorf("invalid character '%c' at position %d in IRI (should be percent-encoded): %s", r, i, iri)
		}
	}

	parsed, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("invalid IRI syntax: %w", err)
	}
	if parsed.Scheme == "" {
		return fmt.Errorf("relative IRI: %s", iri)
	}
	first := parsed.Scheme[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		return fmt.Errorf("scheme must start with a letter: %s", iri)
	}
	return nil
}
