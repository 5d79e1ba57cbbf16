package rdf

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies RDF serialization formats.
type Format string

const (
	// FormatAuto requests detection from the input bytes.
	FormatAuto     Format = ""
	FormatNTriples Format = "ntriples"
	FormatRDFXML   Format = "rdfxml"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return FormatAuto, true
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, true
	case "rdfxml", "rdf", "xml", "owl":
		return FormatRDFXML, true
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// FormatFromPath infers the format from a filename extension.
// A trailing compression suffix must be removed by the caller.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return FormatNTriples, nil
	case ".owl", ".rdf", ".xml":
		return FormatRDFXML, nil
	case ".jsonld", ".json":
		return FormatJSONLD, nil
	default:
		return FormatAuto, fmt.Errorf("%w: no format for path %s", ErrUnsupportedFormat, path)
	}
}

// Extension returns the canonical file extension (with dot) for a format.
func (f Format) Extension() string {
	switch f {
	case FormatNTriples:
		return ".nt"
	case FormatRDFXML:
		return ".owl"
	case FormatJSONLD:
		return ".jsonld"
	default:
		return ""
	}
}

// MIMEType returns the standard media type for a format.
func (f Format) MIMEType() string {
	switch f {
	case FormatNTriples:
		return "application/n-triples"
	case FormatRDFXML:
		return "application/rdf+xml"
	case FormatJSONLD:
		return "application/ld+json"
	default:
		return ""
	}
}
