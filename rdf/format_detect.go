package rdf

import (
	"bytes"
	"io"
	"strings"
)

const formatDetectionBufferSize = 512

// DetectFormat attempts to detect the RDF format from a sample of the input.
// It returns the detected format and whether detection was successful.
func DetectFormat(sample []byte) (Format, bool) {
	text := strings.TrimSpace(string(sample))
	if text == "" {
		return FormatAuto, false
	}

	// JSON-LD documents start with an object or an array.
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return FormatJSONLD, true
	}

	// RDF/XML starts with an XML declaration, a comment or the rdf:RDF root.
	if strings.HasPrefix(text, "<?xml") || strings.HasPrefix(text, "<!--") ||
		strings.HasPrefix(text, "<rdf:RDF") || strings.HasPrefix(text, "<!DOCTYPE") {
		return FormatRDFXML, true
	}

	// N-Triples statements start with an IRI, a blank node or a comment line.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "<") || strings.HasPrefix(line, "_:") {
			return FormatNTriples, true
		}
		break
	}
	return FormatAuto, false
}

// detectFormat reads a sample from r and returns the detected format together
// with a reader that replays the buffered bytes.
func detectFormat(r io.Reader) (Format, io.Reader, bool) {
	buf := make([]byte, formatDetectionBufferSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return FormatAuto, r, false
	}
	sample := buf[:n]
	replay := io.MultiReader(bytes.NewReader(sample), r)
	format, ok := DetectFormat(sample)
	return format, replay, ok
}
