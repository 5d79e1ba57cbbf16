// Package rdf provides a compact RDF triple model with streaming readers and writers.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// It is the I/O layer of the ontology modularizer and focuses on the formats
// ontologies are distributed in:
//   - Decode: NewReader() returns a pull-style reader, Parse() a push-style helper.
//   - Encode: NewWriter() returns a push-style writer.
//
// Supported formats:
//   - N-Triples (read and write)
//   - RDF/XML, the subset emitted by OWL tooling (read and write)
//   - JSON-LD through json-gold (read and write)
//
// Example (decoding triples):
//
//	dec, err := rdf.NewReader(strings.NewReader(input), rdf.FormatNTriples)
//	if err != nil {
//	    // handle error
//	}
//	defer dec.Close()
//
//	for {
//	    triple, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process triple.S, triple.P, triple.O
//	}
//
// Passing FormatAuto detects the format from the first bytes of the input.
// For unsupported formats, NewReader and NewWriter return ErrUnsupportedFormat.
//
// Blank node identifiers are document scoped. Consumers that merge several
// documents (see package store) allocate a fresh node per document and label.
package rdf
