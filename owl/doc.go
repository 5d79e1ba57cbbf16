// Package owl extracts modules and layers from OWL ontologies held in a
// store.Store.
//
// Every operation is built on one primitive, the closure of a node set: all
// triples reachable by following outgoing edges, expanding through anonymous
// nodes and declared classes and properties while never expanding the builtin
// vocabulary (see package vocab).
//
//   - Extractor computes closures.
//   - Modularizer seeds a closure with a signature of IRIs.
//   - Decomposer splits an ontology into RBox, Taxonomy and Schema layers.
//   - Converter turns anonymous class expressions into nested Values.
//
// Results are stores derived from the input, so they share its node arena and
// anonymous node identities. No operation mutates its input store.
package owl
