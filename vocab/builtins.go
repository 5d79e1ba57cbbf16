package vocab

import "sort"

var builtins = map[string]struct{}{
	RDFType: {},

	RDFSDomain:        {},
	RDFSRange:         {},
	RDFSSubClassOf:    {},
	RDFSSubPropertyOf: {},
	RDFSLabel:         {},
	RDFSComment:       {},
	RDFSIsDefinedBy:   {},
	RDFSResource:      {},

	OWLThing:           {},
	OWLNothing:         {},
	OWLClass:           {},
	OWLNamedIndividual: {},

	OWLObjectProperty:       {},
	OWLDatatypeProperty:     {},
	OWLAnnotationProperty:   {},
	OWLTopObjectProperty:    {},
	OWLBottomObjectProperty: {},
	OWLTopDataProperty:      {},
	OWLBottomDataProperty:   {},

	OWLEquivalentClass:    {},
	OWLEquivalentProperty: {},
	OWLDisjointWith:       {},

	SchemaOrgThing: {},
	RDFResource:    {},
}

var collectionPredicates = map[string]struct{}{
	OWLUnionOf:               {},
	OWLIntersectionOf:        {},
	OWLOneOf:                 {},
	OWLAllDisjointClasses:    {},
	OWLAllDisjointProperties: {},
}

// DeclarationKinds are the rdf:type objects that make a referenced node part
// of a closure.
var DeclarationKinds = [...]string{OWLClass, OWLObjectProperty, OWLDatatypeProperty}

// IsBuiltin reports whether iri belongs to the builtin vocabulary.
func IsBuiltin(iri string) bool {
	_, ok := builtins[iri]
	return ok
}

// Builtins returns the builtin vocabulary in lexical order.
func Builtins() []string {
	out := make([]string, 0, len(builtins))
	for iri := range builtins {
		out = append(out, iri)
	}
	sort.Strings(out)
	return out
}

// IsCollectionPredicate reports whether the object of iri is an RDF list head.
func IsCollectionPredicate(iri string) bool {
	_, ok := collectionPredicates[iri]
	return ok
}
