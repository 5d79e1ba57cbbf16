// Package vocab holds the RDF, RDFS and OWL identifiers used by the ontology
// modularizer together with the builtin vocabulary table that closure
// computations never expand.
package vocab

// Namespaces.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// RDF terms.
const (
	RDFType     = RDFNamespace + "type"
	RDFFirst    = RDFNamespace + "first"
	RDFRest     = RDFNamespace + "rest"
	RDFNil      = RDFNamespace + "nil"
	RDFResource = RDFNamespace + "Resource"
)

// RDFS terms.
const (
	RDFSSubClassOf    = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"
	RDFSDomain        = RDFSNamespace + "domain"
	RDFSRange         = RDFSNamespace + "range"
	RDFSLabel         = RDFSNamespace + "label"
	RDFSComment       = RDFSNamespace + "comment"
	RDFSIsDefinedBy   = RDFSNamespace + "isDefinedBy"
	RDFSResource      = RDFSNamespace + "Resource"
)

// OWL entity kinds.
const (
	OWLClass              = OWLNamespace + "Class"
	OWLObjectProperty     = OWLNamespace + "ObjectProperty"
	OWLDatatypeProperty   = OWLNamespace + "DatatypeProperty"
	OWLAnnotationProperty = OWLNamespace + "AnnotationProperty"
	OWLNamedIndividual    = OWLNamespace + "NamedIndividual"
	OWLRestriction        = OWLNamespace + "Restriction"
)

// OWL top and bottom entities.
const (
	OWLThing                = OWLNamespace + "Thing"
	OWLNothing              = OWLNamespace + "Nothing"
	OWLTopObjectProperty    = OWLNamespace + "topObjectProperty"
	OWLBottomObjectProperty = OWLNamespace + "bottomObjectProperty"
	OWLTopDataProperty      = OWLNamespace + "topDataProperty"
	OWLBottomDataProperty   = OWLNamespace + "bottomDataProperty"
)

// OWL axiom predicates.
const (
	OWLEquivalentClass       = OWLNamespace + "equivalentClass"
	OWLEquivalentProperty    = OWLNamespace + "equivalentProperty"
	OWLDisjointWith          = OWLNamespace + "disjointWith"
	OWLUnionOf               = OWLNamespace + "unionOf"
	OWLIntersectionOf        = OWLNamespace + "intersectionOf"
	OWLOneOf                 = OWLNamespace + "oneOf"
	OWLAllDisjointClasses    = OWLNamespace + "AllDisjointClasses"
	OWLAllDisjointProperties = OWLNamespace + "AllDisjointProperties"
	OWLOnProperty            = OWLNamespace + "onProperty"
	OWLSomeValuesFrom        = OWLNamespace + "someValuesFrom"
	OWLAllValuesFrom         = OWLNamespace + "allValuesFrom"
)

// Aliases that some ontologies use as their top class.
const (
	SchemaOrgThing = "http://schema.org/Thing"
)
