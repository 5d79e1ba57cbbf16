package owl

import "errors"

var (
	// ErrMalformedCollection indicates an RDF list with a cycle in its
	// rdf:rest chain, or, in strict mode, a list that does not end in rdf:nil.
	ErrMalformedCollection = errors.New("owl: malformed collection")
	// ErrCyclicExpression indicates an anonymous node that contains itself.
	ErrCyclicExpression = errors.New("owl: cyclic anonymous expression")
	// ErrUnknownNode indicates a NodeID that is not part of the store.
	ErrUnknownNode = errors.New("owl: unknown node")
)
