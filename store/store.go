// Package store is an in-memory triple store whose nodes live in an arena and
// are addressed by NodeID handles.
//
// Anonymous nodes have no content identity: two blank nodes are the same node
// only when they share a NodeID. Stores created with Derive share the arena of
// their parent, so closures and decomposition layers can hold triples of the
// source ontology without copying or renaming nodes.
//
// A store is safe for concurrent readers once it is fully loaded. Writers need
// external synchronization.
package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/geoknoesis/owl-modules/rdf"
)

var (
	// ErrLiteralSubject indicates a literal in subject position.
	ErrLiteralSubject = errors.New("store: literal not allowed as subject")
	// ErrUnsupportedTerm indicates a term type the store cannot hold.
	ErrUnsupportedTerm = errors.New("store: unsupported term")
	// ErrForeignArena indicates a merge between stores that do not share nodes.
	ErrForeignArena = errors.New("store: stores do not share an arena")
)

// Triple is a statement over arena handles.
type Triple struct {
	S, P, O NodeID
}

type predicateObject struct {
	p, o NodeID
}

// Store is a set of triples with subject and predicate/object indexes.
type Store struct {
	arena     *arena
	triples   []Triple
	set       map[Triple]struct{}
	bySubject map[NodeID][]Triple
	byPO      map[predicateObject][]NodeID
	blanks    map[string]NodeID
}

// New returns an empty store with its own arena.
func New() *Store {
	return newStore(newArena())
}

func newStore(a *arena) *Store {
	return &Store{
		arena:     a,
		set:       make(map[Triple]struct{}),
		bySubject: make(map[NodeID][]Triple),
		byPO:      make(map[predicateObject][]NodeID),
	}
}

// Derive returns an empty store that shares the node arena of s.
func (s *Store) Derive() *Store {
	return newStore(s.arena)
}

// SharesArena reports whether s and other address the same nodes.
func (s *Store) SharesArena(other *Store) bool {
	return other != nil && s.arena == other.arena
}

// IRI interns a named identifier.
func (s *Store) IRI(value string) NodeID {
	return s.arena.iri(value)
}

// Literal interns a literal.
func (s *Store) Literal(lexical, datatype, lang string) NodeID {
	return s.arena.literal(lexical, datatype, lang)
}

// Blank allocates a fresh anonymous node.
func (s *Store) Blank() NodeID {
	return s.arena.blank()
}

// Lookup returns the node of an already interned IRI, or NoNode.
func (s *Store) Lookup(iri string) NodeID {
	return s.arena.lookup(iri)
}

// Node returns the arena record for id.
func (s *Store) Node(id NodeID) (Node, bool) {
	return s.arena.node(id)
}

// Kind returns the kind of id, or zero when id is unknown.
func (s *Store) Kind(id NodeID) NodeKind {
	n, _ := s.arena.node(id)
	return n.Kind
}

// IsBlank reports whether id is an anonymous node.
func (s *Store) IsBlank(id NodeID) bool {
	return s.Kind(id) == KindBlank
}

// Label returns the string form of a node: the IRI, the literal's lexical
// form, or "_:b<id>" for anonymous nodes.
func (s *Store) Label(id NodeID) string {
	n, ok := s.arena.node(id)
	if !ok {
		return ""
	}
	if n.Kind == KindBlank {
		return "_:" + blankLabel(id)
	}
	return n.Value
}

// Term converts a node back to an rdf.Term. Blank nodes are labelled b<id>.
func (s *Store) Term(id NodeID) rdf.Term {
	n, ok := s.arena.node(id)
	if !ok {
		return nil
	}
	switch n.Kind {
	case KindIRI:
		return rdf.IRI{Value: n.Value}
	case KindBlank:
		return rdf.BlankNode{ID: blankLabel(id)}
	case KindLiteral:
		lit := rdf.Literal{Lexical: n.Value, Lang: n.Lang}
		if n.Datatype != "" {
			lit.Datatype = rdf.IRI{Value: n.Datatype}
		}
		return lit
	default:
		return nil
	}
}

// RDF converts t to an rdf.Triple.
func (s *Store) RDF(t Triple) rdf.Triple {
	pred, _ := s.Term(t.P).(rdf.IRI)
	return rdf.Triple{S: s.Term(t.S), P: pred, O: s.Term(t.O)}
}

// Add inserts t and reports whether it was new.
func (s *Store) Add(t Triple) bool {
	if _, ok := s.set[t]; ok {
		return false
	}
	s.set[t] = struct{}{}
	s.triples = append(s.triples, t)
	s.bySubject[t.S] = append(s.bySubject[t.S], t)
	key := predicateObject{p: t.P, o: t.O}
	s.byPO[key] = append(s.byPO[key], t.S)
	return true
}

// AddTerms interns the terms and adds the triple. Blank node labels are
// scoped to s: the same label always yields the same node in this store.
func (s *Store) AddTerms(subj rdf.Term, pred rdf.IRI, obj rdf.Term) error {
	if s.blanks == nil {
		s.blanks = make(map[string]NodeID)
	}
	_, err := s.addTerms(s.blanks, subj, pred, obj)
	return err
}

func (s *Store) addTerms(scope map[string]NodeID, subj rdf.Term, pred rdf.IRI, obj rdf.Term) (bool, error) {
	if subj != nil && subj.Kind() == rdf.TermLiteral {
		return false, ErrLiteralSubject
	}
	if pred.Value == "" {
		return false, fmt.Errorf("%w: empty predicate", ErrUnsupportedTerm)
	}
	sid, err := s.intern(scope, subj)
	if err != nil {
		return false, err
	}
	oid, err := s.intern(scope, obj)
	if err != nil {
		return false, err
	}
	return s.Add(Triple{S: sid, P: s.IRI(pred.Value), O: oid}), nil
}

func (s *Store) intern(scope map[string]NodeID, term rdf.Term) (NodeID, error) {
	switch t := term.(type) {
	case rdf.IRI:
		return s.IRI(t.Value), nil
	case rdf.BlankNode:
		if id, ok := scope[t.ID]; ok {
			return id, nil
		}
		id := s.Blank()
		scope[t.ID] = id
		return id, nil
	case rdf.Literal:
		return s.Literal(t.Lexical, t.Datatype.Value, t.Lang), nil
	default:
		return NoNode, fmt.Errorf("%w: %T", ErrUnsupportedTerm, term)
	}
}

// Has reports whether t is in the store.
func (s *Store) Has(t Triple) bool {
	_, ok := s.set[t]
	return ok
}

// Outgoing returns the triples whose subject is id, in insertion order.
// The slice must not be modified.
func (s *Store) Outgoing(id NodeID) []Triple {
	return s.bySubject[id]
}

// Objects returns the objects of (subject, pred, ?) in insertion order.
func (s *Store) Objects(subject, pred NodeID) []NodeID {
	var out []NodeID
	for _, t := range s.bySubject[subject] {
		if t.P == pred {
			out = append(out, t.O)
		}
	}
	return out
}

// Object returns the first object of (subject, pred, ?), or NoNode.
func (s *Store) Object(subject, pred NodeID) NodeID {
	for _, t := range s.bySubject[subject] {
		if t.P == pred {
			return t.O
		}
	}
	return NoNode
}

// Subjects returns the subjects of (?, pred, obj) in insertion order.
// The slice must not be modified.
func (s *Store) Subjects(pred, obj NodeID) []NodeID {
	return s.byPO[predicateObject{p: pred, o: obj}]
}

// Len returns the number of triples.
func (s *Store) Len() int {
	return len(s.triples)
}

// Triples returns the triples in insertion order. The slice must not be modified.
func (s *Store) Triples() []Triple {
	return s.triples
}

// Sorted returns a copy of the triples ordered by their N-Triples rendering.
func (s *Store) Sorted() []Triple {
	type keyed struct {
		key string
		t   Triple
	}
	rows := make([]keyed, len(s.triples))
	for i, t := range s.triples {
		rows[i] = keyed{key: s.RDF(t).String(), t: t}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })
	out := make([]Triple, len(rows))
	for i, row := range rows {
		out[i] = row.t
	}
	return out
}

// Merge adds every triple of other to s. Both stores must share an arena.
func (s *Store) Merge(other *Store) error {
	if other == nil {
		return nil
	}
	if !s.SharesArena(other) {
		return ErrForeignArena
	}
	for _, t := range other.triples {
		s.Add(t)
	}
	return nil
}

// Nodes returns every distinct subject and object of the store in first-seen order.
func (s *Store) Nodes() []NodeID {
	seen := make(map[NodeID]struct{}, len(s.bySubject))
	var out []NodeID
	visit := func(id NodeID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, t := range s.triples {
		visit(t.S)
		visit(t.O)
	}
	return out
}
