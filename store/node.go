package store

import (
	"fmt"
	"strconv"
	"sync"
)

// NodeID addresses a node in a store's arena. The zero value is NoNode.
type NodeID uint32

// NoNode is returned by lookups that find nothing.
const NoNode NodeID = 0

// NodeKind identifies the variant of a Node.
type NodeKind uint8

const (
	// KindIRI is a named identifier.
	KindIRI NodeKind = iota + 1
	// KindBlank is an anonymous node. Its identity is its NodeID.
	KindBlank
	// KindLiteral is a literal value.
	KindLiteral
)

func (k NodeKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Node is the arena record behind a NodeID.
type Node struct {
	Kind     NodeKind
	Value    string // IRI, literal lexical form, empty for blank nodes
	Datatype string
	Lang     string
}

type literalKey struct {
	lexical  string
	datatype string
	lang     string
}

// arena owns every node of a family of stores. IRIs and literals are interned
// by content, blank nodes are allocated fresh on every request.
type arena struct {
	mu       sync.RWMutex
	nodes    []Node
	iris     map[string]NodeID
	literals map[literalKey]NodeID
}

func newArena() *arena {
	return &arena{
		nodes:    []Node{{}},
		iris:     make(map[string]NodeID),
		literals: make(map[literalKey]NodeID),
	}
}

func (a *arena) iri(value string) NodeID {
	a.mu.RLock()
	id, ok := a.iris[value]
	a.mu.RUnlock()
	if ok {
		return id
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if id, ok := a.iris[value]; ok {
		return id
	}
	id = a.appendLocked(Node{Kind: KindIRI, Value: value})
	a.iris[value] = id
	return id
}

func (a *arena) literal(lexical, datatype, lang string) NodeID {
	key := literalKey{lexical: lexical, datatype: datatype, lang: lang}
	a.mu.RLock()
	id, ok := a.literals[key]
	a.mu.RUnlock()
	if ok {
		return id
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if id, ok := a.literals[key]; ok {
		return id
	}
	id = a.appendLocked(Node{Kind: KindLiteral, Value: lexical, Datatype: datatype, Lang: lang})
	a.literals[key] = id
	return id
}

func (a *arena) blank() NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.appendLocked(Node{Kind: KindBlank})
}

func (a *arena) appendLocked(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

func (a *arena) lookup(value string) NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.iris[value]
}

func (a *arena) node(id NodeID) (Node, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if id == NoNode || int(id) >= len(a.nodes) {
		return Node{}, false
	}
	return a.nodes[id], true
}

func blankLabel(id NodeID) string {
	return "b" + strconv.FormatUint(uint64(id), 10)
}
