package owl

import (
	"fmt"
	"slices"

	"github.com/geoknoesis/owl-modules/store"
	"github.com/geoknoesis/owl-modules/vocab"
)

// Converter turns nodes into nested Values. Named identifiers and literals
// become scalars; anonymous nodes become predicate maps in which collection
// predicates (owl:unionOf and friends) hold the items of their RDF list.
type Converter struct {
	src  *store.Store
	opts options
}

// NewConverter returns a Converter reading from s.
func NewConverter(s *store.Store, opts ...Option) *Converter {
	return &Converter{src: s, opts: buildOptions(opts)}
}

// Convert returns the value of id.
func (c *Converter) Convert(id store.NodeID) (Value, error) {
	return c.convert(id, make(map[store.NodeID]struct{}), 1)
}

// List returns the items of the RDF list starting at head.
func (c *Converter) List(head store.NodeID) (Value, error) {
	return c.list(head, make(map[store.NodeID]struct{}), 1)
}

// Describe converts the outgoing triples of any node, named or anonymous,
// into a map value. Predicates listed in exclude are skipped.
func (c *Converter) Describe(id store.NodeID, exclude ...string) (Value, error) {
	if _, ok := c.src.Node(id); !ok {
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	path := map[store.NodeID]struct{}{id: {}}
	return c.describe(id, path, 1, exclude)
}

func (c *Converter) convert(id store.NodeID, path map[store.NodeID]struct{}, depth int) (Value, error) {
	n, ok := c.src.Node(id)
	if !ok {
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	if n.Kind != store.KindBlank {
		return Scalar(n.Value), nil
	}
	if _, cyclic := path[id]; cyclic {
		return Value{}, fmt.Errorf("%w: %s", ErrCyclicExpression, c.src.Label(id))
	}
	path[id] = struct{}{}
	defer delete(path, id)

	c.opts.logger.WithField("depth", depth).Debugf("converting anonymous node %s", c.src.Label(id))
	return c.describe(id, path, depth, nil)
}

func (c *Converter) describe(id store.NodeID, path map[store.NodeID]struct{}, depth int, exclude []string) (Value, error) {
	fields := NewPredicateMap()
	for _, t := range c.src.Outgoing(id) {
		pred := c.src.Label(t.P)
		if slices.Contains(exclude, pred) {
			continue
		}
		if vocab.IsCollectionPredicate(pred) {
			c.opts.logger.WithField("depth", depth+1).Debugf("found collection %s", pred)
			items, err := c.list(t.O, path, depth+1)
			if err != nil {
				return Value{}, err
			}
			fields.Set(pred, items)
			continue
		}
		v, err := c.convert(t.O, path, depth+1)
		if err != nil {
			return Value{}, err
		}
		fields.Append(pred, v)
	}
	return MapOf(fields), nil
}

// list walks rdf:first/rdf:rest links. A cell visited twice is a cycle.
func (c *Converter) list(head store.NodeID, path map[store.NodeID]struct{}, depth int) (Value, error) {
	first := c.src.Lookup(vocab.RDFFirst)
	rest := c.src.Lookup(vocab.RDFRest)
	null := c.src.Lookup(vocab.RDFNil)

	items := []Value{}
	visited := make(map[store.NodeID]struct{})
	cell := head
	for cell != store.NoNode && cell != null {
		if _, seen := visited[cell]; seen {
			return Value{}, fmt.Errorf("%w: cycle at %s", ErrMalformedCollection, c.src.Label(cell))
		}
		visited[cell] = struct{}{}

		if item := c.src.Object(cell, first); item != store.NoNode {
			v, err := c.convert(item, path, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		next := c.src.Object(cell, rest)
		if next == store.NoNode && c.opts.strict {
			return Value{}, fmt.Errorf("%w: %s does not end in rdf:nil", ErrMalformedCollection, c.src.Label(head))
		}
		cell = next
	}
	return ListOf(items...), nil
}
