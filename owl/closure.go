package owl

import (
	"github.com/sirupsen/logrus"

	"github.com/geoknoesis/owl-modules/store"
	"github.com/geoknoesis/owl-modules/vocab"
)

// Extractor computes closures over a source store.
type Extractor struct {
	src  *store.Store
	opts options
}

// NewExtractor returns an Extractor reading from s.
func NewExtractor(s *store.Store, opts ...Option) *Extractor {
	return &Extractor{src: s, opts: buildOptions(opts)}
}

// terms holds the vocabulary handles a closure needs. A term that never
// occurs in the arena resolves to store.NoNode.
type terms struct {
	typ   store.NodeID
	kinds [len(vocab.DeclarationKinds)]store.NodeID
}

func resolveTerms(s *store.Store) terms {
	t := terms{typ: s.Lookup(vocab.RDFType)}
	for i, kind := range vocab.DeclarationKinds {
		t.kinds[i] = s.Lookup(kind)
	}
	return t
}

// Close returns every triple reachable from seed. Each node is expanded at
// most once. The result shares the arena of the source store.
func (x *Extractor) Close(seed ...store.NodeID) *store.Store {
	result := x.src.Derive()
	vt := resolveTerms(x.src)

	frontier := newFrontier(x.opts.picker)
	for _, id := range seed {
		if id != store.NoNode {
			frontier.push(id)
		}
	}
	processed := make(map[store.NodeID]struct{})

	for frontier.len() > 0 {
		e := frontier.pop()
		processed[e] = struct{}{}
		x.opts.logger.WithField("node", x.src.Label(e)).Debug("processing")

		for _, t := range x.src.Outgoing(e) {
			result.Add(t)

			o := t.O
			if _, done := processed[o]; done || isBuiltin(x.src, o) {
				continue
			}
			if x.src.IsBlank(o) {
				frontier.push(o)
			}
			if vt.typ == store.NoNode {
				continue
			}
			for _, kind := range vt.kinds {
				if kind == store.NoNode {
					continue
				}
				decl := store.Triple{S: o, P: vt.typ, O: kind}
				if !x.src.Has(decl) {
					continue
				}
				switch x.opts.mode {
				case DescribeDeclared:
					result.Add(decl)
				default:
					frontier.push(o)
				}
			}
		}
	}

	if x.opts.observer != nil {
		x.opts.observer.ObserveClosure(len(processed), result.Len())
	}
	x.opts.logger.WithFields(logrus.Fields{
		"expanded": len(processed),
		"triples":  result.Len(),
	}).Debug("closure done")
	return result
}

// isBuiltin reports whether id is a named identifier of the builtin vocabulary.
func isBuiltin(s *store.Store, id store.NodeID) bool {
	n, ok := s.Node(id)
	return ok && n.Kind == store.KindIRI && vocab.IsBuiltin(n.Value)
}

// frontier is a set of pending nodes with a configurable pop order.
type frontier struct {
	items []store.NodeID
	index map[store.NodeID]int
	pick  func(n int) int
}

func newFrontier(pick func(n int) int) *frontier {
	return &frontier{index: make(map[store.NodeID]int), pick: pick}
}

func (f *frontier) len() int { return len(f.items) }

func (f *frontier) push(id store.NodeID) {
	if _, ok := f.index[id]; ok {
		return
	}
	f.index[id] = len(f.items)
	f.items = append(f.items, id)
}

func (f *frontier) pop() store.NodeID {
	last := len(f.items) - 1
	i := last
	if f.pick != nil {
		if p := f.pick(len(f.items)); p >= 0 && p <= last {
			i = p
		}
	}
	id := f.items[i]
	if i != last {
		f.items[i] = f.items[last]
		f.index[f.items[i]] = i
	}
	f.items = f.items[:last]
	delete(f.index, id)
	return id
}
