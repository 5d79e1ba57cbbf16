package owl

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/geoknoesis/owl-modules/store"
	"github.com/geoknoesis/owl-modules/vocab"
)

// Layer names used in logs and metrics.
const (
	LayerRBox     = "rbox"
	LayerTaxonomy = "taxonomy"
	LayerSchema   = "schema"
)

// Layers is the result of a decomposition. Every layer is derived from the
// decomposed ontology. Layers may overlap.
type Layers struct {
	RBox     *store.Store
	Taxonomy *store.Store
	Schema   *store.Store
}

// Decomposer splits an ontology into role, taxonomy and schema layers.
type Decomposer struct {
	onto      *store.Store
	extractor *Extractor
	opts      options
	// sem bounds closures in flight across all layers.
	sem *semaphore.Weighted
}

// NewDecomposer returns a Decomposer over ontology. Unless overridden with
// WithExpandMode, its closures run in DescribeDeclared mode so that declared
// entities referenced from one layer are not pulled into it wholesale.
func NewDecomposer(ontology *store.Store, opts ...Option) *Decomposer {
	base := defaultOptions()
	base.mode = DescribeDeclared
	o := applyOptions(base, opts)
	return &Decomposer{
		onto:      ontology,
		extractor: &Extractor{src: ontology, opts: o},
		opts:      o,
		sem:       semaphore.NewWeighted(int64(o.workers)),
	}
}

// Decompose computes the three layers concurrently.
func (d *Decomposer) Decompose(ctx context.Context) (Layers, error) {
	var layers Layers
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		layers.RBox, err = d.RBox(ctx)
		return err
	})
	g.Go(func() (err error) {
		layers.Taxonomy, err = d.Taxonomy(ctx)
		return err
	})
	g.Go(func() (err error) {
		layers.Schema, err = d.Schema(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Layers{}, err
	}
	return layers, nil
}

// RBox returns the union of the closures of every declared object and
// datatype property outside the builtin vocabulary.
func (d *Decomposer) RBox(ctx context.Context) (*store.Store, error) {
	vt := resolveTerms(d.onto)
	var props []store.NodeID
	seen := make(map[store.NodeID]struct{})
	for _, kind := range []string{vocab.OWLObjectProperty, vocab.OWLDatatypeProperty} {
		for _, p := range d.declared(vt, kind) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			props = append(props, p)
		}
	}

	layer := d.onto.Derive()
	var mu sync.Mutex
	err := d.each(ctx, props, func(p store.NodeID) error {
		closure := d.extractor.Close(p)
		mu.Lock()
		defer mu.Unlock()
		return layer.Merge(closure)
	})
	if err != nil {
		return nil, err
	}
	d.logDone(LayerRBox, len(props), layer)
	return layer, nil
}

// Taxonomy returns the rdfs:subClassOf triples of every declared class
// outside the builtin vocabulary, plus the closure of anonymous superclasses.
func (d *Decomposer) Taxonomy(ctx context.Context) (*store.Store, error) {
	vt := resolveTerms(d.onto)
	subClassOf := d.onto.Lookup(vocab.RDFSSubClassOf)
	classes := d.declared(vt, vocab.OWLClass)

	layer := d.onto.Derive()
	if subClassOf == store.NoNode {
		d.logDone(LayerTaxonomy, len(classes), layer)
		return layer, nil
	}
	var mu sync.Mutex
	err := d.each(ctx, classes, func(c store.NodeID) error {
		part := d.onto.Derive()
		for _, t := range d.onto.Outgoing(c) {
			if t.P != subClassOf {
				continue
			}
			part.Add(t)
			if d.onto.IsBlank(t.O) {
				if err := part.Merge(d.extractor.Close(t.O)); err != nil {
					return err
				}
			}
		}
		mu.Lock()
		defer mu.Unlock()
		return layer.Merge(part)
	})
	if err != nil {
		return nil, err
	}
	d.logDone(LayerTaxonomy, len(classes), layer)
	return layer, nil
}

// Schema returns the non rdfs:subClassOf axioms of every named class outside
// the builtin vocabulary. The rdf:type triples of referenced objects are
// copied along, and anonymous objects are closed.
func (d *Decomposer) Schema(ctx context.Context) (*store.Store, error) {
	vt := resolveTerms(d.onto)
	subClassOf := d.onto.Lookup(vocab.RDFSSubClassOf)
	var classes []store.NodeID
	for _, c := range d.declared(vt, vocab.OWLClass) {
		if !d.onto.IsBlank(c) {
			classes = append(classes, c)
		}
	}

	layer := d.onto.Derive()
	var mu sync.Mutex
	err := d.each(ctx, classes, func(c store.NodeID) error {
		part := d.onto.Derive()
		for _, t := range d.onto.Outgoing(c) {
			if t.P == subClassOf {
				continue
			}
			part.Add(t)
			if vt.typ != store.NoNode {
				for _, k := range d.onto.Objects(t.O, vt.typ) {
					part.Add(store.Triple{S: t.O, P: vt.typ, O: k})
				}
			}
			if d.onto.IsBlank(t.O) {
				d.opts.logger.WithField("class", d.onto.Label(c)).Debug("closing anonymous schema object")
				if err := part.Merge(d.extractor.Close(t.O)); err != nil {
					return err
				}
			}
		}
		mu.Lock()
		defer mu.Unlock()
		return layer.Merge(part)
	})
	if err != nil {
		return nil, err
	}
	d.logDone(LayerSchema, len(classes), layer)
	return layer, nil
}

// declared returns the subjects of (?, rdf:type, kind) that are not builtin.
func (d *Decomposer) declared(vt terms, kind string) []store.NodeID {
	k := d.onto.Lookup(kind)
	if vt.typ == store.NoNode || k == store.NoNode {
		return nil
	}
	var out []store.NodeID
	for _, s := range d.onto.Subjects(vt.typ, k) {
		if !isBuiltin(d.onto, s) {
			out = append(out, s)
		}
	}
	return out
}

// each runs fn for every entity. Calls share the decomposer's worker budget
// with concurrently running layers. It stops at the first error or when ctx
// is done.
func (d *Decomposer) each(ctx context.Context, entities []store.NodeID, fn func(store.NodeID) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range entities {
		if err := d.sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer d.sem.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(e)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (d *Decomposer) logDone(layer string, entities int, result *store.Store) {
	d.opts.logger.WithFields(logrus.Fields{
		"layer":    layer,
		"entities": entities,
		"triples":  result.Len(),
	}).Debug("layer done")
}
