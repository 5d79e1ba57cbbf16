package export

import (
	"github.com/geoknoesis/owl-modules/owl"
	"github.com/geoknoesis/owl-modules/store"
	"github.com/geoknoesis/owl-modules/vocab"
)

// Keys of the role domain/range document entries.
const (
	KeyDomain = "domain"
	KeyRange  = "range"
)

// subjectsOf returns the distinct subjects of (?, rdf:type, kind).
func subjectsOf(s *store.Store, kind string) []store.NodeID {
	typ, k := s.Lookup(vocab.RDFType), s.Lookup(kind)
	if typ == store.NoNode || k == store.NoNode {
		return nil
	}
	return s.Subjects(typ, k)
}

// objectsOf returns the objects of (subject, pred, ?) without builtins.
func objectsOf(s *store.Store, subject store.NodeID, pred string) []store.NodeID {
	p := s.Lookup(pred)
	if p == store.NoNode {
		return nil
	}
	var out []store.NodeID
	for _, o := range s.Objects(subject, p) {
		if n, ok := s.Node(o); ok && n.Kind == store.KindIRI && vocab.IsBuiltin(n.Value) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// classesOf returns the declared classes of s, then the named subjects of
// rdfs:subClassOf that s does not declare. A decomposition taxonomy layer
// holds subClassOf triples without the class declarations.
func classesOf(s *store.Store) []store.NodeID {
	classes := subjectsOf(s, vocab.OWLClass)
	sub := s.Lookup(vocab.RDFSSubClassOf)
	if sub == store.NoNode {
		return classes
	}
	seen := make(map[store.NodeID]bool, len(classes))
	for _, c := range classes {
		seen[c] = true
	}
	for _, t := range s.Sorted() {
		if t.P != sub || seen[t.S] || s.Kind(t.S) != store.KindIRI {
			continue
		}
		seen[t.S] = true
		classes = append(classes, t.S)
	}
	return classes
}

func convertAll(c *owl.Converter, ids []store.NodeID) ([]owl.Value, error) {
	out := make([]owl.Value, 0, len(ids))
	for _, id := range ids {
		v, err := c.Convert(id)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// TaxonomyDocument maps every class of s to its converted superclasses.
// Builtin superclasses are dropped and classes without superclasses omitted.
func TaxonomyDocument(s *store.Store, opts ...owl.Option) (*Document, error) {
	c := owl.NewConverter(s, opts...)
	doc := NewDocument()
	for _, class := range classesOf(s) {
		supers, err := convertAll(c, objectsOf(s, class, vocab.RDFSSubClassOf))
		if err != nil {
			return nil, err
		}
		if len(supers) > 0 {
			doc.Put(s.Label(class), owl.ListOf(supers...))
		}
	}
	return doc, nil
}

// SchemaDocument maps every named, non builtin class to a map of its axioms
// other than rdfs:subClassOf.
func SchemaDocument(s *store.Store, opts ...owl.Option) (*Document, error) {
	c := owl.NewConverter(s, opts...)
	doc := NewDocument()
	for _, class := range subjectsOf(s, vocab.OWLClass) {
		n, _ := s.Node(class)
		if n.Kind != store.KindIRI || vocab.IsBuiltin(n.Value) {
			continue
		}
		v, err := c.Describe(class, vocab.RDFSSubClassOf)
		if err != nil {
			return nil, err
		}
		if v.Fields().Len() > 0 {
			doc.Put(n.Value, v)
		}
	}
	return doc, nil
}

// ClassAssertionsDocument maps every named individual to its asserted
// classes, excluding builtins.
func ClassAssertionsDocument(s *store.Store, opts ...owl.Option) (*Document, error) {
	c := owl.NewConverter(s, opts...)
	doc := NewDocument()
	for _, ind := range subjectsOf(s, vocab.OWLNamedIndividual) {
		classes, err := convertAll(c, objectsOf(s, ind, vocab.RDFType))
		if err != nil {
			return nil, err
		}
		if len(classes) > 0 {
			doc.Put(s.Label(ind), owl.ListOf(classes...))
		}
	}
	return doc, nil
}

// RoleDomainRangeDocument maps every object property to its converted domain
// and range. An absent domain or range defaults to owl:Thing.
func RoleDomainRangeDocument(s *store.Store, opts ...owl.Option) (*Document, error) {
	c := owl.NewConverter(s, opts...)
	doc := NewDocument()
	domain, rng := s.Lookup(vocab.RDFSDomain), s.Lookup(vocab.RDFSRange)
	for _, prop := range subjectsOf(s, vocab.OWLObjectProperty) {
		entry := owl.NewPredicateMap()
		for _, part := range []struct {
			key  string
			pred store.NodeID
		}{{KeyDomain, domain}, {KeyRange, rng}} {
			var targets []store.NodeID
			if part.pred != store.NoNode {
				targets = s.Objects(prop, part.pred)
			}
			values, err := convertAll(c, targets)
			if err != nil {
				return nil, err
			}
			if len(values) == 0 {
				values = []owl.Value{owl.Scalar(vocab.OWLThing)}
			}
			entry.Set(part.key, owl.ListOf(values...))
		}
		doc.Put(s.Label(prop), owl.MapOf(entry))
	}
	return doc, nil
}

// RoleHierarchyDocument maps every object property to its converted
// super-properties, excluding builtins. Properties without any are omitted.
func RoleHierarchyDocument(s *store.Store, opts ...owl.Option) (*Document, error) {
	c := owl.NewConverter(s, opts...)
	doc := NewDocument()
	for _, prop := range subjectsOf(s, vocab.OWLObjectProperty) {
		supers, err := convertAll(c, objectsOf(s, prop, vocab.RDFSSubPropertyOf))
		if err != nil {
			return nil, err
		}
		if len(supers) > 0 {
			doc.Put(s.Label(prop), owl.ListOf(supers...))
		}
	}
	return doc, nil
}

// ClassAssertionGraph returns the rdf:type triples of named individuals, the
// ABox part of an ontology that no decomposition layer holds.
func ClassAssertionGraph(s *store.Store) *store.Store {
	out := s.Derive()
	typ := s.Lookup(vocab.RDFType)
	for _, ind := range subjectsOf(s, vocab.OWLNamedIndividual) {
		for _, class := range s.Objects(ind, typ) {
			out.Add(store.Triple{S: ind, P: typ, O: class})
		}
	}
	return out
}
