package rdf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

const (
	xsdString     = "http://www.w3.org/2001/XMLSchema#string"
	rdfLangString = rdfXMLNS + "langString"
	nquadsFormat  = "application/n-quads"
)

// jsonldDecoder converts a whole JSON-LD document to triples with json-gold on
// the first call to Next. Named graphs are flattened into one triple stream.
type jsonldDecoder struct {
	reader io.Reader
	opts   Options
	queue  []Triple
	loaded bool
	err    error
}

func newJSONLDDecoder(r io.Reader, opts Options) Reader {
	return &jsonldDecoder{reader: r, opts: opts}
}

func (d *jsonldDecoder) Next() (Triple, error) {
	if d.err != nil {
		return Triple{}, d.err
	}
	if !d.loaded {
		d.loaded = true
		if err := d.load(); err != nil {
			d.err = wrapParseError(FormatJSONLD, "", 0, err)
			return Triple{}, d.err
		}
	}
	if len(d.queue) == 0 {
		return Triple{}, io.EOF
	}
	next := d.queue[0]
	d.queue = d.queue[1:]
	return next, nil
}

func (d *jsonldDecoder) Close() error {
	return nil
}

func (d *jsonldDecoder) load() error {
	var doc interface{}
	if err := json.NewDecoder(d.reader).Decode(&doc); err != nil {
		return fmt.Errorf("jsonld: %w", err)
	}
	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(doc, newJSONGoldOptions(d.opts))
	if err != nil {
		return fmt.Errorf("jsonld: %w", err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}

	graphNames := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		graphNames = append(graphNames, name)
	}
	sort.Strings(graphNames)
	for _, name := range graphNames {
		for _, quad := range dataset.Graphs[name] {
			triple, err := tripleFromJSONGold(quad)
			if err != nil {
				return err
			}
			d.queue = append(d.queue, triple)
		}
	}
	return nil
}

func tripleFromJSONGold(quad *ld.Quad) (Triple, error) {
	subject := termFromJSONGold(quad.Subject)
	if subject == nil {
		return Triple{}, errors.New("jsonld: unsupported subject")
	}
	if subject.Kind() == TermLiteral {
		return Triple{}, ErrLiteralSubject
	}
	predicate, ok := termFromJSONGold(quad.Predicate).(IRI)
	if !ok {
		return Triple{}, errors.New("jsonld: predicate must be an IRI")
	}
	object := termFromJSONGold(quad.Object)
	if object == nil {
		return Triple{}, errors.New("jsonld: unsupported object")
	}
	return Triple{S: subject, P: predicate, O: object}, nil
}

func termFromJSONGold(node ld.Node) Term {
	switch value := node.(type) {
	case ld.IRI:
		return IRI{Value: value.Value}
	case ld.BlankNode:
		return BlankNode{ID: strings.TrimPrefix(value.Attribute, "_:")}
	case ld.Literal:
		literal := Literal{Lexical: value.Value, Lang: value.Language}
		if value.Datatype != "" && value.Datatype != xsdString && value.Datatype != rdfLangString {
			literal.Datatype = IRI{Value: value.Datatype}
		}
		return literal
	default:
		return nil
	}
}

// jsonldEncoder buffers triples and writes one expanded JSON-LD document on Close.
type jsonldEncoder struct {
	writer io.Writer
	opts   Options
	lines  strings.Builder
	closed bool
}

func newJSONLDEncoder(w io.Writer, opts Options) Writer {
	return &jsonldEncoder{writer: w, opts: opts}
}

func (e *jsonldEncoder) Write(t Triple) error {
	if e.closed {
		return errors.New("jsonld: writer closed")
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return errors.New("jsonld: missing statement fields")
	}
	if t.S.Kind() == TermLiteral {
		return ErrLiteralSubject
	}
	e.lines.WriteString(t.String())
	e.lines.WriteString(" .\n")
	return nil
}

// Flush is a no-op: JSON-LD output is produced as a single document on Close.
func (e *jsonldEncoder) Flush() error {
	return nil
}

func (e *jsonldEncoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	proc := ld.NewJsonLdProcessor()
	goldOpts := newJSONGoldOptions(e.opts)
	goldOpts.Format = nquadsFormat
	doc, err := proc.FromRDF(e.lines.String(), goldOpts)
	if err != nil {
		return fmt.Errorf("jsonld: %w", err)
	}
	encoder := json.NewEncoder(e.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// DocumentLoader resolves remote contexts/documents.
type DocumentLoader interface {
	LoadDocument(ctx context.Context, iri string) (RemoteDocument, error)
}

// RemoteDocument represents a fetched JSON-LD document.
type RemoteDocument struct {
	DocumentURL string
	Document    interface{}
	ContextURL  string
}

// jsonGoldDocumentLoader adapts a DocumentLoader to json-gold and stops
// remote loads once ctx is done.
type jsonGoldDocumentLoader struct {
	ctx   context.Context
	inner DocumentLoader
}

func (l jsonGoldDocumentLoader) LoadDocument(iri string) (*ld.RemoteDocument, error) {
	ctx := l.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.inner == nil {
		return ld.NewDefaultDocumentLoader(nil).LoadDocument(iri)
	}
	remote, err := l.inner.LoadDocument(ctx, iri)
	if err != nil {
		return nil, err
	}
	return &ld.RemoteDocument{
		DocumentURL: remote.DocumentURL,
		Document:    remote.Document,
		ContextURL:  remote.ContextURL,
	}, nil
}

func newJSONGoldOptions(opts Options) *ld.JsonLdOptions {
	goldOpts := ld.NewJsonLdOptions(opts.BaseIRI)
	if opts.BaseIRI != "" {
		goldOpts.Base = opts.BaseIRI
	}
	goldOpts.DocumentLoader = jsonGoldDocumentLoader{ctx: opts.Context, inner: opts.DocumentLoader}
	return goldOpts
}
