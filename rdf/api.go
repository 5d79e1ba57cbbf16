package rdf

import (
	"context"
	"io"
)

const (
	// DefaultMaxLineBytes bounds a single N-Triples line.
	DefaultMaxLineBytes = 1 << 20
	// DefaultMaxTriples disables the triple limit.
	DefaultMaxTriples = 0
)

// Reader streams RDF triples from an input.
type Reader interface {
	// Next returns the next triple, or io.EOF when the input is exhausted.
	Next() (Triple, error)
	Close() error
}

// Writer streams RDF triples to an output.
type Writer interface {
	Write(Triple) error
	Flush() error
	Close() error
}

// Handler processes triples in push mode.
type Handler func(Triple) error

// Option configures reader/writer behavior.
type Option func(*Options)

// Options configures parser/encoder behavior.
type Options struct {
	// Context for cancellation and timeouts
	Context context.Context

	// Security limits for untrusted input
	MaxLineBytes int
	MaxTriples   int64

	// BaseIRI resolves relative IRIs (RDF/XML rdf:ID, JSON-LD @base).
	BaseIRI string

	// DocumentLoader resolves remote JSON-LD contexts. Nil uses json-gold's
	// HTTP loader.
	DocumentLoader DocumentLoader
}

// NewReader creates a reader for the specified format.
// If format is FormatAuto, the format is detected from the first bytes of r.
func NewReader(r io.Reader, format Format, opts ...Option) (Reader, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if format == FormatAuto {
		detected, replay, ok := detectFormat(r)
		if !ok {
			return nil, ErrUnsupportedFormat
		}
		format = detected
		r = replay
	}

	var dec Reader
	switch format {
	case FormatNTriples:
		dec = newNTriplesDecoder(r, options)
	case FormatRDFXML:
		dec = newRDFXMLDecoder(r, options)
	case FormatJSONLD:
		dec = newJSONLDDecoder(r, options)
	default:
		return nil, ErrUnsupportedFormat
	}
	return &limitedReader{dec: dec, ctx: options.Context, max: options.MaxTriples}, nil
}

// Parse parses RDF from the reader and streams triples to the handler.
// If ctx is nil, context.Background() is used as the default.
func Parse(ctx context.Context, r io.Reader, format Format, handler Handler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts = append([]Option{OptContext(ctx)}, opts...)

	reader, err := NewReader(r, format, opts...)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		triple, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler(triple); err != nil {
			return err
		}
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...Option) (Writer, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	switch format {
	case FormatNTriples:
		return newNTriplesEncoder(w), nil
	case FormatRDFXML:
		return newRDFXMLEncoder(w, options), nil
	case FormatJSONLD:
		return newJSONLDEncoder(w, options), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// OptContext sets the context for cancellation and timeouts.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptMaxLineBytes sets the maximum line size limit.
func OptMaxLineBytes(maxBytes int) Option {
	return func(opts *Options) {
		opts.MaxLineBytes = maxBytes
	}
}

// OptMaxTriples sets the maximum number of triples to read. Zero disables the limit.
func OptMaxTriples(maxTriples int64) Option {
	return func(opts *Options) {
		opts.MaxTriples = maxTriples
	}
}

// OptBaseIRI sets the base IRI used to resolve relative references.
func OptBaseIRI(base string) Option {
	return func(opts *Options) {
		opts.BaseIRI = base
	}
}

// OptDocumentLoader sets the loader used for remote JSON-LD contexts.
func OptDocumentLoader(loader DocumentLoader) Option {
	return func(opts *Options) {
		opts.DocumentLoader = loader
	}
}

func defaultOptions() Options {
	return Options{
		Context:      context.Background(),
		MaxLineBytes: DefaultMaxLineBytes,
		MaxTriples:   DefaultMaxTriples,
	}
}

// limitedReader enforces cancellation and the triple limit for every format.
type limitedReader struct {
	dec   Reader
	ctx   context.Context
	max   int64
	count int64
}

func (l *limitedReader) Next() (Triple, error) {
	if l.ctx != nil {
		if err := l.ctx.Err(); err != nil {
			return Triple{}, err
		}
	}
	triple, err := l.dec.Next()
	if err != nil {
		return Triple{}, err
	}
	l.count++
	if l.max > 0 && l.count > l.max {
		return Triple{}, ErrTripleLimitExceeded
	}
	return triple, nil
}

func (l *limitedReader) Close() error { return l.dec.Close() }
