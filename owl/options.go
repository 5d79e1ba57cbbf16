package owl

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
)

// ExpandMode selects how a closure treats declared named objects.
type ExpandMode int

const (
	// ExpandDeclared adds objects declared as owl:Class, owl:ObjectProperty or
	// owl:DatatypeProperty to the frontier.
	ExpandDeclared ExpandMode = iota
	// DescribeDeclared copies the declaration triples of such objects into the
	// result without expanding them.
	DescribeDeclared
)

func (m ExpandMode) String() string {
	switch m {
	case ExpandDeclared:
		return "expand"
	case DescribeDeclared:
		return "describe"
	default:
		return "unknown"
	}
}

// ParseExpandMode maps "expand" and "describe" to their modes.
func ParseExpandMode(value string) (ExpandMode, bool) {
	switch value {
	case "", "expand":
		return ExpandDeclared, true
	case "describe":
		return DescribeDeclared, true
	default:
		return ExpandDeclared, false
	}
}

// Observer receives statistics about finished closures.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveClosure(expanded, triples int)
}

// Option configures extractors, decomposers and converters.
type Option func(*options)

type options struct {
	logger   logrus.FieldLogger
	observer Observer
	mode     ExpandMode
	picker   func(n int) int
	workers  int
	strict   bool
}

func defaultOptions() options {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return options{
		logger:  logger,
		mode:    ExpandDeclared,
		workers: runtime.GOMAXPROCS(0),
	}
}

func buildOptions(opts []Option) options {
	return applyOptions(defaultOptions(), opts)
}

func applyOptions(o options, opts []Option) options {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. Per-node traces are logged at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver registers an observer for closure statistics.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithExpandMode sets how declared named objects are handled.
func WithExpandMode(mode ExpandMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithPicker sets the frontier pop order. pick receives the frontier size and
// returns the index of the next node to expand. The default pops the most
// recently added node.
func WithPicker(pick func(n int) int) Option {
	return func(o *options) {
		o.picker = pick
	}
}

// WithWorkers bounds the number of closures a Decomposer runs in parallel,
// summed over the layers it computes at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithStrictCollections makes the Converter reject lists that do not end in rdf:nil.
func WithStrictCollections() Option {
	return func(o *options) {
		o.strict = true
	}
}
