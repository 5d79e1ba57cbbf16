// Package metrics exposes closure and decomposition statistics as Prometheus
// metrics. Collectors use a private registry; batch runs dump it to a
// node_exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/geoknoesis/owl-modules/owl"
)

// Collector records owlmod metrics. It implements owl.Observer.
type Collector struct {
	registry *prometheus.Registry

	closures      prometheus.Counter
	expandedNodes prometheus.Histogram
	closureSize   prometheus.Histogram
	layerTriples  *prometheus.GaugeVec
	loadedTriples prometheus.Counter
}

var _ owl.Observer = (*Collector)(nil)

// NewCollector returns a Collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		closures: factory.NewCounter(prometheus.CounterOpts{
			Name: "owlmod_closures_total",
			Help: "Closures computed",
		}),
		expandedNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "owlmod_closure_expanded_nodes",
			Help:    "Nodes expanded per closure",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		closureSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "owlmod_closure_triples",
			Help:    "Triples per closure",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		layerTriples: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "owlmod_layer_triples",
			Help: "Triples per decomposition layer",
		}, []string{"layer"}),
		loadedTriples: factory.NewCounter(prometheus.CounterOpts{
			Name: "owlmod_load_triples_total",
			Help: "Triples loaded from input documents",
		}),
	}
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveClosure implements owl.Observer.
func (c *Collector) ObserveClosure(expanded, triples int) {
	c.closures.Inc()
	c.expandedNodes.Observe(float64(expanded))
	c.closureSize.Observe(float64(triples))
}

// ObserveLoad counts loaded triples.
func (c *Collector) ObserveLoad(triples int) {
	c.loadedTriples.Add(float64(triples))
}

// ObserveLayers records the size of each decomposition layer.
func (c *Collector) ObserveLayers(layers owl.Layers) {
	if layers.RBox != nil {
		c.layerTriples.WithLabelValues(owl.LayerRBox).Set(float64(layers.RBox.Len()))
	}
	if layers.Taxonomy != nil {
		c.layerTriples.WithLabelValues(owl.LayerTaxonomy).Set(float64(layers.Taxonomy.Len()))
	}
	if layers.Schema != nil {
		c.layerTriples.WithLabelValues(owl.LayerSchema).Set(float64(layers.Schema.Len()))
	}
}

// WriteTextfile writes the registry in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
