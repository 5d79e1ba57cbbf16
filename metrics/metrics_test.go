package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/owl-modules/owl"
	"github.com/geoknoesis/owl-modules/rdf"
	"github.com/geoknoesis/owl-modules/store"
)

const onto = `<http://example.org/p> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#ObjectProperty> .
<http://example.org/p> <http://www.w3.org/2000/01/rdf-schema#domain> <http://example.org/C> .
<http://example.org/C> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/D> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/D> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/C> .
`

func TestCollectorObservesDecomposition(t *testing.T) {
	c := NewCollector()

	r, err := rdf.NewReader(strings.NewReader(onto), rdf.FormatNTriples)
	require.NoError(t, err)
	s := store.New()
	n, err := store.Load(context.Background(), s, r)
	require.NoError(t, err)
	c.ObserveLoad(n)

	layers, err := owl.NewDecomposer(s, owl.WithObserver(c)).Decompose(context.Background())
	require.NoError(t, err)
	c.ObserveLayers(layers)

	assert.Equal(t, float64(5), testutil.ToFloat64(c.loadedTriples))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.closures), "one property closure, no anonymous objects")
	assert.Equal(t, float64(layers.RBox.Len()), testutil.ToFloat64(c.layerTriples.WithLabelValues(owl.LayerRBox)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.layerTriples.WithLabelValues(owl.LayerTaxonomy)))
	assert.Equal(t, 3, testutil.CollectAndCount(c.layerTriples))
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.ObserveClosure(3, 7)

	path := filepath.Join(t.TempDir(), "owlmod.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "owlmod_closures_total 1")
	assert.Contains(t, text, "owlmod_closure_triples_sum 7")
	assert.Contains(t, text, "owlmod_closure_expanded_nodes_count 1")
}
