package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
	"lukechampine.com/blake3"

	"github.com/geoknoesis/owl-modules/owl"
	"github.com/geoknoesis/owl-modules/rdf"
	"github.com/geoknoesis/owl-modules/store"
)

// Entry kinds recorded in the manifest.
const (
	KindGraph    = "graph"
	KindDocument = "document"
)

// ManifestEntry describes one written file.
type ManifestEntry struct {
	Path   string `yaml:"path"`
	Kind   string `yaml:"kind"`
	Format string `yaml:"format"`
	Items  int    `yaml:"items"`
	Bytes  int64  `yaml:"bytes"`
	BLAKE3 string `yaml:"blake3"`
}

// Manifest lists the files of one export run.
type Manifest struct {
	RunID   string          `yaml:"run_id"`
	Created time.Time       `yaml:"created"`
	Tool    string          `yaml:"tool"`
	Entries []ManifestEntry `yaml:"entries"`
}

// Writer writes graphs and documents below Root and records every file for
// the manifest. It is safe for concurrent use.
type Writer struct {
	Root           string
	Layout         Layout
	GraphFormat    rdf.Format
	DocumentFormat DocumentFormat
	Compress       bool
	Tool           string
	RunID          string

	mu      sync.Mutex
	entries []ManifestEntry
}

// NewWriter returns a Writer with the default layout, N-Triples graphs and
// JSON documents.
func NewWriter(root string) *Writer {
	return &Writer{
		Root:           root,
		Layout:         DefaultLayout(),
		GraphFormat:    rdf.FormatNTriples,
		DocumentFormat: DocumentJSON,
		Tool:           "owlmod",
		RunID:          uuid.NewString(),
	}
}

// WriteGraph writes the triples of s to rel in sorted order. The extension of
// rel follows GraphFormat.
func (w *Writer) WriteGraph(rel string, s *store.Store) (string, error) {
	format := w.GraphFormat
	if format == rdf.FormatAuto {
		format = rdf.FormatNTriples
	}
	rel = withExtension(rel, format.Extension())
	return w.writeFile(rel, KindGraph, string(format), s.Len(), func(out io.Writer) error {
		enc, err := rdf.NewWriter(out, format)
		if err != nil {
			return err
		}
		if err := store.Write(s, enc); err != nil {
			return err
		}
		return enc.Close()
	})
}

// WriteDocument encodes doc to rel. The extension of rel follows DocumentFormat.
func (w *Writer) WriteDocument(rel string, doc *Document) (string, error) {
	format := w.DocumentFormat
	if format == "" {
		format = DocumentJSON
	}
	rel = withExtension(rel, format.Extension())
	return w.writeFile(rel, KindDocument, string(format), doc.Len(), func(out io.Writer) error {
		return doc.Encode(out, format)
	})
}

// writeFile creates root/rel (plus ".zst" when compressing) and records its
// size and BLAKE3 checksum. It returns the dataset-relative path written.
func (w *Writer) writeFile(rel, kind, format string, items int, encode func(io.Writer) error) (string, error) {
	if w.Compress {
		rel += store.CompressedSuffix
	}
	path := filepath.Join(w.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := blake3.New(32, nil)
	counter := &countingWriter{}
	sink := io.MultiWriter(f, hasher, counter)

	if w.Compress {
		enc, err := zstd.NewWriter(sink)
		if err != nil {
			return "", fmt.Errorf("creating zstd encoder: %w", err)
		}
		if err := encode(enc); err != nil {
			enc.Close()
			return "", fmt.Errorf("%s: %w", rel, err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("%s: %w", rel, err)
		}
	} else if err := encode(sink); err != nil {
		return "", fmt.Errorf("%s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	w.record(ManifestEntry{
		Path:   filepath.ToSlash(rel),
		Kind:   kind,
		Format: format,
		Items:  items,
		Bytes:  counter.n,
		BLAKE3: fmt.Sprintf("%x", hasher.Sum(nil)),
	})
	return rel, nil
}

func (w *Writer) record(entry ManifestEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, e := range w.entries {
		if e.Path == entry.Path {
			w.entries[i] = entry
			return
		}
	}
	w.entries = append(w.entries, entry)
}

// Entries returns the files written so far ordered by path.
func (w *Writer) Entries() []ManifestEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := append([]ManifestEntry(nil), w.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// WriteManifest writes the manifest of all recorded files as YAML.
func (w *Writer) WriteManifest() (*Manifest, error) {
	manifest := &Manifest{
		RunID:   w.RunID,
		Created: time.Now().UTC(),
		Tool:    w.Tool,
		Entries: w.Entries(),
	}
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(w.Root, filepath.FromSlash(w.Layout.Manifest))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	return manifest, nil
}

// WriteLayers writes the three layer graphs.
func (w *Writer) WriteLayers(layers owl.Layers) error {
	for _, g := range []struct {
		rel   string
		graph *store.Store
	}{
		{w.Layout.RoleGraph, layers.RBox},
		{w.Layout.TaxonomyGraph, layers.Taxonomy},
		{w.Layout.SchemaGraph, layers.Schema},
	} {
		if g.graph == nil {
			continue
		}
		if _, err := w.WriteGraph(g.rel, g.graph); err != nil {
			return err
		}
	}
	return nil
}

// Sources selects the graph each document is built from. Nil sources are skipped.
type Sources struct {
	Taxonomy   *store.Store
	Schema     *store.Store
	Roles      *store.Store
	Assertions *store.Store
}

// SourcesFromStore builds every document from s.
func SourcesFromStore(s *store.Store) Sources {
	return Sources{Taxonomy: s, Schema: s, Roles: s, Assertions: s}
}

// SourcesFromLayers builds documents from decomposition layers; class
// assertions come from the full ontology.
func SourcesFromLayers(layers owl.Layers, ontology *store.Store) Sources {
	return Sources{
		Taxonomy:   layers.Taxonomy,
		Schema:     layers.Schema,
		Roles:      layers.RBox,
		Assertions: ontology,
	}
}

// WriteDocuments builds and writes the five axiom documents.
func (w *Writer) WriteDocuments(src Sources, opts ...owl.Option) error {
	type job struct {
		rel   string
		graph *store.Store
		build func(*store.Store, ...owl.Option) (*Document, error)
	}
	jobs := []job{
		{w.Layout.Taxonomy, src.Taxonomy, TaxonomyDocument},
		{w.Layout.Schema, src.Schema, SchemaDocument},
		{w.Layout.RoleDomainRange, src.Roles, RoleDomainRangeDocument},
		{w.Layout.RoleHierarchy, src.Roles, RoleHierarchyDocument},
		{w.Layout.ClassAssertions, src.Assertions, ClassAssertionsDocument},
	}
	for _, j := range jobs {
		if j.graph == nil {
			continue
		}
		doc, err := j.build(j.graph, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", j.rel, err)
		}
		if _, err := w.WriteDocument(j.rel, doc); err != nil {
			return err
		}
	}
	return nil
}

type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}
