package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/owl-modules/rdf"
)

const doc = `<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:r .
_:r <http://www.w3.org/2002/07/owl#onProperty> <http://example.org/p> .
`

func newReader(t *testing.T, input string) rdf.Reader {
	t.Helper()
	r, err := rdf.NewReader(strings.NewReader(input), rdf.FormatNTriples)
	require.NoError(t, err)
	return r
}

func TestLoadScopesBlankNodesPerDocument(t *testing.T) {
	ctx := context.Background()
	s := New()

	n, err := Load(ctx, s, newReader(t, doc))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = Load(ctx, s, newReader(t, doc))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "the second _:r is a new anonymous node")
	assert.Equal(t, 4, s.Len())

	a := s.Lookup("http://example.org/A")
	supers := s.Objects(a, s.Lookup("http://www.w3.org/2000/01/rdf-schema#subClassOf"))
	require.Len(t, supers, 2)
	assert.NotEqual(t, supers[0], supers[1])
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, New(), newReader(t, doc))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFileAndCompressed(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "onto.nt")
	require.NoError(t, os.WriteFile(plain, []byte(doc), 0o644))

	var compressed bytes.Buffer
	enc, err := zstd.NewWriter(&compressed)
	require.NoError(t, err)
	_, err = enc.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	packed := filepath.Join(dir, "packed.nt.zst")
	require.NoError(t, os.WriteFile(packed, compressed.Bytes(), 0o644))

	s := New()
	n, err := LoadFile(context.Background(), s, plain)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = LoadFile(context.Background(), s, packed)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 4, s.Len())
}

func TestLoadFileDetectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ontology.data")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	n, err := LoadFile(context.Background(), New(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLoadFileParseErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.nt")
	require.NoError(t, os.WriteFile(path, []byte("<http://example.org/s> .\n"), 0o644))
	_, err := LoadFile(context.Background(), New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.nt")
	assert.Equal(t, rdf.ErrCodeParseError, rdf.Code(err))
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "one.nt"), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "b", "two.nt"), []byte(doc), 0o644))

	s := New()
	n, err := LoadGlob(context.Background(), s, filepath.Join(dir, "**", "*.nt"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = LoadGlob(context.Background(), New(), filepath.Join(dir, "*.owl"))
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestGlobSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.nt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.nt"), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.nt"), []byte(doc), 0o644))

	files, err := Glob(filepath.Join(dir, "*.nt"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.nt"), filepath.Join(dir, "z.nt")}, files)

	_, err = Glob(filepath.Join(dir, "dir.*"))
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLoadFileFormatOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onto.owl")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	n, err := LoadFileFormat(context.Background(), New(), path, rdf.FormatNTriples)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWrite(t *testing.T) {
	s := New()
	_, err := Load(context.Background(), s, newReader(t, doc))
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := rdf.NewWriter(&buf, rdf.FormatNTriples)
	require.NoError(t, err)
	require.NoError(t, Write(s, w))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "<http://example.org/A>"))
	assert.True(t, strings.HasPrefix(lines[1], "_:b"))

	back := New()
	n, err := Load(context.Background(), back, newReader(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
