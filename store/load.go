package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/zstd"

	"github.com/geoknoesis/owl-modules/rdf"
)

// CompressedSuffix marks zstd-compressed input and output files.
const CompressedSuffix = ".zst"

// ErrNoMatch is returned by LoadGlob when a pattern matches no file.
var ErrNoMatch = errors.New("store: pattern matches no file")

// Load reads every triple of r into s and returns the number of new triples.
// Blank node labels are scoped to this call: a label reused by another
// document denotes a different anonymous node.
func Load(ctx context.Context, s *Store, r rdf.Reader) (int, error) {
	scope := make(map[string]NodeID)
	added := 0
	for {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		t, err := r.Next()
		if err == io.EOF {
			return added, nil
		}
		if err != nil {
			return added, err
		}
		isNew, err := s.addTerms(scope, t.S, t.P, t.O)
		if err != nil {
			return added, err
		}
		if isNew {
			added++
		}
	}
}

// LoadFile loads one ontology document. The format comes from the file
// extension, falling back to content detection; a trailing ".zst" is
// decompressed transparently.
func LoadFile(ctx context.Context, s *Store, path string, opts ...rdf.Option) (int, error) {
	return LoadFileFormat(ctx, s, path, rdf.FormatAuto, opts...)
}

// LoadFileFormat is LoadFile with an explicit format. FormatAuto selects the
// format from the extension or the content.
func LoadFileFormat(ctx context.Context, s *Store, path string, format rdf.Format, opts ...rdf.Option) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var input io.Reader = f
	name := path
	if strings.EqualFold(filepath.Ext(path), CompressedSuffix) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		input = dec
		name = strings.TrimSuffix(path, filepath.Ext(path))
	}

	if format == rdf.FormatAuto {
		if byExt, err := rdf.FormatFromPath(name); err == nil {
			format = byExt
		}
	}
	opts = append([]rdf.Option{rdf.OptContext(ctx)}, opts...)
	reader, err := rdf.NewReader(input, format, opts...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	defer reader.Close()

	n, err := Load(ctx, s, reader)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Glob returns the regular files matching pattern ("**" is supported) in
// lexical order. A pattern without metacharacters names a single file.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}
	sort.Strings(matches)

	files := matches[:0]
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, match)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
	}
	return files, nil
}

// LoadGlob loads every file matching pattern in lexical path order.
func LoadGlob(ctx context.Context, s *Store, pattern string, opts ...rdf.Option) (int, error) {
	files, err := Glob(pattern)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, file := range files {
		n, err := LoadFile(ctx, s, file, opts...)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Write emits the triples of s in sorted order and flushes w. It does not close w.
func Write(s *Store, w rdf.Writer) error {
	for _, t := range s.Sorted() {
		if err := w.Write(s.RDF(t)); err != nil {
			return err
		}
	}
	return w.Flush()
}
