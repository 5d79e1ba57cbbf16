package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/owl-modules/owl"
)

// DocumentFormat selects the encoding of axiom documents.
type DocumentFormat string

const (
	DocumentJSON DocumentFormat = "json"
	DocumentYAML DocumentFormat = "yaml"
)

// ParseDocumentFormat normalizes a document format name.
func ParseDocumentFormat(value string) (DocumentFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return DocumentJSON, true
	case "yaml", "yml":
		return DocumentYAML, true
	default:
		return "", false
	}
}

// Extension returns the file extension (with dot) of the format.
func (f DocumentFormat) Extension() string {
	if f == DocumentYAML {
		return ".yaml"
	}
	return ".json"
}

// Document maps subject identifiers to converted values. Keys are encoded in
// lexical order so that output is stable across runs.
type Document struct {
	entries map[string]owl.Value
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{entries: make(map[string]owl.Value)}
}

// Put stores v under key, replacing any previous value.
func (d *Document) Put(key string, v owl.Value) {
	d.entries[key] = v
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (owl.Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.entries)
}

// Keys returns the keys in lexical order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes the document as an object with sorted keys.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(d.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the document as a mapping with sorted keys.
func (d *Document) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range d.Keys() {
		value, err := d.entries[key].MarshalYAML()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value.(*yaml.Node),
		)
	}
	return node, nil
}

// Encode writes the document to w. JSON output is indented with four spaces.
func (d *Document) Encode(w io.Writer, format DocumentFormat) error {
	switch format {
	case DocumentJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(d)
	case DocumentYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(4)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("export: unsupported document format %q", format)
	}
}
