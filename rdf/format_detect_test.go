package rdf

import (
	"context"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   Format
		ok     bool
	}{
		{"ntriples", "<http://example.org/s> <http://example.org/p> <http://example.org/o> .", FormatNTriples, true},
		{"ntriples after comment", "# comment\n_:b <http://example.org/p> \"x\" .", FormatNTriples, true},
		{"xml declaration", `<?xml version="1.0"?><rdf:RDF/>`, FormatRDFXML, true},
		{"rdf root", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"/>`, FormatRDFXML, true},
		{"jsonld object", `{"@id": "http://example.org/s"}`, FormatJSONLD, true},
		{"jsonld array", `[{"@id": "http://example.org/s"}]`, FormatJSONLD, true},
		{"empty", "   ", FormatAuto, false},
		{"turtle", "@prefix ex: <http://example.org/> .", FormatAuto, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DetectFormat([]byte(tc.sample))
			if got != tc.want || ok != tc.ok {
				t.Fatalf("DetectFormat() = %q, %v; want %q, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestAutoDetectReplaysSample(t *testing.T) {
	var input strings.Builder
	for i := 0; i < 50; i++ {
		input.WriteString("<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n")
	}
	count := 0
	err := Parse(context.Background(), strings.NewReader(input.String()), FormatAuto, func(Triple) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 50 {
		t.Fatalf("expected 50 triples, got %d", count)
	}
}

func TestAutoDetectUnknownInput(t *testing.T) {
	_, err := NewReader(strings.NewReader("@prefix ex: <http://example.org/> ."), FormatAuto)
	if Code(err) != ErrCodeUnsupportedFormat {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}
