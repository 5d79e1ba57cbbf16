package rdf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNTriplesDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing object", "<http://example.org/s> <http://example.org/p> .\n"},
		{"missing dot", "<http://example.org/s> <http://example.org/p> <http://example.org/o>\n"},
		{"graph term", "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .\n"},
		{"unterminated IRI", "<http://example.org/s <http://example.org/p> <http://example.org/o> .\n"},
		{"unterminated literal", "<http://example.org/s> <http://example.org/p> \"open .\n"},
		{"quoted triple", "<< <http://example.org/s> <http://example.org/p> <http://example.org/o> >> <http://example.org/p2> <http://example.org/o2> .\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dec, err := NewReader(strings.NewReader(tc.input), FormatNTriples)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, err = dec.Next()
			if err == nil {
				t.Fatal("expected error")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T", err)
			}
			if parseErr.Line != 1 {
				t.Fatalf("expected line 1, got %d", parseErr.Line)
			}
		})
	}
}

func TestNTriplesRejectLiteralSubject(t *testing.T) {
	input := "\"s\" <http://example.org/p> <http://example.org/o> .\n"
	dec, err := NewReader(strings.NewReader(input), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = dec.Next()
	if Code(err) != ErrCodeLiteralSubject {
		t.Fatalf("expected literal subject code, got %v (%v)", Code(err), err)
	}
}

func TestNTriplesDecodeBlankAndLiteral(t *testing.T) {
	line := "_:b1 <http://example.org/p> \"v\"@en .\n"
	dec, err := NewReader(strings.NewReader(line), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	triple, err := dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := triple.S.(BlankNode); !ok || b.ID != "b1" {
		t.Fatalf("expected blank node subject, got %#v", triple.S)
	}
	if lit, ok := triple.O.(Literal); !ok || lit.Lang != "en" {
		t.Fatalf("expected lang literal")
	}
}

func TestNTriplesDecodeDatatypeLiteral(t *testing.T) {
	line := "<http://example.org/s> <http://example.org/p> \"1\"^^<http://example.org/dt> .\n"
	dec, err := NewReader(strings.NewReader(line), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	triple, err := dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lit, ok := triple.O.(Literal); !ok || lit.Datatype.Value != "http://example.org/dt" {
		t.Fatalf("expected datatype literal")
	}
}

func TestNTriplesDecodeEscapes(t *testing.T) {
	line := `<http://example.org/s> <http://example.org/p> "tab\tq\"é\U0001F600" .` + "\n"
	dec, err := NewReader(strings.NewReader(line), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	triple, err := dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit := triple.O.(Literal)
	if lit.Lexical != "tab\tq\"é😀" {
		t.Fatalf("unexpected lexical form: %q", lit.Lexical)
	}
}

func TestNTriplesSkipsCommentsAndBlankLines(t *testing.T) {
	input := "# header\n\n<http://example.org/s> <http://example.org/p> <http://example.org/o> . # trailing\n"
	dec, err := NewReader(strings.NewReader(input), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dec.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestNTriplesRoundTrip(t *testing.T) {
	triples := []Triple{
		{S: IRI{Value: "http://example.org/s"}, P: IRI{Value: "http://example.org/p"}, O: IRI{Value: "http://example.org/o"}},
		{S: BlankNode{ID: "b0"}, P: IRI{Value: "http://example.org/label"}, O: Literal{Lexical: "line\nbreak", Lang: "en"}},
		{S: BlankNode{ID: "b0"}, P: IRI{Value: "http://example.org/n"}, O: Literal{Lexical: "5", Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#int"}}},
	}
	var buf bytes.Buffer
	enc, err := NewWriter(&buf, FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, triple := range triples {
		if err := enc.Write(triple); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	var decoded []Triple
	err = Parse(context.Background(), &buf, FormatNTriples, func(t Triple) error {
		decoded = append(decoded, t)
		return nil
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(decoded) != len(triples) {
		t.Fatalf("expected %d triples, got %d", len(triples), len(decoded))
	}
	for i := range triples {
		if decoded[i] != triples[i] {
			t.Fatalf("triple %d: got %#v, want %#v", i, decoded[i], triples[i])
		}
	}
}

func TestNTriplesEncoderRejectsInvalid(t *testing.T) {
	enc, err := NewWriter(io.Discard, FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.Write(Triple{}); err == nil {
		t.Fatal("expected error for empty triple")
	}
	lit := Triple{S: Literal{Lexical: "x"}, P: IRI{Value: "http://example.org/p"}, O: IRI{Value: "http://example.org/o"}}
	if err := enc.Write(lit); !errors.Is(err, ErrLiteralSubject) {
		t.Fatalf("expected ErrLiteralSubject, got %v", err)
	}
}
