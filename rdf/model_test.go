package rdf

import "testing"

func TestTermKindsAndStrings(t *testing.T) {
	iri := IRI{Value: "http://example.org/s"}
	if iri.Kind() != TermIRI {
		t.Fatalf("expected IRI kind")
	}
	if iri.String() != "http://example.org/s" {
		t.Fatalf("unexpected IRI string: %s", iri.String())
	}

	blank := BlankNode{ID: "b1"}
	if blank.Kind() != TermBlankNode {
		t.Fatalf("expected blank node kind")
	}
	if blank.String() != "_:b1" {
		t.Fatalf("unexpected blank node string: %s", blank.String())
	}

	litPlain := Literal{Lexical: "plain"}
	if litPlain.Kind() != TermLiteral {
		t.Fatalf("expected literal kind")
	}
	if litPlain.String() != "\"plain\"" {
		t.Fatalf("unexpected literal string: %s", litPlain.String())
	}

	litLang := Literal{Lexical: "hi", Lang: "en"}
	if litLang.String() != "\"hi\"@en" {
		t.Fatalf("unexpected lang literal: %s", litLang.String())
	}

	litDT := Literal{Lexical: "1", Datatype: IRI{Value: "http://example.org/int"}}
	if litDT.String() != "\"1\"^^<http://example.org/int>" {
		t.Fatalf("unexpected datatype literal: %s", litDT.String())
	}
}

func TestTermKindString(t *testing.T) {
	tests := map[TermKind]string{
		TermIRI:       "iri",
		TermBlankNode: "blank",
		TermLiteral:   "literal",
		TermKind(9):   "TermKind(9)",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("TermKind(%d).String() = %q, want %q", uint8(kind), got, want)
		}
	}
}

func TestTripleIsZeroAndString(t *testing.T) {
	var zero Triple
	if !zero.IsZero() {
		t.Fatal("expected zero triple")
	}
	triple := Triple{
		S: BlankNode{ID: "x"},
		P: IRI{Value: "http://example.org/p"},
		O: Literal{Lexical: "a \"quoted\" value"},
	}
	if triple.IsZero() {
		t.Fatal("expected non-zero triple")
	}
	want := `_:x <http://example.org/p> "a \"quoted\" value"`
	if triple.String() != want {
		t.Fatalf("unexpected triple string: %s", triple.String())
	}
}
