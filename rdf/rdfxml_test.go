package rdf

import (
	"io"
	"strings"
	"testing"
)

const owlNS = "http://www.w3.org/2002/07/owl#"

func readAllRDFXML(t *testing.T, input string, opts ...Option) []Triple {
	t.Helper()
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	dec := newRDFXMLDecoder(strings.NewReader(input), options)
	var triples []Triple
	for {
		triple, err := dec.Next()
		if err == io.EOF {
			return triples
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		triples = append(triples, triple)
	}
}

func hasTriple(triples []Triple, s Term, p string, o Term) bool {
	for _, triple := range triples {
		if triple.S == s && triple.P.Value == p && triple.O == o {
			return true
		}
	}
	return false
}

func TestRDFXMLDecoderTypedNode(t *testing.T) {
	input := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://example.org/A">
    <rdfs:subClassOf rdf:resource="http://example.org/B"/>
    <rdfs:label xml:lang="en">Class A</rdfs:label>
  </owl:Class>
</rdf:RDF>`
	triples := readAllRDFXML(t, input)
	a := IRI{Value: "http://example.org/A"}
	if len(triples) != 3 {
		t.Fatalf("expected 3 triples, got %d: %v", len(triples), triples)
	}
	if !hasTriple(triples, a, rdfXMLNS+"type", IRI{Value: owlNS + "Class"}) {
		t.Fatal("missing rdf:type owl:Class")
	}
	if !hasTriple(triples, a, "http://www.w3.org/2000/01/rdf-schema#subClassOf", IRI{Value: "http://example.org/B"}) {
		t.Fatal("missing subClassOf")
	}
	if !hasTriple(triples, a, "http://www.w3.org/2000/01/rdf-schema#label", Literal{Lexical: "Class A", Lang: "en"}) {
		t.Fatal("missing label")
	}
}

func TestRDFXMLDecoderNestedRestriction(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://example.org/Parent">
    <rdfs:subClassOf>
      <owl:Restriction>
        <owl:onProperty rdf:resource="http://example.org/hasChild"/>
        <owl:someValuesFrom rdf:resource="http://example.org/Person"/>
      </owl:Restriction>
    </rdfs:subClassOf>
  </owl:Class>
</rdf:RDF>`
	triples := readAllRDFXML(t, input)
	var restriction Term
	for _, triple := range triples {
		if triple.P.Value == "http://www.w3.org/2000/01/rdf-schema#subClassOf" {
			restriction = triple.O
		}
	}
	if _, ok := restriction.(BlankNode); !ok {
		t.Fatalf("expected blank restriction, got %#v", restriction)
	}
	if !hasTriple(triples, restriction, rdfXMLNS+"type", IRI{Value: owlNS + "Restriction"}) {
		t.Fatal("missing restriction type")
	}
	if !hasTriple(triples, restriction, owlNS+"onProperty", IRI{Value: "http://example.org/hasChild"}) {
		t.Fatal("missing onProperty")
	}
	if !hasTriple(triples, restriction, owlNS+"someValuesFrom", IRI{Value: "http://example.org/Person"}) {
		t.Fatal("missing someValuesFrom")
	}
}

func TestRDFXMLDecoderCollection(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://example.org/U">
    <owl:unionOf rdf:parseType="Collection">
      <rdf:Description rdf:about="http://example.org/A"/>
      <rdf:Description rdf:about="http://example.org/B"/>
    </owl:unionOf>
  </owl:Class>
</rdf:RDF>`
	triples := readAllRDFXML(t, input)
	var head Term
	for _, triple := range triples {
		if triple.P.Value == owlNS+"unionOf" {
			head = triple.O
		}
	}
	if head == nil {
		t.Fatal("missing unionOf")
	}
	var items []Term
	for cell := head; cell != (IRI{Value: rdfXMLNS + "nil"}); {
		var next Term
		for _, triple := range triples {
			if triple.S != cell {
				continue
			}
			switch triple.P.Value {
			case rdfXMLNS + "first":
				items = append(items, triple.O)
			case rdfXMLNS + "rest":
				next = triple.O
			}
		}
		if next == nil {
			t.Fatalf("list cell %v has no rest", cell)
		}
		cell = next
	}
	if len(items) != 2 || items[0] != (IRI{Value: "http://example.org/A"}) || items[1] != (IRI{Value: "http://example.org/B"}) {
		t.Fatalf("unexpected list items: %v", items)
	}
}

func TestRDFXMLDecoderNodeIDAndDatatype(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:nodeID="x">
    <ex:count rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">3</ex:count>
    <ex:link rdf:nodeID="y"/>
  </rdf:Description>
</rdf:RDF>`
	triples := readAllRDFXML(t, input)
	x := BlankNode{ID: "nx"}
	if !hasTriple(triples, x, "http://example.org/count", Literal{Lexical: "3", Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}}) {
		t.Fatalf("missing datatype literal: %v", triples)
	}
	if !hasTriple(triples, x, "http://example.org/link", BlankNode{ID: "ny"}) {
		t.Fatal("missing nodeID link")
	}
}

func TestRDFXMLDecoderBaseAndID(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:owl="http://www.w3.org/2002/07/owl#"
         xml:base="http://example.org/onto">
  <owl:Class rdf:ID="A"/>
  <owl:Class rdf:about="#B"/>
</rdf:RDF>`
	triples := readAllRDFXML(t, input)
	if !hasTriple(triples, IRI{Value: "http://example.org/onto#A"}, rdfXMLNS+"type", IRI{Value: owlNS + "Class"}) {
		t.Fatalf("rdf:ID not resolved: %v", triples)
	}
	if !hasTriple(triples, IRI{Value: "http://example.org/onto#B"}, rdfXMLNS+"type", IRI{Value: owlNS + "Class"}) {
		t.Fatalf("rdf:about not resolved: %v", triples)
	}
}

func TestRDFXMLDecoderPropertyAttributes(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:about="http://example.org/s" ex:name="Alice"/>
</rdf:RDF>`
	triples := readAllRDFXML(t, input)
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	if !hasTriple(triples, IRI{Value: "http://example.org/s"}, "http://example.org/name", Literal{Lexical: "Alice"}) {
		t.Fatalf("unexpected triples: %v", triples)
	}
}

func TestRDFXMLDecoderEmptyPropertyWithAttributes(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:about="http://example.org/s">
    <ex:p ex:q="v"/>
    <ex:r rdf:resource="http://example.org/o" ex:q="w"/>
    <ex:empty/>
  </rdf:Description>
</rdf:RDF>`
	triples := readAllRDFXML(t, input)
	s := IRI{Value: "http://example.org/s"}
	if len(triples) != 5 {
		t.Fatalf("expected 5 triples, got %d: %v", len(triples), triples)
	}
	var node Term
	for _, triple := range triples {
		if triple.S == s && triple.P.Value == "http://example.org/p" {
			node = triple.O
		}
	}
	if _, ok := node.(BlankNode); !ok {
		t.Fatalf("expected blank object for ex:p, got %#v", node)
	}
	if !hasTriple(triples, node, "http://example.org/q", Literal{Lexical: "v"}) {
		t.Fatalf("property attribute not attached to the blank node: %v", triples)
	}
	o := IRI{Value: "http://example.org/o"}
	if !hasTriple(triples, s, "http://example.org/r", o) || !hasTriple(triples, o, "http://example.org/q", Literal{Lexical: "w"}) {
		t.Fatalf("property attribute not attached to rdf:resource: %v", triples)
	}
	if !hasTriple(triples, s, "http://example.org/empty", Literal{}) {
		t.Fatalf("empty property element is an empty literal: %v", triples)
	}
}

func TestRDFXMLDecoderTruncatedInput(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="http://example.org/s">`
	dec := newRDFXMLDecoder(strings.NewReader(input), defaultOptions())
	if _, err := dec.Next(); err == nil || err == io.EOF {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestRDFXMLEncoderRoundTrip(t *testing.T) {
	a := IRI{Value: "http://example.org/A"}
	input := []Triple{
		{S: a, P: IRI{Value: rdfXMLNS + "type"}, O: IRI{Value: owlNS + "Class"}},
		{S: a, P: IRI{Value: "http://www.w3.org/2000/01/rdf-schema#subClassOf"}, O: BlankNode{ID: "b1"}},
		{S: a, P: IRI{Value: "http://www.w3.org/2000/01/rdf-schema#label"}, O: Literal{Lexical: "Class A", Lang: "en"}},
		{S: a, P: IRI{Value: "http://other.org/vocab#note"}, O: Literal{Lexical: `a < b & "c"`}},
		{S: a, P: IRI{Value: "http://other.org/vocab#count"}, O: Literal{Lexical: "3", Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}}},
		{S: BlankNode{ID: "b1"}, P: IRI{Value: owlNS + "onProperty"}, O: IRI{Value: "http://example.org/p"}},
	}

	var buf strings.Builder
	enc, err := NewWriter(&buf, FormatRDFXML)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	for _, triple := range input {
		if err := enc.Write(triple); err != nil {
			t.Fatalf("Write(%v) failed: %v", triple, err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	output := buf.String()
	if strings.Count(output, "<rdf:Description ") != 2 {
		t.Fatalf("expected one description per subject run:\n%s", output)
	}

	triples := readAllRDFXML(t, output)
	if len(triples) != len(input) {
		t.Fatalf("expected %d triples, got %d:\n%s", len(input), len(triples), output)
	}
	for _, want := range input {
		if b, ok := want.O.(BlankNode); ok {
			want.O = BlankNode{ID: "n" + b.ID}
		}
		if b, ok := want.S.(BlankNode); ok {
			want.S = BlankNode{ID: "n" + b.ID}
		}
		if !hasTriple(triples, want.S, want.P.Value, want.O) {
			t.Errorf("missing %v after round trip:\n%s", want, output)
		}
	}
}

func TestRDFXMLEncoderEmptyDocument(t *testing.T) {
	var buf strings.Builder
	enc, err := NewWriter(&buf, FormatRDFXML)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if triples := readAllRDFXML(t, buf.String()); len(triples) != 0 {
		t.Fatalf("expected no triples, got %v", triples)
	}
}

func TestRDFXMLEncoderRejectsInvalid(t *testing.T) {
	s := IRI{Value: "http://example.org/s"}
	tests := []Triple{
		{S: Literal{Lexical: "x"}, P: IRI{Value: "http://example.org/p"}, O: s},
		{S: s, P: IRI{Value: "http://example.org/"}, O: s},
		{S: s, P: IRI{Value: "http://example.org/p"}, O: Literal{Lexical: "x", Lang: "en", Datatype: IRI{Value: "http://example.org/d"}}},
		{S: s, P: IRI{Value: "http://example.org/p"}},
	}
	for _, triple := range tests {
		enc, _ := NewWriter(io.Discard, FormatRDFXML)
		if err := enc.Write(triple); err == nil {
			t.Errorf("expected error for %v", triple)
		}
	}
}
