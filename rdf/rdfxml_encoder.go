package rdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// rdfxmlPrefixes are declared on the rdf:RDF element. Other predicate
// namespaces get an ns<N> prefix declared on the property element.
var rdfxmlPrefixes = map[string]string{
	"rdf":  rdfXMLNS,
	"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
	"owl":  "http://www.w3.org/2002/07/owl#",
	"xsd":  "http://www.w3.org/2001/XMLSchema#",
}

// rdfxmlEncoder writes one rdf:Description per run of triples sharing a
// subject. Sorted input therefore yields one description per subject.
type rdfxmlEncoder struct {
	writer   *bufio.Writer
	base     string
	nsToPref map[string]string
	autoSeq  int
	subject  Term
	started  bool
	closed   bool
	err      error
}

func newRDFXMLEncoder(w io.Writer, opts Options) Writer {
	nsToPref := make(map[string]string, len(rdfxmlPrefixes))
	for prefix, ns := range rdfxmlPrefixes {
		nsToPref[ns] = prefix
	}
	return &rdfxmlEncoder{writer: bufio.NewWriter(w), base: opts.BaseIRI, nsToPref: nsToPref}
}

func (e *rdfxmlEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return errors.New("rdfxml: writer closed")
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return errors.New("rdfxml: missing statement fields")
	}
	subjectAttr, err := rdfxmlNodeAttr("about", t.S)
	if err != nil {
		return err
	}
	predicate, nsDecl, err := e.predicateQName(t.P.Value)
	if err != nil {
		return err
	}
	object, err := rdfxmlObject(predicate, nsDecl, t.O)
	if err != nil {
		return err
	}

	var b strings.Builder
	if !e.started {
		e.started = true
		b.WriteString(e.header())
	}
	if e.subject != t.S {
		if e.subject != nil {
			b.WriteString("  </rdf:Description>\n")
		}
		e.subject = t.S
		b.WriteString("  <rdf:Description " + subjectAttr + ">\n")
	}
	b.WriteString("    " + object + "\n")
	return e.write(b.String())
}

func (e *rdfxmlEncoder) header() string {
	prefixes := make([]string, 0, len(rdfxmlPrefixes))
	for prefix := range rdfxmlPrefixes {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<rdf:RDF")
	for _, prefix := range prefixes {
		b.WriteString(` xmlns:` + prefix + `="` + escapeXML(rdfxmlPrefixes[prefix]) + `"`)
	}
	if e.base != "" {
		b.WriteString(` xml:base="` + escapeXML(e.base) + `"`)
	}
	b.WriteString(">\n")
	return b.String()
}

func (e *rdfxmlEncoder) write(s string) error {
	if _, err := e.writer.WriteString(s); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *rdfxmlEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

// Close ends the document. An encoder without triples writes an empty rdf:RDF.
func (e *rdfxmlEncoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}
	var b strings.Builder
	if !e.started {
		b.WriteString(e.header())
	}
	if e.subject != nil {
		b.WriteString("  </rdf:Description>\n")
	}
	b.WriteString("</rdf:RDF>\n")
	if err := e.write(b.String()); err != nil {
		return err
	}
	return e.Flush()
}

func rdfxmlNodeAttr(iriAttr string, term Term) (string, error) {
	switch value := term.(type) {
	case IRI:
		return `rdf:` + iriAttr + `="` + escapeXML(value.Value) + `"`, nil
	case BlankNode:
		if !isQNameLocal(value.ID) {
			return "", fmt.Errorf("rdfxml: blank node id %q is not an XML name", value.ID)
		}
		return `rdf:nodeID="` + value.ID + `"`, nil
	case Literal:
		return "", ErrLiteralSubject
	default:
		return "", errors.New("rdfxml: unsupported term")
	}
}

func rdfxmlObject(predicate, nsDecl string, term Term) (string, error) {
	lit, ok := term.(Literal)
	if !ok {
		attr, err := rdfxmlNodeAttr("resource", term)
		if err != nil {
			return "", err
		}
		return "<" + predicate + nsDecl + " " + attr + "/>", nil
	}
	if lit.Lang != "" && lit.Datatype.Value != "" {
		return "", errors.New("rdfxml: literal cannot have both language and datatype")
	}
	attrs := ""
	if lit.Lang != "" {
		attrs = ` xml:lang="` + escapeXML(lit.Lang) + `"`
	} else if lit.Datatype.Value != "" {
		attrs = ` rdf:datatype="` + escapeXML(lit.Datatype.Value) + `"`
	}
	return "<" + predicate + nsDecl + attrs + ">" + escapeXML(lit.Lexical) + "</" + predicate + ">", nil
}

// predicateQName abbreviates a predicate IRI. The second result is the
// namespace declaration the element needs, if any.
func (e *rdfxmlEncoder) predicateQName(iri string) (string, string, error) {
	ns, local, ok := splitIRIForQName(iri)
	if !ok {
		return "", "", fmt.Errorf("rdfxml: unable to abbreviate predicate IRI %q", iri)
	}
	prefix, known := e.nsToPref[ns]
	if !known {
		prefix = fmt.Sprintf("ns%d", e.autoSeq)
		e.autoSeq++
		e.nsToPref[ns] = prefix
	}
	if _, root := rdfxmlPrefixes[prefix]; root {
		return prefix + ":" + local, "", nil
	}
	return prefix + ":" + local, ` xmlns:` + prefix + `="` + escapeXML(ns) + `"`, nil
}

func splitIRIForQName(iri string) (string, string, bool) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx <= 0 || idx+1 >= len(iri) {
		return "", "", false
	}
	ns, local := iri[:idx+1], iri[idx+1:]
	if !isQNameLocal(local) {
		return "", "", false
	}
	return ns, local, true
}

var xmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

func escapeXML(value string) string {
	return xmlEscaper.Replace(value)
}

// isQNameLocal reports whether value can be the local part of an element
// name: an ASCII letter or '_' followed by letters, digits, '_', '-' or '.'.
func isQNameLocal(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		ch := value[i]
		letter := (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
		if i == 0 && !letter {
			return false
		}
		if !letter && !(ch >= '0' && ch <= '9') && ch != '-' && ch != '.' {
			return false
		}
	}
	return true
}
