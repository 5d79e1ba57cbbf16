package rdf

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

const (
	rdfXMLNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlNS    = "http://www.w3.org/XML/1998/namespace"
)

// rdfxmlDecoder reads the RDF/XML subset produced by OWL tooling: typed node
// elements, nested anonymous nodes, rdf:parseType Resource/Collection/Literal,
// datatype and language literals and property attributes on node and empty
// property elements.
type rdfxmlDecoder struct {
	dec     *xml.Decoder
	base    string
	queue   []Triple
	blankID int
	started bool
	err     error
}

func newRDFXMLDecoder(r io.Reader, opts Options) Reader {
	return &rdfxmlDecoder{dec: xml.NewDecoder(r), base: opts.BaseIRI}
}

func (d *rdfxmlDecoder) Next() (Triple, error) {
	for {
		if len(d.queue) > 0 {
			next := d.queue[0]
			d.queue = d.queue[1:]
			return next, nil
		}
		if d.err != nil {
			return Triple{}, d.err
		}
		tok, err := d.dec.Token()
		if err != nil {
			if err == io.EOF {
				return Triple{}, io.EOF
			}
			d.err = d.wrap(err)
			return Triple{}, d.err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space == rdfXMLNS && start.Name.Local == "RDF" && !d.started {
			d.started = true
			d.base = resolveBase(d.base, start.Attr)
			continue
		}
		d.started = true
		if _, err := d.nodeElement(start, d.base, attrValue(start.Attr, xmlNS, "lang")); err != nil {
			d.err = d.wrap(err)
			return Triple{}, d.err
		}
	}
}

func (d *rdfxmlDecoder) Close() error {
	return nil
}

func (d *rdfxmlDecoder) wrap(err error) error {
	line, _ := d.dec.InputPos()
	return wrapParseError(FormatRDFXML, "", line, err)
}

func (d *rdfxmlDecoder) emit(s Term, p string, o Term) {
	d.queue = append(d.queue, Triple{S: s, P: IRI{Value: p}, O: o})
}

func (d *rdfxmlDecoder) freshBlank() BlankNode {
	d.blankID++
	return BlankNode{ID: "g" + strconv.Itoa(d.blankID)}
}

// nodeElement consumes a node element up to its end tag and returns its subject.
func (d *rdfxmlDecoder) nodeElement(start xml.StartElement, base, lang string) (Term, error) {
	base = resolveBase(base, start.Attr)
	if l := attrValue(start.Attr, xmlNS, "lang"); l != "" {
		lang = l
	}
	subject, err := d.subjectFromNode(start, base)
	if err != nil {
		return nil, err
	}
	if start.Name.Space != rdfXMLNS || start.Name.Local != "Description" {
		d.emit(subject, rdfXMLNS+"type", IRI{Value: start.Name.Space + start.Name.Local})
	}
	d.propertyAttrs(subject, start.Attr, base, lang)
	if err := d.propertyElements(subject, base, lang); err != nil {
		return nil, err
	}
	return subject, nil
}

// propertyAttrs emits one triple per property attribute.
func (d *rdfxmlDecoder) propertyAttrs(subject Term, attrs []xml.Attr, base, lang string) {
	for _, attr := range attrs {
		if !isPropertyAttr(attr) {
			continue
		}
		pred := attr.Name.Space + attr.Name.Local
		if pred == rdfXMLNS+"type" {
			d.emit(subject, pred, IRI{Value: resolveIRI(base, attr.Value)})
			continue
		}
		d.emit(subject, pred, Literal{Lexical: attr.Value, Lang: lang})
	}
}

func (d *rdfxmlDecoder) subjectFromNode(el xml.StartElement, base string) (Term, error) {
	if about, ok := lookupAttr(el.Attr, rdfXMLNS, "about"); ok {
		return IRI{Value: resolveIRI(base, about)}, nil
	}
	if id := attrValue(el.Attr, rdfXMLNS, "ID"); id != "" {
		return IRI{Value: resolveID(base, id)}, nil
	}
	if nodeID := attrValue(el.Attr, rdfXMLNS, "nodeID"); nodeID != "" {
		return BlankNode{ID: "n" + nodeID}, nil
	}
	return d.freshBlank(), nil
}

// propertyElements consumes property elements until the enclosing end tag.
func (d *rdfxmlDecoder) propertyElements(subject Term, base, lang string) error {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.propertyElement(t, subject, base, lang); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (d *rdfxmlDecoder) propertyElement(start xml.StartElement, subject Term, base, lang string) error {
	base = resolveBase(base, start.Attr)
	if l := attrValue(start.Attr, xmlNS, "lang"); l != "" {
		lang = l
	}
	pred := start.Name.Space + start.Name.Local

	switch attrValue(start.Attr, rdfXMLNS, "parseType") {
	case "Resource":
		node := d.freshBlank()
		d.emit(subject, pred, node)
		return d.propertyElements(node, base, lang)
	case "Collection":
		head, err := d.collection(base, lang)
		if err != nil {
			return err
		}
		d.emit(subject, pred, head)
		return nil
	case "Literal":
		content, err := d.text()
		if err != nil {
			return err
		}
		d.emit(subject, pred, Literal{Lexical: content, Datatype: IRI{Value: rdfXMLNS + "XMLLiteral"}})
		return nil
	}

	// Empty property element: the object is rdf:resource, rdf:nodeID or a
	// fresh node, described by the element's property attributes.
	var object Term
	if resource, ok := lookupAttr(start.Attr, rdfXMLNS, "resource"); ok {
		object = IRI{Value: resolveIRI(base, resource)}
	} else if nodeID := attrValue(start.Attr, rdfXMLNS, "nodeID"); nodeID != "" {
		object = BlankNode{ID: "n" + nodeID}
	} else if hasPropertyAttrs(start.Attr) {
		object = d.freshBlank()
	}
	if object != nil {
		d.emit(subject, pred, object)
		d.propertyAttrs(object, start.Attr, base, lang)
		return d.skip()
	}

	datatype := attrValue(start.Attr, rdfXMLNS, "datatype")
	var content strings.Builder
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			content.Write(t)
		case xml.StartElement:
			object, err := d.nodeElement(t, base, lang)
			if err != nil {
				return err
			}
			d.emit(subject, pred, object)
			return d.skip()
		case xml.EndElement:
			literal := Literal{Lexical: content.String()}
			if datatype != "" {
				literal.Datatype = IRI{Value: resolveIRI(base, datatype)}
			} else {
				literal.Lang = lang
			}
			d.emit(subject, pred, literal)
			return nil
		}
	}
}

// collection reads node elements of an rdf:parseType="Collection" property and
// emits the rdf:first/rdf:rest chain. It returns the list head.
func (d *rdfxmlDecoder) collection(base, lang string) (Term, error) {
	var items []Term
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			item, err := d.nodeElement(t, base, lang)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case xml.EndElement:
			var head Term = IRI{Value: rdfXMLNS + "nil"}
			for i := len(items) - 1; i >= 0; i-- {
				cell := d.freshBlank()
				d.emit(cell, rdfXMLNS+"first", items[i])
				d.emit(cell, rdfXMLNS+"rest", head)
				head = cell
			}
			return head, nil
		}
	}
}

// skip consumes tokens up to and including the end tag of the current element.
func (d *rdfxmlDecoder) skip() error {
	return unexpectedEOF(d.dec.Skip())
}

// text returns the character data of the current element, ignoring markup.
func (d *rdfxmlDecoder) text() (string, error) {
	var content strings.Builder
	depth := 0
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return "", unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			content.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return content.String(), nil
			}
			depth--
		}
	}
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return errors.New("rdfxml: unexpected end of document")
	}
	return err
}

func isPropertyAttr(attr xml.Attr) bool {
	switch {
	case attr.Name.Space == "" || attr.Name.Space == "xmlns" || attr.Name.Space == xmlNS:
		return false
	case attr.Name.Space == rdfXMLNS:
		switch attr.Name.Local {
		case "about", "ID", "nodeID", "resource", "datatype", "parseType", "aboutEach", "aboutEachPrefix", "bagID":
			return false
		}
	}
	return true
}

func hasPropertyAttrs(attrs []xml.Attr) bool {
	for _, attr := range attrs {
		if isPropertyAttr(attr) {
			return true
		}
	}
	return false
}

func lookupAttr(attrs []xml.Attr, space, local string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Space == space && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

func attrValue(attrs []xml.Attr, space, local string) string {
	value, _ := lookupAttr(attrs, space, local)
	return value
}
