package rdf

import (
	"encoding/xml"
	"net/url"
	"strings"
)

// resolveIRI resolves a relative IRI against a base IRI according to RFC 3986.
// Without a base the reference is returned unchanged.
func resolveIRI(base, ref string) string {
	if base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return joinPath(base, ref)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return joinPath(base, ref)
	}
	if refURL.Scheme != "" {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// joinPath replaces the last path segment of base with ref. It is the
// fallback for inputs net/url rejects.
func joinPath(base, ref string) string {
	if strings.HasSuffix(base, "/") {
		return base + ref
	}
	if lastSlash := strings.LastIndex(base, "/"); lastSlash >= 0 {
		return base[:lastSlash+1] + ref
	}
	return base + "/" + ref
}

// resolveBase applies an xml:base attribute, if any, to base.
func resolveBase(base string, attrs []xml.Attr) string {
	if xmlBase, ok := lookupAttr(attrs, xmlNS, "base"); ok {
		return resolveIRI(base, xmlBase)
	}
	return base
}

// resolveID builds the IRI of an rdf:ID: the base without fragment, '#', id.
func resolveID(base, id string) string {
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	return base + "#" + id
}
