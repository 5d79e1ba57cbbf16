package rdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type ntDecoder struct {
	reader   *bufio.Reader
	maxBytes int
	line     int
	err      error
}

func newNTriplesDecoder(r io.Reader, opts Options) Reader {
	return &ntDecoder{reader: bufio.NewReader(r), maxBytes: opts.MaxLineBytes}
}

func (d *ntDecoder) Next() (Triple, error) {
	if d.err != nil {
		return Triple{}, d.err
	}
	for {
		line, err := readLineWithLimit(d.reader, d.maxBytes)
		if err != nil {
			if err == io.EOF {
				return Triple{}, io.EOF
			}
			d.line++
			d.err = wrapParseError(FormatNTriples, "", d.line, err)
			return Triple{}, d.err
		}
		d.line++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		triple, err := parseNTLine(line)
		if err != nil {
			d.err = wrapParseError(FormatNTriples, line, d.line, err)
			return Triple{}, d.err
		}
		return triple, nil
	}
}

func (d *ntDecoder) Close() error {
	return nil
}

// position is the slot of a term inside a statement.
type position int

const (
	subjectPos position = iota
	objectPos
)

func parseNTLine(line string) (Triple, error) {
	c := &ntCursor{input: line}
	subject, err := c.term(subjectPos)
	if err != nil {
		return Triple{}, err
	}
	predicate, err := c.iri()
	if err != nil {
		return Triple{}, err
	}
	object, err := c.term(objectPos)
	if err != nil {
		return Triple{}, err
	}
	if !c.consume('.') {
		return Triple{}, c.errorf("expected '.' at end of statement")
	}
	c.skipWS()
	if !c.done() && c.peek() != '#' {
		return Triple{}, c.errorf("unexpected content after '.'")
	}
	return Triple{S: subject, P: predicate, O: object}, nil
}

// ntCursor scans one N-Triples statement.
type ntCursor struct {
	input string
	pos   int
}

func (c *ntCursor) done() bool { return c.pos >= len(c.input) }

func (c *ntCursor) peek() byte { return c.input[c.pos] }

func (c *ntCursor) rest() string { return c.input[c.pos:] }

func (c *ntCursor) skipWS() {
	for !c.done() {
		switch c.peek() {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if !c.done() && c.peek() == ch {
		c.pos++
		return true
	}
	return false
}

// term reads an IRI, a blank node or, in object position, a literal.
func (c *ntCursor) term(pos position) (Term, error) {
	c.skipWS()
	if c.done() {
		return nil, c.errorf("unexpected end of line")
	}
	switch rest := c.rest(); {
	case strings.HasPrefix(rest, "<<"):
		return nil, c.errorf("quoted triples are not supported")
	case rest[0] == '<':
		return c.iri()
	case strings.HasPrefix(rest, "_:"):
		return c.blankNode()
	case rest[0] == '"' && pos == subjectPos:
		return nil, ErrLiteralSubject
	case rest[0] == '"':
		return c.literal()
	default:
		return nil, c.errorf("unexpected token")
	}
}

func (c *ntCursor) iri() (IRI, error) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	var b strings.Builder
	for !c.done() && c.peek() != '>' {
		if c.atUnicodeEscape() {
			if err := c.unicodeEscape(&b); err != nil {
				return IRI{}, err
			}
			continue
		}
		b.WriteByte(c.peek())
		c.pos++
	}
	if c.done() {
		return IRI{}, c.errorf("unterminated IRI")
	}
	c.pos++
	value := b.String()
	if err := ValidateIRI(value); err != nil {
		return IRI{}, c.errorf("%v", err)
	}
	return IRI{Value: value}, nil
}

func (c *ntCursor) blankNode() (BlankNode, error) {
	c.pos += len("_:")
	id := c.token()
	if id == "" {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: id}, nil
}

// token consumes bytes up to the next delimiter.
func (c *ntCursor) token() string {
	start := c.pos
	for !c.done() && !isTermDelimiter(c.peek()) {
		c.pos++
	}
	return c.input[start:c.pos]
}

// ntEscapes maps the single character escapes of N-Triples string literals.
var ntEscapes = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', 'b': '\b', 'f': '\f',
	'"': '"', '\'': '\'', '\\': '\\',
}

func (c *ntCursor) literal() (Literal, error) {
	c.pos++ // opening quote
	var b strings.Builder
	for {
		if c.done() {
			return Literal{}, c.errorf("unterminated literal")
		}
		ch := c.peek()
		if ch == '"' {
			c.pos++
			break
		}
		if ch != '\\' {
			b.WriteByte(ch)
			c.pos++
			continue
		}
		if c.pos+1 >= len(c.input) {
			return Literal{}, c.errorf("unterminated escape")
		}
		if c.atUnicodeEscape() {
			if err := c.unicodeEscape(&b); err != nil {
				return Literal{}, err
			}
			continue
		}
		next := c.input[c.pos+1]
		decoded, ok := ntEscapes[next]
		if !ok {
			return Literal{}, c.errorf("invalid escape \\%c", next)
		}
		b.WriteByte(decoded)
		c.pos += 2
	}

	lit := Literal{Lexical: b.String()}
	switch rest := c.rest(); {
	case strings.HasPrefix(rest, "@"):
		c.pos++
		if lit.Lang = c.token(); lit.Lang == "" {
			return Literal{}, c.errorf("language tag missing")
		}
	case strings.HasPrefix(rest, "^^"):
		c.pos += 2
		dt, err := c.iri()
		if err != nil {
			return Literal{}, err
		}
		lit.Datatype = dt
	}
	return lit, nil
}

func (c *ntCursor) atUnicodeEscape() bool {
	return c.peek() == '\\' && c.pos+1 < len(c.input) && (c.input[c.pos+1] == 'u' || c.input[c.pos+1] == 'U')
}

func (c *ntCursor) unicodeEscape(b *strings.Builder) error {
	r, n, ok := decodeUnicodeEscape(c.input, c.pos)
	if !ok {
		return c.errorf("invalid unicode escape")
	}
	b.WriteRune(r)
	c.pos += n
	return nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("ntriples: "+format, args...)
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '.':
		return true
	default:
		return false
	}
}

type ntEncoder struct {
	writer *bufio.Writer
	err    error
}

func newNTriplesEncoder(w io.Writer) Writer {
	return &ntEncoder{writer: bufio.NewWriter(w)}
}

func (e *ntEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if t.IsZero() {
		return errors.New("ntriples: empty statement")
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return errors.New("ntriples: missing statement fields")
	}
	if t.S.Kind() == TermLiteral {
		return ErrLiteralSubject
	}
	_, err := e.writer.WriteString(t.String() + " .\n")
	if err != nil {
		e.err = err
	}
	return err
}

func (e *ntEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *ntEncoder) Close() error {
	return e.Flush()
}

func renderIRI(iri IRI) string {
	return "<" + iri.Value + ">"
}

func renderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return renderIRI(value)
	case BlankNode:
		return value.String()
	case Literal:
		quoted := `"` + escapeNTriplesString(value.Lexical) + `"`
		if value.Lang != "" {
			return quoted + "@" + value.Lang
		}
		if value.Datatype.Value != "" {
			return quoted + "^^" + renderIRI(value.Datatype)
		}
		return quoted
	default:
		return ""
	}
}
