package rdf

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const (
	unicodeEscapeLength     = 6  // Length of \uXXXX escape sequence
	unicodeLongEscapeLength = 10 // Length of \UXXXXXXXX escape sequence
)

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// readLineWithLimit reads one '\n' terminated line. A non-positive limit
// disables the check.
func readLineWithLimit(reader *bufio.Reader, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return line, nil
			}
			return "", err
		}
		return line, nil
	}

	var buffer []byte
	for {
		part, err := reader.ReadSlice('\n')
		buffer = append(buffer, part...)
		if len(buffer) > maxBytes {
			discardLine(reader)
			return "", ErrLineTooLong
		}
		if err == nil {
			return string(buffer), nil
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF && len(buffer) > 0 {
			return string(buffer), nil
		}
		return "", err
	}
}

func discardLine(reader *bufio.Reader) {
	for {
		_, err := reader.ReadSlice('\n')
		if err == nil || err != bufio.ErrBufferFull {
			return
		}
	}
}

// decodeUnicodeEscape decodes the hex digits of a \u or \U escape starting at
// s[pos] (the backslash). It returns the rune and the escape length.
func decodeUnicodeEscape(s string, pos int) (rune, int, bool) {
	length := unicodeEscapeLength
	if s[pos+1] == 'U' {
		length = unicodeLongEscapeLength
	}
	if pos+length > len(s) {
		return 0, 0, false
	}
	digits := s[pos+2 : pos+length]
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return 0, 0, false
		}
	}
	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(value), length, true
}

// escapeNTriplesString escapes a lexical form for N-Triples output.
func escapeNTriplesString(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	for _, r := range value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
