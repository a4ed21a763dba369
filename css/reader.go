// Package css implements the subset of CSS needed to style SVG documents:
// selectors (parsing, specificity and matching against a tree)
// and style sheets made of rule sets and declarations.
package css

import (
	"bytes"

	"github.com/tdewolff/parse/v2"
)

// Reader is a cursor over CSS source text.
type Reader struct {
	src []byte
	pos int
}

func NewReader(input string) *Reader {
	return &Reader{src: []byte(input)}
}

func (r *Reader) EOF() bool { return r.pos >= len(r.src) }

// Pos returns the current byte offset.
func (r *Reader) Pos() int { return r.pos }

// Peek returns the byte `n` positions ahead, or 0 past the end.
func (r *Reader) Peek(n int) byte {
	if r.pos+n >= len(r.src) {
		return 0
	}
	return r.src[r.pos+n]
}

// Next consumes and returns the current byte.
func (r *Reader) Next() byte {
	c := r.Peek(0)
	if !r.EOF() {
		r.pos++
	}
	return c
}

func (r *Reader) StartsWith(s string) bool {
	return bytes.HasPrefix(r.src[r.pos:], []byte(s))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// SkipSpaceAndComments consumes whitespace and /* */ comments,
// returning true if something was skipped.
func (r *Reader) SkipSpaceAndComments() bool {
	start := r.pos
	for !r.EOF() {
		if isSpace(r.src[r.pos]) {
			r.pos++
		} else if r.StartsWith("/*") {
			end := bytes.Index(r.src[r.pos+2:], []byte("*/"))
			if end == -1 {
				r.pos = len(r.src)
			} else {
				r.pos += end + 4
			}
		} else {
			break
		}
	}
	return r.pos != start
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == '-' || ('0' <= c && c <= '9')
}

// IsIdentStart returns true if an identifier starts at the current position.
func (r *Reader) IsIdentStart() bool {
	c := r.Peek(0)
	if c == '-' {
		c = r.Peek(1)
		return isNameStart(c) || c == '-' || c == '\\'
	}
	return isNameStart(c) || c == '\\'
}

// ReadIdent reads a CSS identifier, resolving simple backslash escapes.
// It returns an empty string if no identifier starts at the current position.
func (r *Reader) ReadIdent() string {
	if !r.IsIdentStart() {
		return ""
	}
	var out []byte
	for !r.EOF() {
		c := r.src[r.pos]
		if c == '\\' && r.pos+1 < len(r.src) {
			out = append(out, r.src[r.pos+1])
			r.pos += 2
		} else if isNameChar(c) {
			out = append(out, c)
			r.pos++
		} else {
			break
		}
	}
	return string(out)
}

// ReadString reads a single or double quoted string, without the quotes.
func (r *Reader) ReadString() (string, error) {
	quote := r.Peek(0)
	if quote != '"' && quote != '\'' {
		return "", r.Errorf("expected string")
	}
	r.pos++
	var out []byte
	for !r.EOF() {
		c := r.Next()
		switch c {
		case quote:
			return string(out), nil
		case '\\':
			if !r.EOF() {
				out = append(out, r.Next())
			}
		case '\n':
			return "", r.Errorf("unterminated string")
		default:
			out = append(out, c)
		}
	}
	return "", r.Errorf("unterminated string")
}

// Expect consumes `c` or returns an error.
func (r *Reader) Expect(c byte) error {
	if r.Peek(0) != c {
		if r.EOF() {
			return r.Errorf("expected %q, got end of input", c)
		}
		return r.Errorf("expected %q, got %q", c, r.Peek(0))
	}
	r.pos++
	return nil
}

// Errorf returns an error located at the current position.
func (r *Reader) Errorf(message string, a ...interface{}) error {
	return parse.NewError(bytes.NewReader(r.src), r.pos, message, a...)
}
