package parser

import (
	"strings"
	"unicode"
)

// position locates a rune in the source.
type position struct {
	offset int // bytes
	line   int
	column int
}

// word accumulates the token currently being scanned: a bare literal, a
// constructor name or argument, or the contents of a string literal.
type word struct {
	buf     strings.Builder
	start   position
	quoted  bool
	sawDot  bool
	escaped bool // the previous rune inside a string was an unescaped backslash
}

func (w *word) begin(at position) {
	w.reset()
	w.start = at
}

func (w *word) write(r rune) {
	w.buf.WriteRune(r)
}

func (w *word) text() string {
	return w.buf.String()
}

// pending reports whether a token has been started and not yet consumed.
// An empty string literal is pending.
func (w *word) pending() bool {
	return w.quoted || w.buf.Len() > 0
}

func (w *word) reset() {
	w.buf.Reset()
	w.quoted = false
	w.sawDot = false
	w.escaped = false
}

// isNumber reports whether the token so far starts like a number literal.
func (w *word) isNumber() bool {
	if w.quoted {
		return false
	}
	s := w.buf.String()
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// isInteger reports whether the token so far is an optional sign followed
// by decimal digits only.
func (w *word) isInteger() bool {
	if !w.isNumber() || w.sawDot {
		return false
	}
	s := strings.TrimLeft(w.buf.String(), "-+")
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// isTokenRune reports whether r may appear in a bare token.
func isTokenRune(r rune) bool {
	return isIdentPart(r) || r == '-' || r == '+'
}
