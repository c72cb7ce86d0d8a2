package models

import (
	"strconv"
	"strings"
)

// Segment separators. Array indexes and dictionary keys use different tokens
// so that `A,1` and `A;1` never collide.
const (
	IndexSeparator = ","
	KeySeparator   = ";"
	KeysMarker     = ":KEYS"
	TypeSuffix     = "|type"
)

// Segment is one level of nesting below a declared identifier.
type Segment struct {
	Index int
	Key   string
	// IsKey selects Key over Index.
	IsKey bool
}

// IndexSegment returns an array element segment.
func IndexSegment(i int) Segment { return Segment{Index: i} }

// KeySegment returns a dictionary value segment.
func KeySegment(k string) Segment { return Segment{Key: k, IsKey: true} }

// KeyPath is the composite key of an output line: the declared identifier
// followed by one segment per enclosing array or dictionary.
type KeyPath struct {
	Ident    string
	Segments []Segment
}

// NewKeyPath creates a path for ident with the given segments.
func NewKeyPath(ident string, segments ...Segment) KeyPath {
	return KeyPath{Ident: ident, Segments: segments}
}

// String renders the path, e.g. `TRACKS,0;abc`.
func (p KeyPath) String() string {
	var b strings.Builder
	b.WriteString(p.Ident)
	for _, s := range p.Segments {
		if s.IsKey {
			b.WriteString(KeySeparator)
			b.WriteString(s.Key)
		} else {
			b.WriteString(IndexSeparator)
			b.WriteString(strconv.Itoa(s.Index))
		}
	}
	return b.String()
}

// Type returns the key of the sibling type line.
func (p KeyPath) Type() string {
	return p.String() + TypeSuffix
}

// Keys returns the key of a dictionary's key-count line.
func (p KeyPath) Keys() string {
	return p.String() + KeysMarker
}

// KeyAt returns the key under which the i-th dictionary key is stored.
func (p KeyPath) KeyAt(i int) string {
	return p.Keys() + IndexSeparator + strconv.Itoa(i)
}
