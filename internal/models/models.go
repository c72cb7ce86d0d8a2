package models

import "strings"

// ValueType is the semantic type of a converted value. The string form is the
// type tag written on the sibling "|type" line.
type ValueType string

const (
	Unknown    ValueType = "UNKNOWN"
	String     ValueType = "STRING"
	Int        ValueType = "INT"
	Double     ValueType = "DOUBLE"
	Float      ValueType = "FLOAT"
	Color      ValueType = "COLOR"
	Size       ValueType = "SIZE"
	Array      ValueType = "ARRAY"
	Dictionary ValueType = "DICTIONARY"
)

// IsConstructor reports whether values of this type are written with a
// constructor call (CGFloat(...), UIColor(...), CGSizeMake(...)).
func (t ValueType) IsConstructor() bool {
	return t == Float || t == Color || t == Size
}

// ParseValueType maps a tag such as "color" or "FLOAT" to its ValueType.
func ParseValueType(s string) (ValueType, bool) {
	switch ValueType(strings.ToUpper(strings.TrimSpace(s))) {
	case String:
		return String, true
	case Int:
		return Int, true
	case Double:
		return Double, true
	case Float:
		return Float, true
	case Color:
		return Color, true
	case Size:
		return Size, true
	case Array:
		return Array, true
	case Dictionary:
		return Dictionary, true
	}
	return Unknown, false
}

// Line is one entry of the target format: a quoted key and a rendered value.
type Line struct {
	Key   string
	Value string
}

// String renders the line as `"<key>": <value>,`.
func (l Line) String() string {
	var b strings.Builder
	b.Grow(len(l.Key) + len(l.Value) + 5)
	b.WriteByte('"')
	b.WriteString(l.Key)
	b.WriteString(`": `)
	b.WriteString(l.Value)
	b.WriteByte(',')
	return b.String()
}

// Output is the ordered result of one conversion.
type Output struct {
	Lines []Line
}

// Strings returns every line rendered in order.
func (o Output) Strings() []string {
	out := make([]string, len(o.Lines))
	for i, l := range o.Lines {
		out[i] = l.String()
	}
	return out
}

// Len returns the number of lines.
func (o Output) Len() int { return len(o.Lines) }
