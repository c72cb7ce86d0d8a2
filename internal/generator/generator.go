package generator

import (
	"strconv"

	"github.com/mcncl/gtmconv/internal/models"
	"github.com/mcncl/gtmconv/internal/render"
)

// Generator is responsible for building the ordered output lines
type Generator struct {
	lines []models.Line
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// OpenLine appends a new line with the given key and an empty value.
func (g *Generator) OpenLine(key string) {
	g.lines = append(g.lines, models.Line{Key: key})
}

// AppendToLast appends text to the value of the most recently opened line.
// It does nothing when no line has been opened yet.
func (g *Generator) AppendToLast(text string) {
	if len(g.lines) == 0 {
		return
	}
	g.lines[len(g.lines)-1].Value += text
}

// Value writes a rendered value and its sibling type line.
func (g *Generator) Value(path models.KeyPath, value string, vt models.ValueType) {
	g.OpenLine(path.String())
	g.AppendToLast(value)
	g.typeLine(path.Type(), vt)
}

// Array writes the element count and type of a closed array.
func (g *Generator) Array(path models.KeyPath, count int) {
	g.OpenLine(path.String())
	g.AppendToLast(strconv.Itoa(count))
	g.typeLine(path.Type(), models.Array)
}

// Dictionary writes the key count, every key in order, and the type of a
// closed dictionary. Keys are always typed STRING.
func (g *Generator) Dictionary(path models.KeyPath, keys []string) {
	g.OpenLine(path.Keys())
	g.AppendToLast(strconv.Itoa(len(keys)))
	for i, k := range keys {
		g.OpenLine(path.KeyAt(i))
		g.AppendToLast(`"` + k + `"`)
		g.typeLine(path.KeyAt(i)+models.TypeSuffix, models.String)
	}
	g.typeLine(path.Type(), models.Dictionary)
}

func (g *Generator) typeLine(key string, vt models.ValueType) {
	g.OpenLine(key)
	g.AppendToLast(render.TypeTag(vt))
}

// Len returns the number of lines written so far.
func (g *Generator) Len() int {
	return len(g.lines)
}

// Lines returns the lines written so far.
func (g *Generator) Lines() []models.Line {
	return g.lines
}

// Output returns the finished output, running the fixup pass when asked.
func (g *Generator) Output(fixup bool) models.Output {
	lines := g.lines
	if fixup {
		lines = Fixup(lines)
	}
	return models.Output{Lines: lines}
}
