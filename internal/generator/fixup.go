package generator

import (
	"github.com/mcncl/gtmconv/internal/models"
)

// Fixup removes every line whose value is empty, which would render as
// `"key": ,`. Keys and string contents are never inspected.
// The input slice is not modified.
func Fixup(lines []models.Line) []models.Line {
	out := make([]models.Line, 0, len(lines))
	for _, l := range lines {
		if l.Value == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
