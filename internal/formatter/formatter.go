package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcncl/gtmconv/internal/config"
	"github.com/mcncl/gtmconv/internal/errors"
	"github.com/mcncl/gtmconv/internal/models"
)

// Formatter is responsible for presenting converted lines as text
type Formatter struct {
	format string
	indent int
}

// NewFormatter creates a Formatter writing bare lines
func NewFormatter() *Formatter {
	return &Formatter{format: config.FormatLines, indent: 2}
}

// NewFormatterWithConfig creates a Formatter using the output settings of cfg
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	f := NewFormatter()
	if cfg.Output.Format != "" {
		f.format = cfg.Output.Format
	}
	f.indent = cfg.Output.Indent
	return f
}

// Format renders out in the configured format. The lines format writes one
// line per entry, each ending in a comma. The json format wraps the lines in
// an object, drops the final comma and checks that the result parses.
func (f *Formatter) Format(out models.Output) (string, error) {
	switch f.format {
	case config.FormatLines:
		return f.formatLines(out), nil
	case config.FormatJSON:
		return f.formatJSON(out)
	default:
		return "", errors.NewFormatError(fmt.Sprintf("unknown output format '%s'", f.format), nil)
	}
}

func (f *Formatter) formatLines(out models.Output) string {
	if out.Len() == 0 {
		return ""
	}
	return strings.Join(out.Strings(), "\n") + "\n"
}

func (f *Formatter) formatJSON(out models.Output) (string, error) {
	if out.Len() == 0 {
		return "{}\n", nil
	}

	pad := strings.Repeat(" ", f.indent)
	lines := out.Strings()

	var b strings.Builder
	b.WriteString("{\n")
	for i, line := range lines {
		if i == len(lines)-1 {
			line = strings.TrimSuffix(line, ",")
		}
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")

	result := b.String()
	if !json.Valid([]byte(result)) {
		return "", errors.NewFormatError("converted lines do not form a valid JSON object", errors.ErrInvalidJSON)
	}
	return result, nil
}

// Merge concatenates several outputs in order.
func Merge(outs ...models.Output) models.Output {
	var n int
	for _, o := range outs {
		n += o.Len()
	}
	merged := models.Output{Lines: make([]models.Line, 0, n)}
	for _, o := range outs {
		merged.Lines = append(merged.Lines, o.Lines...)
	}
	return merged
}
