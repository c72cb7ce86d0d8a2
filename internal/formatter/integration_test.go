package formatter

import (
	"encoding/json"
	"testing"

	"github.com/mcncl/gtmconv/internal/config"
	"github.com/mcncl/gtmconv/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_ParserFormatter(t *testing.T) {
	// Test the full pipeline: Parser -> Generator -> Formatter
	input := `TRACKS = [["a", "b"], ["c"]],
LEVEL_PRODUCTS = ["cc.sec_3" : 3, "cc.sec_all" : -1],
TEXT_COLOR = UIColor(red: 0, green: 0.478431372549, blue: 1, alpha: 1),
FONT_SIZE : CGFloat = 20`

	out, err := parser.ParseString(input)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Output.Format = config.FormatJSON
	formatted, err := NewFormatterWithConfig(cfg).Format(out)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(formatted), &decoded))

	assert.Len(t, decoded, out.Len())
	assert.Equal(t, "c", decoded["TRACKS,1,0"])
	assert.Equal(t, float64(2), decoded["TRACKS"])
	assert.Equal(t, float64(-1), decoded["LEVEL_PRODUCTS;cc.sec_all"])
	assert.Equal(t, "cc.sec_3", decoded["LEVEL_PRODUCTS:KEYS,0"])
	assert.Equal(t, "#007AFFFF", decoded["TEXT_COLOR"])
	assert.Equal(t, float64(20), decoded["FONT_SIZE"])
	assert.Equal(t, "INT", decoded["FONT_SIZE|type"])
}

func TestIntegration_IdentifierCaseAndLines(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Identifiers.Case = config.CaseKebab

	out, err := parser.NewWithConfig(cfg).ParseString(`MAX_S_COUNT = 50`)
	require.NoError(t, err)

	formatted, err := NewFormatterWithConfig(cfg).Format(out)
	require.NoError(t, err)
	assert.Equal(t, "\"max-s-count\": 50,\n\"max-s-count|type\": \"INT\",\n", formatted)
}
