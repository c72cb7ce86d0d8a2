package render

import (
	"testing"

	"github.com/mcncl/gtmconv/internal/config"
	apperrors "github.com/mcncl/gtmconv/internal/errors"
	"github.com/mcncl/gtmconv/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorByte(t *testing.T) {
	tests := []struct {
		fraction float64
		expected string
	}{
		{0, "00"},
		{0.25, "40"},
		{0.5, "80"},
		{0.9, "E6"},
		{0.478431372549, "7A"},
		{1, "FF"},
		{0.01, "03"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ColorByte(tt.fraction), "fraction %v", tt.fraction)
	}
}

func TestScalar(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		vt       models.ValueType
		token    string
		expected string
	}{
		{"int", models.Int, "5", "5"},
		{"negative int", models.Int, "-1", "-1"},
		{"double keeps trailing zero", models.Double, "0.10", "0.10"},
		{"string", models.String, "abcdefg", `"abcdefg"`},
		{"empty string", models.String, "", `""`},
		{"escaped quote kept", models.String, `say \"hi\"`, `"say \"hi\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Scalar(tt.vt, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := r.Scalar(models.Int, "abc")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedLiteral)

	_, err = r.Scalar(models.Color, "x")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedLiteral)
}

func TestConstructor(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		vt       models.ValueType
		ctor     string
		args     []Argument
		expected string
	}{
		{"float", models.Float, "CGFloat", []Argument{{Text: "10"}}, "10"},
		{"float decimal", models.Float, "CFTimeInterval", []Argument{{Text: "0.5"}}, "0.5"},
		{"empty float", models.Float, "CGFloat", nil, "0"},
		{"size", models.Size, "CGSizeMake", []Argument{{Text: "80"}, {Text: "80"}}, `"80,80"`},
		{"size decimals", models.Size, "CGSizeMake", []Argument{{Text: "100"}, {Text: "2.5"}}, `"100,2.5"`},
		{"hex color", models.Color, "UIColor", []Argument{{Text: "0x12345678"}}, `"#12345678"`},
		{"hex color keeps case", models.Color, "UIColor", []Argument{{Text: "0xffAA00"}}, `"#ffAA00"`},
		{"rgba color", models.Color, "UIColor", []Argument{
			{Label: "red", Text: "0.25"},
			{Label: "green", Text: "0.25"},
			{Label: "blue", Text: "0.5"},
			{Label: "alpha", Text: "0.9"},
		}, `"#404080E6"`},
		{"rgba with integer channels", models.Color, "UIColor", []Argument{
			{Label: "red", Text: "0"},
			{Label: "green", Text: "0.478431372549"},
			{Label: "blue", Text: "1"},
			{Label: "alpha", Text: "1"},
		}, `"#007AFFFF"`},
		{"rgba in any order", models.Color, "UIColor", []Argument{
			{Label: "alpha", Text: "1"},
			{Label: "blue", Text: "0"},
			{Label: "green", Text: "0"},
			{Label: "red", Text: "1"},
		}, `"#FF0000FF"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Constructor(tt.vt, tt.ctor, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConstructor_Errors(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name   string
		vt     models.ValueType
		args   []Argument
		reason error
		detail string
	}{
		{"float with string", models.Float, []Argument{{Text: "abc", Quoted: true}}, apperrors.ErrNonNumericArgument, `expects a number, got "abc"`},
		{"float with identifier", models.Float, []Argument{{Text: "width"}}, apperrors.ErrNonNumericArgument, "expects a number"},
		{"float with two args", models.Float, []Argument{{Text: "1"}, {Text: "2"}}, apperrors.ErrInvalidArgument, "at most 1 argument"},
		{"float with label", models.Float, []Argument{{Label: "value", Text: "1"}}, apperrors.ErrInvalidArgument, `does not take a "value" label`},
		{"size with one arg", models.Size, []Argument{{Text: "1"}}, apperrors.ErrInvalidArgument, "takes 2 arguments, got 1"},
		{"size with label", models.Size, []Argument{{Label: "width", Text: "1"}, {Label: "height", Text: "2"}}, apperrors.ErrInvalidArgument, "label"},
		{"size with text", models.Size, []Argument{{Text: "1"}, {Text: "x"}}, apperrors.ErrNonNumericArgument, "expects a number"},
		{"color without args", models.Color, nil, apperrors.ErrInvalidArgument, `missing the "red" argument`},
		{"color with decimal", models.Color, []Argument{{Text: "12"}}, apperrors.ErrNonNumericArgument, "hex literal"},
		{"color unknown label", models.Color, []Argument{{Label: "white", Text: "1"}, {Label: "alpha", Text: "1"}}, apperrors.ErrInvalidArgument, `has no "white" argument`},
		{"color duplicate label", models.Color, []Argument{{Label: "red", Text: "1"}, {Label: "red", Text: "1"}}, apperrors.ErrInvalidArgument, "given twice"},
		{"color out of range", models.Color, []Argument{
			{Label: "red", Text: "255"}, {Label: "green", Text: "0"}, {Label: "blue", Text: "0"}, {Label: "alpha", Text: "1"},
		}, apperrors.ErrInvalidArgument, "within [0, 1]"},
		{"color missing alpha", models.Color, []Argument{
			{Label: "red", Text: "1"}, {Label: "green", Text: "0"}, {Label: "blue", Text: "0"},
		}, apperrors.ErrInvalidArgument, `missing the "alpha" argument`},
		{"unlabelled rgba", models.Color, []Argument{{Text: "1"}, {Text: "1"}}, apperrors.ErrInvalidArgument, "labelled"},
		{"not a constructor type", models.Int, nil, apperrors.ErrUnknownConstructor, "does not construct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Constructor(tt.vt, "Ctor", tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.reason)
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

func TestColorConstant(t *testing.T) {
	r := NewRenderer()

	got, err := r.ColorConstant("whiteColor")
	require.NoError(t, err)
	assert.Equal(t, `"WHITE"`, got)

	got, err = r.ColorConstant("groupTableViewBackgroundColor")
	require.NoError(t, err)
	assert.Equal(t, `"BACKGROUND_VIEW_TABLE_GROUP"`, got)

	_, err = r.ColorConstant("whitColor")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownConstructor)
	assert.Contains(t, err.Error(), `did you mean "whiteColor"?`)

	assert.Len(t, r.ColorConstantNames(), len(DefaultColorConstants))
}

func TestNewRendererWithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Colors["systemBlueColor()"] = "SYSTEM_BLUE"
	cfg.Colors["whiteColor"] = "PAPER"

	r := NewRendererWithConfig(cfg)

	got, err := r.ColorConstant("systemBlueColor")
	require.NoError(t, err)
	assert.Equal(t, `"SYSTEM_BLUE"`, got)

	got, err = r.ColorConstant("whiteColor")
	require.NoError(t, err)
	assert.Equal(t, `"PAPER"`, got)

	got, err = NewRenderer().ColorConstant("whiteColor")
	require.NoError(t, err)
	assert.Equal(t, `"WHITE"`, got)
}

func TestTypeTag(t *testing.T) {
	assert.Equal(t, `"COLOR"`, TypeTag(models.Color))
	assert.Equal(t, `"DICTIONARY"`, TypeTag(models.Dictionary))
}
