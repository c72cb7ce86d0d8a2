// Package render turns resolved tokens and constructor calls into values of
// the target format.
package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mcncl/gtmconv/internal/analyzer"
	"github.com/mcncl/gtmconv/internal/config"
	apperrors "github.com/mcncl/gtmconv/internal/errors"
	"github.com/mcncl/gtmconv/internal/models"
)

// DefaultColorConstants maps UIColor class constants to their tags.
var DefaultColorConstants = map[string]string{
	"groupTableViewBackgroundColor": "BACKGROUND_VIEW_TABLE_GROUP",
	"darkTextColor":                 "TEXT_DARK",
	"lightTextColor":                "TEXT_LIGHT",
	"blackColor":                    "BLACK",
	"darkGrayColor":                 "GRAY_DARK",
	"grayColor":                     "GRAY",
	"lightGrayColor":                "GRAY_LIGHT",
	"whiteColor":                    "WHITE",
	"clearColor":                    "CLEAR",
	"brownColor":                    "BROWN",
	"purpleColor":                   "PURPLE",
	"magentaColor":                  "MAGENTA",
	"yellowColor":                   "YELLOW",
	"cyanColor":                     "CYAN",
	"blueColor":                     "BLUE",
	"greenColor":                    "GREEN",
	"orangeColor":                   "ORANGE",
	"redColor":                      "RED",
}

// rgbaLabels is the order channels are written in.
var rgbaLabels = []string{"red", "green", "blue", "alpha"}

// Error is a rendering failure. Reason is one of the sentinel errors in the
// errors package.
type Error struct {
	Reason error
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Reason
}

func fail(reason error, format string, args ...any) *Error {
	return &Error{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Argument is one argument of a constructor call.
type Argument struct {
	Label  string
	Text   string
	Quoted bool
}

// Renderer formats values per type
type Renderer struct {
	colors map[string]string
}

// NewRenderer creates a Renderer with the default color constants
func NewRenderer() *Renderer {
	colors := make(map[string]string, len(DefaultColorConstants))
	for name, tag := range DefaultColorConstants {
		colors[name] = tag
	}
	return &Renderer{colors: colors}
}

// NewRendererWithConfig creates a Renderer that also knows the color
// constants registered in cfg
func NewRendererWithConfig(cfg *config.Config) *Renderer {
	r := NewRenderer()
	for name, tag := range cfg.Colors {
		r.colors[strings.TrimSuffix(name, "()")] = tag
	}
	return r
}

// TypeTag renders the value of a "|type" line.
func TypeTag(vt models.ValueType) string {
	return strconv.Quote(string(vt))
}

// Scalar renders an Int, Double or String token. String tokens are given
// without their quotes and are written back verbatim, escapes included.
func (r *Renderer) Scalar(vt models.ValueType, token string) (string, error) {
	switch vt {
	case models.Int, models.Double:
		if !analyzer.IsNumeric(token) {
			return "", fail(apperrors.ErrUnsupportedLiteral, "%q is not a number", token)
		}
		return token, nil
	case models.String:
		return `"` + token + `"`, nil
	default:
		return "", fail(apperrors.ErrUnsupportedLiteral, "%s is not a scalar type", vt)
	}
}

// Constructor renders a constructor call of the given type.
func (r *Renderer) Constructor(vt models.ValueType, name string, args []Argument) (string, error) {
	switch vt {
	case models.Float:
		return renderFloat(name, args)
	case models.Size:
		return renderSize(name, args)
	case models.Color:
		return renderColor(name, args)
	default:
		return "", fail(apperrors.ErrUnknownConstructor, "%q does not construct a value", name)
	}
}

// ColorConstant renders a UIColor class constant such as whiteColor.
func (r *Renderer) ColorConstant(name string) (string, error) {
	tag, ok := r.colors[name]
	if !ok {
		detail := fmt.Sprintf("color constant %q", name)
		if s := analyzer.Suggest(name, r.ColorConstantNames()); s != "" {
			detail += fmt.Sprintf(" (did you mean %q?)", s)
		}
		return "", &Error{Reason: apperrors.ErrUnknownConstructor, Detail: detail}
	}
	return strconv.Quote(tag), nil
}

// ColorConstantNames returns the known color constant names, sorted.
func (r *Renderer) ColorConstantNames() []string {
	names := make([]string, 0, len(r.colors))
	for name := range r.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkNumeric(name string, arg Argument) error {
	if arg.Quoted || !analyzer.IsNumeric(arg.Text) {
		return fail(apperrors.ErrNonNumericArgument, "%s expects a number, got %s", name, describe(arg))
	}
	return nil
}

func checkUnlabeled(name string, arg Argument) error {
	if arg.Label != "" {
		return fail(apperrors.ErrInvalidArgument, "%s does not take a %q label", name, arg.Label)
	}
	return nil
}

func describe(arg Argument) string {
	if arg.Quoted {
		return `"` + arg.Text + `"`
	}
	return strconv.Quote(arg.Text)
}

// renderFloat writes the single numeric argument bare; no argument is 0.
func renderFloat(name string, args []Argument) (string, error) {
	switch len(args) {
	case 0:
		return "0", nil
	case 1:
		if err := checkUnlabeled(name, args[0]); err != nil {
			return "", err
		}
		if err := checkNumeric(name, args[0]); err != nil {
			return "", err
		}
		return args[0].Text, nil
	default:
		return "", fail(apperrors.ErrInvalidArgument, "%s takes at most 1 argument, got %d", name, len(args))
	}
}

// renderSize writes "w,h".
func renderSize(name string, args []Argument) (string, error) {
	if len(args) != 2 {
		return "", fail(apperrors.ErrInvalidArgument, "%s takes 2 arguments, got %d", name, len(args))
	}
	for _, arg := range args {
		if err := checkUnlabeled(name, arg); err != nil {
			return "", err
		}
		if err := checkNumeric(name, arg); err != nil {
			return "", err
		}
	}
	return `"` + args[0].Text + "," + args[1].Text + `"`, nil
}

func renderColor(name string, args []Argument) (string, error) {
	if len(args) == 1 && args[0].Label == "" {
		arg := args[0]
		if arg.Quoted || !analyzer.IsHex(arg.Text) {
			return "", fail(apperrors.ErrNonNumericArgument, "%s expects a 0x hex literal, got %s", name, describe(arg))
		}
		return `"#` + arg.Text[2:] + `"`, nil
	}
	return renderRGBA(name, args)
}

// renderRGBA writes "#RRGGBBAA" from red, green, blue and alpha fractions.
func renderRGBA(name string, args []Argument) (string, error) {
	channels := make(map[string]float64, len(rgbaLabels))
	for _, arg := range args {
		if arg.Label == "" {
			return "", fail(apperrors.ErrInvalidArgument, "%s expects labelled red, green, blue and alpha arguments", name)
		}
		if !isRGBALabel(arg.Label) {
			return "", fail(apperrors.ErrInvalidArgument, "%s has no %q argument", name, arg.Label)
		}
		if _, dup := channels[arg.Label]; dup {
			return "", fail(apperrors.ErrInvalidArgument, "%s argument %q given twice", name, arg.Label)
		}
		if err := checkNumeric(name, arg); err != nil {
			return "", err
		}
		f, err := strconv.ParseFloat(arg.Text, 64)
		if err != nil {
			return "", fail(apperrors.ErrNonNumericArgument, "%s argument %q: %v", name, arg.Label, err)
		}
		if f < 0 || f > 1 {
			return "", fail(apperrors.ErrInvalidArgument, "%s argument %q must be within [0, 1], got %s", name, arg.Label, arg.Text)
		}
		channels[arg.Label] = f
	}

	var b strings.Builder
	b.WriteString(`"#`)
	for _, label := range rgbaLabels {
		f, ok := channels[label]
		if !ok {
			return "", fail(apperrors.ErrInvalidArgument, "%s is missing the %q argument", name, label)
		}
		b.WriteString(ColorByte(f))
	}
	b.WriteByte('"')
	return b.String(), nil
}

func isRGBALabel(label string) bool {
	for _, l := range rgbaLabels {
		if l == label {
			return true
		}
	}
	return false
}

// ColorByte converts a fraction in [0, 1] to two uppercase hex digits,
// rounding half away from zero: 0.25 -> "40", 0.5 -> "80", 0.9 -> "E6".
func ColorByte(f float64) string {
	return fmt.Sprintf("%02X", int(math.Round(f*255)))
}
