package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mcncl/gtmconv/internal/config"
	"github.com/mcncl/gtmconv/internal/models"
)

// Regex patterns for literal tokens
var (
	intRegex        = regexp.MustCompile(`^[-+]?[0-9]+$`)
	doubleRegex     = regexp.MustCompile(`^[-+]?[0-9]+\.[0-9]+([eE][-+]?[0-9]+)?$`)
	exponentRegex   = regexp.MustCompile(`^[-+]?[0-9]+[eE][-+]?[0-9]+$`)
	hexRegex        = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// DefaultConstructors are the names that introduce a constructor value.
var DefaultConstructors = map[string]models.ValueType{
	"CGFloat":        models.Float,
	"CFTimeInterval": models.Float,
	"UIColor":        models.Color,
	"CGSizeMake":     models.Size,
}

// maxSuggestionDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestionDistance = 3

// Analyzer resolves the semantic type of scanned tokens
type Analyzer struct {
	// constructors maps type-introducing names to their value type
	constructors map[string]models.ValueType
}

// NewAnalyzer creates a new Analyzer with the default constructor table.
func NewAnalyzer() *Analyzer {
	constructors := make(map[string]models.ValueType, len(DefaultConstructors))
	for name, vt := range DefaultConstructors {
		constructors[name] = vt
	}
	return &Analyzer{constructors: constructors}
}

// NewAnalyzerWithConfig creates an Analyzer that also knows the constructors
// registered in cfg. Configured names override the defaults.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	a := NewAnalyzer()
	for name, vt := range cfg.ConstructorTable() {
		a.constructors[name] = vt
	}
	return a
}

// ConstructorType returns the value type introduced by name, if any.
func (a *Analyzer) ConstructorType(name string) (models.ValueType, bool) {
	vt, ok := a.constructors[name]
	return vt, ok
}

// ConstructorNames returns the known type-introducing names, sorted.
func (a *Analyzer) ConstructorNames() []string {
	names := make([]string, 0, len(a.constructors))
	for name := range a.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classify resolves an unquoted token to its value type. The constructor
// table is consulted first, then numeric forms. Unknown is returned for
// anything else.
func (a *Analyzer) Classify(token string) models.ValueType {
	if vt, ok := a.constructors[token]; ok {
		return vt
	}
	switch {
	case intRegex.MatchString(token):
		return models.Int
	case doubleRegex.MatchString(token), exponentRegex.MatchString(token):
		return models.Double
	}
	return models.Unknown
}

// IsNumeric reports whether token is an integer or decimal literal.
func IsNumeric(token string) bool {
	return intRegex.MatchString(token) || doubleRegex.MatchString(token) || exponentRegex.MatchString(token)
}

// IsHex reports whether token is a 0x-prefixed hexadecimal literal.
func IsHex(token string) bool {
	return hexRegex.MatchString(token)
}

// IsIdentifier reports whether token is a bare identifier.
func IsIdentifier(token string) bool {
	return identifierRegex.MatchString(token)
}

// Suggest returns the candidate closest to target, or "" when nothing is
// close enough. Subsequence matches are preferred over edit distance.
func Suggest(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", maxSuggestionDistance+1
	lower := strings.ToLower(target)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c))
		if d < bestDistance || (d == bestDistance && c < best) {
			best, bestDistance = c, d
		}
	}
	if bestDistance > maxSuggestionDistance {
		return ""
	}
	return best
}
