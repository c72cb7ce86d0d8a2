package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/gtmconv/internal/models"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatLines = "lines"
	FormatJSON  = "json"
)

// Identifier cases
const (
	CasePreserve       = "preserve"
	CaseScreamingSnake = "screaming_snake"
	CaseSnake          = "snake"
	CaseCamel          = "camel"
	CaseLowerCamel     = "lower_camel"
	CaseKebab          = "kebab"
)

// DefaultMaxDepth bounds how deeply collections and constructors may nest.
const DefaultMaxDepth = 64

// Config represents the complete configuration for gtmconv
type Config struct {
	Identifiers  IdentifiersConfig    `yaml:"identifiers"`
	Output       OutputConfig         `yaml:"output"`
	Limits       LimitsConfig         `yaml:"limits"`
	Constructors []ConstructorMapping `yaml:"constructors"`
	Colors       map[string]string    `yaml:"colors"`
	Dev          DevConfig            `yaml:"dev"`
}

// IdentifiersConfig controls how declared identifiers become output keys
type IdentifiersConfig struct {
	Case     string            `yaml:"case"`
	Prefix   string            `yaml:"prefix"`
	Mappings map[string]string `yaml:"mappings"`
}

// OutputConfig controls presentation of the converted lines
type OutputConfig struct {
	Format string `yaml:"format"`
	Fixup  bool   `yaml:"fixup"`
	Indent int    `yaml:"indent"`
}

// LimitsConfig bounds resource use of a single conversion
type LimitsConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// ConstructorMapping registers an additional type-introducing name, e.g.
// `{name: NSTimeInterval, type: FLOAT}`.
type ConstructorMapping struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// resolved type (not serialized)
	valueType models.ValueType
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Identifiers: IdentifiersConfig{
			Case:     CasePreserve,
			Mappings: make(map[string]string),
		},
		Output: OutputConfig{
			Format: FormatLines,
			Fixup:  true,
			Indent: 2,
		},
		Limits: LimitsConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Constructors: []ConstructorMapping{},
		Colors:       make(map[string]string),
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".gtmconv.yml", ".gtmconv.yaml", "gtmconv.yml", "gtmconv.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated settings and resolves constructor types
func (c *Config) Validate() error {
	switch c.Identifiers.Case {
	case "", CasePreserve, CaseScreamingSnake, CaseSnake, CaseCamel, CaseLowerCamel, CaseKebab:
	default:
		return fmt.Errorf("unknown identifier case '%s'", c.Identifiers.Case)
	}

	switch c.Output.Format {
	case "", FormatLines, FormatJSON:
	default:
		return fmt.Errorf("unknown output format '%s'", c.Output.Format)
	}

	if c.Output.Indent < 0 {
		return fmt.Errorf("output indent must not be negative, got %d", c.Output.Indent)
	}

	if c.Limits.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.Limits.MaxDepth)
	}

	for i := range c.Constructors {
		mapping := &c.Constructors[i]
		if strings.TrimSpace(mapping.Name) == "" {
			return fmt.Errorf("constructor mapping %d has no name", i)
		}
		vt, ok := models.ParseValueType(mapping.Type)
		if !ok || !vt.IsConstructor() {
			return fmt.Errorf("constructor '%s' must map to FLOAT, COLOR or SIZE, got '%s'", mapping.Name, mapping.Type)
		}
		mapping.valueType = vt
	}

	for name, tag := range c.Colors {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("color constant '%s' has an empty tag", name)
		}
	}

	return nil
}

// ValueType returns the resolved type of the mapping
func (m ConstructorMapping) ValueType() models.ValueType {
	if m.valueType == "" {
		vt, _ := models.ParseValueType(m.Type)
		return vt
	}
	return m.valueType
}

// ConstructorTable returns the configured type-introducing names
func (c *Config) ConstructorTable() map[string]models.ValueType {
	table := make(map[string]models.ValueType, len(c.Constructors))
	for _, m := range c.Constructors {
		if vt := m.ValueType(); vt.IsConstructor() {
			table[m.Name] = vt
		}
	}
	return table
}

// GetIdentifier returns the output key for a declared identifier, applying
// explicit mappings first, then the prefix and case rules
func (c *Config) GetIdentifier(ident string) string {
	if mapped, exists := c.Identifiers.Mappings[ident]; exists {
		return mapped
	}

	return c.Identifiers.Prefix + applyCase(c.Identifiers.Case, ident)
}

func applyCase(name, ident string) string {
	switch name {
	case CaseScreamingSnake:
		return strcase.ToScreamingSnake(ident)
	case CaseSnake:
		return strcase.ToSnake(ident)
	case CaseCamel:
		return strcase.ToCamel(ident)
	case CaseLowerCamel:
		return strcase.ToLowerCamel(ident)
	case CaseKebab:
		return strcase.ToKebab(ident)
	default:
		return ident
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence. Empty strings
// and false flags leave the file (or default) value in place.
func LoadConfigWithCLI(configPath, cliFormat, cliCase string, cliNoFixup, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliFormat != "" {
		cfg.Output.Format = cliFormat
	}
	if cliCase != "" {
		cfg.Identifiers.Case = cliCase
	}
	if cliNoFixup {
		cfg.Output.Fixup = false
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
