// Package parser converts constant declarations into GTM-JSON lines in a
// single pass over the input.
package parser

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mcncl/gtmconv/internal/analyzer"
	"github.com/mcncl/gtmconv/internal/config"
	"github.com/mcncl/gtmconv/internal/errors"
	"github.com/mcncl/gtmconv/internal/models"
	"github.com/mcncl/gtmconv/internal/render"
)

// Parser converts declarations. A Parser holds no per-conversion state and
// is safe for concurrent use.
type Parser struct {
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	renderer *render.Renderer
	logger   *slog.Logger
}

// New creates a Parser with the default configuration
func New() *Parser {
	return NewWithConfig(config.NewConfig())
}

// NewWithConfig creates a Parser using the identifier rules, constructor
// and color tables, depth limit and fixup setting of cfg
func NewWithConfig(cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		cfg:      cfg,
		analyzer: analyzer.NewAnalyzerWithConfig(cfg),
		renderer: render.NewRendererWithConfig(cfg),
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithLogger returns a copy of p that writes scan traces to logger at
// debug level.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	cp := *p
	if logger != nil {
		cp.logger = logger
	}
	return &cp
}

// Convert converts input into output lines. Empty or whitespace-only input
// yields no lines. Malformed input yields a parsing error, or a render error
// when a constructor or constant cannot be rendered, wrapping a
// *errors.ParseError.
func (p *Parser) Convert(input string) (models.Output, error) {
	s := p.newScanner()
	if err := s.run(input); err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return models.Output{}, err
		}
		return models.Output{}, errors.NewParsingError("failed to convert declarations", err)
	}
	out := s.gen.Output(p.cfg.Output.Fixup)
	p.logger.Debug("converted", "lines", out.Len(), "bytes", len(input))
	return out, nil
}

// Parse converts the declarations read from reader
func (p *Parser) Parse(reader io.Reader) (models.Output, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Output{}, errors.NewInputError("failed to read input", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return models.Output{}, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return p.Convert(string(data))
}

// ParseString converts declarations from a string
func (p *Parser) ParseString(input string) (models.Output, error) {
	return p.Parse(strings.NewReader(input))
}

// ParseFile converts declarations from a file path
func (p *Parser) ParseFile(filePath string) (models.Output, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Output{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Output{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Output{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.Warn("failed to close input file", "path", filePath, "error", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Output{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Output{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return p.Parse(file)
}

// Convert converts input with the default configuration
func Convert(input string) (models.Output, error) {
	return New().Convert(input)
}

// Parse converts the declarations read from reader with the default
// configuration
func Parse(reader io.Reader) (models.Output, error) {
	return New().Parse(reader)
}

// ParseString converts declarations from a string with the default
// configuration
func ParseString(input string) (models.Output, error) {
	return New().ParseString(input)
}

// ParseFile converts declarations from a file with the default
// configuration
func ParseFile(filePath string) (models.Output, error) {
	return New().ParseFile(filePath)
}
