package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeParsing,
				Message: "unbalanced brackets",
				Err:     nil,
			},
			expected: "parsing: unbalanced brackets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	assert.Equal(t, wrappedErr, appErr.Unwrap())
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name:     "same type",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   &AppError{Type: ErrorTypeInput, Message: "different message", Err: errors.New("some error")},
			expected: true,
		},
		{
			name:     "different type",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   &AppError{Type: ErrorTypeParsing, Message: "test message"},
			expected: false,
		},
		{
			name:     "not an AppError",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Is(tt.target))
		})
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError(12, 2, 5, ErrUnknownConstructor, `"CGSizeMak" (did you mean "CGSizeMake"?)`)

	assert.Equal(t, `2:5: unknown constructor: "CGSizeMak" (did you mean "CGSizeMake"?)`, err.Error())
	assert.ErrorIs(t, err, ErrUnknownConstructor)
	assert.NotErrorIs(t, err, ErrUnbalancedBrackets)

	wrapped := NewParsingError("failed to convert declarations", err)
	var perr *ParseError
	assert.ErrorAs(t, wrapped, &perr)
	assert.Equal(t, 12, perr.Offset)
}

func TestParseError_WithFile(t *testing.T) {
	err := NewParseError(3, 1, 4, ErrUnterminatedString, "")
	err.File = "constants.swift"

	assert.Equal(t, "constants.swift:1:4: unterminated string literal", err.Error())
	assert.Equal(t, "Syntax error in constants.swift at line 1, column 4: unterminated string literal", UserFriendlyError(err))
}

func TestParseError_WithoutDetail(t *testing.T) {
	err := NewParseError(0, 1, 1, ErrMissingValue, "")
	assert.Equal(t, "1:1: missing value", err.Error())
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"unterminated string at eof", NewEOFError(4, 1, 5, ErrUnterminatedString, ""), true},
		{"open bracket at eof", NewEOFError(4, 1, 5, ErrUnbalancedBrackets, "'[' is never closed"), true},
		{"declaration without value at eof", NewEOFError(0, 1, 1, ErrMissingValue, ""), true},
		{"wrapped eof error", NewParsingError("x", NewEOFError(4, 1, 5, ErrUnbalancedBrackets, "")), true},
		{"stray closing bracket", NewParseError(4, 1, 5, ErrUnbalancedBrackets, "unexpected ']'"), false},
		{"unknown constructor at eof", NewEOFError(4, 1, 5, ErrUnknownConstructor, ""), false},
		{"plain error", fmt.Errorf("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsIncomplete(tt.err))
		})
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "parsing error",
			err:      NewParsingError("unbalanced brackets", nil),
			expected: "Parsing error: unbalanced brackets",
		},
		{
			name:     "parse error with position",
			err:      NewParsingError("failed", NewParseError(3, 1, 4, ErrUnterminatedString, "")),
			expected: "Syntax error at line 1, column 4: unterminated string literal",
		},
		{
			name:     "render error",
			err:      NewRenderError("bad color", nil),
			expected: "Render error: bad color",
		},
		{
			name:     "format error",
			err:      NewFormatError("failed to format output", nil),
			expected: "Output formatting error: failed to format output",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "config error",
			err:      NewConfigError("unknown identifier case", nil),
			expected: "Configuration error: unknown identifier case",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide at least one declaration.",
		},
		{
			name:     "standard error - no input",
			err:      ErrNoInput,
			expected: "Error: No input provided. Please specify a file with -i or pipe declarations to stdin.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
