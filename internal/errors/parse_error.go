package errors

import (
	"errors"
	"fmt"
)

// ParseError reports malformed input at a position in the source. Reason is
// one of the sentinel errors above and is matched by errors.Is.
type ParseError struct {
	File   string // set when the input came from a named file
	Offset int    // byte offset, 0-based
	Line   int    // 1-based
	Column int    // 1-based, in runes
	Reason error
	Detail string
	// AtEOF is set when the input ended before the construct was complete.
	AtEOF bool
}

// NewParseError creates a ParseError at the given position.
func NewParseError(offset, line, column int, reason error, detail string) *ParseError {
	return &ParseError{
		Offset: offset,
		Line:   line,
		Column: column,
		Reason: reason,
		Detail: detail,
	}
}

// NewEOFError creates a ParseError for a construct starting at the given
// position that the input ended inside of.
func NewEOFError(offset, line, column int, reason error, detail string) *ParseError {
	e := NewParseError(offset, line, column, reason, detail)
	e.AtEOF = true
	return e
}

func (e *ParseError) describe() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// Error implements error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.describe())
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.describe())
}

// Unwrap returns the reason
func (e *ParseError) Unwrap() error {
	return e.Reason
}

// IsIncomplete reports whether err was caused by input that ended while a
// string, bracket or declaration was still open, so that more input could
// make it valid.
func IsIncomplete(err error) bool {
	var perr *ParseError
	if !errors.As(err, &perr) || !perr.AtEOF {
		return false
	}
	return errors.Is(perr.Reason, ErrUnterminatedString) ||
		errors.Is(perr.Reason, ErrUnbalancedBrackets) ||
		errors.Is(perr.Reason, ErrMissingValue)
}
