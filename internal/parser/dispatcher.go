package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcncl/gtmconv/internal/analyzer"
	apperrors "github.com/mcncl/gtmconv/internal/errors"
	"github.com/mcncl/gtmconv/internal/generator"
	"github.com/mcncl/gtmconv/internal/models"
	"github.com/mcncl/gtmconv/internal/render"
)

type scanState int

const (
	stateExpectKey scanState = iota
	stateReadingKey
	stateAfterKey
	stateSkippingAnnotation
	stateExpectValue
	stateReadingValue
	stateInString
	stateAfterValue
	stateEmptyDictionary
	stateReadingConstant
	stateConstantArgs
)

// expectation describes what the scanner accepts in state s.
func (s scanState) expectation() string {
	switch s {
	case stateExpectKey:
		return "expected an identifier"
	case stateReadingKey, stateAfterKey:
		return "expected ':' or '=' after identifier"
	case stateExpectValue:
		return "expected a value"
	case stateReadingValue:
		return "not allowed in a literal"
	case stateAfterValue:
		return "expected ',' or a closing bracket"
	case stateEmptyDictionary:
		return "expected ']' after '[:'"
	case stateReadingConstant:
		return "expected a color constant name"
	case stateConstantArgs:
		return "expected ')'"
	default:
		return "unexpected"
	}
}

// scanner converts one input. It is not safe for concurrent use; Parser
// creates a fresh one per call.
type scanner struct {
	analyzer *analyzer.Analyzer
	renderer *render.Renderer
	identify func(string) string
	log      *slog.Logger

	pos   position
	state scanState

	ident      strings.Builder
	identStart position
	annotation strings.Builder
	key        string

	stack stack
	word  word

	constant      strings.Builder
	constantOf    string
	constantStart position
	constantEnded bool // whitespace followed the constant name

	gen *generator.Generator
}

func (p *Parser) newScanner() *scanner {
	return &scanner{
		analyzer: p.analyzer,
		renderer: p.renderer,
		identify: p.cfg.GetIdentifier,
		log:      p.logger,
		pos:      position{line: 1, column: 1},
		stack:    newStack(p.cfg.Limits.MaxDepth),
		gen:      generator.NewGenerator(),
	}
}

// run scans src to the end and returns the first error encountered.
func (s *scanner) run(src string) error {
	for i, r := range src {
		s.pos.offset = i
		if err := s.dispatch(r); err != nil {
			return err
		}
		if r == '\n' {
			s.pos.line++
			s.pos.column = 1
		} else {
			s.pos.column++
		}
	}
	s.pos.offset = len(src)
	return s.finish()
}

// dispatch routes one rune. The order of the cases is significant.
func (s *scanner) dispatch(r rune) error {
	switch {
	case s.state == stateInString:
		return s.stringRune(r)
	case s.state == stateReadingConstant || s.state == stateConstantArgs:
		return s.constantRune(r)
	case s.state == stateEmptyDictionary:
		return s.emptyDictionaryRune(r)
	case r == '"':
		return s.openString(r)
	case r == '=':
		return s.assignment(r)
	case s.state == stateSkippingAnnotation:
		s.annotation.WriteRune(r)
		return nil
	case r == '[':
		return s.openCollection(r)
	case r == ']':
		return s.closeCollection(r)
	case r == '(':
		return s.openConstructor(r)
	case r == ')':
		return s.closeConstructor(r)
	case r == ',':
		return s.comma()
	case r == '.' && !s.stack.insideConstructor():
		return s.dot(r)
	case isSpace(r):
		s.space()
		return nil
	case r == ':':
		return s.colon(r)
	case r == '_' && s.state == stateReadingValue && s.word.isNumber():
		// digit separator
		return nil
	default:
		return s.accumulate(r)
	}
}

func (s *scanner) fail(at position, reason error, format string, args ...any) error {
	return apperrors.NewParseError(at.offset, at.line, at.column, reason, fmt.Sprintf(format, args...))
}

func (s *scanner) failEOF(at position, reason error, format string, args ...any) error {
	return apperrors.NewEOFError(at.offset, at.line, at.column, reason, fmt.Sprintf(format, args...))
}

func (s *scanner) unexpected(r rune) error {
	return s.fail(s.pos, apperrors.ErrUnexpectedCharacter, "%q: %s", r, s.state.expectation())
}

// renderFailure positions an error returned by the renderer.
func (s *scanner) renderFailure(err error, at position) error {
	var rerr *render.Error
	if errors.As(err, &rerr) {
		return apperrors.NewRenderError("failed to render value", s.fail(at, rerr.Reason, "%s", rerr.Detail))
	}
	return apperrors.NewRenderError("failed to render value", s.fail(at, apperrors.ErrInvalidArgument, "%s", err))
}

func (s *scanner) path() models.KeyPath {
	return models.NewKeyPath(s.key, s.stack.segments()...)
}

func (s *scanner) stringRune(r rune) error {
	if r == '"' && !s.word.escaped {
		s.state = stateAfterValue
		return nil
	}
	s.word.escaped = r == '\\' && !s.word.escaped
	s.word.write(r)
	return nil
}

func (s *scanner) openString(r rune) error {
	if s.state != stateExpectValue {
		return s.unexpected(r)
	}
	s.word.begin(s.pos)
	s.word.quoted = true
	s.state = stateInString
	return nil
}

func (s *scanner) assignment(r rune) error {
	switch s.state {
	case stateSkippingAnnotation:
		if strings.TrimSpace(s.annotation.String()) == "" {
			return s.fail(s.pos, apperrors.ErrUnexpectedCharacter, "expected a type annotation before '='")
		}
	case stateReadingKey, stateAfterKey:
	default:
		return s.unexpected(r)
	}
	s.key = s.identify(s.ident.String())
	s.state = stateExpectValue
	s.log.Debug("declaration", "ident", s.ident.String(), "key", s.key, "line", s.identStart.line)
	return nil
}

// valueSlot prepares the innermost frame to receive a value that is not a
// plain scalar. It settles an undetermined frame as an array.
func (s *scanner) valueSlot(at position, what string) error {
	top := s.stack.top()
	if top == nil {
		return nil
	}
	switch top.kind {
	case frameUndetermined:
		top.kind = frameArray
		s.log.Debug("frame determined", "kind", top.kind, "depth", s.stack.depth())
	case frameDictionary:
		if !top.awaitingValue {
			return s.fail(at, apperrors.ErrUnsupportedLiteral, "%s cannot be used as a dictionary key", what)
		}
	}
	return nil
}

func (s *scanner) push(f *frame) error {
	if !s.stack.push(f) {
		return s.fail(s.pos, apperrors.ErrMaxDepth, "more than %d nested brackets", s.stack.maxDepth)
	}
	s.log.Debug("push", "kind", f.kind, "depth", s.stack.depth(), "line", s.pos.line, "column", s.pos.column)
	return nil
}

func (s *scanner) openCollection(r rune) error {
	if s.state != stateExpectValue {
		return s.unexpected(r)
	}
	if s.stack.insideConstructor() {
		return s.fail(s.pos, apperrors.ErrInvalidArgument, "collections cannot be constructor arguments")
	}
	if err := s.valueSlot(s.pos, "a collection"); err != nil {
		return err
	}
	return s.push(&frame{kind: frameUndetermined, open: s.pos})
}

func (s *scanner) closeCollection(r rune) error {
	top := s.stack.top()
	if top == nil || top.kind == frameConstructor {
		return s.fail(s.pos, apperrors.ErrUnbalancedBrackets, "unexpected ']'")
	}
	switch s.state {
	case stateExpectValue, stateReadingValue, stateAfterValue, stateEmptyDictionary:
	default:
		return s.unexpected(r)
	}

	if s.word.pending() {
		if err := s.completeScalar(); err != nil {
			return err
		}
	} else if top.kind == frameDictionary && top.awaitingValue {
		return s.fail(s.pos, apperrors.ErrMissingValue, "dictionary key %q has no value", top.keys[len(top.keys)-1])
	}

	f := s.stack.pop()
	if f.kind == frameUndetermined {
		f.kind = frameArray
	}
	s.log.Debug("pop", "kind", f.kind, "depth", s.stack.depth(), "line", s.pos.line, "column", s.pos.column)

	switch f.kind {
	case frameArray:
		s.gen.Array(s.path(), f.count)
	case frameDictionary:
		s.gen.Dictionary(s.path(), f.keys)
	}
	s.completeValue()
	return nil
}

func (s *scanner) openConstructor(r rune) error {
	name := s.word.text()
	vt, ok := s.analyzer.ConstructorType(name)

	switch s.state {
	case stateReadingValue:
	case stateAfterValue:
		// whitespace between the name and '('
		if s.word.quoted || !ok {
			return s.unexpected(r)
		}
	default:
		return s.unexpected(r)
	}
	if s.stack.insideConstructor() {
		return s.fail(s.pos, apperrors.ErrInvalidArgument, "nested constructor calls are not supported")
	}

	if !ok {
		detail := fmt.Sprintf("%q", name)
		if hint := analyzer.Suggest(name, s.analyzer.ConstructorNames()); hint != "" {
			detail += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		return s.fail(s.word.start, apperrors.ErrUnknownConstructor, "%s", detail)
	}
	if err := s.valueSlot(s.word.start, name+"(...)"); err != nil {
		return err
	}

	f := &frame{
		kind:      frameConstructor,
		open:      s.pos,
		name:      name,
		nameStart: s.word.start,
		valueType: vt,
	}
	if err := s.push(f); err != nil {
		return err
	}
	s.word.reset()
	s.state = stateExpectValue
	return nil
}

func (s *scanner) closeConstructor(r rune) error {
	top := s.stack.top()
	if top == nil || top.kind != frameConstructor {
		return s.fail(s.pos, apperrors.ErrUnbalancedBrackets, "unexpected ')'")
	}
	switch s.state {
	case stateExpectValue:
		if !s.word.pending() && len(top.args) > 0 && top.label == "" {
			return s.fail(s.pos, apperrors.ErrMissingValue, "trailing ',' in %s arguments", top.name)
		}
	case stateReadingValue, stateAfterValue:
	default:
		return s.unexpected(r)
	}
	if err := s.completeArgument(); err != nil {
		return err
	}

	f := s.stack.pop()
	s.log.Debug("pop", "kind", f.kind, "name", f.name, "args", len(f.args), "depth", s.stack.depth())

	value, err := s.renderer.Constructor(f.valueType, f.name, f.args)
	if err != nil {
		return s.renderFailure(err, f.nameStart)
	}
	s.gen.Value(s.path(), value, f.valueType)
	s.completeValue()
	return nil
}

// completeArgument moves the pending token into the innermost constructor's
// argument list.
func (s *scanner) completeArgument() error {
	top := s.stack.top()
	if !s.word.pending() {
		if top.label != "" {
			return s.fail(s.pos, apperrors.ErrMissingValue, "argument %q of %s has no value", top.label, top.name)
		}
		return nil
	}
	top.args = append(top.args, render.Argument{
		Label:  top.label,
		Text:   s.word.text(),
		Quoted: s.word.quoted,
	})
	top.label = ""
	s.word.reset()
	return nil
}

// completeScalar emits the pending token as a value of the innermost
// collection, or of the declaration at top level.
func (s *scanner) completeScalar() error {
	top := s.stack.top()
	if top != nil && top.kind == frameDictionary && !top.awaitingValue {
		return s.fail(s.word.start, apperrors.ErrMissingValue, "expected ':' after dictionary key %q", s.word.text())
	}

	text := s.word.text()
	vt := models.String
	if !s.word.quoted {
		vt = s.analyzer.Classify(text)
		switch {
		case vt.IsConstructor():
			return s.fail(s.word.start, apperrors.ErrUnsupportedLiteral, "%s must be called", text)
		case vt == models.Unknown:
			return s.fail(s.word.start, apperrors.ErrUnsupportedLiteral, "%q", text)
		}
	}
	if err := s.valueSlot(s.word.start, "a value"); err != nil {
		return err
	}

	value, err := s.renderer.Scalar(vt, text)
	if err != nil {
		return s.renderFailure(err, s.word.start)
	}
	s.gen.Value(s.path(), value, vt)
	s.word.reset()
	s.completeValue()
	return nil
}

// completeValue records that the innermost frame received a value.
func (s *scanner) completeValue() {
	if top := s.stack.top(); top != nil {
		switch top.kind {
		case frameArray:
			top.count++
		case frameDictionary:
			top.awaitingValue = false
		}
	}
	s.state = stateAfterValue
}

func (s *scanner) comma() error {
	if s.state != stateReadingValue && s.state != stateAfterValue {
		return s.fail(s.pos, apperrors.ErrMissingValue, "expected a value before ','")
	}

	if s.stack.insideConstructor() {
		if err := s.completeArgument(); err != nil {
			return err
		}
		s.state = stateExpectValue
		return nil
	}

	if s.word.pending() {
		if err := s.completeScalar(); err != nil {
			return err
		}
	}
	if s.stack.empty() {
		s.endDeclaration()
		return nil
	}
	s.state = stateExpectValue
	return nil
}

func (s *scanner) endDeclaration() {
	s.ident.Reset()
	s.annotation.Reset()
	s.key = ""
	s.state = stateExpectKey
}

func (s *scanner) dot(r rune) error {
	if s.state != stateReadingValue {
		return s.unexpected(r)
	}
	if s.word.isInteger() {
		s.word.sawDot = true
		s.word.write(r)
		return nil
	}

	name := s.word.text()
	vt, ok := s.analyzer.ConstructorType(name)
	if !ok || vt != models.Color {
		return s.fail(s.pos, apperrors.ErrUnexpectedCharacter, "'.' after %q", name)
	}
	if err := s.valueSlot(s.word.start, name+" constant"); err != nil {
		return err
	}
	s.constantOf = name
	s.constantStart = s.word.start
	s.constant.Reset()
	s.constantEnded = false
	s.word.reset()
	s.state = stateReadingConstant
	return nil
}

func (s *scanner) constantRune(r rune) error {
	switch {
	case s.state == stateReadingConstant && r == '(':
		if s.constant.Len() == 0 {
			return s.unexpected(r)
		}
		s.state = stateConstantArgs
	case s.state == stateReadingConstant && isIdentPart(r) && !s.constantEnded:
		s.constant.WriteRune(r)
	case s.state == stateReadingConstant && isSpace(r) && s.constant.Len() > 0:
		s.constantEnded = true
	case s.state == stateConstantArgs && r == ')':
		return s.finishConstant()
	case s.state == stateConstantArgs && isSpace(r):
	case s.state == stateConstantArgs:
		return s.fail(s.pos, apperrors.ErrInvalidArgument, "%s.%s takes no arguments", s.constantOf, s.constant.String())
	default:
		return s.unexpected(r)
	}
	return nil
}

func (s *scanner) finishConstant() error {
	value, err := s.renderer.ColorConstant(s.constant.String())
	if err != nil {
		return s.renderFailure(err, s.constantStart)
	}
	s.gen.Value(s.path(), value, models.Color)
	s.completeValue()
	return nil
}

func (s *scanner) emptyDictionaryRune(r rune) error {
	switch {
	case r == ']':
		return s.closeCollection(r)
	case isSpace(r):
		return nil
	default:
		return s.unexpected(r)
	}
}

func (s *scanner) space() {
	switch s.state {
	case stateReadingKey:
		s.state = stateAfterKey
	case stateReadingValue:
		s.state = stateAfterValue
	}
}

func (s *scanner) colon(r rune) error {
	top := s.stack.top()
	switch {
	case top == nil:
		if s.state != stateReadingKey && s.state != stateAfterKey {
			return s.unexpected(r)
		}
		s.state = stateSkippingAnnotation
		return nil

	case top.kind == frameConstructor:
		return s.argumentLabel(r, top)

	case top.kind == frameUndetermined && s.state == stateExpectValue && !s.word.pending():
		top.kind = frameDictionary
		s.state = stateEmptyDictionary
		s.log.Debug("frame determined", "kind", top.kind, "depth", s.stack.depth())
		return nil

	case s.word.pending() && (s.state == stateReadingValue || s.state == stateAfterValue):
		return s.dictionaryKey(top)

	default:
		return s.unexpected(r)
	}
}

func (s *scanner) argumentLabel(r rune, top *frame) error {
	if s.state != stateReadingValue && s.state != stateAfterValue {
		return s.unexpected(r)
	}
	label := s.word.text()
	if s.word.quoted || !analyzer.IsIdentifier(label) {
		return s.fail(s.word.start, apperrors.ErrInvalidArgument, "argument label %q of %s is not an identifier", label, top.name)
	}
	if top.label != "" {
		return s.fail(s.word.start, apperrors.ErrInvalidArgument, "argument %q of %s has two labels", top.label, top.name)
	}
	top.label = label
	s.word.reset()
	s.state = stateExpectValue
	return nil
}

func (s *scanner) dictionaryKey(top *frame) error {
	switch {
	case top.kind == frameArray:
		return s.fail(s.pos, apperrors.ErrUnexpectedCharacter, "':' inside an array literal")
	case top.kind == frameDictionary && top.awaitingValue:
		return s.fail(s.pos, apperrors.ErrMissingValue, "dictionary key %q has no value", top.keys[len(top.keys)-1])
	}

	key := s.word.text()
	if !s.word.quoted && !analyzer.IsNumeric(key) {
		return s.fail(s.word.start, apperrors.ErrUnsupportedLiteral, "dictionary keys must be strings or numbers, got %q", key)
	}
	if top.kind == frameUndetermined {
		top.kind = frameDictionary
		s.log.Debug("frame determined", "kind", top.kind, "depth", s.stack.depth())
	}
	top.keys = append(top.keys, key)
	top.awaitingValue = true
	s.word.reset()
	s.state = stateExpectValue
	return nil
}

func (s *scanner) accumulate(r rune) error {
	switch s.state {
	case stateExpectKey:
		if !isIdentStart(r) {
			return s.unexpected(r)
		}
		s.ident.Reset()
		s.ident.WriteRune(r)
		s.identStart = s.pos
		s.state = stateReadingKey
	case stateReadingKey:
		if !isIdentPart(r) {
			return s.unexpected(r)
		}
		s.ident.WriteRune(r)
	case stateExpectValue:
		if !s.tokenRune(r) {
			return s.unexpected(r)
		}
		s.word.begin(s.pos)
		s.word.write(r)
		s.state = stateReadingValue
	case stateReadingValue:
		if !s.tokenRune(r) {
			return s.unexpected(r)
		}
		s.word.write(r)
	default:
		return s.unexpected(r)
	}
	return nil
}

// tokenRune reports whether r may extend a bare token. Constructor
// arguments also take '.' since they are never split on it.
func (s *scanner) tokenRune(r rune) bool {
	return isTokenRune(r) || (r == '.' && s.stack.insideConstructor())
}

// finish checks the state reached at the end of the input.
func (s *scanner) finish() error {
	switch s.state {
	case stateInString:
		return s.failEOF(s.word.start, apperrors.ErrUnterminatedString, "string is never closed")
	case stateReadingConstant:
		return s.failEOF(s.constantStart, apperrors.ErrMissingValue, "incomplete %s constant", s.constantOf)
	case stateConstantArgs:
		return s.failEOF(s.constantStart, apperrors.ErrUnbalancedBrackets, "'(' is never closed")
	}

	if top := s.stack.top(); top != nil {
		open := "'['"
		if top.kind == frameConstructor {
			open = "'('"
		}
		return s.failEOF(top.open, apperrors.ErrUnbalancedBrackets, "%s is never closed", open)
	}

	switch s.state {
	case stateReadingKey, stateAfterKey, stateSkippingAnnotation:
		return s.failEOF(s.identStart, apperrors.ErrMissingValue, "declaration %q has no value", s.ident.String())
	case stateExpectValue:
		return s.failEOF(s.pos, apperrors.ErrMissingValue, "declaration %q has no value", s.ident.String())
	}

	if s.word.pending() {
		return s.completeScalar()
	}
	return nil
}
