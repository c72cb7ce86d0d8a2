package parser

import (
	"github.com/mcncl/gtmconv/internal/models"
	"github.com/mcncl/gtmconv/internal/render"
)

type frameKind int

const (
	// frameUndetermined is a '[' whose first element has not settled
	// whether it is an array or a dictionary.
	frameUndetermined frameKind = iota
	frameArray
	frameDictionary
	frameConstructor
)

func (k frameKind) String() string {
	switch k {
	case frameArray:
		return "array"
	case frameDictionary:
		return "dictionary"
	case frameConstructor:
		return "constructor"
	default:
		return "undetermined"
	}
}

// frame is one open '[' or constructor '('.
type frame struct {
	kind frameKind
	open position

	// arrays
	count int

	// dictionaries
	keys          []string
	awaitingValue bool

	// constructors
	name      string
	nameStart position
	valueType models.ValueType
	args      []render.Argument
	label     string
}

// segment returns the key path segment this frame contributes to the
// value currently being produced inside it.
func (f *frame) segment() (models.Segment, bool) {
	switch f.kind {
	case frameArray:
		return models.IndexSegment(f.count), true
	case frameDictionary:
		if len(f.keys) == 0 {
			return models.Segment{}, false
		}
		return models.KeySegment(f.keys[len(f.keys)-1]), true
	default:
		return models.Segment{}, false
	}
}

// stack is the bounded stack of open frames.
type stack struct {
	frames   []*frame
	maxDepth int
}

func newStack(maxDepth int) stack {
	return stack{maxDepth: maxDepth}
}

// push adds f and reports false when the depth limit would be exceeded.
func (s *stack) push(f *frame) bool {
	if s.maxDepth > 0 && len(s.frames) >= s.maxDepth {
		return false
	}
	s.frames = append(s.frames, f)
	return true
}

func (s *stack) pop() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

func (s *stack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *stack) depth() int {
	return len(s.frames)
}

func (s *stack) empty() bool {
	return len(s.frames) == 0
}

func (s *stack) insideConstructor() bool {
	top := s.top()
	return top != nil && top.kind == frameConstructor
}

func (s *stack) segments() []models.Segment {
	segs := make([]models.Segment, 0, len(s.frames))
	for _, f := range s.frames {
		if seg, ok := f.segment(); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}
