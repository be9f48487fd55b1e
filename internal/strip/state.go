package strip

import "fmt"

// Kind names one of the five lexical modes of the scanner.
type Kind uint8

const (
	// KindCode is ordinary program text (the initial mode).
	KindCode Kind = iota
	// KindString is the body of a "..." literal.
	KindString
	// KindMultilineString is the body of a """...""" literal.
	KindMultilineString
	// KindLineComment is a // comment up to the next newline.
	KindLineComment
	// KindBlockComment is a (possibly nested) /* ... */ comment.
	KindBlockComment
)

func (k Kind) String() string {
	switch k {
	case KindCode:
		return "code"
	case KindString:
		return "string"
	case KindMultilineString:
		return "multiline-string"
	case KindLineComment:
		return "line-comment"
	case KindBlockComment:
		return "block-comment"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// State is the scanner mode. Depth is carried only by the block comment
// variant and is always >= 1 there; every other variant has depth 0.
type State struct {
	kind  Kind
	depth int
}

// Code returns the initial state.
func Code() State { return State{kind: KindCode} }

// InString returns the single-line string state.
func InString() State { return State{kind: KindString} }

// InMultilineString returns the triple-quoted string state.
func InMultilineString() State { return State{kind: KindMultilineString} }

// InLineComment returns the line comment state.
func InLineComment() State { return State{kind: KindLineComment} }

// InBlockComment returns the block comment state at the given nesting depth.
// A depth below 1 collapses to Code.
func InBlockComment(depth int) State {
	if depth < 1 {
		return Code()
	}
	return State{kind: KindBlockComment, depth: depth}
}

// Kind reports the active mode.
func (s State) Kind() Kind { return s.kind }

// Depth reports the block comment nesting depth, 0 outside block comments.
func (s State) Depth() int { return s.depth }

func (s State) String() string {
	if s.kind == KindBlockComment {
		return fmt.Sprintf("%s(%d)", s.kind, s.depth)
	}
	return s.kind.String()
}
