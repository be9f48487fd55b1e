// Package strip removes // and nested /* */ comments from C-family source text
// while copying "..." and """...""" string literals through untouched.
package strip

// Stats counts what a scan removed.
type Stats struct {
	LineComments  int // number of // comments
	BlockComments int // number of outermost /* */ comments; nested ones are not counted again
	BytesRemoved  int
}

// Scanner walks the input once and builds the cleaned output.
// A Scanner is single use and owns its output buffer exclusively.
type Scanner struct {
	cursor Cursor
	state  State
	out    []byte
	stats  Stats
}

// NewScanner prepares a scanner over src. src is never modified.
func NewScanner(src []byte) *Scanner {
	return &Scanner{
		cursor: NewCursor(src),
		state:  Code(),
		out:    make([]byte, 0, len(src)),
	}
}

// Strip returns src with comments removed.
func Strip(src []byte) []byte {
	out, _ := StripStats(src)
	return out
}

// StripString is Strip for strings.
func StripString(src string) string {
	return string(Strip([]byte(src)))
}

// StripStats returns the cleaned text together with removal counters.
func StripStats(src []byte) ([]byte, Stats) {
	sc := NewScanner(src)
	out := sc.Run()
	return out, sc.Stats()
}

// Run scans to end of input and returns the output. Unterminated strings or
// comments are not errors: the scan simply ends in whatever state is active.
func (sc *Scanner) Run() []byte {
	for !sc.cursor.EOF() {
		sc.Step()
	}
	sc.stats.BytesRemoved = len(sc.cursor.Src) - len(sc.out)
	return sc.out
}

// State reports the mode at the current position.
func (sc *Scanner) State() State { return sc.state }

// Stats reports the counters gathered so far.
func (sc *Scanner) Stats() Stats { return sc.stats }

// Step consumes one token of input (one to three bytes) according to the active state.
func (sc *Scanner) Step() {
	if sc.cursor.EOF() {
		return
	}
	switch sc.state.kind {
	case KindString:
		sc.stepString()
	case KindMultilineString:
		sc.stepMultilineString()
	case KindLineComment:
		sc.stepLineComment()
	case KindBlockComment:
		sc.stepBlockComment()
	default:
		sc.stepCode()
	}
}

func (sc *Scanner) stepCode() {
	c := &sc.cursor
	// """ must win over " so that it is not read as an empty string plus a quote
	if c.AtTripleQuote() {
		sc.emitN(3)
		sc.state = InMultilineString()
		return
	}
	if c.Peek() == '"' {
		sc.emit()
		sc.state = InString()
		return
	}
	if c.At2('/', '/') {
		c.Skip(2)
		sc.stats.LineComments++
		sc.state = InLineComment()
		return
	}
	if c.At2('/', '*') {
		c.Skip(2)
		sc.stats.BlockComments++
		sc.state = InBlockComment(1)
		return
	}
	sc.emit()
}

func (sc *Scanner) stepString() {
	switch sc.cursor.Peek() {
	case '\\':
		sc.emitEscape()
	case '"':
		sc.emit()
		sc.state = Code()
	default:
		sc.emit()
	}
}

// The closing delimiter test runs before the escape test, so a `"""` reached
// at a test position always terminates the literal.
func (sc *Scanner) stepMultilineString() {
	c := &sc.cursor
	if c.AtTripleQuote() {
		sc.emitN(3)
		sc.state = Code()
		return
	}
	if c.Peek() == '\\' {
		sc.emitEscape()
		return
	}
	sc.emit()
}

func (sc *Scanner) stepLineComment() {
	if sc.cursor.Peek() == '\n' {
		sc.emit()
		sc.state = Code()
		return
	}
	sc.cursor.Bump()
}

func (sc *Scanner) stepBlockComment() {
	c := &sc.cursor
	switch {
	case c.At2('/', '*'):
		c.Skip(2)
		sc.state = InBlockComment(sc.state.depth + 1)
	case c.At2('*', '/'):
		c.Skip(2)
		sc.state = InBlockComment(sc.state.depth - 1)
	default:
		c.Bump()
	}
}

func (sc *Scanner) emit() {
	sc.out = append(sc.out, sc.cursor.Bump())
}

func (sc *Scanner) emitN(n int) {
	start := sc.cursor.Off
	sc.cursor.Skip(n)
	sc.out = append(sc.out, sc.cursor.Src[start:sc.cursor.Off]...)
}

// emitEscape copies a backslash and, unconditionally, the byte after it.
func (sc *Scanner) emitEscape() {
	sc.emit()
	if !sc.cursor.EOF() {
		sc.emit()
	}
}
