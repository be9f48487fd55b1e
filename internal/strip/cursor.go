package strip

// Cursor is a forward-only position in an immutable byte slice.
type Cursor struct {
	Src []byte
	Off int
}

// NewCursor creates a cursor positioned at the start of src.
func NewCursor(src []byte) Cursor {
	return Cursor{Src: src}
}

// EOF reports whether the cursor has consumed all input.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Peek2 returns the current and the next byte; ok is false when fewer than two remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Src) {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// Peek3 returns the next three bytes; ok is false when fewer than three remain.
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.Off+2 >= len(c.Src) {
		return 0, 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], c.Src[c.Off+2], true
}

// Bump advances by one byte and returns the byte it moved over.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Skip advances by n bytes, stopping at EOF.
func (c *Cursor) Skip(n int) {
	c.Off = min(c.Off+n, len(c.Src))
}

// At2 reports whether the next two bytes are a and b.
func (c *Cursor) At2(a, b byte) bool {
	b0, b1, ok := c.Peek2()
	return ok && b0 == a && b1 == b
}

// AtTripleQuote reports whether the next three bytes are `"""`.
func (c *Cursor) AtTripleQuote() bool {
	b0, b1, b2, ok := c.Peek3()
	return ok && b0 == '"' && b1 == '"' && b2 == '"'
}
