package pgex

// Cursor walks one line of a record body byte by byte. It never sees past
// the end of the line: Peek and PeekAt return 0 once exhausted, which lets
// every codec treat end-of-line the same way it treats a field terminator.
type Cursor struct {
	line string
	pos  int
}

// NewCursor returns a cursor positioned at the start of line.
func NewCursor(line string) *Cursor {
	return &Cursor{line: line}
}

// Done reports whether the cursor has consumed the whole line.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.line)
}

// Peek returns the byte at the cursor, or 0 at end of line.
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt returns the byte offset bytes ahead of the cursor, or 0 past the
// end of line.
func (c *Cursor) PeekAt(offset int) byte {
	i := c.pos + offset
	if i < 0 || i >= len(c.line) {
		return 0
	}
	return c.line[i]
}

// Advance moves the cursor forward n bytes. It never overshoots the line.
func (c *Cursor) Advance(n int) {
	c.pos += n
	if c.pos > len(c.line) {
		c.pos = len(c.line)
	}
}

// Pos returns the cursor's current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Rest returns the unconsumed tail of the line.
func (c *Cursor) Rest() string {
	return c.line[c.pos:]
}
