// Package linecol tracks byte offset, line and column while a token stream
// is replayed, and stamps that position onto each TokenPair as it passes.
package linecol

import (
	"fmt"

	"github.com/cwbudde/go-armaconfig/pkg/token"
)

// Counter is a stateful cursor: ModCols advances it past one token and
// writes the before/after position onto that token's pair. Lines and
// columns are 1-indexed; newline starts true so a Whitespace/Newline run at
// the very start of a file doesn't count as content.
type Counter struct {
	pos     int
	line    int
	col     int
	newline bool
}

// New returns a Counter positioned at the start of a file.
func New() *Counter {
	return &Counter{pos: 1, line: 1, col: 1, newline: true}
}

// ModCols stamps pair.Start with the position before the token, advances
// past it, then stamps pair.End with the position after.
func (c *Counter) ModCols(pair *token.TokenPair) {
	pair.Start = c.posLineCol()
	c.AddCols(pair.Token)
	pair.End = c.posLineCol()
}

// AddCols advances the cursor by t.Size() columns without touching line.
// Call AddLine instead when the token is a Newline.
func (c *Counter) AddCols(t token.Token) {
	n := t.Size()
	c.col += n
	c.pos += n

	if c.newline && !t.IsWhitespace() {
		c.newline = false
	}
}

// AddLine advances the cursor past a newline character: bumps line, resets
// column to 1, and re-arms the newline flag.
func (c *Counter) AddLine() {
	c.line++
	c.newline = true
	c.pos++
	c.col = 1
}

// Newline reports whether the cursor is still at the start of a line (no
// non-whitespace token has been seen on it yet).
func (c *Counter) Newline() bool {
	return c.newline
}

// Pos, Line, Col expose the raw cursor fields.
func (c *Counter) Pos() int  { return c.pos }
func (c *Counter) Line() int { return c.line }
func (c *Counter) Col() int  { return c.col }

// Position returns the cursor's current location as a token.Position.
func (c *Counter) Position() token.Position {
	return c.posLineCol()
}

func (c *Counter) posLineCol() token.Position {
	return token.Position{Offset: c.pos, Line: c.line, Column: c.col}
}

func (c *Counter) String() string {
	return fmt.Sprintf("%d:%d (%d)", c.line, c.col, c.pos)
}
