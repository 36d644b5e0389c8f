package preprocessor

import "github.com/cwbudde/go-armaconfig/pkg/token"

// cursor is a peekable, push-back-capable queue of TokenPairs. Push-back
// is needed because identifier resolution (spec-speak: longest-prefix
// macro matching) consumes a whole adjacent identifier run up front, then
// must re-feed whatever prefix tail didn't match a macro name back to the
// engine as if it had appeared next in the input.
type cursor struct {
	buf []*token.TokenPair
}

func newCursor(pairs []*token.TokenPair) *cursor {
	buf := make([]*token.TokenPair, len(pairs))
	copy(buf, pairs)
	return &cursor{buf: buf}
}

func (c *cursor) peek() *token.TokenPair {
	if len(c.buf) == 0 {
		return nil
	}
	return c.buf[0]
}

func (c *cursor) next() *token.TokenPair {
	if len(c.buf) == 0 {
		return nil
	}
	tp := c.buf[0]
	c.buf = c.buf[1:]
	return tp
}

func (c *cursor) pushFront(tps []*token.TokenPair) {
	if len(tps) == 0 {
		return
	}
	buf := make([]*token.TokenPair, 0, len(tps)+len(c.buf))
	buf = append(buf, tps...)
	buf = append(buf, c.buf...)
	c.buf = buf
}
