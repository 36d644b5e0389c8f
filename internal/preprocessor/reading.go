package preprocessor

import (
	"github.com/cwbudde/go-armaconfig/internal/diagnostics"
	"github.com/cwbudde/go-armaconfig/internal/linecol"
	"github.com/cwbudde/go-armaconfig/pkg/token"
)

// skipWhitespace consumes and stamps every leading Whitespace token,
// leaving the cursor positioned at the next non-whitespace token (or nil
// at end of stream: a tokenized file ends with EOI, but a macro body or
// argument being reprocessed has no EOI).
func (e *Engine) skipWhitespace(cur *cursor, lcc *linecol.Counter) {
	for {
		tp := cur.peek()
		if tp == nil || tp.Token.Kind != token.Whitespace {
			return
		}
		cur.next()
		lcc.ModCols(tp)
	}
}

// peekNonWhitespace skips whitespace and returns what follows, without
// consuming it.
func (e *Engine) peekNonWhitespace(cur *cursor, lcc *linecol.Counter) *token.TokenPair {
	e.skipWhitespace(cur, lcc)
	return cur.peek()
}

// readIdent skips leading whitespace then consumes a contiguous run of
// Word/Underscore tokens, returning the concatenated name.
func (e *Engine) readIdent(cur *cursor, lcc *linecol.Counter) (string, token.Position, token.Position, error) {
	e.skipWhitespace(cur, lcc)
	start := lcc.Position()

	var pairs []*token.TokenPair
	for {
		tp := cur.peek()
		if tp == nil || !tp.Token.IsIdentPart() {
			break
		}
		cur.next()
		lcc.ModCols(tp)
		pairs = append(pairs, tp)
	}

	if len(pairs) == 0 {
		pos := lcc.Position()
		return "", pos, pos, diagnostics.New(diagnostics.KindDirectiveSyntax, "", pos, pos, "expected an identifier")
	}
	return identText(pairs), start, lcc.Position(), nil
}

// readArgList reads a parenthesized, comma-separated token-sequence list:
// used both for a #define's formal parameter list and for a function
// macro's actual call-site arguments. Nested parens are counted and passed
// through verbatim; empty arguments (consecutive commas, or the sole
// argument being all-whitespace) are dropped.
func (e *Engine) readArgList(cur *cursor, lcc *linecol.Counter) ([][]*token.TokenPair, error) {
	open := e.peekNonWhitespace(cur, lcc)
	if open == nil || open.Token.Kind != token.LeftParen {
		pos := lcc.Position()
		return nil, diagnostics.New(diagnostics.KindDirectiveSyntax, "", pos, pos, "expected '('")
	}
	cur.next()
	lcc.ModCols(open)

	var args [][]*token.TokenPair
	var arg []*token.TokenPair
	nested := 0
	blank := func(a []*token.TokenPair) bool {
		for _, tp := range a {
			if tp.Token.Kind != token.Whitespace {
				return false
			}
		}
		return true
	}

	for {
		tp := cur.next()
		if tp == nil || tp.Token.Kind == token.EOI {
			pos := lcc.Position()
			return nil, diagnostics.New(diagnostics.KindUnterminated, "", pos, pos, "unterminated parameter list")
		}
		lcc.ModCols(tp)

		switch tp.Token.Kind {
		case token.LeftParen:
			nested++
			arg = append(arg, tp)
		case token.RightParen:
			if nested == 0 {
				if !blank(arg) {
					args = append(args, arg)
				}
				return args, nil
			}
			arg = append(arg, tp)
			nested--
		case token.Comma:
			if nested == 0 {
				if !blank(arg) {
					args = append(args, arg)
				}
				arg = nil
			} else {
				arg = append(arg, tp)
			}
		default:
			arg = append(arg, tp)
		}
	}
}

// readDefineValue reads a #define's body: leading whitespace is skipped,
// then tokens are collected up to the first unescaped Newline. A `\`
// immediately followed by Newline is a line continuation — the newline is
// kept as part of the body and reading continues. Inside a double-quoted
// string, newlines are ordinary body content. Reaching EOI also terminates
// the body (a file ending in a #define with no trailing newline is valid);
// reaching EOI while still inside an open quote is an error.
func (e *Engine) readDefineValue(cur *cursor, lcc *linecol.Counter) ([]*token.TokenPair, error) {
	e.skipWhitespace(cur, lcc)

	var body []*token.TokenPair
	quoted := false

	for {
		tp := cur.peek()
		if tp == nil || tp.Token.Kind == token.EOI {
			if quoted {
				pos := lcc.Position()
				return nil, diagnostics.New(diagnostics.KindUnterminated, "", pos, pos, "unterminated quoted string in macro body")
			}
			return body, nil
		}
		cur.next()

		if quoted {
			lcc.ModCols(tp)
			body = append(body, tp)
			if tp.Token.Kind == token.DoubleQuote {
				quoted = false
			}
			continue
		}

		switch tp.Token.Kind {
		case token.Newline:
			lcc.AddLine()
			return body, nil
		case token.Escape:
			if next := cur.peek(); next != nil && next.Token.Kind == token.Newline {
				cur.next()
				lcc.AddLine()
				body = append(body, next)
			}
			// A backslash not followed by a newline is simply dropped.
		case token.DoubleQuote:
			lcc.ModCols(tp)
			body = append(body, tp)
			quoted = true
		default:
			lcc.ModCols(tp)
			body = append(body, tp)
		}
	}
}
