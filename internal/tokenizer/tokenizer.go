// Package tokenizer turns Arma config/script source text into an ordered
// sequence of token.TokenPair, honoring the grammar's comment, whitespace,
// identifier, digit and punctuation rules.
package tokenizer

import (
	"fmt"
	"unicode/utf8"

	"github.com/cwbudde/go-armaconfig/pkg/token"
)

// Error is a tokenizer failure: ill-formed input such as an unterminated
// block comment. The tokenizer never panics on valid UTF-8 input; every
// failure is reported through this type instead.
type Error struct {
	Path    string
	Start   token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.Path, e.Start, e.Message)
}

var punctKinds = map[rune]token.Kind{
	'_':  token.Underscore,
	'-':  token.Dash,
	'=':  token.Assignment,
	'{':  token.LeftBrace,
	'}':  token.RightBrace,
	'[':  token.LeftBracket,
	']':  token.RightBracket,
	'(':  token.LeftParen,
	')':  token.RightParen,
	':':  token.Colon,
	';':  token.Semicolon,
	'#':  token.Directive,
	'\\': token.Escape,
	',':  token.Comma,
	'.':  token.Decimal,
	'"':  token.DoubleQuote,
	'\'': token.SingleQuote,
}

// Tokenizer is a single-pass, rune-at-a-time scanner over one source file.
// Positions are reported in byte offsets with rune-counted columns, the
// same convention as the teacher's own lexer.
type Tokenizer struct {
	input        string
	path         string
	position     int // byte offset of ch
	readPosition int // byte offset of the next rune
	line         int
	column       int
	ch           rune
}

// New returns a Tokenizer ready to scan source, attributing every token to
// path for diagnostics.
func New(source, path string) *Tokenizer {
	t := &Tokenizer{input: source, path: path, line: 1, column: 1}
	t.readChar()
	return t
}

// Tokenize runs the scanner to completion and returns the full token
// stream, terminated by an EOI pair, or the first tokenizer error.
func Tokenize(source, path string) ([]*token.TokenPair, error) {
	t := New(source, path)
	var out []*token.TokenPair
	for {
		pair, err := t.next()
		if err != nil {
			return nil, err
		}
		out = append(out, pair)
		if pair.Token.Kind == token.EOI {
			return out, nil
		}
	}
}

func (t *Tokenizer) readChar() {
	if t.readPosition >= len(t.input) {
		t.ch = 0
		t.position = t.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(t.input[t.readPosition:])
	t.ch = r
	t.position = t.readPosition
	t.readPosition += size
}

func (t *Tokenizer) peekChar() rune {
	if t.readPosition >= len(t.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.input[t.readPosition:])
	return r
}

func (t *Tokenizer) advanceCol() {
	t.column++
}

func (t *Tokenizer) pos() token.Position {
	return token.Position{Offset: t.position, Line: t.line, Column: t.column}
}

// next scans and returns exactly one TokenPair, skipping any leading
// comments first (comments are never emitted as tokens).
func (t *Tokenizer) next() (*token.TokenPair, error) {
	if err := t.skipComments(); err != nil {
		return nil, err
	}

	start := t.pos()

	switch {
	case t.ch == 0:
		return token.NewTokenPair(token.New(token.EOI, ""), t.path, start, start), nil

	case t.ch == '\r':
		t.readChar()
		return t.next()

	case t.ch == '\n':
		t.readChar()
		t.line++
		t.column = 1
		end := token.Position{Offset: t.position, Line: t.line, Column: t.column}
		return token.NewTokenPair(token.Punct(token.Newline), t.path, start, end), nil

	case t.ch == ' ' || t.ch == '\t':
		lit := string(t.ch)
		t.readChar()
		t.advanceCol()
		return token.NewTokenPair(token.New(token.Whitespace, lit), t.path, start, t.pos()), nil

	case isLetter(t.ch):
		word := t.readWord()
		tok := token.FromWord(word)
		return token.NewTokenPair(tok, t.path, start, t.pos()), nil

	case isDigit(t.ch):
		d := t.ch
		t.readChar()
		t.advanceCol()
		return token.NewTokenPair(token.New(token.Digit, string(d)), t.path, start, t.pos()), nil

	default:
		if kind, ok := punctKinds[t.ch]; ok {
			t.readChar()
			t.advanceCol()
			return token.NewTokenPair(token.Punct(kind), t.path, start, t.pos()), nil
		}
		lit := string(t.ch)
		t.readChar()
		t.advanceCol()
		return token.NewTokenPair(token.New(token.Char, lit), t.path, start, t.pos()), nil
	}
}

// skipComments consumes any run of `//` line comments and `/* */` block
// comments at the current position, in source order. It never emits a
// token for them.
func (t *Tokenizer) skipComments() error {
	for {
		if t.ch == '/' && t.peekChar() == '/' {
			for t.ch != '\n' && t.ch != 0 {
				t.readChar()
				t.advanceCol()
			}
			continue
		}
		if t.ch == '/' && t.peekChar() == '*' {
			start := t.pos()
			t.readChar()
			t.readChar()
			t.column += 2
			closed := false
			for t.ch != 0 {
				if t.ch == '*' && t.peekChar() == '/' {
					t.readChar()
					t.readChar()
					t.column += 2
					closed = true
					break
				}
				if t.ch == '\n' {
					t.readChar()
					t.line++
					t.column = 1
					continue
				}
				t.readChar()
				t.advanceCol()
			}
			if !closed {
				return &Error{Path: t.path, Start: start, Message: "unterminated block comment"}
			}
			continue
		}
		return nil
	}
}

// readWord consumes the longest run of ASCII letters and digits starting at
// the current (already-verified) letter.
func (t *Tokenizer) readWord() string {
	startOffset := t.position
	for isLetter(t.ch) || isDigit(t.ch) {
		t.readChar()
		t.advanceCol()
	}
	return t.input[startOffset:t.position]
}

func isLetter(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
