package token

import "fmt"

// Kind identifies which lexical atom a Token represents.
type Kind int

const (
	// Word is a contiguous run of ASCII letters and digits that does not
	// begin with a digit (an identifier-shaped run).
	Word Kind = iota
	// Alpha is a single letter. The tokenizer never emits this kind on its
	// own — identifier runs are always collapsed into Word — but it is
	// part of the token model so callers building synthesized streams
	// (e.g. a grammar assembling a Word one letter at a time) have an atom
	// for it.
	Alpha
	// Digit is a single ASCII decimal digit (0-9). Numeric literals are
	// left as a run of Digit tokens (plus Decimal) for the downstream
	// grammar to assemble; this tokenizer does no numeric parsing.
	Digit
	// Char is any other single non-whitespace character that isn't part
	// of the punctuation set below and isn't a letter or digit.
	Char
	// Keyword is one of the three reserved words: class, delete, enum.
	Keyword

	// Punctuation, one kind per single character.
	Underscore  // _
	Dash        // -
	Assignment  // =
	LeftBrace   // {
	RightBrace  // }
	LeftBracket // [
	RightBracket
	LeftParen  // (
	RightParen // )
	Colon      // :
	Semicolon  // ;
	Directive  // #
	Escape     // \
	Comma      // ,
	Decimal    // .
	DoubleQuote
	SingleQuote

	// Structural atoms.
	Newline
	Whitespace // Space or Tab; Token.Literal holds the exact character.
	EOI
)

var kindNames = [...]string{
	Word:         "Word",
	Alpha:        "Alpha",
	Digit:        "Digit",
	Char:         "Char",
	Keyword:      "Keyword",
	Underscore:   "Underscore",
	Dash:         "Dash",
	Assignment:   "Assignment",
	LeftBrace:    "LeftBrace",
	RightBrace:   "RightBrace",
	LeftBracket:  "LeftBracket",
	RightBracket: "RightBracket",
	LeftParen:    "LeftParen",
	RightParen:   "RightParen",
	Colon:        "Colon",
	Semicolon:    "Semicolon",
	Directive:    "Directive",
	Escape:       "Escape",
	Comma:        "Comma",
	Decimal:      "Decimal",
	DoubleQuote:  "DoubleQuote",
	SingleQuote:  "SingleQuote",
	Newline:      "Newline",
	Whitespace:   "Whitespace",
	EOI:          "EOI",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// punctuationText maps single-character punctuation/structural kinds to
// their canonical rendered text. Keyword, Word, Alpha, Digit, Char and
// Whitespace render from Literal instead.
var punctuationText = map[Kind]string{
	Underscore:   "_",
	Dash:         "-",
	Assignment:   "=",
	LeftBrace:    "{",
	RightBrace:   "}",
	LeftBracket:  "[",
	RightBracket: "]",
	LeftParen:    "(",
	RightParen:   ")",
	Colon:        ":",
	Semicolon:    ";",
	Directive:    "#",
	Escape:       "\\",
	Comma:        ",",
	Decimal:      ".",
	DoubleQuote:  "\"",
	SingleQuote:  "'",
	Newline:      "\n",
}

// Token is one indivisible lexical atom, carrying no position of its own —
// position lives on the TokenPair that wraps it. Literal carries the
// atom's text: the identifier for Word/Keyword, the single character for
// Alpha/Digit/Char/Whitespace, the canonical character for punctuation
// built with Punct, and is empty for EOI. Text renders punctuation from
// Kind, not from Literal.
type Token struct {
	Kind    Kind
	Literal string
}

// New builds a Token.
func New(kind Kind, literal string) Token {
	return Token{Kind: kind, Literal: literal}
}

// Punct builds a single-character punctuation or structural token, filling
// in its canonical literal automatically.
func Punct(kind Kind) Token {
	return Token{Kind: kind, Literal: punctuationText[kind]}
}

// FromWord classifies a scanned identifier-shaped run: the three reserved
// words become Keyword, everything else stays Word.
func FromWord(word string) Token {
	if kind, ok := LookupKeyword(word); ok {
		return Token{Kind: kind, Literal: word}
	}
	return Token{Kind: Word, Literal: word}
}

// Text renders the token's source representation.
func (t Token) Text() string {
	if text, ok := punctuationText[t.Kind]; ok {
		return text
	}
	return t.Literal
}

// Size is the number of source characters that produced this token: a
// Word/Keyword's length in bytes, 0 for EOI, 1 for every other atom.
func (t Token) Size() int {
	switch t.Kind {
	case Word, Keyword:
		return len(t.Literal)
	case EOI:
		return 0
	default:
		return 1
	}
}

// IsWhitespace reports whether the token is a Whitespace atom (used by the
// LineColCounter's newline-flag bookkeeping).
func (t Token) IsWhitespace() bool {
	return t.Kind == Whitespace
}

// IsIdentPart reports whether the token is part of an adjacent identifier
// run that macro-expansion resolution collects (Word or Underscore).
func (t Token) IsIdentPart() bool {
	return t.Kind == Word || t.Kind == Underscore
}

func (t Token) String() string {
	if t.Kind == EOI {
		return "EOI"
	}
	lit := t.Text()
	if len(lit) > 20 {
		return fmt.Sprintf("%s(%q...)", t.Kind, lit[:20])
	}
	return fmt.Sprintf("%s(%q)", t.Kind, lit)
}

// LookupKeyword returns (Keyword, true) if word is one of the reserved
// identifiers, else (Word, false).
func LookupKeyword(word string) (Kind, bool) {
	switch word {
	case "class", "delete", "enum":
		return Keyword, true
	}
	return Word, false
}
