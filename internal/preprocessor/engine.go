// Package preprocessor implements the directive-driven macro preprocessor:
// object-like and function-like macro expansion, conditional inclusion,
// and stringification, over a token.TokenPair stream.
package preprocessor

import (
	"github.com/cwbudde/go-armaconfig/internal/defines"
	"github.com/cwbudde/go-armaconfig/internal/diagnostics"
	"github.com/cwbudde/go-armaconfig/internal/ifstate"
	"github.com/cwbudde/go-armaconfig/internal/linecol"
	"github.com/cwbudde/go-armaconfig/pkg/token"
	"github.com/cwbudde/go-armaconfig/render"
)

// DefaultMaxDepth bounds recursive macro expansion so a cyclic macro
// definition fails fast instead of looping forever.
const DefaultMaxDepth = 64

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth overrides the recursion-depth bound.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) { e.maxDepth = depth }
}

// Engine is the preprocessor entry point. It is stateless across runs;
// create one and call Execute for each file.
type Engine struct {
	maxDepth int
}

// New returns an Engine with the given options applied over the defaults.
func New(opts ...Option) *Engine {
	e := &Engine{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs a single preprocessing pass over tokens using defs as the
// (possibly pre-seeded) macro table, returning the rewritten token stream.
func (e *Engine) Execute(tokens []*token.TokenPair, defs *defines.Table) ([]*token.TokenPair, error) {
	return e.processTokens(tokens, defs, 0, true)
}

// processTokens walks tokens once, expanding macros and (when allowDirectives
// is set) dispatching directive lines. allowDirectives is true only for the
// top-level source stream: a macro body or argument is reprocessed with it
// false, since directives never occur inside a macro's stored text — a
// '#' there is always stringification, regardless of what the body's own
// freshly-reset line-start tracking would otherwise suggest.
func (e *Engine) processTokens(tokens []*token.TokenPair, defs *defines.Table, depth int, allowDirectives bool) ([]*token.TokenPair, error) {
	if depth > e.maxDepth {
		return nil, diagnostics.New(diagnostics.KindRecursionLimit, "", token.Position{}, token.Position{}, "macro expansion exceeded the maximum recursion depth")
	}

	lcc := linecol.New()
	ifstates := ifstate.New()
	cur := newCursor(tokens)

	var out []*token.TokenPair

	for {
		pair := cur.peek()
		if pair == nil {
			break
		}
		atLineStart := lcc.Newline()
		reading := ifstates.Reading()

		switch {
		case pair.Token.Kind == token.Directive && atLineStart && allowDirectives:
			if err := e.handleDirective(cur, lcc, ifstates, defs, reading); err != nil {
				return nil, err
			}

		case pair.Token.Kind == token.Directive && reading:
			expansion, err := e.stringify(cur, lcc, defs, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, expansion...)

		case pair.Token.Kind == token.Newline:
			cur.next()
			lcc.AddLine()
			if reading {
				out = append(out, pair)
			}

		case pair.Token.Kind == token.EOI:
			cur.next()

		case pair.Token.IsIdentPart() && reading:
			expansion, err := e.resolve(cur, lcc, defs, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, expansion...)

		case reading:
			cur.next()
			lcc.ModCols(pair)
			out = append(out, pair)

		default:
			cur.next()
			lcc.AddCols(pair.Token)
		}
	}

	return out, nil
}

// handleDirective consumes a leading '#' already confirmed to be at the
// start of a line, reads the directive identifier, dispatches on it, and
// finally discards any trailing whitespace and the line's own terminating
// newline — directive lines never themselves appear in rendered output.
func (e *Engine) handleDirective(cur *cursor, lcc *linecol.Counter, ifstates *ifstate.Stack, defs *defines.Table, reading bool) error {
	hash := cur.next() // consume '#'
	lcc.ModCols(hash)

	directiveTok := cur.next()
	if directiveTok == nil {
		return diagnostics.New(diagnostics.KindDirectiveSyntax, hash.Path, hash.Start, hash.End, "'#' without a directive")
	}
	lcc.ModCols(directiveTok)
	name := directiveTok.Token.Literal

	var err error
	ownsLineEnd := false
	switch {
	case name == "define" && reading:
		// handleDefine reads all the way through its body's terminating
		// newline itself (including line continuations), so the cursor is
		// already positioned at the start of the next line.
		err = e.handleDefine(cur, lcc, defs)
		ownsLineEnd = true
	case name == "undef" && reading:
		err = e.handleUndef(cur, lcc, defs)
	case name == "ifdef" && reading:
		err = e.handleIfdef(cur, lcc, ifstates, defs, false)
	case name == "ifndef" && reading:
		err = e.handleIfdef(cur, lcc, ifstates, defs, true)
	case (name == "ifdef" || name == "ifndef") && !reading:
		ifstates.Push(ifstate.PassingChild)
	case name == "else":
		ifstates.Flip()
	case name == "endif":
		ifstates.Pop()
	case reading:
		err = diagnostics.New(diagnostics.KindDirectiveSyntax, directiveTok.Path, directiveTok.Start, directiveTok.End, "unsupported directive: "+name)
	default:
		// Unrecognized directive encountered while passing: ignored.
	}
	if err != nil {
		return err
	}
	if ownsLineEnd {
		return nil
	}

	return e.consumeRestOfDirectiveLine(cur, lcc)
}

func (e *Engine) consumeRestOfDirectiveLine(cur *cursor, lcc *linecol.Counter) error {
	for {
		tp := cur.peek()
		if tp == nil || tp.Token.Kind == token.EOI {
			return nil
		}
		if tp.Token.Kind == token.Newline {
			cur.next()
			lcc.AddLine()
			return nil
		}
		cur.next()
		lcc.ModCols(tp)
	}
}

func (e *Engine) handleDefine(cur *cursor, lcc *linecol.Counter, defs *defines.Table) error {
	name, _, _, err := e.readIdent(cur, lcc)
	if err != nil {
		return err
	}

	if next := e.peekNonWhitespace(cur, lcc); next != nil && next.Token.Kind == token.LeftParen {
		args, err := e.readArgList(cur, lcc)
		if err != nil {
			return err
		}
		body, err := e.readDefineValue(cur, lcc)
		if err != nil {
			return err
		}
		formalArgs := make([]defines.Arg, len(args))
		for i, a := range args {
			formalArgs[i] = defines.Arg(a)
		}
		defs.NewFunction(name, formalArgs, body)
		return nil
	}

	body, err := e.readDefineValue(cur, lcc)
	if err != nil {
		return err
	}
	defs.NewWord(name, body)
	return nil
}

func (e *Engine) handleUndef(cur *cursor, lcc *linecol.Counter, defs *defines.Table) error {
	name, _, _, err := e.readIdent(cur, lcc)
	if err != nil {
		return err
	}
	defs.Remove(name)
	return nil
}

func (e *Engine) handleIfdef(cur *cursor, lcc *linecol.Counter, ifstates *ifstate.Stack, defs *defines.Table, negate bool) error {
	name, _, _, err := e.readIdent(cur, lcc)
	if err != nil {
		return err
	}
	defined := defs.Defined(name)
	if defined != negate {
		ifstates.Push(ifstate.ReadingIf)
	} else {
		ifstates.Push(ifstate.PassingIf)
	}
	return nil
}

// stringify implements `#IDENT`: read the identifier following a '#' that
// isn't handled as a directive, fully macro-expand it, and wrap the result
// in one pair of synthesized double quotes.
func (e *Engine) stringify(cur *cursor, lcc *linecol.Counter, defs *defines.Table, depth int) ([]*token.TokenPair, error) {
	hash := cur.next()
	lcc.ModCols(hash)

	name, _, _, err := e.readIdent(cur, lcc)
	if err != nil {
		return nil, err
	}

	expansion, err := e.expandName(cur, lcc, defs, depth, name)
	if err != nil {
		return nil, err
	}

	out := make([]*token.TokenPair, 0, len(expansion)+2)
	out = append(out, token.Anon(token.Punct(token.DoubleQuote)))
	out = append(out, expansion...)
	out = append(out, token.Anon(token.Punct(token.DoubleQuote)))
	return out, nil
}

// expandName looks up name in defs and fully expands it: a function macro
// must be immediately followed by a call's argument list, a word macro
// expands its body, and an undefined name reproduces itself verbatim.
func (e *Engine) expandName(cur *cursor, lcc *linecol.Counter, defs *defines.Table, depth int, name string) ([]*token.TokenPair, error) {
	d, ok := defs.Get(name)
	if !ok {
		return []*token.TokenPair{token.Anon(token.New(token.Word, name))}, nil
	}
	if !d.IsFunction() {
		return e.processTokens(d.Clone().Statement, defs.Snapshot(), depth+1, false)
	}

	next := cur.peek()
	if next == nil || next.Token.Kind != token.LeftParen {
		return nil, diagnostics.New(diagnostics.KindDirectiveSyntax, "", token.Position{}, token.Position{}, "expected '(' after function-like macro "+name)
	}
	inputs, err := e.readArgList(cur, lcc)
	if err != nil {
		return nil, err
	}
	if len(inputs) != len(d.Args) {
		return nil, diagnostics.New(diagnostics.KindArgCount, "", token.Position{}, token.Position{}, "wrong number of arguments to macro "+name)
	}

	scope := defs.Snapshot()
	for i, param := range d.Args {
		paramName := render.Concat(param)
		expandedActual, err := e.processTokens(inputs[i], defs, depth+1, false)
		if err != nil {
			return nil, err
		}
		scope.NewWord(paramName, expandedActual)
	}
	return e.processTokens(d.Clone().Statement, scope, depth+1, false)
}

// resolve implements identifier resolution (longest-prefix macro match)
// for a Word/Underscore run encountered while reading. The caller only
// dispatches here after peeking an IsIdentPart token, so the first loop
// iteration always collects at least one token into stack.
func (e *Engine) resolve(cur *cursor, lcc *linecol.Counter, defs *defines.Table, depth int) ([]*token.TokenPair, error) {
	var stack []*token.TokenPair
	for {
		tp := cur.peek()
		if tp == nil || !tp.Token.IsIdentPart() {
			break
		}
		cur.next()
		lcc.ModCols(tp)
		stack = append(stack, tp)
	}

	var out []*token.TokenPair
	for len(stack) > 0 {
		matched := false
		for i := len(stack); i >= 1; i-- {
			name := identText(stack[:i])
			if !defs.Defined(name) {
				continue
			}
			expansion, err := e.expandName(cur, lcc, defs, depth, name)
			if err != nil {
				return nil, err
			}
			cur.pushFront(stack[i:])
			out = append(out, expansion...)
			matched = true
			return out, nil
		}
		if !matched {
			out = append(out, stack[0])
			stack = stack[1:]
		}
	}
	return out, nil
}

func identText(pairs []*token.TokenPair) string {
	var sb []byte
	for _, tp := range pairs {
		if tp.Token.Kind == token.Underscore {
			sb = append(sb, '_')
		} else {
			sb = append(sb, tp.Token.Literal...)
		}
	}
	return string(sb)
}
