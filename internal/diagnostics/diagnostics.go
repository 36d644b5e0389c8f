// Package diagnostics defines the typed failure values the preprocessor
// returns, plus source-context formatting for presenting them to a user.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-armaconfig/pkg/token"
)

// Kind classifies a preprocessing failure.
type Kind int

const (
	// KindTokenizer is a grammar failure on the raw source.
	KindTokenizer Kind = iota
	// KindDirectiveSyntax is a directive keyword not followed by the
	// identifier it requires, or an unrecognized directive.
	KindDirectiveSyntax
	// KindArgCount is a function-macro call whose argument count doesn't
	// match its parameter count.
	KindArgCount
	// KindUnbalancedConditional is a stray #else/#endif. The engine never
	// returns this kind: a stray #else/#endif is not reported, Flip/Pop
	// simply no-op.
	KindUnbalancedConditional
	// KindRecursionLimit is a macro expansion exceeding the bounded
	// recursion depth.
	KindRecursionLimit
	// KindUnterminated is an EOI reached inside a parameter list or a
	// quoted string within a define body. EOI ending a define body itself
	// is not an error; see internal/preprocessor's readDefineValue.
	KindUnterminated
)

func (k Kind) String() string {
	switch k {
	case KindTokenizer:
		return "tokenizer error"
	case KindDirectiveSyntax:
		return "directive syntax error"
	case KindArgCount:
		return "macro argument count error"
	case KindUnbalancedConditional:
		return "unbalanced conditional"
	case KindRecursionLimit:
		return "recursion limit exceeded"
	case KindUnterminated:
		return "unterminated construct"
	default:
		return "error"
	}
}

// Error is the typed failure value every fallible operation in this module
// returns: a Kind, a human-readable message, and the source span it refers
// to. The engine returns the first Error raised and discards partial
// output — it never accumulates or recovers.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Start   token.Position
	End     token.Position
}

// New builds an Error.
func New(kind Kind, path string, start, end token.Position, message string) *Error {
	return &Error{Kind: kind, Message: message, Path: path, Start: start, End: end}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s:%s: %s", e.Kind, e.Path, e.Start, e.Message)
}

// Format renders the error with a line of source context and a caret under
// the offending column. If color is true, ANSI codes highlight the caret.
func Format(e *Error, source string, color bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.Path, e.Start.Line, e.Start.Column)

	if line := sourceLine(source, e.Start.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Start.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Start.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// FormatAll renders a sequence of errors one after another, each with its
// own source context, looking each error's source up by its Path. It is
// for callers that collect one error per file over several files; the
// armacfgpp CLI handles one file per invocation and uses Format, and the
// core engine itself never accumulates more than one error per run.
func FormatAll(errs []*Error, sources map[string]string, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return Format(errs[0], sources[errs[0].Path], color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "preprocessing failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[error %d of %d]\n", i+1, len(errs))
		sb.WriteString(Format(e, sources[e.Path], color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
