package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/go-armaconfig/internal/diagnostics"
	"github.com/cwbudde/go-armaconfig/internal/tokenizer"
)

// formatTokenizerError renders a tokenizer.Error with a line of source
// context and a caret, the same presentation diagnostics.Format gives
// preprocessor errors, so both CLI commands read the same way at a
// terminal even though the tokenizer predates diagnostics.Error.
func formatTokenizerError(err error, source string) error {
	var terr *tokenizer.Error
	if !errors.As(err, &terr) {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error in %s:%s\n", terr.Path, terr.Start)
	if line := sourceLine(source, terr.Start.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", terr.Start.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+terr.Start.Column-1))
		sb.WriteString("^\n")
	}
	sb.WriteString(terr.Message)
	return errors.New(sb.String())
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

// formatPreprocessorError renders a diagnostics.Error with source context
// via diagnostics.Format, falling back to the bare error for anything else.
// Some diagnostics (argument-count mismatches and similar) carry no Path or
// position, since the call-site token stream doesn't track file identity
// once it's inside an expanded macro body; Format then prints no source
// line or caret for them.
func formatPreprocessorError(err error, source string) error {
	var derr *diagnostics.Error
	if !errors.As(err, &derr) {
		return err
	}
	return errors.New(diagnostics.Format(derr, source, false))
}
