// Package render turns a preprocessed TokenPair sequence back into a
// source string, plus a per-line structural map used by downstream
// diagnostics and tooling to attribute rendered bytes back to their
// original files and positions.
package render

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/cwbudde/go-armaconfig/pkg/token"
)

// LineEntry is one structural entry in a LineMap: the column and byte
// length of a rendered token's text, the source path it came from, and
// the token itself.
type LineEntry struct {
	Column int         `json:"column"`
	Length int         `json:"length"`
	Path   string       `json:"path"`
	Token  token.Token `json:"token"`
}

// LineMap is line number -> the ordered entries rendered on that line.
type LineMap map[int][]LineEntry

// Rendered holds the output token sequence and its structural map.
type Rendered struct {
	tokens []*token.TokenPair
	lines  LineMap
}

// Render concatenates tokens' string forms and builds the per-line map in
// one pass. EOI pairs are ignored; they carry no text.
func Render(tokens []*token.TokenPair) *Rendered {
	lines := make(LineMap)
	lineNo := 1
	col := 1
	var current []LineEntry

	for _, tp := range tokens {
		if tp.Token.Kind == token.EOI {
			continue
		}
		if tp.Token.Kind == token.Newline {
			lines[lineNo] = current
			lineNo++
			col = 1
			current = nil
			continue
		}
		text := tp.Token.Text()
		current = append(current, LineEntry{
			Column: col,
			Length: len(text),
			Path:   tp.Path,
			Token:  tp.Token,
		})
		col += len(text)
	}
	if len(current) > 0 {
		lines[lineNo] = current
	}

	return &Rendered{tokens: tokens, lines: lines}
}

// Concat renders the raw concatenation of tokens' string forms without
// building a line map. Used wherever only the text matters: Export, and
// rendering a macro parameter's name.
func Concat(tokens []*token.TokenPair) string {
	var sb []byte
	for _, tp := range tokens {
		if tp.Token.Kind == token.EOI {
			continue
		}
		sb = append(sb, tp.Token.Text()...)
	}
	return string(sb)
}

// Tokens returns the rendered output sequence.
func (r *Rendered) Tokens() []*token.TokenPair {
	return r.tokens
}

// Map returns the per-line structural map.
func (r *Rendered) Map() LineMap {
	return r.lines
}

// Export concatenates every output token's string form into the final
// preprocessed source text.
func (r *Rendered) Export() string {
	return Concat(r.tokens)
}

// ExportMapJSON serializes the line map to JSON, keyed by line number as a
// string (JSON object keys must be strings). The result is queryable by
// gjson path expressions such as "3.0.path".
func (r *Rendered) ExportMapJSON() (string, error) {
	out, err := json.Marshal(r.lines)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// QueryMapJSON is a thin gjson wrapper for callers that want to query an
// already-exported map JSON document without re-marshaling it (e.g. a
// diagnostics UI repeatedly asking "what token produced this byte").
func QueryMapJSON(mapJSON, path string) gjson.Result {
	return gjson.Get(mapJSON, path)
}
