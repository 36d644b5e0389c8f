package render

import (
	"strconv"
	"testing"

	"github.com/cwbudde/go-armaconfig/internal/tokenizer"
)

func TestRenderExportRoundTripsPlainSource(t *testing.T) {
	input := "value = 1;\nother = 2;\n"
	tokens, err := tokenizer.Tokenize(input, "plain.cpp")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	got := Render(tokens).Export()
	if got != input {
		t.Fatalf("got %q, want %q", got, input)
	}
}

func TestConcatIgnoresEOI(t *testing.T) {
	input := "x;"
	tokens, err := tokenizer.Tokenize(input, "x.cpp")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if got := Concat(tokens); got != input {
		t.Fatalf("got %q, want %q", got, input)
	}
}

func TestExportMapJSONIsQueryableForEveryLine(t *testing.T) {
	input := "a = 1;\nb = 2;\nc = 3;\n"
	tokens, err := tokenizer.Tokenize(input, "lines.cpp")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	rendered := Render(tokens)
	mapJSON, err := rendered.ExportMapJSON()
	if err != nil {
		t.Fatalf("ExportMapJSON: %v", err)
	}

	for lineNo := range rendered.Map() {
		key := strconv.Itoa(lineNo)
		first := QueryMapJSON(mapJSON, key+".0.path")
		if !first.Exists() || first.String() != "lines.cpp" {
			t.Fatalf("line %d: expected path %q, got %q (exists=%v)", lineNo, "lines.cpp", first.String(), first.Exists())
		}
	}
}
