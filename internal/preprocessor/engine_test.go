package preprocessor

import (
	"testing"

	"github.com/cwbudde/go-armaconfig/internal/defines"
	"github.com/cwbudde/go-armaconfig/internal/tokenizer"
	"github.com/cwbudde/go-armaconfig/render"
)

func runScenario(t *testing.T, input string) string {
	t.Helper()
	tokens, err := tokenizer.Tokenize(input, "scenario.cpp")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	eng := New()
	out, err := eng.Execute(tokens, defines.New())
	if err != nil {
		t.Fatalf("preprocess error: %v", err)
	}
	return render.Render(out).Export()
}

func TestObjectLikeMacro(t *testing.T) {
	input := "#define AFFIRM true\nvalue = AFFIRM;\n"
	want := "value = true;\n"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestChainedMacros(t *testing.T) {
	input := "#define NAME BRETT\n#define SALUT Mr.\n#define HI \"Hi SALUT NAME\"\ngreeting = HI;\n"
	want := "greeting = \"Hi Mr. BRETT\";\n"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUndefThenIfdef(t *testing.T) {
	input := "#define A true\n#undef A\n#ifdef A\nx = 1;\n#else\nx = 0;\n#endif\n"
	want := "x = 0;\n"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFunctionMacroSingleArg(t *testing.T) {
	input := "#define SAY_HI(N) Hi N\nv = \"SAY_HI(John)\";\n"
	want := "v = \"Hi John\";\n"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRecursiveFunctionMacros(t *testing.T) {
	input := "#define ADD_PERIOD(N) N.\n#define MR(N) Mr. N\n#define SAY_HI(N) Hi MR(ADD_PERIOD(N))\nv = \"SAY_HI(John)\";\n"
	want := "v = \"Hi Mr. John.\";\n"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringification(t *testing.T) {
	input := "#define QUOTE(s) #s\nv = QUOTE(HEMTT);\n"
	want := "v = \"HEMTT\";\n"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringificationOfWordMacroArgument(t *testing.T) {
	input := "#define VERSION 42\n#define QUOTE(s) #s\nv = QUOTE(VERSION);\n"
	want := "v = \"42\";\n"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringificationDoesNotMistakeBodyLeadingHashForADirective(t *testing.T) {
	// The '#' starting QUOTE's body would, if reprocessed with a fresh
	// line-start flag, look exactly like a directive line; it must still
	// stringify instead of erroring as an unsupported directive.
	input := "#define QUOTE(s) #s\n#define NAME HEMTT\nv = QUOTE(NAME);\n"
	want := "v = \"HEMTT\";\n"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDefineBodyTerminatedByEOIIsAccepted(t *testing.T) {
	input := "#define FOO bar"
	want := ""
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDefineBodyTerminatedByEOIIsUsable(t *testing.T) {
	input := "#define FOO bar\nv = FOO;"
	want := "v = bar;"
	if got := runScenario(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIfStatesReturnToStartingDepthAfterMatchedPair(t *testing.T) {
	input := "#ifdef A\nx = 1;\n#endif\ny = 2;\n"
	tokens, err := tokenizer.Tokenize(input, "t.cpp")
	if err != nil {
		t.Fatal(err)
	}
	eng := New()
	out, err := eng.Execute(tokens, defines.New())
	if err != nil {
		t.Fatal(err)
	}
	got := render.Render(out).Export()
	want := "y = 2;\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDefinedBeforeAndAfterDefineUndef(t *testing.T) {
	input := "#define A 1\n#undef A\nz = 1;\n"
	tbl := defines.New()
	if tbl.Defined("A") {
		t.Fatal("A must not be defined before the run")
	}
	tokens, err := tokenizer.Tokenize(input, "t.cpp")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New().Execute(tokens, tbl); err != nil {
		t.Fatal(err)
	}
	if tbl.Defined("A") {
		t.Fatal("A must be undefined again after the #undef pairs with the #define")
	}
}

func TestRecursionLimitOnCyclicMacro(t *testing.T) {
	input := "#define A B\n#define B A\nx = A;\n"
	tokens, err := tokenizer.Tokenize(input, "t.cpp")
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(WithMaxDepth(8)).Execute(tokens, defines.New())
	if err == nil {
		t.Fatal("expected a recursion-limit error on a cyclic macro pair")
	}
}

func TestIdempotentOnFullyExpandedOutput(t *testing.T) {
	input := "#define AFFIRM true\nvalue = AFFIRM;\n"
	first := runScenario(t, input)
	second := runScenario(t, first)
	if first != second {
		t.Fatalf("expected idempotence, got %q then %q", first, second)
	}
}
