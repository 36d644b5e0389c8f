package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/go-armaconfig/internal/preprocessor"
	"github.com/cwbudde/go-armaconfig/internal/tokenizer"
	"github.com/cwbudde/go-armaconfig/render"
)

const sampleYAML = `
includePaths:
  - ./configs
  - ./addons
defines:
  - name: VERSION
    body: "1"
  - name: SAY_HI
    params: [NAME]
    body: "Hi NAME"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seeds.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadParsesIncludePathsAndDefines(t *testing.T) {
	path := writeTemp(t, sampleYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.IncludePaths) != 2 || cfg.IncludePaths[0] != "./configs" {
		t.Fatalf("unexpected include paths: %v", cfg.IncludePaths)
	}
	if len(cfg.Defines) != 2 {
		t.Fatalf("expected 2 defines, got %d", len(cfg.Defines))
	}
	if cfg.Defines[1].Name != "SAY_HI" || len(cfg.Defines[1].Params) != 1 {
		t.Fatalf("unexpected second define: %+v", cfg.Defines[1])
	}
}

func TestSeedConfigExpansionRoundTrips(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	table, err := cfg.ToDefines()
	if err != nil {
		t.Fatalf("ToDefines: %v", err)
	}
	if !table.Defined("VERSION") || !table.Defined("SAY_HI") {
		t.Fatalf("expected both seeds to be defined")
	}

	input := "v = VERSION;\ng = \"SAY_HI(John)\";\n"
	tokens, err := tokenizer.Tokenize(input, "seeded.cpp")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	out, err := preprocessor.New().Execute(tokens, table)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := render.Render(out).Export()
	want := "v = 1;\ng = \"Hi John\";\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLoadMissingFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestOverrideDefineBodyPatchesOnlyTheNamedEntry(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfgJSON, err := cfg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	patched, err := OverrideDefineBody(cfgJSON, "VERSION", "2")
	if err != nil {
		t.Fatalf("OverrideDefineBody: %v", err)
	}

	reloaded, err := FromJSON(patched)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if reloaded.Defines[0].Body != "2" {
		t.Fatalf("expected VERSION body to be patched to 2, got %q", reloaded.Defines[0].Body)
	}
	if reloaded.Defines[1].Name != "SAY_HI" || reloaded.Defines[1].Body != "Hi NAME" {
		t.Fatalf("expected SAY_HI to be untouched, got %+v", reloaded.Defines[1])
	}
	if len(reloaded.IncludePaths) != 2 {
		t.Fatalf("expected includePaths to survive the round trip, got %v", reloaded.IncludePaths)
	}
}

func TestOverrideDefineBodyUnknownNameIsAnError(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfgJSON, err := cfg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if _, err := OverrideDefineBody(cfgJSON, "NOPE", "x"); err == nil {
		t.Fatal("expected an error overriding a macro that doesn't exist")
	}
}
