// Package config loads a YAML seed file describing macros and include
// paths a preprocessor run should start from, so a caller doesn't have to
// build a defines.Table by hand for the common case of "a handful of
// version/feature macros known ahead of time".
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-armaconfig/internal/defines"
	"github.com/cwbudde/go-armaconfig/internal/tokenizer"
	"github.com/cwbudde/go-armaconfig/pkg/token"
)

// SeedDefine is one pre-seeded macro: a Word macro when Params is empty,
// a Function macro otherwise.
type SeedDefine struct {
	Name   string   `yaml:"name" json:"name"`
	Params []string `yaml:"params,omitempty" json:"params,omitempty"`
	Body   string   `yaml:"body" json:"body"`
}

// SeedConfig is the YAML document shape: a set of macros to define before
// a run, plus include search paths for the caller's own VFS/resolver (the
// core preprocessor never reads files itself; this is metadata passed
// through for the collaborator that does).
type SeedConfig struct {
	IncludePaths []string     `yaml:"includePaths,omitempty" json:"includePaths,omitempty"`
	Defines      []SeedDefine `yaml:"defines,omitempty" json:"defines,omitempty"`
}

// Load reads and parses a YAML seed file at path.
func Load(path string) (*SeedConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg SeedConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ToDefines tokenizes every seed's Params and Body through the same
// tokenizer the preprocessor uses for real source files, and installs the
// result into a fresh defines.Table. A seed's Body and Params are just
// more Arma-config source text; tokenizing them here keeps that one code
// path rather than hand-building TokenPairs.
func (c *SeedConfig) ToDefines() (*defines.Table, error) {
	table := defines.New()

	for _, d := range c.Defines {
		body, err := tokenizer.Tokenize(d.Body, "<config:"+d.Name+">")
		if err != nil {
			return nil, fmt.Errorf("config: seed %q: %w", d.Name, err)
		}
		body = stripEOI(body)

		if len(d.Params) == 0 {
			table.NewWord(d.Name, body)
			continue
		}

		args := make([]defines.Arg, len(d.Params))
		for i, p := range d.Params {
			paramTokens, err := tokenizer.Tokenize(p, "<config:"+d.Name+">")
			if err != nil {
				return nil, fmt.Errorf("config: seed %q param %q: %w", d.Name, p, err)
			}
			args[i] = defines.Arg(stripEOI(paramTokens))
		}
		table.NewFunction(d.Name, args, body)
	}

	return table, nil
}

// ToJSON renders the config as a JSON document, so a caller holding only
// the raw document (not a parsed *SeedConfig) can patch one field with
// OverrideDefineBody without round-tripping through YAML again.
func (c *SeedConfig) ToJSON() (string, error) {
	out, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("config: marshal to JSON: %w", err)
	}
	return string(out), nil
}

// FromJSON parses a JSON document back into a SeedConfig, the other half
// of the round trip ToJSON/OverrideDefineBody enables.
func FromJSON(cfgJSON string) (*SeedConfig, error) {
	var cfg SeedConfig
	if err := json.Unmarshal([]byte(cfgJSON), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse JSON: %w", err)
	}
	return &cfg, nil
}

// OverrideDefineBody patches the body of the single named define within a
// JSON-encoded SeedConfig document, leaving everything else untouched. It
// exists for a CLI flag like "--set NAME=VALUE" that overrides one macro
// from a larger shared seed file without forcing the caller to rebuild
// the whole SeedConfig/Defines pipeline by hand: gjson locates the
// matching entry's index, sjson rewrites just that one path.
func OverrideDefineBody(cfgJSON, name, body string) (string, error) {
	defines := gjson.Get(cfgJSON, "defines")
	if !defines.Exists() {
		return "", fmt.Errorf("config: no defines in document")
	}

	index := -1
	defines.ForEach(func(key, value gjson.Result) bool {
		if value.Get("name").String() == name {
			index = int(key.Int())
			return false
		}
		return true
	})
	if index < 0 {
		return "", fmt.Errorf("config: no define named %q", name)
	}

	path := fmt.Sprintf("defines.%d.body", index)
	patched, err := sjson.Set(cfgJSON, path, body)
	if err != nil {
		return "", fmt.Errorf("config: set %s: %w", path, err)
	}
	return patched, nil
}

// stripEOI drops the tokenizer's trailing end-of-input marker: a macro
// body built this way is spliced into another token stream, where an EOI
// in the middle would be read as the end of that stream too.
func stripEOI(tokens []*token.TokenPair) []*token.TokenPair {
	out := tokens[:0:0]
	for _, tp := range tokens {
		if tp.Token.Kind == token.EOI {
			continue
		}
		out = append(out, tp)
	}
	return out
}
