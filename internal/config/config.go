// Package config holds the capability flags and resource bounds the walker
// needs but that are parser-version or deployment dependent (spec.md §9).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DocstringLineAdjustment selects which end of a multi-line docstring the
// parser collaborator's line numbers already describe, so the
// DocstringExtractor knows which end to derive by counting embedded
// newlines (spec.md §4.C).
type DocstringLineAdjustment string

const (
	// EndReportsEnd means the parser already reports the true end line;
	// the extractor derives the start line from the first string's
	// newline count. Matches a parser collaborator that, like the
	// original C parser this was ported from, reports a string literal's
	// position as its closing line.
	EndReportsEnd DocstringLineAdjustment = "end-reports-end"
	// EndReportsStart means the parser reports the start line for every
	// string in the literal; the extractor derives the end line from the
	// last string's newline count. This is pytree's behavior: tree-sitter
	// nodes always carry their StartPoint, never the end, so this is the
	// default.
	EndReportsStart DocstringLineAdjustment = "end-reports-start"
)

// Config is the walker's capability-flag and resource-bound configuration
// (spec.md §5, §9).
type Config struct {
	// IncludeUnexported mirrors the teacher inspectors' graph.Config flag.
	// It is loaded and defaulted here but no package reads it: pygraph does
	// not filter dunder/_private names from its value trees.
	IncludeUnexported bool `yaml:"includeUnexported"`

	// DocstringLineAdjustment selects the multi-line docstring line-number
	// adjustment the parser collaborator in use requires.
	DocstringLineAdjustment DocstringLineAdjustment `yaml:"docstringLineAdjustment"`

	// Resource bounds (spec.md §5). Exceeding a bound truncates the
	// payload; the event is still emitted.
	MaxDottedNameLength int `yaml:"maxDottedNameLength"`
	MaxExpressionLength int `yaml:"maxExpressionLength"`
	MaxDocstringLength  int `yaml:"maxDocstringLength"`
	MaxErrorMessageLen  int `yaml:"maxErrorMessageLength"`
}

// Default returns the configuration the walker uses absent an explicit
// file, with the resource bounds from spec.md §5 (matching
// MAX_DOTTED_NAME_LENGTH / MAX_ARG_VAL_SIZE / MAX_DOCSTRING_SIZE /
// MAX_ERROR_MSG_SIZE in the original C source).
func Default() *Config {
	return &Config{
		IncludeUnexported:       true,
		DocstringLineAdjustment: EndReportsStart,
		MaxDottedNameLength:     512,
		MaxExpressionLength:     2048,
		MaxDocstringLength:      65535,
		MaxErrorMessageLen:      32768,
	}
}

// Load reads a YAML configuration file on top of Default(): fields the file
// does not set keep their default values; fields it sets, even to zero or
// false, override them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
