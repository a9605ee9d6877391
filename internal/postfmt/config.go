// SPDX-License-Identifier: MPL-2.0

// Package postfmt runs clang-format over C sources and then applies the
// project's cosmetic style rules that clang-format cannot express: brace
// placement for enums, iteration-macro spacing, preprocessor reindenting,
// and space-alignment of table-like initializers.
package postfmt

import (
	"fmt"
	"os"
	"regexp"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

type (
	// Config holds extra substitution rules applied after the built-in
	// cosmetic pass, loaded from a CUE file.
	Config struct {
		// Substitutions defines regex patterns and their replacements,
		// applied in order over the whole file content.
		Substitutions []SubstitutionRule `json:"substitutions"`
	}

	// SubstitutionRule defines a regex pattern and its replacement.
	SubstitutionRule struct {
		// Name is a human-readable identifier for the rule.
		Name string `json:"name"`
		// Pattern is a regular expression to match.
		Pattern string `json:"pattern"`
		// Replacement is the string to substitute for matches.
		Replacement string `json:"replacement"`
	}

	// compiledRule is a substitution rule with a pre-compiled regex.
	compiledRule struct {
		name        string
		regex       *regexp.Regexp
		replacement string
	}
)

// DefaultConfig returns a configuration with no extra substitutions; the
// built-in cosmetic pass always runs.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads extra substitution rules from a CUE file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("CUE parse error: %w", err)
	}

	if err := value.Validate(cue.Concrete(false)); err != nil {
		return nil, fmt.Errorf("CUE validation error: %w", err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("CUE decode error: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig checks that every substitution rule is named and carries a
// compilable pattern.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	for i, rule := range cfg.Substitutions {
		if rule.Name == "" {
			return fmt.Errorf("substitution %d: missing name", i)
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("substitution %q: invalid pattern: %w", rule.Name, err)
		}
	}
	return nil
}
