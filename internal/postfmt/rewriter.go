// SPDX-License-Identifier: MPL-2.0

package postfmt

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Brace placement clang-format breaks: the opening brace belongs on
	// the same line as the enum keyword or the typedef'd enum name.
	enumBracePattern        = regexp.MustCompile(`(\s*enum)\n\s*\{`)
	typedefEnumBracePattern = regexp.MustCompile(`(\s*typedef enum [a-zA-Z0-9]+)\n\s*\{`)

	// Iteration macros take their argument list without a space.
	foreachPattern = regexp.MustCompile(`(\s*[A-Z0-9_]*FOREACH[A-Z0-9_]*)\s*\(`)

	// Preprocessor conditionals are indented two spaces per level, not
	// eight. Deepest levels first so shallower rules do not clip them.
	pragmaReindents = []struct {
		pattern     *regexp.Regexp
		replacement string
	}{
		{regexp.MustCompile(`\n# {32}`), "\n#        "},
		{regexp.MustCompile(`\n# {24}`), "\n#      "},
		{regexp.MustCompile(`\n# {16}`), "\n#    "},
		{regexp.MustCompile(`\n# {8}`), "\n#  "},
	}

	// tablePattern finds brace-table initializers: a block of {...},
	// rows, optionally interleaved with comments, closed by };
	tablePattern = regexp.MustCompile(`\n( *).*(\{\s*(?:\{[^}]*\},\s*?(?:/\*[\s\S]*?\*/\s*)?)+(?:\{\})?\s*\};)`)

	// helpTextPattern finds the usage printf calls whose argument
	// wrapping clang-format scrambles.
	helpTextPattern = regexp.MustCompile(`\n( *?)(printf\([^;]+?,\s*program_invocation_short_name(?:,\s*link)?\);)`)

	// typedefEnumBodyPattern finds typedef enum bodies whose value
	// assignments get column-aligned.
	typedefEnumBodyPattern = regexp.MustCompile(`(typedef enum [A-Za-z]+ \{[^}]+\} [A-Za-z]+;)`)

	lineCommentPattern  = regexp.MustCompile(`/\*.*\*/`)
	emptyBracePattern   = regexp.MustCompile(`\{\s*\}`)
	shortNameArgPattern = regexp.MustCompile(`,(\s*)(program_invocation_short_name)`)
	linkArgPattern      = regexp.MustCompile(`,(\s*)(link)`)
	closingParenPattern = regexp.MustCompile(`\s*\);`)
)

// Rewriter applies the cosmetic style pass to already clang-formatted
// source text.
type Rewriter struct {
	extra []compiledRule
}

// NewRewriter compiles the extra substitution rules from cfg. A nil cfg
// yields a rewriter running only the built-in pass.
func NewRewriter(cfg *Config) (*Rewriter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	extra := make([]compiledRule, len(cfg.Substitutions))
	for i, rule := range cfg.Substitutions {
		extra[i] = compiledRule{
			name:        rule.Name,
			regex:       regexp.MustCompile(rule.Pattern),
			replacement: rule.Replacement,
		}
	}
	return &Rewriter{extra: extra}, nil
}

// Rewrite applies every cosmetic rule to content and returns the result.
// The pass is text-to-text with no semantic model of C; each rule states
// the layout invariant it restores.
func (rw *Rewriter) Rewrite(content string) string {
	content = enumBracePattern.ReplaceAllString(content, "${1} {")
	content = typedefEnumBracePattern.ReplaceAllString(content, "${1} {")
	content = foreachPattern.ReplaceAllString(content, "${1}(")
	for _, r := range pragmaReindents {
		content = r.pattern.ReplaceAllString(content, r.replacement)
	}
	content = alignTables(content)
	content = rewrapHelpText(content)
	content = alignEnumTypedefs(content)
	for _, rule := range rw.extra {
		content = rule.regex.ReplaceAllString(content, rule.replacement)
	}
	return content
}

// alignTables space-pads the cells of brace-table struct initializers so
// each column lines up, preserving row comments.
func alignTables(content string) string {
	for _, m := range tablePattern.FindAllStringSubmatch(content, -1) {
		indent, table := m[1], m[2]

		rows := strings.Split(strings.TrimSpace(table), "},")
		cells := make([][]string, 0, len(rows))
		comments := make([]string, 0, len(rows))
		stripper := strings.NewReplacer("{", "", "}", "", ";", "")

		for _, row := range rows {
			comments = append(comments, lineCommentPattern.FindString(row))

			cleaned := []string{}
			for _, cell := range strings.Split(stripper.Replace(strings.TrimSpace(row)), ",") {
				cell = lineCommentPattern.ReplaceAllString(cell, "")
				cleaned = append(cleaned, strings.TrimSpace(cell))
			}
			cells = append(cells, cleaned)
		}
		// A comment above the first row stays where it is; only comments
		// trailing earlier rows get reflowed between rows.
		comments = comments[1:]

		columns := 0
		for _, row := range cells {
			columns = max(columns, len(row))
		}

		for c := range columns {
			width := 0
			for _, row := range cells {
				if len(row) > c {
					width = max(width, len(row[c]))
				}
			}
			for r, row := range cells {
				if len(row) <= c || row[c] == "" {
					continue
				}
				cell := row[c]
				pad := strings.Repeat(" ", width-len(cell))
				if len(row) == c+1 {
					cell += " " // no comma after the last cell in a row
				} else {
					cell += ","
				}
				cells[r][c] = cell + pad
			}
		}

		var inner strings.Builder
		for r, row := range cells {
			inner.WriteString("{ " + strings.Join(row, " ") + "}")
			if r+1 < len(cells) {
				inner.WriteString(",\n")
				if r < len(comments) && comments[r] != "" {
					inner.WriteString(indent + "        " + comments[r] + "\n")
				}
				inner.WriteString(indent + "        ")
			}
		}

		aligned := "{\n" + indent + "        " + inner.String() + "\n" + indent + "};"
		aligned = emptyBracePattern.ReplaceAllString(aligned, "{}")
		content = strings.ReplaceAll(content, table, aligned)
	}
	return content
}

// rewrapHelpText restores the canonical wrapping of usage printf calls:
// the invocation-name arguments on their own lines and the closing paren
// aligned under the call.
func rewrapHelpText(content string) string {
	for _, m := range helpTextPattern.FindAllStringSubmatch(content, -1) {
		indent, call := m[1], m[2]

		rewrapped := shortNameArgPattern.ReplaceAllString(call, "${1}, ${2}")
		rewrapped = linkArgPattern.ReplaceAllString(rewrapped, "${1}, ${2}")
		rewrapped = closingParenPattern.ReplaceAllString(rewrapped, "\n"+indent+");")

		content = strings.ReplaceAll(content, call, rewrapped)
	}
	return content
}

// alignEnumTypedefs pads the value assignments inside typedef enum bodies
// so the = signs form one column.
func alignEnumTypedefs(content string) string {
	for _, body := range typedefEnumBodyPattern.FindAllString(content, -1) {
		lines := strings.Split(body, "\n")

		width := 0
		for _, line := range lines {
			width = max(width, strings.Index(line, "="))
		}

		aligned := make([]string, len(lines))
		for i, line := range lines {
			if pos := strings.Index(line, "="); pos >= 0 {
				line = line[:pos] + strings.Repeat(" ", width-pos) + line[pos:]
			}
			aligned[i] = line
		}
		content = strings.ReplaceAll(content, body, strings.Join(aligned, "\n"))
	}
	return content
}
