// SPDX-License-Identifier: MPL-2.0

package postfmt

import (
	"strings"
	"testing"
)

func mustRewriter(t *testing.T, cfg *Config) *Rewriter {
	t.Helper()
	rw, err := NewRewriter(cfg)
	if err != nil {
		t.Fatalf("NewRewriter: %v", err)
	}
	return rw
}

func TestRewriteBracePlacement(t *testing.T) {
	rw := mustRewriter(t, nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "anonymous enum",
			input: "static enum\n{\n        A,\n        B,\n};\n",
			want:  "static enum {\n        A,\n        B,\n};\n",
		},
		{
			name:  "typedef enum",
			input: "typedef enum CachePolicy\n{\n        CACHE_ON,\n};\n",
			want:  "typedef enum CachePolicy {\n        CACHE_ON,\n};\n",
		},
		{
			name:  "foreach macro spacing",
			input: "        STRV_FOREACH (s, l)\n                use(*s);\n",
			want:  "        STRV_FOREACH(s, l)\n                use(*s);\n",
		},
		{
			name:  "already joined brace untouched",
			input: "enum {\n        A,\n};\n",
			want:  "enum {\n        A,\n};\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rw.Rewrite(tt.input); got != tt.want {
				t.Errorf("Rewrite:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestRewritePragmaReindent(t *testing.T) {
	rw := mustRewriter(t, nil)

	input := "#if A\n#        if B\n#                if C\n#                endif\n#        endif\n#endif\n"
	want := "#if A\n#  if B\n#    if C\n#    endif\n#  endif\n#endif\n"
	if got := rw.Rewrite(input); got != want {
		t.Errorf("Rewrite:\n%q\nwant:\n%q", got, want)
	}
}

func TestAlignTables(t *testing.T) {
	input := "\n" +
		"        static const Entry map[] = {\n" +
		"        { \"a\", 1 },\n" +
		"        { \"longer\", 22 },\n" +
		"};\n"

	got := alignTables(input)

	lines := strings.Split(got, "\n")
	var rowA, rowLonger string
	for _, line := range lines {
		if strings.Contains(line, "\"a\"") {
			rowA = line
		}
		if strings.Contains(line, "\"longer\"") {
			rowLonger = line
		}
	}
	if rowA == "" || rowLonger == "" {
		t.Fatalf("table rows missing from output:\n%s", got)
	}
	if strings.Index(rowA, "1") != strings.Index(rowLonger, "22") {
		t.Errorf("second column not aligned:\n%s\n%s", rowA, rowLonger)
	}
	if strings.Index(rowA, "\"a\"") != strings.Index(rowLonger, "\"longer\"") {
		t.Errorf("first column not aligned:\n%s\n%s", rowA, rowLonger)
	}
}

func TestAlignTablesKeepsRowComments(t *testing.T) {
	input := "\n" +
		"        static const Entry map[] = {\n" +
		"        { \"a\", 1 },\n" +
		"        /* legacy name */\n" +
		"        { \"b\", 2 },\n" +
		"};\n"

	got := alignTables(input)
	if !strings.Contains(got, "/* legacy name */") {
		t.Errorf("row comment dropped:\n%s", got)
	}
}

func TestRewrapHelpText(t *testing.T) {
	input := "\n        printf(\"Usage: %s [OPTIONS...]\\n\",\n" +
		"               program_invocation_short_name);\n"

	got := rewrapHelpText(input)

	if !strings.Contains(got, "\n               , program_invocation_short_name") {
		t.Errorf("invocation-name argument not moved behind the line break:\n%s", got)
	}
	if !strings.HasSuffix(strings.TrimRight(got, "\n"), "\n        );") {
		t.Errorf("closing paren not realigned under the call:\n%s", got)
	}
}

func TestAlignEnumTypedefs(t *testing.T) {
	input := "typedef enum Flags {\n" +
		"        A = 1,\n" +
		"        LONGNAME = 2,\n" +
		"} Flags;\n"

	got := alignEnumTypedefs(input)

	lines := strings.Split(got, "\n")
	var posA, posLong int
	for _, line := range lines {
		if strings.Contains(line, " A ") {
			posA = strings.Index(line, "=")
		}
		if strings.Contains(line, "LONGNAME") {
			posLong = strings.Index(line, "=")
		}
	}
	if posA == 0 || posLong == 0 {
		t.Fatalf("enum lines missing:\n%s", got)
	}
	if posA != posLong {
		t.Errorf("= not aligned (%d vs %d):\n%s", posA, posLong, got)
	}
}

func TestRewriteExtraSubstitutions(t *testing.T) {
	cfg := &Config{
		Substitutions: []SubstitutionRule{
			{Name: "tabs", Pattern: "\t", Replacement: "        "},
		},
	}
	rw := mustRewriter(t, cfg)

	if got := rw.Rewrite("a\tb"); got != "a        b" {
		t.Errorf("extra rule not applied: %q", got)
	}
}

func TestNewRewriterRejectsBadPattern(t *testing.T) {
	cfg := &Config{
		Substitutions: []SubstitutionRule{
			{Name: "bad", Pattern: "[unclosed", Replacement: "x"},
		},
	}
	if _, err := NewRewriter(cfg); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
