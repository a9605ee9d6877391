// SPDX-License-Identifier: MPL-2.0

package postfmt

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckTool(t *testing.T) {
	t.Run("matching version", func(t *testing.T) {
		// "sh" stands in for the binary so LookPath succeeds; the
		// version query itself goes through the fake runner.
		f := NewFormatter("sh", "6.0", mustRewriter(t, nil))
		f.run = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return []byte("clang-format version 6.0.1 (tags/RELEASE_601/final)\n"), nil
		}
		if err := f.CheckTool(context.Background()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("version mismatch", func(t *testing.T) {
		f := NewFormatter("sh", "6.0", mustRewriter(t, nil))
		f.run = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return []byte("clang-format version 17.0.6\n"), nil
		}
		err := f.CheckTool(context.Background())
		if err == nil {
			t.Fatal("expected version mismatch error")
		}
		if !strings.Contains(err.Error(), "6.0") {
			t.Errorf("error should name expected version: %v", err)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		f := NewFormatter("definitely-not-a-real-formatter", "", mustRewriter(t, nil))
		if err := f.CheckTool(context.Background()); err == nil {
			t.Error("expected error for missing binary")
		}
	})

	t.Run("no expected version skips query", func(t *testing.T) {
		f := NewFormatter("sh", "", mustRewriter(t, nil))
		f.run = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			t.Error("version query should not run")
			return nil, nil
		}
		if err := f.CheckTool(context.Background()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestFormatFile(t *testing.T) {
	t.Run("applies cosmetic pass after clang-format", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.c")
		source := "static enum\n{\n        A,\n};\n"
		if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		f := NewFormatter("clang-format", "", mustRewriter(t, nil))
		var ranArgs []string
		f.run = func(_ context.Context, _ string, args ...string) ([]byte, error) {
			ranArgs = args
			return nil, nil // clang-format left the file as-is
		}

		if err := f.FormatFile(context.Background(), path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(ranArgs) != 3 || ranArgs[0] != "-i" || ranArgs[1] != "-style=file" || ranArgs[2] != path {
			t.Errorf("clang-format args = %v", ranArgs)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(content) != "static enum {\n        A,\n};\n" {
			t.Errorf("cosmetic pass not applied:\n%s", content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		f := NewFormatter("clang-format", "", mustRewriter(t, nil))
		f.run = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			t.Error("formatter should not run for a missing file")
			return nil, nil
		}
		err := f.FormatFile(context.Background(), filepath.Join(t.TempDir(), "absent.c"))
		if !os.IsNotExist(err) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid rules file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.cue")
		content := `substitutions: [{
	name:        "collapse_blank_runs"
	pattern:     "\n\n\n+"
	replacement: "\n\n"
}]
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Substitutions) != 1 || cfg.Substitutions[0].Name != "collapse_blank_runs" {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("invalid pattern rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.cue")
		content := `substitutions: [{name: "bad", pattern: "[unclosed", replacement: "x"}]`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid pattern")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.cue")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
