// SPDX-License-Identifier: MPL-2.0

package postfmt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultClangFormat is the formatter binary looked up on PATH when no
// explicit path is configured.
const DefaultClangFormat = "clang-format"

// commandRunner executes an external command and returns its combined
// output. Replaced in tests.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Formatter formats C sources with clang-format and applies the cosmetic
// rewrite pass on top.
type Formatter struct {
	// ClangFormat is the clang-format binary to invoke.
	ClangFormat string
	// ExpectedVersion is the clang-format version prefix the style rules
	// were tuned for (e.g. "6.0"); empty skips the check.
	ExpectedVersion string

	rewriter *Rewriter
	run      commandRunner
}

// NewFormatter returns a Formatter invoking clangFormat (or the PATH
// default when empty) with the given rewriter.
func NewFormatter(clangFormat, expectedVersion string, rewriter *Rewriter) *Formatter {
	if clangFormat == "" {
		clangFormat = DefaultClangFormat
	}
	return &Formatter{
		ClangFormat:     clangFormat,
		ExpectedVersion: expectedVersion,
		rewriter:        rewriter,
		run:             runCommand,
	}
}

// CheckTool verifies the clang-format binary exists and, when an expected
// version is configured, that it reports it. The cosmetic rules assume a
// specific formatter vintage; a different one reflows the sources.
func (f *Formatter) CheckTool(ctx context.Context) error {
	if _, err := exec.LookPath(f.ClangFormat); err != nil {
		return fmt.Errorf("%q is not executable: %w", f.ClangFormat, err)
	}
	if f.ExpectedVersion == "" {
		return nil
	}

	out, err := f.run(ctx, f.ClangFormat, "-version")
	if err != nil {
		return fmt.Errorf("query %s version: %w", f.ClangFormat, err)
	}
	if !strings.Contains(string(out), "version "+f.ExpectedVersion) {
		return fmt.Errorf("%s is not version %s.x: got %q", f.ClangFormat, f.ExpectedVersion, strings.TrimSpace(string(out)))
	}
	return nil
}

// FormatFile runs clang-format -i -style=file on path and then rewrites
// the result in place with the cosmetic pass.
func (f *Formatter) FormatFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if out, err := f.run(ctx, f.ClangFormat, "-i", "-style=file", path); err != nil {
		return fmt.Errorf("clang-format %s: %w: %s", path, err, strings.TrimSpace(string(out)))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read back %s: %w", path, err)
	}

	rewritten := f.rewriter.Rewrite(string(content))
	if rewritten == string(content) {
		return nil
	}
	return os.WriteFile(path, []byte(rewritten), info.Mode().Perm())
}
