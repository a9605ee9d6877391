// SPDX-License-Identifier: MPL-2.0

// Package symbols generates C wrapper stanzas for a library's exported
// functions: it preprocesses the public headers, locates the declaration
// of every requested symbol, and renders either wrapper typedefs or ifunc
// forwarders for a test harness to link against.
package symbols

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"slices"
	"strings"
)

// DefaultPreprocessor is the preprocessor command line used when none is
// configured.
const DefaultPreprocessor = "cpp -E"

// declPattern matches a function declaration: an optional attribute and
// qualifiers, the return type, the function name, and the argument list.
// Keyword-led statements that mimic the shape (else/typedef/return) are
// filtered after matching, since the dialect has no lookahead.
var declPattern = regexp.MustCompile(`(?:^|;)\s*(?:extern\s+)?((?:__attribute__\s*\(\((?:const|pure)\)\)\s+)?(?:const\s+)?(?:struct\s+)?\w+(?:\s+|\s*\*?\s*))(\w+)\s*\(([^0]+)\)\s*`)

var rejectedLeadingKeywords = map[string]struct{}{
	"else":    {},
	"typedef": {},
	"return":  {},
}

// Definition is one matched function declaration.
type Definition struct {
	// Line is the full merged declaration text.
	Line string
	// ReturnType is the declared return type, attribute included.
	ReturnType string
	// Name is the function name.
	Name string
	// Arguments is the raw argument list between the parentheses.
	Arguments string
}

// Options configures one generation run.
type Options struct {
	// Preprocessor is the preprocessor command line (default "cpp -E").
	Preprocessor string
	// Defines are NAME=VALUE macro definitions passed to the preprocessor
	// and replayed into the generated output.
	Defines []string
	// Header names a specifier header to include; when set the output is
	// C code with ifunc forwarders instead of wrapper typedefs.
	Header string
	// Sources are the headers to scrape.
	Sources []string
	// Symbols are the exported functions to wrap; every one must be found.
	Symbols []string
}

// commandRunner executes an external command with closed stdin and returns
// its stdout. Replaced in tests.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	return cmd.Output()
}

// Generator produces the wrapper output for one Options set.
type Generator struct {
	opts Options
	run  commandRunner
}

// NewGenerator returns a Generator for opts.
func NewGenerator(opts Options) *Generator {
	if opts.Preprocessor == "" {
		opts.Preprocessor = DefaultPreprocessor
	}
	return &Generator{opts: opts, run: runCommand}
}

// Generate runs the preprocessor, extracts the requested declarations, and
// writes the full wrapper source to w. Requested symbols that never appear
// in the preprocessed headers are an error naming them.
func (g *Generator) Generate(ctx context.Context, w io.Writer) error {
	cmdline := g.commandLine()

	out, err := g.run(ctx, cmdline[0], cmdline[1:]...)
	if err != nil {
		return fmt.Errorf("run preprocessor %q: %w", strings.Join(cmdline, " "), err)
	}

	defs, err := g.extract(string(out))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "/* Generated from '%s </dev/null' */\n", strings.Join(cmdline, " "))
	g.writeHeader(w)
	for _, def := range defs {
		g.writeWrapper(w, def)
	}
	return nil
}

// commandLine assembles the full preprocessor invocation.
func (g *Generator) commandLine() []string {
	cmd := strings.Fields(g.opts.Preprocessor)
	for _, define := range g.opts.Defines {
		cmd = append(cmd, "--define", define)
	}
	for _, source := range g.opts.Sources {
		cmd = append(cmd, "-include", source)
	}
	return append(cmd, "-")
}

// extract matches every requested symbol against the merged declarations
// of the preprocessed text, preserving declaration order.
func (g *Generator) extract(text string) ([]Definition, error) {
	wanted := make(map[string]struct{}, len(g.opts.Symbols))
	for _, symbol := range g.opts.Symbols {
		wanted[symbol] = struct{}{}
	}

	var defs []Definition
	for _, line := range MergeDeclarations(text) {
		def, ok := matchDefinition(line)
		if !ok {
			continue
		}
		if _, want := wanted[def.Name]; !want {
			continue
		}
		defs = append(defs, def)
		delete(wanted, def.Name)
	}

	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for symbol := range wanted {
			missing = append(missing, symbol)
		}
		slices.Sort(missing)
		return nil, fmt.Errorf("some symbols were not matched: %s", strings.Join(missing, ", "))
	}
	return defs, nil
}

// MergeDeclarations joins the physical lines of preprocessed C into
// complete top-level declarations: preprocessor line markers are dropped,
// everything is joined, and splits on ; are re-accumulated until all
// brackets balance.
func MergeDeclarations(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		lines = append(lines, line)
	}

	var decls []string
	level := 0
	acc := ""
	for _, part := range strings.Split(strings.Join(lines, " "), ";") {
		level += strings.Count(part, "(") + strings.Count(part, "[") + strings.Count(part, "{")
		level -= strings.Count(part, ")") + strings.Count(part, "]") + strings.Count(part, "}")
		acc += part
		if level == 0 {
			if acc != "" {
				decls = append(decls, acc)
			}
			acc = ""
		}
	}
	return decls
}

// matchDefinition parses one merged declaration into a Definition.
func matchDefinition(line string) (Definition, bool) {
	m := declPattern.FindStringSubmatch(line)
	if m == nil {
		return Definition{}, false
	}
	if _, rejected := rejectedLeadingKeywords[strings.TrimSpace(m[1])]; rejected {
		return Definition{}, false
	}
	return Definition{Line: line, ReturnType: strings.TrimSpace(m[1]), Name: m[2], Arguments: m[3]}, true
}

// writeHeader emits the prologue: either the specifier-header include, or
// a standalone header replaying the defines and source includes.
func (g *Generator) writeHeader(w io.Writer) {
	if g.opts.Header != "" {
		fmt.Fprintf(w, "#include %q\n", g.opts.Header)
		return
	}
	fmt.Fprintln(w, "#pragma once")
	for _, define := range g.opts.Defines {
		fmt.Fprintf(w, "#define %s\n", strings.Replace(define, "=", " ", 1))
	}
	for _, source := range g.opts.Sources {
		fmt.Fprintf(w, "#include <%s>\n", source)
	}
}

// writeWrapper emits one wrapper stanza: an ifunc forwarder in header
// mode, a wrapper typedef otherwise.
func (g *Generator) writeWrapper(w io.Writer, def Definition) {
	if g.opts.Header != "" {
		fmt.Fprintf(w, "static wrap_type_%s wrap_res_%s(void) { return %s; }\n", def.Name, def.Name, def.Name)
		fmt.Fprintf(w, "%s wrap_%s(%s) __attribute__ ((ifunc (\"wrap_res_%s\")));\n\n", def.ReturnType, def.Name, def.Arguments, def.Name)
		return
	}
	fmt.Fprintf(w, "typedef %s (*wrap_type_%s)(%s);\n\n", def.ReturnType, def.Name, def.Arguments)
}
