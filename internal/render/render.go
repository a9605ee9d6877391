// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/flosch/pongo2/v6"
)

// Template variable references: the leading identifier of an output
// expression or of an if/elif condition. Filters, literals, and operators
// never appear in the leading position for the config templates this
// renderer serves.
var (
	exprVarPattern = regexp.MustCompile(`\{\{-?\s*(?:not\s+)?([A-Za-z_]\w*)`)
	condVarPattern = regexp.MustCompile(`\{%-?\s*(?:el)?if\s+(?:not\s+)?([A-Za-z_]\w*)`)
)

// Render fills the template text with the given defines. Template blocks
// behave like Jinja with trim_blocks: the newline after a {% %} tag is
// swallowed. Referencing a name that is not defined is an error, so a
// template cannot silently render against an incomplete configuration.
func Render(text string, defines Defines) (string, error) {
	if err := checkUndefined(text, defines); err != nil {
		return "", err
	}

	set := pongo2.NewSet("render", pongo2.MustNewLocalFileSystemLoader(""))
	set.Options = &pongo2.Options{TrimBlocks: true}

	tpl, err := set.FromString(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	out, err := tpl.Execute(pongo2.Context(defines))
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// checkUndefined rejects templates that reference names missing from the
// defines, mirroring a strict-undefined rendering mode.
func checkUndefined(text string, defines Defines) error {
	missing := make(map[string]struct{})
	for _, pattern := range []*regexp.Regexp{exprVarPattern, condVarPattern} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if _, ok := defines[m[1]]; !ok {
				missing[m[1]] = struct{}{}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Errorf("template references undefined configuration: %v", names)
}
