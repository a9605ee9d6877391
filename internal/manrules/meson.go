// SPDX-License-Identifier: MPL-2.0

package manrules

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// GroupedRule is the denormalized record the build system consumes: one
// page with its section, its sorted alias base names, and the conditional
// tag under which the rule applies.
type GroupedRule struct {
	// Name is the page base name, section suffix stripped.
	Name string
	// Section is the manual section digit.
	Section string
	// Aliases are the alias base names, alphabetically sorted, excluding
	// the page's own name.
	Aliases []string
	// Conditional is the build-time feature flag, or "" for unconditional.
	Conditional string
}

const mesonHeader = `# SPDX-License-Identifier: LGPL-2.1-or-later

# Do not edit. Generated by devaux man-rules.
# Update with:
#     ninja -C build update-man-rules
manpages = [`

const mesonFooter = `]
# Really, do not edit.`

// GroupedRules derives the final rule list from the table: one GroupedRule
// per distinct (target, conditional) pair, sorted by qualified target name
// and then by conditional tag. The output is a pure function of the table's
// content, independent of the order files were added in.
func (t *RuleTable) GroupedRules() []GroupedRule {
	type key struct {
		target      string
		conditional string
	}

	grouped := make(map[key][]string)
	for conditional, rules := range t.groups {
		for alias, target := range rules {
			k := key{target, conditional}
			if _, ok := grouped[k]; !ok {
				grouped[k] = nil
			}
			if alias != target {
				grouped[k] = append(grouped[k], stripSection(alias))
			}
		}
	}

	keys := make([]key, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b key) int {
		if c := strings.Compare(a.target, b.target); c != 0 {
			return c
		}
		return strings.Compare(a.conditional, b.conditional)
	})

	rules := make([]GroupedRule, 0, len(keys))
	for _, k := range keys {
		aliases := grouped[k]
		slices.Sort(aliases)
		rules = append(rules, GroupedRule{
			Name:        stripSection(k.target),
			Section:     k.target[len(k.target)-1:],
			Aliases:     aliases,
			Conditional: k.conditional,
		})
	}
	return rules
}

// WriteMeson serializes the rule list as a meson list literal between the
// fixed do-not-edit banner and footer.
func WriteMeson(w io.Writer, rules []GroupedRule) error {
	if _, err := fmt.Fprintln(w, mesonHeader); err != nil {
		return err
	}
	for _, rule := range rules {
		aliases := make([]string, len(rule.Aliases))
		for i, alias := range rule.Aliases {
			aliases[i] = quote(alias)
		}
		_, err := fmt.Fprintf(w, "        [%s, %s, [%s], %s],\n",
			quote(rule.Name), quote(rule.Section), strings.Join(aliases, ", "), quote(rule.Conditional))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, mesonFooter)
	return err
}

// stripSection drops the trailing ".<digit>" of a qualified name.
func stripSection(qualified string) string {
	return qualified[:len(qualified)-2]
}

func quote(s string) string {
	return "'" + s + "'"
}
