// SPDX-License-Identifier: MPL-2.0

package manrules

import (
	"io"
	"path/filepath"
)

// skipBasenames are generated or template documents that never contribute
// rules, matched by base filename wherever they appear in the input list.
var skipBasenames = map[string]struct{}{
	"systemd.index.xml":       {},
	"systemd.directives.xml":  {},
	"directives-template.xml": {},
}

// Generate parses every documentation source in paths, builds the rule
// table, and writes the serialized meson fragment to w. Files are processed
// strictly in sequence; the first parse or validation failure aborts the
// run and nothing is written to w.
func Generate(paths []string, w io.Writer) error {
	table := NewRuleTable()
	for _, path := range paths {
		if _, skip := skipBasenames[filepath.Base(path)]; skip {
			continue
		}
		entry, err := ParseEntry(path)
		if err != nil {
			return err
		}
		if entry == nil {
			continue
		}
		if err := table.Add(entry, path); err != nil {
			return err
		}
	}
	return WriteMeson(w, table.GroupedRules())
}
