// SPDX-License-Identifier: MPL-2.0

package manrules

// RuleTable accumulates alias rules across all input documents. It maps a
// conditional tag to the alias rules active under that tag, each rule being
// a qualified alias name resolving to a qualified target name.
//
// The table has exactly one writer (Add, called once per file in sequence)
// and one reader (GroupedRules, called once at the end); it is built in the
// driver and threaded through the per-file calls rather than living as
// package state.
type RuleTable struct {
	groups map[string]map[string]string
}

// NewRuleTable returns an empty rule table.
func NewRuleTable() *RuleTable {
	return &RuleTable{groups: make(map[string]map[string]string)}
}

// Add registers every declared name of entry as an alias of its canonical
// qualified name, under the entry's conditional tag. The canonical name
// itself is registered as a self-alias so that pages without aliases still
// produce a rule.
//
// A qualified name already present under any conditional tag is a fatal
// *DuplicatePageError: two documents may never claim the same installed
// page. file is only used to attribute that error.
func (t *RuleTable) Add(entry *Entry, file string) error {
	group := t.groups[entry.Conditional]
	if group == nil {
		group = make(map[string]string)
		t.groups[entry.Conditional] = group
	}

	target := qualify(entry.Names[0], entry.Section)
	for _, name := range entry.Names {
		alias := qualify(name, entry.Section)
		if t.contains(alias) {
			return &DuplicatePageError{File: file, Alias: alias}
		}
		group[alias] = target
	}
	return nil
}

// contains reports whether alias is registered under any conditional tag.
func (t *RuleTable) contains(alias string) bool {
	for _, group := range t.groups {
		if _, ok := group[alias]; ok {
			return true
		}
	}
	return false
}
