// SPDX-License-Identifier: MPL-2.0

package manrules

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Entry is the parsed front matter of one reference-entry document.
type Entry struct {
	// Title is the refmeta title of the page.
	Title string
	// Section is the manual section number (e.g. "1", "5", "8").
	Section string
	// Names are the declared page names in document order. Names[0] is the
	// canonical name the page installs as; the rest become aliases.
	Names []string
	// Conditional is the build-time feature flag gating the page, or the
	// empty string for unconditional pages.
	Conditional string
}

// ParseEntry reads the documentation source at path and extracts its front
// matter. Documents whose root element is not a reference entry (included
// snippets, templates) are not standalone pages; for those ParseEntry
// returns (nil, nil) and the caller skips the file.
func ParseEntry(path string) (*Entry, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "refentry" {
		return nil, nil
	}

	entry := &Entry{
		Conditional: root.SelectAttrValue("conditional", ""),
	}

	refmeta := root.FindElement("./refmeta")
	if refmeta == nil {
		return nil, fmt.Errorf("parse %s: missing refmeta element", path)
	}
	title := refmeta.FindElement("./refentrytitle")
	if title == nil {
		return nil, fmt.Errorf("parse %s: missing refentrytitle element", path)
	}
	section := refmeta.FindElement("./manvolnum")
	if section == nil {
		return nil, fmt.Errorf("parse %s: missing manvolnum element", path)
	}
	entry.Title = strings.TrimSpace(title.Text())
	entry.Section = strings.TrimSpace(section.Text())

	for _, refname := range root.FindElements("./refnamediv/refname") {
		entry.Names = append(entry.Names, strings.TrimSpace(refname.Text()))
	}
	if len(entry.Names) == 0 {
		return nil, fmt.Errorf("parse %s: no refname elements declared", path)
	}

	if entry.Title != entry.Names[0] {
		return nil, &ConsistencyError{File: path, Title: entry.Title, FirstName: entry.Names[0]}
	}

	return entry, nil
}

// qualify returns the installed identifier for a page name: "name.section".
func qualify(name, section string) string {
	return name + "." + section
}
