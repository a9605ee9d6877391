// SPDX-License-Identifier: MPL-2.0

// Package manrules regenerates the build-system rule list that wires up
// installed manual pages and their alias symlinks.
//
// Each documentation source file is a DocBook reference entry declaring a
// canonical page name, a manual section, and any number of alias names.
// The package parses the front matter of every input file into a RuleTable,
// enforces that no two files claim the same installed page name, and
// serializes the table as a deterministic meson list literal on stdout.
//
// Generation is all-or-nothing: any parse or validation failure aborts the
// run with the offending file named, and no partial rule list is emitted.
package manrules
