// SPDX-License-Identifier: MPL-2.0

package manrules

import "fmt"

type (
	// ConsistencyError reports a document whose metadata title disagrees
	// with its first declared name. The two must match: the first declared
	// name is what the page installs as.
	ConsistencyError struct {
		// File is the path of the offending document.
		File string
		// Title is the refmeta title.
		Title string
		// FirstName is the first declared name.
		FirstName string
	}

	// DuplicatePageError reports a qualified page name claimed by more than
	// one document. Page names must be unique across every conditional
	// group, otherwise two build rules would install the same page.
	DuplicatePageError struct {
		// File is the path of the document that re-declared the name.
		File string
		// Alias is the qualified page name (name.section).
		Alias string
	}
)

// Error returns the error message for ConsistencyError.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: refmeta title %q does not match first declared name %q", e.File, e.Title, e.FirstName)
}

// Error returns the error message for DuplicatePageError.
func (e *DuplicatePageError) Error() string {
	return fmt.Sprintf("%s: duplicate page name %q", e.File, e.Alias)
}
