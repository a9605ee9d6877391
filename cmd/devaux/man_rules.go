// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"

	"devaux-cli/internal/issue"
	"devaux-cli/internal/manrules"

	"github.com/spf13/cobra"
)

var manRulesCmd = &cobra.Command{
	Use:   "man-rules <xml-file>...",
	Short: "Regenerate the meson rule list for man pages and their aliases",
	Long: `Parse the front matter of every given DocBook reference entry and print
the meson 'manpages' list wiring up each page and its alias symlinks.

Index and template documents are skipped by filename; documents whose
root element is not <refentry> are skipped silently. Any malformed or
inconsistent document aborts the whole run: the generated rules are
all-or-nothing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("generating man-page rules", "inputs", len(args))

		// Buffer the fragment so a failing input never leaves a partial
		// rule list on stdout.
		var buf bytes.Buffer
		if err := manrules.Generate(args, &buf); err != nil {
			return fail(cmd, manRulesDiagnostic(err))
		}

		_, err := os.Stdout.Write(buf.Bytes())
		return err
	},
}

// manRulesDiagnostic attaches the offending file and a fix hint according
// to the validation failure kind.
func manRulesDiagnostic(err error) error {
	var (
		consistency *manrules.ConsistencyError
		duplicate   *manrules.DuplicatePageError
	)
	switch {
	case errors.As(err, &consistency):
		return issue.Wrap(err, "generate man-page rules", consistency.File,
			"Make <refentrytitle> match the first <refname> of the page")
	case errors.As(err, &duplicate):
		return issue.Wrap(err, "generate man-page rules", duplicate.File,
			"Page name "+duplicate.Alias+" is already claimed by another document",
			"Rename the page or remove the duplicate <refname>")
	default:
		return issue.Wrap(err, "generate man-page rules", "",
			"Check that the file is well-formed DocBook XML")
	}
}
