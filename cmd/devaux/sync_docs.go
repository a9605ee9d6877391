// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"devaux-cli/internal/docsync"
	"devaux-cli/internal/issue"

	"github.com/spf13/cobra"
)

var (
	syncDocsVersion  string
	syncDocsNoLatest bool
)

var syncDocsCmd = &cobra.Command{
	Use:   "sync-docs <html-dir> <rsync-target>",
	Short: "Publish rendered man-page HTML with the version selector",
	Long: `Inject the jquery and navigation scripts into every rendered HTML page
in the directory, refresh the published version index, and rsync the pages
to the documentation site under the given version (and, unless --no-latest,
under latest as well).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, target := args[0], args[1]

		syncer := docsync.NewSyncer(cfg.Docs.BaseURL, cfg.Docs.JQueryURL)
		logger.Debug("publishing documentation",
			"version", syncDocsVersion, "dir", dir, "target", target)

		if err := syncer.Run(cmd.Context(), syncDocsVersion, dir, target, !syncDocsNoLatest); err != nil {
			return fail(cmd, issue.Wrap(err, "publish documentation", dir,
				"Check that rsync is installed and the target is reachable"))
		}
		return nil
	},
}

func init() {
	syncDocsCmd.Flags().StringVar(&syncDocsVersion, "version", "", "version the pages document (required)")
	syncDocsCmd.Flags().BoolVar(&syncDocsNoLatest, "no-latest", false, "do not also publish under latest/")
	_ = syncDocsCmd.MarkFlagRequired("version")
}
