// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io/fs"

	"devaux-cli/internal/issue"
	"devaux-cli/internal/postfmt"

	"github.com/spf13/cobra"
)

var (
	formatClangFormat string
	formatRulesFile   string
)

var formatCmd = &cobra.Command{
	Use:   "format <file>...",
	Short: "Run clang-format with the cosmetic post-formatting pass",
	Long: `Format the given C sources in place with clang-format and then apply
the cosmetic rewrites clang-format cannot express: brace placement for
enums, FOREACH call spacing, table and typedef alignment, help text
rewrapping.

Files that do not exist are skipped with a warning so the command can run
over a glob that names generated sources.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesCfg := postfmt.DefaultConfig()
		if formatRulesFile != "" {
			var err error
			rulesCfg, err = postfmt.LoadConfig(formatRulesFile)
			if err != nil {
				return fail(cmd, issue.Wrap(err, "load formatting rules", formatRulesFile))
			}
		}
		rewriter, err := postfmt.NewRewriter(rulesCfg)
		if err != nil {
			return fail(cmd, issue.Wrap(err, "load formatting rules", formatRulesFile))
		}

		binary := formatClangFormat
		if binary == "" {
			binary = cfg.ClangFormat.Path
		}
		formatter := postfmt.NewFormatter(binary, cfg.ClangFormat.ExpectedVersion, rewriter)

		if err := formatter.CheckTool(cmd.Context()); err != nil {
			return fail(cmd, issue.Wrap(err, "check clang-format", formatter.ClangFormat,
				"Install clang-format or point --clang-format at the right binary",
				"The expected version can be relaxed via clang_format.expected_version"))
		}

		for _, path := range args {
			if err := formatter.FormatFile(cmd.Context(), path); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					logger.Warn("skipping missing file", "path", path)
					continue
				}
				return fail(cmd, issue.Wrap(err, "format file", path))
			}
			logger.Debug("formatted", "path", path)
		}
		return nil
	},
}

func init() {
	formatCmd.Flags().StringVar(&formatClangFormat, "clang-format", "", "clang-format binary to use (default: configured path)")
	formatCmd.Flags().StringVar(&formatRulesFile, "rules", "", "CUE file with extra substitution rules")
}
