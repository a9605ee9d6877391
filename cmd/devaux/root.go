// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"devaux-cli/internal/config"
	"devaux-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded tool configuration, populated before any RunE.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "devaux",
		Short: "Auxiliary developer tooling for a C source tree",
		Long: TitleStyle.Render("devaux") + SubtitleStyle.Render(" - auxiliary developer tooling") + `

devaux bundles the small maintenance generators and helpers that live
around the build system of a large C project: regenerating man-page
alias rules, rendering templates from the generated config header,
post-processing clang-format output, publishing rendered documentation,
and generating symbol-wrapper test harnesses.

` + SubtitleStyle.Render("Examples:") + `
  devaux man-rules man/*.xml > man/rules/meson.build.new
  devaux render build/config.h src/osname.in
  devaux format src/core/main.c
  devaux sync-docs --version 257 build/man www@server:/srv/man
  devaux gen-wrappers --source systemd/sd-journal.h sd_journal_open`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/devaux/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(manRulesCmd)
	rootCmd.AddCommand(osReleaseCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(syncDocsCmd)
	rootCmd.AddCommand(genWrappersCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	initLogging()

	loaded, err := config.Load(cfgFile)
	if err != nil {
		// Surface config loading errors but keep running on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	cfg = loaded
}

// formatErrorForDisplay formats an error for user display. If the error is
// an ActionableError, it uses the Format method; in verbose mode that
// shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail prints a styled diagnostic to stderr, silences cobra's own error
// reporting, and returns the ExitError the RunE handler propagates.
func fail(cmd *cobra.Command, err error) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	return &ExitError{Code: 1}
}
