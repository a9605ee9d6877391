// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for devaux.
//
// This package implements the Cobra command hierarchy for the devaux CLI:
// the root command plus one subcommand per developer-tooling task (man-page
// rule generation, os-release inspection, config-header template rendering,
// source post-formatting, documentation sync, and symbol-wrapper
// generation).
package cmd
