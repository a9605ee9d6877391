// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the shared diagnostic logger. It writes to stderr so that
// stdout stays reserved for generated output.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// initLogging applies the verbosity flag to the shared logger.
func initLogging() {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}
