// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"devaux-cli/internal/issue"
	"devaux-cli/internal/osrelease"

	"github.com/spf13/cobra"
)

var osReleasePath string

var osReleaseCmd = &cobra.Command{
	Use:   "os-release",
	Short: "Identify the running distribution from os-release",
	Long: `Read the os-release file, report the PRETTY_NAME of the running
distribution and guess its family from the ID and ID_LIKE fields.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var paths []string
		if osReleasePath != "" {
			paths = []string{osReleasePath}
		}

		rel, warnings, source, err := osrelease.Load(paths...)
		if err != nil {
			return fail(cmd, issue.Wrap(err, "read os-release", osReleasePath,
				"Pass --path to point at an os-release file"))
		}
		logger.Debug("parsed os-release", "source", source)
		for _, w := range warnings {
			logger.Warn(w)
		}

		fmt.Printf("Running on %s\n", rel.PrettyName())

		switch {
		case rel.IsLike("debian"):
			fmt.Println("Looks like Debian!")
		case rel.IsLike("fedora"):
			fmt.Println("Looks like Fedora!")
		case rel.IsLike("arch"):
			fmt.Println("Looks like Arch!")
		case rel.IsLike("suse"):
			fmt.Println("Looks like SUSE!")
		}
		return nil
	},
}

func init() {
	osReleaseCmd.Flags().StringVar(&osReleasePath, "path", "", "read this os-release file instead of the system one")
}
