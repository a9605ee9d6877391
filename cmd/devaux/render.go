// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"devaux-cli/internal/issue"
	"devaux-cli/internal/render"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <config.h> <template>",
	Short: "Expand a Jinja template against build-time #define values",
	Long: `Collect the #define lines of the given config header and expand the
template with them, printing the result to stdout. Referencing a name the
header never defines is an error.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, templatePath := args[0], args[1]

		cf, err := os.Open(configPath)
		if err != nil {
			return fail(cmd, issue.Wrap(err, "read config header", configPath))
		}
		defer cf.Close()

		defines, err := render.ParseDefines(cf)
		if err != nil {
			return fail(cmd, issue.Wrap(err, "parse config header", configPath))
		}
		logger.Debug("collected defines", "count", len(defines))

		text, err := os.ReadFile(templatePath)
		if err != nil {
			return fail(cmd, issue.Wrap(err, "read template", templatePath))
		}

		out, err := render.Render(string(text), defines)
		if err != nil {
			return fail(cmd, issue.Wrap(err, "render template", templatePath,
				"Every {{ name }} and {% if name %} must be defined in the config header"))
		}

		_, err = os.Stdout.WriteString(out)
		return err
	},
}
