// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"devaux-cli/internal/issue"
	"devaux-cli/internal/symbols"

	"github.com/spf13/cobra"
)

var (
	genWrappersCpp     string
	genWrappersDefines []string
	genWrappersHeader  string
	genWrappersSources []string
)

var genWrappersCmd = &cobra.Command{
	Use:   "gen-wrappers <symbol>...",
	Short: "Generate dlopen wrapper declarations from library headers",
	Long: `Preprocess the given library headers, pick out the declarations of the
named symbols, and print wrapper typedefs for them. With --header the
output is instead C code with ifunc forwarders including that header.

Every requested symbol must be found in the preprocessed headers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := symbols.NewGenerator(symbols.Options{
			Preprocessor: genWrappersCpp,
			Defines:      genWrappersDefines,
			Header:       genWrappersHeader,
			Sources:      genWrappersSources,
			Symbols:      args,
		})

		if err := gen.Generate(cmd.Context(), os.Stdout); err != nil {
			return fail(cmd, issue.Wrap(err, "generate wrappers", "",
				"Check the --source headers declare every requested symbol",
				"Macro-guarded declarations may need a --define to become visible"))
		}
		return nil
	},
}

func init() {
	genWrappersCmd.Flags().StringVar(&genWrappersCpp, "cpp", "", "preprocessor command line (default \"cpp -E\")")
	genWrappersCmd.Flags().StringArrayVar(&genWrappersDefines, "define", nil, "NAME=VALUE macro passed to the preprocessor (repeatable)")
	genWrappersCmd.Flags().StringVar(&genWrappersHeader, "header", "", "specifier header to include; switches output to ifunc forwarders")
	genWrappersCmd.Flags().StringArrayVar(&genWrappersSources, "source", nil, "library header to scrape (repeatable)")
	_ = genWrappersCmd.MarkFlagRequired("source")
}
