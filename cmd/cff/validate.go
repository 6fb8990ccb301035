package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/validate"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a CITATION.cff file",
	Long: `Validate a CITATION.cff file against the CFF 1.2.0 schema and
value rules.

Checks required fields, author shapes, ORCID and DOI patterns, SPDX
license identifiers, identifier types, URLs and dates. Every finding
carries the path of the offending field.

Examples:
  cff validate
  cff validate path/to/CITATION.cff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := citationPath(args)

	report, err := validate.File(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		if report.Valid {
			fmt.Printf("%s: valid\n", path)
		} else {
			fmt.Printf("%s: %d issues\n\n", path, len(report.Issues))
			for _, issue := range report.Issues {
				fmt.Printf("  %s\n", issue)
			}
		}
	} else {
		outputJSON(report)
	}

	if !report.Valid {
		os.Exit(ExitDataError)
	}
	return nil
}
