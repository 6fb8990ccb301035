package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/cff"
	"github.com/cffkit/cffkit/internal/lint"
	"github.com/cffkit/cffkit/internal/validate"
)

func init() {
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Validate plus advisory checks",
	Long: `Run validation plus advisory checks over a CITATION.cff file.

Warnings cover things validation allows but maintainers usually want
to fix: unparseable version numbers, ORCID checksum failures, stale
cff-version values, duplicate identifiers, missing release metadata.

Warnings alone exit 0; validation issues exit non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

// LintResult is the response for the lint command.
type LintResult struct {
	Valid    bool             `json:"valid"`
	Issues   []validate.Issue `json:"issues,omitempty"`
	Warnings []lint.Warning   `json:"warnings"`
}

func runLint(cmd *cobra.Command, args []string) error {
	path := citationPath(args)

	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}

	report := validate.Bytes(data)

	// Advisory checks need a parsed document; unparseable input is
	// already covered by the validation report.
	var warnings []lint.Warning
	if doc, err := cff.ParseBytes(data); err == nil {
		warnings = lint.Document(doc)
	}
	if warnings == nil {
		warnings = []lint.Warning{}
	}

	if humanOutput {
		if report.Valid && len(warnings) == 0 {
			fmt.Printf("%s: clean\n", path)
		} else {
			if !report.Valid {
				fmt.Printf("%s: %d issues\n\n", path, len(report.Issues))
				for _, issue := range report.Issues {
					fmt.Printf("  %s\n", issue)
				}
				fmt.Println()
			}
			if len(warnings) > 0 {
				fmt.Printf("%s: %d warnings\n\n", path, len(warnings))
				for _, w := range warnings {
					fmt.Printf("  %s\n", w)
				}
			}
		}
	} else {
		outputJSON(LintResult{
			Valid:    report.Valid,
			Issues:   report.Issues,
			Warnings: warnings,
		})
	}

	if !report.Valid {
		os.Exit(ExitDataError)
	}
	return nil
}
