package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/clipboard"
	"github.com/cffkit/cffkit/internal/convert"
)

var (
	convertFormat string
	convertOutput string
	convertCopy   bool
)

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Target format: "+strings.Join(convert.Formats(), ", "))
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write to file instead of stdout")
	convertCmd.Flags().BoolVar(&convertCopy, "copy", false, "Copy the result to the clipboard")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert citation metadata to another format",
	Long: `Convert a CITATION.cff file to another citation format.

Bibliographic formats (bibtex, apalike, ris) cite the preferred
citation when one is declared, the deposited work otherwise. Deposit
formats (schemaorg, zenodo) always describe the deposited work.

Examples:
  cff convert --format bibtex
  cff convert --format zenodo -o .zenodo.json
  cff convert --format apalike --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	if convertFormat == "" {
		exitWithError(ExitError, "--format is required (one of %s)", strings.Join(convert.Formats(), ", "))
	}

	path := citationPath(args)
	doc := loadDocument(path)

	out, err := convert.Convert(doc, convertFormat)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if convertCopy {
		if err := clipboard.Copy(out); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
	}

	if convertOutput != "" {
		if err := os.WriteFile(convertOutput, []byte(out), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", convertOutput, err)
		}
		if humanOutput {
			fmt.Printf("Wrote %s\n", convertOutput)
		} else {
			outputJSON(StatusResponse{Status: "written", Path: convertOutput})
		}
		return nil
	}

	// Converted citations are always text output, never wrapped in JSON
	fmt.Print(out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Println()
	}
	return nil
}
