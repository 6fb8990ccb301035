package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fmtWrite bool

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write result to source file instead of stdout")
	rootCmd.AddCommand(fmtCmd)
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Canonically format a CITATION.cff file",
	Long: `Re-serialize a CITATION.cff file in canonical form: conventional
field order, 2-space indent, empty optional fields omitted.

Formatting only requires the file to parse. A document that parses but
fails validation is formatted as-is; fmt never fixes or drops fields.

Examples:
  cff fmt
  cff fmt -w CITATION.cff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := citationPath(args)
	doc := loadDocument(path)

	data, err := doc.Marshal()
	if err != nil {
		exitWithError(ExitError, "formatting %s: %v", path, err)
	}

	if fmtWrite {
		if err := os.WriteFile(path, data, 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", path, err)
		}
		if humanOutput {
			fmt.Printf("Formatted %s\n", path)
		} else {
			outputJSON(StatusResponse{Status: "formatted", Path: path})
		}
		return nil
	}

	// Formatted YAML is always text output, never JSON
	fmt.Print(string(data))
	return nil
}
