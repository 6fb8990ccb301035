// Package main provides the cff CLI entry point.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/cff"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// defaultCitationFile is what commands operate on when no file argument
// is given.
const defaultCitationFile = "CITATION.cff"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cff",
	Short: "Citation File Format toolkit",
	Long: `cff is a toolkit for CITATION.cff files.

It parses, validates, formats and converts Citation File Format
metadata, keeps a searchable catalog of citation files across
directory trees, and checks DOIs against doi.org. All commands output
JSON by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// citationPath returns the file a command operates on: the positional
// argument when given, CITATION.cff in the working directory otherwise.
func citationPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultCitationFile
}

// loadDocument reads and parses a citation file, exiting on failure.
// Commands that fold parse errors into their own report (validate,
// lint) read the file themselves instead.
func loadDocument(path string) *cff.Document {
	doc, err := cff.ParseFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			exitWithError(ExitError, "%v", err)
		}
		exitWithError(ExitDataError, "%v", err)
	}
	return doc
}
