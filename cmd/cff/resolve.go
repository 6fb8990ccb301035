package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/config"
	"github.com/cffkit/cffkit/internal/resolver"
)

func init() {
	// Pick up CFF_MAILTO from a local .env, if there is one.
	_ = godotenv.Load()
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Check that the file's DOIs resolve",
	Long: `Check every DOI in a CITATION.cff file against doi.org.

Covers the top-level doi, doi identifiers, the preferred citation and
all references. Requests are rate-limited; set a contact address via
CFF_MAILTO (environment or .env) or the mailto config key to follow
API etiquette.

Exits with a data error when any DOI fails to resolve.

Example:
  cff resolve testdata/zenodo.cff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

// ResolveReport is the JSON response for resolve.
type ResolveReport struct {
	Path    string                `json:"path"`
	Checked int                   `json:"checked"`
	Failed  int                   `json:"failed"`
	Results []resolver.Resolution `json:"results"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	path := citationPath(args)
	doc := loadDocument(path)

	opts := []resolver.ClientOption{resolver.WithBaseURL(config.ResolverURL())}
	// CFF_MAILTO (including .env) wins over the config file.
	if m := config.Mailto(); m != "" && os.Getenv("CFF_MAILTO") == "" {
		opts = append(opts, resolver.WithMailto(m))
	}
	client := resolver.NewClient(opts...)

	results, err := client.CheckDocument(cmd.Context(), doc)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	failed := 0
	for _, r := range results {
		if !r.Resolved {
			failed++
		}
	}

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("No DOIs to check.")
			return nil
		}
		for _, r := range results {
			if r.Resolved {
				fmt.Printf("[ OK ] %s (%s)\n", r.DOI, r.Source)
				if r.URL != "" {
					fmt.Printf("       %s\n", r.URL)
				}
			} else {
				fmt.Printf("[FAIL] %s (%s): %s\n", r.DOI, r.Source, r.Err)
			}
		}
		fmt.Printf("\n%d checked, %d failed\n", len(results), failed)
	} else {
		if results == nil {
			results = []resolver.Resolution{}
		}
		outputJSON(ResolveReport{
			Path:    path,
			Checked: len(results),
			Failed:  failed,
			Results: results,
		})
	}

	if failed > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}
