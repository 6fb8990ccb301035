package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/author"
	"github.com/cffkit/cffkit/internal/cff"
	"github.com/cffkit/cffkit/internal/index"
)

var (
	searchAuthors   []string
	searchLicense   string
	searchValidOnly bool
	searchLimit     int
	listLimit       int
)

func init() {
	indexSearchCmd.Flags().StringArrayVar(&searchAuthors, "author", nil, `Filter by author: "Hut", "Rolf Hut" or "Hut, Rolf" (repeatable)`)
	indexSearchCmd.Flags().StringVar(&searchLicense, "license", "", "Filter by exact SPDX license")
	indexSearchCmd.Flags().BoolVar(&searchValidOnly, "valid-only", false, "Drop records with validation issues")
	indexSearchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	indexListCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexGetCmd)
}

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Search the catalog by keyword.

The query matches titles, abstracts, keywords and author names.
--author filters must all match.

Examples:
  cff index search hydrology
  cff index search --author "Hut, Rolf" --valid-only
  cff index search climate --license Apache-2.0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	var keyword string
	if len(args) > 0 {
		keyword = args[0]
	}
	if keyword == "" && len(searchAuthors) == 0 && searchLicense == "" && !searchValidOnly {
		exitWithError(ExitError, "nothing to search for (give a query or a filter)")
	}

	cat := openCatalog()
	records, err := cat.Search(index.SearchFilters{
		Keyword:   keyword,
		Authors:   searchAuthors,
		License:   searchLicense,
		ValidOnly: searchValidOnly,
	}, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// FTS prefix matching over-returns on author terms; the structured
	// name match trims the result to real hits.
	if len(searchAuthors) > 0 {
		queries := make([]author.Query, 0, len(searchAuthors))
		for _, a := range searchAuthors {
			queries = append(queries, author.ParseQuery(a))
		}
		matched := records[:0]
		for _, rec := range records {
			if author.AllMatch(queries, rec.Authors) {
				matched = append(matched, rec)
			}
		}
		records = matched
	}

	if records == nil {
		records = []index.Record{}
	}

	if humanOutput {
		if len(records) == 0 {
			fmt.Println("No citations found")
		} else {
			fmt.Printf("Found %d citations:\n\n", len(records))
			for i, rec := range records {
				printRecordSummary(i+1, rec)
			}
		}
	} else {
		outputJSON(records)
	}
	return nil
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalog records",
	Args:  cobra.NoArgs,
	RunE:  runIndexList,
}

func runIndexList(cmd *cobra.Command, args []string) error {
	cat := openCatalog()
	records, err := cat.List(listLimit)
	if err != nil {
		exitWithError(ExitError, "listing catalog: %v", err)
	}

	if humanOutput {
		if len(records) == 0 {
			fmt.Println("Catalog is empty")
			return nil
		}
		fmt.Printf("%d citations in catalog:\n\n", len(records))
		for _, rec := range records {
			marker := " "
			if !rec.Valid {
				marker = "!"
			}
			fmt.Printf("%s %-28s %s\n", marker, rec.ID, truncateString(rec.Title, TitleMaxLen))
		}
	} else {
		if records == nil {
			records = []index.Record{}
		}
		outputJSON(records)
	}
	return nil
}

var indexGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a catalog record by ID",
	Long: `Get a single catalog record by its ID.

Example:
  cff index get ewatercycle-python-package`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexGet,
}

func runIndexGet(cmd *cobra.Command, args []string) error {
	cat := openCatalog()
	rec, err := cat.Get(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if rec == nil {
		exitWithError(ExitError, "record not found: %s", args[0])
	}

	if humanOutput {
		printRecordDetail(*rec)
	} else {
		outputJSON(rec)
	}
	return nil
}

func printRecordSummary(num int, rec index.Record) {
	fmt.Printf("[%d] %s\n", num, rec.ID)
	fmt.Printf("    %s\n", truncateString(rec.Title, TitleMaxLen))
	if len(rec.Authors) > 0 {
		fmt.Printf("    %s\n", formatAuthors(rec.Authors, 3))
	}
	line := rec.Path
	if rec.Version != "" {
		line += " (v" + rec.Version + ")"
	}
	if !rec.Valid {
		line += " [invalid]"
	}
	fmt.Printf("    %s\n", line)
	fmt.Println()
}

func printRecordDetail(rec index.Record) {
	fmt.Println(rec.ID)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(rec.Title, TextWrapWidth, "          "))
	fmt.Println()

	if len(rec.Authors) > 0 {
		var names []string
		for _, a := range rec.Authors {
			names = append(names, a.DisplayName())
		}
		fmt.Printf("Authors:  %s\n", wrapText(strings.Join(names, ", "), TextWrapWidth, "          "))
		fmt.Println()
	}

	fmt.Printf("Path:     %s\n", rec.Path)
	if rec.Version != "" {
		fmt.Printf("Version:  %s\n", rec.Version)
	}
	if rec.DateReleased != "" {
		fmt.Printf("Released: %s\n", rec.DateReleased)
	}
	if rec.DOI != "" {
		fmt.Printf("DOI:      %s\n", cff.DOIURL(rec.DOI))
	}
	if rec.License != "" {
		fmt.Printf("License:  %s\n", rec.License)
	}

	if len(rec.Keywords) > 0 {
		fmt.Println()
		fmt.Printf("Keywords: %s\n", wrapText(strings.Join(rec.Keywords, ", "), TextWrapWidth, "          "))
	}

	if rec.Abstract != "" {
		fmt.Println()
		fmt.Println("Abstract:")
		fmt.Printf("  %s\n", wrapText(rec.Abstract, 68, "  "))
	}

	fmt.Println()
	if rec.Valid {
		fmt.Println("Status:   valid")
	} else {
		fmt.Printf("Status:   invalid (%d issues)\n", rec.Issues)
	}
}
