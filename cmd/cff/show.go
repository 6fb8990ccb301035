package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/cff"
	"github.com/cffkit/cffkit/internal/validate"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show the citation metadata of a file",
	Long: `Show the citation metadata of a CITATION.cff file.

Defaults to CITATION.cff in the current directory.

Example:
  cff show
  cff show testdata/zenodo.cff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

// ShowResult is the JSON response for show.
type ShowResult struct {
	Path           string   `json:"path"`
	Title          string   `json:"title"`
	Type           string   `json:"type,omitempty"`
	Version        string   `json:"version,omitempty"`
	DOI            string   `json:"doi,omitempty"`
	License        []string `json:"license,omitempty"`
	Authors        []string `json:"authors"`
	DateReleased   string   `json:"date-released,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	URL            string   `json:"url,omitempty"`
	RepositoryCode string   `json:"repository-code,omitempty"`
	References     int      `json:"references"`
	Valid          bool     `json:"valid"`
}

func runShow(cmd *cobra.Command, args []string) error {
	path := citationPath(args)
	doc := loadDocument(path)
	valid := validate.Document(doc).Valid

	if humanOutput {
		printDocumentDetail(path, doc, valid)
		return nil
	}

	authors := make([]string, 0, len(doc.Authors))
	for _, a := range doc.Authors {
		authors = append(authors, a.DisplayName())
	}
	outputJSON(ShowResult{
		Path:           path,
		Title:          doc.Title,
		Type:           doc.Type,
		Version:        string(doc.Version),
		DOI:            doc.DOI,
		License:        doc.License,
		Authors:        authors,
		DateReleased:   doc.DateReleased,
		Keywords:       doc.Keywords,
		URL:            doc.URL,
		RepositoryCode: doc.RepositoryCode,
		References:     len(doc.References),
		Valid:          valid,
	})
	return nil
}

func printDocumentDetail(path string, doc *cff.Document, valid bool) {
	fmt.Println(path)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(doc.Title, TextWrapWidth, "          "))
	fmt.Println()

	if len(doc.Authors) > 0 {
		var names []string
		for _, a := range doc.Authors {
			names = append(names, a.DisplayName())
		}
		fmt.Printf("Authors:  %s\n", wrapText(strings.Join(names, ", "), TextWrapWidth, "          "))
		fmt.Println()
	}

	if doc.Type != "" {
		fmt.Printf("Type:     %s\n", doc.Type)
	}
	if doc.Version != "" {
		fmt.Printf("Version:  %s\n", doc.Version)
	}
	if doc.DateReleased != "" {
		fmt.Printf("Released: %s\n", doc.DateReleased)
	}
	if doc.DOI != "" {
		fmt.Printf("DOI:      %s\n", doc.DOI)
	}
	if len(doc.License) > 0 {
		fmt.Printf("License:  %s\n", doc.License)
	}
	if doc.URL != "" {
		fmt.Printf("URL:      %s\n", doc.URL)
	}
	if doc.RepositoryCode != "" {
		fmt.Printf("Code:     %s\n", doc.RepositoryCode)
	}

	if len(doc.Identifiers) > 0 {
		fmt.Println()
		fmt.Println("Identifiers:")
		for _, id := range doc.Identifiers {
			fmt.Printf("  %-6s %s\n", id.Type, id.Value)
		}
	}

	if len(doc.Keywords) > 0 {
		fmt.Println()
		fmt.Printf("Keywords: %s\n", wrapText(strings.Join(doc.Keywords, ", "), TextWrapWidth, "          "))
	}

	if doc.Abstract != "" {
		fmt.Println()
		fmt.Println("Abstract:")
		fmt.Printf("  %s\n", wrapText(doc.Abstract, 68, "  "))
	}

	if doc.PreferredCitation != nil {
		fmt.Println()
		fmt.Printf("Preferred citation: %s (%s)\n", doc.PreferredCitation.Title, doc.PreferredCitation.Type)
	}
	if len(doc.References) > 0 {
		fmt.Println()
		fmt.Printf("References: %d\n", len(doc.References))
	}

	fmt.Println()
	if valid {
		fmt.Println("Status:   valid")
	} else {
		fmt.Println("Status:   invalid (run cff validate for details)")
	}
}
