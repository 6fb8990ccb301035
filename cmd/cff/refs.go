package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/cff"
	"github.com/cffkit/cffkit/internal/pdf"
)

var (
	refsPDF   string
	refsDOI   string
	refsTitle string
	refsType  string
)

func init() {
	refsAddCmd.Flags().StringVar(&refsPDF, "pdf", "", "Draft the reference from a PDF file")
	refsAddCmd.Flags().StringVar(&refsDOI, "doi", "", "DOI of the referenced work")
	refsAddCmd.Flags().StringVar(&refsTitle, "title", "", "Title of the referenced work")
	refsAddCmd.Flags().StringVar(&refsType, "type", "", "Reference type (default article)")
	refsCmd.AddCommand(refsAddCmd)
	refsCmd.AddCommand(refsListCmd)
	rootCmd.AddCommand(refsCmd)
}

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "Manage the references of a CITATION.cff file",
}

var refsAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a reference",
	Long: `Add a reference to the references list.

With --pdf, the reference is drafted from the PDF: the DOI is scanned
out of the first pages and the title is guessed from the layout.
Explicit --doi, --title and --type override the draft. Without --pdf,
--title is required.

References are deduplicated by DOI.

Examples:
  cff refs add --pdf paper.pdf
  cff refs add --doi 10.1029/2021MS002828 --title "The eWaterCycle platform"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefsAdd,
}

var refsListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List references",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRefsList,
}

// RefsAddResult is the JSON response for refs add.
type RefsAddResult struct {
	Status    string        `json:"status"`
	Path      string        `json:"path"`
	Reference cff.Reference `json:"reference"`
}

func runRefsAdd(cmd *cobra.Command, args []string) error {
	path := citationPath(args)
	doc := loadDocument(path)

	var ref cff.Reference
	if refsPDF != "" {
		draft, err := pdf.DraftReference(refsPDF)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", refsPDF, err)
		}
		ref = *draft
	} else if refsTitle == "" {
		exitWithError(ExitError, "--title is required without --pdf")
	}

	if refsTitle != "" {
		ref.Title = refsTitle
	}
	if refsDOI != "" {
		ref.DOI = refsDOI
	}
	if refsType != "" {
		ref.Type = refsType
	}
	if ref.Type == "" {
		ref.Type = "article"
	}

	if ref.DOI != "" {
		want := cff.NormalizeDOI(ref.DOI)
		for _, existing := range doc.References {
			if existing.DOI != "" && cff.NormalizeDOI(existing.DOI) == want {
				exitWithError(ExitError, "reference with DOI %s already present", ref.DOI)
			}
		}
	}

	doc.References = append(doc.References, ref)
	if err := doc.WriteFile(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Added reference: %s\n", ref.Title)
		if ref.DOI == "" {
			fmt.Println("No DOI found; edit the file to add one.")
		}
		if len(ref.Authors) == 0 {
			fmt.Println("No authors; edit the file to add them.")
		}
	} else {
		outputJSON(RefsAddResult{Status: "added", Path: path, Reference: ref})
	}
	return nil
}

func runRefsList(cmd *cobra.Command, args []string) error {
	doc := loadDocument(citationPath(args))

	if humanOutput {
		if len(doc.References) == 0 {
			fmt.Println("No references.")
			return nil
		}
		for i, ref := range doc.References {
			fmt.Printf("[%d] %s\n", i+1, truncateString(ref.Title, TitleMaxLen))
			if ref.DOI != "" {
				fmt.Printf("    %s\n", cff.DOIURL(ref.DOI))
			}
		}
		return nil
	}

	refs := doc.References
	if refs == nil {
		refs = []cff.Reference{}
	}
	outputJSON(refs)
	return nil
}
