package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/cff"
	"github.com/cffkit/cffkit/internal/git"
	"github.com/cffkit/cffkit/internal/validate"
)

var (
	releaseVersion string
	releaseDOI     string
)

func init() {
	releaseCmd.Flags().StringVar(&releaseVersion, "version", "", "Version to stamp (defaults to the nearest git tag)")
	releaseCmd.Flags().StringVar(&releaseDOI, "doi", "", "DOI minted for this release")
	rootCmd.AddCommand(releaseCmd)
}

var releaseCmd = &cobra.Command{
	Use:   "release [file]",
	Short: "Stamp release metadata into a CITATION.cff file",
	Long: `Stamp release metadata into a CITATION.cff file.

Sets version, date-released (today) and, when the file lives in a git
repository, the commit hash of HEAD. Without --version the version is
taken from the nearest git tag, with a leading "v" stripped.

Examples:
  cff release --version 2.3.1
  cff release --version 2.3.1 --doi 10.5281/zenodo.5119389`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRelease,
}

// ReleaseResult is the JSON response for release.
type ReleaseResult struct {
	Status       string `json:"status"`
	Path         string `json:"path"`
	Version      string `json:"version"`
	DateReleased string `json:"date-released"`
	Commit       string `json:"commit,omitempty"`
	DOI          string `json:"doi,omitempty"`
}

func runRelease(cmd *cobra.Command, args []string) error {
	path := citationPath(args)
	doc := loadDocument(path)

	version := releaseVersion
	var commit string

	// Git metadata is best-effort: outside a repository the stamp
	// still works from flags alone.
	if root, err := git.FindRepoRoot(filepath.Dir(path)); err == nil {
		if sha, err := git.ResolveCommit(root, "HEAD"); err == nil {
			commit = sha
		}
		if version == "" {
			if tag, err := git.Describe(root); err == nil && tag != "" {
				version = strings.TrimPrefix(tag, "v")
			}
		}
	}

	if version == "" {
		exitWithError(ExitError, "--version is required (no git tag to take it from)")
	}
	if releaseDOI != "" && !validate.IsDOI(releaseDOI) {
		exitWithError(ExitDataError, "invalid DOI: %s", releaseDOI)
	}

	doc.Version = cff.FlexString(version)
	doc.DateReleased = time.Now().Format("2006-01-02")
	if commit != "" {
		doc.Commit = commit
	}
	if releaseDOI != "" {
		doc.DOI = releaseDOI
	}

	if err := doc.WriteFile(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Stamped %s\n", path)
		fmt.Printf("  version:       %s\n", version)
		fmt.Printf("  date-released: %s\n", doc.DateReleased)
		if commit != "" {
			fmt.Printf("  commit:        %s\n", commit)
		}
		if releaseDOI != "" {
			fmt.Printf("  doi:           %s\n", releaseDOI)
		}
	} else {
		outputJSON(ReleaseResult{
			Status:       "stamped",
			Path:         path,
			Version:      version,
			DateReleased: doc.DateReleased,
			Commit:       commit,
			DOI:          releaseDOI,
		})
	}
	return nil
}
