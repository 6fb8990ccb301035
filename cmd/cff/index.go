package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/config"
	"github.com/cffkit/cffkit/internal/index"
)

var (
	indexDir  string
	buildRoot string
)

func init() {
	indexCmd.PersistentFlags().StringVar(&indexDir, "dir", "", "Index directory (default: config index-dir or the XDG data dir)")
	indexBuildCmd.Flags().StringVar(&buildRoot, "root", "", "Directory tree to scan (default: config index-root or .)")
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexInfoCmd)
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Catalog CITATION.cff files across directory trees",
	Long: `Commands for cataloging CITATION.cff files.

The catalog is a JSONL file with a SQLite full-text cache next to it.
Searches rebuild the cache automatically when the catalog changed.`,
}

// openCatalog returns the catalog at --dir, falling back to the
// configured index directory.
func openCatalog() *index.Catalog {
	dir := indexDir
	if dir == "" {
		dir = config.IndexDir()
	}
	if dir == "" {
		exitWithError(ExitConfigError, "no index directory (set --dir or the index-dir config key)")
	}
	return index.New(dir)
}

// IndexBuildResult is the JSON response for index build.
type IndexBuildResult struct {
	Status  string `json:"status"`
	Root    string `json:"root"`
	Records int    `json:"records"`
	Dir     string `json:"dir"`
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build or rebuild the catalog",
	Long: `Build or rebuild the catalog by scanning a directory tree for
CITATION.cff files.

The root comes from --root, the index-root config key, or the current
directory. Files that fail to parse or validate are cataloged too, so
broken citations show up in searches.

Examples:
  cff index build --root ~/src
  cff index build`,
	Args: cobra.NoArgs,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	root := buildRoot
	if root == "" {
		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		root = cfg.IndexRoot
	}
	if root == "" {
		root = "."
	}

	cat := openCatalog()
	n, err := cat.Build(root)
	if err != nil {
		exitWithError(ExitError, "building catalog: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %d citation files from %s\n", n, root)
	} else {
		outputJSON(IndexBuildResult{
			Status:  "complete",
			Root:    root,
			Records: n,
			Dir:     cat.Dir,
		})
	}
	return nil
}

var indexInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show catalog paths, sizes and sync state",
	Args:  cobra.NoArgs,
	RunE:  runIndexInfo,
}

func runIndexInfo(cmd *cobra.Command, args []string) error {
	cat := openCatalog()
	info, err := cat.Info()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Catalog: %s\n", info.JSONLPath)
		fmt.Printf("Cache:   %s\n", info.DBPath)
		fmt.Println()
		fmt.Printf("  Records:      %d (%d valid)\n", info.Records, info.Valid)
		fmt.Printf("  Catalog size: %s\n", formatBytes(info.JSONLSize))
		fmt.Printf("  Cache size:   %s\n", formatBytes(info.DBSize))
		if !info.LastSync.IsZero() {
			fmt.Printf("  Last sync:    %s\n", info.LastSync.Format("2006-01-02 15:04:05"))
		}
		if info.InSync {
			fmt.Println("\nCache is in sync with the catalog.")
		} else {
			fmt.Println("\nCache is stale; the next search rebuilds it.")
		}
	} else {
		outputJSON(info)
	}
	return nil
}
