// Package index maintains a catalog of CITATION.cff files found under a
// directory tree: a JSONL file of records plus an ephemeral SQLite cache
// used for full-text search. The JSONL file is the source of truth; the
// cache is rebuilt whenever it goes stale.
package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cffkit/cffkit/internal/cff"
	"github.com/cffkit/cffkit/internal/validate"
)

// CitationFileName is the file name scanned for, per the format convention.
const CitationFileName = "CITATION.cff"

// Record is one catalog entry: the citation metadata of a single
// CITATION.cff file plus its validation status.
type Record struct {
	ID           string       `json:"id"`
	Path         string       `json:"path"`
	Title        string       `json:"title,omitempty"`
	Version      string       `json:"version,omitempty"`
	DOI          string       `json:"doi,omitempty"`
	License      string       `json:"license,omitempty"`
	DateReleased string       `json:"date_released,omitempty"`
	Authors      []cff.Author `json:"authors,omitempty"`
	Keywords     []string     `json:"keywords,omitempty"`
	Abstract     string       `json:"abstract,omitempty"`
	Valid        bool         `json:"valid"`
	Issues       int          `json:"issues,omitempty"`
}

// NewRecord builds a catalog record from one file's contents. Files that
// fail to parse still get a record (Valid=false) so broken citations show
// up in searches instead of silently vanishing from the catalog.
func NewRecord(relPath string, data []byte) Record {
	rec := Record{Path: relPath}

	report := validate.Bytes(data)
	rec.Valid = report.Valid
	rec.Issues = len(report.Issues)

	if doc, err := cff.ParseBytes(data); err == nil {
		rec.Title = doc.Title
		rec.Version = string(doc.Version)
		rec.DOI = doc.DOI
		rec.License = doc.License.String()
		rec.DateReleased = doc.DateReleased
		rec.Authors = doc.Authors
		rec.Keywords = doc.Keywords
		rec.Abstract = doc.Abstract
	}

	return rec
}

// Scan walks root for CITATION.cff files and returns one record per file,
// sorted by path, with unique slug IDs assigned.
func Scan(root string) ([]Record, error) {
	var records []Record

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "node_modules", "vendor":
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != CitationFileName {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		records = append(records, NewRecord(rel, data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })

	assigned := make([]Record, 0, len(records))
	for _, rec := range records {
		base := slugify(rec.Title)
		if base == "" {
			base = slugify(filepath.Base(filepath.Dir(rec.Path)))
		}
		if base == "" {
			base = "citation"
		}
		rec.ID = UniqueID(assigned, base)
		assigned = append(assigned, rec)
	}

	return assigned, nil
}

// FindByID searches for a record by ID.
func FindByID(records []Record, id string) (int, bool) {
	for i, rec := range records {
		if rec.ID == id {
			return i, true
		}
	}
	return -1, false
}

// UniqueID returns an ID that doesn't conflict with existing records.
// If the base ID exists, appends -2, -3, etc.
func UniqueID(records []Record, baseID string) string {
	if _, found := FindByID(records, baseID); !found {
		return baseID
	}

	// Start at 2: baseID is taken, so first duplicate becomes baseID-2
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", baseID, i)
		if _, found := FindByID(records, candidate); !found {
			return candidate
		}
	}
}

// slugify lowers s and reduces it to hyphen-separated alphanumeric runs.
func slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}
