package index

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// JSONLFile is the catalog file name inside the index directory.
	JSONLFile = "index.jsonl"
	// DBFile is the SQLite cache file name inside the index directory.
	DBFile = "index.db"
)

// Catalog ties the JSONL catalog file to its SQLite cache.
type Catalog struct {
	Dir string

	jsonlPath string
	dbPath    string
}

// Info contains detailed information about a catalog.
type Info struct {
	JSONLPath string    `json:"jsonl_path"`
	DBPath    string    `json:"db_path"`
	Records   int       `json:"records"`
	Valid     int       `json:"valid"`
	JSONLSize int64     `json:"jsonl_size"`
	DBSize    int64     `json:"db_size"`
	LastSync  time.Time `json:"last_sync,omitempty"`
	InSync    bool      `json:"in_sync"`
}

// New creates a Catalog rooted in dir with derived file paths.
func New(dir string) *Catalog {
	return &Catalog{
		Dir:       dir,
		jsonlPath: filepath.Join(dir, JSONLFile),
		dbPath:    filepath.Join(dir, DBFile),
	}
}

// JSONLPath returns the path to the catalog file.
func (c *Catalog) JSONLPath() string {
	return c.jsonlPath
}

// DBPath returns the path to the SQLite cache.
func (c *Catalog) DBPath() string {
	return c.dbPath
}

// Build scans root for CITATION.cff files, replaces the catalog with the
// result and rebuilds the cache. Returns the number of records.
func (c *Catalog) Build(root string) (int, error) {
	records, err := Scan(root)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return 0, fmt.Errorf("creating index directory: %w", err)
	}
	if err := WriteAll(c.jsonlPath, records); err != nil {
		return 0, err
	}

	db, err := OpenDB(c.dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	return db.RebuildFromJSONL(c.jsonlPath)
}

// open returns the cache, rebuilding it first when the catalog file has
// changed underneath it. Callers must Close the returned DB.
func (c *Catalog) open() (*DB, error) {
	db, err := OpenDB(c.dbPath)
	if err != nil {
		return nil, err
	}

	stale, err := db.NeedsRebuild(c.jsonlPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	if stale {
		if _, err := db.RebuildFromJSONL(c.jsonlPath); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// Search runs a filtered full-text search against the catalog.
func (c *Catalog) Search(filters SearchFilters, limit int) ([]Record, error) {
	db, err := c.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.SearchWithFilters(filters, limit)
}

// List returns catalog records ordered by ID.
func (c *Catalog) List(limit int) ([]Record, error) {
	db, err := c.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.ListAll(limit)
}

// Get returns one record by ID, or nil when absent.
func (c *Catalog) Get(id string) (*Record, error) {
	db, err := c.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.GetByID(id)
}

// Info reports catalog paths, sizes and sync state.
func (c *Catalog) Info() (*Info, error) {
	info := &Info{
		JSONLPath: c.jsonlPath,
		DBPath:    c.dbPath,
	}

	records, err := ReadAll(c.jsonlPath)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	info.Records = len(records)
	for _, rec := range records {
		if rec.Valid {
			info.Valid++
		}
	}

	if stat, err := os.Stat(c.jsonlPath); err == nil {
		info.JSONLSize = stat.Size()
	}
	if stat, err := os.Stat(c.dbPath); err == nil {
		info.DBSize = stat.Size()
	}

	db, err := OpenDB(c.dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	stale, err := db.NeedsRebuild(c.jsonlPath)
	if err == nil {
		info.InSync = !stale
	}
	if last, err := db.LastSync(); err == nil && !last.IsZero() {
		info.LastSync = last
	}

	return info, nil
}
