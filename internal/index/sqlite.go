package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cffkit/cffkit/internal/cff"
	_ "modernc.org/sqlite"
)

// DB wraps the catalog's SQLite cache.
type DB struct {
	db *sql.DB
}

// selectRecordFields is the standard field list for SELECT queries.
const selectRecordFields = `id, path, title, version, doi, license,
	date_released, abstract, valid, issues, authors_json, keywords_json`

// OpenDB opens or creates the SQLite cache at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- Main catalog table
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			title TEXT,
			version TEXT,
			doi TEXT,
			license TEXT,
			date_released TEXT,
			abstract TEXT,
			valid INTEGER NOT NULL,
			issues INTEGER,
			authors_json TEXT,
			keywords_json TEXT
		);

		-- Index for DOI lookups
		CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			id,
			title,
			abstract,
			authors_text,
			keywords_text
		);

		-- Cache metadata for staleness detection
		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the cache and rebuilds it from a JSONL file,
// recording the file's hash for staleness checks.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}
	hash, err := ComputeHash(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("computing hash: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clearing records table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM records_fts"); err != nil {
		return 0, fmt.Errorf("clearing records_fts table: %w", err)
	}

	recStmt, err := d.db.Prepare(`
		INSERT INTO records (
			id, path, title, version, doi, license,
			date_released, abstract, valid, issues,
			authors_json, keywords_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing records insert: %w", err)
	}
	defer recStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO records_fts (id, title, abstract, authors_text, keywords_text)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, rec := range records {
		var authorsJSON, keywordsJSON []byte
		if len(rec.Authors) > 0 {
			authorsJSON, err = json.Marshal(rec.Authors)
			if err != nil {
				return 0, fmt.Errorf("marshaling authors for %s: %w", rec.ID, err)
			}
		}
		if len(rec.Keywords) > 0 {
			keywordsJSON, err = json.Marshal(rec.Keywords)
			if err != nil {
				return 0, fmt.Errorf("marshaling keywords for %s: %w", rec.ID, err)
			}
		}

		_, err = recStmt.Exec(
			rec.ID, rec.Path, rec.Title, rec.Version, rec.DOI, rec.License,
			rec.DateReleased, rec.Abstract, boolToInt(rec.Valid), rec.Issues,
			nullableString(authorsJSON), nullableString(keywordsJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %s: %w", rec.ID, err)
		}

		_, err = ftsStmt.Exec(rec.ID, rec.Title, rec.Abstract,
			formatAuthorsText(rec.Authors), strings.Join(rec.Keywords, ", "))
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", rec.ID, err)
		}
	}

	if err := d.setMeta("jsonl_hash", hash); err != nil {
		return 0, fmt.Errorf("updating hash: %w", err)
	}
	if err := d.setMeta("last_sync", time.Now().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("updating sync time: %w", err)
	}

	return len(records), nil
}

// NeedsRebuild reports whether the cache is stale relative to the JSONL file.
func (d *DB) NeedsRebuild(jsonlPath string) (bool, error) {
	current, err := ComputeHash(jsonlPath)
	if err != nil {
		return true, err
	}
	stored, err := d.getMeta("jsonl_hash")
	if err != nil {
		return true, err
	}
	return current != stored, nil
}

// LastSync returns the time of the last cache rebuild, zero when never built.
func (d *DB) LastSync() (time.Time, error) {
	v, err := d.getMeta("last_sync")
	if err != nil || v == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, v)
}

func (d *DB) getMeta(key string) (string, error) {
	var value sql.NullString
	err := d.db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}

func (d *DB) setMeta(key, value string) error {
	_, err := d.db.Exec("INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// formatAuthorsText creates a searchable text representation of authors.
func formatAuthorsText(authors []cff.Author) string {
	var names []string
	for _, a := range authors {
		if n := a.DisplayName(); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// GetByID retrieves a record by its ID. Returns nil when absent.
func (d *DB) GetByID(id string) (*Record, error) {
	row := d.db.QueryRow(`SELECT `+selectRecordFields+` FROM records WHERE id = ?`, id)
	return scanRecord(row)
}

// Search performs a full-text search and returns matching records.
func (d *DB) Search(query string, limit int) ([]Record, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectRecordFields+`
		FROM records
		WHERE id IN (SELECT id FROM records_fts WHERE records_fts MATCH ?)
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SearchFilters contains optional filters for SearchWithFilters.
// Text filters go through FTS5; exact matches use SQL WHERE clauses.
type SearchFilters struct {
	Keyword   string   // General keyword search across all FTS fields
	Title     string   // Search in title only (FTS)
	Authors   []string // Author names (AND logic, prefix matching)
	License   string   // Exact license match (SQL)
	DOI       string   // Exact DOI match (SQL)
	ValidOnly bool     // Drop records with validation issues
}

// SearchWithFilters performs a search with multiple optional filters.
// Returns records matching ALL specified criteria (AND logic).
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]Record, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	if filters.Title != "" {
		ftsTerms = append(ftsTerms, "title:"+prepareFTSQuery(filters.Title))
	}
	for _, a := range filters.Authors {
		if a != "" {
			ftsTerms = append(ftsTerms, "authors_text:"+prepareAuthorQuery(a))
		}
	}

	var query string
	if len(ftsTerms) > 0 {
		ftsQuery := strings.Join(ftsTerms, " AND ")
		query = `SELECT ` + selectRecordFields + `
			FROM records
			WHERE id IN (SELECT id FROM records_fts WHERE records_fts MATCH ?)`
		args = append(args, ftsQuery)
	} else {
		query = `SELECT ` + selectRecordFields + ` FROM records WHERE 1=1`
	}

	if filters.License != "" {
		query += " AND license = ?"
		args = append(args, filters.License)
	}
	if filters.DOI != "" {
		query += " AND doi = ?"
		args = append(args, filters.DOI)
	}
	if filters.ValidOnly {
		query += " AND valid = 1"
	}

	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListAll returns all records ordered by ID, optionally limited.
func (d *DB) ListAll(limit int) ([]Record, error) {
	query := `SELECT ` + selectRecordFields + ` FROM records ORDER BY id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of records in the cache.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*Record, error) {
	var rec Record
	var title, version, doi, license, dateReleased, abstract sql.NullString
	var authorsJSON, keywordsJSON sql.NullString
	var valid int
	var issues sql.NullInt64

	err := s.Scan(
		&rec.ID, &rec.Path, &title, &version, &doi, &license,
		&dateReleased, &abstract, &valid, &issues,
		&authorsJSON, &keywordsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rec.Title = title.String
	rec.Version = version.String
	rec.DOI = doi.String
	rec.License = license.String
	rec.DateReleased = dateReleased.String
	rec.Abstract = abstract.String
	rec.Valid = valid != 0
	if issues.Valid {
		rec.Issues = int(issues.Int64)
	}

	if authorsJSON.Valid && authorsJSON.String != "" {
		if err := json.Unmarshal([]byte(authorsJSON.String), &rec.Authors); err != nil {
			return nil, fmt.Errorf("parsing authors JSON for %s: %w", rec.ID, err)
		}
	}
	if keywordsJSON.Valid && keywordsJSON.String != "" {
		if err := json.Unmarshal([]byte(keywordsJSON.String), &rec.Keywords); err != nil {
			return nil, fmt.Errorf("parsing keywords JSON for %s: %w", rec.ID, err)
		}
	}

	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records, rows.Err()
}

func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		// Escape internal quotes and wrap in quotes
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix
// matching, so "Tim" matches "Timothy".
func prepareAuthorQuery(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return author
	}

	parts := strings.Fields(author)
	var terms []string
	for _, part := range parts {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}

	// Use OR for multi-word author queries (match any part)
	return "(" + strings.Join(terms, " OR ") + ")"
}
