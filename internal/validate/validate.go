// Package validate checks parsed CFF documents against the format's schema
// and value rules. Validation never mutates a document: every problem
// becomes an Issue carrying the offending field path and a reason.
package validate

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cffkit/cffkit/internal/cff"
)

// Class groups issues by where in the pipeline they arise.
type Class string

const (
	// ClassParse covers malformed YAML: the document could not be read
	// at all.
	ClassParse Class = "parse"
	// ClassSchema covers structural problems: missing required fields,
	// unknown fields, wrong types, values outside an enum.
	ClassSchema Class = "schema"
	// ClassValue covers well-placed fields whose content is malformed:
	// a bad ORCID, DOI, SPDX identifier, URL or date.
	ClassValue Class = "value"
)

// Issue is one validation finding.
type Issue struct {
	Path    string `json:"path"`
	Class   Class  `json:"class"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.Path, i.Message, i.Class)
}

// Report is the outcome of validating one document.
type Report struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

func (r *Report) add(path string, class Class, format string, args ...interface{}) {
	r.Valid = false
	r.Issues = append(r.Issues, Issue{
		Path:    path,
		Class:   class,
		Message: fmt.Sprintf(format, args...),
	})
}

// Document validates an already-parsed document.
func Document(doc *cff.Document) Report {
	r := Report{Valid: true}

	checkRequired(&r, doc)
	checkCFFVersion(&r, doc.CFFVersion)

	for i, a := range doc.Authors {
		checkAuthor(&r, fmt.Sprintf("authors[%d]", i), a)
	}
	for i, c := range doc.Contact {
		checkAuthor(&r, fmt.Sprintf("contact[%d]", i), c)
	}

	if doc.Type != "" && !contains(cff.WorkTypes, doc.Type) {
		r.add("type", ClassSchema, "must be one of %s, got %q", strings.Join(cff.WorkTypes, ", "), doc.Type)
	}
	if doc.DOI != "" && !IsDOI(doc.DOI) {
		r.add("doi", ClassValue, "%q does not match the DOI pattern 10.NNNN/suffix", doc.DOI)
	}
	for i, id := range doc.Identifiers {
		checkIdentifier(&r, fmt.Sprintf("identifiers[%d]", i), id)
	}
	for i, kw := range doc.Keywords {
		if strings.TrimSpace(kw) == "" {
			r.add(fmt.Sprintf("keywords[%d]", i), ClassValue, "empty keyword")
		}
	}

	checkLicense(&r, "license", doc.License)
	checkOptionalURL(&r, "license-url", doc.LicenseURL)
	checkOptionalURL(&r, "url", doc.URL)
	checkOptionalURL(&r, "repository", doc.Repository)
	checkOptionalURL(&r, "repository-code", doc.RepositoryCode)
	checkOptionalURL(&r, "repository-artifact", doc.RepositoryArtifact)

	if doc.DateReleased != "" && !IsDate(doc.DateReleased) {
		r.add("date-released", ClassValue, "%q is not a YYYY-MM-DD date", doc.DateReleased)
	}

	if doc.PreferredCitation != nil {
		checkReference(&r, "preferred-citation", *doc.PreferredCitation)
	}
	for i, ref := range doc.References {
		checkReference(&r, fmt.Sprintf("references[%d]", i), ref)
	}

	return r
}

// Bytes parses and validates an in-memory document. Parse failures are
// folded into the report rather than returned as errors.
func Bytes(data []byte) Report {
	doc, err := cff.ParseBytes(data)
	if err != nil {
		return parseFailure(err)
	}
	return Document(doc)
}

// File reads, parses and validates the file at path. The returned error
// covers I/O only; parse and validation problems land in the report.
func File(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Bytes(data), nil
}

var unknownFieldRe = regexp.MustCompile(`^line (\d+): field (\S+) not found in type`)

// parseFailure turns a decode error into a report. yaml strict-mode
// findings (unknown fields, wrong types) are schema issues; anything the
// parser could not read at all is a parse issue.
func parseFailure(err error) Report {
	r := Report{Valid: true}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		for _, msg := range typeErr.Errors {
			switch {
			case strings.Contains(msg, "already defined"):
				r.add("$", ClassParse, "%s", msg)
			default:
				if m := unknownFieldRe.FindStringSubmatch(msg); m != nil {
					r.add("$", ClassSchema, "line %s: unknown field %q", m[1], m[2])
					continue
				}
				r.add("$", ClassSchema, "%s", msg)
			}
		}
		return r
	}

	r.add("$", ClassParse, "%s", err.Error())
	return r
}

func checkRequired(r *Report, doc *cff.Document) {
	if doc.CFFVersion == "" {
		r.add("cff-version", ClassSchema, "missing required field cff-version")
	}
	if doc.Message == "" {
		r.add("message", ClassSchema, "missing required field message")
	}
	if doc.Title == "" {
		r.add("title", ClassSchema, "missing required field title")
	}
	if len(doc.Authors) == 0 {
		r.add("authors", ClassSchema, "missing required field authors (need at least one entry)")
	}
}

func checkCFFVersion(r *Report, v string) {
	if v == "" {
		return
	}
	if !cffVersionRe.MatchString(v) {
		r.add("cff-version", ClassValue, "%q is not a version number", v)
		return
	}
	if !strings.HasPrefix(v, "1.") {
		r.add("cff-version", ClassSchema, "unsupported cff-version %q (this tool understands 1.x)", v)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
