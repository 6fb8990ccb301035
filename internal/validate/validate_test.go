package validate

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cffkit/cffkit/internal/cff"
)

func TestFileCleanFixture(t *testing.T) {
	rep, err := File(filepath.Join("testdata", "CITATION.cff"))
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if !rep.Valid {
		t.Errorf("Valid = false, issues: %v", rep.Issues)
	}
	if len(rep.Issues) != 0 {
		t.Errorf("len(Issues) = %d, want 0", len(rep.Issues))
	}
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join("testdata", "no-such-file.cff"))
	if err == nil {
		t.Fatal("File() on a missing path returned no error")
	}
}

// docWithout builds a minimal valid document with one required field removed.
func docWithout(field string) string {
	fields := map[string]string{
		"cff-version": "cff-version: 1.2.0\n",
		"message":     "message: If you use this software, please cite it.\n",
		"title":       "title: example\n",
		"authors":     "authors:\n  - family-names: Hut\n    given-names: Rolf\n",
	}
	var b strings.Builder
	for _, k := range []string{"cff-version", "message", "title", "authors"} {
		if k != field {
			b.WriteString(fields[k])
		}
	}
	return b.String()
}

func TestMissingRequiredFields(t *testing.T) {
	for _, field := range []string{"cff-version", "message", "title", "authors"} {
		t.Run(field, func(t *testing.T) {
			rep := Bytes([]byte(docWithout("")))
			if !rep.Valid {
				t.Fatalf("baseline document invalid: %v", rep.Issues)
			}

			rep = Bytes([]byte(docWithout(field)))
			if rep.Valid {
				t.Fatalf("document without %s reported valid", field)
			}
			is := mustIssue(t, rep, field, ClassSchema)
			if !strings.Contains(is.Message, field) {
				t.Errorf("message %q does not name the missing field %q", is.Message, field)
			}
		})
	}
}

func TestORCIDPattern(t *testing.T) {
	tests := []struct {
		orcid string
		ok    bool
	}{
		{"https://orcid.org/0000-0002-5821-2060", true},
		{"https://orcid.org/0000-0001-7307-614X", true},
		{"0000-0002-5821-2060", false},
		{"http://orcid.org/0000-0002-5821-2060", false},
		{"https://orcid.org/0000-0002-5821-206", false},
		{"https://orcid.org/0000-0002-5821-20601", false},
		{"https://orcid.org/0000-0002-5821-206x", false},
	}

	for _, tt := range tests {
		t.Run(tt.orcid, func(t *testing.T) {
			if got := IsORCID(tt.orcid); got != tt.ok {
				t.Errorf("IsORCID(%q) = %v, want %v", tt.orcid, got, tt.ok)
			}

			doc := &cff.Document{
				CFFVersion: "1.2.0",
				Message:    "m",
				Title:      "t",
				Authors: []cff.Author{
					{FamilyNames: "Hut", GivenNames: "Rolf", ORCID: tt.orcid},
				},
			}
			rep := Document(doc)
			if rep.Valid != tt.ok {
				t.Errorf("Document() valid = %v, want %v (issues: %v)", rep.Valid, tt.ok, rep.Issues)
			}
			if !tt.ok {
				mustIssue(t, rep, "authors[0].orcid", ClassValue)
			}
		})
	}
}

func TestDOIPattern(t *testing.T) {
	tests := []struct {
		doi string
		ok  bool
	}{
		{"10.5281/zenodo.5119389", true},
		{"10.1000/182", true},
		{"10.123456789/suffix", true},
		{"10.123/registrant-too-short", false},
		{"11.5281/zenodo.5119389", false},
		{"10.5281/", false},
		{"https://doi.org/10.5281/zenodo.5119389", false},
		{"10.5281/has space", false},
	}

	for _, tt := range tests {
		t.Run(tt.doi, func(t *testing.T) {
			if got := IsDOI(tt.doi); got != tt.ok {
				t.Errorf("IsDOI(%q) = %v, want %v", tt.doi, got, tt.ok)
			}

			doc := minimalDoc()
			doc.Identifiers = []cff.Identifier{{Type: "doi", Value: tt.doi}}
			rep := Document(doc)
			if rep.Valid != tt.ok {
				t.Errorf("Document() valid = %v, want %v (issues: %v)", rep.Valid, tt.ok, rep.Issues)
			}
			if !tt.ok {
				mustIssue(t, rep, "identifiers[0].value", ClassValue)
			}
		})
	}
}

func TestSWHIDPattern(t *testing.T) {
	hash := "d198bc9d7a6bcf6db04f476d29314f157507d505"
	tests := []struct {
		swhid string
		ok    bool
	}{
		{"swh:1:dir:" + hash, true},
		{"swh:1:rev:" + hash, true},
		{"swh:1:cnt:" + hash + ";origin=https://github.com/eWaterCycle/ewatercycle", true},
		{"swh:1:dir:short", false},
		{"swh:2:dir:" + hash, false},
		{"swh:1:xyz:" + hash, false},
		{"swh:1:dir:" + strings.ToUpper(hash), false},
	}

	for _, tt := range tests {
		t.Run(tt.swhid, func(t *testing.T) {
			if got := IsSWHID(tt.swhid); got != tt.ok {
				t.Errorf("IsSWHID(%q) = %v, want %v", tt.swhid, got, tt.ok)
			}
		})
	}
}

func TestIdentifierTypes(t *testing.T) {
	doc := minimalDoc()
	doc.Identifiers = []cff.Identifier{
		{Type: "doi", Value: "10.5281/zenodo.5119389"},
		{Type: "url", Value: "https://example.org/release"},
		{Type: "swh", Value: "swh:1:dir:d198bc9d7a6bcf6db04f476d29314f157507d505"},
		{Type: "other", Value: "anything-goes"},
	}
	if rep := Document(doc); !rep.Valid {
		t.Errorf("all identifier types rejected: %v", rep.Issues)
	}

	doc.Identifiers = []cff.Identifier{{Type: "isbn", Value: "978-3-16-148410-0"}}
	rep := Document(doc)
	mustIssue(t, rep, "identifiers[0].type", ClassSchema)

	doc.Identifiers = []cff.Identifier{{Type: "url"}}
	rep = Document(doc)
	mustIssue(t, rep, "identifiers[0].value", ClassSchema)
}

func TestLicenseSPDX(t *testing.T) {
	tests := []struct {
		license string
		ok      bool
	}{
		{"Apache-2.0", true},
		{"MIT", true},
		{"GPL-3.0-or-later", true},
		{"BSD-3-Clause", true},
		{"Not-A-License", false},
	}

	for _, tt := range tests {
		t.Run(tt.license, func(t *testing.T) {
			doc := minimalDoc()
			doc.License = cff.License{tt.license}
			rep := Document(doc)
			if rep.Valid != tt.ok {
				t.Errorf("Document() valid = %v, want %v (issues: %v)", rep.Valid, tt.ok, rep.Issues)
			}
			if !tt.ok {
				mustIssue(t, rep, "license", ClassValue)
			}
		})
	}
}

func TestLicenseListPaths(t *testing.T) {
	doc := minimalDoc()
	doc.License = cff.License{"MIT", "Bogus-1.0"}
	rep := Document(doc)
	mustIssue(t, rep, "license[1]", ClassValue)
}

func TestAuthorShapes(t *testing.T) {
	tests := []struct {
		name   string
		author cff.Author
		valid  bool
		path   string
	}{
		{"person", cff.Author{FamilyNames: "Hut", GivenNames: "Rolf"}, true, ""},
		{"entity", cff.Author{Name: "Netherlands eScience Center"}, true, ""},
		{"missing given-names", cff.Author{FamilyNames: "Hut"}, false, "authors[0].given-names"},
		{"missing family-names", cff.Author{GivenNames: "Rolf"}, false, "authors[0].family-names"},
		{"neither shape", cff.Author{Affiliation: "TU Delft"}, false, "authors[0]"},
		{"mixed shapes", cff.Author{Name: "Org", FamilyNames: "Hut"}, false, "authors[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDoc()
			doc.Authors = []cff.Author{tt.author}
			rep := Document(doc)
			if rep.Valid != tt.valid {
				t.Fatalf("Document() valid = %v, want %v (issues: %v)", rep.Valid, tt.valid, rep.Issues)
			}
			if !tt.valid {
				mustIssue(t, rep, tt.path, ClassSchema)
			}
		})
	}
}

func TestReferenceChecks(t *testing.T) {
	doc := minimalDoc()
	doc.References = []cff.Reference{{}}
	rep := Document(doc)
	mustIssue(t, rep, "references[0].type", ClassSchema)
	mustIssue(t, rep, "references[0].title", ClassSchema)
	mustIssue(t, rep, "references[0].authors", ClassSchema)

	doc.References = []cff.Reference{{
		Type:  "article",
		Title: "A paper",
		Authors: []cff.Author{
			{FamilyNames: "Hut", GivenNames: "Rolf", ORCID: "bogus"},
		},
		Month: 13,
	}}
	rep = Document(doc)
	mustIssue(t, rep, "references[0].authors[0].orcid", ClassValue)
	mustIssue(t, rep, "references[0].month", ClassValue)

	doc.References = nil
	doc.PreferredCitation = &cff.Reference{Type: "proceedings-paper", Title: "x",
		Authors: []cff.Author{{Name: "Org"}}}
	rep = Document(doc)
	mustIssue(t, rep, "preferred-citation.type", ClassSchema)
}

func TestValueChecks(t *testing.T) {
	doc := minimalDoc()
	doc.Type = "toolbox"
	doc.DateReleased = "2021-7-21"
	doc.RepositoryCode = "git@github.com:eWaterCycle/ewatercycle.git"
	doc.Authors[0].Email = "not-an-email"
	rep := Document(doc)

	mustIssue(t, rep, "type", ClassSchema)
	mustIssue(t, rep, "date-released", ClassValue)
	mustIssue(t, rep, "repository-code", ClassValue)
	mustIssue(t, rep, "authors[0].email", ClassValue)
}

func TestCFFVersionChecks(t *testing.T) {
	doc := minimalDoc()
	doc.CFFVersion = "abc"
	mustIssue(t, Document(doc), "cff-version", ClassValue)

	doc.CFFVersion = "2.0.0"
	mustIssue(t, Document(doc), "cff-version", ClassSchema)

	doc.CFFVersion = "1.1.0"
	if rep := Document(doc); !rep.Valid {
		t.Errorf("1.1.0 rejected: %v", rep.Issues)
	}
}

func TestParseFailures(t *testing.T) {
	rep := Bytes([]byte("title: [unclosed\n"))
	if rep.Valid {
		t.Fatal("malformed YAML reported valid")
	}
	mustIssue(t, rep, "$", ClassParse)

	rep = Bytes(nil)
	mustIssue(t, rep, "$", ClassParse)

	rep = Bytes([]byte(docWithout("") + "favourite-colour: blue\n"))
	is := mustIssue(t, rep, "$", ClassSchema)
	if !strings.Contains(is.Message, "favourite-colour") {
		t.Errorf("message %q does not name the unknown field", is.Message)
	}
}

func TestIssueAccumulation(t *testing.T) {
	src := `cff-version: 1.2.0
title: example
authors:
  - family-names: Hut
  - given-names: Rolf
    orcid: nope
`
	rep := Bytes([]byte(src))
	if rep.Valid {
		t.Fatal("document with several problems reported valid")
	}
	// One bad field must not hide another.
	if len(rep.Issues) < 3 {
		t.Errorf("len(Issues) = %d, want at least 3: %v", len(rep.Issues), rep.Issues)
	}
}

func minimalDoc() *cff.Document {
	return &cff.Document{
		CFFVersion: "1.2.0",
		Message:    "If you use this software, please cite it.",
		Title:      "example",
		Authors:    []cff.Author{{FamilyNames: "Hut", GivenNames: "Rolf"}},
	}
}

func mustIssue(t *testing.T, rep Report, path string, class Class) Issue {
	t.Helper()
	for _, is := range rep.Issues {
		if is.Path == path && is.Class == class {
			return is
		}
	}
	t.Fatalf("no %s issue at %q, got: %v", class, path, rep.Issues)
	return Issue{}
}
