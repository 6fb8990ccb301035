package lint

import (
	"strings"
	"testing"

	"github.com/cffkit/cffkit/internal/cff"
)

func cleanDoc() *cff.Document {
	return &cff.Document{
		CFFVersion: "1.2.0",
		Message:    "If you use this software, please cite it.",
		Title:      "eWaterCycle Python package",
		Version:    "1.4.1",
		DOI:        "10.5281/zenodo.5119389",
		Authors: []cff.Author{
			{
				FamilyNames: "Verhoeven",
				GivenNames:  "Stefan",
				ORCID:       "https://orcid.org/0000-0002-5821-2060",
			},
		},
	}
}

func TestCleanDocumentHasNoWarnings(t *testing.T) {
	if ws := Document(cleanDoc()); len(ws) != 0 {
		t.Errorf("Document() = %v, want no warnings", ws)
	}
}

func TestParseableVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.4.1", true},
		{"v2.0.0", true},
		{"1.0.0-rc.1", true},
		{"2021.4.dev1", true}, // PEP 440, not semver
		{"latest", false},
		{"not a version!", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := ParseableVersion(tt.version); got != tt.ok {
				t.Errorf("ParseableVersion(%q) = %v, want %v", tt.version, got, tt.ok)
			}
		})
	}
}

func TestVersionFormatWarning(t *testing.T) {
	doc := cleanDoc()
	doc.Version = "latest"
	mustWarning(t, Document(doc), CodeVersionFormat, "version")

	doc.Version = ""
	if ws := Document(doc); hasCode(ws, CodeVersionFormat) {
		t.Errorf("empty version warned about format: %v", ws)
	}
}

func TestORCIDChecksum(t *testing.T) {
	doc := cleanDoc()
	doc.Authors[0].ORCID = "https://orcid.org/0000-0002-5821-2061" // check digit should be 0
	w := mustWarning(t, Document(doc), CodeORCIDChecksum, "authors[0].orcid")
	if !strings.Contains(w.Message, "check digit should be 0") {
		t.Errorf("message %q does not suggest the right check digit", w.Message)
	}

	// Pattern-invalid ORCIDs are validation's problem, not lint's.
	doc.Authors[0].ORCID = "not-an-orcid"
	if ws := Document(doc); hasCode(ws, CodeORCIDChecksum) {
		t.Errorf("lint double-reported a pattern-invalid ORCID: %v", ws)
	}
}

func TestPurlSyntax(t *testing.T) {
	doc := cleanDoc()
	doc.Identifiers = []cff.Identifier{
		{Type: "other", Value: "pkg:pypi/ewatercycle@1.4.1"},
	}
	if ws := Document(doc); hasCode(ws, CodePurlSyntax) {
		t.Errorf("valid purl warned: %v", ws)
	}

	doc.Identifiers = []cff.Identifier{{Type: "other", Value: "pkg:"}}
	mustWarning(t, Document(doc), CodePurlSyntax, "identifiers[0].value")
}

func TestDuplicateIdentifiers(t *testing.T) {
	doc := cleanDoc()
	doc.Identifiers = []cff.Identifier{
		{Type: "doi", Value: "10.5281/zenodo.5119389"},
		{Type: "doi", Value: "10.5281/ZENODO.5119389"},
	}
	w := mustWarning(t, Document(doc), CodeDuplicateID, "identifiers[1]")
	if !strings.Contains(w.Message, "identifiers[0]") {
		t.Errorf("message %q does not point at the first occurrence", w.Message)
	}

	doc.Identifiers = []cff.Identifier{
		{Type: "url", Value: "https://example.org/a"},
		{Type: "url", Value: "https://example.org/b"},
	}
	if ws := Document(doc); hasCode(ws, CodeDuplicateID) {
		t.Errorf("distinct identifiers flagged as duplicates: %v", ws)
	}
}

func TestOldCFFVersion(t *testing.T) {
	doc := cleanDoc()
	doc.CFFVersion = "1.1.0"
	mustWarning(t, Document(doc), CodeOldCFFVersion, "cff-version")

	doc.CFFVersion = "1.2.0"
	if ws := Document(doc); hasCode(ws, CodeOldCFFVersion) {
		t.Errorf("1.2.0 flagged as old: %v", ws)
	}
}

func TestNoReleaseMetadata(t *testing.T) {
	doc := cleanDoc()
	doc.DOI = ""
	doc.Version = ""
	doc.Identifiers = nil
	mustWarning(t, Document(doc), CodeNoReleaseMeta, "$")
}

func TestEmptyMessage(t *testing.T) {
	doc := cleanDoc()
	doc.Message = "..."
	mustWarning(t, Document(doc), CodeEmptyMessage, "message")

	doc.Message = ""
	if ws := Document(doc); hasCode(ws, CodeEmptyMessage) {
		t.Errorf("missing message is validation's finding, lint warned anyway: %v", ws)
	}
}

func hasCode(ws []Warning, code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

func mustWarning(t *testing.T, ws []Warning, code, path string) Warning {
	t.Helper()
	for _, w := range ws {
		if w.Code == code && w.Path == path {
			return w
		}
	}
	t.Fatalf("no %s warning at %q, got: %v", code, path, ws)
	return Warning{}
}
