// Package lint runs advisory checks over CFF documents: findings a
// maintainer probably wants to fix, but which do not make a document
// invalid. Hard rules live in the validate package.
package lint

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
	npm "github.com/aquasecurity/go-npm-version/pkg"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/package-url/packageurl-go"

	"github.com/cffkit/cffkit/internal/cff"
	"github.com/cffkit/cffkit/internal/validate"
)

// Warning codes.
const (
	CodeVersionFormat = "version-format"
	CodeORCIDChecksum = "orcid-checksum"
	CodePurlSyntax    = "purl-syntax"
	CodeDuplicateID   = "duplicate-identifier"
	CodeOldCFFVersion = "cff-version-old"
	CodeNoReleaseMeta = "no-release-metadata"
	CodeEmptyMessage  = "message-empty"
)

// Warning is one advisory finding.
type Warning struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s [%s]", w.Path, w.Message, w.Code)
}

// Document runs every advisory check and returns the findings in field
// order. A nil result means the document is clean.
func Document(doc *cff.Document) []Warning {
	var ws []Warning
	ws = append(ws, checkMessage(doc)...)
	ws = append(ws, checkCFFVersionAge(doc)...)
	ws = append(ws, checkVersionFormat(doc)...)
	ws = append(ws, checkORCIDChecksums(doc)...)
	ws = append(ws, checkIdentifiers(doc)...)
	ws = append(ws, checkReleaseMetadata(doc)...)
	return ws
}

// ParseableVersion reports whether v parses under any of the version
// schemes research software actually ships with: semver first, then
// PEP 440, then npm.
func ParseableVersion(v string) bool {
	if _, err := semver.NewVersion(v); err == nil {
		return true
	}
	if _, err := pep440.Parse(v); err == nil {
		return true
	}
	if _, err := npm.NewVersion(v); err == nil {
		return true
	}
	return false
}

func checkVersionFormat(doc *cff.Document) []Warning {
	v := string(doc.Version)
	if v == "" || ParseableVersion(v) {
		return nil
	}
	return []Warning{{
		Code:    CodeVersionFormat,
		Path:    "version",
		Message: fmt.Sprintf("%q is not a semver, PEP 440 or npm version", v),
	}}
}

func checkCFFVersionAge(doc *cff.Document) []Warning {
	v, err := semver.NewVersion(doc.CFFVersion)
	if err != nil {
		return nil
	}
	if !v.LessThan(semver.MustParse("1.2.0")) {
		return nil
	}
	return []Warning{{
		Code:    CodeOldCFFVersion,
		Path:    "cff-version",
		Message: fmt.Sprintf("cff-version %s predates 1.2.0; consider upgrading", doc.CFFVersion),
	}}
}

func checkORCIDChecksums(doc *cff.Document) []Warning {
	var ws []Warning
	for i, a := range doc.Authors {
		ws = append(ws, orcidChecksum(fmt.Sprintf("authors[%d].orcid", i), a.ORCID)...)
	}
	for i, c := range doc.Contact {
		ws = append(ws, orcidChecksum(fmt.Sprintf("contact[%d].orcid", i), c.ORCID)...)
	}
	return ws
}

// orcidChecksum verifies the ISO 7064 mod 11-2 check digit. Runs only on
// ORCIDs that already pass the pattern check, so validation and lint never
// double-report the same field.
func orcidChecksum(path, orcid string) []Warning {
	if orcid == "" || !validate.IsORCID(orcid) {
		return nil
	}
	digits := strings.NewReplacer("https://orcid.org/", "", "-", "").Replace(orcid)
	total := 0
	for _, c := range digits[:15] {
		total = (total + int(c-'0')) * 2
	}
	rem := (12 - total%11) % 11
	check := byte('0' + rem)
	if rem == 10 {
		check = 'X'
	}
	if digits[15] == check {
		return nil
	}
	return []Warning{{
		Code:    CodeORCIDChecksum,
		Path:    path,
		Message: fmt.Sprintf("%s fails the ORCID checksum (check digit should be %c)", orcid, check),
	}}
}

func checkIdentifiers(doc *cff.Document) []Warning {
	var ws []Warning
	seen := make(map[string]int)

	for i, id := range doc.Identifiers {
		path := fmt.Sprintf("identifiers[%d]", i)

		if strings.HasPrefix(id.Value, "pkg:") {
			if _, err := packageurl.FromString(id.Value); err != nil {
				ws = append(ws, Warning{
					Code:    CodePurlSyntax,
					Path:    path + ".value",
					Message: fmt.Sprintf("%q looks like a package URL but does not parse: %v", id.Value, err),
				})
			}
		}

		value := id.Value
		if id.Type == "doi" {
			value = cff.NormalizeDOI(value)
		}
		key := id.Type + "\x00" + value
		if first, dup := seen[key]; dup {
			ws = append(ws, Warning{
				Code:    CodeDuplicateID,
				Path:    path,
				Message: fmt.Sprintf("duplicate of identifiers[%d]", first),
			})
			continue
		}
		seen[key] = i
	}
	return ws
}

func checkReleaseMetadata(doc *cff.Document) []Warning {
	if doc.DOI != "" || len(doc.Identifiers) > 0 || doc.Version != "" {
		return nil
	}
	return []Warning{{
		Code:    CodeNoReleaseMeta,
		Path:    "$",
		Message: "no doi, identifiers or version; consumers cannot pin a release",
	}}
}

func checkMessage(doc *cff.Document) []Warning {
	if doc.Message == "" {
		// Missing entirely is a validation error, not a lint finding.
		return nil
	}
	stripped := strings.TrimFunc(doc.Message, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	if stripped != "" {
		return nil
	}
	return []Warning{{
		Code:    CodeEmptyMessage,
		Path:    "message",
		Message: "message contains no words; say how the work should be cited",
	}}
}
