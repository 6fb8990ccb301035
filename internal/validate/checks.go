package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/github/go-spdx/v2/spdxexp"

	"github.com/cffkit/cffkit/internal/cff"
)

var (
	orcidRe      = regexp.MustCompile(`^https://orcid\.org/\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	doiRe        = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
	swhRe        = regexp.MustCompile(`^swh:1:(snp|rel|rev|dir|cnt):[0-9a-f]{40}(;[a-z][a-z_]*=\S+)*$`)
	cffVersionRe = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)
	emailRe      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// IsDOI reports whether s is a bare DOI: 10.NNNN/suffix, no URL prefix.
func IsDOI(s string) bool {
	return doiRe.MatchString(s)
}

// IsORCID reports whether s is a full https://orcid.org identifier URL.
func IsORCID(s string) bool {
	return orcidRe.MatchString(s)
}

// IsSWHID reports whether s is a Software Heritage identifier with an
// optional qualifier suffix.
func IsSWHID(s string) bool {
	return swhRe.MatchString(s)
}

// IsDate reports whether s is a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsHTTPURL reports whether s is an absolute http or https URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func checkAuthor(r *Report, path string, a cff.Author) {
	switch {
	case a.IsEntity():
		if a.IsPerson() {
			r.add(path, ClassSchema, "mixes an entity name with person name parts")
		}
	case a.IsPerson():
		if a.FamilyNames == "" {
			r.add(path+".family-names", ClassSchema, "missing family-names")
		}
		if a.GivenNames == "" {
			r.add(path+".given-names", ClassSchema, "missing given-names")
		}
	default:
		r.add(path, ClassSchema, "author needs family-names and given-names (person) or name (entity)")
	}

	if a.ORCID != "" && !IsORCID(a.ORCID) {
		r.add(path+".orcid", ClassValue, "%q does not match https://orcid.org/XXXX-XXXX-XXXX-XXXX", a.ORCID)
	}
	if a.Email != "" && !emailRe.MatchString(a.Email) {
		r.add(path+".email", ClassValue, "%q is not an email address", a.Email)
	}
	if a.Website != "" && !IsHTTPURL(a.Website) {
		r.add(path+".website", ClassValue, "%q is not an absolute http(s) URL", a.Website)
	}
}

func checkIdentifier(r *Report, path string, id cff.Identifier) {
	if id.Type == "" {
		r.add(path+".type", ClassSchema, "missing required field type")
	} else if !contains(cff.IdentifierTypes, id.Type) {
		r.add(path+".type", ClassSchema, "unknown identifier type %q (want doi, url, swh or other)", id.Type)
	}
	if id.Value == "" {
		r.add(path+".value", ClassSchema, "missing required field value")
		return
	}

	switch id.Type {
	case "doi":
		if !IsDOI(id.Value) {
			r.add(path+".value", ClassValue, "%q does not match the DOI pattern 10.NNNN/suffix", id.Value)
		}
	case "url":
		if !IsHTTPURL(id.Value) {
			r.add(path+".value", ClassValue, "%q is not an absolute http(s) URL", id.Value)
		}
	case "swh":
		if !IsSWHID(id.Value) {
			r.add(path+".value", ClassValue, "%q is not a Software Heritage identifier (swh:1:...)", id.Value)
		}
	}
}

func checkLicense(r *Report, path string, l cff.License) {
	for i, id := range l {
		p := path
		if len(l) > 1 {
			p = fmt.Sprintf("%s[%d]", path, i)
		}
		if strings.TrimSpace(id) == "" {
			r.add(p, ClassSchema, "empty license identifier")
			continue
		}
		if valid, _ := spdxexp.ValidateLicenses([]string{id}); !valid {
			r.add(p, ClassValue, "%q is not a valid SPDX license identifier", id)
		}
	}
}

func checkOptionalURL(r *Report, path, value string) {
	if value != "" && !IsHTTPURL(value) {
		r.add(path, ClassValue, "%q is not an absolute http(s) URL", value)
	}
}

func checkReference(r *Report, path string, ref cff.Reference) {
	if ref.Type == "" {
		r.add(path+".type", ClassSchema, "missing required field type")
	} else if !contains(cff.ReferenceTypes, ref.Type) {
		r.add(path+".type", ClassSchema, "unknown reference type %q", ref.Type)
	}
	if ref.Title == "" {
		r.add(path+".title", ClassSchema, "missing required field title")
	}
	if len(ref.Authors) == 0 {
		r.add(path+".authors", ClassSchema, "missing required field authors (need at least one entry)")
	}
	for i, a := range ref.Authors {
		checkAuthor(r, fmt.Sprintf("%s.authors[%d]", path, i), a)
	}

	if ref.DOI != "" && !IsDOI(ref.DOI) {
		r.add(path+".doi", ClassValue, "%q does not match the DOI pattern 10.NNNN/suffix", ref.DOI)
	}
	for i, id := range ref.Identifiers {
		checkIdentifier(r, fmt.Sprintf("%s.identifiers[%d]", path, i), id)
	}
	checkOptionalURL(r, path+".url", ref.URL)
	checkOptionalURL(r, path+".repository-code", ref.RepositoryCode)
	checkLicense(r, path+".license", ref.License)

	if ref.Month < 0 || ref.Month > 12 {
		r.add(path+".month", ClassValue, "month %d out of range 1-12", int(ref.Month))
	}
	if ref.Year < 0 {
		r.add(path+".year", ClassValue, "negative year %d", int(ref.Year))
	}
}
