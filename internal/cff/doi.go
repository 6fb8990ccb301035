package cff

import "strings"

// NormalizeDOI strips resolver prefixes and lowercases a DOI so that
// doi:10.5281/ZENODO.1, https://doi.org/10.5281/zenodo.1 and
// 10.5281/zenodo.1 all compare equal. DOI suffixes are case-insensitive
// by the DOI handbook.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range []string{
		"https://doi.org/",
		"http://doi.org/",
		"https://dx.doi.org/",
		"http://dx.doi.org/",
		"doi:",
	} {
		if strings.HasPrefix(strings.ToLower(doi), prefix) {
			doi = doi[len(prefix):]
			break
		}
	}
	return strings.ToLower(doi)
}

// DOIURL renders a bare DOI as its resolver URL.
func DOIURL(doi string) string {
	if doi == "" {
		return ""
	}
	return "https://doi.org/" + doi
}
