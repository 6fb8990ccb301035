// Package pdf pulls citation hints out of PDF files.
//
// refs add uses it to pre-fill a reference draft: a DOI found on the
// first few pages plus a best-effort title guess. Everything here is
// heuristic; drafts are meant to be reviewed before saving.
package pdf

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Publishers print DOIs with surrounding prose, so the character class
// stops at whitespace and common delimiters rather than at \S.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// DOIs live on the title page or in the footer of the first pages.
const maxScanPages = 3

// ExtractDOI scans the first pages of a PDF for a DOI. A PDF without
// one returns empty with no error.
func ExtractDOI(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := r.NumPage()
	if pages > maxScanPages {
		pages = maxScanPages
	}

	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil
}

// findDOI returns the first structurally plausible DOI in the text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		// Sentences swallow trailing punctuation into the match
		match = strings.TrimRight(match, ".,;:)")
		if isPlausibleDOI(match) {
			return match
		}
	}
	return ""
}

// isPlausibleDOI rejects matches that survived the regex but cannot be
// real handles, like a bare prefix with nothing after the slash.
func isPlausibleDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash != -1 && slash < len(doi)-1
}
