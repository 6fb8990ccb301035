package pdf

import (
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/cffkit/cffkit/internal/cff"
)

// Title guesses shorter than this are treated as noise (drop caps,
// journal logos set in display type).
const minTitleLength = 8

// ExtractTitle guesses the title of a PDF: the text set in the largest
// font on page 1, falling back to the first substantial plain-text
// line when the font pass finds nothing usable.
func ExtractTitle(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", nil
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}

	if title := titleFromContent(page.Content()); title != "" {
		return title, nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", nil
	}
	return firstSubstantialLine(text), nil
}

// titleFromContent joins the fragments set in the page's largest font,
// one line per Y position.
func titleFromContent(content pdf.Content) string {
	if len(content.Text) == 0 {
		return ""
	}

	var maxSize float64
	for _, t := range content.Text {
		if t.FontSize > maxSize {
			maxSize = t.FontSize
		}
	}

	// Fragments within half a point of the maximum count as title text;
	// fonts get subset per style and sizes drift slightly.
	cutoff := maxSize - 0.5

	var lines []string
	var line strings.Builder
	var lastY float64
	for _, t := range content.Text {
		if t.FontSize < cutoff {
			continue
		}
		if line.Len() > 0 && t.Y != lastY {
			lines = append(lines, line.String())
			line.Reset()
		}
		line.WriteString(t.S)
		lastY = t.Y
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	title := strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
	if len(title) < minTitleLength {
		return ""
	}
	return title
}

// firstSubstantialLine returns the first line long enough to be a
// title that does not look like a running header.
func firstSubstantialLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

// isHeaderLine checks if a line is likely a journal header or footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "journal") {
		return true
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "article") && strings.Contains(lower, "published") {
		return true
	}
	return false
}

// DraftReference builds a reference draft from whatever the PDF gives
// up. The type defaults to article; callers adjust the draft before
// saving it.
func DraftReference(path string) (*cff.Reference, error) {
	doi, err := ExtractDOI(path)
	if err != nil {
		return nil, err
	}
	title, err := ExtractTitle(path)
	if err != nil {
		return nil, err
	}
	if title == "" {
		// Last resort: the filename without its extension
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &cff.Reference{
		Type:  "article",
		Title: title,
		DOI:   doi,
	}, nil
}
