package convert

import (
	"fmt"
	"strings"

	"github.com/cffkit/cffkit/internal/cff"
)

// ToBibTeX renders the document's citation as a BibTeX entry. Software
// records become @software entries (biblatex); bibliographic reference
// types map onto the classic entry types.
func ToBibTeX(doc *cff.Document) (string, error) {
	ref := doc.Citation()
	entryType := bibtexEntryType(ref.Type)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, CitationKey(ref)))

	if len(ref.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatBibTeXAuthors(ref.Authors)))
	}
	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(ref.Title)))

	if ref.Journal != "" {
		fieldName := "journal"
		if entryType == "inproceedings" {
			fieldName = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(ref.Journal)))
	} else if entryType == "inproceedings" && ref.CollectionTitle != "" {
		b.WriteString(fmt.Sprintf("  booktitle = {%s},\n", escapeLatex(ref.CollectionTitle)))
	}

	if ref.Year > 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", int(ref.Year)))
	}
	if ref.Month > 0 {
		b.WriteString(fmt.Sprintf("  month = {%d},\n", int(ref.Month)))
	}
	if ref.Volume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", escapeLatex(string(ref.Volume))))
	}
	if ref.Issue != "" {
		b.WriteString(fmt.Sprintf("  number = {%s},\n", escapeLatex(string(ref.Issue))))
	}
	if ref.Start != "" {
		pages := string(ref.Start)
		if ref.End != "" {
			pages += "--" + string(ref.End)
		}
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", pages))
	}
	if ref.Publisher != nil && ref.Publisher.Name != "" {
		b.WriteString(fmt.Sprintf("  publisher = {%s},\n", escapeLatex(ref.Publisher.Name)))
	}
	if ref.Institution != nil && ref.Institution.Name != "" {
		b.WriteString(fmt.Sprintf("  institution = {%s},\n", escapeLatex(ref.Institution.Name)))
	}
	if ref.Version != "" {
		b.WriteString(fmt.Sprintf("  version = {%s},\n", escapeLatex(string(ref.Version))))
	}
	if ref.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", ref.DOI))
	}
	if url := pickURL(ref); url != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", url))
	}
	if len(ref.License) > 0 {
		b.WriteString(fmt.Sprintf("  license = {%s},\n", ref.License.String()))
	}
	if ref.Abstract != "" {
		b.WriteString(fmt.Sprintf("  abstract = {%s},\n", escapeLatex(ref.Abstract)))
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// CitationKey builds the entry key: first author's family name glued to
// the year, non-alphanumerics dropped, "Giesen2021" style.
func CitationKey(ref cff.Reference) string {
	name := "citation"
	if len(ref.Authors) > 0 {
		a := ref.Authors[0]
		if a.IsEntity() {
			name = a.Name
		} else if a.FamilyNames != "" {
			name = a.FamilyNames
		}
	}
	key := sanitizeKey(name)
	if ref.Year > 0 {
		key += fmt.Sprintf("%d", int(ref.Year))
	}
	return key
}

func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "citation"
	}
	return b.String()
}

func bibtexEntryType(cffType string) string {
	switch cffType {
	case "article", "magazine-article", "newspaper-article":
		return "article"
	case "conference-paper":
		return "inproceedings"
	case "proceedings":
		return "proceedings"
	case "book", "edited-work":
		return "book"
	case "report", "government-document":
		return "techreport"
	case "thesis":
		return "phdthesis"
	case "manual":
		return "manual"
	case "unpublished":
		return "unpublished"
	case "software", "software-code", "software-container",
		"software-executable", "software-virtual-machine":
		return "software"
	default:
		return "misc"
	}
}

// formatBibTeXAuthors renders "Last, First and Last, First". Entity
// authors are braced so BibTeX keeps the corporate name whole.
func formatBibTeXAuthors(authors []cff.Author) string {
	var formatted []string
	for _, a := range authors {
		switch {
		case a.IsEntity():
			formatted = append(formatted, "{"+escapeLatex(a.Name)+"}")
		case a.GivenNames != "":
			formatted = append(formatted, fmt.Sprintf("%s, %s", escapeLatex(a.Family()), escapeLatex(a.GivenNames)))
		default:
			formatted = append(formatted, escapeLatex(a.Family()))
		}
	}
	return strings.Join(formatted, " and ")
}

func pickURL(ref cff.Reference) string {
	if ref.URL != "" {
		return ref.URL
	}
	return ref.RepositoryCode
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
