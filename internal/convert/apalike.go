package convert

import (
	"fmt"
	"strings"

	"github.com/cffkit/cffkit/internal/cff"
)

// ToAPA renders an APA-7-flavored one-line citation.
func ToAPA(doc *cff.Document) (string, error) {
	ref := doc.Citation()
	var b strings.Builder

	if s := formatAPAAuthors(ref.Authors); s != "" {
		b.WriteString(s)
		b.WriteString(" ")
	}
	if ref.Year > 0 {
		b.WriteString(fmt.Sprintf("(%d). ", int(ref.Year)))
	}
	b.WriteString(ref.Title)

	switch {
	case isSoftwareType(ref.Type):
		if ref.Version != "" {
			b.WriteString(fmt.Sprintf(" (Version %s)", ref.Version))
		}
		b.WriteString(" [Computer software]")
	case ref.Type == "data" || ref.Type == "database":
		b.WriteString(" [Data set]")
	}
	b.WriteString(". ")

	if ref.Journal != "" {
		b.WriteString(ref.Journal)
		if ref.Volume != "" {
			b.WriteString(", " + string(ref.Volume))
			if ref.Issue != "" {
				b.WriteString("(" + string(ref.Issue) + ")")
			}
		}
		if ref.Start != "" {
			pages := string(ref.Start)
			if ref.End != "" {
				pages += "-" + string(ref.End)
			}
			b.WriteString(", " + pages)
		}
		b.WriteString(". ")
	}

	if ref.DOI != "" {
		b.WriteString(cff.DOIURL(ref.DOI))
	} else if url := pickURL(ref); url != "" {
		b.WriteString(url)
	}

	return strings.TrimSpace(b.String()), nil
}

// formatAPAAuthors renders "Family, I., Family, I., & Family, I."
func formatAPAAuthors(authors []cff.Author) string {
	var names []string
	for _, a := range authors {
		if a.IsEntity() {
			names = append(names, a.Name)
			continue
		}
		n := a.Family()
		if ini := initials(a.GivenNames); ini != "" {
			n += ", " + ini
		}
		names = append(names, n)
	}
	if len(names) == 0 {
		return ""
	}

	s := names[0]
	if len(names) > 1 {
		s = strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
	}
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

func initials(given string) string {
	var parts []string
	for _, w := range strings.Fields(given) {
		r := []rune(w)
		parts = append(parts, string(r[0])+".")
	}
	return strings.Join(parts, " ")
}

func isSoftwareType(t string) bool {
	return strings.HasPrefix(t, "software")
}
