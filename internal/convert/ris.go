package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cffkit/cffkit/internal/cff"
)

// ToRIS renders a RIS tag record.
func ToRIS(doc *cff.Document) (string, error) {
	ref := doc.Citation()
	var b strings.Builder
	tag := func(name, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("%s  - %s\n", name, value))
		}
	}

	tag("TY", risType(ref.Type))
	for _, a := range ref.Authors {
		switch {
		case a.IsEntity():
			tag("AU", a.Name)
		case a.GivenNames != "":
			tag("AU", a.Family()+", "+a.GivenNames)
		default:
			tag("AU", a.Family())
		}
	}
	tag("TI", ref.Title)
	if ref.Year > 0 {
		tag("PY", strconv.Itoa(int(ref.Year)))
	}
	tag("JO", ref.Journal)
	tag("VL", string(ref.Volume))
	tag("IS", string(ref.Issue))
	tag("SP", string(ref.Start))
	tag("EP", string(ref.End))
	if ref.Publisher != nil {
		tag("PB", ref.Publisher.Name)
	}
	tag("DO", ref.DOI)
	tag("UR", pickURL(ref))
	for _, kw := range ref.Keywords {
		tag("KW", kw)
	}
	b.WriteString("ER  - \n")

	return b.String(), nil
}

// risType maps CFF work types onto RIS TY codes.
func risType(cffType string) string {
	switch cffType {
	case "article", "magazine-article":
		return "JOUR"
	case "newspaper-article":
		return "NEWS"
	case "conference-paper":
		return "CPAPER"
	case "proceedings", "conference":
		return "CONF"
	case "book", "edited-work":
		return "BOOK"
	case "report", "government-document":
		return "RPRT"
	case "thesis":
		return "THES"
	case "data", "database":
		return "DATA"
	case "website", "blog":
		return "ELEC"
	default:
		if isSoftwareType(cffType) {
			return "COMP"
		}
		return "GEN"
	}
}
