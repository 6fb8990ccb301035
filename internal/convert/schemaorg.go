package convert

import (
	"encoding/json"
	"fmt"

	"github.com/cffkit/cffkit/internal/cff"
)

// ToSchemaOrg renders schema.org JSON-LD describing the deposited work
// itself, so it reads from the document rather than from Citation().
func ToSchemaOrg(doc *cff.Document) (string, error) {
	ld := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    schemaOrgType(doc.Type),
		"name":     doc.Title,
	}

	authors := make([]map[string]interface{}, 0, len(doc.Authors))
	for _, a := range doc.Authors {
		authors = append(authors, schemaOrgAuthor(a))
	}
	ld["author"] = authors

	if doc.DateReleased != "" {
		ld["datePublished"] = doc.DateReleased
	}
	if doc.Version != "" {
		ld["version"] = string(doc.Version)
	}
	if doc.DOI != "" {
		ld["identifier"] = cff.DOIURL(doc.DOI)
	}
	if doc.URL != "" {
		ld["url"] = doc.URL
	}
	if doc.RepositoryCode != "" {
		ld["codeRepository"] = doc.RepositoryCode
	}
	if len(doc.Keywords) > 0 {
		ld["keywords"] = doc.Keywords
	}
	if len(doc.License) > 0 {
		urls := make([]string, 0, len(doc.License))
		for _, id := range doc.License {
			urls = append(urls, "https://spdx.org/licenses/"+id)
		}
		if len(urls) == 1 {
			ld["license"] = urls[0]
		} else {
			ld["license"] = urls
		}
	}
	if doc.Abstract != "" {
		ld["description"] = doc.Abstract
	}

	data, err := json.MarshalIndent(ld, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding JSON-LD: %w", err)
	}
	return string(data) + "\n", nil
}

func schemaOrgType(cffType string) string {
	if cffType == "dataset" {
		return "Dataset"
	}
	return "SoftwareSourceCode"
}

func schemaOrgAuthor(a cff.Author) map[string]interface{} {
	if a.IsEntity() {
		return map[string]interface{}{
			"@type": "Organization",
			"name":  a.Name,
		}
	}
	m := map[string]interface{}{
		"@type":      "Person",
		"familyName": a.Family(),
	}
	if a.GivenNames != "" {
		m["givenName"] = a.GivenNames
	}
	if a.ORCID != "" {
		m["@id"] = a.ORCID
	}
	if a.Affiliation != "" {
		m["affiliation"] = map[string]interface{}{
			"@type": "Organization",
			"name":  a.Affiliation,
		}
	}
	return m
}
