package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cffkit/cffkit/internal/cff"
)

type zenodoCreator struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
	ORCID       string `json:"orcid,omitempty"`
}

type zenodoRelated struct {
	Identifier string `json:"identifier"`
	Relation   string `json:"relation"`
	Scheme     string `json:"scheme,omitempty"`
}

type zenodoDeposit struct {
	UploadType         string          `json:"upload_type"`
	Title              string          `json:"title"`
	Version            string          `json:"version,omitempty"`
	PublicationDate    string          `json:"publication_date,omitempty"`
	Description        string          `json:"description,omitempty"`
	Creators           []zenodoCreator `json:"creators"`
	Keywords           []string        `json:"keywords,omitempty"`
	License            string          `json:"license,omitempty"`
	RelatedIdentifiers []zenodoRelated `json:"related_identifiers,omitempty"`
}

// ToZenodo renders .zenodo.json deposit metadata. The work's own DOI is
// left out: Zenodo mints one per deposit and rejects records that claim
// theirs up front.
func ToZenodo(doc *cff.Document) (string, error) {
	dep := zenodoDeposit{
		UploadType:      zenodoUploadType(doc.Type),
		Title:           doc.Title,
		Version:         string(doc.Version),
		PublicationDate: doc.DateReleased,
		Description:     doc.Abstract,
		Keywords:        doc.Keywords,
	}
	if len(doc.License) > 0 {
		dep.License = doc.License[0]
	}

	for _, a := range doc.Authors {
		c := zenodoCreator{Affiliation: a.Affiliation}
		if a.IsEntity() {
			c.Name = a.Name
		} else {
			c.Name = a.Family()
			if a.GivenNames != "" {
				c.Name += ", " + a.GivenNames
			}
		}
		if a.ORCID != "" {
			c.ORCID = strings.TrimPrefix(a.ORCID, "https://orcid.org/")
		}
		dep.Creators = append(dep.Creators, c)
	}

	if doc.RepositoryCode != "" {
		dep.RelatedIdentifiers = append(dep.RelatedIdentifiers, zenodoRelated{
			Identifier: doc.RepositoryCode,
			Relation:   "isSupplementTo",
			Scheme:     "url",
		})
	}

	data, err := json.MarshalIndent(dep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding deposit metadata: %w", err)
	}
	return string(data) + "\n", nil
}

func zenodoUploadType(cffType string) string {
	if cffType == "dataset" {
		return "dataset"
	}
	return "software"
}
