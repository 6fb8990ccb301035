// Package cff defines the typed model for CITATION.cff documents and the
// YAML codec for reading and writing them.
package cff

// Document is a parsed CITATION.cff file (CFF 1.2.0 field set).
//
// Field order here is serialization order, so keep the conventional
// cff-version-first layout.
type Document struct {
	CFFVersion   string     `yaml:"cff-version" json:"cff-version"`
	Message      string     `yaml:"message" json:"message"`
	Title        string     `yaml:"title" json:"title"`
	Type         string     `yaml:"type,omitempty" json:"type,omitempty"`
	Version      FlexString `yaml:"version,omitempty" json:"version,omitempty"`
	Commit       string     `yaml:"commit,omitempty" json:"commit,omitempty"`
	DateReleased string     `yaml:"date-released,omitempty" json:"date-released,omitempty"`
	DOI          string     `yaml:"doi,omitempty" json:"doi,omitempty"`

	Authors     []Author     `yaml:"authors" json:"authors"`
	Contact     []Author     `yaml:"contact,omitempty" json:"contact,omitempty"`
	Identifiers []Identifier `yaml:"identifiers,omitempty" json:"identifiers,omitempty"`
	Keywords    []string     `yaml:"keywords,omitempty" json:"keywords,omitempty"`

	License            License `yaml:"license,omitempty" json:"license,omitempty"`
	LicenseURL         string  `yaml:"license-url,omitempty" json:"license-url,omitempty"`
	Abstract           string  `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	URL                string  `yaml:"url,omitempty" json:"url,omitempty"`
	Repository         string  `yaml:"repository,omitempty" json:"repository,omitempty"`
	RepositoryCode     string  `yaml:"repository-code,omitempty" json:"repository-code,omitempty"`
	RepositoryArtifact string  `yaml:"repository-artifact,omitempty" json:"repository-artifact,omitempty"`

	PreferredCitation *Reference  `yaml:"preferred-citation,omitempty" json:"preferred-citation,omitempty"`
	References        []Reference `yaml:"references,omitempty" json:"references,omitempty"`
}

// WorkTypes are the allowed values for the top-level type field.
var WorkTypes = []string{"software", "dataset"}

// RequiredFields are the top-level keys every document must carry.
var RequiredFields = []string{"cff-version", "message", "title", "authors"}

// Citation returns the record a citation of this work should be built from:
// preferred-citation when present, otherwise the document itself lifted into
// a Reference.
func (d *Document) Citation() Reference {
	if d.PreferredCitation != nil {
		return *d.PreferredCitation
	}
	typ := d.Type
	if typ == "" {
		typ = "software"
	}
	return Reference{
		Type:           typ,
		Title:          d.Title,
		Authors:        d.Authors,
		DOI:            d.DOI,
		URL:            d.URL,
		RepositoryCode: d.RepositoryCode,
		Version:        d.Version,
		Keywords:       d.Keywords,
		License:        d.License,
		Abstract:       d.Abstract,
		Year:           FlexInt(d.ReleaseYear()),
		Month:          FlexInt(d.ReleaseMonth()),
	}
}

// ReleaseYear returns the year of date-released, or 0 when absent or malformed.
func (d *Document) ReleaseYear() int {
	y, _, _ := splitDate(d.DateReleased)
	return y
}

// ReleaseMonth returns the month of date-released, or 0.
func (d *Document) ReleaseMonth() int {
	_, m, _ := splitDate(d.DateReleased)
	return m
}

func splitDate(s string) (year, month, day int) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0
	}
	return atoi(s[0:4]), atoi(s[5:7]), atoi(s[8:10])
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
