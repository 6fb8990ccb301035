package cff

// Reference is an entry under references or preferred-citation: a work
// related to or describing the software. The field set is the practical
// subset of the CFF 1.2.0 reference schema that downstream converters
// consume.
type Reference struct {
	Type    string   `yaml:"type" json:"type"`
	Title   string   `yaml:"title" json:"title"`
	Authors []Author `yaml:"authors" json:"authors"`

	Year  FlexInt `yaml:"year,omitempty" json:"year,omitempty"`
	Month FlexInt `yaml:"month,omitempty" json:"month,omitempty"`

	Journal         string     `yaml:"journal,omitempty" json:"journal,omitempty"`
	Volume          FlexString `yaml:"volume,omitempty" json:"volume,omitempty"`
	Issue           FlexString `yaml:"issue,omitempty" json:"issue,omitempty"`
	Start           FlexString `yaml:"start,omitempty" json:"start,omitempty"`
	End             FlexString `yaml:"end,omitempty" json:"end,omitempty"`
	CollectionTitle string     `yaml:"collection-title,omitempty" json:"collection-title,omitempty"`
	Edition         string     `yaml:"edition,omitempty" json:"edition,omitempty"`
	ISBN            string     `yaml:"isbn,omitempty" json:"isbn,omitempty"`
	ISSN            string     `yaml:"issn,omitempty" json:"issn,omitempty"`

	DOI            string       `yaml:"doi,omitempty" json:"doi,omitempty"`
	Identifiers    []Identifier `yaml:"identifiers,omitempty" json:"identifiers,omitempty"`
	URL            string       `yaml:"url,omitempty" json:"url,omitempty"`
	RepositoryCode string       `yaml:"repository-code,omitempty" json:"repository-code,omitempty"`

	Publisher   *Entity `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	Conference  *Entity `yaml:"conference,omitempty" json:"conference,omitempty"`
	Institution *Entity `yaml:"institution,omitempty" json:"institution,omitempty"`

	Version  FlexString `yaml:"version,omitempty" json:"version,omitempty"`
	Keywords []string   `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	License  License    `yaml:"license,omitempty" json:"license,omitempty"`
	Abstract string     `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Notes    string     `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Entity is an organization attached to a reference (publisher, conference,
// institution).
type Entity struct {
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	City    string `yaml:"city,omitempty" json:"city,omitempty"`
	Region  string `yaml:"region,omitempty" json:"region,omitempty"`
	Country string `yaml:"country,omitempty" json:"country,omitempty"`
	Website string `yaml:"website,omitempty" json:"website,omitempty"`
	Email   string `yaml:"email,omitempty" json:"email,omitempty"`
}

// ReferenceTypes are the allowed values for a reference's type field,
// per CFF 1.2.0.
var ReferenceTypes = []string{
	"art", "article", "audiovisual", "bill", "blog", "book", "catalogue",
	"conference", "conference-paper", "data", "database", "dictionary",
	"edited-work", "encyclopedia", "film", "generic", "government-document",
	"grant", "hearing", "historical-work", "legal-case", "legal-rule",
	"magazine-article", "manual", "map", "multimedia", "music",
	"newspaper-article", "pamphlet", "patent", "personal-communication",
	"proceedings", "report", "serial", "slides", "software", "software-code",
	"software-container", "software-executable", "software-virtual-machine",
	"sound-recording", "standard", "statute", "thesis", "unpublished",
	"video", "website",
}
