package cff

import "strings"

// Author is one entry in an authors or contact list. CFF allows two shapes
// in the same list: a person (family-names + given-names) or an entity
// (name). Both decode into this struct; IsEntity distinguishes them.
type Author struct {
	FamilyNames  string `yaml:"family-names,omitempty" json:"family-names,omitempty"`
	GivenNames   string `yaml:"given-names,omitempty" json:"given-names,omitempty"`
	NameParticle string `yaml:"name-particle,omitempty" json:"name-particle,omitempty"`
	NameSuffix   string `yaml:"name-suffix,omitempty" json:"name-suffix,omitempty"`
	Name         string `yaml:"name,omitempty" json:"name,omitempty"`
	Affiliation  string `yaml:"affiliation,omitempty" json:"affiliation,omitempty"`
	ORCID        string `yaml:"orcid,omitempty" json:"orcid,omitempty"`
	Email        string `yaml:"email,omitempty" json:"email,omitempty"`
	Alias        string `yaml:"alias,omitempty" json:"alias,omitempty"`
	Website      string `yaml:"website,omitempty" json:"website,omitempty"`
	Address      string `yaml:"address,omitempty" json:"address,omitempty"`
	City         string `yaml:"city,omitempty" json:"city,omitempty"`
	Region       string `yaml:"region,omitempty" json:"region,omitempty"`
	PostCode     string `yaml:"post-code,omitempty" json:"post-code,omitempty"`
	Country      string `yaml:"country,omitempty" json:"country,omitempty"`
	Tel          string `yaml:"tel,omitempty" json:"tel,omitempty"`
	Fax          string `yaml:"fax,omitempty" json:"fax,omitempty"`
}

// IsEntity reports whether the entry is an organizational author.
func (a Author) IsEntity() bool {
	return a.Name != ""
}

// IsPerson reports whether the entry carries personal name parts.
func (a Author) IsPerson() bool {
	return a.FamilyNames != "" || a.GivenNames != ""
}

// Family returns the family name with its particle, e.g. "van de Giesen".
func (a Author) Family() string {
	if a.NameParticle == "" {
		return a.FamilyNames
	}
	return a.NameParticle + " " + a.FamilyNames
}

// DisplayName renders the entry for human output: "Given van Family Jr."
// for persons, the organization name for entities.
func (a Author) DisplayName() string {
	if a.IsEntity() {
		return a.Name
	}
	parts := make([]string, 0, 3)
	if a.GivenNames != "" {
		parts = append(parts, a.GivenNames)
	}
	if f := a.Family(); f != "" {
		parts = append(parts, f)
	}
	if a.NameSuffix != "" {
		parts = append(parts, a.NameSuffix)
	}
	if len(parts) == 0 {
		return a.Alias
	}
	return strings.Join(parts, " ")
}
