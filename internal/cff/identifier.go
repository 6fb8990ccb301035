package cff

// Identifier is one entry in the identifiers list: a typed persistent
// identifier for the work.
type Identifier struct {
	Type        string `yaml:"type" json:"type"`
	Value       string `yaml:"value" json:"value"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// IdentifierTypes are the allowed identifier type values.
var IdentifierTypes = []string{"doi", "url", "swh", "other"}
