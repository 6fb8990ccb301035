package cff

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlexString is a string field that tolerates unquoted YAML scalars:
// "version: 1.2" arrives as a float node but means the string "1.2".
type FlexString string

// UnmarshalYAML accepts any scalar and keeps its source text.
func (s *FlexString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar, got a %s", node.Line, nodeKind(node.Kind))
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = FlexString(node.Value)
	return nil
}

// FlexInt is an int field that also accepts quoted digits ("2021"),
// which BibTeX-derived tooling tends to emit.
type FlexInt int

// UnmarshalYAML accepts integer scalars whether or not they are quoted.
func (i *FlexInt) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected an integer, got a %s", node.Line, nodeKind(node.Kind))
	}
	v := strings.TrimSpace(node.Value)
	if v == "" || node.Tag == "!!null" {
		*i = 0
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
	}
	*i = FlexInt(n)
	return nil
}

// License is the license field: a single SPDX identifier or a list of them.
// A single identifier round-trips in scalar form.
type License []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (l *License) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = License{node.Value}
		return nil
	case yaml.SequenceNode:
		var ids []string
		if err := node.Decode(&ids); err != nil {
			return err
		}
		*l = License(ids)
		return nil
	}
	return fmt.Errorf("line %d: license must be a string or a list of strings", node.Line)
}

// MarshalYAML writes a lone identifier back as a scalar.
func (l License) MarshalYAML() (interface{}, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}

func (l License) String() string {
	return strings.Join(l, ", ")
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown node"
}
