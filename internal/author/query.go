// Package author provides author name parsing and matching for search queries.
package author

import (
	"strings"

	"github.com/cffkit/cffkit/internal/cff"
)

// Query represents a parsed author search query.
type Query struct {
	Given  string // Given name (may be empty for family-name-only queries)
	Family string // Family name (required)
}

// ParseQuery parses an author search string into a structured Query.
//
// Supported formats:
//   - "Hut"             → family="Hut" (single word = family name only)
//   - "Rolf Hut"        → given="Rolf", family="Hut" (space-separated = Given Family)
//   - "Hut, Rolf"       → given="Rolf", family="Hut" (comma = Family, Given)
//   - "Nick van de Giesen" → given="Nick", family="van de Giesen"
//
// Names are trimmed but case is preserved (matching is case-insensitive).
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	// Comma format: "Family, Given"
	if idx := strings.Index(input, ","); idx > 0 {
		family := strings.TrimSpace(input[:idx])
		given := strings.TrimSpace(input[idx+1:])
		return Query{Given: given, Family: family}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Query{Family: parts[0]}
	}

	// Lowercase words before the final one are name particles and stay
	// with the family name, so "Nick van de Giesen" splits into
	// given="Nick", family="van de Giesen".
	split := len(parts) - 1
	for split > 1 && isParticle(parts[split-1]) {
		split--
	}
	return Query{
		Given:  strings.Join(parts[:split], " "),
		Family: strings.Join(parts[split:], " "),
	}
}

func isParticle(word string) bool {
	return word != "" && word == strings.ToLower(word)
}

// Matches checks if the query matches a given author.
//
// Matching rules:
//   - Family name: case-insensitive exact match against the bare family
//     name or the particle+family form (required)
//   - Given name: case-insensitive prefix match (if query has one)
//   - Entity authors match family-only queries by substring on the name
//
// This lets "Rol Hut" match "Rolf Hut" while both "Giesen" and
// "van de Giesen" find Nick van de Giesen.
func (q Query) Matches(a cff.Author) bool {
	if a.IsEntity() {
		if q.Given != "" {
			return false
		}
		return strings.Contains(strings.ToLower(a.Name), strings.ToLower(q.Family))
	}

	if !strings.EqualFold(q.Family, a.FamilyNames) && !strings.EqualFold(q.Family, a.Family()) {
		return false
	}

	if q.Given == "" {
		return true
	}

	// "Tim" matches "Timothy", "Timothy C", etc.
	return strings.HasPrefix(
		strings.ToLower(a.GivenNames),
		strings.ToLower(q.Given),
	)
}

// MatchesAny checks if the query matches any author in the list.
func (q Query) MatchesAny(authors []cff.Author) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch checks if all queries match at least one author each.
// This implements AND logic for multiple author filters.
func AllMatch(queries []Query, authors []cff.Author) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}
