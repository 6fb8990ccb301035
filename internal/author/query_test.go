package author

import (
	"testing"

	"github.com/cffkit/cffkit/internal/cff"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Query
	}{
		{
			name:  "single word is family name",
			input: "Hut",
			want:  Query{Family: "Hut"},
		},
		{
			name:  "two words is Given Family",
			input: "Rolf Hut",
			want:  Query{Given: "Rolf", Family: "Hut"},
		},
		{
			name:  "comma format: Family, Given",
			input: "Hut, Rolf",
			want:  Query{Given: "Rolf", Family: "Hut"},
		},
		{
			name:  "comma format with spaces",
			input: "Hut,  Rolf W",
			want:  Query{Given: "Rolf W", Family: "Hut"},
		},
		{
			name:  "particles stay with the family name",
			input: "Nick van de Giesen",
			want:  Query{Given: "Nick", Family: "van de Giesen"},
		},
		{
			name:  "single particle",
			input: "Berend van Werkhoven",
			want:  Query{Given: "Berend", Family: "van Werkhoven"},
		},
		{
			name:  "middle initial is part of the given name",
			input: "Jaro S Camphuijsen",
			want:  Query{Given: "Jaro S", Family: "Camphuijsen"},
		},
		{
			name:  "leading/trailing whitespace",
			input: "  Drost  ",
			want:  Query{Family: "Drost"},
		},
		{
			name:  "empty string",
			input: "",
			want:  Query{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  Query{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.input)
			if got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestQueryMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  Query
		author cff.Author
		want   bool
	}{
		{
			name:   "exact family name match",
			query:  Query{Family: "Hut"},
			author: cff.Author{GivenNames: "Rolf", FamilyNames: "Hut"},
			want:   true,
		},
		{
			name:   "family name case insensitive",
			query:  Query{Family: "hut"},
			author: cff.Author{GivenNames: "Rolf", FamilyNames: "Hut"},
			want:   true,
		},
		{
			name:   "family name no partial match",
			query:  Query{Family: "Hut"},
			author: cff.Author{GivenNames: "Rolf", FamilyNames: "Hutton"},
			want:   false,
		},
		{
			name:   "given and family match",
			query:  Query{Given: "Rolf", Family: "Hut"},
			author: cff.Author{GivenNames: "Rolf", FamilyNames: "Hut"},
			want:   true,
		},
		{
			name:   "given name prefix match",
			query:  Query{Given: "Rol", Family: "Hut"},
			author: cff.Author{GivenNames: "Rolf", FamilyNames: "Hut"},
			want:   true,
		},
		{
			name:   "given name mismatch",
			query:  Query{Given: "Niels", Family: "Hut"},
			author: cff.Author{GivenNames: "Rolf", FamilyNames: "Hut"},
			want:   false,
		},
		{
			name:   "bare family name matches despite particle",
			query:  Query{Family: "Giesen"},
			author: cff.Author{GivenNames: "Nick", FamilyNames: "Giesen", NameParticle: "van de"},
			want:   true,
		},
		{
			name:   "particle form matches too",
			query:  Query{Family: "van de Giesen"},
			author: cff.Author{GivenNames: "Nick", FamilyNames: "Giesen", NameParticle: "van de"},
			want:   true,
		},
		{
			name:   "particle form case insensitive",
			query:  Query{Family: "Van De Giesen"},
			author: cff.Author{GivenNames: "Nick", FamilyNames: "Giesen", NameParticle: "van de"},
			want:   true,
		},
		{
			name:   "entity matched by substring",
			query:  Query{Family: "eScience"},
			author: cff.Author{Name: "Netherlands eScience Center"},
			want:   true,
		},
		{
			name:   "entity ignores given-name queries",
			query:  Query{Given: "Netherlands", Family: "Center"},
			author: cff.Author{Name: "Netherlands eScience Center"},
			want:   false,
		},
		{
			name:   "entity no match",
			query:  Query{Family: "SURF"},
			author: cff.Author{Name: "Netherlands eScience Center"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.Matches(tt.author)
			if got != tt.want {
				t.Errorf("Query%+v.Matches(%+v) = %v, want %v", tt.query, tt.author, got, tt.want)
			}
		})
	}
}

func TestQueryMatchesAny(t *testing.T) {
	authors := []cff.Author{
		{GivenNames: "Stefan", FamilyNames: "Verhoeven"},
		{GivenNames: "Niels", FamilyNames: "Drost"},
		{GivenNames: "Nick", FamilyNames: "Giesen", NameParticle: "van de"},
	}

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{
			name:  "matches first author",
			query: Query{Family: "Verhoeven"},
			want:  true,
		},
		{
			name:  "matches particle author",
			query: Query{Family: "van de Giesen"},
			want:  true,
		},
		{
			name:  "matches with given name",
			query: Query{Given: "Niels", Family: "Drost"},
			want:  true,
		},
		{
			name:  "no match for nonexistent author",
			query: Query{Family: "Smith"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.MatchesAny(authors)
			if got != tt.want {
				t.Errorf("Query%+v.MatchesAny() = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestAllMatch(t *testing.T) {
	authors := []cff.Author{
		{GivenNames: "Stefan", FamilyNames: "Verhoeven"},
		{GivenNames: "Niels", FamilyNames: "Drost"},
	}

	tests := []struct {
		name    string
		queries []Query
		want    bool
	}{
		{
			name:    "no queries always matches",
			queries: nil,
			want:    true,
		},
		{
			name:    "single matching query",
			queries: []Query{{Family: "Drost"}},
			want:    true,
		},
		{
			name:    "both queries match different authors",
			queries: []Query{{Family: "Verhoeven"}, {Family: "Drost"}},
			want:    true,
		},
		{
			name:    "one query misses",
			queries: []Query{{Family: "Verhoeven"}, {Family: "Hut"}},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllMatch(tt.queries, authors)
			if got != tt.want {
				t.Errorf("AllMatch(%+v) = %v, want %v", tt.queries, got, tt.want)
			}
		})
	}
}
