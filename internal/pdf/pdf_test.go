package pdf

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare",
			text: "Cite this work as 10.5281/zenodo.5119389",
			want: "10.5281/zenodo.5119389",
		},
		{
			name: "trailing period trimmed",
			text: "available at https://doi.org/10.5194/gmd-15-5371-2022.",
			want: "10.5194/gmd-15-5371-2022",
		},
		{
			name: "trailing parenthesis trimmed",
			text: "(see 10.1029/2018WR022958)",
			want: "10.1029/2018WR022958",
		},
		{
			name: "first of several wins",
			text: "DOI 10.5194/gmd-15-5371-2022 supersedes 10.5194/gmd-2021-344",
			want: "10.5194/gmd-15-5371-2022",
		},
		{
			name: "bare prefix skipped",
			text: "(prefix 10.5281/) mints records like 10.5281/zenodo.5119389",
			want: "10.5281/zenodo.5119389",
		},
		{
			name: "no doi",
			text: "This page intentionally left blank.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsPlausibleDOI(t *testing.T) {
	tests := []struct {
		doi  string
		want bool
	}{
		{"10.5281/zenodo.5119389", true},
		{"10.5281/", false},
		{"10.52", false},
		{"11.5281/zenodo.1", false},
	}

	for _, tt := range tests {
		if got := isPlausibleDOI(tt.doi); got != tt.want {
			t.Errorf("isPlausibleDOI(%q) = %v, want %v", tt.doi, got, tt.want)
		}
	}
}

func TestTitleFromContent(t *testing.T) {
	content := pdf.Content{
		Text: []pdf.Text{
			{FontSize: 9, Y: 780, S: "Geosci. Model Dev., 15, 5371-5390, 2022"},
			{FontSize: 18, Y: 700, S: "The eWaterCycle platform for open and"},
			{FontSize: 18, Y: 678, S: "FAIR hydrological collaboration"},
			{FontSize: 11, Y: 640, S: "Rolf Hut, Niels Drost, Nick van de Giesen"},
			{FontSize: 10, Y: 600, S: "Abstract. Hutton et al. (2016) argued that computational"},
		},
	}

	want := "The eWaterCycle platform for open and FAIR hydrological collaboration"
	if got := titleFromContent(content); got != want {
		t.Errorf("titleFromContent() = %q, want %q", got, want)
	}
}

func TestTitleFromContentRejectsShortRuns(t *testing.T) {
	// A drop cap set larger than everything else should not become the title
	content := pdf.Content{
		Text: []pdf.Text{
			{FontSize: 36, Y: 700, S: "T"},
			{FontSize: 11, Y: 700, S: "he rest of the opening sentence."},
		},
	}
	if got := titleFromContent(content); got != "" {
		t.Errorf("titleFromContent() = %q, want empty", got)
	}
}

func TestTitleFromContentEmpty(t *testing.T) {
	if got := titleFromContent(pdf.Content{}); got != "" {
		t.Errorf("titleFromContent(empty) = %q, want empty", got)
	}
}

func TestFirstSubstantialLine(t *testing.T) {
	text := "Journal of Open Research Software\n" +
		"\n" +
		"The eWaterCycle platform for open and FAIR hydrological collaboration\n" +
		"Rolf Hut et al.\n"

	want := "The eWaterCycle platform for open and FAIR hydrological collaboration"
	if got := firstSubstantialLine(text); got != want {
		t.Errorf("firstSubstantialLine() = %q, want %q", got, want)
	}
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Journal of Hydrology", true},
		{"Volume 15, Issue 13", true},
		{"Copyright 2022 the authors", true},
		{"Article first published online", true},
		{"The eWaterCycle platform for FAIR hydrology", false},
	}

	for _, tt := range tests {
		if got := isHeaderLine(tt.line); got != tt.want {
			t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestExtractDOIMissingFile(t *testing.T) {
	if _, err := ExtractDOI("testdata/does-not-exist.pdf"); err == nil {
		t.Error("ExtractDOI() should fail for a missing file")
	}
}
