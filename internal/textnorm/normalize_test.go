package textnorm_test

import (
	"strings"
	"testing"

	"stylus/internal/textnorm"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase", "Abbey Road", "abbey road"},
		{"diacritics", "Sigur Rós", "sigur ros"},
		{"diacritics heavy", "Björk: Début", "bjork debut"},
		{"ampersand", "Simon & Garfunkel", "simon and garfunkel"},
		{"punctuation", "R.E.M.", "rem"},
		{"underscores", "some_title_here", "sometitlehere"},
		{"quotes", `"Heroes"`, "heroes"},
		{"apostrophe", "Don't Stop", "dont stop"},
		{"commas and colons", "Live: One, Two", "live one two"},
		{"brackets", "Title (Bonus) [Live]", "title bonus live"},
		{"dash collapse", "Signed - Sealed - Delivered", "signed sealed delivered"},
		{"whitespace collapse", "  too   many\tspaces  ", "too many spaces"},
		{"pt expansion", "Homework Pt. 2", "homework part 2"},
		{"vol expansion", "Anthology Vol 3", "anthology volume 3"},
		{"no expansion inside word", "voltage", "voltage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := textnorm.Normalize(tc.input)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Sigur Rós",
		"Simon & Garfunkel",
		"Homework Pt. 2",
		"a -  - b",
		"Mezzanine (Deluxe Edition)",
		"  Ágætis   byrjun  ",
		"The Köln Concert, Vol. 1",
	}
	for _, input := range inputs {
		once := textnorm.Normalize(input)
		twice := textnorm.Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeRemovesAmpersandConjunction(t *testing.T) {
	inputs := []string{
		"Simon & Garfunkel",
		"Iron & Wine & Friends",
		"A & B",
	}
	for _, input := range inputs {
		got := textnorm.Normalize(input)
		if strings.Contains(got, " & ") {
			t.Fatalf("Normalize(%q) = %q still contains ampersand conjunction", input, got)
		}
	}
}

func TestSearchText(t *testing.T) {
	got := textnorm.SearchText("Ágætis byrjun", "Sigur Rós", "")
	want := "agætis byrjun sigur ros"
	// The ash ligature has no combining mark to strip, so it survives as-is.
	if got != want {
		t.Fatalf("SearchText = %q, want %q", got, want)
	}

	if got := textnorm.SearchText("", "", ""); got != "" {
		t.Fatalf("SearchText of empty fields = %q, want empty", got)
	}
}
