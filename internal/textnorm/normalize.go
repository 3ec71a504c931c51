package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ConjunctionAndWord selects the canonical spelling of the ampersand
// conjunction. When true, " & " is rewritten to " and "; when false the
// rewrite runs in the opposite direction. Sources disagree on which form is
// canonical, so the direction lives in one place.
const ConjunctionAndWord = true

// droppedRunes removes punctuation that carries no identity: periods,
// underscores, quotation marks, backslashes, colons, commas, and brackets.
var droppedRunes = strings.NewReplacer(
	".", "",
	"_", "",
	`"`, "",
	"“", "",
	"”", "",
	"'", "",
	"‘", "",
	"’", "",
	"\\", "",
	":", "",
	",", "",
	"(", "",
	")", "",
	"[", "",
	"]", "",
	"{", "",
	"}", "",
)

// abbreviations maps space-delimited shorthand tokens to their expansions.
var abbreviations = map[string]string{
	"pt":  "part",
	"vol": "volume",
}

// Normalize canonicalizes a display string for comparison. It strips
// diacritical marks, lowercases, rewrites the ampersand conjunction, drops
// identity-free punctuation, collapses freestanding hyphens and repeated
// whitespace, and expands the "pt"/"vol" abbreviations. The result is
// deterministic and idempotent; empty input normalizes to "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = stripMarks(s)
	s = strings.ToLower(s)
	s = replaceConjunction(s)
	s = droppedRunes.Replace(s)

	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if f == "-" {
			continue
		}
		if expanded, ok := abbreviations[f]; ok {
			f = expanded
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// SearchText builds the text indexed for one record: the normalized title,
// artist name, and localized artist name joined in that fixed order. Empty
// fields are skipped.
func SearchText(title, artist, artistLocalized string) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{title, artist, artistLocalized} {
		if n := Normalize(s); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}

func replaceConjunction(s string) string {
	if ConjunctionAndWord {
		return strings.ReplaceAll(s, " & ", " and ")
	}
	return strings.ReplaceAll(s, " and ", " & ")
}

// stripMarks decomposes to NFD and drops combining marks, so that accented
// characters compare equal to their base letters.
func stripMarks(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
