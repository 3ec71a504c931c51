package suffix

import (
	"regexp"
	"sort"
	"strings"
)

// Kind classifies a recognized suffix keyword.
type Kind int

const (
	// KindEdition marks release-variant qualifiers such as "deluxe".
	KindEdition Kind = iota
	// KindNumbered marks sequence qualifiers such as "volume".
	KindNumbered
)

// keywordDef binds a suffix keyword to its kind and canonical label. The
// table is the single source of truth for qualifier detection; abbreviated
// spellings canonicalize to their long form so that "Vol. 2" and
// "Volume 2" report the same keyword set.
type keywordDef struct {
	keyword   string
	canonical string
	kind      Kind
}

// keywordDefs lists every recognized suffix keyword. "edition" marks
// edition phrases ("Deluxe Edition") and can also lead a numbered phrase
// ("Edition 2"), which is resolved by whether a number follows.
var keywordDefs = []keywordDef{
	{"deluxe", "deluxe", KindEdition},
	{"remaster", "remastered", KindEdition},
	{"remastered", "remastered", KindEdition},
	{"anniversary", "anniversary", KindEdition},
	{"special", "special", KindEdition},
	{"expanded", "expanded", KindEdition},
	{"legacy", "legacy", KindEdition},
	{"bonus", "bonus", KindEdition},
	{"edition", "edition", KindEdition},
	{"part", "part", KindNumbered},
	{"pt", "part", KindNumbered},
	{"volume", "volume", KindNumbered},
	{"vol", "volume", KindNumbered},
	{"chapter", "chapter", KindNumbered},
}

var (
	keywordCanonical = func() map[string]string {
		canon := make(map[string]string, len(keywordDefs))
		for _, def := range keywordDefs {
			canon[def.keyword] = def.canonical
		}
		return canon
	}()
	keywordKinds = func() map[string]Kind {
		kinds := make(map[string]Kind, len(keywordDefs))
		for _, def := range keywordDefs {
			kinds[def.canonical] = def.kind
		}
		return kinds
	}()
)

// trailingBracket matches a trailing parenthesized or bracketed group.
var trailingBracket = regexp.MustCompile(`\s*[(\[]([^()\[\]]+)[)\]]\s*$`)

// Result describes the outcome of extracting a suffix from a title.
type Result struct {
	// Suffix is the matched bracket content, empty when no qualifier matched.
	Suffix string
	// Base is the title with the suffix removed and trimmed. When no
	// qualifier matched it is the trimmed input title.
	Base string
	// Keywords is the sorted set of recognized keywords found in the suffix.
	Keywords []string
	// Number is the resolved numeric value of a numbered qualifier.
	// Valid only when HasNumber is true; absence is not zero.
	Number int
	// HasNumber reports whether a numeric value was resolved.
	HasNumber bool
}

// HasSuffix reports whether a qualifier was extracted.
func (r Result) HasSuffix() bool {
	return r.Suffix != ""
}

// HasKind reports whether any recognized keyword of the given kind appears
// in the suffix.
func (r Result) HasKind(kind Kind) bool {
	for _, kw := range r.Keywords {
		if keywordKinds[kw] == kind {
			return true
		}
	}
	return false
}

// KeywordsEqual reports whether two results found the same keyword set,
// independent of order.
func KeywordsEqual(a, b Result) bool {
	if len(a.Keywords) != len(b.Keywords) {
		return false
	}
	for i := range a.Keywords {
		if a.Keywords[i] != b.Keywords[i] {
			return false
		}
	}
	return true
}

// Extract isolates a trailing bracketed qualifier from a release title.
// Brackets without any recognized keyword (for example "(Live at Wembley)")
// are not treated as qualifiers and stay part of the base title.
func Extract(title string) Result {
	trimmed := strings.TrimSpace(title)
	res := Result{Base: trimmed}
	if trimmed == "" {
		return res
	}

	loc := trailingBracket.FindStringSubmatchIndex(trimmed)
	if loc == nil {
		return res
	}
	content := strings.TrimSpace(trimmed[loc[2]:loc[3]])
	if content == "" {
		return res
	}

	words := suffixWords(content)
	var keywords []string
	var rest []string
	seen := make(map[string]struct{})
	for _, w := range words {
		if canon, ok := keywordCanonical[w]; ok {
			if _, dup := seen[canon]; !dup {
				seen[canon] = struct{}{}
				keywords = append(keywords, canon)
			}
			continue
		}
		rest = append(rest, w)
	}
	if len(keywords) == 0 {
		return res
	}
	sort.Strings(keywords)

	res.Suffix = content
	res.Base = strings.TrimSpace(trimmed[:loc[0]])
	res.Keywords = keywords

	if value, ok := resolveNumber(strings.Join(rest, " ")); ok {
		res.Number = value
		res.HasNumber = true
	}
	return res
}

// suffixWords lowercases bracket content and splits it into words with
// periods stripped, so "Vol." and "Pt." match their keywords.
func suffixWords(content string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ':':
			return -1
		}
		return r
	}, strings.ToLower(content))
	return strings.Fields(cleaned)
}
