package match

import (
	"regexp"
	"strings"

	"stylus/internal/suffix"
	"stylus/internal/textnorm"
)

// featSplit breaks multi-artist combination strings on featuring markers.
// Splitting runs on normalized text, so the ampersand conjunction has
// already been rewritten to "and" by the time it is applied.
var featSplit = regexp.MustCompile(`\s+(?:feat|featuring|ft|and|with|vs)\s+`)

// Target is the query-side description of what is being searched for: the
// candidate artist-name variants, an optional release title, and an
// optional track title, each carried in raw and normalized form. Derived
// fields are computed once at construction.
type Target struct {
	ArtistVariants []string

	Title       string
	TitleNorm   string
	TitleSuffix suffix.Result

	Track     string
	TrackNorm string
}

// NewTarget builds a Target from artist name strings and optional release
// and track titles. Each artist string contributes its normalized form plus
// every featuring-split sub-string, deduplicated.
func NewTarget(artists []string, title, track string) *Target {
	t := &Target{
		Title:     strings.TrimSpace(title),
		Track:     strings.TrimSpace(track),
		TitleNorm: textnorm.Normalize(title),
		TrackNorm: textnorm.Normalize(track),
	}
	if t.Title != "" {
		t.TitleSuffix = suffix.Extract(t.Title)
	}

	seen := make(map[string]struct{})
	for _, artist := range artists {
		for _, variant := range artistVariants(artist) {
			if _, dup := seen[variant]; dup {
				continue
			}
			seen[variant] = struct{}{}
			t.ArtistVariants = append(t.ArtistVariants, variant)
		}
	}
	return t
}

// WithTitle returns a copy of the target describing a different release
// title, keeping the artist variants. Used for fallback-title retries.
func (t *Target) WithTitle(title string) *Target {
	clone := *t
	clone.Title = strings.TrimSpace(title)
	clone.TitleNorm = textnorm.Normalize(title)
	clone.TitleSuffix = suffix.Result{}
	if clone.Title != "" {
		clone.TitleSuffix = suffix.Extract(clone.Title)
	}
	return &clone
}

// artistVariants expands one artist string into its normalized form and the
// normalized sub-strings around featuring markers.
func artistVariants(artist string) []string {
	normalized := textnorm.Normalize(artist)
	if normalized == "" {
		return nil
	}
	variants := []string{normalized}
	for _, part := range featSplit.Split(normalized, -1) {
		part = strings.TrimSpace(part)
		if part != "" && part != normalized {
			variants = append(variants, part)
		}
	}
	return variants
}
