package match

import (
	"strings"

	"stylus/internal/suffix"
	"stylus/internal/textnorm"
)

// ArtistCandidate carries the name fields of a scraped or stored artist.
type ArtistCandidate struct {
	Name          string
	NameLocalized string
	Aliases       []string
}

// ReleaseCandidate carries the fields of a scraped or stored release.
type ReleaseCandidate struct {
	Artists []ArtistCandidate
	Title   string
}

// SongCandidate carries the fields of a scraped or stored song.
type SongCandidate struct {
	Artists []ArtistCandidate
	Track   string
}

// Artist classifies a candidate artist against the target's name variants.
// Full requires exact normalized equality between any candidate name or
// alias and any target variant; Partial allows one side to carry one extra
// leading or trailing word, or a plain substring overlap.
func Artist(cand ArtistCandidate, t *Target) Classification {
	names := candidateNames(cand)
	best := None
	for _, name := range names {
		for _, variant := range t.ArtistVariants {
			if name == variant {
				return Full
			}
			if partialMatch(name, variant, true) {
				best = Partial
			}
		}
	}
	return best
}

// Release classifies a candidate release. Both the artist set and the title
// must match; the overall classification is the weaker of the two signals
// and is Full only when both are Full.
func Release(cand ReleaseCandidate, t *Target) Classification {
	artistClass := bestArtist(cand.Artists, t)
	if artistClass == None {
		return None
	}
	titleClass := Title(cand.Title, t)
	if titleClass == None {
		return None
	}
	return weaker(artistClass, titleClass)
}

// Song classifies a candidate song: artist set plus track title, combined
// with the same weaker-of rule as releases.
func Song(cand SongCandidate, t *Target) Classification {
	artistClass := bestArtist(cand.Artists, t)
	if artistClass == None {
		return None
	}
	candTrack := textnorm.Normalize(cand.Track)
	if candTrack == "" || t.TrackNorm == "" {
		return None
	}
	if candTrack == t.TrackNorm {
		return weaker(artistClass, Full)
	}
	if partialMatch(candTrack, t.TrackNorm, true) {
		return Partial
	}
	return None
}

// Title classifies a candidate release title against the target title.
// Exact normalized equality is Full. When either side carries an extracted
// suffix, the suffix-free bases are compared first and the suffix signals
// decide the rest: agreeing keyword sets with agreeing numeric values
// promote matching bases to Full, while disagreement caps the result at
// Partial. A candidate whose suffix-free base fully matches a target that
// has no suffix of its own is promoted to Full.
func Title(candTitle string, t *Target) Classification {
	candNorm := textnorm.Normalize(candTitle)
	if candNorm == "" || t.TitleNorm == "" {
		return None
	}
	if candNorm == t.TitleNorm {
		return Full
	}

	candSuffix := suffix.Extract(candTitle)
	targetSuffix := t.TitleSuffix

	if !candSuffix.HasSuffix() && !targetSuffix.HasSuffix() {
		if partialMatch(candNorm, t.TitleNorm, false) {
			return Partial
		}
		return None
	}

	candBase := textnorm.Normalize(candSuffix.Base)
	targetBase := textnorm.Normalize(targetSuffix.Base)

	baseClass := None
	switch {
	case candBase == targetBase && candBase != "":
		baseClass = Full
	case partialMatch(candBase, targetBase, false):
		baseClass = Partial
	}
	if baseClass == None {
		return None
	}

	switch {
	case candSuffix.HasSuffix() && targetSuffix.HasSuffix():
		if suffixesAgree(candSuffix, targetSuffix) {
			return Full
		}
		return Partial
	case candSuffix.HasSuffix():
		// Target carries no suffix: a fully matching cleaned title is
		// treated as the same release, qualifier notwithstanding.
		if baseClass == Full {
			return Full
		}
		return Partial
	default:
		return Partial
	}
}

// suffixesAgree reports whether two suffixes carry the same keyword set and
// the same numeric value (or agree that none is present).
func suffixesAgree(a, b suffix.Result) bool {
	if !suffix.KeywordsEqual(a, b) {
		return false
	}
	if a.HasNumber != b.HasNumber {
		return false
	}
	return !a.HasNumber || a.Number == b.Number
}

// bestArtist returns the strongest artist classification over the
// candidate's artist set.
func bestArtist(artists []ArtistCandidate, t *Target) Classification {
	best := None
	for _, artist := range artists {
		class := Artist(artist, t)
		if class > best {
			best = class
		}
		if best == Full {
			break
		}
	}
	return best
}

func candidateNames(cand ArtistCandidate) []string {
	names := make([]string, 0, 2+len(cand.Aliases))
	for _, raw := range append([]string{cand.Name, cand.NameLocalized}, cand.Aliases...) {
		if n := textnorm.Normalize(raw); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// partialMatch implements the generic partial rule shared by all entity
// kinds: two normalized strings partially match when one equals the other
// plus a trailing or leading word. When relaxed, a plain substring overlap
// also qualifies.
func partialMatch(a, b string, relaxed bool) bool {
	if a == "" || b == "" || a == b {
		return false
	}
	if strings.HasPrefix(a, b+" ") || strings.HasSuffix(a, " "+b) {
		return true
	}
	if strings.HasPrefix(b, a+" ") || strings.HasSuffix(b, " "+a) {
		return true
	}
	if relaxed {
		return strings.Contains(a, b) || strings.Contains(b, a)
	}
	return false
}
