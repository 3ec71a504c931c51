package library

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"stylus/internal/catalog"
	"stylus/internal/match"
)

// Match pairs a record with its classification against the query. Result
// slices are ordered full-before-partial, preserving index discovery order
// within each class.
type Match struct {
	Record         *catalog.Record      `json:"record"`
	Classification match.Classification `json:"classification"`
}

// GetByArtist returns the records whose artist matches the given name:
// index hits filtered through the artist validator.
func (s *Service) GetByArtist(ctx context.Context, artist string) ([]*catalog.Record, error) {
	if strings.TrimSpace(artist) == "" {
		return nil, fmt.Errorf("%w: artist must not be empty", ErrInvalidPayload)
	}
	candidates, err := s.searchIndex(ctx, artist)
	if err != nil {
		return nil, err
	}

	target := match.NewTarget([]string{artist}, "", "")
	var matched []*catalog.Record
	for _, record := range candidates {
		if match.Artist(artistCandidate(record), target) != match.None {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// GetByArtists runs GetByArtist for each name and returns a name-keyed map
// of the results.
func (s *Service) GetByArtists(ctx context.Context, artists []string) (map[string][]*catalog.Record, error) {
	if len(artists) == 0 {
		return nil, fmt.Errorf("%w: artists must not be empty", ErrInvalidPayload)
	}
	results := make(map[string][]*catalog.Record, len(artists))
	for _, artist := range artists {
		records, err := s.GetByArtist(ctx, artist)
		if err != nil {
			return nil, err
		}
		results[artist] = records
	}
	return results, nil
}

// GetByArtistAndTitle searches records by artist and classifies each hit
// against the release title. When no hit classifies, the fallback title is
// tried, then a per-word inclusion pass. Results are ordered full before
// partial; within a class, index discovery order is preserved.
func (s *Service) GetByArtistAndTitle(ctx context.Context, artist, title, titleFallback string) ([]Match, error) {
	if strings.TrimSpace(artist) == "" || strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: artist and title must not be empty", ErrInvalidPayload)
	}
	candidates, err := s.searchIndex(ctx, artist)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	target := match.NewTarget([]string{artist}, title, "")
	matches := classifyReleases(candidates, target)
	if len(matches) == 0 && strings.TrimSpace(titleFallback) != "" {
		matches = classifyReleases(candidates, target.WithTitle(titleFallback))
	}
	if len(matches) == 0 {
		matches = wordInclusionMatches(candidates, target)
	}

	sortMatches(matches)
	return matches, nil
}

func classifyReleases(candidates []*catalog.Record, target *match.Target) []Match {
	var matches []Match
	for _, record := range candidates {
		cand := match.ReleaseCandidate{
			Artists: []match.ArtistCandidate{{
				Name:          record.ArtistName,
				NameLocalized: record.ArtistNameLocalized,
			}},
			Title: record.Title,
		}
		if class := match.Release(cand, target); class != match.None {
			matches = append(matches, Match{Record: record, Classification: class})
		}
	}
	return matches
}

// wordInclusionMatches is the last-resort pass: a candidate whose artist
// matches and whose normalized title contains every word of the target
// title is reported as a partial match.
func wordInclusionMatches(candidates []*catalog.Record, target *match.Target) []Match {
	words := strings.Fields(target.TitleNorm)
	if len(words) == 0 {
		return nil
	}
	var matches []Match
	for _, record := range candidates {
		if match.Artist(artistCandidate(record), target) == match.None {
			continue
		}
		haystack := record.NormalizedTitle
		included := true
		for _, word := range words {
			if !strings.Contains(haystack, word) {
				included = false
				break
			}
		}
		if included {
			matches = append(matches, Match{Record: record, Classification: match.Partial})
		}
	}
	return matches
}

func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Classification > matches[j].Classification
	})
}

func artistCandidate(record *catalog.Record) match.ArtistCandidate {
	return match.ArtistCandidate{
		Name:          record.ArtistName,
		NameLocalized: record.ArtistNameLocalized,
	}
}
