package catalog

import (
	"fmt"

	"stylus/internal/textnorm"
)

// OwnershipStatus enumerates how a release relates to the user's collection.
type OwnershipStatus string

const (
	OwnershipInCollection OwnershipStatus = "in-collection"
	OwnershipWishlist     OwnershipStatus = "on-wishlist"
	OwnershipUsedToOwn    OwnershipStatus = "used-to-own"
	OwnershipNotCataloged OwnershipStatus = "not-cataloged"
)

// ValidOwnership reports whether the value is a known ownership status.
func ValidOwnership(s OwnershipStatus) bool {
	switch s {
	case OwnershipInCollection, OwnershipWishlist, OwnershipUsedToOwn, OwnershipNotCataloged:
		return true
	}
	return false
}

// Format enumerates the physical or digital format of a cataloged release.
// Empty means unknown.
type Format string

const (
	FormatCD       Format = "cd"
	FormatVinyl    Format = "vinyl"
	FormatCassette Format = "cassette"
	FormatDigital  Format = "digital"
)

// RatingMax is the upper bound of the rating scale; zero means unrated.
const RatingMax = 10

// Record is one cataloged release known to the local store.
type Record struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	ArtistName          string `json:"artist_name"`
	ArtistNameLocalized string `json:"artist_name_localized,omitempty"`

	// Normalized forms are derived from the display fields above and
	// recomputed by Normalize whenever a source field changes.
	NormalizedTitle               string `json:"normalized_title"`
	NormalizedArtistName          string `json:"normalized_artist_name"`
	NormalizedArtistNameLocalized string `json:"normalized_artist_name_localized,omitempty"`

	Rating      int             `json:"rating"`
	Ownership   OwnershipStatus `json:"ownership"`
	Format      Format          `json:"format,omitempty"`
	ReleaseYear int             `json:"release_year,omitempty"`
}

// Normalize recomputes the derived comparison fields from their source
// fields.
func (r *Record) Normalize() {
	r.NormalizedTitle = textnorm.Normalize(r.Title)
	r.NormalizedArtistName = textnorm.Normalize(r.ArtistName)
	r.NormalizedArtistNameLocalized = textnorm.Normalize(r.ArtistNameLocalized)
}

// SearchText returns the text this record is indexed under: normalized
// title, artist name, and localized artist name in that fixed order.
func (r *Record) SearchText() string {
	return textnorm.SearchText(r.Title, r.ArtistName, r.ArtistNameLocalized)
}

// Discardable reports whether a record no longer carries catalog value:
// ownership reverted to not-cataloged and no rating remains. Such records
// are deleted instead of updated.
func (r *Record) Discardable() bool {
	return r.Ownership == OwnershipNotCataloged && r.Rating == 0
}

// Validate checks the invariants a record must satisfy before it is stored.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id must not be empty")
	}
	if r.Title == "" {
		return fmt.Errorf("record %s: title must not be empty", r.ID)
	}
	if r.ArtistName == "" {
		return fmt.Errorf("record %s: artist name must not be empty", r.ID)
	}
	if r.Rating < 0 || r.Rating > RatingMax {
		return fmt.Errorf("record %s: rating %d outside [0, %d]", r.ID, r.Rating, RatingMax)
	}
	if r.Ownership == "" {
		r.Ownership = OwnershipNotCataloged
	}
	if !ValidOwnership(r.Ownership) {
		return fmt.Errorf("record %s: unknown ownership status %q", r.ID, r.Ownership)
	}
	return nil
}
