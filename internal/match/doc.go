// Package match classifies candidate catalog items against a search target.
//
// One pure validator exists per entity kind: artist, release, and song.
// Each compares normalized strings and returns a three-valued
// Classification (Full, Partial, or None) instead of a boolean, so callers
// can rank plausible candidates and leave disambiguation to the user.
// Release and song matching combine an artist signal with a title signal
// and report the weaker of the two.
package match
