// Package textnorm canonicalizes display strings for comparison.
//
// Catalog sites and tracking services rarely agree on the exact spelling of
// an artist or release: diacritics, casing, punctuation, and conjunction
// style all drift between sources. Normalize folds all of that into a single
// canonical form so that two spellings of the same name compare equal. The
// output also doubles as the text fed to the search index, so every query
// string must pass through Normalize before it reaches index lookups.
package textnorm
