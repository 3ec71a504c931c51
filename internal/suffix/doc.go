// Package suffix isolates trailing bracketed qualifiers from release titles.
//
// A qualifier is either an edition marker ("Deluxe Edition", "Remastered")
// or a numbered marker ("Vol. 2", "Part III", "Volume Two"). The extractor
// reports the matched bracket content, the title with the qualifier removed,
// the set of recognized keywords inside it, and for numbered qualifiers the
// resolved numeric value. Numbers are parsed from digits, roman
// numerals, or spelled-out English number words, in that order.
package suffix
