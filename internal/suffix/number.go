package suffix

import (
	"strconv"
	"strings"
)

// resolveNumber parses a numeric value from cleaned suffix text. Parse
// strategies are attempted in order: direct integer, roman numerals,
// spelled-out number words. The first success wins.
func resolveNumber(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	if value, err := strconv.Atoi(text); err == nil {
		return value, true
	}
	if value, ok := parseRoman(text); ok {
		return value, true
	}
	return parseNumberWords(text)
}

var romanDigits = map[rune]int{
	'i': 1,
	'v': 5,
	'x': 10,
	'l': 50,
	'c': 100,
	'd': 500,
	'm': 1000,
}

// parseRoman evaluates a roman numeral with the standard subtractive rule.
// Any non-roman character rejects the whole string.
func parseRoman(text string) (int, bool) {
	text = strings.ToLower(text)
	total := 0
	prev := 0
	for _, r := range text {
		value, ok := romanDigits[r]
		if !ok {
			return 0, false
		}
		total += value
		if prev < value {
			total -= 2 * prev
		}
		prev = value
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}

// numberWords maps cardinal English number words to their values.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19, "twenty": 20, "thirty": 30,
	"forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
	"eighty": 80, "ninety": 90,
}

// parseNumberWords evaluates spelled-out English numbers up to the
// thousands, with multiplicative handling of "hundred" and "thousand":
// "two hundred five" is 205, "one thousand" is 1000. "and" is ignored.
func parseNumberWords(text string) (int, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	total := 0
	current := 0
	matched := false
	for _, w := range words {
		switch w {
		case "and":
			continue
		case "hundred":
			if current == 0 {
				current = 1
			}
			current *= 100
			matched = true
		case "thousand":
			if current == 0 {
				current = 1
			}
			total += current * 1000
			current = 0
			matched = true
		default:
			value, ok := numberWords[w]
			if !ok {
				return 0, false
			}
			current += value
			matched = true
		}
	}
	if !matched {
		return 0, false
	}
	return total + current, true
}
