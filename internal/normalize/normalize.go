// Package normalize reduces free-text answers to a comparable form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Decompose, drop combining marks and everything that is not a letter or
// digit, then recompose. Filtering happens before NFC so that conjoining
// jamo separated by punctuation compose in a single pass.
var clean = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})),
	norm.NFC,
)

// Normalize trims, lowercases, strips diacritics and removes everything that
// is not a letter or digit. Hangul letters are kept.
func Normalize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	out, _, err := transform.String(clean, s)
	if err != nil {
		return ""
	}
	return out
}

// Equal reports whether two answers normalize to the same string.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
