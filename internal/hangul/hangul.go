// Package hangul handles Hangul syllable arithmetic and difficulty buckets.
package hangul

import "github.com/f3rmion/kword/internal/kword"

// Syllable block bounds. The block proper ends at U+D7A3; U+D7A4–U+D7AF are
// unassigned but counted as syllables so the range matches the dictionary
// tooling the word lists were built with.
const (
	SyllableFirst rune = 0xAC00
	SyllableLast  rune = 0xD7AF

	lastComposed rune = 0xD7A3
)

const (
	medialCount = 21
	finalCount  = 28
)

// IsSyllable reports whether r is in the Hangul syllable block.
func IsSyllable(r rune) bool {
	return r >= SyllableFirst && r <= SyllableLast
}

// SyllableCount returns the number of Hangul syllables in s.
func SyllableCount(s string) int {
	n := 0
	for _, r := range s {
		if IsSyllable(r) {
			n++
		}
	}
	return n
}

// ContainsHangul reports whether s has at least one Hangul syllable.
func ContainsHangul(s string) bool {
	for _, r := range s {
		if IsSyllable(r) {
			return true
		}
	}
	return false
}

// Jamo holds the positional indices of a composed syllable.
// Final is 0 when the syllable has no final consonant.
type Jamo struct {
	Initial int // 0..18
	Medial  int // 0..20
	Final   int // 0..27
}

// Decompose splits a composed syllable into its jamo indices.
// ok is false for runes outside U+AC00–U+D7A3.
func Decompose(r rune) (j Jamo, ok bool) {
	if r < SyllableFirst || r > lastComposed {
		return Jamo{}, false
	}
	idx := int(r - SyllableFirst)
	return Jamo{
		Initial: idx / (medialCount * finalCount),
		Medial:  (idx % (medialCount * finalCount)) / finalCount,
		Final:   idx % finalCount,
	}, true
}

// Bucket returns the narrowest difficulty whose pool contains word.
// Words that are neither easy nor hard only appear in the normal pool.
func Bucket(word string) kword.Difficulty {
	switch n := SyllableCount(word); {
	case n == 2:
		return kword.DifficultyEasy
	case n >= 3:
		return kword.DifficultyHard
	default:
		return kword.DifficultyNormal
	}
}

// InPool reports whether word belongs to the pool for difficulty d.
func InPool(word string, d kword.Difficulty) bool {
	switch d {
	case kword.DifficultyEasy:
		return SyllableCount(word) == 2
	case kword.DifficultyHard:
		return SyllableCount(word) >= 3
	default:
		return true
	}
}
