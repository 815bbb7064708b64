package hangul

import (
	"testing"

	"github.com/f3rmion/kword/internal/kword"
)

func TestSyllableCount(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"물", 1},
		{"안녕", 2},
		{"사랑해", 3},
		{"안녕 하세요", 5},
		{"TV 보다", 2},
		{"ㅋㅋ", 0}, // compatibility jamo are not syllables
	}
	for _, tt := range tests {
		if got := SyllableCount(tt.word); got != tt.want {
			t.Errorf("SyllableCount(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestDecompose(t *testing.T) {
	j, ok := Decompose('한')
	if !ok {
		t.Fatal("expected 한 to decompose")
	}
	// ㅎ = 18, ㅏ = 0, ㄴ = 4
	if j != (Jamo{Initial: 18, Medial: 0, Final: 4}) {
		t.Fatalf("Decompose(한) = %+v", j)
	}

	if _, ok := Decompose('a'); ok {
		t.Error("latin letter must not decompose")
	}
	if _, ok := Decompose(0xD7A5); ok {
		t.Error("unassigned code point must not decompose")
	}
}

func TestInPool(t *testing.T) {
	tests := []struct {
		word string
		d    kword.Difficulty
		want bool
	}{
		{"물", kword.DifficultyNormal, true},
		{"물", kword.DifficultyEasy, false},
		{"물", kword.DifficultyHard, false},
		{"안녕", kword.DifficultyEasy, true},
		{"안녕", kword.DifficultyHard, false},
		{"사랑해", kword.DifficultyHard, true},
		{"사랑해", kword.DifficultyEasy, false},
	}
	for _, tt := range tests {
		if got := InPool(tt.word, tt.d); got != tt.want {
			t.Errorf("InPool(%q, %s) = %v, want %v", tt.word, tt.d, got, tt.want)
		}
	}
}

func TestBucket(t *testing.T) {
	if b := Bucket("물"); b != kword.DifficultyNormal {
		t.Errorf("Bucket(물) = %s", b)
	}
	if b := Bucket("안녕"); b != kword.DifficultyEasy {
		t.Errorf("Bucket(안녕) = %s", b)
	}
	if b := Bucket("대한민국"); b != kword.DifficultyHard {
		t.Errorf("Bucket(대한민국) = %s", b)
	}
}
