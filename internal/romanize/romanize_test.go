package romanize

import (
	"reflect"
	"testing"
)

func TestTransliterateRR(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"안녕", "annyeong"},
		{"한국어", "hangugeo"},
		{"감사합니다", "gamsahamnida"},
		{"설날", "seollal"},
		{"신라", "silla"},
		{"독립", "dongnip"},
		{"종로", "jongno"},
		{"영어", "yeongeo"},
		{"사랑", "sarang"},
		{"물", "mul"},
		{"안녕 하세요", "annyeong haseyo"},
	}
	for _, tt := range tests {
		if got := Transliterate(tt.word, RevisedRomanization); got != tt.want {
			t.Errorf("RR(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestTransliterateMR(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"안녕", "annyŏng"},
		{"감사합니다", "kamsahamnida"},
		{"중국", "chungguk"},
		{"부산", "pusan"},
		{"시간", "shigan"},
		{"친구", "ch'ingu"},
	}
	for _, tt := range tests {
		if got := Transliterate(tt.word, McCuneReischauer); got != tt.want {
			t.Errorf("MR(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestTransliterateYale(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"안녕", "annyeng"},
		{"한국어", "hankwuke"},
		{"닭", "talk"},
	}
	for _, tt := range tests {
		if got := Transliterate(tt.word, Yale); got != tt.want {
			t.Errorf("Yale(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestRomanizeOrder(t *testing.T) {
	r := New()
	got := r.Romanize("안녕")
	want := []string{"annyeong", "annyŏng"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Romanize(안녕) = %v, want %v", got, want)
	}

	r = New(Yale, RevisedRomanization)
	got = r.Romanize("안녕")
	want = []string{"annyeng", "annyeong"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Romanize(안녕) with yale first = %v, want %v", got, want)
	}
}

func TestNonHangulPassesThrough(t *testing.T) {
	if got := Transliterate("TV 보다", RevisedRomanization); got != "TV boda" {
		t.Errorf("got %q", got)
	}
}

func TestParseSchemes(t *testing.T) {
	got, err := ParseSchemes([]string{"RR", " mr ", "rr", "yale"})
	if err != nil {
		t.Fatalf("ParseSchemes: %v", err)
	}
	want := []Scheme{RevisedRomanization, McCuneReischauer, Yale}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSchemes = %v, want %v", got, want)
	}

	if _, err := ParseSchemes([]string{"kunrei"}); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}
