package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/kword/internal/anki"
	"github.com/f3rmion/kword/internal/kword"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want kword.DictionaryEntry
		ok   bool
	}{
		{`안녕,hello`, kword.DictionaryEntry{Word: "안녕", Definition: "Hello"}, true},
		{`사랑, "love, affection" `, kword.DictionaryEntry{Word: "사랑", Definition: "Love, affection"}, true},
		{`  물 ,water, drink`, kword.DictionaryEntry{Word: "물", Definition: "Water, drink"}, true},
		{`한국어,`, kword.DictionaryEntry{Word: "한국어", Definition: ""}, true},
		{`감사,"""thanks"""`, kword.DictionaryEntry{Word: "감사", Definition: `""thanks""`}, true},
		{"\ufeff학교,school", kword.DictionaryEntry{Word: "학교", Definition: "School"}, true},
		{``, kword.DictionaryEntry{}, false},
		{`   `, kword.DictionaryEntry{}, false},
		{`no comma here`, kword.DictionaryEntry{}, false},
		{` ,orphan definition`, kword.DictionaryEntry{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseLine(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLine(%q) = %+v, %v; want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseCSV(t *testing.T) {
	input := "안녕,hello\n\n사랑,\"love\"\r\nbroken line\n감사합니다,thank you\n"
	entries, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []kword.DictionaryEntry{
		{Word: "안녕", Definition: "Hello"},
		{Word: "사랑", Definition: "Love"},
		{Word: "감사합니다", Definition: "Thank you"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

var sample = []kword.DictionaryEntry{
	{Word: "물", Definition: "Water"},
	{Word: "안녕", Definition: "Hello"},
	{Word: "사랑", Definition: "Love"},
	{Word: "한국어", Definition: "Korean language"},
	{Word: "감사합니다", Definition: "Thank you"},
}

func TestFilter(t *testing.T) {
	words := func(es []kword.DictionaryEntry) string {
		var out []string
		for _, e := range es {
			out = append(out, e.Word)
		}
		return strings.Join(out, " ")
	}

	if got := words(Filter(sample, kword.DifficultyNormal)); got != "물 안녕 사랑 한국어 감사합니다" {
		t.Errorf("normal = %q", got)
	}
	if got := words(Filter(sample, kword.DifficultyEasy)); got != "안녕 사랑" {
		t.Errorf("easy = %q", got)
	}
	if got := words(Filter(sample, kword.DifficultyHard)); got != "한국어 감사합니다" {
		t.Errorf("hard = %q", got)
	}
	if got := Filter(sample[:1], kword.DifficultyHard); len(got) != 0 {
		t.Errorf("hard pool of one-syllable words should be empty, got %+v", got)
	}
}

func TestStats(t *testing.T) {
	got := Stats(sample)
	if got[kword.DifficultyEasy] != 2 || got[kword.DifficultyNormal] != 5 || got[kword.DifficultyHard] != 2 {
		t.Fatalf("Stats = %v", got)
	}
}

func TestDictionaryLookup(t *testing.T) {
	d := New("mem", sample)
	if d.Size() != 5 || d.Source() != "mem" {
		t.Fatalf("size=%d source=%q", d.Size(), d.Source())
	}
	e, ok := d.Lookup("사랑")
	if !ok || e.Definition != "Love" {
		t.Fatalf("Lookup = %+v, %v", e, ok)
	}
	if _, ok := d.Lookup("없음"); ok {
		t.Fatal("unexpected hit")
	}
	if len(Filter(d.Entries(), kword.DifficultyEasy)) != 2 {
		t.Fatal("easy pool")
	}
}

func TestLoadFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	if err := os.WriteFile(path, []byte("안녕,hello\n사랑,love\n"), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Size() != 2 {
		t.Fatalf("size = %d", d.Size())
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.csv"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("missing file: expected LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadError should wrap the cause, got %v", err)
	}

	empty := filepath.Join(dir, "empty.csv")
	os.WriteFile(empty, []byte("\n\njunk\n"), 0644)
	_, err = LoadFile(empty)
	if !errors.As(err, &le) || !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty file: got %v", err)
	}
	if le.Path != empty {
		t.Errorf("Path = %q", le.Path)
	}

	notZip := filepath.Join(dir, "deck.apkg")
	os.WriteFile(notZip, []byte("not a zip"), 0644)
	if _, err := LoadFile(notZip); !errors.As(err, &le) {
		t.Fatalf("bad apkg: expected LoadError, got %v", err)
	}
}

func TestLoadFileAnki(t *testing.T) {
	path := writeTestDeck(t, [][]string{
		{"<b>안녕</b>", "hello&nbsp;there", "[sound:annyeong.mp3]"},
		{"thank you", "감사합니다"},
		{"only english", "nothing korean"},
		{"사랑", "", "<div>love</div>"},
	})

	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []kword.DictionaryEntry{
		{Word: "안녕", Definition: "Hello there"},
		{Word: "감사합니다", Definition: "Thank you"},
		{Word: "사랑", Definition: "Love"},
	}
	got := d.Entries()
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// writeTestDeck builds a .apkg holding one note per row.
func writeTestDeck(t *testing.T, notes [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.apkg")
	err := anki.WriteDeck(path, anki.Deck{
		Name:   "Basic",
		Fields: []string{"Front", "Back", "Extra"},
		Notes:  notes,
	})
	if err != nil {
		t.Fatalf("WriteDeck: %v", err)
	}
	return path
}
