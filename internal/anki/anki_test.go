package anki

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDeckOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.apkg")
	err := WriteDeck(path, Deck{
		Name:   "kword",
		Fields: []string{"Korean", "Romanization", "Meaning"},
		Notes: [][]string{
			{"안녕", "annyeong", "Hello"},
			{"물", "mul"}, // short rows are padded
		},
		Tags: []string{"kword"},
	})
	if err != nil {
		t.Fatalf("WriteDeck: %v", err)
	}

	pkg, err := OpenPackage(path)
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer pkg.Close()

	if len(pkg.Models) != 1 {
		t.Fatalf("models = %d, want 1", len(pkg.Models))
	}
	if len(pkg.Notes) != 2 {
		t.Fatalf("notes = %d, want 2", len(pkg.Notes))
	}

	first := pkg.Notes[0]
	if got := pkg.FieldValue(first, "korean"); got != "안녕" {
		t.Errorf("Korean = %q", got)
	}
	if got := pkg.FieldValue(first, "Meaning"); got != "Hello" {
		t.Errorf("Meaning = %q", got)
	}
	if got := pkg.FieldValue(first, "missing"); got != "" {
		t.Errorf("missing field = %q, want empty", got)
	}
	if first.Tags != " kword " {
		t.Errorf("tags = %q", first.Tags)
	}
	if n := len(pkg.Notes[1].Fields); n != 3 {
		t.Errorf("second note has %d fields, want 3", n)
	}
}

func TestWriteDeckNoFields(t *testing.T) {
	if err := WriteDeck(filepath.Join(t.TempDir(), "x.apkg"), Deck{Name: "empty"}); err == nil {
		t.Fatal("expected error for a deck without fields")
	}
}

func TestOpenPackageNotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.apkg")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenPackage(path); err == nil {
		t.Fatal("expected error")
	}
}

func TestCloseRemovesTempDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.apkg")
	if err := WriteDeck(path, Deck{Name: "d", Fields: []string{"Front"}, Notes: [][]string{{"사랑"}}}); err != nil {
		t.Fatal(err)
	}
	pkg, err := OpenPackage(path)
	if err != nil {
		t.Fatal(err)
	}
	dir := pkg.tempDir
	pkg.Close()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("temp dir still present: %v", err)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<b>안녕</b>", "안녕"},
		{"hello&nbsp;there", "hello there"},
		{"[sound:a.mp3]물", "물"},
		{"<div>a</div><div>b</div>", "a b"},
		{"  plain  ", "plain"},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
