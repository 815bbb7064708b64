// Package dictionary loads quiz words from CSV word lists and Anki decks.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/f3rmion/kword/internal/anki"
	"github.com/f3rmion/kword/internal/hangul"
	"github.com/f3rmion/kword/internal/kword"
)

// LoadError reports a dictionary that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading dictionary: %v", e.Err)
	}
	return fmt.Sprintf("loading dictionary %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrEmpty is wrapped in a LoadError when a file holds no usable entries.
var ErrEmpty = errors.New("no entries found")

// Dictionary is an ordered, read-only list of entries.
type Dictionary struct {
	source  string
	entries []kword.DictionaryEntry
}

// New wraps entries in a Dictionary.
func New(source string, entries []kword.DictionaryEntry) *Dictionary {
	return &Dictionary{source: source, entries: append([]kword.DictionaryEntry(nil), entries...)}
}

// Entries returns every entry in load order.
func (d *Dictionary) Entries() []kword.DictionaryEntry {
	return d.entries
}

// Size returns the number of entries.
func (d *Dictionary) Size() int {
	return len(d.entries)
}

// Source returns the path the dictionary was loaded from.
func (d *Dictionary) Source() string {
	return d.source
}

// Lookup returns the first entry for word.
func (d *Dictionary) Lookup(word string) (kword.DictionaryEntry, bool) {
	for _, e := range d.entries {
		if e.Word == word {
			return e, true
		}
	}
	return kword.DictionaryEntry{}, false
}

// Filter returns the entries whose word belongs to the difficulty pool.
func Filter(entries []kword.DictionaryEntry, difficulty kword.Difficulty) []kword.DictionaryEntry {
	if difficulty != kword.DifficultyEasy && difficulty != kword.DifficultyHard {
		return entries
	}
	var out []kword.DictionaryEntry
	for _, e := range entries {
		if hangul.InPool(e.Word, difficulty) {
			out = append(out, e)
		}
	}
	return out
}

// Stats counts the entries available at each difficulty.
func Stats(entries []kword.DictionaryEntry) map[kword.Difficulty]int {
	sizes := make(map[kword.Difficulty]int, len(kword.Difficulties))
	for _, d := range kword.Difficulties {
		sizes[d] = len(Filter(entries, d))
	}
	return sizes
}

// LoadFile loads a dictionary, choosing the format by extension:
// .apkg is read as an Anki deck, anything else as CSV.
func LoadFile(path string) (*Dictionary, error) {
	var (
		entries []kword.DictionaryEntry
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".apkg":
		entries, err = LoadAnki(path)
	default:
		entries, err = loadCSVFile(path)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(entries) == 0 {
		return nil, &LoadError{Path: path, Err: ErrEmpty}
	}

	return New(path, entries), nil
}

func loadCSVFile(path string) ([]kword.DictionaryEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseCSV(file)
}

// ParseCSV reads "<word>,<definition>" lines. The line is split on the first
// comma only; one surrounding pair of double quotes is stripped from the
// definition, both sides are trimmed and the definition's first letter is
// capitalized. Blank lines and lines without a word or comma are skipped.
func ParseCSV(r io.Reader) ([]kword.DictionaryEntry, error) {
	var entries []kword.DictionaryEntry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		entry, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}

	return entries, nil
}

// ParseLine parses a single word-list line.
func ParseLine(line string) (kword.DictionaryEntry, bool) {
	line = strings.TrimPrefix(line, "\ufeff")
	word, definition, found := strings.Cut(line, ",")
	if !found {
		return kword.DictionaryEntry{}, false
	}

	word = strings.TrimSpace(word)
	if word == "" {
		return kword.DictionaryEntry{}, false
	}

	return kword.DictionaryEntry{
		Word:       word,
		Definition: cleanDefinition(definition),
	}, true
}

func cleanDefinition(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return capitalize(s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LoadAnki reads an Anki deck. The first note field containing Hangul is the
// word and the first other non-empty field is the definition.
func LoadAnki(path string) ([]kword.DictionaryEntry, error) {
	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	var entries []kword.DictionaryEntry
	for _, note := range pkg.Notes {
		entry, ok := entryFromFields(note.Fields)
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func entryFromFields(fields []string) (kword.DictionaryEntry, bool) {
	wordIdx := -1
	var word string
	for i, f := range fields {
		f = anki.StripHTML(f)
		if hangul.ContainsHangul(f) {
			wordIdx, word = i, f
			break
		}
	}
	if wordIdx < 0 {
		return kword.DictionaryEntry{}, false
	}

	for i, f := range fields {
		if i == wordIdx {
			continue
		}
		f = anki.StripHTML(f)
		if f != "" && !hangul.ContainsHangul(f) {
			return kword.DictionaryEntry{Word: word, Definition: cleanDefinition(f)}, true
		}
	}
	return kword.DictionaryEntry{}, false
}
