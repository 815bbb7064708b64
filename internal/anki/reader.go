// Package anki reads vocabulary notes out of Anki .apkg files.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"
)

// Package is an opened Anki .apkg file.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB
	Models  map[int64]*Model
	Notes   []*Note
}

// Model is an Anki note type.
type Model struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"flds"`
}

// Field is a field definition in a note type.
type Field struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
}

// Note is an Anki note with its fields split out.
type Note struct {
	ID      int64
	ModelID int64
	Tags    string
	Fields  []string
}

// OpenPackage extracts an .apkg into a temp directory and loads its notes.
// Call Close to remove the temp directory.
func OpenPackage(path string) (*Package, error) {
	pkg := &Package{
		path:   path,
		Models: make(map[int64]*Model),
	}

	tempDir, err := os.MkdirTemp("", "kword-anki-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg.tempDir = tempDir

	if err := pkg.extract(); err != nil {
		pkg.Close()
		return nil, err
	}

	// Newer exports ship collection.anki21 next to a stub anki2
	dbPath := filepath.Join(tempDir, "collection.anki21")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		dbPath = filepath.Join(tempDir, "collection.anki2")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("opening collection: %w", err)
	}
	pkg.db = db

	if err := pkg.loadModels(); err != nil {
		pkg.Close()
		return nil, err
	}
	if err := pkg.loadNotes(); err != nil {
		pkg.Close()
		return nil, err
	}

	return pkg, nil
}

func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		// Only the collection database is needed; media files are skipped.
		if !strings.HasPrefix(f.Name, "collection.anki") {
			continue
		}

		fpath := filepath.Join(p.tempDir, f.Name)
		if !strings.HasPrefix(fpath, filepath.Clean(p.tempDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", fpath)
		}

		if err := copyZipFile(f, fpath); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}

	return nil
}

func copyZipFile(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

func (p *Package) loadModels() error {
	var models string
	if err := p.db.QueryRow("SELECT models FROM col").Scan(&models); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var modelsMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}

	for _, raw := range modelsMap {
		var m Model
		if err := json.Unmarshal(raw, &m); err != nil {
			continue // skip malformed note types
		}
		p.Models[m.ID] = &m
	}

	return nil
}

func (p *Package) loadNotes() error {
	rows, err := p.db.Query(`SELECT id, mid, tags, flds FROM notes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var note Note
		var flds string
		if err := rows.Scan(&note.ID, &note.ModelID, &note.Tags, &flds); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		// fields are separated by ASCII 31
		note.Fields = strings.Split(flds, "\x1f")
		p.Notes = append(p.Notes, &note)
	}

	return rows.Err()
}

// FieldValue returns a field of note by name, or "" when absent.
func (p *Package) FieldValue(note *Note, name string) string {
	model := p.Models[note.ModelID]
	if model == nil {
		return ""
	}
	for _, f := range model.Fields {
		if strings.EqualFold(f.Name, name) && f.Ord < len(note.Fields) {
			return note.Fields[f.Ord]
		}
	}
	return ""
}

// Close removes the extracted files.
func (p *Package) Close() error {
	if p.db != nil {
		p.db.Close()
	}
	if p.tempDir != "" {
		os.RemoveAll(p.tempDir)
	}
	return nil
}

var (
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
	soundRe   = regexp.MustCompile(`\[sound:[^\]]*\]`)
)

// StripHTML removes markup, sound tags and common entities from a field.
func StripHTML(s string) string {
	s = soundRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`).Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
