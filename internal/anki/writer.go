package anki

import (
	"archive/zip"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Deck is a single note type with its notes, ready to be written.
type Deck struct {
	Name   string     // deck and note type name
	Fields []string   // field names, first is the sort field
	Notes  [][]string // one value per field
	Tags   []string
}

const (
	deckID  = 1
	modelID = 1
)

var schema = []string{
	`CREATE TABLE col (
		id INTEGER PRIMARY KEY, crt INTEGER NOT NULL, mod INTEGER NOT NULL,
		scm INTEGER NOT NULL, ver INTEGER NOT NULL, dty INTEGER NOT NULL,
		usn INTEGER NOT NULL, ls INTEGER NOT NULL, conf TEXT NOT NULL,
		models TEXT NOT NULL, decks TEXT NOT NULL, dconf TEXT NOT NULL, tags TEXT NOT NULL)`,
	`CREATE TABLE notes (
		id INTEGER PRIMARY KEY, guid TEXT NOT NULL, mid INTEGER NOT NULL,
		mod INTEGER NOT NULL, usn INTEGER NOT NULL, tags TEXT NOT NULL,
		flds TEXT NOT NULL, sfld TEXT NOT NULL, csum INTEGER NOT NULL,
		flags INTEGER NOT NULL, data TEXT NOT NULL)`,
	`CREATE TABLE cards (
		id INTEGER PRIMARY KEY, nid INTEGER NOT NULL, did INTEGER NOT NULL,
		ord INTEGER NOT NULL, mod INTEGER NOT NULL, usn INTEGER NOT NULL,
		type INTEGER NOT NULL, queue INTEGER NOT NULL, due INTEGER NOT NULL,
		ivl INTEGER NOT NULL, factor INTEGER NOT NULL, reps INTEGER NOT NULL,
		lapses INTEGER NOT NULL, left INTEGER NOT NULL, odue INTEGER NOT NULL,
		odid INTEGER NOT NULL, flags INTEGER NOT NULL, data TEXT NOT NULL)`,
	`CREATE TABLE revlog (id INTEGER PRIMARY KEY, cid INTEGER NOT NULL, usn INTEGER NOT NULL,
		ease INTEGER NOT NULL, ivl INTEGER NOT NULL, lastIvl INTEGER NOT NULL,
		factor INTEGER NOT NULL, time INTEGER NOT NULL, type INTEGER NOT NULL)`,
	`CREATE TABLE graves (usn INTEGER NOT NULL, oid INTEGER NOT NULL, type INTEGER NOT NULL)`,
}

// WriteDeck writes d as an .apkg file at path. One card is generated per
// note, showing the first field on the front and the rest on the back.
func WriteDeck(path string, d Deck) error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("deck %q has no fields", d.Name)
	}

	tempDir, err := os.MkdirTemp("", "kword-anki-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := writeCollection(dbPath, d); err != nil {
		return err
	}

	if err := writeZip(path, dbPath); err != nil {
		return fmt.Errorf("creating zip: %w", err)
	}
	return nil
}

func writeCollection(dbPath string, d Deck) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	models, decks, err := collectionJSON(d)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = tx.Exec(`INSERT INTO col VALUES (1, ?, ?, ?, 11, 0, 0, 0, '{}', ?, ?, '{}', '{}')`,
		now.Unix(), now.UnixMilli(), now.UnixMilli(), models, decks)
	if err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}

	tags := ""
	if len(d.Tags) > 0 {
		tags = " " + strings.Join(d.Tags, " ") + " "
	}

	base := now.UnixMilli()
	for i, fields := range d.Notes {
		values := make([]string, len(d.Fields))
		copy(values, fields)

		id := base + int64(i)
		_, err := tx.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`,
			id, strconv.FormatInt(id, 36), modelID, now.Unix(), tags,
			strings.Join(values, "\x1f"), values[0], checksum(values[0]))
		if err != nil {
			return fmt.Errorf("writing note %d: %w", i, err)
		}

		_, err = tx.Exec(`INSERT INTO cards VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			id, id, deckID, now.Unix(), i+1)
		if err != nil {
			return fmt.Errorf("writing card %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing collection: %w", err)
	}
	return nil
}

// collectionJSON builds the models and decks columns of the col table.
func collectionJSON(d Deck) (string, string, error) {
	fields := make([]map[string]any, len(d.Fields))
	for i, name := range d.Fields {
		fields[i] = map[string]any{"name": name, "ord": i, "font": "Arial", "size": 20}
	}

	back := make([]string, 0, len(d.Fields)-1)
	for _, name := range d.Fields[1:] {
		back = append(back, "{{"+name+"}}")
	}

	models := map[string]any{
		strconv.Itoa(modelID): map[string]any{
			"id":    modelID,
			"name":  d.Name,
			"type":  0,
			"did":   deckID,
			"sortf": 0,
			"flds":  fields,
			"tmpls": []map[string]any{{
				"name": "Card 1",
				"ord":  0,
				"qfmt": "{{" + d.Fields[0] + "}}",
				"afmt": "{{FrontSide}}<hr id=answer>" + strings.Join(back, "<br>"),
			}},
			"css": ".card { font-size: 24px; text-align: center; }",
		},
	}
	decks := map[string]any{
		strconv.Itoa(deckID): map[string]any{"id": deckID, "name": d.Name},
	}

	m, err := json.Marshal(models)
	if err != nil {
		return "", "", fmt.Errorf("marshaling models: %w", err)
	}
	dk, err := json.Marshal(decks)
	if err != nil {
		return "", "", fmt.Errorf("marshaling decks: %w", err)
	}
	return string(m), string(dk), nil
}

// checksum is the first 8 hex digits of the SHA256 of the sort field.
func checksum(sortField string) int64 {
	sum := sha256.Sum256([]byte(StripHTML(sortField)))
	csum, _ := strconv.ParseInt(fmt.Sprintf("%x", sum[:4]), 16, 64)
	return csum
}

func writeZip(outputPath, dbPath string) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	zipWriter := zip.NewWriter(outFile)

	w, err := zipWriter.Create("collection.anki2")
	if err != nil {
		return err
	}
	in, err := os.Open(dbPath)
	if err != nil {
		return err
	}
	defer in.Close()
	if _, err := io.Copy(w, in); err != nil {
		return err
	}

	media, err := zipWriter.Create("media")
	if err != nil {
		return err
	}
	if _, err := media.Write([]byte("{}")); err != nil {
		return err
	}

	if err := zipWriter.Close(); err != nil {
		return err
	}
	return outFile.Close()
}
