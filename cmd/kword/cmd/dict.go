package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/kword/internal/anki"
	"github.com/f3rmion/kword/internal/dictionary"
	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/romanize"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Work with word lists",
	Long:  `Commands for checking .csv and Anki .apkg word lists before playing with them.`,
}

var dictInspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspect a word list",
	Long: `Load a word list the way the game does and show:
  - how many words each difficulty can draw from
  - for Anki decks, the note types and their fields
  - sample entries

Example:
  kword dict inspect words.csv
  kword dict inspect korean.apkg -n 10`,
	Args: cobra.ExactArgs(1),
	RunE: runDictInspect,
}

var dictExportCmd = &cobra.Command{
	Use:   "export <file> <out.apkg>",
	Short: "Export a word list as an Anki deck",
	Long: `Write a word list to an Anki .apkg deck with the fields Korean,
Romanization and Meaning. The romanization lists every configured scheme.

Example:
  kword dict export words.csv korean.apkg`,
	Args: cobra.ExactArgs(2),
	RunE: runDictExport,
}

var (
	dictInspectLimit int
	dictExportName   string
)

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictInspectCmd)
	dictCmd.AddCommand(dictExportCmd)

	dictInspectCmd.Flags().IntVarP(&dictInspectLimit, "limit", "n", 5, "Number of sample entries to show")
	dictExportCmd.Flags().StringVar(&dictExportName, "name", "Korean (kword)", "deck name")
}

func runDictInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Opening: %s\n\n", path)

	d, err := dictionary.LoadFile(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".apkg") {
		if err := printAnkiModels(out, path); err != nil {
			return err
		}
	}

	printDictSummary(out, d, dictInspectLimit)
	return nil
}

func printDictSummary(out io.Writer, d *dictionary.Dictionary, limit int) {
	fmt.Fprintf(out, "Entries: %d\n", d.Size())
	counts := dictionary.Stats(d.Entries())
	for _, diff := range kword.Difficulties {
		fmt.Fprintf(out, "  %-7s %d\n", diff, counts[diff])
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Sample Entries (first %d):\n", limit)
	for i, e := range d.Entries() {
		if i >= limit {
			break
		}
		def := e.Definition
		if r := []rune(def); len(r) > 60 {
			def = string(r[:60]) + "..."
		}
		fmt.Fprintf(out, "  %s  %s\n", e.Word, def)
	}
}

func printAnkiModels(out io.Writer, path string) error {
	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	ids := make([]int64, 0, len(pkg.Models))
	for id := range pkg.Models {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Fprintf(out, "Notes: %d\n", len(pkg.Notes))
	fmt.Fprintln(out, "Field Details:")
	for _, id := range ids {
		model := pkg.Models[id]
		fmt.Fprintf(out, "  %s:\n", model.Name)
		for _, field := range model.Fields {
			fmt.Fprintf(out, "    [%d] %s\n", field.Ord, field.Name)
		}
	}
	fmt.Fprintln(out)
	return nil
}

func runDictExport(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]

	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := dictionary.LoadFile(src)
	if err != nil {
		return err
	}

	if err := anki.WriteDeck(dst, exportDeck(dictExportName, d, s.romanizer)); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d notes to %s\n", d.Size(), dst)
	return nil
}

// exportDeck builds one note per entry: word, its romanizations, meaning.
func exportDeck(name string, d *dictionary.Dictionary, r *romanize.Romanizer) anki.Deck {
	deck := anki.Deck{
		Name:   name,
		Fields: []string{"Korean", "Romanization", "Meaning"},
		Tags:   []string{"kword"},
	}
	for _, e := range d.Entries() {
		var forms []string
		for _, f := range r.Romanize(e.Word) {
			if !slices.Contains(forms, f) {
				forms = append(forms, f)
			}
		}
		deck.Notes = append(deck.Notes, []string{e.Word, strings.Join(forms, " / "), e.Definition})
	}
	return deck
}
