package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/f3rmion/kword/internal/hangul"
	"github.com/f3rmion/kword/internal/tui/views"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>...",
	Short: "Show the romanizations of Korean words",
	Long: `Look up Korean words and display:
  - syllable count and difficulty bucket
  - the meaning, when the word is in the dictionary
  - the word in every romanization scheme (accepted ones marked)

Example:
  kword lookup 안녕
  kword lookup 사랑 감사합니다`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.dictErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not load dictionary: %v\n", s.dictErr)
	}

	out := cmd.OutOrStdout()
	for _, word := range args {
		if !hangul.ContainsHangul(word) {
			fmt.Fprintf(out, "%s: no Hangul syllables\n\n", word)
			continue
		}
		printLookup(out, views.Analyze(word, s.romanizer, s.dict))
	}
	return nil
}

func printLookup(out io.Writer, res views.WordResult) {
	fmt.Fprintf(out, "Word: %s\n", res.Word)
	fmt.Fprintf(out, "  Syllables:  %d (%s)\n", res.Syllables, res.Bucket)
	if res.Definition != "" {
		fmt.Fprintf(out, "  Meaning:    %s\n", res.Definition)
	}
	fmt.Fprintln(out, "  ---")
	for _, r := range res.Romanizations {
		mark := " "
		if r.Accepted {
			mark = "✓"
		}
		fmt.Fprintf(out, "  %s %-18s %s\n", mark, r.Scheme.Title(), r.Text)
	}
	fmt.Fprintln(out)
}
