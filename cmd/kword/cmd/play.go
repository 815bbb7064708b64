package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/kword/internal/clipboard"
	"github.com/f3rmion/kword/internal/dictionary"
	"github.com/f3rmion/kword/internal/engine"
	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/normalize"
	"github.com/f3rmion/kword/internal/share"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play rounds in line mode",
	Long: `Play without the TUI: the word is printed, guesses are read from stdin.

An unfinished round is resumed on the next run. If the saved difficulty has
no words in the dictionary, the round falls back to normal.

Examples:
  kword play
  kword play --rounds 5 --share`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var (
	playRounds int
	playShare  bool
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVarP(&playRounds, "rounds", "n", 1, "number of rounds to play")
	playCmd.Flags().BoolVar(&playShare, "share", false, "print the result and copy it to the clipboard after each round")
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	dict, err := s.requireDict()
	if err != nil {
		return err
	}

	current, err := s.settings.Load(cmd.Context())
	if err != nil {
		return err
	}

	g := &linePlayer{
		engine:     s.engine,
		dict:       dict,
		difficulty: current.Difficulty,
		in:         bufio.NewScanner(cmd.InOrStdin()),
		out:        cmd.OutOrStdout(),
		share:      playShare,
		copy:       clipboard.Write,
	}
	return g.play(cmd.Context(), playRounds)
}

// linePlayer runs rounds over a plain reader and writer.
type linePlayer struct {
	engine     *engine.Engine
	dict       *dictionary.Dictionary
	difficulty kword.Difficulty
	in         *bufio.Scanner
	out        io.Writer
	share      bool
	copy       func(string) error
}

// play runs up to n rounds. Running out of input leaves the current round
// saved for later.
func (g *linePlayer) play(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if i > 0 {
			fmt.Fprintln(g.out)
		}
		done, err := g.round(ctx)
		if err != nil {
			return err
		}
		if !done {
			fmt.Fprintln(g.out, "\nRound saved. Run 'kword play' to continue.")
			return nil
		}
	}
	return nil
}

func (g *linePlayer) start(ctx context.Context) (*kword.Round, error) {
	round, err := g.engine.StartRound(ctx, g.dict.Entries(), g.difficulty)
	if errors.Is(err, engine.ErrNoEntriesForDifficulty) && g.difficulty != kword.DifficultyNormal {
		fmt.Fprintf(g.out, "No %s words in %s, playing normal instead.\n", g.difficulty, g.dict.Source())
		g.difficulty = kword.DifficultyNormal
		return g.engine.StartRound(ctx, g.dict.Entries(), g.difficulty)
	}
	return round, err
}

// round plays one round and reports whether it was resolved.
func (g *linePlayer) round(ctx context.Context) (bool, error) {
	round, err := g.start(ctx)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(g.out, "%s\n", round.Word)
	if round.Definition != "" {
		fmt.Fprintf(g.out, "  %s\n", round.Definition)
	}

	var rejected normalize.RepeatGuard
	for {
		fmt.Fprintf(g.out, "[%d/%d] > ", round.Attempt, kword.MaxAttempts)
		if !g.in.Scan() {
			if err := g.in.Err(); err != nil {
				return false, fmt.Errorf("reading guess: %w", err)
			}
			return false, nil
		}

		guess := g.in.Text()
		if normalize.Normalize(guess) == "" {
			if strings.TrimSpace(guess) != "" {
				fmt.Fprintln(g.out, "Type a romanization first.")
			}
			continue
		}
		if rejected.Seen(guess) {
			fmt.Fprintln(g.out, "You already tried that.")
			continue
		}

		outcome, err := g.engine.SubmitGuess(ctx, round, guess)
		if err != nil {
			return false, err
		}

		if !outcome.Resolved() {
			rejected.Reject(guess)
			fmt.Fprintf(g.out, "Not quite. Tries left: %d\n", outcome.AttemptsLeft+1)
			continue
		}

		switch outcome.Kind {
		case kword.OutcomeCorrect:
			fmt.Fprintln(g.out, "Correct!")
		case kword.OutcomeIncorrectExhausted:
			fmt.Fprintf(g.out, "Out of tries. The answer was %s.\n", outcome.CorrectAnswer)
		}
		if len(round.AcceptedAnswers) > 1 {
			fmt.Fprintf(g.out, "Accepted: %s\n", strings.Join(round.AcceptedAnswers, ", "))
		}

		if g.share {
			g.printShare(ctx, round, outcome)
		}
		return true, nil
	}
}

func (g *linePlayer) printShare(ctx context.Context, round *kword.Round, outcome kword.Outcome) {
	st, err := g.engine.Statistics(ctx)
	if err != nil {
		fmt.Fprintf(g.out, "Warning: reading statistics: %v\n", err)
		return
	}
	text := share.Text(round, outcome, st)
	fmt.Fprintf(g.out, "\n%s\n", text)
	if err := g.copy(text); err != nil {
		fmt.Fprintf(g.out, "(not copied: %v)\n", err)
		return
	}
	fmt.Fprintln(g.out, "(copied to clipboard)")
}
