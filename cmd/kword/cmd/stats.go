package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics",
	Long: `Show the counters kept between runs: rounds played, correct and wrong
answers, current and best streak, and win rate.

Examples:
  kword stats
  kword stats --json
  kword stats --reset`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var (
	statsReset bool
	statsJSON  bool
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsReset, "reset", false, "reset all counters to zero")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if statsReset {
		if err := s.engine.ResetStatistics(ctx); err != nil {
			return err
		}
		if !statsJSON {
			fmt.Fprintln(out, "Statistics reset.")
		}
	}

	st, err := s.engine.Statistics(ctx)
	if err != nil {
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			CurrentStreak  int     `json:"current_streak"`
			MaxStreak      int     `json:"max_streak"`
			TotalAttempts  int     `json:"total_attempts"`
			CorrectAnswers int     `json:"correct_answers"`
			WrongAnswers   int     `json:"wrong_answers"`
			WinRate        float64 `json:"win_rate"`
		}{st.CurrentStreak, st.MaxStreak, st.TotalAttempts, st.CorrectAnswers, st.WrongAnswers(), st.WinRate()})
	}

	fmt.Fprintf(out, "Played:         %d\n", st.TotalAttempts)
	fmt.Fprintf(out, "Correct:        %d\n", st.CorrectAnswers)
	fmt.Fprintf(out, "Wrong:          %d\n", st.WrongAnswers())
	fmt.Fprintf(out, "Current streak: %d\n", st.CurrentStreak)
	fmt.Fprintf(out, "Best streak:    %d\n", st.MaxStreak)
	fmt.Fprintf(out, "Win rate:       %.0f%%\n", st.WinRate()*100)
	return nil
}
