package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/kword/internal/kword"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [difficulty|theme] [value]",
	Short: "Show or change settings",
	Long: `Show or change the saved settings.

  difficulty  easy (2 syllables), normal (all words), hard (3+ syllables)
  theme       light, dark or auto

Examples:
  kword settings
  kword settings difficulty hard
  kword settings theme dark`,
	Args:      cobra.MaximumNArgs(2),
	ValidArgs: []string{"difficulty", "theme"},
	RunE:      runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	current, err := s.settings.Load(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Fprintf(out, "difficulty: %s\n", current.Difficulty)
		fmt.Fprintf(out, "theme:      %s\n", current.Theme)
		return nil
	}

	switch args[0] {
	case "difficulty":
		if len(args) == 1 {
			fmt.Fprintln(out, current.Difficulty)
			return nil
		}
		d, err := kword.ParseDifficulty(args[1])
		if err != nil {
			return err
		}
		if err := s.settings.SetDifficulty(ctx, d); err != nil {
			return err
		}
		fmt.Fprintf(out, "difficulty set to %s\n", d)
	case "theme":
		if len(args) == 1 {
			fmt.Fprintln(out, current.Theme)
			return nil
		}
		t, err := kword.ParseTheme(args[1])
		if err != nil {
			return err
		}
		if err := s.settings.SetTheme(ctx, t); err != nil {
			return err
		}
		fmt.Fprintf(out, "theme set to %s\n", t)
	default:
		return fmt.Errorf("unknown setting %q (want difficulty or theme)", args[0])
	}
	return nil
}
