package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/kword/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize kword configuration",
	Long: `Initialize kword in your config directory.

This creates:
  - config.yaml  (dictionary path, storage driver, romanization schemes, logging)
  - words.csv    (a starter word list in "word,definition" format)

Replace words.csv or point dictionary_path at your own list or Anki deck.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	out := cmd.OutOrStdout()

	cfgPath := filepath.Join(configDir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("config already exists: %s\nUse --force to overwrite", cfgPath)
	}

	fmt.Fprintf(out, "Initializing kword configuration in %s\n\n", configDir)

	cfg := config.Default(configDir)
	if err := config.Save(configDir, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Created %s\n", config.FileName)

	created, err := writeStarterWords(cfg.DictionaryPath, force)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "  Created %s\n", filepath.Base(cfg.DictionaryPath))
	} else {
		fmt.Fprintf(out, "  Kept existing %s\n", filepath.Base(cfg.DictionaryPath))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'kword' to start playing")
	fmt.Fprintln(out, "  2. Run 'kword lookup 안녕' to see how a word is romanized")
	fmt.Fprintln(out, "  3. Run 'kword dict inspect <file>' to check your own word list")

	return nil
}

// writeStarterWords writes the starter list unless a file is already there.
func writeStarterWords(path string, force bool) (bool, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating word list: %w", err)
	}

	if _, err := f.WriteString(starterWords); err != nil {
		f.Close()
		return false, fmt.Errorf("writing word list: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("writing word list: %w", err)
	}
	return true, nil
}

const starterWords = `안녕,hello
감사,thanks
사랑,love
친구,friend
가족,family
학교,school
음식,food
시간,time
하늘,sky
바다,sea
나무,tree
노래,song
여름,summer
겨울,winter
한국,Korea
사람,person
물,water
불,fire
집,house
책,book
밥,rice; meal
눈,eye; snow
오늘,today
내일,tomorrow
어제,yesterday
선생님,teacher
고양이,cat
강아지,puppy
도서관,library
컴퓨터,computer
대학교,university
병원,hospital
감사합니다,"thank you (formal)"
안녕하세요,"hello, how are you (polite)"
미안합니다,I'm sorry
괜찮아요,it's okay
맛있다,to be delicious
아름답다,to be beautiful
`
