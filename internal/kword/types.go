// Package kword provides core types for the Korean word quiz.
package kword

import "fmt"

// MaxAttempts is the number of guesses allowed per round.
const MaxAttempts = 3

// DictionaryEntry is a single quiz word with its meaning.
type DictionaryEntry struct {
	Word       string `yaml:"word" json:"word"`             // Hangul word
	Definition string `yaml:"definition" json:"definition"` // English meaning, first letter capitalized
}

// Difficulty selects which dictionary entries a round may draw from.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // exactly two syllables
	DifficultyNormal Difficulty = "normal" // whole dictionary
	DifficultyHard   Difficulty = "hard"   // three or more syllables
)

// Difficulties lists every difficulty in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// Theme is the color scheme of the terminal UI.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto" // follow the terminal background
)

// Themes lists every theme in menu order.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeAuto}

// ParseTheme parses a theme name.
func ParseTheme(s string) (Theme, error) {
	for _, t := range Themes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q (want light, dark or auto)", s)
}

// Settings holds the user's preferences.
type Settings struct {
	Difficulty Difficulty `yaml:"difficulty" json:"difficulty"`
	Theme      Theme      `yaml:"theme" json:"theme"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{Difficulty: DifficultyNormal, Theme: ThemeAuto}
}

// Round is one question/answer cycle for a single dictionary entry.
type Round struct {
	Word            string
	Definition      string
	AcceptedAnswers []string // first element is the canonical answer
	Attempt         int      // 1..MaxAttempts
	Resolved        bool
}

// AttemptsLeft returns how many more incorrect guesses the round tolerates.
func (r *Round) AttemptsLeft() int {
	return MaxAttempts - r.Attempt
}

// CanonicalAnswer returns the answer shown when the player runs out of attempts.
func (r *Round) CanonicalAnswer() string {
	if len(r.AcceptedAnswers) == 0 {
		return ""
	}
	return r.AcceptedAnswers[0]
}

// OutcomeKind classifies the result of a guess.
type OutcomeKind int

const (
	OutcomeCorrect OutcomeKind = iota
	OutcomeIncorrectRetry
	OutcomeIncorrectExhausted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrectRetry:
		return "incorrect_retry"
	case OutcomeIncorrectExhausted:
		return "incorrect_exhausted"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of submitting a guess.
type Outcome struct {
	Kind          OutcomeKind
	AttemptsLeft  int    // set for OutcomeIncorrectRetry
	CorrectAnswer string // set for OutcomeIncorrectExhausted
}

// Resolved reports whether the outcome ended the round.
func (o Outcome) Resolved() bool {
	return o.Kind != OutcomeIncorrectRetry
}

// Statistics are the persisted play counters.
type Statistics struct {
	CurrentStreak  int `json:"current_streak"`
	MaxStreak      int `json:"max_streak"`
	TotalAttempts  int `json:"total_attempts"` // rounds played
	CorrectAnswers int `json:"correct_answers"`
}

// WrongAnswers returns the number of lost rounds.
func (s Statistics) WrongAnswers() int {
	return s.TotalAttempts - s.CorrectAnswers
}

// WinRate returns the fraction of rounds won, or 0 when nothing was played.
func (s Statistics) WinRate() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalAttempts)
}
