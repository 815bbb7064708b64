// Package share formats a finished round as a short text for pasting.
package share

import (
	"fmt"
	"strings"

	"github.com/f3rmion/kword/internal/kword"
)

const (
	missSquare = "🟥"
	hitSquare  = "🟩"
)

// Grid returns one square per attempt used: red for a miss, green for the
// winning guess.
func Grid(round *kword.Round, outcome kword.Outcome) string {
	var b strings.Builder
	misses := round.Attempt
	if outcome.Kind == kword.OutcomeCorrect {
		misses--
	}
	for i := 0; i < misses; i++ {
		b.WriteString(missSquare)
	}
	if outcome.Kind == kword.OutcomeCorrect {
		b.WriteString(hitSquare)
	}
	return b.String()
}

// Text builds the share message for a resolved round.
func Text(round *kword.Round, outcome kword.Outcome, st kword.Statistics) string {
	score := "X"
	if outcome.Kind == kword.OutcomeCorrect {
		score = fmt.Sprint(round.Attempt)
	}

	return fmt.Sprintf("kword %s %s/%d\n%s\nStreak %d | Win rate %.0f%%",
		round.Word, score, kword.MaxAttempts,
		Grid(round, outcome),
		st.CurrentStreak, st.WinRate()*100)
}
