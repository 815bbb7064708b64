package share

import (
	"testing"

	"github.com/f3rmion/kword/internal/kword"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		round   kword.Round
		outcome kword.Outcome
		stats   kword.Statistics
		want    string
	}{
		{
			name:    "first try",
			round:   kword.Round{Word: "안녕", Attempt: 1, Resolved: true},
			outcome: kword.Outcome{Kind: kword.OutcomeCorrect},
			stats:   kword.Statistics{CurrentStreak: 3, MaxStreak: 3, TotalAttempts: 4, CorrectAnswers: 3},
			want:    "kword 안녕 1/3\n🟩\nStreak 3 | Win rate 75%",
		},
		{
			name:    "last try",
			round:   kword.Round{Word: "사랑", Attempt: 3, Resolved: true},
			outcome: kword.Outcome{Kind: kword.OutcomeCorrect},
			stats:   kword.Statistics{CurrentStreak: 1, MaxStreak: 1, TotalAttempts: 1, CorrectAnswers: 1},
			want:    "kword 사랑 3/3\n🟥🟥🟩\nStreak 1 | Win rate 100%",
		},
		{
			name:    "lost",
			round:   kword.Round{Word: "물", Attempt: 3, Resolved: true},
			outcome: kword.Outcome{Kind: kword.OutcomeIncorrectExhausted, CorrectAnswer: "mul"},
			stats:   kword.Statistics{TotalAttempts: 2, CorrectAnswers: 1},
			want:    "kword 물 X/3\n🟥🟥🟥\nStreak 0 | Win rate 50%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(&tt.round, tt.outcome, tt.stats); got != tt.want {
				t.Errorf("Text =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
