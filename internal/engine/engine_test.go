package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/normalize"
	"github.com/f3rmion/kword/internal/romanize"
	"github.com/f3rmion/kword/internal/store"
)

var words = []kword.DictionaryEntry{
	{Word: "안녕", Definition: "Hello"},
	{Word: "물", Definition: "Water"},
	{Word: "사랑", Definition: "Love"},
	{Word: "감사합니다", Definition: "Thank you"},
}

// fixedSource returns the queued indices in order.
type fixedSource struct {
	next  []int
	calls int
}

func (f *fixedSource) Intn(n int) (int, error) {
	f.calls++
	if len(f.next) == 0 {
		return 0, nil
	}
	v := f.next[0]
	f.next = f.next[1:]
	return v % n, nil
}

func newTestEngine(kv store.Store, idx ...int) (*Engine, *fixedSource) {
	src := &fixedSource{next: idx}
	return New(kv, WithIndexSource(src)), src
}

func TestStartRound(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	e, _ := newTestEngine(kv, 0)

	round, err := e.StartRound(ctx, words, kword.DifficultyNormal)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if round.Word != "안녕" || round.Definition != "Hello" {
		t.Fatalf("round = %+v", round)
	}
	if round.Attempt != 1 || round.Resolved {
		t.Fatalf("fresh round state attempt=%d resolved=%v", round.Attempt, round.Resolved)
	}
	if len(round.AcceptedAnswers) != 2 || round.AcceptedAnswers[0] != "annyeong" || round.AcceptedAnswers[1] != "annyŏng" {
		t.Fatalf("accepted answers = %q", round.AcceptedAnswers)
	}
	if e.Round() != round {
		t.Fatal("Round() should return the started round")
	}

	raw, ok, _ := kv.Get(ctx, store.KeyRound)
	if !ok {
		t.Fatal("round was not persisted")
	}
	var p persistedRound
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("persisted round is not JSON: %v", err)
	}
	if p != (persistedRound{Word: "안녕", Definition: "Hello", Attempt: 1}) {
		t.Fatalf("persisted = %+v", p)
	}
}

func TestStartRoundDifficulty(t *testing.T) {
	ctx := context.Background()

	e, _ := newTestEngine(store.NewMemory(), 1)
	round, err := e.StartRound(ctx, words, kword.DifficultyEasy)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	// easy pool is [안녕 사랑]
	if round.Word != "사랑" {
		t.Fatalf("easy round picked %q", round.Word)
	}

	e, _ = newTestEngine(store.NewMemory(), 0)
	round, err = e.StartRound(ctx, words, kword.DifficultyHard)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if round.Word != "감사합니다" {
		t.Fatalf("hard round picked %q", round.Word)
	}
}

func TestStartRoundEmptyPool(t *testing.T) {
	kv := store.NewMemory()
	e, _ := newTestEngine(kv)

	_, err := e.StartRound(context.Background(), words[:3], kword.DifficultyHard)
	if !errors.Is(err, ErrNoEntriesForDifficulty) {
		t.Fatalf("expected ErrNoEntriesForDifficulty, got %v", err)
	}
	if e.Round() != nil {
		t.Fatal("no round should be selected")
	}
	if _, ok, _ := kv.Get(context.Background(), store.KeyRound); ok {
		t.Fatal("nothing should be persisted")
	}
}

func TestSubmitCorrect(t *testing.T) {
	for _, guess := range []string{"Annyeong ", "annyŏng", "ANNYONG", " an-nyeong!"} {
		t.Run(guess, func(t *testing.T) {
			ctx := context.Background()
			kv := store.NewMemory()
			e, _ := newTestEngine(kv, 0)
			round, _ := e.StartRound(ctx, words, kword.DifficultyNormal)

			out, err := e.SubmitGuess(ctx, round, guess)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if out.Kind != kword.OutcomeCorrect {
				t.Fatalf("outcome = %v", out.Kind)
			}
			if !round.Resolved {
				t.Fatal("round should be resolved")
			}
			if _, ok, _ := kv.Get(ctx, store.KeyRound); ok {
				t.Fatal("resolved round should be cleared")
			}

			st, _ := e.Statistics(ctx)
			if st != (kword.Statistics{CurrentStreak: 1, MaxStreak: 1, TotalAttempts: 1, CorrectAnswers: 1}) {
				t.Fatalf("stats = %+v", st)
			}
		})
	}
}

func TestSubmitExhausted(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	e, _ := newTestEngine(kv, 0)
	round, _ := e.StartRound(ctx, words, kword.DifficultyNormal)

	want := []kword.Outcome{
		{Kind: kword.OutcomeIncorrectRetry, AttemptsLeft: 1},
		{Kind: kword.OutcomeIncorrectRetry, AttemptsLeft: 0},
		{Kind: kword.OutcomeIncorrectExhausted, CorrectAnswer: "annyeong"},
	}
	for i, w := range want {
		out, err := e.SubmitGuess(ctx, round, "wrong")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if out != w {
			t.Fatalf("submit %d = %+v, want %+v", i, out, w)
		}
		if round.Attempt > kword.MaxAttempts {
			t.Fatalf("attempt %d exceeds max", round.Attempt)
		}
	}

	if !round.Resolved {
		t.Fatal("round should be resolved")
	}
	if _, ok, _ := kv.Get(ctx, store.KeyRound); ok {
		t.Fatal("resolved round should be cleared")
	}
	st, _ := e.Statistics(ctx)
	if st != (kword.Statistics{CurrentStreak: 0, MaxStreak: 0, TotalAttempts: 1, CorrectAnswers: 0}) {
		t.Fatalf("stats = %+v", st)
	}

	if _, err := e.SubmitGuess(ctx, round, "annyeong"); !errors.Is(err, ErrRoundResolved) {
		t.Fatalf("expected ErrRoundResolved, got %v", err)
	}
}

func TestSubmitRetryPersistsAttempt(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	e, _ := newTestEngine(kv, 0)
	round, _ := e.StartRound(ctx, words, kword.DifficultyNormal)

	e.SubmitGuess(ctx, round, "nope")

	raw, _, _ := kv.Get(ctx, store.KeyRound)
	var p persistedRound
	json.Unmarshal([]byte(raw), &p)
	if p.Attempt != 2 {
		t.Fatalf("persisted attempt = %d, want 2", p.Attempt)
	}
}

func TestSubmitBlank(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(store.NewMemory(), 0)
	round, _ := e.StartRound(ctx, words, kword.DifficultyNormal)
	e.SubmitGuess(ctx, round, "wrong")

	for _, blank := range []string{"", "   ", "!?", "\t-\n"} {
		out, err := e.SubmitGuess(ctx, round, blank)
		if err != nil {
			t.Fatalf("submit %q: %v", blank, err)
		}
		if out != (kword.Outcome{Kind: kword.OutcomeIncorrectRetry, AttemptsLeft: 1}) {
			t.Fatalf("blank %q = %+v", blank, out)
		}
		if round.Attempt != 2 {
			t.Fatalf("blank input consumed an attempt: %d", round.Attempt)
		}
	}
}

func TestSubmitNoRound(t *testing.T) {
	e, _ := newTestEngine(store.NewMemory())
	if _, err := e.SubmitGuess(context.Background(), nil, "x"); !errors.Is(err, ErrNoRound) {
		t.Fatalf("got %v", err)
	}
}

func TestResume(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	first, _ := newTestEngine(kv, 2)
	round, _ := first.StartRound(ctx, words, kword.DifficultyNormal)
	first.SubmitGuess(ctx, round, "wrong")

	second, src := newTestEngine(kv, 0)
	resumed, err := second.StartRound(ctx, words, kword.DifficultyHard)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if src.calls != 0 {
		t.Fatal("resume should not draw a new word")
	}
	if resumed.Word != "사랑" || resumed.Attempt != 2 || resumed.Definition != "Love" {
		t.Fatalf("resumed = %+v", resumed)
	}
	if len(resumed.AcceptedAnswers) == 0 || resumed.AcceptedAnswers[0] != "sarang" {
		t.Fatalf("answers not recomputed: %q", resumed.AcceptedAnswers)
	}

	again, _ := second.StartRound(ctx, words, kword.DifficultyNormal)
	if again != resumed {
		t.Fatal("unresolved round should be returned unchanged")
	}
}

func TestResumeAfterResolutionStartsFresh(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	e, src := newTestEngine(kv, 0, 2)

	round, _ := e.StartRound(ctx, words, kword.DifficultyNormal)
	e.SubmitGuess(ctx, round, "annyeong")

	next, err := e.StartRound(ctx, words, kword.DifficultyNormal)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if next == round || next.Word != "사랑" || src.calls != 2 {
		t.Fatalf("expected a fresh round, got %+v", next)
	}
}

func TestCorruptRoundRecovered(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{broken"},
		{"attempt zero", `{"word":"안녕","definition":"Hello","attempt":0}`},
		{"attempt too high", `{"word":"안녕","definition":"Hello","attempt":4}`},
		{"empty word", `{"word":"","definition":"Hello","attempt":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := store.NewMemory()
			kv.Set(ctx, store.KeyRound, tt.raw)

			core, logs := observer.New(zapcore.WarnLevel)
			e := New(kv, WithIndexSource(&fixedSource{next: []int{1}}), WithLogger(zap.New(core)))

			round, err := e.StartRound(ctx, words, kword.DifficultyNormal)
			if err != nil {
				t.Fatalf("corrupt state must not surface: %v", err)
			}
			if round.Word != "물" || round.Attempt != 1 {
				t.Fatalf("expected fresh round, got %+v", round)
			}
			if logs.FilterMessage("discarding corrupt round").Len() != 1 {
				t.Fatalf("expected a warning, got %v", logs.All())
			}

			raw, _, _ := kv.Get(ctx, store.KeyRound)
			var p persistedRound
			if err := json.Unmarshal([]byte(raw), &p); err != nil || p.Word != "물" {
				t.Fatalf("fresh round not persisted: %q", raw)
			}
		})
	}
}

func TestStreakAcrossRounds(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(store.NewMemory(), 0, 2, 1)

	play := func(guess string) {
		t.Helper()
		round, err := e.StartRound(ctx, words, kword.DifficultyNormal)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		for !round.Resolved {
			if _, err := e.SubmitGuess(ctx, round, guess); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}
	}

	play("annyeong") // 안녕, win
	play("sarang")   // 사랑, win
	play("bul")      // 물, lost

	st, _ := e.Statistics(ctx)
	if st != (kword.Statistics{CurrentStreak: 0, MaxStreak: 2, TotalAttempts: 3, CorrectAnswers: 2}) {
		t.Fatalf("stats = %+v", st)
	}

	if err := e.ResetStatistics(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	st, _ = e.Statistics(ctx)
	if st != (kword.Statistics{}) {
		t.Fatalf("after reset %+v", st)
	}
}

// flakyBatch fails every Batch while fail is set.
type flakyBatch struct {
	*store.Memory
	fail bool
}

var errWrite = errors.New("write failed")

func (f *flakyBatch) Batch(ctx context.Context, set map[string]string, remove []string) error {
	if f.fail {
		return errWrite
	}
	return f.Memory.Batch(ctx, set, remove)
}

func TestStatisticsWriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := &flakyBatch{Memory: store.NewMemory(), fail: true}
	e := New(kv, WithIndexSource(&fixedSource{}))

	round, _ := e.StartRound(ctx, words, kword.DifficultyNormal)
	_, err := e.SubmitGuess(ctx, round, "annyeong")
	if !errors.Is(err, errWrite) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
	if round.Resolved {
		t.Fatal("round marked resolved although nothing was recorded")
	}
	if _, ok, _ := kv.Get(ctx, store.KeyRound); !ok {
		t.Fatal("round removed although statistics were not written")
	}

	kv.fail = false
	outcome, err := e.SubmitGuess(ctx, round, "annyeong")
	if err != nil || outcome.Kind != kword.OutcomeCorrect || !round.Resolved {
		t.Fatalf("retry = %+v, %v, resolved=%v", outcome, err, round.Resolved)
	}
	if _, ok, _ := kv.Get(ctx, store.KeyRound); ok {
		t.Fatal("round still stored after resolution")
	}
	st, _ := e.Statistics(ctx)
	if st.CorrectAnswers != 1 || st.CurrentStreak != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestExhaustedWriteFailureKeepsStreak(t *testing.T) {
	ctx := context.Background()
	kv := &flakyBatch{Memory: store.NewMemory()}
	e, _ := newTestEngine(kv, 0, 1)

	first, _ := e.StartRound(ctx, words, kword.DifficultyNormal)
	if _, err := e.SubmitGuess(ctx, first, "annyeong"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before, _ := e.Statistics(ctx)
	if before.CurrentStreak != 1 {
		t.Fatalf("streak = %d, want 1", before.CurrentStreak)
	}

	round, _ := e.StartRound(ctx, words, kword.DifficultyNormal)
	for _, g := range []string{"a", "b"} {
		if _, err := e.SubmitGuess(ctx, round, g); err != nil {
			t.Fatalf("submit %q: %v", g, err)
		}
	}

	kv.fail = true
	if _, err := e.SubmitGuess(ctx, round, "c"); !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
	if round.Resolved {
		t.Fatal("round marked resolved after a failed write")
	}
	if after, _ := e.Statistics(ctx); after != before {
		t.Fatalf("stats changed to %+v, want %+v", after, before)
	}

	// A restart resumes the same round on its last attempt.
	resumed, err := New(kv).StartRound(ctx, words, kword.DifficultyNormal)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Word != round.Word || resumed.Attempt != kword.MaxAttempts {
		t.Fatalf("resumed = %+v", resumed)
	}

	kv.fail = false
	outcome, err := e.SubmitGuess(ctx, round, "c")
	if err != nil || outcome.Kind != kword.OutcomeIncorrectExhausted {
		t.Fatalf("retry = %+v, %v", outcome, err)
	}
	if st, _ := e.Statistics(ctx); st.CurrentStreak != 0 || st.MaxStreak != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestStreakResetsOnlyOnExhaustion(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(store.NewMemory(), 0, 1)

	first, _ := e.StartRound(ctx, words, kword.DifficultyNormal)
	if _, err := e.SubmitGuess(ctx, first, "annyeong"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	round, _ := e.StartRound(ctx, words, kword.DifficultyNormal)
	for i, want := range []int{1, 1, 0} {
		if _, err := e.SubmitGuess(ctx, round, "wrong"); err != nil {
			t.Fatalf("guess %d: %v", i+1, err)
		}
		st, _ := e.Statistics(ctx)
		if st.CurrentStreak != want {
			t.Fatalf("after wrong guess %d streak = %d, want %d", i+1, st.CurrentStreak, want)
		}
	}
}

func TestAcceptedAnswersSchemes(t *testing.T) {
	e := New(store.NewMemory(), WithRomanizer(romanize.New(romanize.RevisedRomanization, romanize.McCuneReischauer, romanize.Yale)))

	for _, w := range words {
		answers := e.acceptedAnswers(w.Word)
		if len(answers) == 0 {
			t.Fatalf("%s: no answers", w.Word)
		}
		seen := map[string]bool{}
		for _, a := range answers {
			if seen[a] {
				t.Fatalf("%s: duplicate answer %q in %q", w.Word, a, answers)
			}
			seen[a] = true
			if normalize.Normalize(a) == "" {
				t.Fatalf("%s: answer %q normalizes to nothing", w.Word, a)
			}
			if !normalize.Equal(a, a) {
				t.Fatalf("%s: answer %q does not match itself", w.Word, a)
			}
		}
	}

	// rr and mr agree on 물
	if got := New(store.NewMemory()).acceptedAnswers("물"); len(got) != 1 || got[0] != "mul" {
		t.Fatalf("물 answers = %q", got)
	}
}

func TestCryptoSource(t *testing.T) {
	var src CryptoSource
	for i := 0; i < 50; i++ {
		v, err := src.Intn(3)
		if err != nil {
			t.Fatalf("Intn: %v", err)
		}
		if v < 0 || v >= 3 {
			t.Fatalf("Intn(3) = %d", v)
		}
	}
	if _, err := src.Intn(0); err == nil {
		t.Fatal("Intn(0) should fail")
	}
}
