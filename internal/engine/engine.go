// Package engine runs quiz rounds: word selection, answer matching, the
// attempt limit and the statistics each resolved round produces.
package engine

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"github.com/f3rmion/kword/internal/dictionary"
	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/normalize"
	"github.com/f3rmion/kword/internal/romanize"
	"github.com/f3rmion/kword/internal/stats"
	"github.com/f3rmion/kword/internal/store"
)

var (
	// ErrNoEntriesForDifficulty is returned when the difficulty filter
	// leaves nothing to pick from.
	ErrNoEntriesForDifficulty = errors.New("no dictionary entries for difficulty")

	// ErrRoundResolved is returned when a guess is submitted to a round
	// that has already ended.
	ErrRoundResolved = errors.New("round already resolved")

	// ErrNoRound is returned when SubmitGuess is called without a round.
	ErrNoRound = errors.New("no active round")
)

// IndexSource picks a uniform index in [0, n).
type IndexSource interface {
	Intn(n int) (int, error)
}

// CryptoSource draws indices from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid range %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random index: %w", err)
	}
	return int(v.Int64()), nil
}

// Engine owns the lifecycle of the current round.
type Engine struct {
	kv        store.Store
	stats     *stats.Store
	romanizer *romanize.Romanizer
	rand      IndexSource
	log       *zap.Logger

	round *kword.Round
}

// Option configures an Engine.
type Option func(*Engine)

// WithIndexSource replaces the crypto/rand index source.
func WithIndexSource(src IndexSource) Option {
	return func(e *Engine) { e.rand = src }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRomanizer sets the romanizer used for accepted answers.
func WithRomanizer(r *romanize.Romanizer) Option {
	return func(e *Engine) { e.romanizer = r }
}

// New creates an engine persisting to kv.
func New(kv store.Store, opts ...Option) *Engine {
	e := &Engine{
		kv:        kv,
		stats:     stats.NewStore(kv),
		romanizer: romanize.New(),
		rand:      CryptoSource{},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Round returns the round last started or resumed, or nil.
func (e *Engine) Round() *kword.Round {
	return e.round
}

// persistedRound is the stored shape of an unresolved round.
type persistedRound struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Attempt    int    `json:"attempt"`
}

// StartRound resumes the stored unresolved round if there is a valid one,
// otherwise picks a new entry from the difficulty pool and persists it.
func (e *Engine) StartRound(ctx context.Context, entries []kword.DictionaryEntry, difficulty kword.Difficulty) (*kword.Round, error) {
	if e.round != nil && !e.round.Resolved {
		return e.round, nil
	}

	round, err := e.resume(ctx)
	if err != nil {
		return nil, err
	}
	if round != nil {
		e.round = round
		e.log.Info("resumed round",
			zap.String("word", round.Word),
			zap.Int("attempt", round.Attempt))
		return round, nil
	}

	pool := dictionary.Filter(entries, difficulty)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEntriesForDifficulty, difficulty)
	}

	idx, err := e.rand.Intn(len(pool))
	if err != nil {
		return nil, fmt.Errorf("selecting word: %w", err)
	}
	entry := pool[idx]

	round = &kword.Round{
		Word:            entry.Word,
		Definition:      entry.Definition,
		AcceptedAnswers: e.acceptedAnswers(entry.Word),
		Attempt:         1,
	}
	if err := e.persist(ctx, round); err != nil {
		return nil, err
	}

	e.round = round
	e.log.Info("started round",
		zap.String("word", round.Word),
		zap.String("difficulty", string(difficulty)),
		zap.Int("pool", len(pool)))
	return round, nil
}

// resume loads the stored round. Corrupt state is discarded and reported as
// no round at all.
func (e *Engine) resume(ctx context.Context) (*kword.Round, error) {
	raw, ok, err := e.kv.Get(ctx, store.KeyRound)
	if err != nil {
		return nil, fmt.Errorf("reading round: %w", err)
	}
	if !ok {
		return nil, nil
	}

	round, reason := e.decode(raw)
	if reason == "" {
		return round, nil
	}

	e.log.Warn("discarding corrupt round", zap.String("reason", reason), zap.String("raw", raw))
	if err := e.kv.Remove(ctx, store.KeyRound); err != nil {
		return nil, fmt.Errorf("removing corrupt round: %w", err)
	}
	return nil, nil
}

func (e *Engine) decode(raw string) (*kword.Round, string) {
	var p persistedRound
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err.Error()
	}
	if strings.TrimSpace(p.Word) == "" {
		return nil, "empty word"
	}
	if p.Attempt < 1 || p.Attempt > kword.MaxAttempts {
		return nil, fmt.Sprintf("attempt %d out of range", p.Attempt)
	}

	answers := e.acceptedAnswers(p.Word)
	if len(answers) == 0 {
		return nil, "no accepted answers"
	}

	return &kword.Round{
		Word:            p.Word,
		Definition:      p.Definition,
		AcceptedAnswers: answers,
		Attempt:         p.Attempt,
	}, ""
}

// acceptedAnswers romanizes word in every configured scheme, trimmed and
// without duplicates. The first element is the canonical answer.
func (e *Engine) acceptedAnswers(word string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range e.romanizer.Romanize(word) {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func (e *Engine) persist(ctx context.Context, r *kword.Round) error {
	data, err := json.Marshal(persistedRound{Word: r.Word, Definition: r.Definition, Attempt: r.Attempt})
	if err != nil {
		return fmt.Errorf("encoding round: %w", err)
	}
	if err := e.kv.Set(ctx, store.KeyRound, string(data)); err != nil {
		return fmt.Errorf("saving round: %w", err)
	}
	return nil
}

// SubmitGuess evaluates raw against round. A blank guess is a retry that
// does not consume an attempt. If the result cannot be recorded the round
// stays open and the error is returned.
func (e *Engine) SubmitGuess(ctx context.Context, round *kword.Round, raw string) (kword.Outcome, error) {
	if round == nil {
		return kword.Outcome{}, ErrNoRound
	}
	if round.Resolved {
		return kword.Outcome{}, ErrRoundResolved
	}

	guess := normalize.Normalize(raw)
	if guess == "" {
		return kword.Outcome{Kind: kword.OutcomeIncorrectRetry, AttemptsLeft: round.AttemptsLeft()}, nil
	}

	for _, answer := range round.AcceptedAnswers {
		if normalize.Equal(answer, guess) {
			return kword.Outcome{Kind: kword.OutcomeCorrect}, e.resolve(ctx, round, true)
		}
	}

	if round.Attempt < kword.MaxAttempts {
		round.Attempt++
		outcome := kword.Outcome{Kind: kword.OutcomeIncorrectRetry, AttemptsLeft: round.AttemptsLeft()}
		if err := e.persist(ctx, round); err != nil {
			return outcome, err
		}
		e.log.Debug("incorrect guess",
			zap.String("word", round.Word),
			zap.Int("attempts_left", outcome.AttemptsLeft))
		return outcome, nil
	}

	outcome := kword.Outcome{Kind: kword.OutcomeIncorrectExhausted, CorrectAnswer: round.CanonicalAnswer()}
	return outcome, e.resolve(ctx, round, false)
}

// resolve records the result and clears the stored round in one batch. The
// round is only marked resolved once that write succeeds, so a failed write
// leaves it open and stored.
func (e *Engine) resolve(ctx context.Context, round *kword.Round, correct bool) error {
	st, err := e.stats.RecordOutcome(ctx, correct, store.KeyRound)
	if err != nil {
		return err
	}
	round.Resolved = true

	e.log.Info("round resolved",
		zap.String("word", round.Word),
		zap.Bool("correct", correct),
		zap.Int("attempt", round.Attempt),
		zap.Int("streak", st.CurrentStreak))
	return nil
}

// Statistics returns the current counters.
func (e *Engine) Statistics(ctx context.Context) (kword.Statistics, error) {
	return e.stats.Snapshot(ctx)
}

// ResetStatistics zeroes every counter.
func (e *Engine) ResetStatistics(ctx context.Context) error {
	if err := e.stats.Reset(ctx); err != nil {
		return err
	}
	e.log.Info("statistics reset")
	return nil
}
