// Package stats keeps the streak and win-rate counters.
package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/store"
)

var counterKeys = []string{
	store.KeyCurrentStreak,
	store.KeyMaxStreak,
	store.KeyTotalAttempts,
	store.KeyCorrectAnswers,
}

// Apply returns the counters after one resolved round.
func Apply(s kword.Statistics, correct bool) kword.Statistics {
	s.TotalAttempts++
	if correct {
		s.CurrentStreak++
		s.CorrectAnswers++
		if s.CurrentStreak > s.MaxStreak {
			s.MaxStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}
	return s
}

// Store reads and writes the four counters through a key/value store.
type Store struct {
	kv store.Store
}

// NewStore creates a statistics store.
func NewStore(kv store.Store) *Store {
	return &Store{kv: kv}
}

// Snapshot returns the current counters. Missing or malformed values read as 0.
func (s *Store) Snapshot(ctx context.Context) (kword.Statistics, error) {
	var st kword.Statistics
	fields := []*int{&st.CurrentStreak, &st.MaxStreak, &st.TotalAttempts, &st.CorrectAnswers}

	for i, key := range counterKeys {
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			return kword.Statistics{}, fmt.Errorf("reading statistics: %w", err)
		}
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			continue
		}
		*fields[i] = n
	}

	return st, nil
}

// RecordOutcome applies one round result and writes all counters at once.
// Keys in remove are deleted in the same batch.
func (s *Store) RecordOutcome(ctx context.Context, correct bool, remove ...string) (kword.Statistics, error) {
	current, err := s.Snapshot(ctx)
	if err != nil {
		return kword.Statistics{}, err
	}

	next := Apply(current, correct)
	if err := s.kv.Batch(ctx, encode(next), remove); err != nil {
		return kword.Statistics{}, fmt.Errorf("writing statistics: %w", err)
	}
	return next, nil
}

// Reset clears every counter.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Batch(ctx, nil, counterKeys); err != nil {
		return fmt.Errorf("resetting statistics: %w", err)
	}
	return nil
}

func encode(st kword.Statistics) map[string]string {
	return map[string]string{
		store.KeyCurrentStreak:  strconv.Itoa(st.CurrentStreak),
		store.KeyMaxStreak:      strconv.Itoa(st.MaxStreak),
		store.KeyTotalAttempts:  strconv.Itoa(st.TotalAttempts),
		store.KeyCorrectAnswers: strconv.Itoa(st.CorrectAnswers),
	}
}
