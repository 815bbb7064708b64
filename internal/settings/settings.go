// Package settings persists user preferences and the help flag.
package settings

import (
	"context"
	"fmt"

	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/store"
)

// Store reads and writes settings through a key/value store.
type Store struct {
	kv store.Store
}

// NewStore creates a settings store.
func NewStore(kv store.Store) *Store {
	return &Store{kv: kv}
}

// Load returns the saved settings. Missing or unknown values fall back to
// the defaults.
func (s *Store) Load(ctx context.Context) (kword.Settings, error) {
	out := kword.DefaultSettings()

	raw, ok, err := s.kv.Get(ctx, store.KeyDifficulty)
	if err != nil {
		return out, fmt.Errorf("reading difficulty: %w", err)
	}
	if ok {
		if d, err := kword.ParseDifficulty(raw); err == nil {
			out.Difficulty = d
		}
	}

	raw, ok, err = s.kv.Get(ctx, store.KeyTheme)
	if err != nil {
		return out, fmt.Errorf("reading theme: %w", err)
	}
	if ok {
		if t, err := kword.ParseTheme(raw); err == nil {
			out.Theme = t
		}
	}

	return out, nil
}

// Save writes both settings.
func (s *Store) Save(ctx context.Context, v kword.Settings) error {
	err := s.kv.Batch(ctx, map[string]string{
		store.KeyDifficulty: string(v.Difficulty),
		store.KeyTheme:      string(v.Theme),
	}, nil)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// SetDifficulty saves only the difficulty.
func (s *Store) SetDifficulty(ctx context.Context, d kword.Difficulty) error {
	if err := s.kv.Set(ctx, store.KeyDifficulty, string(d)); err != nil {
		return fmt.Errorf("saving difficulty: %w", err)
	}
	return nil
}

// SetTheme saves only the theme.
func (s *Store) SetTheme(ctx context.Context, t kword.Theme) error {
	if err := s.kv.Set(ctx, store.KeyTheme, string(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// HelpDismissed reports whether the user asked not to see the help again.
func (s *Store) HelpDismissed(ctx context.Context) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, store.KeyHelpDismissed)
	if err != nil {
		return false, fmt.Errorf("reading help flag: %w", err)
	}
	return ok && raw == "true", nil
}

// DismissHelp stores the "don't show help again" flag.
func (s *Store) DismissHelp(ctx context.Context) error {
	if err := s.kv.Set(ctx, store.KeyHelpDismissed, "true"); err != nil {
		return fmt.Errorf("saving help flag: %w", err)
	}
	return nil
}

// NextDifficulty returns the difficulty after d in menu order, wrapping around.
func NextDifficulty(d kword.Difficulty) kword.Difficulty {
	for i, v := range kword.Difficulties {
		if v == d {
			return kword.Difficulties[(i+1)%len(kword.Difficulties)]
		}
	}
	return kword.DifficultyNormal
}

// NextTheme returns the theme after t in menu order, wrapping around.
func NextTheme(t kword.Theme) kword.Theme {
	for i, v := range kword.Themes {
		if v == t {
			return kword.Themes[(i+1)%len(kword.Themes)]
		}
	}
	return kword.ThemeAuto
}
