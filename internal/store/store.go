// Package store provides the key/value persistence used for rounds,
// statistics and settings.
package store

import (
	"context"
	"fmt"
	"path/filepath"
)

// Logical keys.
const (
	KeyRound = "round"

	KeyCurrentStreak  = "stats.current_streak"
	KeyMaxStreak      = "stats.max_streak"
	KeyTotalAttempts  = "stats.total_attempts"
	KeyCorrectAnswers = "stats.correct_answers"

	KeyDifficulty    = "settings.difficulty"
	KeyTheme         = "settings.theme"
	KeyHelpDismissed = "help.dismissed"
)

// Store is a string key/value store.
// Batch applies all sets and removes as one update.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Batch(ctx context.Context, set map[string]string, remove []string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverYAML   = "yaml"
	DriverMemory = "memory"
)

// Open opens a store for the given driver. An empty path is resolved
// against dir using the driver's default file name.
func Open(driver, path, dir string) (Store, error) {
	switch driver {
	case DriverSQLite, "":
		if path == "" {
			path = filepath.Join(dir, "kword.db")
		}
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverYAML:
		if path == "" {
			path = filepath.Join(dir, "state.yaml")
		}
		f, err := OpenYAMLFile(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
