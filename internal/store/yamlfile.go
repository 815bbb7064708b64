package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLFile is a Store that keeps every key in one YAML document.
// Each write rewrites the file through a temp file and rename.
type YAMLFile struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenYAMLFile loads path, or starts empty if it does not exist.
func OpenYAMLFile(path string) (*YAMLFile, error) {
	f := &YAMLFile{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &f.data); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}
	if f.data == nil {
		f.data = make(map[string]string)
	}
	return f, nil
}

// Get returns the value for key.
func (f *YAMLFile) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

// Set stores value under key and saves the file.
func (f *YAMLFile) Set(ctx context.Context, key, value string) error {
	return f.Batch(ctx, map[string]string{key: value}, nil)
}

// Remove deletes key and saves the file.
func (f *YAMLFile) Remove(ctx context.Context, key string) error {
	return f.Batch(ctx, nil, []string{key})
}

// Batch applies sets and removes, then saves once. On a failed save the
// in-memory state is rolled back.
func (f *YAMLFile) Batch(_ context.Context, set map[string]string, remove []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[string]string, len(f.data)+len(set))
	for k, v := range f.data {
		next[k] = v
	}
	for k, v := range set {
		next[k] = v
	}
	for _, k := range remove {
		delete(next, k)
	}

	if err := f.save(next); err != nil {
		return err
	}
	f.data = next
	return nil
}

func (f *YAMLFile) save(data map[string]string) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// Close is a no-op; every write is already on disk.
func (f *YAMLFile) Close() error { return nil }
