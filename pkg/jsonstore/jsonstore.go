// Package jsonstore persists each collection as a single JSON file on disk.
// Every operation is a whole-file read-modify-write under one mutex, so two
// processes sharing a data directory are not serialized against each other;
// within one process, writes are atomic (temp file + rename).
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a flat-file JSON database rooted at a data directory
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates the data directory if needed and returns a store
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// readCollection loads a collection file into a slice. A missing file is an
// empty collection, not an error.
func readCollection[T any](s *Store, name string) ([]T, error) {
	path := filepath.Join(s.dir, name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// writeCollection replaces a collection file atomically
func writeCollection[T any](s *Store, name string, records []T) error {
	path := filepath.Join(s.dir, name+".json")

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
