// Package symbolcache persists the resolved symbol universe between runs.
package symbolcache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load when no cache file exists yet.
var ErrNotFound = errors.New("symbol cache not found")

// Store keeps the symbol list as a JSON string array on disk.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the cached symbol list. A missing file returns ErrNotFound;
// an unreadable or undecodable file returns the underlying error so the
// caller can degrade to an empty universe with a warning.
func (s *Store) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "read symbol cache")
	}

	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil {
		return nil, errors.Wrapf(err, "decode symbol cache %s", s.path)
	}
	return symbols, nil
}

// Save rewrites the cache file with the given symbol list.
func (s *Store) Save(symbols []string) error {
	if symbols == nil {
		symbols = []string{}
	}
	data, err := json.MarshalIndent(symbols, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode symbol cache")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create symbol cache dir")
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}
