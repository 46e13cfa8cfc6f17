// Package prefs persists small user preferences between runs.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/treykane/cli-journal/internal/logging"
)

// KeyLastDirectory holds the directory the user last opened.
const KeyLastDirectory = "lastDirectory"

var log = logging.New("prefs")

// Store is a flat key/value store with one file per key.
type Store struct {
	d    *diskv.Diskv
	base string
}

// Open returns a Store rooted at dir. The directory is created lazily on the
// first write.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("prefs: empty base path")
	}
	base := filepath.Clean(dir)
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     base,
			Transform:    flatTransform,
			CacheSizeMax: 64 * 1024,
		}),
		base: base,
	}, nil
}

func flatTransform(string) []string { return []string{} }

// Path returns the directory backing the store.
func (s *Store) Path() string { return s.base }

// Get returns the value stored under key, or "" when the key is unset.
func (s *Store) Get(key string) (string, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read preference %q: %w", key, err)
	}
	return string(val), nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("write preference %q: %w", key, err)
	}
	log.Debug("stored preference", "key", key)
	return nil
}

// LastDirectory returns the persisted lastDirectory value.
func (s *Store) LastDirectory() (string, error) {
	return s.Get(KeyLastDirectory)
}

// SetLastDirectory persists dir as lastDirectory.
func (s *Store) SetLastDirectory(dir string) error {
	return s.Set(KeyLastDirectory, dir)
}
