// Package file implements a durable file-backed Store: one <key>.json file
// per collection under a data directory, written through on every mutation.
// Suitable for the offline single-device deployments the hub targets.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence"
)

// Store persists blobs as JSON files in a single directory. A process-wide
// mutex serializes Update, matching the single-actor execution model while
// keeping read-modify-write atomic if a second actor ever appears.
type Store struct {
	dir    string
	mu     sync.Mutex
	closed bool
}

// NewStore opens (creating if needed) the data directory.
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file: create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// path returns the blob file for a key.
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// read returns the raw blob for a key, or nil if it has never been written.
func (s *Store) read(key string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, persistence.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file: read %q: %w", key, err)
	}
	return raw, nil
}

// write replaces the blob for a key atomically (temp file + rename), so a
// crash mid-write never leaves a truncated collection behind.
func (s *Store) write(key string, raw []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("file: temp for %q: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file: close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file: rename %q: %w", key, err)
	}
	return nil
}

// Load implements persistence.Store.
func (s *Store) Load(_ context.Context, key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrStoreClosed
	}
	raw, err := s.read(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("file: decode %q: %w", key, err)
	}
	return nil
}

// Save implements persistence.Store.
func (s *Store) Save(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("file: encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrStoreClosed
	}
	return s.write(key, raw)
}

// Update implements persistence.Store.
func (s *Store) Update(_ context.Context, key string, fn persistence.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrStoreClosed
	}

	raw, err := s.read(key)
	if err != nil && !errors.Is(err, persistence.ErrKeyNotFound) {
		return err
	}

	next, err := fn(raw)
	if err != nil {
		return err
	}
	return s.write(key, next)
}

// Close implements persistence.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
