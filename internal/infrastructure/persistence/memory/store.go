// Package memory implements an in-memory Store for tests and development.
// Semantics mirror the durable backends: whole-blob writes, atomic Update
// under a mutex.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence"
)

// Store keeps blobs in a map guarded by a mutex.
type Store struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	closed bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Load implements persistence.Store.
func (s *Store) Load(_ context.Context, key string, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return persistence.ErrStoreClosed
	}
	raw, ok := s.blobs[key]
	if !ok {
		return persistence.ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("memory: decode %q: %w", key, err)
	}
	return nil
}

// Save implements persistence.Store.
func (s *Store) Save(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("memory: encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrStoreClosed
	}
	s.blobs[key] = raw
	return nil
}

// Update implements persistence.Store. The whole read-modify-write runs under
// the store mutex, so concurrent updates cannot lose writes.
func (s *Store) Update(_ context.Context, key string, fn persistence.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrStoreClosed
	}

	next, err := fn(s.blobs[key])
	if err != nil {
		return err
	}
	s.blobs[key] = next
	return nil
}

// Close implements persistence.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
