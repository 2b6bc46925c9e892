package credentials

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is a process-local Holder for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]string)}
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrBlankCredential
	}
	s.mu.Lock()
	s.keys[sessionID] = key
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) IsSet(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[sessionID]
	return ok, nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[sessionID], nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.keys, sessionID)
	s.mu.Unlock()
	return nil
}
