package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
)

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]domain.Diagram
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]domain.Diagram), now: time.Now}
}

func (s *MemoryStore) Insert(_ context.Context, d *domain.Diagram) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	d.ID = uuid.New().String()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.items[d.ID] = *d
	return nil
}

func (s *MemoryStore) Update(_ context.Context, d *domain.Diagram) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[d.ID]
	if !ok || existing.OwnerID != d.OwnerID {
		return domain.ErrNotFound
	}
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = s.now().UTC()
	s.items[d.ID] = *d
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Diagram, error) {
	return s.filter(func(d domain.Diagram) bool { return d.OwnerID == ownerID }), nil
}

func (s *MemoryStore) ListPublic(_ context.Context) ([]domain.Diagram, error) {
	return s.filter(func(d domain.Diagram) bool { return d.IsPublic }), nil
}

func (s *MemoryStore) Delete(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.items[id]; ok && d.OwnerID == ownerID {
		delete(s.items, id)
	}
	return nil
}

func (s *MemoryStore) filter(keep func(domain.Diagram) bool) []domain.Diagram {
	s.mu.RLock()
	out := []domain.Diagram{}
	for _, d := range s.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
