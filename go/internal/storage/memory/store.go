package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/scrimmage/go/internal/models"
	"github.com/mcdev12/scrimmage/go/internal/scrim"
)

// Store keeps scrims in process memory. Records are deep-copied on the way
// in and out so callers can never mutate stored state without going through
// SaveScrim.
type Store struct {
	mu     sync.RWMutex
	scrims map[uuid.UUID]*models.Scrim
}

func NewStore() *Store {
	return &Store{scrims: make(map[uuid.UUID]*models.Scrim)}
}

func (s *Store) SaveScrim(ctx context.Context, sc *models.Scrim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrims[sc.ID] = sc.Clone()
	return nil
}

func (s *Store) GetScrim(ctx context.Context, id uuid.UUID) (*models.Scrim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scrims[id]
	if !ok {
		return nil, fmt.Errorf("scrim %s: %w", id, scrim.ErrNotFound)
	}
	return sc.Clone(), nil
}

func (s *Store) ListScrims(ctx context.Context) ([]*models.Scrim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Scrim, 0, len(s.scrims))
	for _, sc := range s.scrims {
		out = append(out, sc.Clone())
	}
	return out, nil
}
