package users

import (
	"context"
	"fmt"
	"sync"
)

// Repository defines what the identity lookup needs from player storage.
type Repository interface {
	GetPlayer(ctx context.Context, id string) (*Player, error)
	UpsertPlayer(ctx context.Context, p Player) error
	ListPlayers(ctx context.Context) ([]Player, error)
}

// MemoryRepository is a map-backed player store.
type MemoryRepository struct {
	mu      sync.RWMutex
	players map[string]Player
}

func NewMemoryRepository(seed ...Player) *MemoryRepository {
	r := &MemoryRepository{players: make(map[string]Player)}
	for _, p := range seed {
		r.players[p.ID] = p
	}
	return r
}

func (r *MemoryRepository) GetPlayer(ctx context.Context, id string) (*Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", id, ErrUnknownPlayer)
	}
	return &p, nil
}

func (r *MemoryRepository) UpsertPlayer(ctx context.Context, p Player) error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	r.mu.Lock()
	r.players[p.ID] = p
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) ListPlayers(ctx context.Context) ([]Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	return out, nil
}
