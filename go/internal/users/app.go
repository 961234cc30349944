package users

import (
	"context"
	"errors"
	"fmt"
)

// App handles player lookup business logic.
type App struct {
	repo Repository
}

func NewApp(repo Repository) *App {
	return &App{repo: repo}
}

// Lookup resolves a player profile by id.
func (a *App) Lookup(ctx context.Context, id string) (*Player, error) {
	p, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}
	return p, nil
}

// Exists reports whether the player id resolves to a known profile.
func (a *App) Exists(ctx context.Context, id string) (bool, error) {
	_, err := a.repo.GetPlayer(ctx, id)
	if errors.Is(err, ErrUnknownPlayer) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
