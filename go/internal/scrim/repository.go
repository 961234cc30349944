package scrim

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mcdev12/scrimmage/go/internal/models"
)

// ErrNotFound is returned for an unknown scrim, team, or player.
var ErrNotFound = errors.New("not found")

// ErrNotEligible is returned when a player's profile does not satisfy the
// match constraints (latency, region, skill range).
var ErrNotEligible = errors.New("player not eligible for this scrim")

// Repository defines what the app layer needs from scrim storage. Save is
// atomic per record; no cross-record transactional behavior is assumed, so
// callers hold the per-scrim lock across get-mutate-save.
type Repository interface {
	SaveScrim(ctx context.Context, s *models.Scrim) error
	GetScrim(ctx context.Context, id uuid.UUID) (*models.Scrim, error)
	ListScrims(ctx context.Context) ([]*models.Scrim, error)
}
