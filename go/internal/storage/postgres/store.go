package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/scrimmage/go/internal/models"
	"github.com/mcdev12/scrimmage/go/internal/scrim"
	"github.com/mcdev12/scrimmage/go/internal/scrim/state"
)

// Store persists scrims in Postgres. Lifecycle scalars live in typed columns
// so the scheduler can filter on them; composite parts (rosters, waitlist,
// stats, result) are stored as JSONB documents.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const upsertScrim = `
INSERT INTO scrims (
	id, game, creator_id, range_min, range_max, format, region,
	max_latency_ms, mode, team_size, start_at, end_at, state,
	team1, team2, waitlist, stats, result, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
)
ON CONFLICT (id) DO UPDATE SET
	start_at   = EXCLUDED.start_at,
	end_at     = EXCLUDED.end_at,
	state      = EXCLUDED.state,
	team1      = EXCLUDED.team1,
	team2      = EXCLUDED.team2,
	waitlist   = EXCLUDED.waitlist,
	stats      = EXCLUDED.stats,
	result     = EXCLUDED.result,
	updated_at = EXCLUDED.updated_at`

func (s *Store) SaveScrim(ctx context.Context, sc *models.Scrim) error {
	team1, err := json.Marshal(sc.Team1)
	if err != nil {
		return fmt.Errorf("failed to marshal team1: %w", err)
	}
	team2, err := json.Marshal(sc.Team2)
	if err != nil {
		return fmt.Errorf("failed to marshal team2: %w", err)
	}
	waitlist, err := json.Marshal(sc.Waitlist.Entries())
	if err != nil {
		return fmt.Errorf("failed to marshal waitlist: %w", err)
	}
	stats, err := json.Marshal(sc.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	var result []byte
	if sc.Result != nil {
		result, err = json.Marshal(sc.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
	}

	_, err = s.pool.Exec(ctx, upsertScrim,
		sc.ID, sc.Game, sc.CreatorID, sc.RangeMin, sc.RangeMax,
		sc.Format, sc.Region, sc.MaxLatencyMs, sc.Mode, sc.TeamSize,
		sc.StartAt, sc.EndAt, string(sc.State),
		team1, team2, waitlist, stats, result,
		sc.CreatedAt, sc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save scrim: %w", err)
	}
	return nil
}

const selectScrim = `
SELECT id, game, creator_id, range_min, range_max, format, region,
	max_latency_ms, mode, team_size, start_at, end_at, state,
	team1, team2, waitlist, stats, result, created_at, updated_at
FROM scrims`

func (s *Store) GetScrim(ctx context.Context, id uuid.UUID) (*models.Scrim, error) {
	row := s.pool.QueryRow(ctx, selectScrim+" WHERE id = $1", id)
	sc, err := scanScrim(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scrim %s: %w", id, scrim.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Store) ListScrims(ctx context.Context) ([]*models.Scrim, error) {
	rows, err := s.pool.Query(ctx, selectScrim+" ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list scrims: %w", err)
	}
	defer rows.Close()

	var out []*models.Scrim
	for rows.Next() {
		sc, err := scanScrim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scrims: %w", err)
	}
	return out, nil
}

// scanScrim rebuilds a scrim from one row. Loaded waitlists are renumbered
// and, for scrims still in a pre-confirmation state, the lifecycle state is
// recomputed from the rosters rather than trusted from the column.
func scanScrim(row pgx.Row) (*models.Scrim, error) {
	var (
		sc        models.Scrim
		stateName string
		startAt   *time.Time
		endAt     *time.Time
		team1     []byte
		team2     []byte
		waitlist  []byte
		stats     []byte
		result    []byte
	)
	err := row.Scan(
		&sc.ID, &sc.Game, &sc.CreatorID, &sc.RangeMin, &sc.RangeMax,
		&sc.Format, &sc.Region, &sc.MaxLatencyMs, &sc.Mode, &sc.TeamSize,
		&startAt, &endAt, &stateName,
		&team1, &team2, &waitlist, &stats, &result,
		&sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sc.StartAt = startAt
	sc.EndAt = endAt

	st, err := models.ParseState(stateName)
	if err != nil {
		return nil, err
	}
	sc.State = st

	sc.Team1 = &models.Roster{}
	if err := json.Unmarshal(team1, sc.Team1); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team1: %w", err)
	}
	sc.Team2 = &models.Roster{}
	if err := json.Unmarshal(team2, sc.Team2); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team2: %w", err)
	}

	var entries []models.WaitlistEntry
	if err := json.Unmarshal(waitlist, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal waitlist: %w", err)
	}
	sc.Waitlist = models.RestoreWaitlist(entries)

	sc.Stats = []models.StatLine{}
	if err := json.Unmarshal(stats, &sc.Stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	if result != nil {
		sc.Result = &models.Result{}
		if err := json.Unmarshal(result, sc.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}

	state.Recompute(&sc)
	return &sc, nil
}
