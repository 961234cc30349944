package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS scrims (
	id             UUID PRIMARY KEY,
	game           TEXT NOT NULL,
	creator_id     TEXT NOT NULL,
	range_min      INTEGER NOT NULL,
	range_max      INTEGER NOT NULL,
	format         TEXT NOT NULL,
	region         TEXT NOT NULL,
	max_latency_ms INTEGER NOT NULL,
	mode           TEXT NOT NULL,
	team_size      INTEGER NOT NULL,
	start_at       TIMESTAMPTZ,
	end_at         TIMESTAMPTZ,
	state          TEXT NOT NULL,
	team1          JSONB NOT NULL,
	team2          JSONB NOT NULL,
	waitlist       JSONB NOT NULL,
	stats          JSONB NOT NULL,
	result         JSONB,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scrims_state ON scrims (state);
CREATE INDEX IF NOT EXISTS idx_scrims_start_at ON scrims (start_at) WHERE start_at IS NOT NULL;
`

// InitSchema creates the scrims table if it does not exist.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
