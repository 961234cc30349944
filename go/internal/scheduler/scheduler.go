package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/scrimmage/go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultTimezone = "America/Argentina/Buenos_Aires"
)

// Starter is the slice of the scrim app the scheduler drives. StartScrim is
// the same entry point operators use; the scheduler adds no privileged path.
type Starter interface {
	ListScrims(ctx context.Context) ([]*models.Scrim, error)
	StartScrim(ctx context.Context, id uuid.UUID) (*models.Scrim, error)
}

type Config struct {
	Interval time.Duration
	Timezone string
}

func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
		Timezone: DefaultTimezone,
	}
}

// Scheduler periodically scans stored scrims and starts the CONFIRMED ones
// whose scheduled time has arrived. Comparisons are at minute precision, so
// a start scheduled for 09:00 fires on the first tick at or after 09:00.
// Nothing ever finishes a match on a timer.
type Scheduler struct {
	app      Starter
	clock    clockwork.Clock
	interval time.Duration
	loc      *time.Location
}

func New(app Starter, clock clockwork.Clock, cfg Config) (*Scheduler, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		app:      app,
		clock:    clock,
		interval: cfg.Interval,
		loc:      loc,
	}, nil
}

// Run ticks until the context is cancelled. An in-flight tick completes
// before Run returns.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info().
		Dur("interval", s.interval).
		Str("timezone", s.loc.String()).
		Msg("scheduler started")

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler stopped")
			return
		case <-ticker.Chan():
			s.Tick(ctx)
		}
	}
}

// Tick runs one scan. A failure to start one scrim is logged and does not
// stop the rest of the scan; a scrim started by an earlier tick is simply no
// longer CONFIRMED, so re-ticking the same minute is harmless.
func (s *Scheduler) Tick(ctx context.Context) {
	scrims, err := s.app.ListScrims(ctx)
	if err != nil {
		log.Error().Err(err).Msg("scheduler failed to list scrims")
		return
	}

	now := s.clock.Now().Truncate(time.Minute)
	for _, sc := range scrims {
		if sc.State != models.StateConfirmed || sc.StartAt == nil {
			continue
		}
		if sc.StartAt.Truncate(time.Minute).After(now) {
			continue
		}
		if _, err := s.app.StartScrim(ctx, sc.ID); err != nil {
			log.Error().
				Err(err).
				Str("scrim_id", sc.ID.String()).
				Msg("scheduler failed to start scrim")
			continue
		}
		log.Info().
			Str("scrim_id", sc.ID.String()).
			Str("scheduled_for", sc.StartAt.In(s.loc).Format(time.RFC3339)).
			Msg("started scrim at scheduled time")
	}
}
