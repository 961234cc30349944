package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scrimmage/go/internal/events"
	"github.com/mcdev12/scrimmage/go/internal/gateway"
	"github.com/mcdev12/scrimmage/go/internal/scheduler"
	"github.com/mcdev12/scrimmage/go/internal/scrim"
	"github.com/mcdev12/scrimmage/go/internal/storage/memory"
	"github.com/mcdev12/scrimmage/go/internal/storage/postgres"
	"github.com/mcdev12/scrimmage/go/internal/users"
)

// Services holds the wired application graph.
type Services struct {
	Users     *users.App
	Scrims    *scrim.App
	Bus       *events.Bus
	Scheduler *scheduler.Scheduler
	Gateway   *gateway.ConnectionManager
	Consumer  *gateway.Consumer

	jetstream *events.JetStreamPublisher
	pool      *pgxpool.Pool
}

func setupServices(ctx context.Context, config *Config) (*Services, error) {
	clock := clockwork.NewRealClock()
	bus := events.NewBus()

	var repo scrim.Repository
	var pool *pgxpool.Pool
	switch config.Storage.Driver {
	case "postgres":
		var err error
		pool, err = setupDatabase(ctx)
		if err != nil {
			return nil, err
		}
		if err := postgres.InitSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		repo = postgres.NewStore(pool)
	case "memory", "":
		repo = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	publishers := events.Fanout{bus}
	var js *events.JetStreamPublisher
	if config.NATS.URL != "" {
		jsConfig := events.DefaultJetStreamConfig()
		jsConfig.URL = config.NATS.URL
		var err error
		js, err = events.NewJetStreamPublisher(jsConfig)
		if err != nil {
			if pool != nil {
				pool.Close()
			}
			return nil, fmt.Errorf("failed to connect jetstream publisher: %w", err)
		}
		publishers = append(publishers, js)
		log.Info().Str("url", config.NATS.URL).Msg("jetstream publisher connected")
	}

	userApp := users.NewApp(users.NewMemoryRepository())
	scrimApp := scrim.NewApp(repo, userApp, publishers, clock)

	var interval time.Duration
	if config.Scheduler.Interval != "" {
		d, err := time.ParseDuration(config.Scheduler.Interval)
		if err != nil {
			if js != nil {
				js.Close()
			}
			if pool != nil {
				pool.Close()
			}
			return nil, fmt.Errorf("invalid scheduler interval %q: %w", config.Scheduler.Interval, err)
		}
		interval = d
	}

	sched, err := scheduler.New(scrimApp, clock, scheduler.Config{
		Interval: interval,
		Timezone: config.Scheduler.Timezone,
	})
	if err != nil {
		if js != nil {
			js.Close()
		}
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("failed to build scheduler: %w", err)
	}

	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	consumer := gateway.NewConsumer(bus, cm)

	return &Services{
		Users:     userApp,
		Scrims:    scrimApp,
		Bus:       bus,
		Scheduler: sched,
		Gateway:   cm,
		Consumer:  consumer,
		jetstream: js,
		pool:      pool,
	}, nil
}

// Close releases external connections.
func (s *Services) Close() {
	if s.jetstream != nil {
		s.jetstream.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
