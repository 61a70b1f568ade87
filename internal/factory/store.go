package factory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/medtimer/medtimer-server/internal/config"
	"github.com/medtimer/medtimer-server/internal/logger"
	"github.com/medtimer/medtimer-server/internal/store"
	"github.com/medtimer/medtimer-server/internal/store/postgres"
	"github.com/medtimer/medtimer-server/internal/store/sqlite"
	"github.com/medtimer/medtimer-server/internal/store/sqlstore"
)

// StoreOptions tune NewStore beyond what Config carries.
type StoreOptions struct {
	// BootstrapSchema creates missing tables before serving.
	BootstrapSchema bool
}

// NewStore opens the configured database, sizes its pool and wraps it as a
// store. The caller owns the returned *sql.DB and must close it.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts StoreOptions) (*sqlstore.Store, *sql.DB, error) {
	db, ensure, err := openWithRetry(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Str("driver", cfg.DBDriver).Msg("store unavailable")
		return nil, nil, err
	}
	if cfg.MaxOpenConns > 0 && cfg.DatabaseURL != config.MemoryDatabase {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	if opts.BootstrapSchema {
		if err := ensure(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("schema ensured")
	}

	fetcher := store.NewFetcher(db, log, cfg.QueryTimeout).
		WithSQLLogger(logger.SQL(log, cfg.SQLLevel()))

	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(db, fetcher), db, nil
	default:
		return sqlite.New(db, fetcher), db, nil
	}
}

type ensureFunc func(context.Context, *sql.DB) error

const (
	connectInitialInterval = 250 * time.Millisecond
	connectMaxInterval     = 5 * time.Second
)

// openWithRetry retries open on connectivity failures and timeouts, up to
// cfg.ConnectRetries extra attempts with exponential backoff. Other failures
// end the loop at once.
func openWithRetry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sql.DB, ensureFunc, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = connectInitialInterval
	exp.MaxInterval = connectMaxInterval
	exp.Reset()

	retries := cfg.ConnectRetries
	if retries < 0 {
		retries = 0
	}

	var (
		db      *sql.DB
		ensure  ensureFunc
		attempt int
	)
	op := func() error {
		attempt++
		var err error
		db, ensure, err = open(cfg)
		if err == nil {
			return nil
		}
		kind := store.Classify(err)
		if kind != store.KindConnectivity && kind != store.KindTimeout {
			return backoff.Permanent(err)
		}
		log.Warn().Err(err).
			Str("driver", cfg.DBDriver).
			Str("kind", string(kind)).
			Int("attempt", attempt).
			Msg("store open failed")
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, nil, err
	}
	return db, ensure, nil
}

func open(cfg *config.Config) (*sql.DB, ensureFunc, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		if cfg.DatabaseURL == config.MemoryDatabase {
			db, err := sqlite.OpenMemory()
			return db, sqlite.EnsureSchema, err
		}
		db, err := sqlite.Open(cfg.DatabaseURL)
		return db, sqlite.EnsureSchema, err
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		return db, postgres.EnsureSchema, err
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
