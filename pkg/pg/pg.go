// Package pg wires the application to PostgreSQL: pooled connections through
// pgx, startup retry, schema migrations through goose, and helpers that map
// driver errors onto the store's own failure modes.
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrFailedToOpenConnection = errors.New("pg: failed to open database connection")
	ErrFailedToParseConfig    = errors.New("pg: failed to parse database config")
	ErrHealthcheckFailed      = errors.New("pg: healthcheck failed")
	ErrFailedToMigrate        = errors.New("pg: failed to apply migrations")
	ErrMigrationsDirNotFound  = errors.New("pg: migrations directory not found")
)

// Config is the environment-driven database configuration.
type Config struct {
	ConnectionString string        `env:"DATABASE_URL,required"`
	MaxOpenConns     int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MinIdleConns     int32         `env:"PG_MIN_IDLE_CONNS" envDefault:"2"`
	MaxConnIdleTime  time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime  time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
	MigrationsPath   string        `env:"PG_MIGRATIONS_PATH" envDefault:"internal/db/migrations"`
}

// Connect establishes a connection pool, retrying with a linear backoff so a
// service restart does not race the database coming up.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}
	poolCfg.MaxConns = cfg.MaxOpenConns
	poolCfg.MinConns = cfg.MinIdleConns
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	var lastErr error
	for i := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		// Ping catches authentication and permission failures that pool
		// construction alone does not surface.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		return pool, nil
	}

	return nil, errors.Join(ErrFailedToOpenConnection, lastErr)
}

// Healthcheck adapts the pool to the func(context.Context) error shape used
// by readiness endpoints.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// IsNotFound reports whether err is the driver's "no rows" result.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKey reports a unique constraint violation (SQLSTATE 23505),
// used for email uniqueness checks.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports a referential integrity violation
// (SQLSTATE 23503), e.g. an invoice pointing at a missing customer.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
