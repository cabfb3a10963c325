// Package db builds the pgx connection pool shared by every sync component.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stacklok/commerce-sync/internal/config"
)

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
	defaultMaxWait      = 30 * time.Second
)

// Postgres error classes that retrying cannot fix.
const (
	sqlStateInvalidPassword      = "28P01"
	sqlStateInvalidAuthorization = "28000"
	sqlStateInvalidCatalogName   = "3D000"
)

// PoolOption configures NewPool
type PoolOption func(*poolOptions)

type poolOptions struct {
	maxWait time.Duration
}

// WithMaxWait bounds how long NewPool keeps retrying an unreachable database
func WithMaxWait(d time.Duration) PoolOption {
	return func(o *poolOptions) {
		o.maxWait = d
	}
}

// NewPool creates a pgx pool from the database configuration and waits until the
// database answers a ping. Transient connection failures are retried with
// exponential backoff; authentication and unknown-database errors fail immediately.
// The caller is responsible for closing the pool.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig, opts ...PoolOption) (*pgxpool.Pool, error) {
	o := &poolOptions{maxWait: defaultMaxWait}
	for _, opt := range opts {
		opt(o)
	}

	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	ping := func() (struct{}, error) {
		err := pool.Ping(ctx)
		if err != nil && isPermanent(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	notify := func(err error, next time.Duration) {
		slog.Warn("Database not reachable yet, retrying", "error", err, "retry_in", next)
	}

	if _, err := backoff.Retry(ctx, ping,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(o.maxWait),
		backoff.WithNotify(notify),
	); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection pool established",
		"host", cfg.Host, "port", cfg.Port, "database", cfg.Database,
		"max_conns", poolConfig.MaxConns,
		"statement_timeout", cfg.GetStatementTimeout())

	return pool, nil
}

// buildPoolConfig translates the database configuration into a pgxpool config
func buildPoolConfig(cfg *config.DatabaseConfig) (*pgxpool.Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration is required")
	}

	connStr, err := cfg.GetConnectionString()
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	poolConfig.MaxConns = defaultMaxOpenConns
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	}
	poolConfig.MinConns = defaultMaxIdleConns
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	}
	if poolConfig.MinConns > poolConfig.MaxConns {
		poolConfig.MinConns = poolConfig.MaxConns
	}
	poolConfig.MaxConnLifetime = cfg.GetConnMaxLifetime()

	// Every statement on every pooled connection is bounded server side.
	poolConfig.ConnConfig.RuntimeParams["statement_timeout"] =
		strconv.FormatInt(cfg.GetStatementTimeout().Milliseconds(), 10)

	return poolConfig, nil
}

func isPermanent(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case sqlStateInvalidPassword, sqlStateInvalidAuthorization, sqlStateInvalidCatalogName:
		return true
	}
	return false
}
