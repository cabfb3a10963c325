package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stacklok/commerce-sync/internal/api"
	"github.com/stacklok/commerce-sync/internal/config"
	"github.com/stacklok/commerce-sync/internal/sync/coordinator"
	"github.com/stacklok/commerce-sync/internal/telemetry"
)

const (
	defaultHTTPAddress    = ":8080"
	defaultRequestTimeout = 10 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
)

// SyncAppOptions is a function that configures the sync app builder
type SyncAppOptions func(*syncAppConfig) error

// syncAppConfig collects what NewSyncApp needs. Component overrides exist for tests.
type syncAppConfig struct {
	config    *config.Config
	pool      *pgxpool.Pool
	telemetry *telemetry.Telemetry

	coordinator coordinator.Coordinator

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
}

func baseConfig(opts ...SyncAppOptions) (*syncAppConfig, error) {
	cfg := &syncAppConfig{
		address:        defaultHTTPAddress,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// NewSyncApp builds the recovery coordinator and the operational HTTP server
func NewSyncApp(ctx context.Context, opts ...SyncAppOptions) (*SyncApp, error) {
	b, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}
	if b.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if b.pool == nil {
		return nil, fmt.Errorf("database pool is required")
	}

	components, err := NewComponents(b.pool, b.config, b.telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to build sync components: %w", err)
	}
	if b.coordinator != nil {
		components.Coordinator = b.coordinator
	}

	httpServer := buildHTTPServer(b)

	appCtx, cancel := context.WithCancel(ctx)

	return &SyncApp{
		config:     b.config,
		components: components,
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.config = c
		return nil
	}
}

// WithPool sets the database pool. The caller keeps ownership and closes it.
func WithPool(pool *pgxpool.Pool) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.pool = pool
		return nil
	}
}

// WithTelemetry enables tracing, metrics and the /metrics endpoint
func WithTelemetry(tel *telemetry.Telemetry) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.telemetry = tel
		return nil
	}
}

// WithAddress sets the HTTP listen address
func WithAddress(addr string) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}
		cfg.address = addr
		return nil
	}
}

// WithMiddlewares replaces the default HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithCoordinator replaces the recovery coordinator
func WithCoordinator(c coordinator.Coordinator) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.coordinator = c
		return nil
	}
}

// buildHTTPServer builds the HTTP server with router and middleware
func buildHTTPServer(b *syncAppConfig) *http.Server {
	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	serverOpts := []api.ServerOption{api.WithMiddlewares(b.middlewares...)}
	if b.telemetry != nil {
		serverOpts = append(serverOpts, api.WithMetricsHandler(b.telemetry.MetricsHandler()))
	}

	server := &http.Server{
		Addr:         b.address,
		Handler:      api.NewServer(b.pool, serverOpts...),
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	slog.Info("HTTP server configured", "address", b.address)
	return server
}
