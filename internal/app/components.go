package app

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/commerce-sync/internal/config"
	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	"github.com/stacklok/commerce-sync/internal/sources"
	"github.com/stacklok/commerce-sync/internal/sync/coordinator"
	"github.com/stacklok/commerce-sync/internal/sync/retry"
	"github.com/stacklok/commerce-sync/internal/sync/state"
	"github.com/stacklok/commerce-sync/internal/sync/writer"
	"github.com/stacklok/commerce-sync/internal/telemetry"
)

// TracerName names the tracer shared by the sync components
const TracerName = "github.com/stacklok/commerce-sync"

// AppComponents groups the sync engine components built on one pool
//
//nolint:revive // This name is fine
type AppComponents struct {
	Queries     *sqlc.Queries
	Recorder    state.SyncLogRecorder
	Writer      writer.SyncWriter
	Scheduler   retry.Scheduler
	Reaper      retry.Reaper
	Source      sources.BatchSource
	Coordinator coordinator.Coordinator
}

// NewComponents wires the sync engine on pool. A nil tel disables tracing and metrics.
func NewComponents(pool *pgxpool.Pool, cfg *config.Config, tel *telemetry.Telemetry) (*AppComponents, error) {
	if pool == nil {
		return nil, fmt.Errorf("database pool is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var (
		tracer          trace.Tracer
		syncMetrics     *telemetry.SyncMetrics
		recoveryMetrics *telemetry.RecoveryMetrics
		err             error
	)
	if tel != nil {
		tracer = tel.Tracer(TracerName)
		if syncMetrics, err = telemetry.NewSyncMetrics(tel.MeterProvider()); err != nil {
			return nil, fmt.Errorf("failed to create sync metrics: %w", err)
		}
		if recoveryMetrics, err = telemetry.NewRecoveryMetrics(tel.MeterProvider()); err != nil {
			return nil, fmt.Errorf("failed to create recovery metrics: %w", err)
		}
	}

	recorder := state.NewDBSyncLogRecorder(pool)

	syncWriter, err := writer.NewDBSyncWriter(pool,
		writer.WithRecorder(recorder),
		writer.WithSyncMetrics(syncMetrics),
		writer.WithTracer(tracer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync writer: %w", err)
	}

	retryOpts := []retry.Option{
		retry.WithStaleThreshold(cfg.GetStaleThreshold()),
		retry.WithRecoveryMetrics(recoveryMetrics),
		retry.WithTracer(tracer),
	}
	scheduler, err := retry.NewDBScheduler(pool, retryOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry scheduler: %w", err)
	}
	reaper, err := retry.NewDBReaper(pool, retryOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create stale sync reaper: %w", err)
	}

	source, err := sources.NewBatchSource(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch source: %w", err)
	}

	queries := sqlc.New(pool)
	coordOpts := coordinator.OptionsFromConfig(cfg)
	if source != nil {
		coordOpts = append(coordOpts, coordinator.WithBatchSource(source))
		slog.Info("Retry execution enabled", "source", cfg.Source.Type)
	}

	return &AppComponents{
		Queries:     queries,
		Recorder:    recorder,
		Writer:      syncWriter,
		Scheduler:   scheduler,
		Reaper:      reaper,
		Source:      source,
		Coordinator: coordinator.New(queries, scheduler, reaper, syncWriter, recorder, coordOpts...),
	}, nil
}
