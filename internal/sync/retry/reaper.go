package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	"github.com/stacklok/commerce-sync/internal/otel"
)

type dbReaper struct {
	pool *pgxpool.Pool
	*options
}

// NewDBReaper creates a Reaper over the sync_logs table
func NewDBReaper(pool *pgxpool.Pool, opts ...Option) (Reaper, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &dbReaper{pool: pool, options: newOptions(opts)}, nil
}

// StaleMessage is the error recorded on a sync failed by the Reaper
func StaleMessage(threshold time.Duration) string {
	return fmt.Sprintf("sync stalled: no progress for %s (worker presumed crashed)", threshold)
}

func (r *dbReaper) DetectStaleSyncs(ctx context.Context, storeID uuid.UUID) (int64, error) {
	ctx, span := otel.StartSpan(ctx, r.tracer, "retry.DetectStaleSyncs", otel.DBSpanOptions(
		otel.AttrStoreID.String(storeID.String()),
	)...)
	defer span.End()

	reaped, err := sqlc.New(r.pool).FailStaleSyncLogs(ctx, sqlc.FailStaleSyncLogsParams{
		ErrorMessage:  pgtype.Text{String: StaleMessage(r.staleThreshold), Valid: true},
		StoreID:       storeID,
		StartedBefore: r.clock.Now().Add(-r.staleThreshold),
	})
	if err != nil {
		otel.RecordError(span, err)
		return 0, fmt.Errorf("failed to fail stale syncs of store %s: %w", storeID, err)
	}

	r.recordReaped(ctx, span, reaped, "store_id", storeID)
	return reaped, nil
}

func (r *dbReaper) DetectAllStaleSyncs(ctx context.Context) (int64, error) {
	ctx, span := otel.StartSpan(ctx, r.tracer, "retry.DetectAllStaleSyncs", otel.DBSpanOptions()...)
	defer span.End()

	reaped, err := sqlc.New(r.pool).FailAllStaleSyncLogs(ctx, sqlc.FailAllStaleSyncLogsParams{
		ErrorMessage:  pgtype.Text{String: StaleMessage(r.staleThreshold), Valid: true},
		StartedBefore: r.clock.Now().Add(-r.staleThreshold),
	})
	if err != nil {
		otel.RecordError(span, err)
		return 0, fmt.Errorf("failed to fail stale syncs: %w", err)
	}

	r.recordReaped(ctx, span, reaped)
	return reaped, nil
}

func (r *dbReaper) recordReaped(ctx context.Context, span trace.Span, reaped int64, attrs ...any) {
	span.SetAttributes(otel.AttrReapedCount.Int64(reaped))
	if reaped == 0 {
		return
	}
	r.metrics.RecordStaleReaped(ctx, reaped)
	slog.WarnContext(ctx, "Failed stalled syncs",
		append(attrs, "count", reaped, "threshold", r.staleThreshold.String())...)
}
