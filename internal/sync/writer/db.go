package writer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	"github.com/stacklok/commerce-sync/internal/otel"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
	"github.com/stacklok/commerce-sync/internal/sync/resolver"
	"github.com/stacklok/commerce-sync/internal/sync/state"
	"github.com/stacklok/commerce-sync/internal/sync/validator"
	"github.com/stacklok/commerce-sync/internal/telemetry"
)

// dbSyncWriter is a SyncWriter implementation that persists data to a database
type dbSyncWriter struct {
	pool      *pgxpool.Pool
	recorder  state.SyncLogRecorder
	validator *validator.Validator
	metrics   *telemetry.SyncMetrics
	tracer    trace.Tracer
}

// Option configures the database writer
type Option func(*dbSyncWriter)

// WithRecorder replaces the sync log recorder, which defaults to the
// database recorder on the same pool
func WithRecorder(recorder state.SyncLogRecorder) Option {
	return func(d *dbSyncWriter) {
		d.recorder = recorder
	}
}

// WithSyncMetrics sets the batch metrics
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(d *dbSyncWriter) {
		d.metrics = metrics
	}
}

// WithTracer sets the tracer used for batch spans
func WithTracer(tracer trace.Tracer) Option {
	return func(d *dbSyncWriter) {
		d.tracer = tracer
	}
}

// NewDBSyncWriter creates a new dbSyncWriter with the given connection pool.
// The caller is responsible for closing the pool when done.
func NewDBSyncWriter(pool *pgxpool.Pool, opts ...Option) (SyncWriter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}

	d := &dbSyncWriter{
		pool:      pool,
		validator: validator.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.recorder == nil {
		d.recorder = state.NewDBSyncLogRecorder(pool)
	}

	return d, nil
}

// Upsert merges one batch into the entity tables of kind.
//
// The batch is validated first; invalid records are skipped and counted. A sync
// log is opened (or reused), then every valid record is written in a single
// read-committed transaction:
//  1. References to customers, products and categories are resolved with one
//     lookup per referenced table
//  2. Each record is upserted on (store_id, external_id), overwriting every
//     mutable field
//  3. The line items of each order are deleted and inserted again from the payload
//  4. The store's last_synced_at is updated
//
// Any failure rolls the transaction back and closes the sync log as failed.
func (d *dbSyncWriter) Upsert(
	ctx context.Context,
	storeID uuid.UUID,
	kind pkgsync.EntityKind,
	batch json.RawMessage,
	opts ...UpsertOption,
) (*pkgsync.Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unsupported entity kind %q", kind)
	}

	o := &upsertOptions{syncType: kind.String()}
	for _, opt := range opts {
		opt(o)
	}

	records, err := validator.SplitBatch(batch)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.StartSpan(ctx, d.tracer, "writer.Upsert", otel.DBSpanOptions(
		otel.AttrStoreID.String(storeID.String()),
		otel.AttrEntityKind.String(kind.String()),
		otel.AttrSyncType.String(o.syncType),
		otel.AttrBatchSize.Int(len(records)),
	)...)
	defer span.End()

	start := time.Now()
	valid, skipped := d.validator.Validate(kind, records)

	attempt, err := d.openSyncLog(ctx, storeID, o)
	if err != nil {
		otel.RecordError(span, err)
		return nil, err
	}
	syncLogID := attempt.ID
	span.SetAttributes(otel.AttrSyncLogID.String(syncLogID.String()))

	logger := slog.With("store_id", storeID, "sync_log_id", syncLogID, "kind", kind)

	synced := 0
	if len(valid) > 0 {
		synced, err = d.writeBatch(ctx, storeID, kind, valid)
		if err != nil {
			otel.RecordError(span, err)
			d.metrics.RecordBatch(ctx, kind.String(), time.Since(start), 0, skipped, false)
			logger.ErrorContext(ctx, "Batch upsert failed", "error", err)
			return nil, d.failSyncLog(ctx, attempt, kind, err)
		}
	}

	if err := d.recorder.Close(ctx, syncLogID, state.CloseParams{
		Status:        state.StatusCompleted,
		RecordsSynced: synced,
		StartedAt:     attempt.StartedAt,
	}); err != nil {
		otel.RecordError(span, err)
		return nil, fmt.Errorf("batch committed but sync log %s could not be closed: %w", syncLogID, err)
	}

	span.SetAttributes(
		otel.AttrSyncedCount.Int(synced),
		otel.AttrSkippedCount.Int(skipped),
	)
	d.metrics.RecordBatch(ctx, kind.String(), time.Since(start), synced, skipped, true)
	logger.InfoContext(ctx, "Batch upsert completed", "synced", synced, "skipped", skipped)

	return &pkgsync.Result{
		SyncedCount:  synced,
		SkippedCount: skipped,
		SyncLogID:    syncLogID,
	}, nil
}

// openSyncLog opens a new sync log or validates the one handed over by a
// retry. The returned log carries the started_at of this attempt.
func (d *dbSyncWriter) openSyncLog(ctx context.Context, storeID uuid.UUID, o *upsertOptions) (*state.SyncLog, error) {
	id := o.syncLogID
	if id == uuid.Nil {
		var err error
		if id, err = d.recorder.Open(ctx, storeID, o.syncType); err != nil {
			return nil, err
		}
	}

	log, err := d.recorder.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if log.Status != state.StatusRunning {
		return nil, &pkgsync.ValidationError{
			Message: fmt.Sprintf("sync log %s is %s, expected a claimed running retry", log.ID, log.Status),
		}
	}
	return log, nil
}

// failSyncLog closes the sync log as failed even when ctx has been cancelled
func (d *dbSyncWriter) failSyncLog(ctx context.Context, attempt *state.SyncLog, kind pkgsync.EntityKind, cause error) error {
	closeCtx := context.WithoutCancel(ctx)
	err := d.recorder.Close(closeCtx, attempt.ID, state.CloseParams{
		Status:       state.StatusFailed,
		ErrorMessage: cause.Error(),
		StartedAt:    attempt.StartedAt,
	})
	switch {
	case errors.Is(err, pkgsync.ErrNotRetryable):
		slog.WarnContext(closeCtx, "Sync log was taken over by another attempt, leaving it as is",
			"sync_log_id", attempt.ID,
			"error", err)
	case err != nil:
		slog.ErrorContext(closeCtx, "Failed to mark sync log as failed",
			"sync_log_id", attempt.ID,
			"error", err)
	}
	return &pkgsync.SyncFailedError{SyncLogID: attempt.ID, Kind: kind, Err: cause}
}

// writeBatch runs the whole batch in one transaction and returns the number of
// records written
func (d *dbSyncWriter) writeBatch(
	ctx context.Context,
	storeID uuid.UUID,
	kind pkgsync.EntityKind,
	records []validator.Record,
) (int, error) {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil &&
			!errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "Failed to roll back batch transaction", "error", rollbackErr)
		}
	}()

	querier := sqlc.New(tx)

	maps, err := resolver.Resolve(ctx, querier, storeID, resolver.CollectReferences(records))
	if err != nil {
		return 0, err
	}

	var synced int
	switch kind {
	case pkgsync.KindOrders:
		synced, err = upsertOrders(ctx, querier, storeID, records, maps)
	case pkgsync.KindProducts:
		synced, err = upsertProducts(ctx, querier, storeID, records, maps)
	case pkgsync.KindCustomers:
		synced, err = upsertCustomers(ctx, querier, storeID, records)
	case pkgsync.KindCategories:
		synced, err = upsertCategories(ctx, querier, storeID, records, &maps)
	default:
		err = fmt.Errorf("unsupported entity kind %q", kind)
	}
	if err != nil {
		return 0, err
	}

	touched, err := querier.TouchStoreLastSynced(ctx, storeID)
	if err != nil {
		return 0, fmt.Errorf("failed to update store last synced time: %w", err)
	}
	if touched == 0 {
		return 0, &pkgsync.NotFoundError{Resource: "store", ID: storeID.String()}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return synced, nil
}
