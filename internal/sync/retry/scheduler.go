package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	"github.com/stacklok/commerce-sync/internal/otel"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
	"github.com/stacklok/commerce-sync/internal/sync/state"
)

type dbScheduler struct {
	pool *pgxpool.Pool
	*options
}

// NewDBScheduler creates a Scheduler that keeps retry state in the sync_logs table
func NewDBScheduler(pool *pgxpool.Pool, opts ...Option) (Scheduler, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &dbScheduler{pool: pool, options: newOptions(opts)}, nil
}

// ScheduleRetry increments the retry count and sets next_retry_at in one
// transaction. The increment only matches a failed, unscheduled log below the
// retry limit; a concurrent caller blocks on the row lock and then matches
// nothing, so each failure is counted once.
//
// The delay is Backoff of the incremented count. When nothing matched, the row
// is read back: a missing log is a NotFoundError, a log that is not failed is
// a ValidationError, a log at the limit is StatusMaxRetriesReached and a log
// that is already scheduled keeps its existing next_retry_at.
func (s *dbScheduler) ScheduleRetry(ctx context.Context, storeID, syncLogID uuid.UUID) (ScheduleResult, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "retry.ScheduleRetry", otel.DBSpanOptions(
		otel.AttrStoreID.String(storeID.String()),
		otel.AttrSyncLogID.String(syncLogID.String()),
	)...)
	defer span.End()

	result, syncType, err := s.scheduleRetry(ctx, storeID, syncLogID)
	if err != nil {
		otel.RecordError(span, err)
		return ScheduleResult{}, err
	}

	span.SetAttributes(
		otel.AttrScheduleState.String(string(result.Status)),
		otel.AttrRetryCount.Int(result.RetryCount),
	)

	logger := slog.With("store_id", storeID, "sync_log_id", syncLogID, "retry_count", result.RetryCount)
	switch result.Status {
	case StatusMaxRetriesReached:
		s.metrics.RecordRetriesExhausted(ctx, syncType)
		logger.WarnContext(ctx, "Sync reached the retry limit", "max_retries", MaxRetries)
	case StatusRetryScheduled:
		s.metrics.RecordRetryScheduled(ctx, syncType)
		logger.InfoContext(ctx, "Retry scheduled", "next_retry_at", result.NextRetryAt)
	}

	return result, nil
}

func (s *dbScheduler) scheduleRetry(
	ctx context.Context,
	storeID, syncLogID uuid.UUID,
) (ScheduleResult, string, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return ScheduleResult{}, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil &&
			!errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "Failed to roll back retry transaction", "error", rollbackErr)
		}
	}()

	querier := sqlc.New(tx)

	count, err := querier.IncrementRetryCount(ctx, sqlc.IncrementRetryCountParams{
		ID:         syncLogID,
		StoreID:    storeID,
		MaxRetries: MaxRetries,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		log, err := getSyncLog(ctx, querier, storeID, syncLogID)
		if err != nil {
			return ScheduleResult{}, "", err
		}
		result, err := classifyUnscheduled(log)
		return result, log.SyncType, err
	}
	if err != nil {
		return ScheduleResult{}, "", fmt.Errorf("failed to increment retry count: %w", err)
	}

	next := s.clock.Now().Add(Backoff(int(count), s.jitter)).UTC()
	if err := querier.SetNextRetryAt(ctx, sqlc.SetNextRetryAtParams{
		NextRetryAt: pgtype.Timestamptz{Time: next, Valid: true},
		ID:          syncLogID,
	}); err != nil {
		return ScheduleResult{}, "", fmt.Errorf("failed to set next retry time: %w", err)
	}

	// Read the sync type inside the transaction for the metrics attribute
	log, err := getSyncLog(ctx, querier, storeID, syncLogID)
	if err != nil {
		return ScheduleResult{}, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return ScheduleResult{}, "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ScheduleResult{
		Status:      StatusRetryScheduled,
		RetryCount:  int(count),
		NextRetryAt: &next,
	}, log.SyncType, nil
}

// classifyUnscheduled explains why a log matched none of the scheduling conditions
func classifyUnscheduled(log *state.SyncLog) (ScheduleResult, error) {
	switch {
	case log.Status != state.StatusFailed:
		return ScheduleResult{}, &pkgsync.ValidationError{
			Message: fmt.Sprintf("sync log %s is %s and not retryable", log.ID, log.Status),
		}
	case log.NextRetryAt != nil:
		// Includes the last retry, which is scheduled at the limit and still has to run
		return ScheduleResult{
			Status:      StatusRetryScheduled,
			RetryCount:  log.RetryCount,
			NextRetryAt: log.NextRetryAt,
		}, nil
	case log.RetryCount >= MaxRetries:
		return ScheduleResult{Status: StatusMaxRetriesReached, RetryCount: log.RetryCount}, nil
	default:
		return ScheduleResult{}, &pkgsync.ValidationError{
			Message: fmt.Sprintf("sync log %s changed while scheduling, try again", log.ID),
		}
	}
}

// MarkRetryStarted counts the attempt and moves the log to running in one
// statement. A log at the retry limit returns ErrMaxRetriesReached.
func (s *dbScheduler) MarkRetryStarted(ctx context.Context, storeID, syncLogID uuid.UUID) error {
	ctx, span := otel.StartSpan(ctx, s.tracer, "retry.MarkRetryStarted", otel.DBSpanOptions(
		otel.AttrStoreID.String(storeID.String()),
		otel.AttrSyncLogID.String(syncLogID.String()),
	)...)
	defer span.End()

	querier := sqlc.New(s.pool)
	count, err := querier.MarkRetryStarted(ctx, sqlc.MarkRetryStartedParams{
		ID:         syncLogID,
		StoreID:    storeID,
		MaxRetries: MaxRetries,
	})
	if err == nil {
		span.SetAttributes(otel.AttrRetryCount.Int(int(count)))
		slog.InfoContext(ctx, "Retry started",
			"store_id", storeID,
			"sync_log_id", syncLogID,
			"retry_count", count)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		otel.RecordError(span, err)
		return fmt.Errorf("failed to mark retry started: %w", err)
	}

	log, err := getSyncLog(ctx, querier, storeID, syncLogID)
	if err != nil {
		otel.RecordError(span, err)
		return err
	}
	if log.Status == state.StatusFailed && log.RetryCount >= MaxRetries {
		// A pending last retry runs through ClaimDueRetry, it cannot be counted again
		s.metrics.RecordRetriesExhausted(ctx, log.SyncType)
		return fmt.Errorf("sync log %s: %w", syncLogID, pkgsync.ErrMaxRetriesReached)
	}
	if _, err := classifyUnscheduled(log); err != nil {
		otel.RecordError(span, err)
		return err
	}
	// Already scheduled rows are still failed, so MarkRetryStarted matches them; a
	// miss here means the row moved under us.
	return &pkgsync.ValidationError{
		Message: fmt.Sprintf("sync log %s changed while starting the retry, try again", syncLogID),
	}
}

func (s *dbScheduler) ClaimDueRetry(ctx context.Context, storeID, syncLogID uuid.UUID) (bool, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "retry.ClaimDueRetry", otel.DBSpanOptions(
		otel.AttrStoreID.String(storeID.String()),
		otel.AttrSyncLogID.String(syncLogID.String()),
	)...)
	defer span.End()

	claimed, err := sqlc.New(s.pool).ClaimDueRetry(ctx, sqlc.ClaimDueRetryParams{
		ID:         syncLogID,
		StoreID:    storeID,
		MaxRetries: MaxRetries,
		DueBefore:  s.clock.Now(),
	})
	if err != nil {
		otel.RecordError(span, err)
		return false, fmt.Errorf("failed to claim retry: %w", err)
	}
	return claimed == 1, nil
}

func (s *dbScheduler) GetDueRetries(ctx context.Context, storeID uuid.UUID) ([]state.SyncLog, error) {
	rows, err := sqlc.New(s.pool).ListDueRetries(ctx, sqlc.ListDueRetriesParams{
		StoreID:    storeID,
		MaxRetries: MaxRetries,
		DueBefore:  s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list due retries: %w", err)
	}
	return state.FromRows(rows), nil
}

func (s *dbScheduler) GetUnscheduledFailures(ctx context.Context, storeID uuid.UUID) ([]state.SyncLog, error) {
	rows, err := sqlc.New(s.pool).ListUnscheduledFailures(ctx, sqlc.ListUnscheduledFailuresParams{
		StoreID:    storeID,
		MaxRetries: MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list unscheduled failures: %w", err)
	}
	return state.FromRows(rows), nil
}

func getSyncLog(ctx context.Context, querier *sqlc.Queries, storeID, syncLogID uuid.UUID) (*state.SyncLog, error) {
	row, err := querier.GetSyncLog(ctx, sqlc.GetSyncLogParams{ID: syncLogID, StoreID: storeID})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &pkgsync.NotFoundError{Resource: "sync log", ID: syncLogID.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync log: %w", err)
	}
	log := state.FromRow(row)
	return &log, nil
}
