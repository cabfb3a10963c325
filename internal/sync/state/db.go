package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

const (
	defaultListLimit   = 20
	maxListLimit       = 1000
	maxErrorMessageLen = 4096

	sqlStateForeignKeyViolation = "23503"
)

type dbSyncLogRecorder struct {
	pool *pgxpool.Pool
}

// NewDBSyncLogRecorder creates a sync log recorder backed by PostgreSQL.
// Sync logs are written outside of any batch transaction so that they survive
// a rollback of the batch they describe.
func NewDBSyncLogRecorder(pool *pgxpool.Pool) SyncLogRecorder {
	return &dbSyncLogRecorder{pool: pool}
}

func (d *dbSyncLogRecorder) Open(ctx context.Context, storeID uuid.UUID, syncType string) (uuid.UUID, error) {
	if syncType == "" {
		return uuid.Nil, fmt.Errorf("sync type is required")
	}

	id, err := sqlc.New(d.pool).InsertSyncLog(ctx, sqlc.InsertSyncLogParams{
		StoreID:  storeID,
		SyncType: syncType,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == sqlStateForeignKeyViolation {
			return uuid.Nil, &pkgsync.NotFoundError{Resource: "store", ID: storeID.String()}
		}
		return uuid.Nil, fmt.Errorf("failed to open sync log: %w", err)
	}

	slog.DebugContext(ctx, "Opened sync log", "store_id", storeID, "sync_log_id", id, "sync_type", syncType)
	return id, nil
}

func (d *dbSyncLogRecorder) Close(ctx context.Context, id uuid.UUID, params CloseParams) error {
	switch params.Status {
	case StatusCompleted, StatusFailed:
	default:
		return fmt.Errorf("sync log cannot be closed with status %q", params.Status)
	}
	if params.RecordsSynced < 0 {
		return fmt.Errorf("records synced cannot be negative, got %d", params.RecordsSynced)
	}

	errorMessage := pgtype.Text{}
	if params.ErrorMessage != "" {
		errorMessage = pgtype.Text{String: truncate(params.ErrorMessage, maxErrorMessageLen), Valid: true}
	}

	rows, err := sqlc.New(d.pool).CloseSyncLog(ctx, sqlc.CloseSyncLogParams{
		Status:        sqlc.SyncStatus(params.Status),
		RecordsSynced: int32(min(params.RecordsSynced, int(^uint32(0)>>1))),
		ErrorMessage:  errorMessage,
		ID:            id,
		StartedAt:     pgtype.Timestamptz{Time: params.StartedAt, Valid: !params.StartedAt.IsZero()},
	})
	if err != nil {
		return fmt.Errorf("failed to close sync log %s: %w", id, err)
	}
	if rows == 1 {
		return nil
	}

	status, err := sqlc.New(d.pool).GetSyncLogStatus(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return &pkgsync.NotFoundError{Resource: "sync log", ID: id.String()}
	}
	if err != nil {
		return fmt.Errorf("failed to get sync log %s: %w", id, err)
	}
	return &pkgsync.ValidationError{
		Message: fmt.Sprintf("sync log %s is %s and no longer held by this attempt", id, status),
	}
}

func (d *dbSyncLogRecorder) Get(ctx context.Context, storeID, id uuid.UUID) (*SyncLog, error) {
	row, err := sqlc.New(d.pool).GetSyncLog(ctx, sqlc.GetSyncLogParams{ID: id, StoreID: storeID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &pkgsync.NotFoundError{Resource: "sync log", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get sync log %s: %w", id, err)
	}
	log := FromRow(row)
	return &log, nil
}

func (d *dbSyncLogRecorder) ListRecent(ctx context.Context, storeID uuid.UUID, limit int) ([]SyncLog, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	rows, err := sqlc.New(d.pool).ListSyncLogs(ctx, sqlc.ListSyncLogsParams{
		StoreID:    storeID,
		MaxResults: int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sync logs: %w", err)
	}
	return FromRows(rows), nil
}

// truncate shortens s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
