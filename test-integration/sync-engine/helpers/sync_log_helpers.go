package helpers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BackdateSyncLog moves the start of a sync log age into the past
func BackdateSyncLog(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, age time.Duration) error {
	tag, err := pool.Exec(ctx,
		"UPDATE sync_logs SET started_at = NOW() - make_interval(secs => $1) WHERE id = $2",
		age.Seconds(), id)
	if err != nil {
		return fmt.Errorf("failed to backdate sync log: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("sync log %s not found", id)
	}
	return nil
}

// MakeRetryDue moves the next retry time of a scheduled sync log into the past
func MakeRetryDue(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) error {
	tag, err := pool.Exec(ctx,
		"UPDATE sync_logs SET next_retry_at = NOW() - INTERVAL '1 second' WHERE id = $1 AND next_retry_at IS NOT NULL",
		id)
	if err != nil {
		return fmt.Errorf("failed to make retry due: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("sync log %s has no scheduled retry", id)
	}
	return nil
}

// SetRetryCount overwrites the retry count of a sync log
func SetRetryCount(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, count int) error {
	_, err := pool.Exec(ctx, "UPDATE sync_logs SET retry_count = $1 WHERE id = $2", count, id)
	if err != nil {
		return fmt.Errorf("failed to set retry count: %w", err)
	}
	return nil
}
