package state

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/commerce-sync/database"
	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

func setupRecorder(t *testing.T) (SyncLogRecorder, *pgxpool.Pool, uuid.UUID) {
	t.Helper()

	pool, cleanupFunc := database.SetupTestDB(t)
	t.Cleanup(cleanupFunc)

	store, err := sqlc.New(pool).CreateStore(context.Background(), "test-store")
	require.NoError(t, err)

	return NewDBSyncLogRecorder(pool), pool, store.ID
}

func TestDBSyncLogRecorderLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder, _, storeID := setupRecorder(t)

	id, err := recorder.Open(ctx, storeID, "webhook:orders")
	require.NoError(t, err)

	log, err := recorder.Get(ctx, storeID, id)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, log.Status)
	assert.Equal(t, "webhook:orders", log.SyncType)
	assert.Zero(t, log.RecordsSynced)
	assert.Zero(t, log.RetryCount)
	assert.Nil(t, log.CompletedAt)
	assert.Nil(t, log.NextRetryAt)

	require.NoError(t, recorder.Close(ctx, id, CloseParams{Status: StatusCompleted, RecordsSynced: 12}))

	log, err = recorder.Get(ctx, storeID, id)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, log.Status)
	assert.Equal(t, 12, log.RecordsSynced)
	assert.Empty(t, log.ErrorMessage)
	require.NotNil(t, log.CompletedAt)
	assert.False(t, log.CompletedAt.Before(log.StartedAt))
}

func TestDBSyncLogRecorderCloseFailed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder, _, storeID := setupRecorder(t)

	id, err := recorder.Open(ctx, storeID, "products")
	require.NoError(t, err)

	longMessage := strings.Repeat("é", maxErrorMessageLen)
	require.NoError(t, recorder.Close(ctx, id, CloseParams{Status: StatusFailed, ErrorMessage: longMessage}))

	log, err := recorder.Get(ctx, storeID, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, log.Status)
	assert.LessOrEqual(t, len(log.ErrorMessage), maxErrorMessageLen)
	assert.True(t, strings.HasPrefix(longMessage, log.ErrorMessage))
}

func TestDBSyncLogRecorderClosesOnlyItsAttempt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder, pool, storeID := setupRecorder(t)

	id, err := recorder.Open(ctx, storeID, "orders")
	require.NoError(t, err)
	first, err := recorder.Get(ctx, storeID, id)
	require.NoError(t, err)

	// The reaper fails the attempt while its worker is still busy
	_, err = pool.Exec(ctx, "UPDATE sync_logs SET status = 'failed', error_message = 'sync stalled' WHERE id = $1", id)
	require.NoError(t, err)

	err = recorder.Close(ctx, id, CloseParams{Status: StatusCompleted, RecordsSynced: 3, StartedAt: first.StartedAt})
	require.ErrorIs(t, err, pkgsync.ErrNotRetryable)

	log, err := recorder.Get(ctx, storeID, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, log.Status)
	assert.Equal(t, "sync stalled", log.ErrorMessage)

	// A retry claims the log again with a new started_at
	_, err = pool.Exec(ctx,
		"UPDATE sync_logs SET status = 'running', error_message = NULL, started_at = started_at + INTERVAL '1 minute' WHERE id = $1",
		id)
	require.NoError(t, err)
	retry, err := recorder.Get(ctx, storeID, id)
	require.NoError(t, err)

	err = recorder.Close(ctx, id, CloseParams{Status: StatusCompleted, RecordsSynced: 3, StartedAt: first.StartedAt})
	require.ErrorIs(t, err, pkgsync.ErrNotRetryable, "the stale worker cannot close the retry")

	log, err = recorder.Get(ctx, storeID, id)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, log.Status)

	require.NoError(t, recorder.Close(ctx, id, CloseParams{Status: StatusCompleted, RecordsSynced: 5, StartedAt: retry.StartedAt}))

	log, err = recorder.Get(ctx, storeID, id)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, log.Status)
	assert.Equal(t, 5, log.RecordsSynced)

	err = recorder.Close(ctx, id, CloseParams{Status: StatusFailed, ErrorMessage: "late"})
	require.ErrorIs(t, err, pkgsync.ErrNotRetryable, "a log is closed once")
}

func TestDBSyncLogRecorderErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder, _, storeID := setupRecorder(t)

	t.Run("open for unknown store", func(t *testing.T) {
		_, err := recorder.Open(ctx, uuid.New(), "orders")
		require.ErrorIs(t, err, pkgsync.ErrNotFound)
	})

	t.Run("open without sync type", func(t *testing.T) {
		_, err := recorder.Open(ctx, storeID, "")
		require.Error(t, err)
	})

	t.Run("close unknown log", func(t *testing.T) {
		err := recorder.Close(ctx, uuid.New(), CloseParams{Status: StatusCompleted})
		require.ErrorIs(t, err, pkgsync.ErrNotFound)
	})

	t.Run("close with running status", func(t *testing.T) {
		id, err := recorder.Open(ctx, storeID, "orders")
		require.NoError(t, err)
		require.Error(t, recorder.Close(ctx, id, CloseParams{Status: StatusRunning}))
	})

	t.Run("close with negative records", func(t *testing.T) {
		id, err := recorder.Open(ctx, storeID, "orders")
		require.NoError(t, err)
		require.Error(t, recorder.Close(ctx, id, CloseParams{Status: StatusCompleted, RecordsSynced: -1}))
	})

	t.Run("get log of another store", func(t *testing.T) {
		id, err := recorder.Open(ctx, storeID, "orders")
		require.NoError(t, err)
		_, err = recorder.Get(ctx, uuid.New(), id)
		require.ErrorIs(t, err, pkgsync.ErrNotFound)
	})
}

func TestDBSyncLogRecorderListRecent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder, pool, storeID := setupRecorder(t)

	var ids []uuid.UUID
	for range 3 {
		id, err := recorder.Open(ctx, storeID, "customers")
		require.NoError(t, err)
		ids = append(ids, id)
	}
	// Spread the start times so ordering is deterministic
	for i, id := range ids {
		_, err := pool.Exec(ctx,
			"UPDATE sync_logs SET started_at = NOW() - make_interval(mins => $1) WHERE id = $2", 10-i, id)
		require.NoError(t, err)
	}

	logs, err := recorder.ListRecent(ctx, storeID, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, ids[2], logs[0].ID)
	assert.Equal(t, ids[1], logs[1].ID)

	logs, err = recorder.ListRecent(ctx, storeID, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	logs, err = recorder.ListRecent(ctx, uuid.New(), 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "a", truncate("aé", 2), "multi-byte runes are never split")
}
