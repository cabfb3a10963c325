package retry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stacklok/commerce-sync/internal/sync/state"
)

// ScheduleStatus is the outcome of ScheduleRetry
type ScheduleStatus string

const (
	// StatusRetryScheduled means the sync log has a next_retry_at in the future
	StatusRetryScheduled ScheduleStatus = "retry_scheduled"
	// StatusMaxRetriesReached means the sync log will not be retried again
	StatusMaxRetriesReached ScheduleStatus = "max_retries_reached"
)

// ScheduleResult describes the state of a sync log after ScheduleRetry
type ScheduleResult struct {
	Status      ScheduleStatus `json:"status"`
	RetryCount  int            `json:"retry_count"`
	NextRetryAt *time.Time     `json:"next_retry_at,omitempty"`
}

// Scheduler decides when failed syncs run again.
//
//go:generate mockgen -destination=mocks/mock_scheduler.go -package=mocks -source=retry.go Scheduler
type Scheduler interface {
	// ScheduleRetry counts one more attempt and sets when it becomes due
	ScheduleRetry(ctx context.Context, storeID, syncLogID uuid.UUID) (ScheduleResult, error)
	// MarkRetryStarted counts one more attempt and moves the sync log back to
	// running immediately
	MarkRetryStarted(ctx context.Context, storeID, syncLogID uuid.UUID) error
	// ClaimDueRetry moves a scheduled retry whose time has come back to
	// running. It returns false when the retry is not due or another worker
	// claimed it first.
	ClaimDueRetry(ctx context.Context, storeID, syncLogID uuid.UUID) (bool, error)
	// GetDueRetries lists the scheduled retries of a store that are due, oldest first
	GetDueRetries(ctx context.Context, storeID uuid.UUID) ([]state.SyncLog, error)
	// GetUnscheduledFailures lists failed syncs of a store that have retries
	// left but no next_retry_at
	GetUnscheduledFailures(ctx context.Context, storeID uuid.UUID) ([]state.SyncLog, error)
}

// Reaper fails syncs stuck in running.
//
//go:generate mockgen -destination=mocks/mock_reaper.go -package=mocks -source=retry.go Reaper
type Reaper interface {
	// DetectStaleSyncs fails the stale running syncs of one store
	DetectStaleSyncs(ctx context.Context, storeID uuid.UUID) (int64, error)
	// DetectAllStaleSyncs fails the stale running syncs of every store
	DetectAllStaleSyncs(ctx context.Context) (int64, error)
}
