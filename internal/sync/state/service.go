// Package state records one sync_logs row per sync attempt: opened as running
// when a batch starts and closed exactly once as completed or failed.
package state

import (
	"context"

	"github.com/google/uuid"
)

// SyncLogRecorder opens and closes the audit record of a sync attempt.
//
//go:generate mockgen -destination=mocks/mock_sync_log_recorder.go -package=mocks -source=service.go SyncLogRecorder
type SyncLogRecorder interface {
	// Open creates a running sync log with zero records for the store
	Open(ctx context.Context, storeID uuid.UUID, syncType string) (uuid.UUID, error)
	// Close records the final status, record count and error of a running sync
	// log. A log that is no longer running, or was restarted after
	// params.StartedAt, returns a ValidationError.
	Close(ctx context.Context, id uuid.UUID, params CloseParams) error
	// Get returns one sync log of the store
	Get(ctx context.Context, storeID, id uuid.UUID) (*SyncLog, error)
	// ListRecent returns the most recently started sync logs of the store
	ListRecent(ctx context.Context, storeID uuid.UUID, limit int) ([]SyncLog, error)
}
