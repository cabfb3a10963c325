package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
)

// Status is the lifecycle state of a sync log
type Status string

const (
	// StatusRunning is set when a sync starts or a retry is claimed
	StatusRunning Status = "running"
	// StatusCompleted is terminal
	StatusCompleted Status = "completed"
	// StatusFailed is retryable until the retry limit is reached
	StatusFailed Status = "failed"
)

// SyncLog is one sync attempt of one store
type SyncLog struct {
	ID            uuid.UUID  `json:"id"`
	StoreID       uuid.UUID  `json:"store_id"`
	SyncType      string     `json:"sync_type"`
	Status        Status     `json:"status"`
	RecordsSynced int        `json:"records_synced"`
	RetryCount    int        `json:"retry_count"`
	NextRetryAt   *time.Time `json:"next_retry_at,omitempty"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// CloseParams is the final outcome of a sync attempt
type CloseParams struct {
	Status        Status
	RecordsSynced int
	ErrorMessage  string
	// StartedAt pins the close to one attempt. A log that was reaped and claimed
	// again since then has a newer started_at and is left alone. Zero matches
	// any running attempt.
	StartedAt time.Time
}

// FromRow converts a generated sync_logs row
func FromRow(row sqlc.SyncLog) SyncLog {
	log := SyncLog{
		ID:            row.ID,
		StoreID:       row.StoreID,
		SyncType:      row.SyncType,
		Status:        Status(row.Status),
		RecordsSynced: int(row.RecordsSynced),
		RetryCount:    int(row.RetryCount),
		StartedAt:     row.StartedAt,
	}
	if row.NextRetryAt.Valid {
		t := row.NextRetryAt.Time
		log.NextRetryAt = &t
	}
	if row.ErrorMessage.Valid {
		log.ErrorMessage = row.ErrorMessage.String
	}
	if row.CompletedAt.Valid {
		t := row.CompletedAt.Time
		log.CompletedAt = &t
	}
	return log
}

// FromRows converts a slice of generated sync_logs rows
func FromRows(rows []sqlc.SyncLog) []SyncLog {
	logs := make([]SyncLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, FromRow(row))
	}
	return logs
}
