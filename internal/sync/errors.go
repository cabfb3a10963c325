package sync

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidBatchShape is returned when a batch is not a JSON array.
	// No sync log is created for such a batch.
	ErrInvalidBatchShape = errors.New("batch must be a JSON array of records")

	// ErrNotFound matches any NotFoundError
	ErrNotFound = errors.New("not found")

	// ErrNotRetryable matches any ValidationError raised by retry operations
	ErrNotRetryable = errors.New("sync log is not retryable")

	// ErrMaxRetriesReached is returned when a retry is started on a sync log
	// that already used every attempt
	ErrMaxRetriesReached = errors.New("max retries reached")
)

// NotFoundError reports a missing resource scoped to a store
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is reports whether target is ErrNotFound
func (*NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a request that is invalid for the current state
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrNotRetryable
func (*ValidationError) Is(target error) bool {
	return target == ErrNotRetryable
}

// SyncFailedError is returned when a batch transaction was rolled back.
// The sync log identified by SyncLogID has been closed as failed.
type SyncFailedError struct {
	SyncLogID uuid.UUID
	Kind      EntityKind
	Err       error
}

func (e *SyncFailedError) Error() string {
	return fmt.Sprintf("sync %s of %s failed: %v", e.SyncLogID, e.Kind, e.Err)
}

func (e *SyncFailedError) Unwrap() error {
	return e.Err
}
