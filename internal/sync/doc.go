// Package sync holds the types shared by the sync engine and its recovery
// subsystem.
//
// A sync ingests one batch of one entity kind for one store. The engine is split
// into subpackages that are wired together by the writer:
//
//   - validator: per-kind structural checks that split a batch into typed valid
//     records and a skipped count
//   - resolver: batch lookup of external references (customer, product,
//     category, parent category) to internal ids
//   - writer: the transactional, idempotent upsert of one batch
//   - state: the sync_logs audit trail, one row per attempt
//   - retry: backoff scheduling, atomic retry claiming and stale run reaping
//   - coordinator: the periodic loop that drives retry and reaping
//
// # Errors
//
// Callers branch on the error values defined here. ErrInvalidBatchShape rejects a
// batch before any state is written. SyncFailedError carries the sync log id of a
// batch that was rolled back. NotFoundError and ValidationError describe retry
// state problems and match ErrNotFound and ErrNotRetryable with errors.Is.
// Reaching the retry limit is reported as a status, not an error.
package sync
