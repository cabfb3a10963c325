// Package retry schedules failed syncs for another attempt and fails syncs
// whose worker stopped making progress.
//
// Scheduling and claiming are single conditional UPDATE statements on the
// sync_logs row, so concurrent callers racing on one failed sync agree on a
// single outcome without any application-level lock. The retry counter is
// incremented when a retry is scheduled; claiming a due retry only moves the
// row back to running.
//
// The Reaper is the remedy for a worker that crashed mid-sync: a log left in
// running for longer than the stale threshold is failed, which makes it
// eligible for scheduling on the next recovery pass.
package retry
