package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/stacklok/commerce-sync/internal/db/sqlc"
	"github.com/stacklok/commerce-sync/internal/sources"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
	"github.com/stacklok/commerce-sync/internal/sync/retry"
	"github.com/stacklok/commerce-sync/internal/sync/state"
	"github.com/stacklok/commerce-sync/internal/sync/writer"
)

// Coordinator runs recovery passes in the background
type Coordinator interface {
	// Start runs a pass immediately and then on every tick.
	// Blocks until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop stops the loop and waits for the running pass to finish
	Stop() error

	// RunOnce runs a single pass over every store
	RunOnce(ctx context.Context) PassSummary
}

// StoreLister lists the tenants to recover
//
//go:generate mockgen -destination=mocks/mock_store_lister.go -package=mocks -source=coordinator.go StoreLister
type StoreLister interface {
	ListStores(ctx context.Context) ([]sqlc.Store, error)
}

// PassSummary counts what a pass did
type PassSummary struct {
	Stores      int `json:"stores"`
	Reaped      int `json:"reaped"`
	Scheduled   int `json:"scheduled"`
	Exhausted   int `json:"exhausted"`
	Retried     int `json:"retried"`
	RetryFailed int `json:"retry_failed"`
	Errors      int `json:"errors"`
}

func (s *PassSummary) add(o PassSummary) {
	s.Reaped += o.Reaped
	s.Scheduled += o.Scheduled
	s.Exhausted += o.Exhausted
	s.Retried += o.Retried
	s.RetryFailed += o.RetryFailed
	s.Errors += o.Errors
}

type defaultCoordinator struct {
	stores    StoreLister
	scheduler retry.Scheduler
	reaper    retry.Reaper
	writer    writer.SyncWriter
	recorder  state.SyncLogRecorder
	source    sources.BatchSource

	pollInterval time.Duration

	// Lifecycle management
	cancelFunc context.CancelFunc
	done       chan struct{}
}

// Option is a function that configures the coordinator
type Option func(*defaultCoordinator)

// WithBatchSource sets where due retries refetch their batch
func WithBatchSource(source sources.BatchSource) Option {
	return func(c *defaultCoordinator) {
		c.source = source
	}
}

// WithPollInterval sets the base interval between passes
func WithPollInterval(interval time.Duration) Option {
	return func(c *defaultCoordinator) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// New creates a new coordinator with injected dependencies
func New(
	stores StoreLister,
	scheduler retry.Scheduler,
	reaper retry.Reaper,
	syncWriter writer.SyncWriter,
	recorder state.SyncLogRecorder,
	opts ...Option,
) Coordinator {
	c := &defaultCoordinator{
		stores:       stores,
		scheduler:    scheduler,
		reaper:       reaper,
		writer:       syncWriter,
		recorder:     recorder,
		pollInterval: defaultPollInterval,
		done:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// calculatePollingInterval returns the base polling interval with a random jitter applied
func (c *defaultCoordinator) calculatePollingInterval() time.Duration {
	jitter := pollingJitter(c.pollInterval)
	if jitter <= 0 {
		return c.pollInterval
	}
	//nolint:gosec // G404: Non-cryptographic randomness is sufficient for polling jitter
	offset := time.Duration(rand.Int64N(int64(2*jitter))) - jitter
	return c.pollInterval + offset
}

// Start begins the background recovery loop
func (c *defaultCoordinator) Start(ctx context.Context) error {
	slog.Info("Starting recovery coordinator", "retries_enabled", c.source != nil)

	coordCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel
	defer func() {
		close(c.done)
		slog.Info("Recovery coordinator shutting down")
	}()

	pollingInterval := c.calculatePollingInterval()
	slog.Info("Configured recovery interval",
		"base_interval", c.pollInterval,
		"actual_interval", pollingInterval)

	ticker := time.NewTicker(pollingInterval)
	defer ticker.Stop()

	c.RunOnce(coordCtx)

	for {
		select {
		case <-ticker.C:
			c.RunOnce(coordCtx)

			// New jitter for the next tick
			ticker.Reset(c.calculatePollingInterval())
		case <-coordCtx.Done():
			slog.Info("Recovery coordinator stopping")
			return nil
		}
	}
}

// Stop gracefully stops the coordinator
func (c *defaultCoordinator) Stop() error {
	if c.cancelFunc != nil {
		slog.Info("Stopping recovery coordinator")
		c.cancelFunc()
		<-c.done
	}
	return nil
}

// RunOnce recovers every store in turn
func (c *defaultCoordinator) RunOnce(ctx context.Context) PassSummary {
	var summary PassSummary

	stores, err := c.stores.ListStores(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list stores", "error", err)
		summary.Errors++
		return summary
	}

	for _, store := range stores {
		if ctx.Err() != nil {
			break
		}
		summary.Stores++
		summary.add(c.recoverStore(ctx, store.ID))
	}

	if summary != (PassSummary{Stores: summary.Stores}) {
		slog.InfoContext(ctx, "Recovery pass finished",
			"stores", summary.Stores,
			"reaped", summary.Reaped,
			"scheduled", summary.Scheduled,
			"exhausted", summary.Exhausted,
			"retried", summary.Retried,
			"retry_failed", summary.RetryFailed,
			"errors", summary.Errors)
	}
	return summary
}

func (c *defaultCoordinator) recoverStore(ctx context.Context, storeID uuid.UUID) PassSummary {
	var summary PassSummary
	logger := slog.With("store_id", storeID)

	reaped, err := c.reaper.DetectStaleSyncs(ctx, storeID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to reap stale syncs", "error", err)
		summary.Errors++
	}
	summary.Reaped = int(reaped)

	failures, err := c.scheduler.GetUnscheduledFailures(ctx, storeID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list unscheduled failures", "error", err)
		summary.Errors++
	}
	for _, failure := range failures {
		result, err := c.scheduler.ScheduleRetry(ctx, storeID, failure.ID)
		switch {
		case err != nil:
			logger.WarnContext(ctx, "Failed to schedule retry", "sync_log_id", failure.ID, "error", err)
			summary.Errors++
		case result.Status == retry.StatusMaxRetriesReached:
			summary.Exhausted++
		default:
			summary.Scheduled++
		}
	}

	if c.source == nil {
		return summary
	}

	due, err := c.scheduler.GetDueRetries(ctx, storeID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list due retries", "error", err)
		summary.Errors++
		return summary
	}
	for _, log := range due {
		if ctx.Err() != nil {
			break
		}
		claimed, err := c.scheduler.ClaimDueRetry(ctx, storeID, log.ID)
		if err != nil {
			logger.WarnContext(ctx, "Failed to claim retry", "sync_log_id", log.ID, "error", err)
			summary.Errors++
			continue
		}
		if !claimed {
			logger.DebugContext(ctx, "Retry claimed by another worker", "sync_log_id", log.ID)
			continue
		}

		if err := c.executeRetry(ctx, log); err != nil {
			summary.RetryFailed++
			continue
		}
		summary.Retried++
	}

	return summary
}

// executeRetry refetches the batch of a claimed retry and upserts it into the
// same sync log. The log ends up completed or failed.
func (c *defaultCoordinator) executeRetry(ctx context.Context, log state.SyncLog) error {
	logger := slog.With("store_id", log.StoreID, "sync_log_id", log.ID, "sync_type", log.SyncType)

	kind, err := pkgsync.KindFromSyncType(log.SyncType)
	if err != nil {
		return c.failClaimed(ctx, log, fmt.Errorf("cannot retry sync type %q: %w", log.SyncType, err))
	}

	batch, err := c.source.FetchBatch(ctx, log.StoreID, kind)
	if err != nil {
		return c.failClaimed(ctx, log, fmt.Errorf("failed to refetch batch: %w", err))
	}

	result, err := c.writer.Upsert(ctx, log.StoreID, kind, batch, writer.WithSyncLogID(log.ID))
	if err != nil {
		var syncErr *pkgsync.SyncFailedError
		if errors.As(err, &syncErr) || errors.Is(err, pkgsync.ErrNotRetryable) {
			// The writer closed the log, or the log is no longer ours to close
			logger.WarnContext(ctx, "Retry failed", "retry_count", log.RetryCount, "error", err)
			return err
		}
		return c.failClaimed(ctx, log, err)
	}

	logger.InfoContext(ctx, "Retry completed",
		"retry_count", log.RetryCount,
		"synced", result.SyncedCount,
		"skipped", result.SkippedCount)
	return nil
}

// failClaimed closes a claimed sync log as failed so a later pass can schedule it again
func (c *defaultCoordinator) failClaimed(ctx context.Context, log state.SyncLog, cause error) error {
	closeCtx := context.WithoutCancel(ctx)
	if err := c.recorder.Close(closeCtx, log.ID, state.CloseParams{
		Status:       state.StatusFailed,
		ErrorMessage: cause.Error(),
	}); err != nil {
		slog.ErrorContext(closeCtx, "Failed to mark retry as failed",
			"sync_log_id", log.ID,
			"error", err)
	}
	slog.WarnContext(ctx, "Retry failed",
		"store_id", log.StoreID,
		"sync_log_id", log.ID,
		"retry_count", log.RetryCount,
		"error", cause)
	return cause
}
