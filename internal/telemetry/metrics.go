package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// SyncMetricsMeterName is the name used for the sync engine meter
	SyncMetricsMeterName = "github.com/stacklok/commerce-sync/sync"

	// RecoveryMetricsMeterName is the name used for the retry and reaper meter
	RecoveryMetricsMeterName = "github.com/stacklok/commerce-sync/recovery"
)

// SyncMetrics holds the OpenTelemetry instruments for batch upserts
type SyncMetrics struct {
	syncDuration   metric.Float64Histogram
	recordsSynced  metric.Int64Counter
	recordsSkipped metric.Int64Counter
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	syncDuration, err := meter.Float64Histogram(
		"commerce_sync_batch_duration_seconds",
		metric.WithDescription("Duration of batch upserts in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60),
	)
	if err != nil {
		return nil, err
	}

	recordsSynced, err := meter.Int64Counter(
		"commerce_sync_records_synced_total",
		metric.WithDescription("Number of records written by batch upserts"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	recordsSkipped, err := meter.Int64Counter(
		"commerce_sync_records_skipped_total",
		metric.WithDescription("Number of records skipped by validation"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		syncDuration:   syncDuration,
		recordsSynced:  recordsSynced,
		recordsSkipped: recordsSkipped,
	}, nil
}

// RecordBatch records the outcome of one batch upsert
func (m *SyncMetrics) RecordBatch(
	ctx context.Context, kind string, duration time.Duration, synced, skipped int, success bool,
) {
	if m == nil || m.syncDuration == nil {
		return
	}

	kindAttr := attribute.String("kind", kind)
	m.syncDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(kindAttr, attribute.Bool("success", success)))

	if synced > 0 {
		m.recordsSynced.Add(ctx, int64(synced), metric.WithAttributes(kindAttr))
	}
	if skipped > 0 {
		m.recordsSkipped.Add(ctx, int64(skipped), metric.WithAttributes(kindAttr))
	}
}

// RecoveryMetrics holds the OpenTelemetry instruments for retry scheduling and reaping
type RecoveryMetrics struct {
	retriesScheduled metric.Int64Counter
	retriesExhausted metric.Int64Counter
	staleReaped      metric.Int64Counter
}

// NewRecoveryMetrics creates a new RecoveryMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewRecoveryMetrics(provider metric.MeterProvider) (*RecoveryMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(RecoveryMetricsMeterName)

	retriesScheduled, err := meter.Int64Counter(
		"commerce_sync_retries_scheduled_total",
		metric.WithDescription("Number of failed syncs scheduled for retry"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	retriesExhausted, err := meter.Int64Counter(
		"commerce_sync_retries_exhausted_total",
		metric.WithDescription("Number of failed syncs that reached the retry limit"),
		metric.WithUnit("{sync}"),
	)
	if err != nil {
		return nil, err
	}

	staleReaped, err := meter.Int64Counter(
		"commerce_sync_stale_reaped_total",
		metric.WithDescription("Number of stalled running syncs marked failed"),
		metric.WithUnit("{sync}"),
	)
	if err != nil {
		return nil, err
	}

	return &RecoveryMetrics{
		retriesScheduled: retriesScheduled,
		retriesExhausted: retriesExhausted,
		staleReaped:      staleReaped,
	}, nil
}

// RecordRetryScheduled counts one scheduled retry
func (m *RecoveryMetrics) RecordRetryScheduled(ctx context.Context, syncType string) {
	if m == nil || m.retriesScheduled == nil {
		return
	}
	m.retriesScheduled.Add(ctx, 1, metric.WithAttributes(attribute.String("sync_type", syncType)))
}

// RecordRetriesExhausted counts one sync that will not be retried again
func (m *RecoveryMetrics) RecordRetriesExhausted(ctx context.Context, syncType string) {
	if m == nil || m.retriesExhausted == nil {
		return
	}
	m.retriesExhausted.Add(ctx, 1, metric.WithAttributes(attribute.String("sync_type", syncType)))
}

// RecordStaleReaped counts syncs failed by the reaper
func (m *RecoveryMetrics) RecordStaleReaped(ctx context.Context, count int64) {
	if m == nil || m.staleReaped == nil || count <= 0 {
		return
	}
	m.staleReaped.Add(ctx, count)
}
