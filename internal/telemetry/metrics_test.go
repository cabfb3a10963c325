package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum for %s", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNilMetricsAreNoOps(t *testing.T) {
	t.Parallel()

	syncMetrics, err := NewSyncMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, syncMetrics)

	recoveryMetrics, err := NewRecoveryMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, recoveryMetrics)

	assert.NotPanics(t, func() {
		ctx := context.Background()
		syncMetrics.RecordBatch(ctx, "orders", time.Second, 1, 1, true)
		recoveryMetrics.RecordRetryScheduled(ctx, "orders")
		recoveryMetrics.RecordRetriesExhausted(ctx, "orders")
		recoveryMetrics.RecordStaleReaped(ctx, 2)
	})
}

func TestSyncMetricsRecordBatch(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewSyncMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordBatch(ctx, "orders", 2*time.Second, 2, 1, true)
	metrics.RecordBatch(ctx, "products", time.Second, 0, 0, false)

	got := collect(t, reader)

	hist, ok := got["commerce_sync_batch_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)

	assert.Equal(t, int64(2), sumOf(t, got["commerce_sync_records_synced_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["commerce_sync_records_skipped_total"]))
}

func TestRecoveryMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewRecoveryMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordRetryScheduled(ctx, "orders")
	metrics.RecordRetryScheduled(ctx, "webhook:products")
	metrics.RecordRetriesExhausted(ctx, "orders")
	metrics.RecordStaleReaped(ctx, 3)
	metrics.RecordStaleReaped(ctx, 0)

	got := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, got["commerce_sync_retries_scheduled_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["commerce_sync_retries_exhausted_total"]))
	assert.Equal(t, int64(3), sumOf(t, got["commerce_sync_stale_reaped_total"]))
}
