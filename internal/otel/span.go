// Package otel provides OpenTelemetry span helpers shared by the sync engine and the recovery loop.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for sync context. Values are identifiers and counts only, never record payloads.
const (
	AttrStoreID       = attribute.Key("store.id")
	AttrSyncLogID     = attribute.Key("sync_log.id")
	AttrSyncType      = attribute.Key("sync.type")
	AttrEntityKind    = attribute.Key("entity.kind")
	AttrBatchSize     = attribute.Key("batch.size")
	AttrSyncedCount   = attribute.Key("batch.synced")
	AttrSkippedCount  = attribute.Key("batch.skipped")
	AttrRetryCount    = attribute.Key("retry.count")
	AttrReapedCount   = attribute.Key("reaper.count")
	AttrScheduleState = attribute.Key("retry.status")
)

// DBSpanOptions are the start options for spans wrapping database work.
func DBSpanOptions(attrs ...attribute.KeyValue) []trace.SpanStartOption {
	return []trace.SpanStartOption{
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(semconv.DBSystemPostgreSQL),
		trace.WithAttributes(attrs...),
	}
}

// StartSpan starts a new span if the tracer is non-nil, otherwise returns a no-op span.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError records an error on a span and sets the span status to error.
// It safely handles nil spans and nil errors.
// The status description stays generic so SQL text and connection details never
// land in the status; the recorded event still carries the full error.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
