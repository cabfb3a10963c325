package retry

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/commerce-sync/internal/telemetry"
)

// DefaultStaleThreshold is how long a sync may stay running before the Reaper fails it
const DefaultStaleThreshold = 15 * time.Minute

type options struct {
	clock          Clock
	jitter         Jitter
	staleThreshold time.Duration
	metrics        *telemetry.RecoveryMetrics
	tracer         trace.Tracer
}

func newOptions(opts []Option) *options {
	o := &options{
		clock:          systemClock{},
		staleThreshold: DefaultStaleThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a Scheduler or a Reaper
type Option func(*options)

// WithClock replaces the wall clock
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithJitter replaces the random source of the backoff jitter
func WithJitter(jitter Jitter) Option {
	return func(o *options) {
		o.jitter = jitter
	}
}

// WithStaleThreshold sets the age after which a running sync is failed.
// Non-positive values keep the default.
func WithStaleThreshold(threshold time.Duration) Option {
	return func(o *options) {
		if threshold > 0 {
			o.staleThreshold = threshold
		}
	}
}

// WithRecoveryMetrics sets the metrics recorder
func WithRecoveryMetrics(metrics *telemetry.RecoveryMetrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithTracer sets the tracer
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}
