package retry

import (
	"math/rand/v2"
	"time"
)

const (
	// MaxRetries caps the retry count of a sync log
	MaxRetries = 5

	// BaseBackoff is the delay unit doubled on every attempt
	BaseBackoff = 30 * time.Second

	// MaxBackoff caps the delay before jitter is applied
	MaxBackoff = 900 * time.Second

	// jitterSpread is the fraction the delay may move in either direction
	jitterSpread = 0.2
)

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Jitter returns a value in [0, 1)
type Jitter func() float64

// Backoff returns the delay before retry attempt n, where n is the retry count
// after the increment that scheduled it.
// The delay is min(2^n * BaseBackoff, MaxBackoff), at least BaseBackoff,
// scaled by a factor in [0.8, 1.2) drawn from jitter.
func Backoff(n int, jitter Jitter) time.Duration {
	if jitter == nil {
		jitter = rand.Float64
	}

	delay := MaxBackoff
	// 2^5 * 30s already exceeds the cap
	if n < 5 {
		delay = BaseBackoff << max(n, 0)
	}
	delay = min(max(delay, BaseBackoff), MaxBackoff)

	factor := 1 - jitterSpread + 2*jitterSpread*jitter()
	return time.Duration(float64(delay) * factor)
}
