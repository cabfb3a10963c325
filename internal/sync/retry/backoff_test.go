package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedJitter(v float64) Jitter {
	return func() float64 { return v }
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		n      int
		jitter float64
		want   time.Duration
	}{
		{name: "first retry without jitter", n: 1, jitter: 0.5, want: 60 * time.Second},
		{name: "second retry", n: 2, jitter: 0.5, want: 120 * time.Second},
		{name: "fourth retry", n: 4, jitter: 0.5, want: 480 * time.Second},
		{name: "fifth retry is capped", n: 5, jitter: 0.5, want: 900 * time.Second},
		{name: "far past the cap", n: 40, jitter: 0.5, want: 900 * time.Second},
		{name: "zero count floors at base", n: 0, jitter: 0.5, want: 30 * time.Second},
		{name: "negative count floors at base", n: -3, jitter: 0.5, want: 30 * time.Second},
		{name: "lowest jitter", n: 5, jitter: 0, want: 720 * time.Second},
		{name: "highest jitter", n: 5, jitter: 0.999999, want: 1080 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Backoff(tt.n, fixedJitter(tt.jitter))
			assert.InDelta(t, float64(tt.want), float64(got), float64(time.Millisecond))
		})
	}
}

func TestBackoffBounds(t *testing.T) {
	t.Parallel()

	for n := 1; n <= MaxRetries; n++ {
		nominal := min(BaseBackoff<<n, MaxBackoff)
		for range 200 {
			got := Backoff(n, nil)
			assert.GreaterOrEqual(t, got, time.Duration(float64(nominal)*0.8))
			assert.Less(t, got, time.Duration(float64(nominal)*1.2))
		}
	}
}
