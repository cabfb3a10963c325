package coordinator

import (
	"time"

	"github.com/stacklok/commerce-sync/internal/config"
)

// defaultPollInterval is used when no interval is configured
const defaultPollInterval = 2 * time.Minute

// maxPollingJitter is the largest random offset applied to the polling interval
const maxPollingJitter = 30 * time.Second

// OptionsFromConfig returns the options derived from the service configuration
func OptionsFromConfig(cfg *config.Config) []Option {
	if cfg == nil {
		return nil
	}
	return []Option{WithPollInterval(cfg.GetPollInterval())}
}

// pollingJitter is a quarter of the interval, capped at maxPollingJitter
func pollingJitter(base time.Duration) time.Duration {
	return min(base/4, maxPollingJitter)
}
