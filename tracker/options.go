package tracker

import (
	"time"

	"github.com/arloliu/radguard/internal/logging"
	"github.com/arloliu/radguard/internal/metrics"
	"github.com/arloliu/radguard/types"
)

// DefaultHistoryCapacity is the default number of ErrorRecords kept.
const DefaultHistoryCapacity = 1000

// Config holds ErrorTracker configuration.
type Config struct {
	Clock           func() time.Time
	HistoryCapacity int
	Logger          types.Logger
	Metrics         types.MetricsCollector
}

// DefaultConfig returns a Config using time.Now, a 1000-entry history, and
// no-op logging and metrics.
//
// Returns:
//   - *Config: Configuration with default settings
func DefaultConfig() *Config {
	return &Config{
		Clock:           time.Now,
		HistoryCapacity: DefaultHistoryCapacity,
		Logger:          logging.NewNopLogger(),
		Metrics:         metrics.NewNopMetrics(),
	}
}

// Option configures an ErrorTracker.
type Option func(*Config)

// WithClock sets the time source used for timestamps and rate windows.
//
// Parameters:
//   - clock: Function returning the current time (nil restores time.Now)
//
// Returns:
//   - Option: Configuration option
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		if clock == nil {
			clock = time.Now
		}
		c.Clock = clock
	}
}

// WithHistoryCapacity sets how many recent ErrorRecords are retained.
//
// Parameters:
//   - n: Capacity; values below 1 are raised to 1 (default: 1000)
//
// Returns:
//   - Option: Configuration option
func WithHistoryCapacity(n int) Option {
	return func(c *Config) {
		c.HistoryCapacity = max(n, 1)
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: Logger implementation (nil restores the no-op logger)
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(c *Config) {
		c.Logger = logging.OrNop(logger)
	}
}

// WithMetrics sets the metrics collector for recorded errors and the
// smoothed error rate.
//
// Parameters:
//   - collector: MetricsCollector implementation (nil restores the no-op collector)
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector types.MetricsCollector) Option {
	return func(c *Config) {
		c.Metrics = metrics.OrNop(collector)
	}
}
