package redundancy

import (
	"github.com/arloliu/radguard/internal/logging"
	"github.com/arloliu/radguard/internal/metrics"
	"github.com/arloliu/radguard/types"
)

// Config holds the collaborators shared by protected cells.
type Config struct {
	Logger       types.Logger
	Metrics      types.MetricsCollector
	FaultHandler types.FaultHandler
}

// DefaultConfig returns a Config with no-op logging and metrics and no fault
// handler.
//
// Returns:
//   - *Config: Configuration with default settings
func DefaultConfig() *Config {
	return &Config{
		Logger:  logging.NewNopLogger(),
		Metrics: metrics.NewNopMetrics(),
	}
}

// Option configures a protected cell.
type Option func(*Config)

// WithLogger sets the logger used to report uncorrectable reads.
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

// WithMetrics sets the metrics collector for detected, corrected and
// uncorrectable faults.
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

// WithFaultHandler sets a callback invoked for every detected fault.
//
// The handler receives the classified pattern of the disagreement and a short
// description. Pass adaptive.Controller.LogError or
// tracker.ErrorTracker.RecordError to feed environment detection.
//
// Parameters:
//   - handler: Callback, or nil to disable reporting
//
// Returns:
//   - Option: Configuration option
func WithFaultHandler(handler types.FaultHandler) Option {
	return func(c *Config) {
		c.FaultHandler = handler
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
