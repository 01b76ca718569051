package radguard

import (
	"time"

	"github.com/arloliu/radguard/adaptive"
	"github.com/arloliu/radguard/internal/logging"
	"github.com/arloliu/radguard/internal/metrics"
	"github.com/arloliu/radguard/tracker"
	"github.com/arloliu/radguard/types"
)

// Config holds configuration for a Runtime.
type Config struct {
	Clock              func() time.Time
	Logger             types.Logger
	Metrics            types.MetricsCollector
	InitialEnvironment types.EnvironmentType
	Detection          adaptive.DetectionConfig
	Settings           adaptive.SettingsTable
	HistoryCapacity    int
	AdaptiveMode       bool
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - *Config: Benign start, adaptive mode on, no-op logger and metrics
func DefaultConfig() *Config {
	return &Config{
		Clock:              time.Now,
		Logger:             logging.NewNopLogger(),
		Metrics:            metrics.NewNopMetrics(),
		InitialEnvironment: types.Benign,
		Detection:          adaptive.DefaultDetectionConfig(),
		Settings:           adaptive.DefaultSettings(),
		HistoryCapacity:    tracker.DefaultHistoryCapacity,
		AdaptiveMode:       true,
	}
}

// Option configures a Runtime.
type Option func(*Config)

// WithClock sets the time source shared by the tracker, controller and scrubber.
//
// Parameters:
//   - clock: Time source (default: time.Now); nil restores the default
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

// WithLogger sets the logger shared by every component.
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

// WithMetrics sets the metrics collector shared by every component.
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

// WithInitialEnvironment sets the environment the controller starts in.
func WithInitialEnvironment(env types.EnvironmentType) Option {
	return func(c *Config) {
		c.InitialEnvironment = env
	}
}

// WithDetectionConfig sets the controller's detection parameters.
func WithDetectionConfig(cfg adaptive.DetectionConfig) Option {
	return func(c *Config) {
		c.Detection = cfg
	}
}

// WithSettings replaces the per-environment protection table, typically one
// returned by adaptive.LoadSettings.
func WithSettings(table adaptive.SettingsTable) Option {
	return func(c *Config) {
		c.Settings = table
	}
}

// WithHistoryCapacity sets how many recent errors the tracker retains.
func WithHistoryCapacity(n int) Option {
	return func(c *Config) {
		c.HistoryCapacity = n
	}
}

// WithAdaptiveMode enables or disables automatic environment detection.
func WithAdaptiveMode(enabled bool) Option {
	return func(c *Config) {
		c.AdaptiveMode = enabled
	}
}
