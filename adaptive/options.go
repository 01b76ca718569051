package adaptive

import (
	"time"

	"github.com/arloliu/radguard/internal/logging"
	"github.com/arloliu/radguard/internal/metrics"
	"github.com/arloliu/radguard/types"
)

// Config holds Controller configuration.
type Config struct {
	Clock              func() time.Time
	Detection          DetectionConfig
	Settings           SettingsTable
	InitialEnvironment types.EnvironmentType
	AdaptiveMode       bool
	Logger             types.Logger
	Metrics            types.MetricsCollector
}

// DefaultConfig returns a Config starting in Benign with adaptive mode on,
// the default detection constants and tier table, time.Now, and no-op
// logging and metrics.
//
// Returns:
//   - *Config: Configuration with default settings
func DefaultConfig() *Config {
	return &Config{
		Clock:              time.Now,
		Detection:          DefaultDetectionConfig(),
		Settings:           DefaultSettings(),
		InitialEnvironment: types.Benign,
		AdaptiveMode:       true,
		Logger:             logging.NewNopLogger(),
		Metrics:            metrics.NewNopMetrics(),
	}
}

// Option configures a Controller.
type Option func(*Config)

// WithClock sets the time source for check intervals and hysteresis.
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

// WithDetectionConfig replaces the detection constants.
//
// Parameters:
//   - cfg: Detection constants; New rejects invalid values
//
// Returns:
//   - Option: Configuration option
func WithDetectionConfig(cfg DetectionConfig) Option {
	return func(c *Config) {
		c.Detection = cfg
	}
}

// WithSettings replaces the tier table, e.g. with the result of LoadSettings.
//
// Parameters:
//   - table: Settings per environment; unmapped environments use the Extreme tier
//
// Returns:
//   - Option: Configuration option
func WithSettings(table SettingsTable) Option {
	return func(c *Config) {
		c.Settings = table.Clone()
	}
}

// WithInitialEnvironment sets the starting tier.
//
// Parameters:
//   - env: Starting environment (default: Benign)
//
// Returns:
//   - Option: Configuration option
func WithInitialEnvironment(env types.EnvironmentType) Option {
	return func(c *Config) {
		c.InitialEnvironment = env
	}
}

// WithAdaptiveMode sets whether automatic detection starts enabled.
//
// Parameters:
//   - enabled: Enable auto-detection (default: true)
//
// Returns:
//   - Option: Configuration option
func WithAdaptiveMode(enabled bool) Option {
	return func(c *Config) {
		c.AdaptiveMode = enabled
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

// WithMetrics sets the metrics collector for environment gauges and transitions.
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
