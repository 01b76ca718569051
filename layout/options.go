package layout

import (
	"github.com/arloliu/radguard/internal/logging"
	"github.com/arloliu/radguard/internal/metrics"
	"github.com/arloliu/radguard/types"
)

// DefaultAlignment is the block size, in bytes, separating aligned copies.
const DefaultAlignment = 64

// Config holds layout options.
type Config struct {
	// Alignment is the power-of-two block size for Aligned copies.
	// Ignored by Interleaved.
	Alignment int

	// ScrubOnRead rewrites disagreeing copies during Get. Default: true.
	ScrubOnRead bool

	Logger       types.Logger
	Metrics      types.MetricsCollector
	FaultHandler types.FaultHandler
}

// DefaultConfig returns a Config with 64-byte alignment, scrub-on-read
// enabled, and no-op logging and metrics.
//
// Returns:
//   - *Config: Configuration with default settings
func DefaultConfig() *Config {
	return &Config{
		Alignment:   DefaultAlignment,
		ScrubOnRead: true,
		Logger:      logging.NewNopLogger(),
		Metrics:     metrics.NewNopMetrics(),
	}
}

// Option configures a layout.
type Option func(*Config)

// WithAlignment sets the block size separating Aligned copies.
//
// The value must be a power of two no smaller than the size of the stored
// type; NewAligned rejects anything else.
//
// Parameters:
//   - n: Alignment in bytes (default: 64)
//
// Returns:
//   - Option: Configuration option
func WithAlignment(n int) Option {
	return func(c *Config) {
		c.Alignment = n
	}
}

// WithScrubOnRead controls whether Aligned.Get rewrites disagreeing copies.
//
// Parameters:
//   - enabled: Scrub during reads (default: true)
//
// Returns:
//   - Option: Configuration option
func WithScrubOnRead(enabled bool) Option {
	return func(c *Config) {
		c.ScrubOnRead = enabled
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

// WithMetrics sets the metrics collector.
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

func newConfig(opts []Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
