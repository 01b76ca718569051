package vm

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
	"github.com/arloliu/radguard/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "radguard"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

type patternCounters [types.NumFaultPatterns]*metrics.Counter

func (pc *patternCounters) inc(p types.FaultPattern) {
	if p.Valid() {
		pc[p].Inc()
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All metrics are pre-created at initialization time, one series per fault
// pattern and per environment transition. Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	// Protected cells
	faultDetected      patternCounters
	faultCorrected     patternCounters
	faultUncorrectable patternCounters

	// Error tracker
	errorRecorded patternCounters
	errorRateBits atomic.Uint64

	// Adaptive controller
	environment        atomic.Int64
	environmentChanges [types.NumEnvironments][types.NumEnvironments]*metrics.Counter

	// Scrubbing
	scrubPasses   *metrics.Counter
	scrubRepaired *metrics.Counter
}

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally unless
// WithMetricsSet is given.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("spacecraft"))
//	rt, _ := radguard.New(radguard.WithMetrics(collector))
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "radguard",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	for _, pat := range types.AllFaultPatterns {
		c.faultDetected[pat] = c.set.NewCounter(fmt.Sprintf(`%s_fault_detected_total{pattern="%s"}`, p, pat))
		c.faultCorrected[pat] = c.set.NewCounter(fmt.Sprintf(`%s_fault_corrected_total{pattern="%s"}`, p, pat))
		c.faultUncorrectable[pat] = c.set.NewCounter(fmt.Sprintf(`%s_fault_uncorrectable_total{pattern="%s"}`, p, pat))
		c.errorRecorded[pat] = c.set.NewCounter(fmt.Sprintf(`%s_error_recorded_total{pattern="%s"}`, p, pat))
	}

	c.set.NewGauge(fmt.Sprintf(`%s_error_rate`, p), func() float64 {
		return math.Float64frombits(c.errorRateBits.Load())
	})

	c.set.NewGauge(fmt.Sprintf(`%s_environment`, p), func() float64 {
		return float64(c.environment.Load())
	})
	for _, from := range types.AllEnvironments {
		for _, to := range types.AllEnvironments {
			if from == to {
				continue
			}
			c.environmentChanges[from][to] = c.set.NewCounter(
				fmt.Sprintf(`%s_environment_change_total{from="%s",to="%s"}`, p, from, to))
		}
	}

	c.scrubPasses = c.set.NewCounter(fmt.Sprintf(`%s_scrub_passes_total`, p))
	c.scrubRepaired = c.set.NewCounter(fmt.Sprintf(`%s_scrub_repaired_total`, p))
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// ----------------------
// Protected Cells
// ----------------------

// IncFaultDetected increments the detected fault counter.
func (c *Collector) IncFaultDetected(pattern types.FaultPattern) {
	c.faultDetected.inc(pattern)
}

// IncFaultCorrected increments the corrected fault counter.
func (c *Collector) IncFaultCorrected(pattern types.FaultPattern) {
	c.faultCorrected.inc(pattern)
}

// IncFaultUncorrectable increments the uncorrectable fault counter.
func (c *Collector) IncFaultUncorrectable(pattern types.FaultPattern) {
	c.faultUncorrectable.inc(pattern)
}

// ----------------------
// Error Tracker
// ----------------------

// IncErrorRecorded increments the tracker's error counter.
func (c *Collector) IncErrorRecorded(pattern types.FaultPattern) {
	c.errorRecorded.inc(pattern)
}

// SetErrorRate sets the smoothed error rate gauge.
func (c *Collector) SetErrorRate(rate float64) {
	c.errorRateBits.Store(math.Float64bits(rate))
}

// ----------------------
// Adaptive Controller
// ----------------------

// SetEnvironment sets the current environment gauge.
func (c *Collector) SetEnvironment(env types.EnvironmentType) {
	c.environment.Store(int64(env))
}

// IncEnvironmentChange increments the transition counter. Transitions
// involving undefined environments are not recorded.
func (c *Collector) IncEnvironmentChange(from, to types.EnvironmentType) {
	if !from.Valid() || !to.Valid() || from == to {
		return
	}
	c.environmentChanges[from][to].Inc()
}

// ----------------------
// Scrubbing
// ----------------------

// IncScrubPass increments the scrub pass counter.
func (c *Collector) IncScrubPass() {
	c.scrubPasses.Inc()
}

// IncScrubRepaired adds n to the repaired target counter.
func (c *Collector) IncScrubRepaired(n int) {
	if n > 0 {
		c.scrubRepaired.Add(n)
	}
}

// Verify interface compliance
var _ types.MetricsCollector = (*Collector)(nil)
