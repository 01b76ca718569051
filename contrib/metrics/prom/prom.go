package prom

import (
	"net/http"

	"github.com/arloliu/radguard/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option configures a Collector.
type Option func(*Collector)

// WithNamespace sets the metric namespace.
//
// Default: "radguard"
//
// Parameters:
//   - namespace: Prefix for all metric names
//
// Returns:
//   - Option: A configuration option
func WithNamespace(namespace string) Option {
	return func(c *Collector) {
		c.namespace = namespace
	}
}

// WithRegistry registers the collector's metrics with reg instead of a new
// private registry.
//
// Parameters:
//   - reg: Registry to register with and gather from
//
// Returns:
//   - Option: A configuration option
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Collector) {
		c.registry = reg
	}
}

// Collector implements types.MetricsCollector using the Prometheus client.
//
// Thread-safe for concurrent use.
type Collector struct {
	namespace string
	registry  *prometheus.Registry

	faultDetected      *prometheus.CounterVec
	faultCorrected     *prometheus.CounterVec
	faultUncorrectable *prometheus.CounterVec
	errorRecorded      *prometheus.CounterVec
	errorRate          prometheus.Gauge
	environment        prometheus.Gauge
	environmentChanges *prometheus.CounterVec
	scrubPasses        prometheus.Counter
	scrubRepaired      prometheus.Counter
}

// New creates a Prometheus collector and registers its metrics.
//
// Parameters:
//   - opts: Configuration options
//
// Returns:
//   - *Collector: The collector
//   - error: Registration error, e.g. a duplicate namespace on a shared registry
func New(opts ...Option) (*Collector, error) {
	c := &Collector{namespace: "radguard"}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}

	ns := c.namespace
	c.faultDetected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Name: "fault_detected_total",
		Help: "Faults detected on protected cell reads.",
	}, []string{"pattern"})
	c.faultCorrected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Name: "fault_corrected_total",
		Help: "Faults resolved by voting.",
	}, []string{"pattern"})
	c.faultUncorrectable = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Name: "fault_uncorrectable_total",
		Help: "Reads that produced no trusted result.",
	}, []string{"pattern"})
	c.errorRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Name: "error_recorded_total",
		Help: "Errors recorded by the error tracker.",
	}, []string{"pattern"})
	c.errorRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: ns, Name: "error_rate",
		Help: "Smoothed error rate in errors per second.",
	})
	c.environment = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: ns, Name: "environment",
		Help: "Current environment ordinal (0=benign, 6=extreme).",
	})
	c.environmentChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Name: "environment_change_total",
		Help: "Environment transitions.",
	}, []string{"from", "to"})
	c.scrubPasses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns, Name: "scrub_passes_total",
		Help: "Completed scrub passes.",
	})
	c.scrubRepaired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns, Name: "scrub_repaired_total",
		Help: "Targets rewritten by scrubbing.",
	})

	for _, m := range []prometheus.Collector{
		c.faultDetected, c.faultCorrected, c.faultUncorrectable, c.errorRecorded,
		c.errorRate, c.environment, c.environmentChanges, c.scrubPasses, c.scrubRepaired,
	} {
		if err := c.registry.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// IncFaultDetected increments the detected fault counter.
func (c *Collector) IncFaultDetected(pattern types.FaultPattern) {
	c.faultDetected.WithLabelValues(pattern.String()).Inc()
}

// IncFaultCorrected increments the corrected fault counter.
func (c *Collector) IncFaultCorrected(pattern types.FaultPattern) {
	c.faultCorrected.WithLabelValues(pattern.String()).Inc()
}

// IncFaultUncorrectable increments the uncorrectable fault counter.
func (c *Collector) IncFaultUncorrectable(pattern types.FaultPattern) {
	c.faultUncorrectable.WithLabelValues(pattern.String()).Inc()
}

// IncErrorRecorded increments the tracker's error counter.
func (c *Collector) IncErrorRecorded(pattern types.FaultPattern) {
	c.errorRecorded.WithLabelValues(pattern.String()).Inc()
}

// SetErrorRate sets the smoothed error rate gauge.
func (c *Collector) SetErrorRate(rate float64) {
	c.errorRate.Set(rate)
}

// SetEnvironment sets the current environment gauge.
func (c *Collector) SetEnvironment(env types.EnvironmentType) {
	c.environment.Set(float64(env))
}

// IncEnvironmentChange increments the transition counter.
func (c *Collector) IncEnvironmentChange(from, to types.EnvironmentType) {
	c.environmentChanges.WithLabelValues(from.String(), to.String()).Inc()
}

// IncScrubPass increments the scrub pass counter.
func (c *Collector) IncScrubPass() {
	c.scrubPasses.Inc()
}

// IncScrubRepaired adds n to the repaired target counter.
func (c *Collector) IncScrubRepaired(n int) {
	if n > 0 {
		c.scrubRepaired.Add(float64(n))
	}
}

var _ types.MetricsCollector = (*Collector)(nil)
