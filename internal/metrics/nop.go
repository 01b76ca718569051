// Package metrics provides internal metrics utilities for radguard.
package metrics

import "github.com/arloliu/radguard/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is configured,
// avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// OrNop returns m, or a NopMetrics when m is nil.
func OrNop(m types.MetricsCollector) types.MetricsCollector {
	if m == nil {
		return NewNopMetrics()
	}
	return m
}

// ----------------------
// Protected Cells
// ----------------------

// IncFaultDetected discards the metric.
func (m *NopMetrics) IncFaultDetected(_ types.FaultPattern) {}

// IncFaultCorrected discards the metric.
func (m *NopMetrics) IncFaultCorrected(_ types.FaultPattern) {}

// IncFaultUncorrectable discards the metric.
func (m *NopMetrics) IncFaultUncorrectable(_ types.FaultPattern) {}

// ----------------------
// Error Tracker
// ----------------------

// IncErrorRecorded discards the metric.
func (m *NopMetrics) IncErrorRecorded(_ types.FaultPattern) {}

// SetErrorRate discards the metric.
func (m *NopMetrics) SetErrorRate(_ float64) {}

// ----------------------
// Adaptive Controller
// ----------------------

// SetEnvironment discards the metric.
func (m *NopMetrics) SetEnvironment(_ types.EnvironmentType) {}

// IncEnvironmentChange discards the metric.
func (m *NopMetrics) IncEnvironmentChange(_, _ types.EnvironmentType) {}

// ----------------------
// Scrubbing
// ----------------------

// IncScrubPass discards the metric.
func (m *NopMetrics) IncScrubPass() {}

// IncScrubRepaired discards the metric.
func (m *NopMetrics) IncScrubRepaired(_ int) {}
