// Package testutil provides test doubles shared by radguard package tests.
package testutil

import (
	"sync"
	"sync/atomic"

	"github.com/arloliu/radguard/types"
)

// TestMetricsCollector is a test implementation of types.MetricsCollector
// that tracks method calls for assertion in tests.
type TestMetricsCollector struct {
	mu sync.RWMutex

	// Protected cells
	FaultDetected      map[types.FaultPattern]int64
	FaultCorrected     map[types.FaultPattern]int64
	FaultUncorrectable map[types.FaultPattern]int64

	// Error tracker
	ErrorRecorded map[types.FaultPattern]int64
	ErrorRate     float64

	// Adaptive controller
	Environment       types.EnvironmentType
	EnvironmentChange map[string]int64 // key: "from->to"

	// Atomic counters for quick access
	scrubPasses    atomic.Int64
	scrubRepaired  atomic.Int64
	totalDetected  atomic.Int64
	totalRecorded  atomic.Int64
	totalEnvChange atomic.Int64
}

// Compile-time assertion that TestMetricsCollector implements types.MetricsCollector.
var _ types.MetricsCollector = (*TestMetricsCollector)(nil)

// NewTestMetricsCollector creates a new test metrics collector.
func NewTestMetricsCollector() *TestMetricsCollector {
	return &TestMetricsCollector{
		FaultDetected:      make(map[types.FaultPattern]int64),
		FaultCorrected:     make(map[types.FaultPattern]int64),
		FaultUncorrectable: make(map[types.FaultPattern]int64),
		ErrorRecorded:      make(map[types.FaultPattern]int64),
		EnvironmentChange:  make(map[string]int64),
	}
}

// ----------------------
// Protected Cells
// ----------------------

// IncFaultDetected records a detected fault.
func (m *TestMetricsCollector) IncFaultDetected(pattern types.FaultPattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FaultDetected[pattern]++
	m.totalDetected.Add(1)
}

// IncFaultCorrected records a corrected fault.
func (m *TestMetricsCollector) IncFaultCorrected(pattern types.FaultPattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FaultCorrected[pattern]++
}

// IncFaultUncorrectable records an uncorrectable fault.
func (m *TestMetricsCollector) IncFaultUncorrectable(pattern types.FaultPattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FaultUncorrectable[pattern]++
}

// ----------------------
// Error Tracker
// ----------------------

// IncErrorRecorded records a tracked error.
func (m *TestMetricsCollector) IncErrorRecorded(pattern types.FaultPattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorRecorded[pattern]++
	m.totalRecorded.Add(1)
}

// SetErrorRate records the latest error rate.
func (m *TestMetricsCollector) SetErrorRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorRate = rate
}

// ----------------------
// Adaptive Controller
// ----------------------

// SetEnvironment records the current environment.
func (m *TestMetricsCollector) SetEnvironment(env types.EnvironmentType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Environment = env
}

// IncEnvironmentChange records an environment transition.
func (m *TestMetricsCollector) IncEnvironmentChange(from, to types.EnvironmentType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnvironmentChange[from.String()+"->"+to.String()]++
	m.totalEnvChange.Add(1)
}

// ----------------------
// Scrubbing
// ----------------------

// IncScrubPass records a scrub pass.
func (m *TestMetricsCollector) IncScrubPass() {
	m.scrubPasses.Add(1)
}

// IncScrubRepaired records repaired scrub targets.
func (m *TestMetricsCollector) IncScrubRepaired(n int) {
	m.scrubRepaired.Add(int64(n))
}

// ----------------------
// Accessors
// ----------------------

// GetFaultDetected returns the detected count for a pattern.
func (m *TestMetricsCollector) GetFaultDetected(pattern types.FaultPattern) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.FaultDetected[pattern]
}

// GetFaultCorrected returns the corrected count for a pattern.
func (m *TestMetricsCollector) GetFaultCorrected(pattern types.FaultPattern) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.FaultCorrected[pattern]
}

// GetFaultUncorrectable returns the uncorrectable count for a pattern.
func (m *TestMetricsCollector) GetFaultUncorrectable(pattern types.FaultPattern) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.FaultUncorrectable[pattern]
}

// GetErrorRecorded returns the tracked error count for a pattern.
func (m *TestMetricsCollector) GetErrorRecorded(pattern types.FaultPattern) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ErrorRecorded[pattern]
}

// GetErrorRate returns the last reported error rate.
func (m *TestMetricsCollector) GetErrorRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ErrorRate
}

// GetEnvironment returns the last reported environment.
func (m *TestMetricsCollector) GetEnvironment() types.EnvironmentType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Environment
}

// GetEnvironmentChange returns the count for a transition.
func (m *TestMetricsCollector) GetEnvironmentChange(from, to types.EnvironmentType) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.EnvironmentChange[from.String()+"->"+to.String()]
}

// TotalFaultsDetected returns the total detected faults across all patterns.
func (m *TestMetricsCollector) TotalFaultsDetected() int64 {
	return m.totalDetected.Load()
}

// TotalErrorsRecorded returns the total tracked errors across all patterns.
func (m *TestMetricsCollector) TotalErrorsRecorded() int64 {
	return m.totalRecorded.Load()
}

// TotalEnvironmentChanges returns the total number of environment transitions.
func (m *TestMetricsCollector) TotalEnvironmentChanges() int64 {
	return m.totalEnvChange.Load()
}

// ScrubPasses returns the number of scrub passes.
func (m *TestMetricsCollector) ScrubPasses() int64 {
	return m.scrubPasses.Load()
}

// ScrubRepaired returns the total number of repaired scrub targets.
func (m *TestMetricsCollector) ScrubRepaired() int64 {
	return m.scrubRepaired.Load()
}
