package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations should be thread-safe as methods may be called concurrently.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/arloliu/radguard/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("spacecraft"))
//	rt, _ := radguard.New(radguard.WithMetrics(collector))
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Protected Cells
	// ----------------------

	// IncFaultDetected increments the counter of faults seen by a cell read.
	IncFaultDetected(pattern FaultPattern)

	// IncFaultCorrected increments the counter of faults resolved by voting.
	IncFaultCorrected(pattern FaultPattern)

	// IncFaultUncorrectable increments the counter of faults with no trusted result.
	IncFaultUncorrectable(pattern FaultPattern)

	// ----------------------
	// Error Tracker
	// ----------------------

	// IncErrorRecorded increments the tracker's per-pattern error counter.
	IncErrorRecorded(pattern FaultPattern)

	// SetErrorRate sets the smoothed error rate gauge (errors per second).
	SetErrorRate(rate float64)

	// ----------------------
	// Adaptive Controller
	// ----------------------

	// SetEnvironment sets the current environment gauge (ordinal value).
	SetEnvironment(env EnvironmentType)

	// IncEnvironmentChange increments the counter of environment transitions.
	IncEnvironmentChange(from, to EnvironmentType)

	// ----------------------
	// Scrubbing
	// ----------------------

	// IncScrubPass increments the counter of completed scrub passes.
	IncScrubPass()

	// IncScrubRepaired increments the counter of targets rewritten by scrubbing.
	IncScrubRepaired(n int)
}
