// Package tracker aggregates radiation fault statistics over time.
//
// An [ErrorTracker] counts faults in total and per pattern, keeps a bounded
// history of recent faults, and maintains an exponentially smoothed error
// rate (0.7 x instantaneous + 0.3 x previous, recomputed at most once per
// second). It is the one radguard component built for concurrent callers.
//
// Example:
//
//	t := tracker.New(tracker.WithMetrics(collector))
//	cell := redundancy.New(int32(0), redundancy.WithFaultHandler(t.RecordError))
//
//	if t.IsErrorRateExceeded(5) {
//	    // escalate
//	}
//
// Trackers are constructed and owned explicitly; there is no package-level
// instance.
package tracker
