// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "radguard":
//
//	collector := vm.New()
//	rt, _ := radguard.New(radguard.WithMetrics(collector))
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("spacecraft"))
//
// This produces metrics like:
//   - spacecraft_fault_detected_total{pattern="single_bit"}
//   - spacecraft_environment_change_total{from="benign",to="jupiter"}
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// Or use WritePrometheus to write metrics to a custom writer:
//
//	collector.WritePrometheus(w)
//
// # Metrics Provided
//
// Protected cells:
//   - {prefix}_fault_detected_total{pattern} - Counter of faults seen on read
//   - {prefix}_fault_corrected_total{pattern} - Counter of faults resolved by voting
//   - {prefix}_fault_uncorrectable_total{pattern} - Counter of reads with no trusted result
//
// Error tracker:
//   - {prefix}_error_recorded_total{pattern} - Counter of tracked errors
//   - {prefix}_error_rate - Gauge of the smoothed error rate (errors/s)
//
// Adaptive controller:
//   - {prefix}_environment - Gauge of the current environment ordinal (0=benign .. 6=extreme)
//   - {prefix}_environment_change_total{from,to} - Counter of environment transitions
//
// Scrubbing:
//   - {prefix}_scrub_passes_total - Counter of scrub passes
//   - {prefix}_scrub_repaired_total - Counter of targets rewritten by scrubbing
//
// # Performance Notes
//
// All series are pre-created at initialization time using the NewXXX pattern
// (instead of GetOrCreateXXX), so the hot path is a single array index and an
// atomic add.
package vm
