// Package radguard protects scalar program state against radiation-induced
// bit flips.
//
// Values are stored as three copies, each guarded by a CRC-32 checksum, and
// read back through a pattern-aware majority vote. An error tracker and an
// adaptive controller watch the stream of detected faults, estimate how
// hostile the environment is, and retune protection (scrub interval,
// voting mode, redundancy level) as a spacecraft moves between tiers such as
// LEO, the outer belt or a solar particle event.
//
// # Key Features
//
//   - Redundant cells: redundancy.Value[T] for every fixed-width integer and float type
//   - Pattern-aware voting: bit-level, word, burst, adaptive and weighted votes in package voting
//   - Memory layouts: cache-line aligned and bit-interleaved copies in package layout
//   - Environment adaptation: adaptive.Controller with hysteresis and YAML tier overrides
//   - Scrubbing: caller-driven scrub.Scrubber whose interval follows the environment
//   - Fault injection: faultinject masks that the classifier recognizes
//
// # Basic Usage
//
//	rt, err := radguard.New(radguard.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	altitude := radguard.NewValue(rt, 408.2)
//	rt.Register("altitude", altitude)
//
//	for range ticker.C {
//	    rt.Tick() // maintenance and due scrub passes
//	    v, err := altitude.Get()
//	    ...
//	}
//
// # Error Handling
//
// Reads return (T, error). The value is always the best available answer;
// the error says how far to trust it:
//
//   - nil: the value was read or corrected from a trusted majority
//   - types.StatusRedundancyFailure: no trusted majority; the value is a best effort
//   - types.StatusRadiationDetection: Verify found corruption that voting can repair
//
// Status values work with errors.Is and can carry a message:
//
//	if _, err := v.Get(); errors.Is(err, types.StatusRedundancyFailure) {
//	    // reload from a checkpoint
//	}
//
// # Concurrency
//
// Protected cells are not safe for concurrent use; guard them like any other
// variable. The tracker, controller and scrubber registration are safe for
// concurrent use.
package radguard
