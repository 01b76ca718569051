// Package types provides shared types and status definitions for the radguard library.
//
// This is a leaf package with zero radguard imports to prevent import cycles.
// All packages in radguard can safely import this package.
//
// # Fault Patterns
//
// FaultPattern names the physical shape of a disagreement between redundant
// copies, ordered roughly by how much of a word a single event touched:
//
//	const (
//	    SingleBit    FaultPattern = iota // SEU
//	    AdjacentBits                     // MCU
//	    ByteError
//	    WordError
//	    BurstError
//	    Unknown
//	)
//
// # Environments
//
// EnvironmentType is a severity-ordered radiation environment. Its ordinal is
// used by the adaptive controller for hysteresis comparisons:
//
//	Benign < LEO < MEO < GEO < SolarFlare < Jupiter < Extreme
//
// # Status
//
// Every fallible radguard operation reports a Status through the error
// return. Success is reported as a nil error:
//
//	v, err := cell.Get()
//	if errors.Is(err, types.StatusRedundancyFailure) {
//	    // v is a best-effort value; decide whether to escalate
//	}
//
// StatusOf converts any error (including nil) back into a Status for callers
// that prefer to branch on Domain and Code.
package types
