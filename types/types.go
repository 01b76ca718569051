// Package types provides shared types and errors for the radguard library.
//
// This is a "leaf" package with no imports from other radguard packages,
// allowing it to be imported by any package without causing import cycles.
package types

import "strconv"

// Scalar is the set of fixed-width plain-data types that can be protected.
//
// Only exact built-in types are accepted so that every bit-cast is size-checked
// against a known width of 1, 2, 4 or 8 bytes.
type Scalar interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// Integer is the subset of Scalar usable with bit-interleaved storage.
type Integer interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64
}

// FaultPattern classifies the shape of a disagreement between redundant copies.
type FaultPattern int

const (
	// SingleBit is a single-event upset: exactly one bit differs.
	SingleBit FaultPattern = iota
	// AdjacentBits is a multiple-cell upset: one contiguous run of bits differs.
	AdjacentBits
	// ByteError means all differing bits fall inside one byte lane.
	ByteError
	// WordError means all differing bits fall inside one 32-bit word.
	WordError
	// BurstError is a clustered corruption dominated by one long run.
	BurstError
	// Unknown is used when no pattern matches, or when nothing differs.
	Unknown
)

// NumFaultPatterns is the number of defined fault patterns.
const NumFaultPatterns = int(Unknown) + 1

// AllFaultPatterns lists every fault pattern in ordinal order.
var AllFaultPatterns = [NumFaultPatterns]FaultPattern{
	SingleBit, AdjacentBits, ByteError, WordError, BurstError, Unknown,
}

var faultPatternNames = [NumFaultPatterns]string{
	"single_bit", "adjacent_bits", "byte_error", "word_error", "burst_error", "unknown",
}

// String returns the snake_case name of the pattern, suitable for metric labels.
func (p FaultPattern) String() string {
	if p.Valid() {
		return faultPatternNames[p]
	}
	return "fault_pattern(" + strconv.Itoa(int(p)) + ")"
}

// Valid reports whether p is one of the defined patterns.
func (p FaultPattern) Valid() bool {
	return p >= SingleBit && p <= Unknown
}

// PatternDistribution holds one value per FaultPattern, indexed by ordinal.
type PatternDistribution [NumFaultPatterns]float64

// EnvironmentType is a severity-ordered radiation environment.
type EnvironmentType int

const (
	// Benign is a low-radiation environment (ground, shielded).
	Benign EnvironmentType = iota
	// LEO is low Earth orbit.
	LEO
	// MEO is medium Earth orbit, crossing the outer belt.
	MEO
	// GEO is geosynchronous orbit.
	GEO
	// SolarFlare is a transient solar particle event.
	SolarFlare
	// Jupiter is a Jovian-class trapped radiation environment.
	Jupiter
	// Extreme is the maximum protection tier.
	Extreme
)

// NumEnvironments is the number of defined environments.
const NumEnvironments = int(Extreme) + 1

// AllEnvironments lists every environment in severity order.
var AllEnvironments = [NumEnvironments]EnvironmentType{
	Benign, LEO, MEO, GEO, SolarFlare, Jupiter, Extreme,
}

var environmentNames = [NumEnvironments]string{
	"benign", "leo", "meo", "geo", "solar_flare", "jupiter", "extreme",
}

// String returns the snake_case name of the environment.
func (e EnvironmentType) String() string {
	if e.Valid() {
		return environmentNames[e]
	}
	return "environment(" + strconv.Itoa(int(e)) + ")"
}

// Valid reports whether e is one of the defined environments.
func (e EnvironmentType) Valid() bool {
	return e >= Benign && e <= Extreme
}

// ParseEnvironment resolves a name produced by EnvironmentType.String.
//
// Returns:
//   - EnvironmentType: The parsed environment
//   - bool: false if the name is unknown
func ParseEnvironment(name string) (EnvironmentType, bool) {
	for i, n := range environmentNames {
		if n == name {
			return EnvironmentType(i), true
		}
	}
	return Extreme, false
}

// ErrorStats counts faults observed by a single protected cell.
//
// Counters are monotonic until explicitly reset.
type ErrorStats struct {
	// Detected is the number of reads that found any disagreement.
	Detected uint64

	// Corrected is the number of detected faults that were resolved.
	Corrected uint64

	// Uncorrectable is the number of detected faults with no trusted result.
	Uncorrectable uint64
}

// FaultHandler receives every fault a protected cell detects.
//
// Typical handlers are tracker.ErrorTracker.RecordError and
// adaptive.Controller.LogError. Handlers run synchronously on the caller's
// goroutine and must not block.
type FaultHandler func(pattern FaultPattern, detail string)

// Logger is the structured logging interface used throughout radguard.
//
// The method set is compatible with zap.SugaredLogger's *w methods when wrapped,
// and keysAndValues follow the alternating key/value convention.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Fatal(msg string, keysAndValues ...any)
}
