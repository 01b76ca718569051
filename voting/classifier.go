package voting

import (
	"math/bits"

	"github.com/arloliu/radguard/internal/bitcast"
	"github.com/arloliu/radguard/types"
)

// Confidence levels reported by DetectWithConfidence.
const (
	// ConfidenceAgreed is reported when all three copies are identical.
	ConfidenceAgreed = 1.0

	// ConfidenceMajority is reported when exactly two copies agree.
	ConfidenceMajority = 0.9

	// ConfidenceMajoritySingleBit is reported when two copies agree and the
	// outlier differs by exactly one bit.
	ConfidenceMajoritySingleBit = 0.99

	// confidenceNoMajorityBase and confidenceNoMajoritySpan shape the
	// no-majority confidence: base + span*(1 - bits/width).
	confidenceNoMajorityBase = 0.5
	confidenceNoMajoritySpan = 0.4

	// burstMinRun and burstMinShare define a burst: the longest run of
	// differing bits is at least burstMinRun long and holds at least
	// burstMinShare of all differing bits.
	burstMinRun   = 3
	burstMinShare = 0.6
)

// Detect classifies the disagreement between three redundant copies.
//
// Returns Unknown when all three copies are bit-identical.
//
// Parameters:
//   - a, b, c: The three copies
//
// Returns:
//   - types.FaultPattern: The detected fault pattern
func Detect[T types.Scalar](a, b, c T) types.FaultPattern {
	p, _ := DetectWithConfidence(a, b, c)
	return p
}

// DetectWithConfidence classifies the disagreement between three copies and
// reports how much the classification can be trusted.
//
// When two copies agree, the outlier's difference from them is classified
// with confidence 0.9 (0.99 for a single bit). When no copies agree, the pair
// with the fewest differing bits is presumed correct and confidence falls
// with the number of differing bits, between 0.5 and 0.9.
//
// Parameters:
//   - a, b, c: The three copies
//
// Returns:
//   - types.FaultPattern: The detected fault pattern
//   - float64: Confidence in [0, 1]; 1.0 when nothing differs
func DetectWithConfidence[T types.Scalar](a, b, c T) (types.FaultPattern, float64) {
	width := bitcast.Width[T]()
	x, y, z := bitcast.ToBits(a), bitcast.ToBits(b), bitcast.ToBits(c)
	ab, ac, bc := x^y, x^z, y^z

	switch {
	case ab == 0 && ac == 0:
		return types.Unknown, ConfidenceAgreed
	case ab == 0 || ac == 0 || bc == 0:
		// Exactly one pair agrees; the other two differences are equal and
		// describe the outlier's error.
		errMask := ab | ac | bc
		p := Classify(errMask, width)
		if p == types.SingleBit {
			return p, ConfidenceMajoritySingleBit
		}
		return p, ConfidenceMajority
	}

	errMask := ab
	if bits.OnesCount64(ac) < bits.OnesCount64(errMask) {
		errMask = ac
	}
	if bits.OnesCount64(bc) < bits.OnesCount64(errMask) {
		errMask = bc
	}

	n := bits.OnesCount64(errMask)
	conf := confidenceNoMajorityBase + confidenceNoMajoritySpan*(1-float64(n)/float64(width))

	return Classify(errMask, width), conf
}

// Classify names the shape of an error mask for a value of the given width.
//
// Precedence, first match wins: one bit is SingleBit; one contiguous run is
// AdjacentBits; bits inside one byte lane are ByteError; bits inside one
// 32-bit word are WordError (always true for widths up to 32); a longest run
// of at least 3 bits holding at least 60% of the differing bits is
// BurstError; anything else, including an empty mask, is Unknown.
//
// Parameters:
//   - mask: Differing bits
//   - width: Value width in bits (8, 16, 32 or 64)
//
// Returns:
//   - types.FaultPattern: The classified pattern
func Classify(mask uint64, width int) types.FaultPattern {
	n := bits.OnesCount64(mask)
	switch {
	case n == 0:
		return types.Unknown
	case n == 1:
		return types.SingleBit
	case isContiguous(mask):
		return types.AdjacentBits
	case inOneByte(mask, width):
		return types.ByteError
	case inOneWord(mask, width):
		return types.WordError
	}

	run := longestRun(mask)
	if run >= burstMinRun && float64(run) >= burstMinShare*float64(n) {
		return types.BurstError
	}

	return types.Unknown
}

// isContiguous reports whether the set bits of a non-zero mask form one run.
func isContiguous(mask uint64) bool {
	m := mask >> uint(bits.TrailingZeros64(mask))
	return m&(m+1) == 0
}

func inOneByte(mask uint64, width int) bool {
	for shift := 0; shift < width; shift += 8 {
		if mask&^(0xFF<<uint(shift)) == 0 {
			return true
		}
	}
	return false
}

func inOneWord(mask uint64, width int) bool {
	if width <= 32 {
		return true
	}
	const lower = 0xFFFFFFFF
	return mask&^lower == 0 || mask&lower == 0
}

func longestRun(mask uint64) int {
	longest := 0
	for mask != 0 {
		mask >>= uint(bits.TrailingZeros64(mask))
		run := bits.TrailingZeros64(^mask)
		if run > longest {
			longest = run
		}
		if run == 64 {
			break
		}
		mask >>= uint(run)
	}
	return longest
}
