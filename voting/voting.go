package voting

import (
	"math/bits"

	"github.com/arloliu/radguard/internal/bitcast"
	"github.com/arloliu/radguard/types"
)

// segmentBits is the segment size used by BurstErrorVote.
const segmentBits = 8

// Vote is standard triple-modular-redundancy voting: if any two copies are
// bit-identical their value wins, otherwise each bit is decided by majority.
func Vote[T types.Scalar](a, b, c T) T {
	if v, ok := fastPath(a, b, c); ok {
		return v
	}
	return BitLevelVote(a, b, c)
}

// BitLevelVote decides every bit by majority across the three copies.
//
// This recovers any fault set where no bit position is corrupted in more than
// one copy, which covers SingleBit and AdjacentBits upsets confined to one copy.
func BitLevelVote[T types.Scalar](a, b, c T) T {
	if v, ok := fastPath(a, b, c); ok {
		return v
	}
	return bitcast.FromBits[T](majority(bitcast.ToBits(a), bitcast.ToBits(b), bitcast.ToBits(c)))
}

// WordErrorVote reconstructs a value from the two copies closest in Hamming
// distance.
//
// Bits on which the closest pair agrees are kept. For each bit on which they
// disagree, the pair member that matches the remaining copy wins, with the
// first member of the pair as the default.
func WordErrorVote[T types.Scalar](a, b, c T) T {
	if v, ok := fastPath(a, b, c); ok {
		return v
	}

	x, y, z := bitcast.ToBits(a), bitcast.ToBits(b), bitcast.ToBits(c)
	dxy := bits.OnesCount64(x ^ y)
	dxz := bits.OnesCount64(x ^ z)
	dyz := bits.OnesCount64(y ^ z)

	var r uint64
	switch {
	case dxy <= dxz && dxy <= dyz:
		r = fromClosestPair(x, y, z)
	case dxz <= dxy && dxz <= dyz:
		r = fromClosestPair(x, z, y)
	default:
		r = fromClosestPair(y, z, x)
	}

	return bitcast.FromBits[T](r)
}

// fromClosestPair merges the pair p, q using outlier o to settle disputed bits.
func fromClosestPair(p, q, o uint64) uint64 {
	disputed := p ^ q
	// On a disputed bit exactly one of p, q matches o, so o's bit is the
	// matching member's bit.
	return p&^disputed | o&disputed
}

// BurstErrorVote votes independently on each 8-bit segment.
//
// Within a segment, any two matching copies win; otherwise the segment is
// decided bit by bit. Clustered corruption that spans copies in different
// segments is therefore still recovered.
func BurstErrorVote[T types.Scalar](a, b, c T) T {
	if v, ok := fastPath(a, b, c); ok {
		return v
	}

	x, y, z := bitcast.ToBits(a), bitcast.ToBits(b), bitcast.ToBits(c)
	width := bitcast.Width[T]()

	var r uint64
	for shift := 0; shift < width; shift += segmentBits {
		sx := x >> uint(shift) & 0xFF
		sy := y >> uint(shift) & 0xFF
		sz := z >> uint(shift) & 0xFF

		var seg uint64
		switch {
		case sx == sy, sx == sz:
			seg = sx
		case sy == sz:
			seg = sy
		default:
			seg = majority(sx, sy, sz)
		}
		r |= seg << uint(shift)
	}

	return bitcast.FromBits[T](r)
}

// AdaptiveVote classifies the fault with Detect and dispatches to the voting
// algorithm best suited to it.
func AdaptiveVote[T types.Scalar](a, b, c T) T {
	if v, ok := fastPath(a, b, c); ok {
		return v
	}
	return AdaptiveVoteWithPattern(a, b, c, Detect(a, b, c))
}

// AdaptiveVoteWithPattern dispatches on a caller-supplied fault pattern.
//
// SingleBit and AdjacentBits use BitLevelVote, WordError uses WordErrorVote,
// BurstError and ByteError use BurstErrorVote. For Unknown all three run and
// the first result (bit-level, then word, then burst) that equals one of the
// inputs is returned, falling back to the bit-level result.
//
// Parameters:
//   - a, b, c: The three copies
//   - pattern: Detected or expected fault pattern
//
// Returns:
//   - T: The voted value
func AdaptiveVoteWithPattern[T types.Scalar](a, b, c T, pattern types.FaultPattern) T {
	if v, ok := fastPath(a, b, c); ok {
		return v
	}

	switch pattern {
	case types.SingleBit, types.AdjacentBits:
		return BitLevelVote(a, b, c)
	case types.WordError:
		return WordErrorVote(a, b, c)
	case types.BurstError, types.ByteError:
		return BurstErrorVote(a, b, c)
	}

	bitResult := BitLevelVote(a, b, c)
	for _, r := range [...]T{bitResult, WordErrorVote(a, b, c), BurstErrorVote(a, b, c)} {
		if bitcast.Equal(r, a) || bitcast.Equal(r, b) || bitcast.Equal(r, c) {
			return r
		}
	}

	return bitResult
}

// WeightedVote decides every bit by reliability-weighted majority.
//
// A result bit is set when the summed weight of the copies that have it set
// exceeds half of the total weight. Weights are clamped to [0, 1]; if they
// sum to zero the vote degrades to BitLevelVote.
//
// Parameters:
//   - a, b, c: The three copies
//   - weights: Reliability of each copy, in order
//
// Returns:
//   - T: The voted value
func WeightedVote[T types.Scalar](a, b, c T, weights [3]float64) T {
	if v, ok := fastPath(a, b, c); ok {
		return v
	}

	var total float64
	for i, w := range weights {
		weights[i] = clamp01(w)
		total += weights[i]
	}
	if total == 0 {
		return BitLevelVote(a, b, c)
	}

	copies := [3]uint64{bitcast.ToBits(a), bitcast.ToBits(b), bitcast.ToBits(c)}
	half := total / 2

	var r uint64
	for i := 0; i < bitcast.Width[T](); i++ {
		var set float64
		for k, v := range copies {
			if v>>uint(i)&1 == 1 {
				set += weights[k]
			}
		}
		if set > half {
			r |= 1 << uint(i)
		}
	}

	return bitcast.FromBits[T](r)
}

// fastPath returns the common value when any two copies are bit-identical.
func fastPath[T types.Scalar](a, b, c T) (T, bool) {
	switch {
	case bitcast.Equal(a, b), bitcast.Equal(a, c):
		return a, true
	case bitcast.Equal(b, c):
		return b, true
	}
	var zero T
	return zero, false
}

func majority(x, y, z uint64) uint64 {
	return x&y | x&z | y&z
}

func clamp01(w float64) float64 {
	switch {
	case w > 1:
		return 1
	case w >= 0:
		return w
	default:
		// Negative and NaN weights carry no vote.
		return 0
	}
}
