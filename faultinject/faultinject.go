// Package faultinject generates radiation fault masks for tests and
// fault-injection campaigns.
//
// Masks are shaped so that the voting classifier recognizes them: for 64-bit
// values, voting.Classify(MaskAt(p, 64, start), 64) == p for every pattern
// and start. Narrower values cannot express every shape (a mask inside an
// 8-bit value is always confined to one byte), so classification degrades to
// the nearest expressible pattern.
package faultinject

import (
	"math/rand/v2"

	"github.com/arloliu/radguard/types"
)

const (
	byteLaneMask = 0xA5       // non-contiguous bits in one byte
	wordMask     = 0x80000001 // bits in different bytes of one word
	burstRun     = 4
)

// MaskAt returns the fault mask for pattern anchored at bit start.
//
// Parameters:
//   - pattern: Shape of the fault
//   - width: Value width in bits (8, 16, 32 or 64)
//   - start: Anchor bit; reduced modulo width
//
// Returns:
//   - uint64: Bits to flip, all below width
func MaskAt(pattern types.FaultPattern, width, start int) uint64 {
	start = ((start % width) + width) % width

	switch pattern {
	case types.SingleBit:
		return 1 << uint(start)

	case types.AdjacentBits:
		return run(width, start, 2)

	case types.ByteError:
		lane := start / 8
		return byteLaneMask << uint(lane*8)

	case types.WordError:
		if width <= 8 {
			return byteLaneMask
		}
		if width <= 32 {
			return 1 | 1<<uint(width-1)
		}
		half := start / 32
		return wordMask << uint(half*32)

	case types.BurstError:
		r := min(start, width-burstRun)
		extra := (r + width/2 + 2) % width
		return run(width, r, burstRun) | 1<<uint(extra)

	default:
		step := width / 3
		return 1<<uint(start) | 1<<uint((start+step)%width) | 1<<uint((start+2*step)%width)
	}
}

// run returns n contiguous bits starting at start, shifted down to fit width.
func run(width, start, n int) uint64 {
	start = min(start, width-n)
	return (1<<uint(n) - 1) << uint(start)
}

// Corruptible is storage that accepts injected bit flips in one copy.
//
// redundancy.Value and layout.Aligned implement it.
type Corruptible interface {
	Corrupt(i int, mask uint64)
}

// Injector draws random fault masks from a seeded generator, so campaigns
// are reproducible.
//
// An Injector is not safe for concurrent use.
type Injector struct {
	rng *rand.Rand
}

// New creates an Injector seeded with seed.
func New(seed uint64) *Injector {
	return &Injector{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// Mask returns a mask of the given pattern at a random position.
//
// AdjacentBits masks are two or three bits long.
func (in *Injector) Mask(pattern types.FaultPattern, width int) uint64 {
	start := in.rng.IntN(width)
	if pattern == types.AdjacentBits {
		return run(width, start, 2+in.rng.IntN(2))
	}
	return MaskAt(pattern, width, start)
}

// Pattern returns a pattern drawn according to dist, a per-pattern weight
// table. A zero table yields SingleBit.
func (in *Injector) Pattern(dist types.PatternDistribution) types.FaultPattern {
	var total float64
	for _, w := range dist {
		total += max(w, 0)
	}
	if total == 0 {
		return types.SingleBit
	}

	x := in.rng.Float64() * total
	for i, w := range dist {
		x -= max(w, 0)
		if x < 0 {
			return types.FaultPattern(i)
		}
	}

	return types.Unknown
}

// Strike corrupts one randomly chosen copy of target with a pattern mask.
//
// Parameters:
//   - target: Storage to corrupt
//   - pattern: Shape of the fault
//   - width: Bit width of the stored value
//
// Returns:
//   - int: Index of the corrupted copy
//   - uint64: The applied mask
func (in *Injector) Strike(target Corruptible, pattern types.FaultPattern, width int) (int, uint64) {
	i := in.rng.IntN(3)
	mask := in.Mask(pattern, width)
	target.Corrupt(i, mask)

	return i, mask
}

// Intn returns a uniformly random integer in [0, n), for picking strike
// targets from the same reproducible stream.
func (in *Injector) Intn(n int) int {
	return in.rng.IntN(n)
}
