package redundancy

import (
	"github.com/arloliu/radguard/internal/bitcast"
	"github.com/arloliu/radguard/internal/fault"
	"github.com/arloliu/radguard/types"
	"github.com/arloliu/radguard/voting"
)

// Value is a scalar stored as three copies, each with its own CRC-32.
//
// A Value is fully trusted only when all three checksums match and all three
// copies are equal. Reads recompute trust from the stored copies every time;
// there is no hidden state machine.
//
// A Value assumes a single writer. Concurrent Get calls race on the
// statistics counters and must be serialized by the caller.
type Value[T types.Scalar] struct {
	values    [3]T
	checksums [3]uint32
	stats     types.ErrorStats
	reporter  fault.Reporter
}

// New creates a Value holding v in all three copies.
//
// Parameters:
//   - v: Initial value
//   - opts: Optional configuration (logger, metrics, fault handler)
//
// Returns:
//   - *Value[T]: A fully trusted cell
func New[T types.Scalar](v T, opts ...Option) *Value[T] {
	cfg := NewConfig(opts...)

	c := &Value[T]{
		reporter: fault.NewReporter(cfg.Logger, cfg.Metrics, cfg.FaultHandler),
	}
	c.Set(v)

	return c
}

// Get returns the best available value.
//
// Resolution depends on how many copies still match their checksum:
//   - 3: majority vote of the copies (bit-level when none agree)
//   - 2 equal, or 1: that copy, counted as a corrected fault
//   - 2 unequal: the first valid copy with StatusRedundancyFailure
//   - 0: majority vote of the copies with StatusRedundancyFailure
//
// The returned value is meaningful even when err is non-nil.
//
// Returns:
//   - T: The resolved value
//   - error: nil, or types.StatusRedundancyFailure
func (c *Value[T]) Get() (T, error) {
	var valid [3]bool
	n := 0
	for i := range c.values {
		valid[i] = Checksum(c.values[i]) == c.checksums[i]
		if valid[i] {
			n++
		}
	}

	switch n {
	case 3:
		v := voting.Vote(c.values[0], c.values[1], c.values[2])
		if !c.allEqual() {
			c.corrected("checksums valid but copies disagree")
		}
		return v, nil

	case 1:
		for i, ok := range valid {
			if ok {
				c.corrected("single copy passed checksum")
				return c.values[i], nil
			}
		}

	case 2:
		i, j := validPair(valid)
		if bitcast.Equal(c.values[i], c.values[j]) {
			c.corrected("two copies passed checksum and agree")
			return c.values[i], nil
		}
		c.uncorrectable("two copies passed checksum but disagree")
		return c.values[i], types.StatusRedundancyFailure.WithMessage("valid copies disagree")
	}

	c.uncorrectable("no copy passed checksum")
	return voting.Vote(c.values[0], c.values[1], c.values[2]), types.StatusRedundancyFailure.WithMessage("no copy passed checksum")
}

// Set writes v to all three copies and recomputes every checksum.
//
// Set always succeeds and fully recovers a cell left uncorrectable by
// earlier faults.
func (c *Value[T]) Set(v T) {
	sum := Checksum(v)
	for i := range c.values {
		c.values[i] = v
		c.checksums[i] = sum
	}
}

// Repair rewrites all copies with the result of Get and returns Get's error.
//
// After Repair the cell verifies clean, even when the rewritten value is only
// a best-effort guess.
func (c *Value[T]) Repair() error {
	v, err := c.Get()
	c.Set(v)
	return err
}

// Verify checks integrity without voting or touching the statistics.
//
// Returns:
//   - error: nil when all checksums match and all copies are equal;
//     types.StatusRadiationDetection when something is corrupt but at least
//     two copies still match; types.StatusRedundancyFailure otherwise
func (c *Value[T]) Verify() error {
	allValid := true
	for i := range c.values {
		if Checksum(c.values[i]) != c.checksums[i] {
			allValid = false
			break
		}
	}

	if allValid && c.allEqual() {
		return nil
	}

	v := c.values
	if bitcast.Equal(v[0], v[1]) || bitcast.Equal(v[0], v[2]) || bitcast.Equal(v[1], v[2]) {
		return types.StatusRadiationDetection
	}

	return types.StatusRedundancyFailure
}

// Stats returns a snapshot of the fault counters.
func (c *Value[T]) Stats() types.ErrorStats {
	return c.stats
}

// ResetStats zeroes the fault counters.
func (c *Value[T]) ResetStats() {
	c.stats = types.ErrorStats{}
}

// Copy returns the raw stored copy at index i (0-2) without checking it.
func (c *Value[T]) Copy(i int) T {
	return c.values[i]
}

// Corrupt XORs mask into the raw bits of copy i (0-2), leaving its checksum
// untouched. It simulates a radiation strike for testing and fault-injection
// campaigns; out-of-range indexes are ignored.
func (c *Value[T]) Corrupt(i int, mask uint64) {
	if i < 0 || i >= len(c.values) {
		return
	}
	c.values[i] = bitcast.FromBits[T](bitcast.ToBits(c.values[i]) ^ mask)
}

// Scrub rewrites the cell from a trusted result and reports whether anything
// was rewritten. It lets a Value be registered with scrub.Scrubber.
//
// A cell with no trusted result is left as is, so Get and Verify keep
// reporting types.StatusRedundancyFailure until the owner calls Set or
// Repair.
func (c *Value[T]) Scrub() bool {
	if c.Verify() == nil {
		return false
	}

	v, err := c.Get()
	if err != nil {
		return false
	}
	c.Set(v)

	return true
}

func (c *Value[T]) allEqual() bool {
	return bitcast.Equal(c.values[0], c.values[1]) && bitcast.Equal(c.values[0], c.values[2])
}

func (c *Value[T]) corrected(detail string) {
	c.stats.Detected++
	c.stats.Corrected++
	c.reporter.Corrected(c.pattern(), detail)
}

func (c *Value[T]) uncorrectable(detail string) {
	c.stats.Detected++
	c.stats.Uncorrectable++
	c.reporter.Uncorrectable(c.pattern(), detail)
}

func (c *Value[T]) pattern() types.FaultPattern {
	return voting.Detect(c.values[0], c.values[1], c.values[2])
}

// validPair returns the indexes of the two valid copies, lowest first.
func validPair(valid [3]bool) (int, int) {
	switch {
	case !valid[0]:
		return 1, 2
	case !valid[1]:
		return 0, 2
	default:
		return 0, 1
	}
}
