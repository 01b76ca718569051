package layout

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/radguard/internal/bitcast"
	"github.com/arloliu/radguard/internal/fault"
	"github.com/arloliu/radguard/types"
	"github.com/arloliu/radguard/voting"
)

// Aligned stores three copies of a value in separate, aligned memory blocks.
//
// Each copy starts on its own Alignment boundary, so a spatially local strike
// confined to one block cannot reach two copies. Reads use adaptive voting
// and, when scrub-on-read is enabled, rewrite any copy that disagrees.
//
// Aligned has no checksums; use redundancy.Value when corruption must be
// detected even if two copies are hit identically.
type Aligned[T types.Scalar] struct {
	buf       []byte
	base      int
	stride    int
	scrubRead bool
	reporter  fault.Reporter
}

// NewAligned creates an Aligned holding v.
//
// Parameters:
//   - v: Initial value
//   - opts: Optional configuration (alignment, scrub-on-read, logger, metrics, fault handler)
//
// Returns:
//   - *Aligned[T]: The aligned storage
//   - error: types.StatusInvalidArgument if the alignment is not a power of
//     two at least as large as T
func NewAligned[T types.Scalar](v T, opts ...Option) (*Aligned[T], error) {
	cfg := newConfig(opts)

	n := cfg.Alignment
	if n < bitcast.Size[T]() || n&(n-1) != 0 {
		return nil, types.StatusInvalidArgument.WithMessage(
			fmt.Sprintf("alignment %d must be a power of two >= %d", n, bitcast.Size[T]()))
	}

	// One spare block lets the first copy start on an aligned address.
	buf := make([]byte, 4*n)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	base := int((uintptr(n) - addr%uintptr(n)) % uintptr(n))

	a := &Aligned[T]{
		buf:       buf,
		base:      base,
		stride:    n,
		scrubRead: cfg.ScrubOnRead,
		reporter:  fault.NewReporter(cfg.Logger, cfg.Metrics, cfg.FaultHandler),
	}
	a.Set(v)

	return a, nil
}

// Get returns the voted value.
//
// When the copies disagree the fault is classified, resolved with adaptive
// voting, reported, and (if scrub-on-read is enabled) all copies are
// rewritten with the result.
func (a *Aligned[T]) Get() T {
	c0, c1, c2 := a.Copy(0), a.Copy(1), a.Copy(2)
	if bitcast.Equal(c0, c1) && bitcast.Equal(c0, c2) {
		return c0
	}

	pattern, confidence := voting.DetectWithConfidence(c0, c1, c2)
	result := voting.AdaptiveVoteWithPattern(c0, c1, c2, pattern)
	a.reporter.Corrected(pattern, "aligned copies disagree")

	if a.scrubRead && confidence < 1.0 {
		a.ScrubTo(result)
	}

	return result
}

// Set writes v to all three copies.
func (a *Aligned[T]) Set(v T) {
	for i := 0; i < 3; i++ {
		bitcast.PutBytes(a.block(i), v)
	}
}

// Scrub votes and rewrites disagreeing copies.
//
// Returns:
//   - bool: true if any copy was rewritten
func (a *Aligned[T]) Scrub() bool {
	c0, c1, c2 := a.Copy(0), a.Copy(1), a.Copy(2)
	if bitcast.Equal(c0, c1) && bitcast.Equal(c0, c2) {
		return false
	}
	return a.ScrubTo(voting.AdaptiveVote(c0, c1, c2))
}

// ScrubTo rewrites every copy that differs from a known-good value.
//
// Returns:
//   - bool: true if any copy was rewritten
func (a *Aligned[T]) ScrubTo(v T) bool {
	changed := false
	for i := 0; i < 3; i++ {
		if !bitcast.Equal(a.Copy(i), v) {
			bitcast.PutBytes(a.block(i), v)
			changed = true
		}
	}
	return changed
}

// EnableScrubbing turns scrub-on-read on or off.
func (a *Aligned[T]) EnableScrubbing(enabled bool) {
	a.scrubRead = enabled
}

// ScrubbingEnabled reports whether Get rewrites disagreeing copies.
func (a *Aligned[T]) ScrubbingEnabled() bool {
	return a.scrubRead
}

// Alignment returns the block size in bytes.
func (a *Aligned[T]) Alignment() int {
	return a.stride
}

// Copy returns raw copy i (0-2) without voting.
func (a *Aligned[T]) Copy(i int) T {
	return bitcast.ReadBytes[T](a.block(i))
}

// Corrupt XORs mask into the raw bits of copy i (0-2). Out-of-range indexes
// are ignored.
func (a *Aligned[T]) Corrupt(i int, mask uint64) {
	if i < 0 || i > 2 {
		return
	}
	bitcast.PutBytes(a.block(i), bitcast.FromBits[T](bitcast.ToBits(a.Copy(i))^mask))
}

// block returns the start of copy i's block.
func (a *Aligned[T]) block(i int) []byte {
	off := a.base + i*a.stride
	return a.buf[off : off+a.stride]
}
