package layout

import (
	"github.com/arloliu/radguard/internal/bitcast"
	"github.com/arloliu/radguard/internal/fault"
	"github.com/arloliu/radguard/types"
	"github.com/arloliu/radguard/voting"
)

// Interleaved stores three copies of an integer bit-interleaved in one wide
// word: bit i of copy k lives at physical position 3i+k.
//
// A physical upset therefore lands on different logical bits or different
// copies rather than wiping out one copy's contiguous bits.
type Interleaved[T types.Integer] struct {
	words    [3]uint64
	width    int
	reporter fault.Reporter
}

// NewInterleaved creates an Interleaved holding v.
//
// Parameters:
//   - v: Initial value
//   - opts: Optional configuration (logger, metrics, fault handler); alignment
//     and scrub-on-read are ignored
//
// Returns:
//   - *Interleaved[T]: The interleaved storage
func NewInterleaved[T types.Integer](v T, opts ...Option) *Interleaved[T] {
	cfg := newConfig(opts)

	m := &Interleaved[T]{
		width:    bitcast.Width[T](),
		reporter: fault.NewReporter(cfg.Logger, cfg.Metrics, cfg.FaultHandler),
	}
	m.Set(v)

	return m
}

// Get de-interleaves the three copies and returns the adaptive vote.
func (m *Interleaved[T]) Get() T {
	c0, c1, c2 := m.Copy(0), m.Copy(1), m.Copy(2)
	if c0 == c1 && c0 == c2 {
		return c0
	}

	pattern := voting.Detect(c0, c1, c2)
	m.reporter.Corrected(pattern, "interleaved copies disagree")

	return voting.AdaptiveVoteWithPattern(c0, c1, c2, pattern)
}

// Set interleaves three copies of v into storage.
func (m *Interleaved[T]) Set(v T) {
	bits := bitcast.ToBits(v)
	m.words = [3]uint64{}
	for i := 0; i < m.width; i++ {
		if bits>>uint(i)&1 == 0 {
			continue
		}
		for k := 0; k < 3; k++ {
			m.setPhysical(3*i + k)
		}
	}
}

// Scrub rewrites storage from the voted value.
//
// Returns:
//   - bool: true if the stored bits changed
func (m *Interleaved[T]) Scrub() bool {
	before := m.words
	m.Set(m.Get())
	return m.words != before
}

// Copy de-interleaves copy k (0-2) without voting.
func (m *Interleaved[T]) Copy(k int) T {
	var bits uint64
	for i := 0; i < m.width; i++ {
		if m.physical(3*i + k) {
			bits |= 1 << uint(i)
		}
	}
	return bitcast.FromBits[T](bits)
}

// PhysicalBits returns the number of physical bit positions in use.
func (m *Interleaved[T]) PhysicalBits() int {
	return 3 * m.width
}

// FlipPhysical inverts the bit at physical position pos. Positions outside
// [0, PhysicalBits()) are ignored.
func (m *Interleaved[T]) FlipPhysical(pos int) {
	if pos < 0 || pos >= m.PhysicalBits() {
		return
	}
	m.words[pos/64] ^= 1 << uint(pos%64)
}

func (m *Interleaved[T]) physical(pos int) bool {
	return m.words[pos/64]>>uint(pos%64)&1 == 1
}

func (m *Interleaved[T]) setPhysical(pos int) {
	m.words[pos/64] |= 1 << uint(pos%64)
}
