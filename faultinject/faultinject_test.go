package faultinject

import (
	"math/bits"
	"testing"

	"github.com/arloliu/radguard/redundancy"
	"github.com/arloliu/radguard/types"
	"github.com/arloliu/radguard/voting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var _ Corruptible = (*redundancy.Value[uint32])(nil)

func TestMaskAt_ClassifiesBack64(t *testing.T) {
	for _, p := range types.AllFaultPatterns {
		for start := range 64 {
			mask := MaskAt(p, 64, start)
			require.Equal(t, p, voting.Classify(mask, 64), "pattern %s start %d mask %#x", p, start, mask)
		}
	}
}

func TestMaskAt_NarrowWidths(t *testing.T) {
	tests := []struct {
		width    int
		patterns []types.FaultPattern
	}{
		{8, []types.FaultPattern{types.SingleBit, types.AdjacentBits, types.ByteError}},
		{16, []types.FaultPattern{types.SingleBit, types.AdjacentBits, types.ByteError, types.WordError}},
		{32, []types.FaultPattern{types.SingleBit, types.AdjacentBits, types.ByteError, types.WordError}},
	}

	for _, tt := range tests {
		for _, p := range tt.patterns {
			for start := range tt.width {
				mask := MaskAt(p, tt.width, start)
				require.Zero(t, mask>>uint(tt.width), "mask exceeds width")
				require.Equal(t, p, voting.Classify(mask, tt.width), "width %d pattern %s start %d", tt.width, p, start)
			}
		}
	}
}

func TestMaskAt_Shapes(t *testing.T) {
	assert.Equal(t, uint64(1<<7), MaskAt(types.SingleBit, 32, 7))
	assert.Equal(t, uint64(0b11<<62), MaskAt(types.AdjacentBits, 64, 63), "run shifted to fit")
	assert.Equal(t, uint64(0xA5<<16), MaskAt(types.ByteError, 32, 20))
	assert.Equal(t, uint64(0x80000001)<<32, MaskAt(types.WordError, 64, 40))
	assert.Equal(t, uint64(1<<3), MaskAt(types.SingleBit, 8, -5), "negative start wraps")
}

func TestInjector_Deterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 100 {
		require.Equal(t, a.Mask(types.BurstError, 64), b.Mask(types.BurstError, 64))
	}
}

func TestInjector_AdjacentLength(t *testing.T) {
	in := New(7)
	seen := map[int]bool{}
	for range 200 {
		mask := in.Mask(types.AdjacentBits, 16)
		n := bits.OnesCount64(mask)
		require.Contains(t, []int{2, 3}, n)
		require.Equal(t, types.AdjacentBits, voting.Classify(mask, 16))
		seen[n] = true
	}
	assert.Len(t, seen, 2)
}

func TestInjector_Pattern(t *testing.T) {
	in := New(1)
	assert.Equal(t, types.SingleBit, in.Pattern(types.PatternDistribution{}))

	var dist types.PatternDistribution
	dist[types.WordError] = 1
	for range 50 {
		require.Equal(t, types.WordError, in.Pattern(dist))
	}
}

func TestInjector_StrikeIsRecovered(t *testing.T) {
	in := New(99)
	for range 500 {
		v := redundancy.New(uint32(0xDEADBEEF))
		i, mask := in.Strike(v, types.SingleBit, 32)
		require.Equal(t, uint32(0xDEADBEEF)^uint32(mask), v.Copy(i))

		got, err := v.Get()
		require.NoError(t, err)
		require.Equal(t, uint32(0xDEADBEEF), got)
	}
}

func TestMaskAt_WithinWidth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.SampledFrom([]int{8, 16, 32, 64}).Draw(t, "width")
		p := rapid.SampledFrom(types.AllFaultPatterns[:]).Draw(t, "pattern")
		start := rapid.IntRange(-1000, 1000).Draw(t, "start")

		mask := MaskAt(p, width, start)
		if mask == 0 {
			t.Fatalf("empty mask")
		}
		if width < 64 && mask>>uint(width) != 0 {
			t.Fatalf("mask %#x exceeds width %d", mask, width)
		}
	})
}
