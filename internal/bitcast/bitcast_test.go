package bitcast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 8, Width[int8]())
	assert.Equal(t, 8, Width[uint8]())
	assert.Equal(t, 16, Width[int16]())
	assert.Equal(t, 32, Width[float32]())
	assert.Equal(t, 32, Width[uint32]())
	assert.Equal(t, 64, Width[float64]())
	assert.Equal(t, 64, Width[int64]())
	assert.Equal(t, 4, Size[int32]())
}

func TestMask(t *testing.T) {
	assert.Equal(t, uint64(0xFF), Mask[int8]())
	assert.Equal(t, uint64(0xFFFF), Mask[uint16]())
	assert.Equal(t, uint64(0xFFFFFFFF), Mask[float32]())
	assert.Equal(t, uint64(math.MaxUint64), Mask[uint64]())
}

func TestToBitsSignedIsTwosComplement(t *testing.T) {
	assert.Equal(t, uint64(0xFF), ToBits[int8](-1))
	assert.Equal(t, uint64(0xFFFE), ToBits[int16](-2))
	assert.Equal(t, uint64(0x80000000), ToBits[int32](math.MinInt32))
	assert.Equal(t, uint64(math.MaxUint64), ToBits[int64](-1))
}

func TestFloatUsesIEEEBits(t *testing.T) {
	f := float32(3.14159)
	require.Equal(t, uint64(math.Float32bits(f)), ToBits(f))
	require.Equal(t, f, FromBits[float32](ToBits(f)))

	d := -2.5e-300
	require.Equal(t, math.Float64bits(d), ToBits(d))
	require.Equal(t, d, FromBits[float64](ToBits(d)))
}

func TestFromBitsIgnoresHighBits(t *testing.T) {
	assert.Equal(t, uint8(0x34), FromBits[uint8](0x1234))
	assert.Equal(t, int16(-1), FromBits[int16](0xABCDFFFF))
}

func TestEqualIsBitwise(t *testing.T) {
	nan := math.Float32frombits(0x7FC00001)
	assert.True(t, Equal(nan, nan))
	assert.False(t, Equal(float32(0), float32(math.Copysign(0, -1))))
	assert.True(t, Equal(int32(42), int32(42)))
}

func TestBytesRoundTrip(t *testing.T) {
	buf := make([]byte, 8)

	b := PutBytes(buf, int32(0x01020304))
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
	require.Equal(t, int32(0x01020304), ReadBytes[int32](buf))

	b = PutBytes(buf, uint8(0xAB))
	require.Equal(t, []byte{0xAB}, b)

	b = PutBytes(buf, 1.5)
	require.Len(t, b, 8)
	require.Equal(t, 1.5, ReadBytes[float64](buf))
}
