// Package bitcast reinterprets fixed-width scalars as raw bit patterns.
//
// Conversions are explicit per type and never go through unsafe, so a float32
// becomes its IEEE-754 bits and a negative int8 becomes its two's-complement
// byte. All bit patterns are carried in a uint64 with unused high bits zero.
package bitcast

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/radguard/types"
)

// Width returns the size of T in bits: 8, 16, 32 or 64.
func Width[T types.Scalar]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32, float32:
		return 32
	default:
		return 64
	}
}

// Size returns the size of T in bytes.
func Size[T types.Scalar]() int {
	return Width[T]() / 8
}

// Mask returns a mask covering the low Width[T]() bits.
func Mask[T types.Scalar]() uint64 {
	w := Width[T]()
	if w == 64 {
		return math.MaxUint64
	}
	return 1<<uint(w) - 1
}

// ToBits returns the raw bit pattern of v.
func ToBits[T types.Scalar](v T) uint64 {
	switch x := any(v).(type) {
	case int8:
		return uint64(uint8(x))
	case uint8:
		return uint64(x)
	case int16:
		return uint64(uint16(x))
	case uint16:
		return uint64(x)
	case int32:
		return uint64(uint32(x))
	case uint32:
		return uint64(x)
	case float32:
		return uint64(math.Float32bits(x))
	case int64:
		return uint64(x)
	case uint64:
		return x
	case float64:
		return math.Float64bits(x)
	}
	panic("unreachable")
}

// FromBits rebuilds a T from its raw bit pattern. Bits above Width[T]() are ignored.
func FromBits[T types.Scalar](bits uint64) T {
	var zero T
	var out any
	switch any(zero).(type) {
	case int8:
		out = int8(uint8(bits))
	case uint8:
		out = uint8(bits)
	case int16:
		out = int16(uint16(bits))
	case uint16:
		out = uint16(bits)
	case int32:
		out = int32(uint32(bits))
	case uint32:
		out = uint32(bits)
	case float32:
		out = math.Float32frombits(uint32(bits))
	case int64:
		out = int64(bits)
	case uint64:
		out = bits
	case float64:
		out = math.Float64frombits(bits)
	}
	return out.(T)
}

// Equal reports whether a and b are bit-identical.
//
// This differs from == for floats: NaNs with the same payload are equal and
// +0 and -0 are not.
func Equal[T types.Scalar](a, b T) bool {
	return ToBits(a) == ToBits(b)
}

// PutBytes writes the little-endian raw bytes of v into dst, which must hold
// at least Size[T]() bytes. It returns the written prefix of dst.
func PutBytes[T types.Scalar](dst []byte, v T) []byte {
	bits := ToBits(v)
	switch Width[T]() {
	case 8:
		dst[0] = byte(bits)
		return dst[:1]
	case 16:
		binary.LittleEndian.PutUint16(dst, uint16(bits))
		return dst[:2]
	case 32:
		binary.LittleEndian.PutUint32(dst, uint32(bits))
		return dst[:4]
	default:
		binary.LittleEndian.PutUint64(dst, bits)
		return dst[:8]
	}
}

// ReadBytes decodes a T from the little-endian raw bytes in src.
func ReadBytes[T types.Scalar](src []byte) T {
	var bits uint64
	switch Width[T]() {
	case 8:
		bits = uint64(src[0])
	case 16:
		bits = uint64(binary.LittleEndian.Uint16(src))
	case 32:
		bits = uint64(binary.LittleEndian.Uint32(src))
	default:
		bits = binary.LittleEndian.Uint64(src)
	}
	return FromBits[T](bits)
}
