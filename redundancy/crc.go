package redundancy

import (
	"hash/crc32"

	"github.com/arloliu/radguard/internal/bitcast"
	"github.com/arloliu/radguard/types"
)

// Checksum returns the CRC-32 of v's little-endian raw bytes.
//
// The CRC uses the reflected polynomial 0xEDB88320 with seed 0xFFFFFFFF and a
// complemented result (the IEEE 802.3 variant).
func Checksum[T types.Scalar](v T) uint32 {
	var buf [8]byte
	return crc32.ChecksumIEEE(bitcast.PutBytes(buf[:], v))
}
