// Package layout arranges redundant copies in memory so that a single
// physical strike is unlikely to corrupt the same logical bit in two copies.
//
// [Aligned] places each copy in its own power-of-two aligned block (64 bytes
// by default) and can scrub disagreeing copies on read. [Interleaved] packs
// three copies of an integer bit by bit, so bit i of copy k sits at physical
// position 3i+k.
//
// Example:
//
//	counter, err := layout.NewAligned(uint32(0), layout.WithAlignment(128))
//	if err != nil {
//	    return err
//	}
//	counter.Set(counter.Get() + 1)
//
// Both types assume a single writer.
package layout
