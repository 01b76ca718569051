// Package voting classifies disagreements between three redundant copies of a
// scalar and reconstructs the most likely correct value.
//
// # Classification
//
// [Detect] and [DetectWithConfidence] bit-cast the three copies to unsigned
// integers and name the shape of the difference:
//
//   - SingleBit: one bit flipped
//   - AdjacentBits: one contiguous run of bits
//   - ByteError: all differing bits inside one byte lane
//   - WordError: all differing bits inside one 32-bit word
//   - BurstError: a long run dominating the difference (64-bit values only)
//   - Unknown: nothing differs, or no shape matched
//
// [Classify] applies the same rules to an arbitrary error mask.
//
// # Voting
//
// Every voter first checks whether two copies are bit-identical and, if so,
// returns that value. Beyond that:
//
//   - [Vote] and [BitLevelVote]: per-bit majority
//   - [WordErrorVote]: trusts the pair with the smallest Hamming distance
//   - [BurstErrorVote]: votes per 8-bit segment
//   - [AdaptiveVote]: classifies the fault and picks one of the above
//   - [WeightedVote]: per-bit majority weighted by copy reliability
//
// Example:
//
//	v := voting.AdaptiveVote(a, b, c)
//	pattern, confidence := voting.DetectWithConfidence(a, b, c)
//
// All functions are pure and safe for concurrent use. Floats are voted on
// their IEEE-754 bit patterns, so NaN payloads and signed zeros are preserved.
package voting
