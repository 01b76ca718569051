// Package redundancy provides integrity-checked redundant storage for scalars.
//
// A [Value] keeps three copies of a value, each guarded by its own CRC-32.
// Reads discard copies whose checksum no longer matches and vote among the
// rest, so a strike that corrupts one copy is corrected transparently:
//
//	temp := redundancy.New(float32(21.5),
//	    redundancy.WithFaultHandler(controller.LogError),
//	)
//
//	v, err := temp.Get()
//	if errors.Is(err, types.StatusRedundancyFailure) {
//	    // v is a best-effort guess; Set a fresh reading to recover.
//	}
//
// # Maintenance
//
// [Value.Verify] checks integrity without voting, [Value.Repair] rewrites
// every copy from the voted value, and [Value.Scrub] does both so a Value can
// be registered with a scrub.Scrubber.
//
// # Fault injection
//
// [Value.Corrupt] flips bits in one copy without updating its checksum,
// simulating an upset for tests and campaigns.
package redundancy
