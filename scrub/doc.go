// Package scrub rewrites redundant storage on a schedule so that isolated
// upsets are corrected before a second strike makes them uncorrectable.
//
// Example:
//
//	s := scrub.New()
//	s.Follow(controller) // interval tracks the current environment
//	s.Register("attitude", attitudeValue)
//
//	for now := range ticker.C {
//	    s.Tick(now)
//	}
package scrub
