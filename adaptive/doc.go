// Package adaptive tunes protection to the radiation environment.
//
// A [Controller] holds one [ProtectionSettings] profile per
// types.EnvironmentType and tracks the current environment. It can be set
// explicitly, or inferred from the observed error stream:
//
//	t := tracker.New()
//	ctrl, err := adaptive.New(t)
//	if err != nil {
//	    return err
//	}
//
//	ctrl.RegisterEnvironmentChangeCallback(func(env types.EnvironmentType) {
//	    log.Printf("now in %s, scrub every %s", env, ctrl.CurrentSettings().ScrubbingInterval)
//	})
//
//	// From the host's periodic loop:
//	ctrl.PerformMaintenance()
//
// # Detection
//
// Each pass computes a severity score, the pattern-weighted error
// distribution scaled by the error rate, and maps it through fixed
// thresholds to a tier. Hysteresis suppresses one-tier flapping: a new tier
// is adopted only if it is at least two tiers away or the current tier has
// held for five minutes. Error rates above 10/s force Extreme immediately.
// The transition itself is the pure function [DetectionConfig.Next], so it
// can be tested without a controller.
//
// # Settings
//
// [DefaultSettings] returns the built-in table from Benign (scrub every 5s,
// TMR) to Extreme (scrub every 10ms, 7 copies). [LoadSettings] merges YAML
// overrides on top of it.
package adaptive
