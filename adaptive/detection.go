package adaptive

import (
	"time"

	"github.com/arloliu/radguard/types"
)

// DetectionConfig holds the constants of environment auto-detection.
type DetectionConfig struct {
	// CheckInterval is the minimum time between detection passes.
	CheckInterval time.Duration

	// ExtremeRate is the error rate (errors/s) above which Extreme is forced
	// immediately, bypassing hysteresis.
	ExtremeRate float64

	// PatternWeights weights each pattern's share of errors in the severity score.
	PatternWeights types.PatternDistribution

	// SeverityThresholds are the exclusive upper bounds of severity for
	// Benign through Jupiter; anything at or above the last is Extreme.
	SeverityThresholds [types.NumEnvironments - 1]float64

	// MinTierJump is the tier distance applied without waiting for StableDuration.
	MinTierJump int

	// StableDuration is how long the current tier must have held before a
	// smaller move is accepted; a move at exactly StableDuration is allowed.
	StableDuration time.Duration

	// LogErrorTrigger is the number of logged errors that triggers a
	// detection pass.
	LogErrorTrigger int
}

// DefaultDetectionConfig returns the built-in detection constants.
//
// Returns:
//   - DetectionConfig: 10s check interval, Extreme above 10 errors/s,
//     weights {1, 2, 3, 4, 5, 2.5}, thresholds {0.01, 0.1, 0.5, 1, 5, 20},
//     minimum jump 2, stable duration 5m, detection every 10 logged errors
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		CheckInterval:      10 * time.Second,
		ExtremeRate:        10,
		PatternWeights:     types.PatternDistribution{1, 2, 3, 4, 5, 2.5},
		SeverityThresholds: [types.NumEnvironments - 1]float64{0.01, 0.1, 0.5, 1, 5, 20},
		MinTierJump:        2,
		StableDuration:     5 * time.Minute,
		LogErrorTrigger:    10,
	}
}

// Validate checks that the configuration is usable.
func (c DetectionConfig) Validate() error {
	switch {
	case c.CheckInterval < 0:
		return types.StatusInvalidArgument.WithMessage("check interval must not be negative")
	case c.MinTierJump < 1:
		return types.StatusInvalidArgument.WithMessage("minimum tier jump must be at least 1")
	case c.LogErrorTrigger < 1:
		return types.StatusInvalidArgument.WithMessage("log error trigger must be at least 1")
	}
	for i := 1; i < len(c.SeverityThresholds); i++ {
		if c.SeverityThresholds[i] <= c.SeverityThresholds[i-1] {
			return types.StatusInvalidArgument.WithMessage("severity thresholds must be strictly increasing")
		}
	}
	return nil
}

// DetectionState is the hysteresis state carried between detection passes.
type DetectionState struct {
	// Environment is the current tier.
	Environment types.EnvironmentType

	// LastCheck is when the last detection pass ran.
	LastCheck time.Time

	// LastChange is when Environment last changed.
	LastChange time.Time

	// ErrorsSinceTrigger counts logged errors since the last triggered pass.
	ErrorsSinceTrigger int
}

// Sample is one observation of the error stream.
type Sample struct {
	Now          time.Time
	ErrorRate    float64
	Distribution types.PatternDistribution
}

// Severity returns the weighted severity score of a sample:
// the pattern-weighted distribution scaled by the error rate.
func (c DetectionConfig) Severity(s Sample) float64 {
	var weighted float64
	for i, share := range s.Distribution {
		weighted += share * c.PatternWeights[i]
	}
	return weighted * s.ErrorRate
}

// Classify maps a severity score to the environment whose threshold band
// contains it.
func (c DetectionConfig) Classify(severity float64) types.EnvironmentType {
	for i, limit := range c.SeverityThresholds {
		if severity < limit {
			return types.EnvironmentType(i)
		}
	}
	return types.Extreme
}

// Next is the pure detection transition.
//
// A pass runs only when CheckInterval has elapsed since prev.LastCheck. An
// error rate above ExtremeRate moves straight to Extreme. Otherwise the tier
// classified from the severity score is adopted only if it is at least
// MinTierJump tiers away, or if the current tier has held for at least
// StableDuration.
//
// Parameters:
//   - prev: State after the previous pass
//   - s: Current observation
//
// Returns:
//   - DetectionState: The next state; equal to prev when no pass was due
func (c DetectionConfig) Next(prev DetectionState, s Sample) DetectionState {
	if s.Now.Sub(prev.LastCheck) < c.CheckInterval {
		return prev
	}

	next := prev
	next.LastCheck = s.Now

	if s.ErrorRate > c.ExtremeRate {
		if prev.Environment != types.Extreme {
			next.Environment = types.Extreme
			next.LastChange = s.Now
		}
		return next
	}

	candidate := c.Classify(c.Severity(s))
	if candidate == prev.Environment {
		return next
	}

	jump := int(candidate) - int(prev.Environment)
	if jump < 0 {
		jump = -jump
	}
	if jump >= c.MinTierJump || s.Now.Sub(prev.LastChange) >= c.StableDuration {
		next.Environment = candidate
		next.LastChange = s.Now
	}

	return next
}

// CountError advances the logged-error counter.
//
// Returns:
//   - DetectionState: The next state, with the counter reset when triggered
//   - bool: true when LogErrorTrigger errors have accumulated and a
//     detection pass should run
func (c DetectionConfig) CountError(prev DetectionState) (DetectionState, bool) {
	next := prev
	next.ErrorsSinceTrigger++
	if next.ErrorsSinceTrigger >= c.LogErrorTrigger {
		next.ErrorsSinceTrigger = 0
		return next, true
	}
	return next, false
}
