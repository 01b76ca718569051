package adaptive

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"time"

	"github.com/arloliu/radguard/types"
	"gopkg.in/yaml.v3"
)

// ProtectionSettings is the protection profile applied in one environment.
type ProtectionSettings struct {
	// ScrubbingInterval is how often redundant storage should be scrubbed.
	ScrubbingInterval time.Duration `yaml:"scrubbing_interval"`

	// ErrorThreshold is the tolerated error rate before escalation.
	ErrorThreshold float64 `yaml:"error_threshold"`

	// UseWeightedVoting selects reliability-weighted voting where available.
	UseWeightedVoting bool `yaml:"use_weighted_voting"`

	// UseECCMemory requests ECC-backed storage where available.
	UseECCMemory bool `yaml:"use_ecc_memory"`

	// RedundancyLevel is the number of copies (1 = none, 3 = TMR, 5, 7).
	RedundancyLevel int `yaml:"redundancy_level"`

	// CheckpointFrequency is the fraction of state to checkpoint, in [0, 1].
	CheckpointFrequency float64 `yaml:"checkpoint_frequency"`
}

// Validate checks that the settings are usable.
//
// Returns:
//   - error: types.StatusValidationFailure describing the first bad field, or nil
func (s ProtectionSettings) Validate() error {
	switch {
	case s.ScrubbingInterval <= 0:
		return types.StatusValidationFailure.WithMessage("scrubbing_interval must be positive")
	case s.ErrorThreshold < 0:
		return types.StatusValidationFailure.WithMessage("error_threshold must not be negative")
	case s.RedundancyLevel < 1:
		return types.StatusValidationFailure.WithMessage("redundancy_level must be at least 1")
	case s.CheckpointFrequency < 0 || s.CheckpointFrequency > 1:
		return types.StatusValidationFailure.WithMessage("checkpoint_frequency must be within [0, 1]")
	}
	return nil
}

// SettingsTable maps each environment to its protection profile.
type SettingsTable map[types.EnvironmentType]ProtectionSettings

// DefaultSettings returns the built-in seven-tier table.
//
// Returns:
//   - SettingsTable: A fresh copy the caller may modify
func DefaultSettings() SettingsTable {
	return SettingsTable{
		types.Benign:     {5 * time.Second, 0.1, false, false, 3, 0.01},
		types.LEO:        {time.Second, 0.05, true, true, 3, 0.05},
		types.MEO:        {500 * time.Millisecond, 0.02, true, true, 3, 0.1},
		types.GEO:        {250 * time.Millisecond, 0.01, true, true, 3, 0.2},
		types.SolarFlare: {100 * time.Millisecond, 0.005, true, true, 5, 0.5},
		types.Jupiter:    {50 * time.Millisecond, 0.001, true, true, 5, 0.8},
		types.Extreme:    {10 * time.Millisecond, 0.0005, true, true, 7, 1.0},
	}
}

// Lookup returns the settings for env, falling back to the Extreme tier when
// env is not mapped.
func (t SettingsTable) Lookup(env types.EnvironmentType) ProtectionSettings {
	if s, ok := t[env]; ok {
		return s
	}
	if s, ok := t[types.Extreme]; ok {
		return s
	}
	return DefaultSettings()[types.Extreme]
}

// Clone returns a copy of t.
func (t SettingsTable) Clone() SettingsTable {
	return maps.Clone(t)
}

// LoadSettings reads tier overrides from YAML and applies them on top of
// DefaultSettings.
//
// Only the fields present in the document are overridden:
//
//	environments:
//	  leo:
//	    scrubbing_interval: 2s
//	  jupiter:
//	    redundancy_level: 7
//	    checkpoint_frequency: 1.0
//
// Parameters:
//   - r: YAML source; an empty document yields the defaults
//
// Returns:
//   - SettingsTable: Defaults merged with the overrides
//   - error: types.StatusInvalidArgument for malformed YAML or unknown
//     environments, types.StatusValidationFailure for invalid values
func LoadSettings(r io.Reader) (SettingsTable, error) {
	var doc struct {
		Environments map[string]yaml.Node `yaml:"environments"`
	}

	table := DefaultSettings()

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return table, nil
		}
		return nil, fmt.Errorf("%w: %w", types.StatusInvalidArgument.WithMessage("decode settings"), err)
	}

	for name, node := range doc.Environments {
		env, ok := types.ParseEnvironment(name)
		if !ok {
			return nil, types.StatusInvalidArgument.WithMessage("unknown environment " + name)
		}

		s := table[env]
		if err := node.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: %w", types.StatusInvalidArgument.WithMessage("decode "+name), err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("environment %s: %w", name, err)
		}
		table[env] = s
	}

	return table, nil
}
