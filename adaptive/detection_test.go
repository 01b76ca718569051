package adaptive

import (
	"testing"
	"time"

	"github.com/arloliu/radguard/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func singleBitOnly() types.PatternDistribution {
	return types.PatternDistribution{types.SingleBit: 1}
}

func TestDefaultDetectionConfig(t *testing.T) {
	cfg := DefaultDetectionConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.CheckInterval)
	assert.Equal(t, 10.0, cfg.ExtremeRate)
	assert.Equal(t, 2.5, cfg.PatternWeights[types.Unknown])
	assert.Equal(t, 5.0, cfg.PatternWeights[types.BurstError])
	assert.Equal(t, 2, cfg.MinTierJump)
	assert.Equal(t, 5*time.Minute, cfg.StableDuration)
	assert.Equal(t, 10, cfg.LogErrorTrigger)
}

func TestDetectionConfig_Validate(t *testing.T) {
	cfg := DefaultDetectionConfig()
	cfg.SeverityThresholds[3] = cfg.SeverityThresholds[2]
	require.ErrorIs(t, cfg.Validate(), types.StatusInvalidArgument)

	cfg = DefaultDetectionConfig()
	cfg.LogErrorTrigger = 0
	require.ErrorIs(t, cfg.Validate(), types.StatusInvalidArgument)

	cfg = DefaultDetectionConfig()
	cfg.MinTierJump = 0
	require.ErrorIs(t, cfg.Validate(), types.StatusInvalidArgument)
}

func TestDetectionConfig_Severity(t *testing.T) {
	cfg := DefaultDetectionConfig()

	s := Sample{
		ErrorRate:    1,
		Distribution: types.PatternDistribution{types.SingleBit: 0.5, types.BurstError: 0.5},
	}
	assert.InDelta(t, 3.0, cfg.Severity(s), 1e-12)

	s.ErrorRate = 0
	assert.Zero(t, cfg.Severity(s))
}

func TestDetectionConfig_Classify(t *testing.T) {
	cfg := DefaultDetectionConfig()

	tests := []struct {
		severity float64
		want     types.EnvironmentType
	}{
		{0, types.Benign},
		{0.0099, types.Benign},
		{0.01, types.LEO},
		{0.2, types.MEO},
		{0.99, types.GEO},
		{1, types.SolarFlare},
		{19.9, types.Jupiter},
		{20, types.Extreme},
		{1e9, types.Extreme},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.Classify(tt.severity), "severity %v", tt.severity)
	}
}

func TestDetectionConfig_Next(t *testing.T) {
	cfg := DefaultDetectionConfig()
	benign := DetectionState{Environment: types.Benign, LastCheck: t0, LastChange: t0}

	tests := []struct {
		name       string
		prev       DetectionState
		sample     Sample
		wantEnv    types.EnvironmentType
		wantCheck  time.Time
		wantChange time.Time
	}{
		{
			name:       "check interval not elapsed",
			prev:       benign,
			sample:     Sample{Now: t0.Add(5 * time.Second), ErrorRate: 100, Distribution: singleBitOnly()},
			wantEnv:    types.Benign,
			wantCheck:  t0,
			wantChange: t0,
		},
		{
			name:       "rate above extreme forces extreme",
			prev:       benign,
			sample:     Sample{Now: t0.Add(10 * time.Second), ErrorRate: 11},
			wantEnv:    types.Extreme,
			wantCheck:  t0.Add(10 * time.Second),
			wantChange: t0.Add(10 * time.Second),
		},
		{
			name:       "rate at extreme boundary classifies by severity",
			prev:       benign,
			sample:     Sample{Now: t0.Add(10 * time.Second), ErrorRate: 10, Distribution: singleBitOnly()},
			wantEnv:    types.Jupiter,
			wantCheck:  t0.Add(10 * time.Second),
			wantChange: t0.Add(10 * time.Second),
		},
		{
			name:       "one tier move suppressed",
			prev:       benign,
			sample:     Sample{Now: t0.Add(10 * time.Second), ErrorRate: 0.05, Distribution: singleBitOnly()},
			wantEnv:    types.Benign,
			wantCheck:  t0.Add(10 * time.Second),
			wantChange: t0,
		},
		{
			name:       "one tier move after stable duration",
			prev:       DetectionState{Environment: types.Benign, LastCheck: t0, LastChange: t0.Add(-6 * time.Minute)},
			sample:     Sample{Now: t0.Add(10 * time.Second), ErrorRate: 0.05, Distribution: singleBitOnly()},
			wantEnv:    types.LEO,
			wantCheck:  t0.Add(10 * time.Second),
			wantChange: t0.Add(10 * time.Second),
		},
		{
			name:       "one tier move at exactly stable duration",
			prev:       DetectionState{Environment: types.Benign, LastCheck: t0, LastChange: t0.Add(10*time.Second - 5*time.Minute)},
			sample:     Sample{Now: t0.Add(10 * time.Second), ErrorRate: 0.05, Distribution: singleBitOnly()},
			wantEnv:    types.LEO,
			wantCheck:  t0.Add(10 * time.Second),
			wantChange: t0.Add(10 * time.Second),
		},
		{
			name:       "one tier move just before stable duration",
			prev:       DetectionState{Environment: types.Benign, LastCheck: t0, LastChange: t0.Add(10*time.Second - 5*time.Minute + time.Nanosecond)},
			sample:     Sample{Now: t0.Add(10 * time.Second), ErrorRate: 0.05, Distribution: singleBitOnly()},
			wantEnv:    types.Benign,
			wantCheck:  t0.Add(10 * time.Second),
			wantChange: t0.Add(10*time.Second - 5*time.Minute + time.Nanosecond),
		},
		{
			name:       "two tier jump applied immediately",
			prev:       benign,
			sample:     Sample{Now: t0.Add(10 * time.Second), ErrorRate: 0.2, Distribution: singleBitOnly()},
			wantEnv:    types.MEO,
			wantCheck:  t0.Add(10 * time.Second),
			wantChange: t0.Add(10 * time.Second),
		},
		{
			name:       "calming down from extreme",
			prev:       DetectionState{Environment: types.Extreme, LastCheck: t0, LastChange: t0},
			sample:     Sample{Now: t0.Add(10 * time.Second)},
			wantEnv:    types.Benign,
			wantCheck:  t0.Add(10 * time.Second),
			wantChange: t0.Add(10 * time.Second),
		},
		{
			name:       "already extreme keeps change time",
			prev:       DetectionState{Environment: types.Extreme, LastCheck: t0, LastChange: t0},
			sample:     Sample{Now: t0.Add(time.Minute), ErrorRate: 50},
			wantEnv:    types.Extreme,
			wantCheck:  t0.Add(time.Minute),
			wantChange: t0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := cfg.Next(tt.prev, tt.sample)
			assert.Equal(t, tt.wantEnv, next.Environment)
			assert.Equal(t, tt.wantCheck, next.LastCheck)
			assert.Equal(t, tt.wantChange, next.LastChange)
		})
	}
}

func TestDetectionConfig_CountError(t *testing.T) {
	cfg := DefaultDetectionConfig()
	cfg.LogErrorTrigger = 3

	var s DetectionState
	var trigger bool

	s, trigger = cfg.CountError(s)
	assert.False(t, trigger)
	s, trigger = cfg.CountError(s)
	assert.False(t, trigger)
	s, trigger = cfg.CountError(s)
	assert.True(t, trigger)
	assert.Zero(t, s.ErrorsSinceTrigger)
}
