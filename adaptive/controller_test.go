package adaptive

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arloliu/radguard/internal/testutil"
	"github.com/arloliu/radguard/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an ErrorSource with directly settable readings.
type fakeSource struct {
	mu       sync.Mutex
	rate     float64
	dist     types.PatternDistribution
	recorded []types.FaultPattern
}

func (f *fakeSource) RecordError(pattern types.FaultPattern, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, pattern)
}

func (f *fakeSource) ErrorRate() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rate
}

func (f *fakeSource) PatternDistribution() types.PatternDistribution {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dist
}

func (f *fakeSource) set(rate float64, dist types.PatternDistribution) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate, f.dist = rate, dist
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeSource, *testutil.FakeClock) {
	t.Helper()

	src := &fakeSource{}
	clock := testutil.NewFakeClock(t0)
	c, err := New(src, append([]Option{WithClock(clock.Now)}, opts...)...)
	require.NoError(t, err)

	return c, src, clock
}

func TestNew_Defaults(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.Equal(t, types.Benign, c.Environment())
	assert.True(t, c.AdaptiveModeEnabled())

	s := c.CurrentSettings()
	assert.Equal(t, 5000*time.Millisecond, s.ScrubbingInterval)
	assert.Equal(t, 0.1, s.ErrorThreshold)
	assert.Equal(t, 3, s.RedundancyLevel)
	assert.Equal(t, 0.01, s.CheckpointFrequency)
	assert.False(t, s.UseWeightedVoting)
}

func TestNew_InvalidArguments(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, types.StatusInvalidArgument)

	bad := DefaultDetectionConfig()
	bad.LogErrorTrigger = 0
	_, err = New(&fakeSource{}, WithDetectionConfig(bad))
	require.ErrorIs(t, err, types.StatusInvalidArgument)
}

func TestController_SetEnvironmentJupiter(t *testing.T) {
	metrics := testutil.NewTestMetricsCollector()
	c, _, _ := newTestController(t, WithMetrics(metrics))

	var got []types.EnvironmentType
	c.RegisterEnvironmentChangeCallback(func(env types.EnvironmentType) {
		got = append(got, env)
	})

	c.SetEnvironment(types.Jupiter)

	s := c.CurrentSettings()
	assert.Equal(t, 50*time.Millisecond, s.ScrubbingInterval)
	assert.Equal(t, 5, s.RedundancyLevel)
	assert.Equal(t, 0.8, s.CheckpointFrequency)
	assert.Equal(t, []types.EnvironmentType{types.Jupiter}, got)

	// Setting the same environment again does not notify.
	c.SetEnvironment(types.Jupiter)
	assert.Len(t, got, 1)

	assert.Equal(t, types.Jupiter, metrics.GetEnvironment())
	assert.Equal(t, int64(1), metrics.GetEnvironmentChange(types.Benign, types.Jupiter))
}

func TestController_UnmappedEnvironmentUsesExtreme(t *testing.T) {
	table := DefaultSettings()
	delete(table, types.LEO)
	c, _, _ := newTestController(t, WithSettings(table))

	c.SetEnvironment(types.LEO)
	assert.Equal(t, DefaultSettings()[types.Extreme], c.CurrentSettings())

	c.SetEnvironment(types.EnvironmentType(99))
	assert.Equal(t, 7, c.CurrentSettings().RedundancyLevel)
}

func TestController_ListenersInOrderAndUnregister(t *testing.T) {
	c, _, _ := newTestController(t)

	var calls []string
	first := c.RegisterEnvironmentChangeCallback(func(types.EnvironmentType) { calls = append(calls, "first") })
	second := c.RegisterEnvironmentChangeCallback(func(types.EnvironmentType) { calls = append(calls, "second") })
	assert.NotEqual(t, first, second)
	assert.Len(t, first.String(), 36)

	c.SetEnvironment(types.GEO)
	assert.Equal(t, []string{"first", "second"}, calls)

	assert.True(t, c.UnregisterEnvironmentChangeCallback(first))
	assert.False(t, c.UnregisterEnvironmentChangeCallback(first))
	assert.False(t, c.UnregisterEnvironmentChangeCallback(ListenerID{}))

	c.SetEnvironment(types.LEO)
	assert.Equal(t, []string{"first", "second", "second"}, calls)
}

func TestController_ListenerMayCallBack(t *testing.T) {
	c, _, _ := newTestController(t)

	var seen ProtectionSettings
	c.RegisterEnvironmentChangeCallback(func(types.EnvironmentType) {
		seen = c.CurrentSettings()
	})

	c.SetEnvironment(types.SolarFlare)
	assert.Equal(t, 100*time.Millisecond, seen.ScrubbingInterval)
}

func TestController_AutoDetect(t *testing.T) {
	c, src, clock := newTestController(t)

	var changes []types.EnvironmentType
	c.RegisterEnvironmentChangeCallback(func(env types.EnvironmentType) { changes = append(changes, env) })

	src.set(11, singleBitOnly())

	// Within the check interval of construction: no pass.
	c.AutoDetect()
	assert.Equal(t, types.Benign, c.Environment())

	clock.Advance(10 * time.Second)
	c.PerformMaintenance()
	assert.Equal(t, types.Extreme, c.Environment())
	assert.Equal(t, []types.EnvironmentType{types.Extreme}, changes)

	// Quiet again: a large drop is applied on the next pass.
	src.set(0, types.PatternDistribution{})
	clock.Advance(10 * time.Second)
	c.PerformMaintenance()
	assert.Equal(t, types.Benign, c.Environment())
	assert.Equal(t, t0.Add(20*time.Second), c.State().LastChange)
}

func TestController_AdaptiveModeDisabled(t *testing.T) {
	c, src, clock := newTestController(t, WithAdaptiveMode(false))
	assert.False(t, c.AdaptiveModeEnabled())

	src.set(50, singleBitOnly())
	clock.Advance(time.Minute)
	c.PerformMaintenance()
	assert.Equal(t, types.Benign, c.Environment())

	// Enabling runs a pass immediately.
	c.SetAdaptiveMode(true)
	assert.Equal(t, types.Extreme, c.Environment())
}

func TestController_SetEnvironmentResetsHysteresis(t *testing.T) {
	c, src, clock := newTestController(t)

	clock.Advance(10 * time.Minute)
	c.SetEnvironment(types.LEO)

	// One tier up, but LEO was only just entered.
	src.set(0.2, singleBitOnly())
	clock.Advance(10 * time.Second)
	c.PerformMaintenance()
	assert.Equal(t, types.LEO, c.Environment())
	assert.Equal(t, t0.Add(10*time.Minute+10*time.Second), c.State().LastCheck)
}

func TestController_LogErrorTriggersDetection(t *testing.T) {
	c, src, clock := newTestController(t)

	src.set(11, singleBitOnly())
	clock.Advance(10 * time.Second)

	for range 9 {
		c.LogError(types.SingleBit, "upset")
	}
	assert.Equal(t, types.Benign, c.Environment())
	assert.Equal(t, 9, c.State().ErrorsSinceTrigger)

	c.LogError(types.SingleBit, "upset")
	assert.Equal(t, types.Extreme, c.Environment())
	assert.Zero(t, c.State().ErrorsSinceTrigger)
	assert.Len(t, src.recorded, 10)
}

func TestController_CustomizeEnvironmentSettings(t *testing.T) {
	c, _, _ := newTestController(t)

	custom := ProtectionSettings{
		ScrubbingInterval:   time.Second,
		ErrorThreshold:      0.2,
		RedundancyLevel:     5,
		CheckpointFrequency: 0.5,
	}
	require.NoError(t, c.CustomizeEnvironmentSettings(types.Benign, custom))
	assert.Equal(t, custom, c.CurrentSettings(), "current tier takes effect immediately")

	require.NoError(t, c.CustomizeEnvironmentSettings(types.GEO, custom))
	assert.Equal(t, custom, c.SettingsFor(types.GEO))

	custom.ScrubbingInterval = 0
	require.ErrorIs(t, c.CustomizeEnvironmentSettings(types.LEO, custom), types.StatusValidationFailure)
	require.ErrorIs(t, c.CustomizeEnvironmentSettings(types.EnvironmentType(-1), custom), types.StatusInvalidArgument)
}

func TestController_WithSettingsIsCopied(t *testing.T) {
	table := DefaultSettings()
	c, _, _ := newTestController(t, WithSettings(table))

	table[types.Benign] = ProtectionSettings{ScrubbingInterval: time.Hour, RedundancyLevel: 1}
	assert.Equal(t, 5*time.Second, c.SettingsFor(types.Benign).ScrubbingInterval)
}

func TestLoadSettings(t *testing.T) {
	f, err := os.Open("testdata/settings.yaml")
	require.NoError(t, err)
	defer f.Close()

	table, err := LoadSettings(f)
	require.NoError(t, err)

	leo := table[types.LEO]
	assert.Equal(t, 2*time.Second, leo.ScrubbingInterval)
	assert.Equal(t, 5, leo.RedundancyLevel)
	assert.Equal(t, 0.05, leo.ErrorThreshold, "unspecified fields keep defaults")

	jupiter := table[types.Jupiter]
	assert.Equal(t, 20*time.Millisecond, jupiter.ScrubbingInterval)
	assert.Equal(t, 1.0, jupiter.CheckpointFrequency)

	assert.Equal(t, DefaultSettings()[types.GEO], table[types.GEO])
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want types.Status
	}{
		{"unknown environment", "environments:\n  mars:\n    redundancy_level: 3\n", types.StatusInvalidArgument},
		{"malformed", "environments: [", types.StatusInvalidArgument},
		{"bad duration", "environments:\n  leo:\n    scrubbing_interval: soon\n", types.StatusInvalidArgument},
		{"invalid value", "environments:\n  geo:\n    checkpoint_frequency: 1.5\n", types.StatusValidationFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadSettings_Empty(t *testing.T) {
	table, err := LoadSettings(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), table)
}
