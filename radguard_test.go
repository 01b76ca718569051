package radguard

import (
	"testing"
	"time"

	"github.com/arloliu/radguard/faultinject"
	"github.com/arloliu/radguard/internal/testutil"
	"github.com/arloliu/radguard/layout"
	"github.com/arloliu/radguard/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func newTestRuntime(t *testing.T, opts ...Option) (*Runtime, *testutil.FakeClock, *testutil.TestMetricsCollector) {
	t.Helper()

	clock := testutil.NewFakeClock(t0)
	metrics := testutil.NewTestMetricsCollector()
	rt, err := New(append([]Option{WithClock(clock.Now), WithMetrics(metrics)}, opts...)...)
	require.NoError(t, err)

	return rt, clock, metrics
}

func TestNew_Defaults(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	assert.Equal(t, types.Benign, rt.Environment())
	assert.Equal(t, 5*time.Second, rt.Scrubber.Interval())
	assert.Zero(t, rt.Tracker.TotalErrorCount())
}

func TestNew_InvalidDetectionConfig(t *testing.T) {
	cfg := DefaultConfig().Detection
	cfg.MinTierJump = 0

	_, err := New(WithDetectionConfig(cfg))
	require.ErrorIs(t, err, types.StatusInvalidArgument)
}

func TestNewValue_FaultsReachTracker(t *testing.T) {
	rt, _, metrics := newTestRuntime(t)

	v := NewValue(rt, int64(-12345))
	v.Corrupt(1, 1<<9)

	got, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(-12345), got)

	assert.Equal(t, uint64(1), rt.Tracker.TotalErrorCount())
	assert.Equal(t, uint64(1), rt.Tracker.PatternCount(types.SingleBit))
	assert.Equal(t, int64(1), metrics.GetFaultCorrected(types.SingleBit))
	assert.Equal(t, 1, rt.Controller.State().ErrorsSinceTrigger)
}

func TestNewAligned_FaultsReachTracker(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	a, err := NewAligned(rt, float32(1.5), layout.WithAlignment(32))
	require.NoError(t, err)
	assert.Equal(t, 32, a.Alignment())

	a.Corrupt(0, 1<<3)
	assert.Equal(t, float32(1.5), a.Get())
	assert.Equal(t, uint64(1), rt.Tracker.TotalErrorCount())

	_, err = NewAligned(rt, uint8(1), layout.WithAlignment(3))
	require.ErrorIs(t, err, types.StatusInvalidArgument)
}

func TestRuntime_TickScrubsRegisteredCells(t *testing.T) {
	rt, clock, metrics := newTestRuntime(t)

	v := NewValue(rt, uint16(0xBEEF))
	rt.Register("v", v)

	assert.Zero(t, rt.Tick(), "nothing to repair")

	v.Corrupt(2, 0xFF00)
	clock.Advance(time.Second)
	assert.Zero(t, rt.Tick(), "interval not yet elapsed")

	clock.Advance(4 * time.Second)
	assert.Equal(t, 1, rt.Tick())
	assert.Equal(t, uint16(0xBEEF), v.Copy(2))
	assert.Equal(t, int64(2), metrics.ScrubPasses())
}

func TestRuntime_AdaptsToFaultStorm(t *testing.T) {
	rt, clock, _ := newTestRuntime(t)
	in := faultinject.New(2026)

	cells := make([]interface{ Get() (uint32, error) }, 0, 64)
	for i := range 64 {
		v := NewValue(rt, uint32(i))
		in.Strike(v, types.SingleBit, 32)
		cells = append(cells, v)
	}

	// Spread reads over two seconds so the tracker computes a rate.
	for i, c := range cells {
		if i%32 == 0 {
			clock.Advance(time.Second)
		}
		got, err := c.Get()
		require.NoError(t, err)
		require.Equal(t, uint32(i), got)
	}

	clock.Advance(10 * time.Second)
	rt.Tick()

	assert.Equal(t, types.Extreme, rt.Environment())
	assert.Equal(t, 10*time.Millisecond, rt.Scrubber.Interval())
}

func TestDefault_IsSingleton(t *testing.T) {
	a := Default()
	require.NotNil(t, a)
	assert.Same(t, a, Default())
}
