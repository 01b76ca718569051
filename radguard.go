package radguard

import (
	"sync"

	"github.com/arloliu/radguard/adaptive"
	"github.com/arloliu/radguard/layout"
	"github.com/arloliu/radguard/redundancy"
	"github.com/arloliu/radguard/scrub"
	"github.com/arloliu/radguard/tracker"
	"github.com/arloliu/radguard/types"
)

// Runtime wires an error tracker, an adaptive controller and a scrubber that
// share one clock, logger and metrics collector.
//
// Faults reported by cells built through the runtime flow into the
// controller, which records them in the tracker and re-evaluates the
// environment; environment changes retune the scrub interval.
type Runtime struct {
	cfg *Config

	Tracker    *tracker.ErrorTracker
	Controller *adaptive.Controller
	Scrubber   *scrub.Scrubber
}

// New creates a Runtime.
//
// Parameters:
//   - opts: Configuration options
//
// Returns:
//   - *Runtime: The wired runtime
//   - error: types.StatusInvalidArgument if the detection config is invalid
func New(opts ...Option) (*Runtime, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	tr := tracker.New(
		tracker.WithClock(cfg.Clock),
		tracker.WithHistoryCapacity(cfg.HistoryCapacity),
		tracker.WithLogger(cfg.Logger),
		tracker.WithMetrics(cfg.Metrics),
	)

	ctrl, err := adaptive.New(tr,
		adaptive.WithClock(cfg.Clock),
		adaptive.WithDetectionConfig(cfg.Detection),
		adaptive.WithSettings(cfg.Settings),
		adaptive.WithInitialEnvironment(cfg.InitialEnvironment),
		adaptive.WithAdaptiveMode(cfg.AdaptiveMode),
		adaptive.WithLogger(cfg.Logger),
		adaptive.WithMetrics(cfg.Metrics),
	)
	if err != nil {
		return nil, err
	}

	s := scrub.New(
		scrub.WithLogger(cfg.Logger),
		scrub.WithMetrics(cfg.Metrics),
	)
	s.Follow(ctrl)

	return &Runtime{
		cfg:        cfg,
		Tracker:    tr,
		Controller: ctrl,
		Scrubber:   s,
	}, nil
}

// Tick runs controller maintenance and, if due, a scrub pass.
//
// Hosts call it from their main loop; the runtime starts no goroutines.
//
// Returns:
//   - int: Targets rewritten by the scrub pass (0 if none ran)
func (rt *Runtime) Tick() int {
	rt.Controller.PerformMaintenance()
	n, _ := rt.Scrubber.Tick(rt.cfg.Clock())

	return n
}

// Register adds target to the runtime's scrub schedule.
func (rt *Runtime) Register(name string, target scrub.Target) scrub.Handle {
	return rt.Scrubber.Register(name, target)
}

// Environment returns the controller's current environment.
func (rt *Runtime) Environment() types.EnvironmentType {
	return rt.Controller.Environment()
}

// NewValue creates a redundant cell whose faults are reported to the
// runtime's controller.
//
// Parameters:
//   - rt: Runtime to report to
//   - v: Initial value
//   - opts: Additional cell options; a WithFaultHandler here replaces the runtime's
//
// Returns:
//   - *redundancy.Value[T]: The cell
func NewValue[T types.Scalar](rt *Runtime, v T, opts ...redundancy.Option) *redundancy.Value[T] {
	base := []redundancy.Option{
		redundancy.WithLogger(rt.cfg.Logger),
		redundancy.WithMetrics(rt.cfg.Metrics),
		redundancy.WithFaultHandler(rt.Controller.LogError),
	}

	return redundancy.New(v, append(base, opts...)...)
}

// NewAligned creates a cache-line aligned cell whose faults are reported to
// the runtime's controller.
//
// Returns:
//   - *layout.Aligned[T]: The cell
//   - error: types.StatusInvalidArgument for an invalid alignment
func NewAligned[T types.Scalar](rt *Runtime, v T, opts ...layout.Option) (*layout.Aligned[T], error) {
	base := []layout.Option{
		layout.WithLogger(rt.cfg.Logger),
		layout.WithMetrics(rt.cfg.Metrics),
		layout.WithFaultHandler(rt.Controller.LogError),
	}

	return layout.NewAligned(v, append(base, opts...)...)
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns a lazily created process-wide Runtime with default
// configuration.
//
// Nothing in radguard uses it internally; it exists for small programs that
// do not want to thread a Runtime through.
func Default() *Runtime {
	defaultOnce.Do(func() {
		rt, err := New()
		if err != nil {
			panic("radguard: default runtime: " + err.Error())
		}
		defaultRuntime = rt
	})

	return defaultRuntime
}
