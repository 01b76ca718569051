package adaptive

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/arloliu/radguard/types"
	"github.com/google/uuid"
)

// ErrorSource is the error stream a Controller observes and feeds.
//
// tracker.ErrorTracker implements it.
type ErrorSource interface {
	RecordError(pattern types.FaultPattern, detail string)
	ErrorRate() float64
	PatternDistribution() types.PatternDistribution
}

// ListenerID identifies a registered environment change callback.
type ListenerID uuid.UUID

// String returns the canonical UUID form of id.
func (id ListenerID) String() string {
	return uuid.UUID(id).String()
}

// EnvironmentChangeFunc is called after the environment changes.
type EnvironmentChangeFunc func(env types.EnvironmentType)

type listener struct {
	id ListenerID
	fn EnvironmentChangeFunc
}

// Controller selects protection settings for the current radiation
// environment and re-evaluates the environment from the observed error stream.
//
// A Controller owns no timer: the host calls PerformMaintenance periodically,
// and LogError triggers a detection pass every few logged errors. Listeners
// run synchronously on the goroutine that caused the change, outside the
// controller's lock, in registration order.
type Controller struct {
	source    ErrorSource
	clock     func() time.Time
	detection DetectionConfig
	logger    types.Logger
	metrics   types.MetricsCollector

	mu        sync.Mutex
	state     DetectionState
	adaptive  bool
	settings  SettingsTable
	current   ProtectionSettings
	listeners []listener
}

// New creates a Controller observing source.
//
// Parameters:
//   - source: Error stream to observe, typically a *tracker.ErrorTracker
//   - opts: Optional configuration
//
// Returns:
//   - *Controller: The controller, in the initial environment
//   - error: types.StatusInvalidArgument for a nil source or invalid configuration
func New(source ErrorSource, opts ...Option) (*Controller, error) {
	if source == nil {
		return nil, types.StatusInvalidArgument.WithMessage("error source is required")
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Detection.Validate(); err != nil {
		return nil, fmt.Errorf("detection config: %w", err)
	}
	if cfg.Settings == nil {
		cfg.Settings = DefaultSettings()
	}

	now := cfg.Clock()
	c := &Controller{
		source:    source,
		clock:     cfg.Clock,
		detection: cfg.Detection,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		adaptive:  cfg.AdaptiveMode,
		settings:  cfg.Settings,
		state: DetectionState{
			Environment: cfg.InitialEnvironment,
			LastCheck:   now,
			LastChange:  now,
		},
	}
	c.current = c.settings.Lookup(cfg.InitialEnvironment)
	c.metrics.SetEnvironment(cfg.InitialEnvironment)

	return c, nil
}

// SetEnvironment switches to env and notifies listeners if it changed.
//
// Settings are recomputed from the tier table; an unmapped env gets the
// Extreme tier's settings.
func (c *Controller) SetEnvironment(env types.EnvironmentType) {
	c.mu.Lock()
	prev := c.state.Environment
	if prev == env {
		c.mu.Unlock()
		return
	}
	c.state.Environment = env
	c.state.LastChange = c.clock()
	notify := c.applyLocked()
	c.mu.Unlock()

	c.changed(prev, env, notify)
}

// Environment returns the current environment.
func (c *Controller) Environment() types.EnvironmentType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Environment
}

// CurrentSettings returns the active protection settings.
func (c *Controller) CurrentSettings() ProtectionSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SettingsFor returns the configured settings for env, with the Extreme
// fallback applied.
func (c *Controller) SettingsFor(env types.EnvironmentType) ProtectionSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings.Lookup(env)
}

// State returns a snapshot of the detection state.
func (c *Controller) State() DetectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AutoDetect runs a detection pass if adaptive mode is on and the check
// interval has elapsed, and applies the resulting environment.
func (c *Controller) AutoDetect() {
	c.mu.Lock()
	if !c.adaptive {
		c.mu.Unlock()
		return
	}

	sample := Sample{
		Now:          c.clock(),
		ErrorRate:    c.source.ErrorRate(),
		Distribution: c.source.PatternDistribution(),
	}
	prev := c.state.Environment
	c.state = c.detection.Next(c.state, sample)
	env := c.state.Environment

	if env == prev {
		c.mu.Unlock()
		return
	}
	notify := c.applyLocked()
	c.mu.Unlock()

	c.logger.Debug("environment detected",
		"from", prev.String(), "to", env.String(),
		"error_rate", sample.ErrorRate, "severity", c.detection.Severity(sample))
	c.changed(prev, env, notify)
}

// LogError forwards a fault to the error source and runs AutoDetect every
// LogErrorTrigger calls.
//
// It has the signature of types.FaultHandler, so protected cells can report
// straight to the controller.
func (c *Controller) LogError(pattern types.FaultPattern, detail string) {
	c.source.RecordError(pattern, detail)

	c.mu.Lock()
	var trigger bool
	c.state, trigger = c.detection.CountError(c.state)
	c.mu.Unlock()

	if trigger {
		c.AutoDetect()
	}
}

// PerformMaintenance runs the periodic detection pass. The host must call it
// regularly; the Controller has no timer of its own.
func (c *Controller) PerformMaintenance() {
	c.AutoDetect()
}

// SetAdaptiveMode enables or disables automatic detection. Enabling runs a
// detection pass immediately (still subject to the check interval).
func (c *Controller) SetAdaptiveMode(enabled bool) {
	c.mu.Lock()
	c.adaptive = enabled
	c.mu.Unlock()

	if enabled {
		c.AutoDetect()
	}
}

// AdaptiveModeEnabled reports whether automatic detection is on.
func (c *Controller) AdaptiveModeEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adaptive
}

// CustomizeEnvironmentSettings overrides the settings of one tier. If env is
// current, the new settings take effect immediately.
//
// Parameters:
//   - env: Environment to override
//   - settings: New settings
//
// Returns:
//   - error: types.StatusInvalidArgument for an undefined env,
//     types.StatusValidationFailure for invalid settings
func (c *Controller) CustomizeEnvironmentSettings(env types.EnvironmentType, settings ProtectionSettings) error {
	if !env.Valid() {
		return types.StatusInvalidArgument.WithMessage("undefined " + env.String())
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings[env] = settings
	if env == c.state.Environment {
		c.current = settings
	}

	return nil
}

// RegisterEnvironmentChangeCallback adds a listener called with the new
// environment after every change.
//
// Returns:
//   - ListenerID: Handle for UnregisterEnvironmentChangeCallback
func (c *Controller) RegisterEnvironmentChangeCallback(fn EnvironmentChangeFunc) ListenerID {
	id := ListenerID(uuid.New())

	c.mu.Lock()
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	c.mu.Unlock()

	return id
}

// UnregisterEnvironmentChangeCallback removes a listener. Removing an unknown
// or already removed id is a no-op.
//
// Returns:
//   - bool: true if a listener was removed
func (c *Controller) UnregisterEnvironmentChangeCallback(id ListenerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.listeners)
	c.listeners = slices.DeleteFunc(c.listeners, func(l listener) bool { return l.id == id })

	return len(c.listeners) != n
}

// applyLocked recomputes the active settings and snapshots the listeners.
// Caller holds mu.
func (c *Controller) applyLocked() []EnvironmentChangeFunc {
	c.current = c.settings.Lookup(c.state.Environment)

	fns := make([]EnvironmentChangeFunc, len(c.listeners))
	for i, l := range c.listeners {
		fns[i] = l.fn
	}

	return fns
}

func (c *Controller) changed(from, to types.EnvironmentType, notify []EnvironmentChangeFunc) {
	c.metrics.IncEnvironmentChange(from, to)
	c.metrics.SetEnvironment(to)
	c.logger.Info("environment changed", "from", from.String(), "to", to.String())

	for _, fn := range notify {
		fn(to)
	}
}
