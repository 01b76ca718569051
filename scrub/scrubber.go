package scrub

import (
	"slices"
	"sync"
	"time"

	"github.com/arloliu/radguard/adaptive"
	"github.com/arloliu/radguard/internal/logging"
	"github.com/arloliu/radguard/internal/metrics"
	"github.com/arloliu/radguard/types"
	"github.com/google/uuid"
)

// DefaultInterval is the scrub interval used until one is set or followed.
const DefaultInterval = 5 * time.Second

// Target is anything that can rewrite its redundant copies from a voted value.
//
// redundancy.Value, layout.Aligned and layout.Interleaved implement it.
type Target interface {
	// Scrub repairs the target and reports whether anything was rewritten.
	Scrub() bool
}

// TargetFunc adapts a function to Target.
type TargetFunc func() bool

// Scrub calls f.
func (f TargetFunc) Scrub() bool { return f() }

// Handle identifies a registered target.
type Handle uuid.UUID

// String returns the canonical UUID form of h.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// IntervalSource supplies the scrub interval and announces when it may have
// changed. *adaptive.Controller implements it.
type IntervalSource interface {
	CurrentSettings() adaptive.ProtectionSettings
	RegisterEnvironmentChangeCallback(fn adaptive.EnvironmentChangeFunc) adaptive.ListenerID
}

type entry struct {
	handle Handle
	name   string
	target Target
}

// Scrubber periodically rewrites registered targets.
//
// It owns no goroutine: the host calls Tick from its own loop and the
// scrubber decides whether a pass is due. Registration is safe for
// concurrent use; passes assume a single driver.
type Scrubber struct {
	logger  types.Logger
	metrics types.MetricsCollector

	mu       sync.Mutex
	targets  []entry
	interval time.Duration
	lastRun  time.Time
}

// Option configures a Scrubber.
type Option func(*Scrubber)

// WithInterval sets the initial interval between passes.
//
// Parameters:
//   - d: Interval (default: 5s); non-positive values run a pass on every Tick
//
// Returns:
//   - Option: Configuration option
func WithInterval(d time.Duration) Option {
	return func(s *Scrubber) {
		s.interval = d
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: Logger implementation (nil restores the no-op logger)
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(s *Scrubber) {
		s.logger = logging.OrNop(logger)
	}
}

// WithMetrics sets the metrics collector for passes and repairs.
//
// Parameters:
//   - collector: MetricsCollector implementation (nil restores the no-op collector)
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector types.MetricsCollector) Option {
	return func(s *Scrubber) {
		s.metrics = metrics.OrNop(collector)
	}
}

// New creates an empty Scrubber.
func New(opts ...Option) *Scrubber {
	s := &Scrubber{
		logger:   logging.NewNopLogger(),
		metrics:  metrics.NewNopMetrics(),
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register adds a target to every subsequent pass.
//
// Parameters:
//   - name: Label used in logs
//   - target: The target to scrub
//
// Returns:
//   - Handle: Handle for Unregister
func (s *Scrubber) Register(name string, target Target) Handle {
	h := Handle(uuid.New())

	s.mu.Lock()
	s.targets = append(s.targets, entry{handle: h, name: name, target: target})
	s.mu.Unlock()

	return h
}

// Unregister removes a target. Unknown or already removed handles are ignored.
//
// Returns:
//   - bool: true if a target was removed
func (s *Scrubber) Unregister(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.targets)
	s.targets = slices.DeleteFunc(s.targets, func(e entry) bool { return e.handle == h })

	return len(s.targets) != n
}

// Len returns the number of registered targets.
func (s *Scrubber) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.targets)
}

// SetInterval changes the interval between passes.
func (s *Scrubber) SetInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
}

// Interval returns the interval between passes.
func (s *Scrubber) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Follow keeps the interval equal to the source's ScrubbingInterval, now
// and after every environment change.
//
// Returns:
//   - adaptive.ListenerID: The listener registered on src
func (s *Scrubber) Follow(src IntervalSource) adaptive.ListenerID {
	s.SetInterval(src.CurrentSettings().ScrubbingInterval)

	return src.RegisterEnvironmentChangeCallback(func(env types.EnvironmentType) {
		d := src.CurrentSettings().ScrubbingInterval
		s.SetInterval(d)
		s.logger.Debug("scrub interval updated", "environment", env.String(), "interval", d)
	})
}

// ScrubOnce scrubs every registered target now.
//
// Returns:
//   - int: The number of targets that had to be rewritten
func (s *Scrubber) ScrubOnce() int {
	s.mu.Lock()
	targets := slices.Clone(s.targets)
	s.mu.Unlock()

	repaired := 0
	for _, e := range targets {
		if e.target.Scrub() {
			repaired++
			s.logger.Debug("scrub repaired target", "target", e.name)
		}
	}

	s.metrics.IncScrubPass()
	if repaired > 0 {
		s.metrics.IncScrubRepaired(repaired)
		s.logger.Info("scrub pass repaired targets", "repaired", repaired, "targets", len(targets))
	}

	return repaired
}

// Tick runs a pass if the interval has elapsed since the previous one. The
// first Tick always runs.
//
// Parameters:
//   - now: Current time from the host's clock
//
// Returns:
//   - int: Targets rewritten by the pass
//   - bool: true if a pass ran
func (s *Scrubber) Tick(now time.Time) (int, bool) {
	s.mu.Lock()
	if !s.lastRun.IsZero() && now.Sub(s.lastRun) < s.interval {
		s.mu.Unlock()
		return 0, false
	}
	s.lastRun = now
	s.mu.Unlock()

	return s.ScrubOnce(), true
}
