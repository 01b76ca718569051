package tracker

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/radguard/types"
)

const (
	// rateWindow is the minimum interval between error rate recomputations.
	rateWindow = time.Second

	// rateSmoothing is the weight of the instantaneous rate; the previous
	// smoothed rate gets the remainder.
	rateSmoothing = 0.7

	// DefaultRecentErrors is a sensible limit for RecentErrors.
	DefaultRecentErrors = 100
)

// NoErrorsYet is returned by TimeSinceLastError when nothing has been recorded.
const NoErrorsYet = time.Duration(math.MaxInt64)

// ErrorRecord is one entry of the tracker's bounded history.
type ErrorRecord struct {
	Timestamp time.Time
	Pattern   types.FaultPattern
	Detail    string
}

// ErrorTracker aggregates detected faults over time.
//
// Counters are lock-free atomics; only the bounded history takes a mutex.
// The smoothed error rate is recomputed at most once per second by whichever
// caller wins a compare-and-swap on the window start, so concurrent
// recorders never block each other. Readers see eventually consistent
// values: cross-counter ordering is not guaranteed.
//
// ErrorTracker is safe for concurrent use.
type ErrorTracker struct {
	clock   func() time.Time
	epoch   time.Time
	logger  types.Logger
	metrics types.MetricsCollector

	total    atomic.Uint64
	patterns [types.NumFaultPatterns]atomic.Uint64

	// lastError is the elapsed time since epoch of the latest error, plus one;
	// zero means no error has been recorded.
	lastError atomic.Int64

	rateBits      atomic.Uint64 // float64 bits of the smoothed rate
	lastCalc      atomic.Int64  // elapsed time since epoch at the last recompute
	lastCalcCount atomic.Uint64

	mu       sync.Mutex
	history  []ErrorRecord
	head     int // index of the oldest record
	size     int
	capacity int
}

// New creates an ErrorTracker.
//
// Parameters:
//   - opts: Optional configuration (clock, history capacity, logger, metrics)
//
// Returns:
//   - *ErrorTracker: A tracker with zero counts
func New(opts ...Option) *ErrorTracker {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &ErrorTracker{
		clock:    cfg.Clock,
		epoch:    cfg.Clock(),
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		history:  make([]ErrorRecord, cfg.HistoryCapacity),
		capacity: cfg.HistoryCapacity,
	}
}

// RecordError records one detected fault.
//
// It has the signature of types.FaultHandler, so a tracker can be wired
// directly as a protected cell's fault handler.
//
// Parameters:
//   - pattern: Classified fault pattern
//   - detail: Free-form description kept in the history
func (t *ErrorTracker) RecordError(pattern types.FaultPattern, detail string) {
	t.total.Add(1)
	if pattern.Valid() {
		t.patterns[pattern].Add(1)
	}

	now := t.clock()
	elapsed := int64(now.Sub(t.epoch))
	t.lastError.Store(elapsed + 1)

	t.mu.Lock()
	t.push(ErrorRecord{Timestamp: now, Pattern: pattern, Detail: detail})
	t.mu.Unlock()

	t.metrics.IncErrorRecorded(pattern)
	t.updateRate(elapsed)
}

// updateRate recomputes the smoothed rate if a full window has passed.
func (t *ErrorTracker) updateRate(elapsed int64) {
	last := t.lastCalc.Load()
	if time.Duration(elapsed-last) < rateWindow {
		return
	}
	if !t.lastCalc.CompareAndSwap(last, elapsed) {
		return
	}

	count := t.total.Load()
	prevCount := t.lastCalcCount.Swap(count)

	// A Reset racing a recompute can leave prevCount above count; everything
	// counted since the reset belongs to this window.
	delta := count
	if count >= prevCount {
		delta = count - prevCount
	}

	instant := max(float64(delta)/time.Duration(elapsed-last).Seconds(), 0)
	prev := math.Float64frombits(t.rateBits.Load())
	rate := rateSmoothing*instant + (1-rateSmoothing)*prev

	t.rateBits.Store(math.Float64bits(rate))
	t.metrics.SetErrorRate(rate)
	t.logger.Debug("error rate updated", "rate", rate, "instant", instant)
}

// ErrorRate returns the smoothed error rate in errors per second.
func (t *ErrorTracker) ErrorRate() float64 {
	return math.Float64frombits(t.rateBits.Load())
}

// IsErrorRateExceeded reports whether ErrorRate is strictly above threshold.
func (t *ErrorTracker) IsErrorRateExceeded(threshold float64) bool {
	return t.ErrorRate() > threshold
}

// TotalErrorCount returns the number of errors recorded since the last Reset.
func (t *ErrorTracker) TotalErrorCount() uint64 {
	return t.total.Load()
}

// PatternCount returns the number of errors recorded with the given pattern.
func (t *ErrorTracker) PatternCount(pattern types.FaultPattern) uint64 {
	if !pattern.Valid() {
		return 0
	}
	return t.patterns[pattern].Load()
}

// PatternDistribution returns each pattern's share of the total error count.
//
// All shares are zero when nothing has been recorded.
func (t *ErrorTracker) PatternDistribution() types.PatternDistribution {
	var dist types.PatternDistribution

	total := t.total.Load()
	if total == 0 {
		return dist
	}
	for i := range t.patterns {
		dist[i] = float64(t.patterns[i].Load()) / float64(total)
	}

	return dist
}

// TimeSinceLastError returns the time elapsed since the latest error, or
// NoErrorsYet if none has been recorded.
func (t *ErrorTracker) TimeSinceLastError() time.Duration {
	last := t.lastError.Load()
	if last == 0 {
		return NoErrorsYet
	}
	return t.clock().Sub(t.epoch) - time.Duration(last-1)
}

// RecentErrors returns up to limit of the newest history records, oldest first.
//
// Parameters:
//   - limit: Maximum number of records (see DefaultRecentErrors)
//
// Returns:
//   - []ErrorRecord: A copy of the records; empty when limit <= 0
func (t *ErrorTracker) RecentErrors(limit int) []ErrorRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := min(max(limit, 0), t.size)
	out := make([]ErrorRecord, n)
	start := t.size - n
	for i := range out {
		out[i] = t.history[(t.head+start+i)%t.capacity]
	}

	return out
}

// Reset clears all counters, the smoothed rate and the history.
func (t *ErrorTracker) Reset() {
	t.total.Store(0)
	for i := range t.patterns {
		t.patterns[i].Store(0)
	}
	t.lastError.Store(0)
	t.rateBits.Store(0)
	t.lastCalcCount.Store(0)
	t.lastCalc.Store(int64(t.clock().Sub(t.epoch)))

	t.mu.Lock()
	clear(t.history)
	t.head, t.size = 0, 0
	t.mu.Unlock()

	t.metrics.SetErrorRate(0)
}

// push appends r, evicting the oldest record when full. Caller holds mu.
func (t *ErrorTracker) push(r ErrorRecord) {
	if t.size < t.capacity {
		t.history[(t.head+t.size)%t.capacity] = r
		t.size++
		return
	}
	t.history[t.head] = r
	t.head = (t.head + 1) % t.capacity
}
