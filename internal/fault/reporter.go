// Package fault fans detected faults out to logging, metrics and a handler.
package fault

import (
	"github.com/arloliu/radguard/internal/logging"
	"github.com/arloliu/radguard/internal/metrics"
	"github.com/arloliu/radguard/types"
)

// Reporter records the outcome of a read that found redundant copies in
// disagreement.
type Reporter struct {
	logger  types.Logger
	metrics types.MetricsCollector
	handler types.FaultHandler
}

// NewReporter creates a Reporter. Nil logger and metrics fall back to no-op
// implementations; a nil handler disables callbacks.
func NewReporter(logger types.Logger, collector types.MetricsCollector, handler types.FaultHandler) Reporter {
	return Reporter{
		logger:  logging.OrNop(logger),
		metrics: metrics.OrNop(collector),
		handler: handler,
	}
}

// Corrected reports a fault that voting resolved.
func (r Reporter) Corrected(pattern types.FaultPattern, detail string) {
	r.metrics.IncFaultDetected(pattern)
	r.metrics.IncFaultCorrected(pattern)
	r.logger.Debug("fault corrected", "pattern", pattern.String(), "detail", detail)
	r.notify(pattern, detail)
}

// Uncorrectable reports a fault with no trusted result.
func (r Reporter) Uncorrectable(pattern types.FaultPattern, detail string) {
	r.metrics.IncFaultDetected(pattern)
	r.metrics.IncFaultUncorrectable(pattern)
	r.logger.Warn("uncorrectable fault", "pattern", pattern.String(), "detail", detail)
	r.notify(pattern, detail)
}

func (r Reporter) notify(pattern types.FaultPattern, detail string) {
	if r.handler != nil {
		r.handler(pattern, detail)
	}
}
