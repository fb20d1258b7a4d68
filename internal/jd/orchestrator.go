package jd

import (
	"context"
	"time"

	"github.com/jdparse/jdparse/internal/billing"
	"github.com/jdparse/jdparse/internal/llm"
	"github.com/jdparse/jdparse/internal/logger"
)

// Orchestrator drives the configured providers in priority order until one
// of them yields a normalizable response. First success wins; there is no
// best-of-N comparison. Provider and normalization failures advance the
// chain and are only surfaced once every backend has been exhausted.
type Orchestrator struct {
	providers []llm.Provider
	audit     AuditSink
}

// NewOrchestrator creates an Orchestrator over the given providers, tried in
// slice order. A nil sink disables audit emission.
func NewOrchestrator(providers []llm.Provider, sink AuditSink) *Orchestrator {
	if sink == nil {
		sink = NopSink{}
	}
	return &Orchestrator{
		providers: providers,
		audit:     sink,
	}
}

// Extract runs one job description through the fallback chain and returns
// the canonical record. On success the record is tagged with the winning
// provider; when every backend fails the call returns
// *AllProvidersUnavailableError carrying the last failure.
func (o *Orchestrator) Extract(ctx context.Context, jobText, jobID string) (*Record, error) {
	var lastErr error

	for _, p := range o.providers {
		logger.Debug("attempting extraction", "provider", p.Name(), "job_id", jobID)

		resp, err := p.Extract(ctx, jobText)
		if err != nil {
			lastErr = err
			logger.Warn("provider extraction failed", "provider", p.Name(), "job_id", jobID, "error", err)
			o.emit(failureAttempt(jobID, p, resp, err))
			continue
		}

		rec, err := Normalize(resp.Text)
		if err != nil {
			lastErr = err
			logger.Warn("provider response unparsable", "provider", p.Name(), "job_id", jobID, "error", err)
			o.emit(failureAttempt(jobID, p, resp, err))
			continue
		}

		o.emit(Attempt{
			JobID:     jobID,
			Provider:  p.Name(),
			Kind:      p.Kind(),
			Latency:   resp.Latency,
			Usage:     resp.Usage,
			Outcome:   OutcomeSuccess,
			Timestamp: time.Now().UTC(),
		})

		o.finalize(rec, jobText, p.Name())
		logger.Info("extraction complete", "provider", p.Name(), "job_id", jobID, "status", rec.Status)
		return rec, nil
	}

	logger.Error("all providers failed", "job_id", jobID, "providers", len(o.providers))
	return nil, &AllProvidersUnavailableError{
		Attempts: len(o.providers),
		LastErr:  lastErr,
	}
}

// HealthCheck reports reachability per configured provider.
func (o *Orchestrator) HealthCheck(ctx context.Context) map[string]bool {
	health := make(map[string]bool, len(o.providers))
	for _, p := range o.providers {
		health[p.Name()] = p.Healthy(ctx)
	}
	return health
}

// finalize applies the post-extraction steps that complete a record: gap
// recovery from the original text, the numeric rate split, and metadata.
// The record is immutable once returned to the caller.
func (o *Orchestrator) finalize(rec *Record, jobText, provider string) {
	FillMissing(rec, jobText)

	r := billing.Parse(rec.Rate)
	rec.RateMin = r.Min
	rec.RateMax = r.Max

	rec.Provider = provider
	rec.Status = recordStatus(rec)
	rec.ExtractedAt = time.Now().UTC()
}

// recordStatus reports partial when any critical field is still missing
// after fallback recovery.
func recordStatus(rec *Record) Status {
	if rec.Rate == "" || rec.ExternalID == "" || rec.Duration == "" || rec.Location == "" || rec.Contact == "" {
		return StatusPartial
	}
	return StatusSuccess
}

// emit forwards one attempt to the audit sink. Sink errors and panics are
// swallowed: telemetry must never block or fail the extraction path.
func (o *Orchestrator) emit(a Attempt) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("audit sink panicked", "recovered", r)
		}
	}()
	if err := o.audit.Emit(a); err != nil {
		logger.Debug("audit emission failed", "error", err)
	}
}

func failureAttempt(jobID string, p llm.Provider, resp llm.Response, err error) Attempt {
	return Attempt{
		JobID:     jobID,
		Provider:  p.Name(),
		Kind:      p.Kind(),
		Latency:   resp.Latency,
		Usage:     resp.Usage,
		Outcome:   OutcomeFailure,
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	}
}
