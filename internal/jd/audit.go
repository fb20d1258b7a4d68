package jd

import (
	"log/slog"
	"time"

	"github.com/jdparse/jdparse/internal/llm"
)

// Outcome is the result of one provider attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Attempt records one call to one provider. Attempts are forwarded to an
// AuditSink and never persisted by this package.
type Attempt struct {
	JobID     string        `json:"job_id"`
	Provider  string        `json:"provider"`
	Kind      llm.Kind      `json:"kind"`
	Latency   time.Duration `json:"latency_ms"`
	Usage     *llm.Usage    `json:"usage,omitempty"`
	Outcome   Outcome       `json:"outcome"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// AuditSink receives provider attempts. Implementations must not block the
// extraction path; returned errors are discarded by the caller. Telemetry is
// strictly best effort.
type AuditSink interface {
	Emit(attempt Attempt) error
}

// LogSink writes attempts to the structured log.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates an AuditSink backed by the given logger.
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{log: log}
}

// Emit logs one attempt.
func (s *LogSink) Emit(a Attempt) error {
	s.log.Info("provider attempt",
		"job_id", a.JobID,
		"provider", a.Provider,
		"kind", a.Kind,
		"latency_ms", a.Latency.Milliseconds(),
		"outcome", a.Outcome,
		"error", a.Error)
	return nil
}

// NopSink discards all attempts.
type NopSink struct{}

// Emit does nothing.
func (NopSink) Emit(Attempt) error { return nil }
