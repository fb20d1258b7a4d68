// Package llm provides a unified interface for the text-generation backends
// used to turn raw job descriptions into structured text.
package llm

import (
	"context"
	"time"
)

// Kind classifies where a backend runs.
type Kind string

const (
	KindLocal Kind = "local"
	KindCloud Kind = "cloud"
)

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns the combined token count.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// Response is the raw outcome of one backend call.
type Response struct {
	Text    string        // Raw model output, expected to contain a JSON object
	Latency time.Duration // Wall-clock time spent in the backend call
	Usage   *Usage        // Token usage, nil when the backend does not report it
}

// Provider is the core abstraction over text-generation backends.
// Implementations are stateless per call and safe for concurrent use.
type Provider interface {
	// Extract sends the job description to the backend and returns its raw
	// response. The call honours the provider's configured timeout and the
	// caller's context; failures are reported as *ProviderError.
	Extract(ctx context.Context, jobText string) (Response, error)

	// Healthy reports whether the backend is reachable and configured.
	Healthy(ctx context.Context) bool

	// Name returns the provider identifier.
	Name() string

	// Kind reports whether the backend is local or cloud hosted.
	Kind() Kind
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultProviderConfig returns sensible defaults.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Timeout: 60 * time.Second,
	}
}
