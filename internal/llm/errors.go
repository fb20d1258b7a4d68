package llm

import (
	"errors"
	"fmt"
)

// ErrNotConfigured indicates a backend is missing credentials or an endpoint.
// Providers constructed without credentials report unhealthy and fail fast
// with this error instead of failing at construction time.
var ErrNotConfigured = errors.New("provider not configured")

// ProviderError reports the failure of a single backend call: timeout,
// transport error, bad status, or missing configuration.
type ProviderError struct {
	Provider string
	Cause    string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Cause, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(provider, cause string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Cause: cause, Err: err}
}
