package jd

import "fmt"

// MalformedResponseError indicates a backend returned text that does not
// contain a parseable JSON object.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed provider response: %s", e.Reason)
}

// AllProvidersUnavailableError is the terminal failure of one extraction
// call: every configured backend failed. It carries the last failure seen.
type AllProvidersUnavailableError struct {
	Attempts int
	LastErr  error
}

func (e *AllProvidersUnavailableError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("all %d providers unavailable, last error: %v", e.Attempts, e.LastErr)
	}
	return fmt.Sprintf("all %d providers unavailable", e.Attempts)
}

func (e *AllProvidersUnavailableError) Unwrap() error {
	return e.LastErr
}
