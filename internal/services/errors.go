package services

import "fmt"

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// ProviderError wraps any failure of the completion call. Its text is for
// logs only and must not reach the client.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
