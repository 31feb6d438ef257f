package ai

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// UpstreamError preserves the provider's HTTP status and message so the
// caller can propagate it instead of flattening everything to 500.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai upstream error (status %d): %s", e.StatusCode, e.Message)
}

// ParseError means the provider answered 2xx but the body was not the JSON
// we asked for. Raw holds a truncated copy of the body for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ai response is not valid JSON: %v (raw: %s)", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }
