package gateway

import (
	"context"
	"errors"
)

// Failure kinds surfaced by every Gateway operation.
var (
	ErrNetworkFailure    = errors.New("network failure")
	ErrNotFound          = errors.New("not found")
	ErrMalformedResponse = errors.New("malformed response")
)

// Kind returns a short label for err, used in logs and history records.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrNetworkFailure):
		return "network_failure"
	default:
		return "unknown"
	}
}
