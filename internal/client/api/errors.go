package api

import "errors"

var (
	// ErrUnavailable marks transport-level failures: connection refused,
	// DNS errors, timeouts. The wrapped detail is shown to the user verbatim.
	ErrUnavailable = errors.New("server unavailable")

	// ErrInvalidResponse marks a response body that failed envelope shape
	// validation. The wrapped detail is for logs only, never for display.
	ErrInvalidResponse = errors.New("invalid response shape")
)
