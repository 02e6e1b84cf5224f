package api

import "errors"

// ErrUnrecognizedEnvelope is returned when a list response is neither a
// bare JSON array nor a {"data": [...]} envelope. The client refuses to
// guess at unknown shapes.
var ErrUnrecognizedEnvelope = errors.New("unrecognized response envelope")

// Error is the single failure shape the client produces. Callers
// distinguish "server unreachable" from "server said no" through
// IsNetworkError; everything else is a backend-reported failure whose
// message is surfaced verbatim.
type Error struct {
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int

	// Message is human-readable and safe to show to the user.
	Message string

	// IsNetworkError marks timeouts, refused connections, and any other
	// transport failure that produced no HTTP response.
	IsNetworkError bool

	// Fields holds server-side validation errors keyed by field name.
	// They are logged for diagnostics but never transformed.
	Fields map[string]string

	err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsNetworkError reports whether err represents an unreachable backend.
func IsNetworkError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsNetworkError
}
