package api

import (
	"errors"
	"fmt"
)

// ErrUnsupportedServer indicates the server version is outside the range
// this client understands.
var ErrUnsupportedServer = errors.New("unsupported server version")

// APIError is a non-2xx response decoded from the server's error envelope.
//
//nolint:revive // APIError is the canonical name for this exported type.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the server-provided error string.
	Message string

	// Details carries optional extra context from the server.
	Details string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("API %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("API %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
