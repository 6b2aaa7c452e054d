package lookup

import (
	"errors"
	"fmt"
	"net/http"
)

// TransientError marks a lookup failure worth another attempt: network
// errors, rate limiting and server-side errors.
type TransientError struct {
	Status int // HTTP status, 0 when no response arrived
	err    error
}

func (e *TransientError) Error() string { return e.err.Error() }
func (e *TransientError) Unwrap() error { return e.err }

// FatalError marks a lookup failure that retrying cannot fix, such as a
// rejected API key or an undecodable body.
type FatalError struct {
	Status int
	err    error
}

func (e *FatalError) Error() string { return e.err.Error() }
func (e *FatalError) Unwrap() error { return e.err }

// NewTransientError wraps err as retryable.
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// NewFatalError wraps err as non-retryable.
func NewFatalError(err error) error {
	return &FatalError{err: err}
}

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal reports whether err must not be retried.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// StatusCode extracts the HTTP status carried by a lookup error, or 0.
func StatusCode(err error) int {
	var transient *TransientError
	if errors.As(err, &transient) {
		return transient.Status
	}
	var fatal *FatalError
	if errors.As(err, &fatal) {
		return fatal.Status
	}
	return 0
}

const maxErrorBody = 200

// classifyHTTPError turns a non-200 response into a transient or fatal error.
func classifyHTTPError(statusCode int, body []byte) error {
	bodyStr := string(body)
	if len(bodyStr) > maxErrorBody {
		bodyStr = bodyStr[:maxErrorBody] + "..."
	}
	err := fmt.Errorf("lookup API error (status %d): %s", statusCode, bodyStr)

	switch {
	case statusCode == http.StatusTooManyRequests,
		statusCode == http.StatusRequestTimeout,
		statusCode >= 500:
		return &TransientError{Status: statusCode, err: err}
	default:
		return &FatalError{Status: statusCode, err: err}
	}
}
