package googlebooks

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is wrapped by every error returned from a volumes request,
// whatever the cause (transport, HTTP status or payload decoding).
var ErrRequestFailed = errors.New("book request failed")

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("google books: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("google books: unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsStatusError reports whether err wraps a StatusError and returns it.
func IsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
