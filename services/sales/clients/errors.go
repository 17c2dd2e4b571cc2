package clients

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a 404 from a downstream service.
var ErrNotFound = errors.New("not found")

// StatusError reports a non-2xx downstream response, carrying the error
// message from the response body when one was present.
type StatusError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s service returned %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s service returned %d", e.Service, e.StatusCode)
}
