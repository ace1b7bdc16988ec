package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// HTTPError is a non-2xx response.
type HTTPError struct {
	Status  int
	Message string
	// Body is the parsed response body, nil when it was empty or not JSON.
	Body json.RawMessage
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.authFailure()
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

func (e *HTTPError) authFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

func newHTTPError(status int, body json.RawMessage) *HTTPError {
	return &HTTPError{Status: status, Message: errorMessage(status, body), Body: body}
}

// errorMessage takes the body's "error" field, then "message", then falls
// back to "HTTP <status>".
func errorMessage(status int, body json.RawMessage) string {
	var fields map[string]json.RawMessage
	if len(body) > 0 && json.Unmarshal(body, &fields) == nil {
		for _, name := range []string{"error", "message"} {
			var s string
			if raw, ok := fields[name]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}
