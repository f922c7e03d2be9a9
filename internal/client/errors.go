// ABOUTME: Typed API error decoded from non-2xx backend responses
// ABOUTME: Understands Laravel's {message, errors} shape and a plain {error} shape

package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError represents an API error
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Detail  string              `json:"error"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Detail
	}
	if msg == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	if fields := e.FieldErrors(); fields != "" {
		return fmt.Sprintf("backend error: %s (%s)", msg, fields)
	}
	return fmt.Sprintf("backend error: %s", msg)
}

// FieldErrors flattens validation errors into "field: msg; field: msg".
func (e *APIError) FieldErrors() string {
	if len(e.Errors) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Errors[k], ", "))
	}
	return strings.Join(parts, "; ")
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 from the backend.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
