package api

import (
	"errors"
	"fmt"
)

// APIError is returned for any non-2xx response other than 401. Body holds
// the decoded JSON payload when the server sent one, otherwise the raw text.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       any
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api error (%d) on %s %s: %s", e.StatusCode, e.Method, e.Path, msg)
	}
	return fmt.Sprintf("api error (%d) on %s %s", e.StatusCode, e.Method, e.Path)
}

// Message extracts a human-readable message from the body, looking at the
// usual "message" and "error" keys of a JSON object.
func (e *APIError) Message() string {
	switch b := e.Body.(type) {
	case string:
		return b
	case map[string]any:
		for _, k := range []string{"message", "error", "detail"} {
			if s, ok := b[k].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// AuthError indicates that the session or API key was rejected, or that no
// usable session exists. It is terminal for the request and never retried.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error: %s: %v", e.Message, e.Err)
	}
	return "auth error: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
