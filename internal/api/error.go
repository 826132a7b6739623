// package api is the authenticated HTTP client for the Spotify Web API:
// request plumbing, error classification, and endpoint path builders.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorClass buckets request failures by how the caller should react.
type ErrorClass int

const (
	// ErrClassNetwork covers transport failures before any HTTP status.
	ErrClassNetwork ErrorClass = iota
	// ErrClassAPI is any HTTP error status without more specific handling.
	ErrClassAPI
	// ErrClassUnauthorized is a 401: the token is missing or stale.
	ErrClassUnauthorized
	// ErrClassForbidden is a 403: the account lacks permission (often a
	// premium-only player action).
	ErrClassForbidden
	// ErrClassNotFound is a 404.
	ErrClassNotFound
	// ErrClassRateLimited is a 429 with the server's retry hint.
	ErrClassRateLimited
)

// Error is a classified Spotify Web API failure.
type Error struct {
	Class      ErrorClass
	Status     int
	Message    string
	RetryAfter int
	cause      error
}

func (e *Error) Error() string {
	switch e.Class {
	case ErrClassNetwork:
		return fmt.Sprintf("network error: %v", e.cause)
	case ErrClassUnauthorized:
		return "401 Unauthorized"
	case ErrClassForbidden:
		return "403 Forbidden"
	case ErrClassNotFound:
		return "404 Not Found"
	case ErrClassRateLimited:
		return fmt.Sprintf("429 Too Many Requests (retry after %ds)", e.RetryAfter)
	default:
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// StatusCode maps the failure onto an HTTP-ish status for the response
// envelope. Network failures report 503.
func (e *Error) StatusCode() int {
	switch e.Class {
	case ErrClassNetwork:
		return http.StatusServiceUnavailable
	case ErrClassUnauthorized:
		return http.StatusUnauthorized
	case ErrClassForbidden:
		return http.StatusForbidden
	case ErrClassNotFound:
		return http.StatusNotFound
	case ErrClassRateLimited:
		return http.StatusTooManyRequests
	default:
		return e.Status
	}
}

// UserMessage is the line shown to the user for this failure.
func (e *Error) UserMessage() string {
	switch e.Class {
	case ErrClassNetwork:
		return "Network error - check your connection"
	case ErrClassRateLimited:
		return "Too many requests - please wait a moment"
	case ErrClassUnauthorized:
		return "Session expired - run: spotify-cli auth refresh"
	case ErrClassForbidden:
		return "You don't have permission for this action"
	case ErrClassNotFound:
		return "Resource not found"
	default:
		return e.Message
	}
}

// NetworkError wraps a transport failure.
func NetworkError(cause error) *Error {
	return &Error{Class: ErrClassNetwork, cause: cause}
}

// classifyResponse builds an [Error] from a non-2xx response body.
func classifyResponse(status int, body []byte, retryAfter int) *Error {
	message := errorMessage(status, body)
	switch status {
	case http.StatusUnauthorized:
		return &Error{Class: ErrClassUnauthorized, Status: status, Message: message}
	case http.StatusForbidden:
		return &Error{Class: ErrClassForbidden, Status: status, Message: message}
	case http.StatusNotFound:
		return &Error{Class: ErrClassNotFound, Status: status, Message: message}
	case http.StatusTooManyRequests:
		return &Error{Class: ErrClassRateLimited, Status: status, Message: message, RetryAfter: retryAfter}
	default:
		return &Error{Class: ErrClassAPI, Status: status, Message: message}
	}
}

// errorMessage extracts a human message from an error body: the standard
// {"error": {"status", "message"}} shape first, then short non-HTML raw
// bodies, then a canned message per status.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	raw := strings.TrimSpace(string(body))
	if raw != "" && len(raw) < 200 && !strings.Contains(raw, "<") {
		return raw
	}

	switch {
	case status == http.StatusBadRequest:
		return "Bad request"
	case status == http.StatusUnauthorized:
		return "Unauthorized"
	case status == http.StatusForbidden:
		return "Forbidden"
	case status == http.StatusNotFound:
		return "Not found"
	case status == http.StatusTooManyRequests:
		return "Too many requests"
	case status >= 500 && status < 600:
		return "Spotify server error"
	default:
		return fmt.Sprintf("HTTP error %d", status)
	}
}
