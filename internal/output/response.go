// package output defines the response envelope every command returns and
// the formatter registry that renders success payloads for humans.
package output

import (
	"github.com/desertthunder/spotify-cli/internal/api"
)

// ErrorKind categorizes a failure for machine consumers.
type ErrorKind string

const (
	ErrKindNetwork    ErrorKind = "network"
	ErrKindAPI        ErrorKind = "api"
	ErrKindAuth       ErrorKind = "auth"
	ErrKindNotFound   ErrorKind = "not_found"
	ErrKindForbidden  ErrorKind = "forbidden"
	ErrKindRateLimit  ErrorKind = "rate_limited"
	ErrKindValidation ErrorKind = "validation"
	ErrKindStorage    ErrorKind = "storage"
	ErrKindConfig     ErrorKind = "config"
	ErrKindPlayer     ErrorKind = "player"
)

// ErrorInfo carries the kind and optional detail line of a failure.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Details string    `json:"details,omitempty"`
}

// Response is the uniform envelope every command produces. Exactly one of
// Payload/Error is meaningful depending on Status.
type Response struct {
	Status      string      `json:"status"`
	Code        int         `json:"code"`
	Message     string      `json:"message"`
	PayloadKind PayloadKind `json:"payload_kind,omitempty"`
	Payload     any         `json:"payload,omitempty"`
	Error       *ErrorInfo  `json:"error,omitempty"`
}

// IsError reports whether the envelope carries a failure.
func (r *Response) IsError() bool { return r.Status == "error" }

// Success creates a payload-less success envelope.
func Success(code int, message string) *Response {
	return &Response{Status: "success", Code: code, Message: message}
}

// SuccessWithPayload creates a success envelope with an untyped payload,
// rendered through the shape-based formatter path.
func SuccessWithPayload(code int, message string, payload any) *Response {
	return &Response{Status: "success", Code: code, Message: message, Payload: payload}
}

// SuccessTyped creates a success envelope with a typed payload.
func SuccessTyped(code int, message string, kind PayloadKind, payload any) *Response {
	return &Response{Status: "success", Code: code, Message: message, PayloadKind: kind, Payload: payload}
}

// Err creates an error envelope.
func Err(code int, message string, kind ErrorKind) *Response {
	return &Response{Status: "error", Code: code, Message: message, Error: &ErrorInfo{Kind: kind}}
}

// ErrWithDetails creates an error envelope with a detail line.
func ErrWithDetails(code int, message string, kind ErrorKind, details string) *Response {
	return &Response{Status: "error", Code: code, Message: message, Error: &ErrorInfo{Kind: kind, Details: details}}
}

// FromAPIError converts a classified API failure into an error envelope,
// keeping the remote status code and attaching the user-facing line as
// details. context describes the operation that failed.
func FromAPIError(err *api.Error, context string) *Response {
	var kind ErrorKind
	switch err.Class {
	case api.ErrClassNetwork:
		kind = ErrKindNetwork
	case api.ErrClassUnauthorized:
		kind = ErrKindAuth
	case api.ErrClassForbidden:
		kind = ErrKindForbidden
	case api.ErrClassNotFound:
		kind = ErrKindNotFound
	case api.ErrClassRateLimited:
		kind = ErrKindRateLimit
	default:
		kind = ErrKindAPI
	}
	return ErrWithDetails(err.StatusCode(), context+": "+err.Error(), kind, err.UserMessage())
}
