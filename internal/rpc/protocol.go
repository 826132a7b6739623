// package rpc serves every command over a line-delimited JSON-RPC 2.0
// Unix socket, with playback-change notifications pushed to connected
// clients.
package rpc

import (
	"encoding/json"

	"github.com/desertthunder/spotify-cli/internal/output"
)

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is one incoming JSON-RPC message. A missing id marks a
// notification: it is dispatched but never answered.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  map[string]any  `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// IsNotification reports whether the request expects no reply.
func (r *Request) IsNotification() bool { return len(r.ID) == 0 }

// Response is one outgoing JSON-RPC reply. Exactly one of Result/Error
// is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Notification is a server-to-client push message. It carries no id.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// NewNotification builds a push message.
func NewNotification(method string, params any) Notification {
	return Notification{JSONRPC: "2.0", Method: method, Params: params}
}

// NewSuccess builds a success reply.
func NewSuccess(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: "2.0", Result: result, ID: normalizeID(id)}
}

// NewError builds an error reply.
func NewError(id json.RawMessage, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: "2.0",
		Error:   &Error{Code: code, Message: message, Data: data},
		ID:      normalizeID(id),
	}
}

// FromResponse converts a command envelope into a JSON-RPC reply. A
// success result wraps the message and payload; an error keeps the
// envelope's code and carries kind and details as data.
func FromResponse(id json.RawMessage, resp *output.Response) *Response {
	if resp.IsError() {
		var data any
		if resp.Error != nil {
			data = map[string]any{"kind": resp.Error.Kind, "details": resp.Error.Details}
		}
		return NewError(id, resp.Code, resp.Message, data)
	}
	return NewSuccess(id, map[string]any{"message": resp.Message, "payload": resp.Payload})
}

// normalizeID substitutes the JSON null id for replies to unparseable
// requests.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
