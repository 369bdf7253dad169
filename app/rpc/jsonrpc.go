package rpc

import (
	"encoding/json"
	"fmt"
)

// Version is the only JSON-RPC protocol version the server speaks.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)

// Application error codes.
const (
	// ErrCodeProgram is returned for programs that fail to decode or type.
	ErrCodeProgram = -1

	// ErrCodeWitness is returned for witnesses that do not fit their program.
	ErrCodeWitness = -2

	// ErrCodeSighash is returned when a signature hash cannot be computed,
	// signed or verified.
	ErrCodeSighash = -3
)

// Request is a JSON-RPC 2.0 request. Params must be a JSON object of named
// parameters. A request without an ID is a notification and gets no
// response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// IsNotification reports whether the request carries no ID.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error is
// set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// RPCError is the error member of a response.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error satisfies the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewRPCError constructs an RPCError.
func NewRPCError(code int, message string) *RPCError {
	return &RPCError{Code: code, Message: message}
}

// ErrorData is attached to application errors and names the kind of
// failure, e.g. "ErrTypeMismatch".
type ErrorData struct {
	Kind string `json:"kind"`
}

var nullID = json.RawMessage("null")

func newResultResponse(id json.RawMessage, result json.RawMessage) *Response {
	return &Response{JSONRPC: Version, Result: result, ID: id}
}

func newErrorResponse(id json.RawMessage, rpcErr *RPCError) *Response {
	if len(id) == 0 {
		id = nullID
	}
	return &Response{JSONRPC: Version, Error: rpcErr, ID: id}
}
