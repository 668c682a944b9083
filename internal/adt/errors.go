package adt

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigMissing indicates required connection configuration is absent
	ConfigMissing ErrorCode = "CONFIG_MISSING"
	// AuthFailed indicates a security token could not be obtained by any path
	AuthFailed ErrorCode = "AUTH_FAILED"
	// TransportError indicates a network failure, timeout, or non-2xx reply
	TransportError ErrorCode = "TRANSPORT_ERROR"
	// XMLMalformed indicates a payload that could not be parsed as XML
	XMLMalformed ErrorCode = "XML_MALFORMED"
	// InvalidParameter indicates a missing or malformed tool argument
	InvalidParameter ErrorCode = "INVALID_PARAMETER"
	// Internal indicates an unexpected error
	Internal ErrorCode = "INTERNAL_ERROR"
)

// Error is the error type for all ADT client failures. StatusCode is the
// remote HTTP status when the failure came from a live exchange, 0 otherwise.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	cause      error
}

// NewError creates an Error with an optional underlying cause.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithStatus attaches the remote HTTP status code.
func (e *Error) WithStatus(status int) *Error {
	e.StatusCode = status
	return e
}

// CodeOf extracts the ErrorCode from err, or Internal for foreign errors.
func CodeOf(err error) ErrorCode {
	var adtErr *Error
	if errors.As(err, &adtErr) {
		return adtErr.Code
	}
	return Internal
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	return CodeOf(err) == AuthFailed
}
