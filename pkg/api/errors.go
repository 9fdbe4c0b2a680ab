package api

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an internal failure.
type ErrorKind string

const (
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindUpstream      ErrorKind = "upstream"
	ErrorKindInternal      ErrorKind = "internal"
)

// Error is an error with a kind. Message is what clients see; Err, when set,
// is the underlying cause and is reachable through errors.Unwrap.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewConfigurationError creates an Error for a missing or invalid setting.
func NewConfigurationError(message string) *Error {
	return &Error{Kind: ErrorKindConfiguration, Message: message}
}

// NewValidationError creates an Error for a malformed client request.
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, Message: message}
}

// NewUpstreamError wraps a failure from the identity provider, the secret
// store or the completion API. The client-facing message is err's text.
func NewUpstreamError(err error) *Error {
	msg := "upstream request failed"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: ErrorKindUpstream, Message: msg, Err: err}
}

// NewUpstreamErrorf creates an upstream Error from a format string.
func NewUpstreamErrorf(format string, args ...any) *Error {
	return &Error{Kind: ErrorKindUpstream, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError creates an Error for unexpected failures such as panics.
func NewInternalError(message string) *Error {
	return &Error{Kind: ErrorKindInternal, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain. Errors that
// carry no kind are reported as upstream failures, since everything below
// the request handlers talks to a remote service.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrorKindUpstream
}

// AsError converts any error into an *Error, keeping an existing kind.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewUpstreamError(err)
}
