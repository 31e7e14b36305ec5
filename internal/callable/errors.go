// Package callable implements the request/response envelope of the admin
// callable endpoints and the error categories they surface.
package callable

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a categorized error code in its wire (kebab-case) form.
type Code string

const (
	CodeOK                Code = "ok"
	CodeInvalidArgument   Code = "invalid-argument"
	CodeUnauthenticated   Code = "unauthenticated"
	CodePermissionDenied  Code = "permission-denied"
	CodeNotFound          Code = "not-found"
	CodeResourceExhausted Code = "resource-exhausted"
	CodeInternal          Code = "internal"
)

var canonical = map[Code]string{
	CodeOK:                "OK",
	CodeInvalidArgument:   "INVALID_ARGUMENT",
	CodeUnauthenticated:   "UNAUTHENTICATED",
	CodePermissionDenied:  "PERMISSION_DENIED",
	CodeNotFound:          "NOT_FOUND",
	CodeResourceExhausted: "RESOURCE_EXHAUSTED",
	CodeInternal:          "INTERNAL",
}

var httpStatus = map[Code]int{
	CodeOK:                http.StatusOK,
	CodeInvalidArgument:   http.StatusBadRequest,
	CodeUnauthenticated:   http.StatusUnauthorized,
	CodePermissionDenied:  http.StatusForbidden,
	CodeNotFound:          http.StatusNotFound,
	CodeResourceExhausted: http.StatusTooManyRequests,
	CodeInternal:          http.StatusInternalServerError,
}

// Status returns the canonical upper-case name used on the wire.
func (c Code) Status() string {
	if s, ok := canonical[c]; ok {
		return s
	}
	return canonical[CodeInternal]
}

// HTTPStatus maps the code to its HTTP status.
func (c Code) HTTPStatus() int {
	if s, ok := httpStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is the only error type that crosses the callable boundary. Message is
// shown to the caller as-is.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func PermissionDenied(message string) *Error { return NewError(CodePermissionDenied, message) }
func Internal(message string) *Error         { return NewError(CodeInternal, message) }
func InvalidArgument(message string) *Error  { return NewError(CodeInvalidArgument, message) }
func Unauthenticated(message string) *Error  { return NewError(CodeUnauthenticated, message) }

// AsError extracts a callable *Error from err. Anything else becomes a
// generic internal error so provider details never reach the caller.
func AsError(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return Internal("INTERNAL")
}

// CodeOf returns the code of err, or CodeOK for nil.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	return AsError(err).Code
}
