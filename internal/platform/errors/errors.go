// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine readable code rendered in the "error" key of the envelope
// Values are stable for wire compatibility; add sparingly
type ErrorCode string

const (
	// ErrorCodePagination is for invalid pagination input or a query without an order-by clause
	ErrorCodePagination ErrorCode = "pagination_error"

	// ErrorCodeUnsupportedAPIVersion is for a missing or invalid X-API-VERSION header
	ErrorCodeUnsupportedAPIVersion ErrorCode = "client.unsupported_api_version"

	// ErrorCodeInvalidRequest is for generic bad input
	ErrorCodeInvalidRequest ErrorCode = "client.endpoints.invalid-request"

	// ErrorCodeUnauthenticated is for missing or invalid credentials
	ErrorCodeUnauthenticated ErrorCode = "client.unauthenticated"

	// ErrorCodeAccessTokenExpired is for expired access tokens
	ErrorCodeAccessTokenExpired ErrorCode = "client.access_token_expired"

	// ErrorCodeAccessTokenRevoked is for revoked access tokens
	ErrorCodeAccessTokenRevoked ErrorCode = "client.access_token_revoked"

	// ErrorCodeForbidden is for access control failures
	ErrorCodeForbidden ErrorCode = "client.forbidden"

	// ErrorCodeInsufficientScopes is for tokens lacking the scopes an operation needs
	ErrorCodeInsufficientScopes ErrorCode = "client.insufficient_scopes"

	// ErrorCodeNotFound is for missing resources
	ErrorCodeNotFound ErrorCode = "client.endpoints.not-found"

	// ErrorCodeInvalidMethod is for a verb the endpoint does not support
	ErrorCodeInvalidMethod ErrorCode = "client.endpoints.invalid-method"

	// ErrorCodeConflict is for operations conflicting with one in progress
	ErrorCodeConflict ErrorCode = "client.endpoints.conflict"

	// ErrorCodeRateLimitExceeded is for throttling
	ErrorCodeRateLimitExceeded ErrorCode = "client.rate_limit_exceeded"

	// ErrorCodeServer is for unexpected failures, including panics and database errors
	ErrorCodeServer ErrorCode = "server.error"
)

// HTTPStatusCode turns an ErrorCode into an http status code
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodePagination, ErrorCodeUnsupportedAPIVersion, ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrorCodeUnauthenticated, ErrorCodeAccessTokenExpired, ErrorCodeAccessTokenRevoked:
		return http.StatusUnauthorized
	case ErrorCodeForbidden, ErrorCodeInsufficientScopes:
		return http.StatusForbidden
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidMethod:
		return http.StatusMethodNotAllowed
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

const forbiddenDescription = "The provided access token does not have permission to perform the requested operation."

// descriptions holds the caller facing text for each code
var descriptions = map[ErrorCode]string{
	ErrorCodePagination:            "Your pagination request was invalid.",
	ErrorCodeUnsupportedAPIVersion: "The requested API version is not supported.",
	ErrorCodeInvalidRequest:        "Your request was invalid. Please check the provided information and try again.",
	ErrorCodeUnauthenticated:       "You are not authorized to access this resource.",
	ErrorCodeAccessTokenExpired:    "The provided access token has expired.",
	ErrorCodeAccessTokenRevoked:    "The provided access token has been revoked.",
	ErrorCodeForbidden:             forbiddenDescription,
	ErrorCodeInsufficientScopes:    forbiddenDescription,
	ErrorCodeNotFound:              "The requested resource does not exist.",
	ErrorCodeInvalidMethod:         "The requested endpoint exists, but does not support the requested HTTP verb.",
	ErrorCodeConflict:              "Your request was valid, however a similar operation is in-progress. Please try again shortly.",
	ErrorCodeRateLimitExceeded:     "You have exceeded the allocated rate limit. Please try again shortly.",
	ErrorCodeServer:                "Something went wrong. We've been notified of the error and you can try again shortly.",
}

// DefaultDescription returns the generic caller facing description for a code
// unknown codes fall back to the server error text
func DefaultDescription(c ErrorCode) string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return descriptions[ErrorCodeServer]
}

// Known reports whether c is part of the catalog
func Known(c ErrorCode) bool {
	_, ok := descriptions[c]
	return ok
}

// ErrNotFound is a sentinel not found error for convenience
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is the structured error type with wrapping and metadata
// msg is developer facing and logged; desc is the optional caller facing override
// field is optional (for validation); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	desc  string
	code  ErrorCode
	field string
	op    string
	ctx   map[string]any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Message returns the developer facing message without the wrapped cause
func (e *Error) Message() string { return e.msg }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Description returns the text rendered to callers
// pagination errors surface their concrete message, everything else the catalog default
func (e *Error) Description() string {
	switch {
	case e.desc != "":
		return e.desc
	case e.code == ErrorCodePagination && e.msg != "":
		return e.msg
	default:
		return DefaultDescription(e.code)
	}
}

// ToWire converts an *Error to a Wire payload
func (e *Error) ToWire() Wire {
	return Wire{Code: e.code, Description: e.Description(), Context: cloneContext(e.ctx)}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to server.error
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeServer
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return err != nil && CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is re-exports errors.Is so callers keep a single errors import
func Is(err, target error) bool { return stderrs.Is(err, target) }

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// WithDescription overrides the caller facing description (copy-on-write)
// foreign errors are wrapped as server errors so the override still renders
func WithDescription(err error, desc string) error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		c := *e
		c.desc = desc
		return &c
	}
	return &Error{code: ErrorCodeServer, msg: err.Error(), desc: desc, orig: err}
}

// WithContext merges extra keys into the rendered envelope (copy-on-write)
// keys named "error" or "description" replace the generated values
func WithContext(err error, kv map[string]any) error {
	if err == nil || len(kv) == 0 {
		return err
	}
	e, ok := As(err)
	if !ok {
		e = &Error{code: ErrorCodeServer, msg: err.Error(), orig: err}
	}
	c := *e
	c.ctx = cloneContext(e.ctx)
	if c.ctx == nil {
		c.ctx = make(map[string]any, len(kv))
	}
	for k, v := range kv {
		c.ctx[k] = v
	}
	return &c
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// Paginationf returns a pagination error; its message is shown to callers
func Paginationf(format string, a ...any) error { return Newf(ErrorCodePagination, format, a...) }

// UnsupportedAPIVersionf returns an unsupported api version error
func UnsupportedAPIVersionf(format string, a ...any) error {
	return Newf(ErrorCodeUnsupportedAPIVersion, format, a...)
}

// InvalidRequestf returns a generic bad input error
func InvalidRequestf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidRequest, format, a...)
}

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// Unauthenticatedf returns an unauthenticated error
func Unauthenticatedf(format string, a ...any) error {
	return Newf(ErrorCodeUnauthenticated, format, a...)
}

// AccessTokenExpiredf returns an expired token error
func AccessTokenExpiredf(format string, a ...any) error {
	return Newf(ErrorCodeAccessTokenExpired, format, a...)
}

// AccessTokenRevokedf returns a revoked token error
func AccessTokenRevokedf(format string, a ...any) error {
	return Newf(ErrorCodeAccessTokenRevoked, format, a...)
}

// Forbiddenf returns a forbidden error
func Forbiddenf(format string, a ...any) error { return Newf(ErrorCodeForbidden, format, a...) }

// InsufficientScopesf returns an insufficient scopes error
func InsufficientScopesf(format string, a ...any) error {
	return Newf(ErrorCodeInsufficientScopes, format, a...)
}

// InvalidMethodf returns a method not allowed error
func InvalidMethodf(format string, a ...any) error { return Newf(ErrorCodeInvalidMethod, format, a...) }

// Conflictf returns a conflict error
func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }

// RateLimitedf returns a rate limit error
func RateLimitedf(format string, a ...any) error {
	return Newf(ErrorCodeRateLimitExceeded, format, a...)
}

// Internalf returns a generic server error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeServer, format, a...) }

// HTTP bundles status + wire in one shot (nice for handlers)
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}
