// Package errors provides a coded error type shared by the cleaner services.
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and for the HTTP layer.
// Values go over the wire, append new codes at the end
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota
	ErrorCodePanic                     // recovered panic
	ErrorCodeUnavailable               // transient, a retry may succeed
	ErrorCodeConflict                  // unique violation or concurrent edit
	ErrorCodeInvalidArgument           // bad parameter or malformed dataset
	ErrorCodeValidation                // request body failed validation
	ErrorCodeJSON                      // undecodable JSON
	ErrorCodeNotFound
	ErrorCodeDB // any other database failure
	ErrorCodeIO // dataset could not be read or written
)

var statusOf = map[ErrorCode]int{
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeNotFound:        http.StatusNotFound,
}

// HTTPStatusCode maps a code to a status, anything unmapped is a 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusOf[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error carries a code, a message and an optional cause.
// field names the offending input, op names the step that failed
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON body of an API error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	default:
		return e.msg
	}
}

func (e *Error) Unwrap() error   { return e.orig }
func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Field() string   { return e.field }
func (e *Error) Op() string      { return e.op }
func (e *Error) ToWire() Wire    { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom renders any error for the API. A nil error gives the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root walks the Unwrap chain to the innermost error
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns err's code, or ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is HTTPStatusCode(CodeOf(err))
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy of err naming the offending field. Foreign errors pass through
func WithField(err error, field string) error {
	return edit(err, func(c *Error) { c.field = field })
}

// WithOp returns a copy of err tagged with the failing step. Foreign errors pass through
func WithOp(err error, op string) error {
	return edit(err, func(c *Error) { c.op = op })
}

func edit(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches code and msg to orig, which stays reachable through Unwrap
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

func NotFoundf(format string, a ...any) error    { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error  { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error    { return Newf(ErrorCodePanic, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
