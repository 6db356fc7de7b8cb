package errors

import (
	stderrors "errors"
	"net/http"
)

type Error struct {
	Code       int64  `json:"code"`
	Message    string `json:"message"`
	Cause      error  `json:"-"` // the underlying error
	Details    any    `json:"details,omitempty"`
	StatusCode int    `json:"-"`
}

func NewError(code int64, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithDetails sets structured context that is returned to API callers. It
// mutates e, so call it on a Wrap copy rather than a package sentinel.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

func (e *Error) WithStatusCode(statusCode int) *Error {
	e.StatusCode = statusCode
	return e
}

// Wrap returns a copy of e carrying cause. Sentinel errors declared at package
// level stay untouched, and errors.Is still matches the copy against them.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Code:       e.Code,
		Message:    e.Message,
		Cause:      cause,
		Details:    e.Details,
		StatusCode: e.StatusCode,
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) GetCode() int64 {
	return e.Code
}

func (e *Error) GetMessage() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) GetDetails() any {
	return e.Details
}

func (e *Error) GetStatusCode() int {
	return e.StatusCode
}

// StatusOf reports the HTTP status carried by the first *Error in err's chain,
// or 500 when there is none.
func StatusOf(err error) int {
	var e *Error
	if stderrors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// As is a shorthand for errors.As against *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}
