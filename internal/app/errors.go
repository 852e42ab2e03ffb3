package app

import "errors"

type ErrorCode string

const (
	CodeValidation  ErrorCode = "VALIDATION_FAILED"
	CodeNotFound    ErrorCode = "NOT_FOUND"
	CodeConflict    ErrorCode = "CONFLICT"
	CodeWriteFailed ErrorCode = "WRITE_FAILED"
)

// Error is the typed error returned by every use case. Err keeps the
// underlying cause available to errors.Is.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
