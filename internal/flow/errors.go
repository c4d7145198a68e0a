package flow

import "fmt"

// Error is a conversation-level failure carrying a stable machine code.
// The router extracts the code for the handler summary log line.
type Error struct {
	code string
	msg  string
	err  error
}

// Code returns the stable machine code of the failure.
func (e *Error) Code() string { return e.code }

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Codes shared across the conversation flows.
const (
	CodeTimeout    = "TIMEOUT_EXPIRED"
	CodeValidation = "VALIDATION_FAILED"
	CodeNotFound   = "NOT_FOUND"
	CodePermission = "PERMISSION_DENIED"
	CodeUnexpected = "UNEXPECTED"
)

// Timeout marks a session that exceeded its reply deadline.
func Timeout(msg string) *Error {
	return &Error{code: CodeTimeout, msg: msg}
}

// Validation marks operator or customer input that failed a flow rule.
func Validation(msg string) *Error {
	return &Error{code: CodeValidation, msg: msg}
}

// NotFound marks a lookup against an entry that no longer exists.
func NotFound(msg string) *Error {
	return &Error{code: CodeNotFound, msg: msg}
}

// Permission marks a caller that is not allowed to run the operation.
func Permission(msg string) *Error {
	return &Error{code: CodePermission, msg: msg}
}

// Unexpected wraps an infrastructure failure behind a generic code.
func Unexpected(msg string, err error) *Error {
	return &Error{code: CodeUnexpected, msg: msg, err: err}
}
