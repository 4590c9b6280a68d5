package engine

import (
	"errors"
	"fmt"
)

// Code classifies a rejected command.
type Code string

const (
	CodePhase           Code = "PHASE"             // command not allowed in the current phase
	CodePolicy          Code = "POLICY"            // advance or roster gate not satisfied
	CodeUnknownEvent    Code = "UNKNOWN_EVENT"     // forced event names no table entry
	CodeUnknownPlayer   Code = "UNKNOWN_PLAYER"    // player reference matches nobody
	CodeUnknownMonster  Code = "UNKNOWN_MONSTER"   // template reference matches nothing
	CodeInvalidAction   Code = "INVALID_ACTION"    // malformed or disallowed attack action
	CodeNothingToCancel Code = "NOTHING_TO_CANCEL" // cancel with an empty action list
)

// Error is the engine's domain error. A command that returns one has left
// the session unchanged.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrPhase           = &Error{Code: CodePhase}
	ErrPolicy          = &Error{Code: CodePolicy}
	ErrUnknownEvent    = &Error{Code: CodeUnknownEvent}
	ErrUnknownPlayer   = &Error{Code: CodeUnknownPlayer}
	ErrUnknownMonster  = &Error{Code: CodeUnknownMonster}
	ErrInvalidAction   = &Error{Code: CodeInvalidAction}
	ErrNothingToCancel = &Error{Code: CodeNothingToCancel}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first engine error in err's chain, or ""
// for any other error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
