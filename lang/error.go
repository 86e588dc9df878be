// Copyright © 2024 The Sonnet authors

package lang

import (
	"fmt"
	"strings"

	"github.com/sonnetlang/sonnet/ast"
)

// Error condition names.  Conditions classify runtime failures so that
// embedders and the CLI can react programmatically without parsing
// messages.
const (
	// CondError is the generic runtime error condition.
	CondError = "error"
	// CondUnknownParameter signals a named argument that matches no
	// declared parameter.
	CondUnknownParameter = "unknown-function-parameter"
	// CondTooManyArgs signals more arguments than declared parameters.
	CondTooManyArgs = "too-many-args"
	// CondBoundTwice signals a parameter bound by two arguments.
	CondBoundTwice = "bound-parameter-a-second-time"
	// CondParamNotBound signals a parameter with neither an argument nor a
	// default.
	CondParamNotBound = "function-parameter-not-bound"
	// CondTypeMismatch signals a value of an unexpected type.
	CondTypeMismatch = "type-mismatch"
	// CondOverflow signals construction of a non-finite number.
	CondOverflow = "overflow"
	// CondStreamNotArray signals stream manifestation of a non-array.
	CondStreamNotArray = "stream-manifest-not-array"
	// CondStreamRecursed signals a YAML stream nested in a YAML stream.
	CondStreamRecursed = "stream-manifest-recursed"
	// CondStreamString signals a string format nested in a YAML stream.
	CondStreamString = "stream-manifest-string"
	// CondMultiNotObject signals multi manifestation of a non-object.
	CondMultiNotObject = "multi-manifest-not-object"
	// CondStringNotString signals string manifestation of a non-string.
	CondStringNotString = "string-manifest-not-string"
	// CondStackOverflow signals that the call stack height limit was hit.
	CondStackOverflow = "stack-overflow"
	// CondRecursion signals a thunk that re-entered its own evaluation.
	CondRecursion = "recursion"
	// CondUnboundVariable signals a variable lookup that found no binding.
	CondUnboundVariable = "unbound-variable"
)

// Error is a structured runtime failure.  Every fallible operation in the
// runtime returns an *Error; nothing is recovered locally and nothing is
// swallowed.
type Error struct {
	// Condition classifies the error (one of the Cond* constants).
	Condition string
	// Message is the human readable error text.
	Message string
	// Source is the location of the expression that failed, when known.
	Source *ast.Location
	// Trace is a copy of the call stack at the time of the error, when the
	// error occurred during evaluation.
	Trace *CallStack
}

// Error implements the error interface.  Non-generic conditions are printed
// preceding the message, mirroring how locations are printed preceding the
// condition.
func (e *Error) Error() string {
	msg := e.Message
	if e.Condition != CondError {
		msg = fmt.Sprintf("%s: %s", e.Condition, msg)
	}
	if e.Source != nil {
		return fmt.Sprintf("%s: %s", e.Source, msg)
	}
	return msg
}

// Errorf returns a generic runtime error with a formatted message.
func Errorf(format string, v ...interface{}) *Error {
	return ErrorConditionf(CondError, format, v...)
}

// ErrorConditionf returns an error with the given condition and a formatted
// message.
func ErrorConditionf(condition string, format string, v ...interface{}) *Error {
	return &Error{
		Condition: condition,
		Message:   fmt.Sprintf(format, v...),
	}
}

// TypeMismatchError builds the conventional type-mismatch error: the context
// label names the operation that required the type.
func TypeMismatchError(context string, actual VType, expected ...VType) *Error {
	names := make([]string, len(expected))
	for i := range expected {
		names[i] = expected[i].String()
	}
	return ErrorConditionf(CondTypeMismatch, "%s: expected %s, got %s",
		context, strings.Join(names, " or "), actual)
}

// AsError unwraps err as an *Error, wrapping foreign errors under the
// generic condition so that callers always observe structured failures.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if lerr, ok := err.(*Error); ok {
		return lerr
	}
	return &Error{Condition: CondError, Message: err.Error()}
}
