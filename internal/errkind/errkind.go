// Package errkind implements the engine's error taxonomy: a value-carried
// error kind plus payload, propagated along the normal return path instead of
// host-language panics (see EngineError.Error and the error-bit discipline
// described in ecma.Value).
package errkind

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies the abstract ECMAScript error category an EngineError
// belongs to. It is intentionally not tied to any concrete builtin
// constructor - attaching a Kind to a script-visible Error object is the
// consumer's job, not this core's.
type Kind uint8

const (
	Common Kind = iota
	Type
	Range
	Reference
	Syntax
	URI
	Eval
	Aggregate
	StackOverflow
	OutOfMemory
)

func (k Kind) String() string {
	switch k {
	case Common:
		return "Error"
	case Type:
		return "TypeError"
	case Range:
		return "RangeError"
	case Reference:
		return "ReferenceError"
	case Syntax:
		return "SyntaxError"
	case URI:
		return "URIError"
	case Eval:
		return "EvalError"
	case Aggregate:
		return "AggregateError"
	case StackOverflow:
		return "StackOverflow"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "UnknownError"
	}
}

// EngineError is the payload a value's error bit points at (ecma.Value's
// error flag). It carries the kind, a message, and an optional wrapped
// cause captured with github.com/pkg/errors so diagnostics retain a stack
// trace without every call site needing to build one by hand.
type EngineError struct {
	Kind    Kind
	Message string
	cause   error
}

func New(kind Kind, message string) *EngineError {
	return &EngineError{Kind: kind, Message: message, cause: errors.New(message)}
}

func Newf(kind Kind, format string, args ...interface{}) *EngineError {
	msg := fmt.Sprintf(format, args...)
	return &EngineError{Kind: kind, Message: msg, cause: errors.New(msg)}
}

// Wrap attaches a kind to an existing error, preserving it as the cause so
// errors.Cause(err) still reaches the original failure.
func Wrap(kind Kind, err error, message string) *EngineError {
	return &EngineError{Kind: kind, Message: message, cause: errors.Wrap(err, message)}
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.cause
}

// Cause returns the deepest wrapped error, mirroring errors.Cause.
func (e *EngineError) Cause() error {
	return errors.Cause(e.cause)
}

// Fatal reports whether this error kind can never be recovered from script
// level and must terminate the engine (§4.1, §4.14).
func (e *EngineError) Fatal() bool {
	return e.Kind == OutOfMemory
}

// IsKind reports whether err is an *EngineError of the given kind.
func IsKind(err error, kind Kind) bool {
	ee, ok := err.(*EngineError)
	return ok && ee.Kind == kind
}
