package errors

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Error is the engine's error value. Code decides how callers react;
// Meta carries ids worth logging next to the message.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error prints the outer code once followed by the message chain
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)

	for cause := e.Cause; cause != nil; {
		b.WriteString(": ")
		inner, ok := cause.(*Error)
		if !ok {
			b.WriteString(cause.Error())
			break
		}
		b.WriteString(inner.Message)
		cause = inner.Cause
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && other.Code == e.Code
}

// WithMeta attaches key to the error and returns it for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// New builds an error with a fixed message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err and keeps the code GetCode assigns it
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, GetCode(err), message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode adds context to err and reclassifies it
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, code, message)
}

// wrap copies the inner meta so annotating the outer error never
// leaks back into the cause
func wrap(err error, code Code, message string) *Error {
	out := &Error{Code: code, Message: message, Cause: err}
	if inner, ok := asError(err); ok && len(inner.Meta) > 0 {
		out.Meta = maps.Clone(inner.Meta)
	}
	return out
}

// NotFound reports a battle or snapshot that does not exist
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf is NotFound with a formatted message
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// InvalidArgument reports a malformed request or setting
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internal reports a broken invariant or a store failure
func Internal(message string) *Error { return New(CodeInternal, message) }

// FailedPrecondition reports an operation the battle's current state forbids,
// such as submitting to a finished battle
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf is FailedPrecondition with a formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// IllegalAction reports a malformed or duplicate submission
func IllegalAction(message string) *Error { return New(CodeIllegalAction, message) }

// IllegalActionf is IllegalAction with a formatted message
func IllegalActionf(format string, args ...any) *Error {
	return Newf(CodeIllegalAction, format, args...)
}

// RuleViolationf reports an action the battle rules refuse
func RuleViolationf(format string, args ...any) *Error {
	return Newf(CodeRuleViolation, format, args...)
}

// DataIntegrityf reports a reference to an id the catalog does not know
func DataIntegrityf(format string, args ...any) *Error {
	return Newf(CodeDataIntegrity, format, args...)
}
