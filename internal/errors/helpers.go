package errors

import (
	"context"
	"errors"
)

func asError(err error) (*Error, bool) {
	var target *Error
	if err == nil || !errors.As(err, &target) {
		return nil, false
	}
	return target, true
}

// Is forwards to the standard library so callers need only this package
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns CodeOK for nil, CodeCanceled for an interrupted context
// and CodeInternal for other foreign errors
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	if errors.Is(err, context.Canceled) {
		return CodeCanceled
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error in the chain
func GetMeta(err error) map[string]any {
	if e, ok := asError(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message without code or cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// HasCode reports whether err classifies as code
func HasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

func IsNotFound(err error) bool           { return HasCode(err, CodeNotFound) }
func IsInvalidArgument(err error) bool    { return HasCode(err, CodeInvalidArgument) }
func IsFailedPrecondition(err error) bool { return HasCode(err, CodeFailedPrecondition) }
func IsIllegalAction(err error) bool      { return HasCode(err, CodeIllegalAction) }
func IsRuleViolation(err error) bool      { return HasCode(err, CodeRuleViolation) }
func IsDataIntegrity(err error) bool      { return HasCode(err, CodeDataIntegrity) }
