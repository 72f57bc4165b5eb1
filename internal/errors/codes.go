package errors

// Code classifies an Error. Callers branch on it; messages are for people.
type Code string

const (
	CodeOK       Code = "OK"
	CodeCanceled Code = "CANCELED"
	CodeInternal Code = "INTERNAL"
	// CodeUnavailable marks a snapshot store that cannot be reached
	CodeUnavailable Code = "UNAVAILABLE"

	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	// CodeFailedPrecondition marks a request the battle's state forbids,
	// such as acting in a finished battle
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"

	// CodeIllegalAction marks a malformed or duplicate action submission.
	// The caller must resubmit a valid action.
	CodeIllegalAction Code = "ILLEGAL_ACTION"
	// CodeRuleViolation marks a well-formed action the rules disallow.
	// The turn resolver turns it into a failure event; callers never see it.
	CodeRuleViolation Code = "RULE_VIOLATION"
	// CodeDataIntegrity marks a catalog lookup miss for a referenced id
	CodeDataIntegrity Code = "DATA_INTEGRITY"
)

func (c Code) String() string {
	return string(c)
}

// ExitCode maps a code to the CLI's process exit status
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument, CodeIllegalAction:
		return 2
	case CodeNotFound:
		return 3
	case CodeDataIntegrity:
		return 4
	case CodeFailedPrecondition:
		return 5
	case CodeUnavailable:
		return 69
	case CodeCanceled:
		return 130
	default:
		return 1
	}
}
