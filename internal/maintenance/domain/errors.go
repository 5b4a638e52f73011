package domain

import (
	"errors"
	"fmt"
)

// Error codes for maintenance errors
const (
	ErrCodeToolNotFound    = "tool_not_found"
	ErrCodeEmptyInvocation = "empty_invocation"
	ErrCodeUnknownAction   = "unknown_action"
	ErrCodeConfigInvalid   = "config_invalid"
	ErrCodeSourceDiscovery = "source_discovery"
	ErrCodeHeaderCleanup   = "header_cleanup"
)

// HelperError represents a failure that is not a tool's own non-zero exit
type HelperError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *HelperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *HelperError) Unwrap() error {
	return e.Cause
}

// NewError creates a new HelperError
func NewError(code, message string) *HelperError {
	return &HelperError{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a new HelperError that wraps another error
func WrapError(code, message string, cause error) *HelperError {
	return &HelperError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrToolNotFound returns an error for an executable missing from PATH
func ErrToolNotFound(name string) *HelperError {
	return NewError(ErrCodeToolNotFound, fmt.Sprintf("executable %q not found on PATH", name))
}

// ErrEmptyInvocation returns an error for an invocation without an executable
func ErrEmptyInvocation() *HelperError {
	return NewError(ErrCodeEmptyInvocation, "invocation has no executable")
}

// ErrUnknownAction returns an error for an unsupported verb
func ErrUnknownAction(verb string) *HelperError {
	return NewError(ErrCodeUnknownAction, fmt.Sprintf("unknown action %q", verb))
}

// ErrConfigInvalid returns an error for a rejected configuration
func ErrConfigInvalid(reason string, cause error) *HelperError {
	return WrapError(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason), cause)
}

// ErrSourceDiscovery returns an error for a failed source glob
func ErrSourceDiscovery(root string, cause error) *HelperError {
	return WrapError(ErrCodeSourceDiscovery, fmt.Sprintf("cannot discover sources under %s", root), cause)
}

// ErrHeaderCleanup returns an error for a generated header that could not be removed
func ErrHeaderCleanup(path string, cause error) *HelperError {
	return WrapError(ErrCodeHeaderCleanup, fmt.Sprintf("cannot remove generated header %s", path), cause)
}

// GetErrorCode returns the code of the first HelperError in the chain, or empty string
func GetErrorCode(err error) string {
	var he *HelperError
	if errors.As(err, &he) {
		return he.Code
	}
	return ""
}

// CommandError reports a child process that exited with a non-zero status
type CommandError struct {
	Invocation Invocation
	ExitCode   int
	Stdout     []byte
	Stderr     []byte
}

// NewCommandError builds a CommandError from a failed outcome
func NewCommandError(inv Invocation, out *Outcome) *CommandError {
	return &CommandError{
		Invocation: inv,
		ExitCode:   out.ExitCode,
		Stdout:     out.Stdout,
		Stderr:     out.Stderr,
	}
}

// Error implements the error interface
func (e *CommandError) Error() string {
	return fmt.Sprintf("child command `%s` exited with non-zero status code %d", e.Invocation, e.ExitCode)
}
