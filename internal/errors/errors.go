// Package errors provides structured error types and exit codes for verify-helper.
//
// Verification outcomes (compile failures, wrong answers, skipped files) are
// never errors; they are recorded in the result document. Errors in this
// package describe infrastructure problems: unreadable input, invalid
// configuration, missing tools.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success (regardless of verification outcomes)
	ExitRuntimeError     = 1 // Unexpected runtime error
	ExitConfigError      = 2 // Invalid arguments, configuration or input documents
	ExitEnvironmentError = 3 // Missing tool (git, oj, sh) or unusable environment
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindEnvironment
)

// Error is the base error type for verify-helper.
type Error struct {
	Kind    ErrorKind
	Message string
	Path    string // Source file path if applicable
	Step    string // Verification step description if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	if e.Path != "" && e.Step != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Path, e.Step, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// ConfigWrap wraps err as a configuration error.
func ConfigWrap(err error, message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: fmt.Sprintf("%s: %v", message, err),
		Cause:   err,
	}
}

// Environment creates a new environment error.
func Environment(message string) *Error {
	return &Error{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *Error {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// StepError creates an error for a verification step of a specific file.
func StepError(path, step, message string, cause error) *Error {
	return &Error{
		Kind:    KindRuntime,
		Path:    path,
		Step:    step,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitRuntimeError
}
