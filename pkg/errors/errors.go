package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigParse  ErrorCode = "CONFIG_PARSE"
	ErrConfigValid  ErrorCode = "CONFIG_INVALID"
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"

	// Snippet errors
	ErrNoSnippets           ErrorCode = "NO_SNIPPETS"
	ErrSnippetNotFound      ErrorCode = "SNIPPET_NOT_FOUND"
	ErrMalformedPlaceholder ErrorCode = "MALFORMED_PLACEHOLDER"

	// Resolution errors
	ErrEmptyChoiceSet    ErrorCode = "EMPTY_CHOICE_SET"
	ErrNoFunctionResults ErrorCode = "NO_FUNCTION_RESULTS"
	ErrNoLookupResults   ErrorCode = "NO_LOOKUP_RESULTS"
	ErrColumnOutOfBounds ErrorCode = "COLUMN_OUT_OF_BOUNDS"
	ErrCommandExecution  ErrorCode = "COMMAND_EXECUTION_FAILED"
	ErrSelectionAborted  ErrorCode = "SELECTION_ABORTED"
	ErrInputAborted      ErrorCode = "INPUT_ABORTED"
)

// Detail keys shared by the resolution pipeline
const (
	DetailSnippet  = "snippet"
	DetailVariable = "variable"
	DetailCommand  = "command"
	DetailColumn   = "column"
	DetailExitCode = "exit_code"
	DetailStderr   = "stderr"
	DetailPath     = "path"
)

// QclError represents a structured error with code and details
type QclError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *QclError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *QclError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *QclError) Is(target error) bool {
	var targetErr *QclError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new QclError with the given code and message
func New(code ErrorCode, message string) *QclError {
	return &QclError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new QclError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *QclError {
	return &QclError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a QclError
func Wrap(err error, code ErrorCode, message string) *QclError {
	if err == nil {
		return nil
	}
	return &QclError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *QclError {
	if err == nil {
		return nil
	}
	return &QclError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *QclError) WithDetail(key string, value interface{}) *QclError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Annotate attaches a detail to err if it is a QclError and the key is not
// already set. Other errors are returned unchanged.
func Annotate(err error, key string, value interface{}) error {
	var qclErr *QclError
	if !errors.As(err, &qclErr) {
		return err
	}
	if _, ok := qclErr.Details[key]; !ok {
		qclErr.WithDetail(key, value)
	}
	return err
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var qclErr *QclError
	if errors.As(err, &qclErr) {
		return qclErr.Code == code
	}
	return false
}

// IsEmptyChoice reports whether err is any of the empty choice set errors.
func IsEmptyChoice(err error) bool {
	switch GetErrorCode(err) {
	case ErrEmptyChoiceSet, ErrNoFunctionResults, ErrNoLookupResults:
		return true
	}
	return false
}

// IsAborted reports whether the user cancelled an interactive prompt.
func IsAborted(err error) bool {
	code := GetErrorCode(err)
	return code == ErrSelectionAborted || code == ErrInputAborted
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a QclError
func GetErrorCode(err error) ErrorCode {
	var qclErr *QclError
	if errors.As(err, &qclErr) {
		return qclErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a QclError
func GetErrorDetails(err error) map[string]interface{} {
	var qclErr *QclError
	if errors.As(err, &qclErr) {
		return qclErr.Details
	}
	return nil
}
