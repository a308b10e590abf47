// Package errors provides typed errors for toonify.
package errors

import "fmt"

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrInputNotFound    ErrorCode = "INPUT_NOT_FOUND"
	ErrInputUnreadable  ErrorCode = "INPUT_UNREADABLE"
	ErrInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrOutputFailed     ErrorCode = "OUTPUT_FAILED"
	ErrWatchFailed      ErrorCode = "WATCH_FAILED"
	ErrConversionFailed ErrorCode = "CONVERSION_FAILED"
)

// ToonifyError represents a typed error with user-friendly hints.
type ToonifyError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *ToonifyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ToonifyError) Unwrap() error {
	return e.Cause
}

// New creates a new ToonifyError.
func New(code ErrorCode, message, hint string) *ToonifyError {
	return &ToonifyError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new ToonifyError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *ToonifyError {
	return &ToonifyError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// ConfigNotFound returns an error for missing config file.
func ConfigNotFound(path string) *ToonifyError {
	return &ToonifyError{
		Code:    ErrConfigNotFound,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Run `toonify config init` to create a configuration",
	}
}

// ConfigInvalid returns an error for invalid config.
func ConfigInvalid(reason string) *ToonifyError {
	return &ToonifyError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your config file at ~/.config/toonify/config.yaml or unset TOONIFY_* variables",
	}
}

// InputNotFound returns an error for a missing input file.
func InputNotFound(path string) *ToonifyError {
	return &ToonifyError{
		Code:    ErrInputNotFound,
		Message: fmt.Sprintf("input file not found: %s", path),
		Hint:    "Check the path, or pass - to read from stdin",
	}
}

// InputUnreadable returns an error for an input that exists but cannot be read.
func InputUnreadable(path string, cause error) *ToonifyError {
	return &ToonifyError{
		Code:    ErrInputUnreadable,
		Message: fmt.Sprintf("cannot read %s", path),
		Hint:    "Check file permissions",
		Cause:   cause,
	}
}

// InvalidFormat returns an error for an unrecognized format name.
func InvalidFormat(name string) *ToonifyError {
	return &ToonifyError{
		Code:    ErrInvalidFormat,
		Message: fmt.Sprintf("unknown format: %s", name),
		Hint:    "Run `toonify formats` to list supported formats",
	}
}

// OutputFailed returns an error for a failed write of converted output.
func OutputFailed(path string, cause error) *ToonifyError {
	return &ToonifyError{
		Code:    ErrOutputFailed,
		Message: fmt.Sprintf("failed to write %s", path),
		Hint:    "Check that the directory exists and is writable",
		Cause:   cause,
	}
}

// WatchFailed returns an error when a file cannot be watched.
func WatchFailed(path string, cause error) *ToonifyError {
	return &ToonifyError{
		Code:    ErrWatchFailed,
		Message: fmt.Sprintf("cannot watch %s", path),
		Hint:    "Make sure the file exists; on Linux you may need to raise fs.inotify.max_user_watches",
		Cause:   cause,
	}
}

// ConversionFailed returns an error for inputs whose conversion produced an ERROR line.
func ConversionFailed(count int) *ToonifyError {
	noun := "input"
	if count != 1 {
		noun = "inputs"
	}
	return &ToonifyError{
		Code:    ErrConversionFailed,
		Message: fmt.Sprintf("%d %s could not be converted", count, noun),
		Hint:    "Pass --format to skip detection, or run `toonify detect` to see what was detected",
	}
}
