package errors

import (
	"fmt"
)

// TrawlError is the structured error type for trawl.
// It provides rich context for error handling, logging, and user presentation.
type TrawlError struct {
	// Code is the unique error code (e.g., "ERR_401_INVALID_PATTERN").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *TrawlError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *TrawlError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with TrawlError.
func (e *TrawlError) Is(target error) bool {
	if t, ok := target.(*TrawlError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *TrawlError) WithDetail(key, value string) *TrawlError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *TrawlError) WithSuggestion(suggestion string) *TrawlError {
	e.Suggestion = suggestion
	return e
}

// New creates a new TrawlError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *TrawlError {
	return &TrawlError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Newf creates a new TrawlError with a formatted message.
func Newf(code string, format string, args ...any) *TrawlError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a TrawlError from an existing error.
// The error's message becomes the TrawlError message.
func Wrap(code string, err error) *TrawlError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// InvalidPattern creates an error for a pattern that failed to compile.
// It carries the engine's diagnostic message.
func InvalidPattern(pattern string, cause error) *TrawlError {
	return New(ErrCodeInvalidPattern,
		fmt.Sprintf("invalid pattern %q: %v", pattern, cause), cause).
		WithDetail("pattern", pattern).
		WithSuggestion("check the regular expression syntax, or use --fixed-strings for literal search")
}

// InvalidGlob creates an error for a malformed include/exclude glob.
func InvalidGlob(glob string, cause error) *TrawlError {
	e := New(ErrCodeInvalidGlob, fmt.Sprintf("invalid glob %q", glob), cause).
		WithDetail("glob", glob)
	if cause != nil {
		e.Message = fmt.Sprintf("invalid glob %q: %v", glob, cause)
	}
	return e
}

// InvalidTypeFilter creates an error for an unrecognized file-type name.
func InvalidTypeFilter(name string) *TrawlError {
	return Newf(ErrCodeInvalidType, "unknown file type %q", name).
		WithDetail("type", name).
		WithSuggestion("run 'trawl types' to list recognized file types")
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *TrawlError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *TrawlError {
	return New(ErrCodeFileRead, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *TrawlError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal reports whether an error must abort the whole search.
// Validation and config errors are fatal; per-file IO errors are not.
func IsFatal(err error) bool {
	if te, ok := err.(*TrawlError); ok {
		return te.Severity == SeverityFatal
	}
	return false
}

// CodeOf returns the error code of a TrawlError, or ErrCodeInternal for
// any other error.
func CodeOf(err error) string {
	if te, ok := err.(*TrawlError); ok {
		return te.Code
	}
	return ErrCodeInternal
}
