// Package errors provides structured error handling for trawl.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (file, walk)
//   - 4XX: Validation errors (pattern, glob, type filter)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and directory I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates an unrecoverable error, the search must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates an operation failed but the search can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeFileRead       = "ERR_201_FILE_READ"
	ErrCodeFilePermission = "ERR_202_FILE_PERMISSION"
	ErrCodeWalkEntry      = "ERR_203_WALK_ENTRY"
	ErrCodeRootNotFound   = "ERR_204_ROOT_NOT_FOUND"

	// Validation errors (400-499)
	ErrCodeInvalidPattern = "ERR_401_INVALID_PATTERN"
	ErrCodeInvalidGlob    = "ERR_402_INVALID_GLOB"
	ErrCodeInvalidType    = "ERR_403_INVALID_TYPE"
	ErrCodeInvalidPath    = "ERR_404_INVALID_PATH"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Validation and config errors abort a search before any parallel work
// starts; per-file and per-entry IO errors are collected and the search
// continues.
func severityFromCode(code string) Severity {
	switch categoryFromCode(code) {
	case CategoryValidation, CategoryConfig:
		return SeverityFatal
	case CategoryIO:
		return SeverityError
	default:
		return SeverityError
	}
}
