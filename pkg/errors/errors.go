package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the patch engine failure taxonomy
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors: the document could not be read or violates the
	// operation/digest contract. These fire before any directory
	// inspection.
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifest         ErrorCode = "MANIFEST_INVALID"

	// Patch asset errors: an artifact the manifest references is
	// missing from the patch directory.
	ErrDiffNotFound ErrorCode = "DIFF_NOT_FOUND"
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"

	// ErrPatchCreate covers failures while building a patch asset
	ErrPatchCreate ErrorCode = "CREATE_FAILED"

	// Apply pipeline errors, in phase order. Validation, restriction
	// and backup failures abort before any target mutation. Apply and
	// verification failures trigger rollback of the applied prefix.
	ErrValidation     ErrorCode = "VALIDATION_FAILED"
	ErrRestricted     ErrorCode = "RESTRICTED_PATHS"
	ErrAlreadyPatched ErrorCode = "ALREADY_PATCHED"
	ErrBackup         ErrorCode = "BACKUP_FAILED"
	ErrApply          ErrorCode = "APPLY_FAILED"
	ErrVerification   ErrorCode = "VERIFICATION_FAILED"

	// ErrRollback is the most severe class: restoring from backup
	// itself failed, so the target is in neither the original nor the
	// patched state. The backup directory is the remaining source of
	// truth and must not be deleted.
	ErrRollback ErrorCode = "ROLLBACK_FAILED"
)

// SeamError represents a structured error with code and details
type SeamError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SeamError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SeamError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SeamError) Is(target error) bool {
	var targetErr *SeamError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SeamError with the given code and message
func New(code ErrorCode, message string) *SeamError {
	return &SeamError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SeamError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SeamError {
	return &SeamError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SeamError
func Wrap(err error, code ErrorCode, message string) *SeamError {
	if err == nil {
		return nil
	}
	return &SeamError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SeamError {
	if err == nil {
		return nil
	}
	return &SeamError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SeamError) WithDetail(key string, value interface{}) *SeamError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithFile records the offending filename, the detail every failure
// in the taxonomy is expected to carry.
func (e *SeamError) WithFile(file string) *SeamError {
	return e.WithDetail("file", file)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var seamErr *SeamError
	if errors.As(err, &seamErr) {
		return seamErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SeamError
func GetErrorCode(err error) ErrorCode {
	var seamErr *SeamError
	if errors.As(err, &seamErr) {
		return seamErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SeamError
func GetErrorDetails(err error) map[string]interface{} {
	var seamErr *SeamError
	if errors.As(err, &seamErr) {
		return seamErr.Details
	}
	return nil
}
