package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrItemNotFound     = fmt.Errorf("%w: item", ErrNotFound)
	ErrGuidanceNotFound = fmt.Errorf("%w: guidance entry", ErrNotFound)

	// Validation errors
	ErrImportInvalid   = errors.New("import payload is not a valid checklist collection")
	ErrDuplicateClause = errors.New("guidance entry with this ID already exists")

	// Safety errors
	ErrNotConfirmed = errors.New("destructive operation requires confirmation")

	// Sync errors
	ErrSyncFailed       = errors.New("remote sync failed")
	ErrEncodingMismatch = errors.New("remote file encoding is not base64")
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewSyncError(operation string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSyncFailed, operation, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsImportError(err error) bool {
	return errors.Is(err, ErrImportInvalid)
}

func IsConfirmationError(err error) bool {
	return errors.Is(err, ErrNotConfirmed)
}
