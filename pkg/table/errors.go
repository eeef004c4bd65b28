package table

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by storage backends for unknown document IDs.
var ErrNotFound = errors.New("document not found")

// ValidationError reports input that violates the exporter contract.
// No output is produced when it is returned.
type ValidationError struct {
	Field   string // Offending input ("columns", "columns[2]", "format")
	Message string // Human-readable reason
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [field=%s]: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExportError represents an error while rendering a sheet.
type ExportError struct {
	Format   string // Export format ("xlsx", "csv", "json")
	RowCount int    // Number of rows being exported
	Cause    error  // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [format=%s, row_count=%d]: %v", e.Format, e.RowCount, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format string, rowCount int, cause error) *ExportError {
	return &ExportError{
		Format:   format,
		RowCount: rowCount,
		Cause:    cause,
	}
}

// StorageError represents an error from a document storage backend.
type StorageError struct {
	Backend   string // Storage backend type ("sqlite", "memory")
	Operation string // Operation that failed ("store", "get", "delete", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// RetentionError represents an error during document pruning.
type RetentionError struct {
	RetentionDays int   // Configured retention period
	Cause         error // Underlying error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention error [retention_days=%d]: %v", e.RetentionDays, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError creates a new RetentionError.
func NewRetentionError(retentionDays int, cause error) *RetentionError {
	return &RetentionError{
		RetentionDays: retentionDays,
		Cause:         cause,
	}
}
