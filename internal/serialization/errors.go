package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrPayloadTooLarge    = errors.New("payload exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrKindMismatch       = errors.New("unexpected payload kind")
)

// ValidationError provides detailed information about a rejected header.
type ValidationError struct {
	Field   string // Header field that failed validation
	Details string // Additional details
	Err     error  // Underlying sentinel, if any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Details)
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
