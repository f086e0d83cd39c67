package domain

import (
	"errors"
	"fmt"
)

// KeyPrefix namespaces every key written to a shared key-value backend.
const KeyPrefix = "shopsense:"

// DefaultUserID is used when a request carries no user identifier.
const DefaultUserID = "anonymous"

var (
	// ErrValidation signals a rejected request (missing or malformed required field).
	ErrValidation = errors.New("validation failed")
	// ErrEmptyCatalog signals that the index cannot be built from zero products.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrDuplicateProduct signals two catalog entries sharing one id.
	ErrDuplicateProduct = errors.New("duplicate product id")
	// ErrInvalidProduct signals a catalog entry that violates product invariants.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrProductNotFound signals a lookup of an id absent from the catalog.
	ErrProductNotFound = errors.New("product not found")
)

// ValidationError wraps ErrValidation with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UserIDOrDefault maps an absent user identifier to DefaultUserID.
func UserIDOrDefault(userID string) string {
	if userID == "" {
		return DefaultUserID
	}
	return userID
}
