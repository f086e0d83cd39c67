package shopsense

import "github.com/kailas-cloud/shopsense/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation       = domain.ErrValidation
	ErrEmptyCatalog     = domain.ErrEmptyCatalog
	ErrDuplicateProduct = domain.ErrDuplicateProduct
	ErrInvalidProduct   = domain.ErrInvalidProduct
	ErrProductNotFound  = domain.ErrProductNotFound
)
