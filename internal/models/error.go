package models

import (
	"errors"
	"fmt"
)

// Domain error kinds. Every public operation of the order core returns
// either a success value or exactly one of these, possibly wrapped with
// context. Callers classify with errors.Is.
var (
	// ErrNotFound: a referenced order, pizza, extra or settings record does not exist
	ErrNotFound = errors.New("not found")
	// ErrEmptyOrder: an order request contains no items
	ErrEmptyOrder = errors.New("order has no items")
	// ErrCatalogMismatch: a referenced pizza or extra is missing or inactive
	ErrCatalogMismatch = errors.New("catalog mismatch")
	// ErrInvalidIngredientRemoval: a removed ingredient is not on the pizza
	ErrInvalidIngredientRemoval = errors.New("ingredient not on pizza")
	// ErrInvalidQuantity: an item or extra quantity is below 1
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidTransition: a lifecycle transition was attempted from a state
	// that is not its valid predecessor
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict: a concurrent transition won the compare-and-set race
	ErrConflict = errors.New("order status changed concurrently")
)

// StorageError wraps an opaque failure of the persistence collaborator. The
// order core never retries or compensates; the cause is preserved for the
// caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for operation op
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error code constants used in HTTP responses
const (
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeInternalServer    = "INTERNAL_SERVER_ERROR"
	ErrCodeEmptyOrder        = "EMPTY_ORDER"
	ErrCodeCatalogMismatch   = "CATALOG_MISMATCH"
	ErrCodeInvalidIngredient = "INVALID_INGREDIENT_REMOVAL"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string) APIError {
	return APIError{Code: code, Message: message}
}
