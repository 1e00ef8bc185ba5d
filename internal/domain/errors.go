package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing product, slug, order or user.
	ErrNotFound = errors.New("not found")
	// ErrCatalogUnavailable wraps storage failures. No retry happens at
	// this layer; callers decide their own retry policy.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrStockInsufficient is an expected, user-facing rejection. Any
	// operation returning it must leave existing state untouched.
	ErrStockInsufficient = errors.New("insufficient stock")
)

// ValidationError reports a malformed request parameter. It is raised at
// the boundary, before any catalog access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
