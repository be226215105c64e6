// internal/core/domain/errors.go
package domain

import "errors"

// Sentinel errors shared across services and repositories. Callers match
// with errors.Is; lower layers wrap them with fmt.Errorf("...: %w", err).
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the input failed domain validation.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientStock indicates a movement would drive a variant's
	// stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicate indicates a uniqueness constraint was violated
	// (slug or SKU already taken within the store).
	ErrDuplicate = errors.New("already exists")
)
