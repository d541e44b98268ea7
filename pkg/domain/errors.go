package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrInsufficientFunds is returned when a balance cannot cover a purchase
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInternal is returned for storage or infrastructure failures the caller cannot act on
	ErrInternal = errors.New("internal error")
)

// NotFound builds an ErrNotFound naming what could not be found,
// e.g. NotFound("this user (42)").
func NotFound(what string) error {
	return fmt.Errorf("%w: couldn't find %s", ErrNotFound, what)
}

// Invalid builds an ErrValidation with a human-readable reason.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
