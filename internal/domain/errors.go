package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both missing rows and rows owned by another user.
	ErrNotFound = errors.New("not found")

	ErrConflict      = errors.New("conflict")
	ErrUsernameTaken = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrEmailTaken    = fmt.Errorf("%w: email already in use", ErrConflict)

	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")

	ErrMissingSigningKey = errors.New("jwt signing key is not configured")
)
