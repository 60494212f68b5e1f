package client

import (
	"errors"
	"net/http"

	"todoapp/internal/domain"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// Unwrap lets callers match API failures with the domain sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest:
		return domain.ErrValidation
	default:
		return nil
	}
}

// fromDomain renders a service error the way the server would.
func fromDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return &APIError{Status: http.StatusNotFound, Message: "not found"}
	case errors.Is(err, domain.ErrUsernameTaken):
		return &APIError{Status: http.StatusBadRequest, Message: "username already exists"}
	case errors.Is(err, domain.ErrEmailTaken):
		return &APIError{Status: http.StatusBadRequest, Message: "email already in use"}
	case errors.Is(err, domain.ErrConflict):
		return &APIError{Status: http.StatusBadRequest, Message: "conflict"}
	case errors.Is(err, domain.ErrValidation):
		return &APIError{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return &APIError{Status: http.StatusUnauthorized, Message: "unauthorized"}
	default:
		return &APIError{Status: http.StatusInternalServerError, Message: "internal server error"}
	}
}
